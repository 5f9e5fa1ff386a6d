// Package freelist implements a segregated free-list allocator over a
// single linear arena, supporting first-fit, best-fit, and worst-fit
// placement with splitting on allocation and coalescing on free.
package freelist

import (
	"fmt"

	"github.com/Vaidurya-s/os-memory-management-simulator/mem/alloc"
)

// Strategy selects how Allocate picks among the free blocks that are large
// enough to satisfy a request.
type Strategy int

const (
	// FirstFit returns the first free block with enough room, scanning in
	// address order.
	FirstFit Strategy = iota
	// BestFit returns the smallest free block with enough room, breaking
	// ties toward the lowest start address.
	BestFit
	// WorstFit returns the largest free block, breaking ties toward the
	// lowest start address.
	WorstFit
)

// block is one entry in the address-ordered arena. Free blocks carry no
// meaningful id.
type block struct {
	start uint64
	size  uint64
	free  bool
	id    uint64
}

// Allocator is a segregated free-list allocator. The zero value is not
// usable; construct one with a Builder.
type Allocator struct {
	totalSize uint64
	strategy  Strategy
	blocks    []block
	nextID    uint64
}

// Builder constructs an Allocator, validating its configuration once at
// Build time rather than scattering checks across field assignment.
type Builder struct {
	totalSize uint64
	strategy  Strategy
}

// MakeBuilder returns a Builder defaulted to first-fit.
func MakeBuilder() Builder {
	return Builder{strategy: FirstFit}
}

// WithTotalSize sets the size in bytes of the arena the allocator manages.
func (b Builder) WithTotalSize(totalSize uint64) Builder {
	b.totalSize = totalSize
	return b
}

// WithStrategy sets the placement strategy used by Allocate.
func (b Builder) WithStrategy(strategy Strategy) Builder {
	b.strategy = strategy
	return b
}

// Build validates the configuration and constructs the Allocator.
func (b Builder) Build() (*Allocator, error) {
	if b.totalSize == 0 {
		return nil, fmt.Errorf("freelist: total size must be > 0")
	}

	a := &Allocator{
		totalSize: b.totalSize,
		strategy:  b.strategy,
		nextID:    1,
	}
	a.blocks = []block{{start: 0, size: b.totalSize, free: true}}

	return a, nil
}

// Name identifies the allocator strategy for display purposes.
func (a *Allocator) Name() string {
	switch a.strategy {
	case BestFit:
		return "Free List (Best Fit)"
	case WorstFit:
		return "Free List (Worst Fit)"
	default:
		return "Free List (First Fit)"
	}
}

// Allocate reserves size bytes using the configured strategy. It returns
// the new block's id and true on success, or (0, false) if no free block is
// large enough; state is left unchanged on failure.
func (a *Allocator) Allocate(size uint64) (uint64, bool) {
	if size == 0 {
		return 0, false
	}

	index, found := a.selectBlock(size)
	if !found {
		return 0, false
	}

	return a.allocateFromBlock(index, size), true
}

func (a *Allocator) selectBlock(size uint64) (index int, found bool) {
	switch a.strategy {
	case BestFit:
		return a.selectBestFit(size)
	case WorstFit:
		return a.selectWorstFit(size)
	default:
		return a.selectFirstFit(size)
	}
}

func (a *Allocator) selectFirstFit(size uint64) (int, bool) {
	for i, b := range a.blocks {
		if b.free && b.size >= size {
			return i, true
		}
	}

	return 0, false
}

func (a *Allocator) selectBestFit(size uint64) (int, bool) {
	best := -1

	for i, b := range a.blocks {
		if !b.free || b.size < size {
			continue
		}

		if best == -1 || b.size < a.blocks[best].size {
			best = i
		}
	}

	if best == -1 {
		return 0, false
	}

	return best, true
}

func (a *Allocator) selectWorstFit(size uint64) (int, bool) {
	worst := -1

	for i, b := range a.blocks {
		if !b.free || b.size < size {
			continue
		}

		if worst == -1 || b.size > a.blocks[worst].size {
			worst = i
		}
	}

	if worst == -1 {
		return 0, false
	}

	return worst, true
}

// allocateFromBlock marks the block at index allocated when the match is
// exact. Otherwise it shrinks that free block to the remainder and inserts
// a new allocated block before it, so the arena stays address-ordered.
func (a *Allocator) allocateFromBlock(index int, size uint64) uint64 {
	id := a.nextID
	a.nextID++

	b := a.blocks[index]
	if b.size == size {
		a.blocks[index].free = false
		a.blocks[index].id = id
		return id
	}

	allocated := block{
		start: b.start,
		size:  size,
		free:  false,
		id:    id,
	}

	a.blocks[index].start += size
	a.blocks[index].size -= size

	a.blocks = append(a.blocks, block{})
	copy(a.blocks[index+1:], a.blocks[index:])
	a.blocks[index] = allocated

	return id
}

// Free releases the block with the given id, coalescing with free
// neighbors. Freeing an unknown id is a no-op.
func (a *Allocator) Free(id uint64) {
	index := a.findAllocated(id)
	if index == -1 {
		return
	}

	a.blocks[index].free = true
	a.blocks[index].id = 0

	index = a.coalesceWithPrev(index)
	a.coalesceWithNext(index)
}

func (a *Allocator) findAllocated(id uint64) int {
	for i, b := range a.blocks {
		if !b.free && b.id == id {
			return i
		}
	}

	return -1
}

func (a *Allocator) coalesceWithPrev(index int) int {
	if index == 0 || !a.blocks[index-1].free {
		return index
	}

	a.blocks[index-1].size += a.blocks[index].size
	a.blocks = append(a.blocks[:index], a.blocks[index+1:]...)

	return index - 1
}

func (a *Allocator) coalesceWithNext(index int) {
	if index+1 >= len(a.blocks) || !a.blocks[index+1].free {
		return
	}

	a.blocks[index].size += a.blocks[index+1].size
	a.blocks = append(a.blocks[:index+1], a.blocks[index+2:]...)
}

// Total returns the arena size in bytes.
func (a *Allocator) Total() uint64 {
	return a.totalSize
}

// Used returns the sum of sizes of all allocated blocks.
func (a *Allocator) Used() uint64 {
	var used uint64
	for _, b := range a.blocks {
		if !b.free {
			used += b.size
		}
	}

	return used
}

// FreeBytes returns the total bytes not currently allocated.
func (a *Allocator) FreeBytes() uint64 {
	return a.totalSize - a.Used()
}

// LargestFreeBlock returns the size of the largest free block, or 0 if the
// arena is fully allocated.
func (a *Allocator) LargestFreeBlock() uint64 {
	var largest uint64
	for _, b := range a.blocks {
		if b.free && b.size > largest {
			largest = b.size
		}
	}

	return largest
}

// ExternalFragmentation reports the fraction of free memory that cannot
// satisfy a request as large as the single biggest hole. It is 0 when all
// memory is used.
func (a *Allocator) ExternalFragmentation() float64 {
	freeTotal := a.FreeBytes()
	if freeTotal == 0 {
		return 0
	}

	largest := a.LargestFreeBlock()

	return 1 - float64(largest)/float64(freeTotal)
}

// Dump returns an address-ordered, read-only snapshot of every block.
func (a *Allocator) Dump() []alloc.BlockInfo {
	out := make([]alloc.BlockInfo, len(a.blocks))
	for i, b := range a.blocks {
		out[i] = alloc.BlockInfo{
			Start: b.start,
			Size:  b.size,
			Free:  b.free,
			ID:    b.id,
		}
	}

	return out
}

var _ alloc.Allocator = (*Allocator)(nil)
