// Package buddy implements a power-of-two buddy allocator: recursive
// splitting on allocation, XOR-buddy coalescing on free.
package buddy

import (
	"fmt"
	"math/bits"

	"github.com/Vaidurya-s/os-memory-management-simulator/mem/alloc"
)

// allocation records what a live address was rounded to, plus the caller's
// true requested size, so internal fragmentation can be computed without
// the degenerate always-zero result of only tracking the rounded size.
type allocation struct {
	order     uint
	requested uint64
}

// Allocator is a buddy allocator over an arena of total bytes, total a
// power of two. The zero value is not usable; construct one with a
// Builder.
type Allocator struct {
	total    uint64
	maxOrder uint

	// freeLists[k] holds the starting addresses of free blocks of size
	// 2^k, in the order they should be offered (head first).
	freeLists [][]uint64

	allocated map[uint64]allocation

	idToAddr map[uint64]uint64
	addrToID map[uint64]uint64
	nextID   uint64
}

// Builder constructs an Allocator, rejecting a non-power-of-two total size
// at Build time.
type Builder struct {
	total uint64
}

// MakeBuilder returns an empty Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithTotalSize sets the arena size in bytes. It must be a power of two.
func (b Builder) WithTotalSize(total uint64) Builder {
	b.total = total
	return b
}

// Build validates the configuration and constructs the Allocator.
func (b Builder) Build() (*Allocator, error) {
	if b.total == 0 || !isPowerOfTwo(b.total) {
		return nil, fmt.Errorf(
			"buddy: total size must be a power of two > 0, got %d", b.total)
	}

	maxOrder := uint(bits.Len64(b.total) - 1)

	a := &Allocator{
		total:     b.total,
		maxOrder:  maxOrder,
		freeLists: make([][]uint64, maxOrder+1),
		allocated: make(map[uint64]allocation),
		idToAddr:  make(map[uint64]uint64),
		addrToID:  make(map[uint64]uint64),
		nextID:    1,
	}
	a.freeLists[maxOrder] = []uint64{0}

	return a, nil
}

// Name identifies this allocator for display purposes.
func (a *Allocator) Name() string {
	return "Buddy System"
}

// AllocateAddr reserves size bytes, rounded up to the next power of two,
// and returns the base address of the resulting block. It returns
// (0, false) if size is 0, exceeds the arena, or no free block is large
// enough.
func (a *Allocator) AllocateAddr(size uint64) (uint64, bool) {
	if size == 0 || size > a.total {
		return 0, false
	}

	targetOrder := orderFor(size)
	if targetOrder > a.maxOrder {
		return 0, false
	}

	currentOrder := targetOrder
	for currentOrder <= a.maxOrder && len(a.freeLists[currentOrder]) == 0 {
		currentOrder++
	}

	if currentOrder > a.maxOrder {
		return 0, false
	}

	addr := a.freeLists[currentOrder][0]
	a.freeLists[currentOrder] = a.freeLists[currentOrder][1:]

	for currentOrder > targetOrder {
		currentOrder--
		buddyAddr := addr + (uint64(1) << currentOrder)
		a.freeLists[currentOrder] = append([]uint64{buddyAddr}, a.freeLists[currentOrder]...)
	}

	a.allocated[addr] = allocation{order: targetOrder, requested: size}

	return addr, true
}

// FreeAddr releases the block at addr, coalescing with its buddy
// repeatedly while possible. Freeing an address that is not currently
// allocated is a no-op.
func (a *Allocator) FreeAddr(addr uint64) {
	entry, ok := a.allocated[addr]
	if !ok {
		return
	}

	delete(a.allocated, addr)

	currentAddr := addr
	currentOrder := entry.order

	for currentOrder < a.maxOrder {
		buddyAddr := currentAddr ^ (uint64(1) << currentOrder)

		idx := indexOf(a.freeLists[currentOrder], buddyAddr)
		if idx == -1 {
			break
		}

		a.freeLists[currentOrder] = append(
			a.freeLists[currentOrder][:idx], a.freeLists[currentOrder][idx+1:]...)

		if buddyAddr < currentAddr {
			currentAddr = buddyAddr
		}
		currentOrder++
	}

	a.freeLists[currentOrder] = append([]uint64{currentAddr}, a.freeLists[currentOrder]...)
}

// Allocate is the alloc.Allocator-compatible entry point: it allocates and
// returns an opaque id rather than the native byte address.
func (a *Allocator) Allocate(size uint64) (uint64, bool) {
	addr, ok := a.AllocateAddr(size)
	if !ok {
		return 0, false
	}

	id := a.nextID
	a.nextID++

	a.idToAddr[id] = addr
	a.addrToID[addr] = id

	return id, true
}

// Free releases the block identified by id. Freeing an unknown id is a
// no-op.
func (a *Allocator) Free(id uint64) {
	addr, ok := a.idToAddr[id]
	if !ok {
		return
	}

	delete(a.idToAddr, id)
	delete(a.addrToID, addr)

	a.FreeAddr(addr)
}

// Total returns the arena size in bytes.
func (a *Allocator) Total() uint64 {
	return a.total
}

// Used returns the sum of 2^order over every live allocation.
func (a *Allocator) Used() uint64 {
	var sum uint64
	for _, entry := range a.allocated {
		sum += uint64(1) << entry.order
	}

	return sum
}

// FreeBytes returns the bytes not currently allocated.
func (a *Allocator) FreeBytes() uint64 {
	return a.total - a.Used()
}

// LargestFreeBlock returns 2^k for the highest order k with a non-empty
// free list, or 0 if every list is empty.
func (a *Allocator) LargestFreeBlock() uint64 {
	for order := int(a.maxOrder); order >= 0; order-- {
		if len(a.freeLists[order]) > 0 {
			return uint64(1) << uint(order)
		}
	}

	return 0
}

// InternalFragmentation reports (allocated - requested) / allocated over
// all live allocations: bytes wasted to rounding, as a fraction of bytes
// actually reserved. It is 0 when nothing is allocated.
func (a *Allocator) InternalFragmentation() float64 {
	var allocated, requested uint64
	for _, entry := range a.allocated {
		allocated += uint64(1) << entry.order
		requested += entry.requested
	}

	if allocated == 0 {
		return 0
	}

	return float64(allocated-requested) / float64(allocated)
}

// CheckNoFreeBuddyPairs reports whether no two free addresses at the same
// order are buddies of each other. It returns false if such a pair exists,
// i.e. a pair that was not coalesced.
func (a *Allocator) CheckNoFreeBuddyPairs() bool {
	for order := uint(0); order < a.maxOrder; order++ {
		for _, addr := range a.freeLists[order] {
			buddyAddr := addr ^ (uint64(1) << order)
			if indexOf(a.freeLists[order], buddyAddr) != -1 {
				return false
			}
		}
	}

	return true
}

// CheckNoOverlaps reports whether every free region (at every order) and
// every allocated region occupies disjoint bytes.
func (a *Allocator) CheckNoOverlaps() bool {
	seen := make(map[uint64]bool)

	mark := func(addr, size uint64) bool {
		for i := uint64(0); i < size; i++ {
			if seen[addr+i] {
				return false
			}
			seen[addr+i] = true
		}

		return true
	}

	for order, list := range a.freeLists {
		size := uint64(1) << uint(order)
		for _, addr := range list {
			if !mark(addr, size) {
				return false
			}
		}
	}

	for addr, entry := range a.allocated {
		if !mark(addr, uint64(1)<<entry.order) {
			return false
		}
	}

	return true
}

// Dump returns a snapshot of every block, free and allocated, ordered by
// address.
func (a *Allocator) Dump() []alloc.BlockInfo {
	var out []alloc.BlockInfo

	for order, list := range a.freeLists {
		size := uint64(1) << uint(order)
		for _, addr := range list {
			out = append(out, alloc.BlockInfo{Start: addr, Size: size, Free: true})
		}
	}

	for addr, entry := range a.allocated {
		id := a.addrToID[addr]
		out = append(out, alloc.BlockInfo{
			Start: addr,
			Size:  uint64(1) << entry.order,
			Free:  false,
			ID:    id,
		})
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Start > out[j].Start; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}

	return out
}

func indexOf(list []uint64, v uint64) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}

	return -1
}

func isPowerOfTwo(x uint64) bool {
	return x != 0 && x&(x-1) == 0
}

// orderFor returns ceil(log2(size)), i.e. the order of the smallest
// power-of-two block that can hold size bytes.
func orderFor(size uint64) uint {
	if size <= 1 {
		return 0
	}

	return uint(bits.Len64(size - 1))
}

var _ alloc.Allocator = (*Allocator)(nil)
