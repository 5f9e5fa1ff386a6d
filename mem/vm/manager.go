// Package vm implements a virtual-memory translator: a page table, a
// pool of physical frames, and a FIFO or LRU replacement policy.
package vm

import (
	"errors"
	"math/bits"

	"github.com/Vaidurya-s/os-memory-management-simulator/internal/clock"
)

// ErrInvalidVirtualPage is returned by Translate when the virtual address
// decodes to a vpn outside the page table.
var ErrInvalidVirtualPage = errors.New("vm: virtual page number out of range")

// Policy selects how Manager picks a victim page when no frame is free.
type Policy int

const (
	// FIFO evicts the valid entry with the smallest loaded_at: the page
	// that has been resident the longest, regardless of later hits.
	FIFO Policy = iota
	// LRU evicts the valid entry with the smallest loaded_at, where
	// loaded_at is also stamped on every hit, so it tracks true recency
	// of use rather than just load order.
	LRU
)

// Manager translates virtual addresses to physical addresses, backed by
// a dense PageTable and a FramePool, evicting under the configured
// Policy when physical frames run out.
type Manager struct {
	pageTable  *PageTable
	frames     *FramePool
	pageSize   uint64
	offsetBits uint

	policy     Policy
	pageFaults uint64
	clock      *clock.Clock
}

// Builder constructs a Manager, validating page_size at Build time.
type Builder struct {
	numVirtualPages   uint64
	numPhysicalFrames uint64
	pageSize          uint64
	policy            Policy
}

// MakeBuilder returns an empty Builder, defaulting to the FIFO policy.
func MakeBuilder() Builder {
	return Builder{policy: FIFO}
}

// WithVirtualPages sets the number of entries in the page table.
func (b Builder) WithVirtualPages(n uint64) Builder {
	b.numVirtualPages = n
	return b
}

// WithPhysicalFrames sets the number of frames in the frame pool.
func (b Builder) WithPhysicalFrames(n uint64) Builder {
	b.numPhysicalFrames = n
	return b
}

// WithPageSize sets the page size in bytes. It must be a power of two.
func (b Builder) WithPageSize(n uint64) Builder {
	b.pageSize = n
	return b
}

// WithPolicy sets the replacement policy used when no frame is free.
func (b Builder) WithPolicy(p Policy) Builder {
	b.policy = p
	return b
}

// Build validates the configuration and constructs the Manager.
func (b Builder) Build() (*Manager, error) {
	if b.numVirtualPages == 0 || b.numPhysicalFrames == 0 {
		return nil, errors.New(
			"vm: number of virtual pages and physical frames must both be > 0")
	}

	if b.pageSize == 0 || !isPowerOfTwo(b.pageSize) {
		return nil, errors.New("vm: page size must be a power of two > 0")
	}

	return &Manager{
		pageTable:  NewPageTable(b.numVirtualPages),
		frames:     NewFramePool(b.numPhysicalFrames),
		pageSize:   b.pageSize,
		offsetBits: uint(bits.Len64(b.pageSize - 1)),
		policy:     b.policy,
		clock:      clock.New(),
	}, nil
}

// Translate maps a virtual address to a physical address, servicing a
// page fault by allocating a free frame or evicting a victim if none
// remain.
func (m *Manager) Translate(virtualAddress uint64) (uint64, error) {
	vpn := virtualAddress >> m.offsetBits
	offset := virtualAddress & ((uint64(1) << m.offsetBits) - 1)

	if vpn >= m.pageTable.Size() {
		return 0, ErrInvalidVirtualPage
	}

	entry := m.pageTable.Entry(vpn)

	if entry.Valid {
		if m.policy == LRU {
			entry.LoadedAt = m.clock.Tick()
		}

		return entry.FrameNumber*m.pageSize + offset, nil
	}

	m.pageFaults++

	frame, ok := m.frames.Allocate()
	if !ok {
		victimVPN := m.findVictim()
		victim := m.pageTable.Entry(victimVPN)

		frame = victim.FrameNumber
		victim.Valid = false
		m.frames.Reassign(frame)
	}

	entry.FrameNumber = frame
	entry.Valid = true
	entry.LoadedAt = m.clock.Tick()

	return entry.FrameNumber*m.pageSize + offset, nil
}

// findVictim returns the vpn of the valid entry with the smallest
// loaded_at. It is used for both FIFO and LRU: the policies differ only
// in whether Translate updates loaded_at on a hit.
func (m *Manager) findVictim() uint64 {
	var victim uint64
	found := false
	var oldest uint64

	for vpn := uint64(0); vpn < m.pageTable.Size(); vpn++ {
		entry := m.pageTable.Entry(vpn)
		if !entry.Valid {
			continue
		}

		if !found || entry.LoadedAt < oldest {
			victim = vpn
			oldest = entry.LoadedAt
			found = true
		}
	}

	return victim
}

// PageFaults returns the cumulative number of faults since construction.
func (m *Manager) PageFaults() uint64 {
	return m.pageFaults
}

// Dump returns a read-only snapshot of the page table and the number of
// occupied frames.
func (m *Manager) Dump() ([]PageTableEntry, uint64) {
	return m.pageTable.Dump(), m.frames.Occupied()
}

func isPowerOfTwo(x uint64) bool {
	return x != 0 && x&(x-1) == 0
}
