package vm

// A PageTableEntry holds the state needed to translate one virtual page
// number and to pick it as a replacement victim.
type PageTableEntry struct {
	Valid       bool
	FrameNumber uint64
	LoadedAt    uint64
}

// A PageTable is a dense, vpn-indexed array of entries sized at
// construction. Unlike a process-scoped page table keyed by address, this
// one is indexed directly by vpn, since the simulator models a single
// address space per Manager.
type PageTable struct {
	entries []PageTableEntry
}

// NewPageTable creates a PageTable with numPages entries, all initially
// invalid.
func NewPageTable(numPages uint64) *PageTable {
	return &PageTable{entries: make([]PageTableEntry, numPages)}
}

// Size returns the number of vpn slots in the table.
func (pt *PageTable) Size() uint64 {
	return uint64(len(pt.entries))
}

// Entry returns a pointer to the entry at vpn, for in-place mutation by
// the caller. The caller is responsible for bounds-checking vpn against
// Size.
func (pt *PageTable) Entry(vpn uint64) *PageTableEntry {
	return &pt.entries[vpn]
}

// Dump returns a read-only snapshot of every entry, indexed by vpn.
func (pt *PageTable) Dump() []PageTableEntry {
	out := make([]PageTableEntry, len(pt.entries))
	copy(out, pt.entries)

	return out
}
