// Package alloc defines the capability set shared by the free-list and
// buddy allocators, so callers (tests, the CLI, the HTTP introspection
// layer) can drive either one without knowing which strategy is underneath.
package alloc

import "errors"

// ErrOutOfMemory names the condition in which no block large enough to
// satisfy a request is available. The allocators in this module do not
// return it: Allocate reports that condition as (0, false).
var ErrOutOfMemory = errors.New("alloc: no block large enough to satisfy request")

// BlockInfo is a read-only snapshot of one block in an allocator's arena,
// returned by Dump for inspection by a caller. It is never mutated by the
// allocator once returned.
type BlockInfo struct {
	Start uint64
	Size  uint64
	Free  bool
	// ID identifies an allocated block. It is meaningless when Free is
	// true.
	ID uint64
}

// Allocator is the capability set common to the free-list and buddy
// allocators: allocate a block, free it by id, and report metrics.
//
// Allocate returns the block's id and true on success, or (0, false) if no
// free region is large enough. Free is idempotent: freeing an unknown id is
// a no-op.
type Allocator interface {
	Allocate(size uint64) (id uint64, ok bool)
	Free(id uint64)

	Total() uint64
	Used() uint64
	FreeBytes() uint64
	LargestFreeBlock() uint64

	Dump() []BlockInfo
	Name() string
}
