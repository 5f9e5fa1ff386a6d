// Package config loads the construction parameters for the simulator's
// engines: built-in defaults, overridable from a .env file or the
// process environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Scenario holds the construction parameters for one end-to-end run:
// one buddy allocator, one free-list allocator, a two-level cache
// hierarchy, and a virtual memory manager.
type Scenario struct {
	BuddyTotalSize uint64

	FreeListTotalSize uint64
	FreeListStrategy  string

	L1CacheSize     uint64
	L1LineSize      uint64
	L1Associativity uint64
	L2CacheSize     uint64
	L2LineSize      uint64
	L2Associativity uint64

	VirtualPages   uint64
	PhysicalFrames uint64
	PageSize       uint64
	Policy         string
}

// Default returns the Scenario this package ships with before any
// environment override is applied.
func Default() Scenario {
	return Scenario{
		BuddyTotalSize: 1024,

		FreeListTotalSize: 1024,
		FreeListStrategy:  "FIRST_FIT",

		L1CacheSize:     256,
		L1LineSize:      64,
		L1Associativity: 1,
		L2CacheSize:     1024,
		L2LineSize:      64,
		L2Associativity: 2,

		VirtualPages:   64,
		PhysicalFrames: 16,
		PageSize:       4096,
		Policy:         "FIFO",
	}
}

// Load starts from Default, then overrides any field for which a
// MEMSIM_-prefixed environment variable is set. It first attempts to
// load a .env file at path; a missing file is not an error, since .env
// overrides are optional.
func Load(path string) Scenario {
	_ = godotenv.Load(path)

	s := Default()

	s.BuddyTotalSize = envUint("MEMSIM_BUDDY_TOTAL_SIZE", s.BuddyTotalSize)

	s.FreeListTotalSize = envUint("MEMSIM_FREELIST_TOTAL_SIZE", s.FreeListTotalSize)
	s.FreeListStrategy = envString("MEMSIM_FREELIST_STRATEGY", s.FreeListStrategy)

	s.L1CacheSize = envUint("MEMSIM_L1_CACHE_SIZE", s.L1CacheSize)
	s.L1LineSize = envUint("MEMSIM_L1_LINE_SIZE", s.L1LineSize)
	s.L1Associativity = envUint("MEMSIM_L1_ASSOCIATIVITY", s.L1Associativity)
	s.L2CacheSize = envUint("MEMSIM_L2_CACHE_SIZE", s.L2CacheSize)
	s.L2LineSize = envUint("MEMSIM_L2_LINE_SIZE", s.L2LineSize)
	s.L2Associativity = envUint("MEMSIM_L2_ASSOCIATIVITY", s.L2Associativity)

	s.VirtualPages = envUint("MEMSIM_VIRTUAL_PAGES", s.VirtualPages)
	s.PhysicalFrames = envUint("MEMSIM_PHYSICAL_FRAMES", s.PhysicalFrames)
	s.PageSize = envUint("MEMSIM_PAGE_SIZE", s.PageSize)
	s.Policy = envString("MEMSIM_POLICY", s.Policy)

	return s
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}

	return n
}
