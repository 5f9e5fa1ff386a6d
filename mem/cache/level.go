// Package cache implements a single set-associative cache level and a
// two-level inclusive hierarchy over it.
package cache

import (
	"fmt"
	"math/bits"

	"github.com/Vaidurya-s/os-memory-management-simulator/internal/clock"
)

// Address is the decoded (tag, index, offset) triple for a physical
// address within one cache level's geometry.
type Address struct {
	Tag    uint64
	Index  uint64
	Offset uint64
}

// line is one way within one set.
type line struct {
	valid      bool
	tag        uint64
	insertedAt uint64
}

// Level is a single set-associative cache: num_sets sets, each holding
// associativity lines. Eviction within a set picks an invalid line first,
// otherwise the line with the smallest insertedAt (FIFO-by-insertion, not
// true LRU).
type Level struct {
	name          string
	cacheSize     uint64
	lineSize      uint64
	associativity uint64
	numSets       uint64

	offsetBits uint
	indexBits  uint

	sets [][]line

	hits   uint64
	misses uint64
	clock  *clock.Clock
}

// Builder constructs a Level, validating its geometry once at Build time.
type Builder struct {
	name          string
	cacheSize     uint64
	lineSize      uint64
	associativity uint64
}

// MakeBuilder returns an empty Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithName sets the label returned by Name ("L1", "L2", ...). It defaults
// to "cache".
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithCacheSize sets the total cache capacity in bytes.
func (b Builder) WithCacheSize(cacheSize uint64) Builder {
	b.cacheSize = cacheSize
	return b
}

// WithLineSize sets the size in bytes of one cache line.
func (b Builder) WithLineSize(lineSize uint64) Builder {
	b.lineSize = lineSize
	return b
}

// WithAssociativity sets the number of ways per set.
func (b Builder) WithAssociativity(associativity uint64) Builder {
	b.associativity = associativity
	return b
}

// Build validates cache_size, line_size, and associativity and constructs
// the Level.
func (b Builder) Build() (*Level, error) {
	if b.cacheSize == 0 || b.lineSize == 0 || b.associativity == 0 {
		return nil, fmt.Errorf(
			"cache: size, line size, and associativity must all be > 0")
	}

	divisor := b.lineSize * b.associativity
	if b.cacheSize%divisor != 0 {
		return nil, fmt.Errorf(
			"cache: size %d must be divisible by line_size*associativity (%d)",
			b.cacheSize, divisor)
	}

	numSets := b.cacheSize / divisor
	if !isPowerOfTwo(b.lineSize) || !isPowerOfTwo(numSets) {
		return nil, fmt.Errorf(
			"cache: line size and number of sets must be powers of two "+
				"(got line_size=%d, num_sets=%d)", b.lineSize, numSets)
	}

	name := b.name
	if name == "" {
		name = "cache"
	}

	l := &Level{
		name:          name,
		cacheSize:     b.cacheSize,
		lineSize:      b.lineSize,
		associativity: b.associativity,
		numSets:       numSets,
		offsetBits:    uint(bits.Len64(b.lineSize - 1)),
		indexBits:     uint(bits.Len64(numSets - 1)),
		clock:         clock.New(),
	}

	l.sets = make([][]line, numSets)
	for i := range l.sets {
		l.sets[i] = make([]line, b.associativity)
	}

	return l, nil
}

// Name returns the level's label.
func (l *Level) Name() string {
	return l.name
}

// NumSets returns the number of sets derived from the level's geometry.
func (l *Level) NumSets() uint64 {
	return l.numSets
}

// DecodeAddress splits a physical address into (tag, index, offset) using
// this level's geometry.
func (l *Level) DecodeAddress(physicalAddress uint64) Address {
	offsetMask := (uint64(1) << l.offsetBits) - 1
	indexMask := (uint64(1) << l.indexBits) - 1

	return Address{
		Offset: physicalAddress & offsetMask,
		Index:  (physicalAddress >> l.offsetBits) & indexMask,
		Tag:    physicalAddress >> (l.offsetBits + l.indexBits),
	}
}

// Access decodes address, looks it up in its set, and reports whether it
// was resident. A hit increments hits; a miss increments misses and fills
// the set with the new line, evicting a victim per the policy above.
func (l *Level) Access(physicalAddress uint64) bool {
	addr := l.DecodeAddress(physicalAddress)
	set := l.sets[addr.Index]

	for i := range set {
		if set[i].valid && set[i].tag == addr.Tag {
			l.hits++
			return true
		}
	}

	l.misses++
	l.installLine(set, addr)

	return false
}

// Fill installs address into its set without touching hit/miss counters.
// Used by Hierarchy to refill an inner level after an outer-level hit,
// without double-counting the access.
func (l *Level) Fill(physicalAddress uint64) {
	addr := l.DecodeAddress(physicalAddress)
	l.installLine(l.sets[addr.Index], addr)
}

// installLine installs addr into set, choosing a victim per findVictim.
// If a line already holds this tag (a repeated fill of the same address),
// it is reused in place rather than evicting something else, so
// back-to-back fills of one tag collapse to a single valid line.
func (l *Level) installLine(set []line, addr Address) {
	for i := range set {
		if set[i].valid && set[i].tag == addr.Tag {
			set[i].insertedAt = l.clock.Tick()
			return
		}
	}

	victim := l.findVictim(set)
	victim.valid = true
	victim.tag = addr.Tag
	victim.insertedAt = l.clock.Tick()
}

// findVictim returns a pointer to the line that should be evicted: the
// first invalid line, or else the line with the smallest insertedAt.
func (l *Level) findVictim(set []line) *line {
	for i := range set {
		if !set[i].valid {
			return &set[i]
		}
	}

	victim := &set[0]
	for i := range set {
		if set[i].insertedAt < victim.insertedAt {
			victim = &set[i]
		}
	}

	return victim
}

// Hits returns the number of Access calls that found a resident tag.
func (l *Level) Hits() uint64 {
	return l.hits
}

// Misses returns the number of Access calls that did not find a resident
// tag.
func (l *Level) Misses() uint64 {
	return l.misses
}

// HitRatio returns hits / (hits + misses), or 0 if Access has never been
// called.
func (l *Level) HitRatio() float64 {
	total := l.hits + l.misses
	if total == 0 {
		return 0
	}

	return float64(l.hits) / float64(total)
}

func isPowerOfTwo(x uint64) bool {
	return x != 0 && x&(x-1) == 0
}
