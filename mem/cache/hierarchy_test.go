package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Vaidurya-s/os-memory-management-simulator/mem/cache"
)

var _ = Describe("Hierarchy", func() {
	buildLevel := func(size, line, assoc uint64) *cache.Level {
		l, err := cache.MakeBuilder().
			WithCacheSize(size).WithLineSize(line).WithAssociativity(assoc).Build()
		Expect(err).NotTo(HaveOccurred())

		return l
	}

	It("should satisfy l2_accesses = l1_misses for any access sequence", func() {
		l1 := buildLevel(256, 64, 1)
		l2 := buildLevel(1024, 64, 2)
		h := cache.NewHierarchy(l1, l2)

		addrs := []uint64{0x00, 0x00, 0x40, 0x100, 0x00, 0x200, 0x40, 0x00}
		for _, a := range addrs {
			h.Access(a)
		}

		Expect(l2.Hits() + l2.Misses()).To(Equal(l1.Misses()))
	})

	Describe("inclusive refill (scenario 5)", func() {
		It("should backfill L1 after an L2 hit and report the textbook counters", func() {
			l1 := buildLevel(256, 64, 1)
			l2 := buildLevel(1024, 64, 2)
			h := cache.NewHierarchy(l1, l2)

			const a, b = uint64(0x0000), uint64(0x0100) // both map to L1 set 0

			Expect(h.Access(a)).To(BeFalse()) // L1 miss, L2 miss: install both
			Expect(h.Access(a)).To(BeTrue())  // L1 hit
			Expect(h.Access(b)).To(BeFalse()) // evicts a from L1; L2 miss too
			Expect(h.Access(a)).To(BeTrue())  // L1 miss, L2 hit, L1 refilled

			Expect(l1.Hits()).To(Equal(uint64(1)))
			Expect(l1.Misses()).To(Equal(uint64(3)))
			Expect(l2.Hits()).To(Equal(uint64(1)))
			Expect(l2.Misses()).To(Equal(uint64(2)))
		})
	})
})
