package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Vaidurya-s/os-memory-management-simulator/mem/cache"
)

var _ = Describe("Level", func() {
	It("should reject a zero dimension", func() {
		_, err := cache.MakeBuilder().
			WithCacheSize(0).WithLineSize(64).WithAssociativity(1).Build()
		Expect(err).To(HaveOccurred())
	})

	It("should reject a size not divisible by line_size*associativity", func() {
		_, err := cache.MakeBuilder().
			WithCacheSize(100).WithLineSize(64).WithAssociativity(1).Build()
		Expect(err).To(HaveOccurred())
	})

	It("should reject a non-power-of-two line size", func() {
		_, err := cache.MakeBuilder().
			WithCacheSize(96).WithLineSize(3).WithAssociativity(1).Build()
		Expect(err).To(HaveOccurred())
	})

	Describe("address decoding (boundary cases)", func() {
		It("should decode address 0 as (tag=0, index=0, offset=0)", func() {
			l, _ := cache.MakeBuilder().
				WithCacheSize(1024).WithLineSize(64).WithAssociativity(1).Build()

			addr := l.DecodeAddress(0)
			Expect(addr).To(Equal(cache.Address{Tag: 0, Index: 0, Offset: 0}))
		})

		It("should decode the address at the tag boundary as tag=1", func() {
			l, _ := cache.MakeBuilder().
				WithCacheSize(1024).WithLineSize(64).WithAssociativity(1).Build()

			// 16 sets -> offset_bits=6, index_bits=4; 1<<(6+4) = 1024.
			Expect(l.NumSets()).To(Equal(uint64(16)))

			addr := l.DecodeAddress(1024)
			Expect(addr).To(Equal(cache.Address{Tag: 1, Index: 0, Offset: 0}))
		})
	})

	Describe("conflict miss in a direct-mapped cache (scenario 4)", func() {
		It("should evict on a same-set conflicting access", func() {
			l, _ := cache.MakeBuilder().
				WithCacheSize(1024).WithLineSize(64).WithAssociativity(1).Build()
			Expect(l.NumSets()).To(Equal(uint64(16)))

			Expect(l.Access(0x0000)).To(BeFalse())
			Expect(l.Access(0x0000)).To(BeTrue())

			// 0x0400 = 1024, same set (index 0) as 0x0000, different tag.
			Expect(l.Access(0x0400)).To(BeFalse())
			Expect(l.Access(0x0000)).To(BeFalse())

			Expect(l.Hits()).To(Equal(uint64(1)))
			Expect(l.Misses()).To(Equal(uint64(3)))
		})
	})

	It("should be idempotent when filling the same tag twice", func() {
		l, _ := cache.MakeBuilder().
			WithCacheSize(1024).WithLineSize(64).WithAssociativity(2).Build()

		l.Fill(0x40)
		l.Fill(0x40)

		Expect(l.Access(0x40)).To(BeTrue())
		Expect(l.Hits()).To(Equal(uint64(1)))
	})

	It("should compute hit ratio as hits/(hits+misses), 0 with no accesses", func() {
		l, _ := cache.MakeBuilder().
			WithCacheSize(256).WithLineSize(64).WithAssociativity(1).Build()

		Expect(l.HitRatio()).To(Equal(0.0))

		l.Access(0x00)
		l.Access(0x00)

		Expect(l.HitRatio()).To(Equal(0.5))
	})
})
