package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Vaidurya-s/os-memory-management-simulator/config"
)

var _ = Describe("Load", func() {
	It("should return the built-in defaults when no env vars are set", func() {
		s := config.Load("")

		Expect(s.BuddyTotalSize).To(Equal(uint64(1024)))
		Expect(s.FreeListStrategy).To(Equal("FIRST_FIT"))
		Expect(s.Policy).To(Equal("FIFO"))
	})

	It("should override a field from the environment", func() {
		GinkgoT().Setenv("MEMSIM_POLICY", "LRU")
		GinkgoT().Setenv("MEMSIM_PHYSICAL_FRAMES", "8")

		s := config.Load("")

		Expect(s.Policy).To(Equal("LRU"))
		Expect(s.PhysicalFrames).To(Equal(uint64(8)))
		Expect(s.BuddyTotalSize).To(Equal(uint64(1024)))
	})

	It("should ignore a malformed numeric override and keep the default", func() {
		GinkgoT().Setenv("MEMSIM_L1_CACHE_SIZE", "not-a-number")

		s := config.Load("")

		Expect(s.L1CacheSize).To(Equal(uint64(256)))
	})
})
