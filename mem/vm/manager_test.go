package vm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Vaidurya-s/os-memory-management-simulator/mem/vm"
)

var _ = Describe("Manager", func() {
	It("should reject a non-power-of-two page size", func() {
		_, err := vm.MakeBuilder().
			WithVirtualPages(8).WithPhysicalFrames(4).WithPageSize(100).Build()
		Expect(err).To(HaveOccurred())
	})

	It("should reject zero pages or zero frames", func() {
		_, err := vm.MakeBuilder().
			WithVirtualPages(0).WithPhysicalFrames(4).WithPageSize(4096).Build()
		Expect(err).To(HaveOccurred())
	})

	It("should reject a vpn outside the page table", func() {
		m, _ := vm.MakeBuilder().
			WithVirtualPages(4).WithPhysicalFrames(2).WithPageSize(4096).Build()

		_, err := m.Translate(4 * 4096)
		Expect(err).To(MatchError(vm.ErrInvalidVirtualPage))
	})

	Describe("offset preservation (scenario 6)", func() {
		It("should preserve the low bits of the virtual address", func() {
			m, _ := vm.MakeBuilder().
				WithVirtualPages(64).WithPhysicalFrames(16).WithPageSize(4096).Build()

			pa, err := m.Translate(0x1234)
			Expect(err).NotTo(HaveOccurred())
			Expect(pa & 0xFFF).To(Equal(uint64(0x234)))

			pa2, err := m.Translate(0x2ABC)
			Expect(err).NotTo(HaveOccurred())
			Expect(pa2 & 0xFFF).To(Equal(uint64(0xABC)))
		})
	})

	It("should not re-fault on a repeated translation of a resident page", func() {
		m, _ := vm.MakeBuilder().
			WithVirtualPages(8).WithPhysicalFrames(4).WithPageSize(4096).Build()

		pa1, _ := m.Translate(0)
		Expect(m.PageFaults()).To(Equal(uint64(1)))

		pa2, _ := m.Translate(0)
		Expect(m.PageFaults()).To(Equal(uint64(1)))
		Expect(pa2).To(Equal(pa1))
	})

	Describe("FIFO eviction order (scenario 3)", func() {
		It("should evict the oldest-loaded page first", func() {
			m, _ := vm.MakeBuilder().
				WithVirtualPages(8).WithPhysicalFrames(4).WithPolicy(vm.FIFO).
				WithPageSize(4096).Build()

			for _, vpn := range []uint64{0, 1, 2, 3, 4} {
				_, err := m.Translate(vpn * 4096)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(m.PageFaults()).To(Equal(uint64(5)))

			_, err := m.Translate(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.PageFaults()).To(Equal(uint64(6)))
		})
	})

	Describe("LRU recency-on-hit (scenario 7)", func() {
		It("should fault 10 times for the Belady string with 3 frames under true LRU", func() {
			m, _ := vm.MakeBuilder().
				WithVirtualPages(8).WithPhysicalFrames(3).WithPolicy(vm.LRU).
				WithPageSize(4096).Build()

			sequence := []uint64{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}
			for _, vpn := range sequence {
				_, err := m.Translate(vpn * 4096)
				Expect(err).NotTo(HaveOccurred())
			}

			// Cross-checked against a stack-based LRU simulation of the same
			// string: the two hits (vpn 1, then 2) right after the seventh
			// fault (vpn 5) are the only hits in the whole sequence.
			Expect(m.PageFaults()).To(Equal(uint64(10)))
		})

		It("should differ from FIFO's fault count on the same sequence", func() {
			sequence := []uint64{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

			fifo, _ := vm.MakeBuilder().
				WithVirtualPages(8).WithPhysicalFrames(3).WithPolicy(vm.FIFO).
				WithPageSize(4096).Build()
			for _, vpn := range sequence {
				fifo.Translate(vpn * 4096)
			}

			lru, _ := vm.MakeBuilder().
				WithVirtualPages(8).WithPhysicalFrames(3).WithPolicy(vm.LRU).
				WithPageSize(4096).Build()
			for _, vpn := range sequence {
				lru.Translate(vpn * 4096)
			}

			Expect(lru.PageFaults()).NotTo(Equal(fifo.PageFaults()))
		})
	})
})
