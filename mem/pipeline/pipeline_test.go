package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/Vaidurya-s/os-memory-management-simulator/mem/cache"
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/pipeline"
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/pipeline/pipelinemock"
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/vm"
)

type fakeRecorder struct {
	translations  int
	cacheAccesses int
	lastFault     bool
	lastHit       bool
}

func (f *fakeRecorder) RecordTranslation(virtualAddress, physicalAddress uint64, fault bool) {
	f.translations++
	f.lastFault = fault
}

func (f *fakeRecorder) RecordCacheAccess(physicalAddress uint64, hit bool) {
	f.cacheAccesses++
	f.lastHit = hit
}

var _ = Describe("Pipeline", func() {
	build := func() *pipeline.Pipeline {
		vmm, _ := vm.MakeBuilder().
			WithVirtualPages(8).WithPhysicalFrames(4).WithPageSize(4096).Build()
		l1, _ := cache.MakeBuilder().
			WithCacheSize(256).WithLineSize(64).WithAssociativity(1).Build()
		l2, _ := cache.MakeBuilder().
			WithCacheSize(1024).WithLineSize(64).WithAssociativity(2).Build()

		return pipeline.New(vmm, cache.NewHierarchy(l1, l2))
	}

	It("should translate then probe the cache, returning the physical address", func() {
		p := build()

		pa, hit, err := p.Access(0x1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(hit).To(BeFalse())
		Expect(pa & 0xFFF).To(Equal(uint64(0x000)))

		pa2, hit2, err := p.Access(0x1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(hit2).To(BeTrue())
		Expect(pa2).To(Equal(pa))
	})

	It("should surface the translation error without touching the cache", func() {
		p := build()

		_, _, err := p.Access(8 * 4096)
		Expect(err).To(MatchError(vm.ErrInvalidVirtualPage))
		Expect(p.Hierarchy().L1().Hits() + p.Hierarchy().L1().Misses()).To(Equal(uint64(0)))
	})

	It("should report both sub-events to an attached recorder", func() {
		p := build()
		rec := &fakeRecorder{}
		p.AttachRecorder(rec)

		p.Access(0x1000)

		Expect(rec.translations).To(Equal(1))
		Expect(rec.cacheAccesses).To(Equal(1))
		Expect(rec.lastFault).To(BeTrue())
		Expect(rec.lastHit).To(BeFalse())
	})

	It("should not call the recorder when none is attached", func() {
		p := build()

		Expect(func() { p.Access(0x1000) }).NotTo(Panic())
	})

	It("should call the recorder with the exact arguments a caller expects", func() {
		p := build()

		ctrl := gomock.NewController(GinkgoT())
		rec := pipelinemock.NewMockRecorder(ctrl)
		rec.EXPECT().RecordTranslation(uint64(0x1000), uint64(0x000), true)
		rec.EXPECT().RecordCacheAccess(uint64(0x000), false)

		p.AttachRecorder(rec)
		p.Access(0x1000)
	})
})
