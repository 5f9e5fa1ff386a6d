// Package pipeline wires a virtual-memory manager to a cache hierarchy:
// every access first translates, then probes the cache with the
// resulting physical address.
package pipeline

import (
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/cache"
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/vm"
)

// Recorder receives sub-events after they occur. It never influences the
// outcome of Access: the pipeline calls it only once the synchronous
// translate/cache-access sequence has already completed.
type Recorder interface {
	RecordTranslation(virtualAddress, physicalAddress uint64, fault bool)
	RecordCacheAccess(physicalAddress uint64, hit bool)
}

// Pipeline wraps one Manager and one Hierarchy, routing a virtual
// address through translation and then through the cache on every
// Access call.
type Pipeline struct {
	vmm       *vm.Manager
	hierarchy *cache.Hierarchy
	recorder  Recorder
}

// New builds a Pipeline over an already-constructed Manager and
// Hierarchy. Either may be shared with other callers; Pipeline only
// reads and mutates them through their own public methods.
func New(vmm *vm.Manager, hierarchy *cache.Hierarchy) *Pipeline {
	return &Pipeline{vmm: vmm, hierarchy: hierarchy}
}

// AttachRecorder sets the optional observer notified after each Access.
// Passing nil detaches it.
func (p *Pipeline) AttachRecorder(r Recorder) {
	p.recorder = r
}

// Access translates virtualAddress and probes the cache hierarchy with
// the result, returning the physical address and whether the cache
// access was a hit. On an out-of-range virtual page, it returns the
// translation error without touching the cache.
func (p *Pipeline) Access(virtualAddress uint64) (uint64, bool, error) {
	faultsBefore := p.vmm.PageFaults()

	physicalAddress, err := p.vmm.Translate(virtualAddress)
	if err != nil {
		return 0, false, err
	}

	if p.recorder != nil {
		fault := p.vmm.PageFaults() > faultsBefore
		p.recorder.RecordTranslation(virtualAddress, physicalAddress, fault)
	}

	hit := p.hierarchy.Access(physicalAddress)

	if p.recorder != nil {
		p.recorder.RecordCacheAccess(physicalAddress, hit)
	}

	return physicalAddress, hit, nil
}

// VMM returns the wrapped virtual-memory manager.
func (p *Pipeline) VMM() *vm.Manager {
	return p.vmm
}

// Hierarchy returns the wrapped cache hierarchy.
func (p *Pipeline) Hierarchy() *cache.Hierarchy {
	return p.hierarchy
}
