package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vaidurya-s/os-memory-management-simulator/config"
	"github.com/Vaidurya-s/os-memory-management-simulator/httpapi"
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/alloc"
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/alloc/buddy"
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/alloc/freelist"
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/cache"
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/pipeline"
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/vm"
	"github.com/Vaidurya-s/os-memory-management-simulator/tracing"
)

var (
	serveAddr string
	tracePath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Assemble the engines from the loaded scenario and serve the HTTP introspection API",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario := loadScenario()

		p, allocators, err := buildEngines(scenario)
		if err != nil {
			return err
		}

		if tracePath != "" {
			rec, err := tracing.NewRecorder(tracePath)
			if err != nil {
				return fmt.Errorf("serve: open trace db: %w", err)
			}
			defer rec.Close()

			p.AttachRecorder(rec)
		}

		srv := httpapi.NewServer(p, allocators...)

		cmd.Printf("serving on %s\n", serveAddr)

		return srv.ListenAndServe(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	serveCmd.Flags().StringVar(&tracePath, "trace-db", "", "optional sqlite path to record a trace of every access")
}

func buildEngines(s config.Scenario) (*pipeline.Pipeline, []alloc.Allocator, error) {
	buddyAlloc, err := buddy.MakeBuilder().WithTotalSize(s.BuddyTotalSize).Build()
	if err != nil {
		return nil, nil, fmt.Errorf("serve: build buddy allocator: %w", err)
	}

	strategy := freelist.FirstFit
	switch s.FreeListStrategy {
	case "BEST_FIT":
		strategy = freelist.BestFit
	case "WORST_FIT":
		strategy = freelist.WorstFit
	}

	freeListAlloc, err := freelist.MakeBuilder().
		WithTotalSize(s.FreeListTotalSize).WithStrategy(strategy).Build()
	if err != nil {
		return nil, nil, fmt.Errorf("serve: build free-list allocator: %w", err)
	}

	l1, err := cache.MakeBuilder().WithName("L1").
		WithCacheSize(s.L1CacheSize).WithLineSize(s.L1LineSize).
		WithAssociativity(s.L1Associativity).Build()
	if err != nil {
		return nil, nil, fmt.Errorf("serve: build L1: %w", err)
	}

	l2, err := cache.MakeBuilder().WithName("L2").
		WithCacheSize(s.L2CacheSize).WithLineSize(s.L2LineSize).
		WithAssociativity(s.L2Associativity).Build()
	if err != nil {
		return nil, nil, fmt.Errorf("serve: build L2: %w", err)
	}

	policy := vm.FIFO
	if s.Policy == "LRU" {
		policy = vm.LRU
	}

	vmm, err := vm.MakeBuilder().
		WithVirtualPages(s.VirtualPages).WithPhysicalFrames(s.PhysicalFrames).
		WithPageSize(s.PageSize).WithPolicy(policy).Build()
	if err != nil {
		return nil, nil, fmt.Errorf("serve: build virtual memory manager: %w", err)
	}

	p := pipeline.New(vmm, cache.NewHierarchy(l1, l2))

	return p, []alloc.Allocator{buddyAlloc, freeListAlloc}, nil
}
