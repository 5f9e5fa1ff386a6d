// Package httpapi exposes read-only JSON views of a running pipeline's
// engines over HTTP, for interactive experimentation. It never mutates
// engine state; every handler only reads metrics and dumps.
package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/pprof"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/Vaidurya-s/os-memory-management-simulator/mem/alloc"
	"github.com/Vaidurya-s/os-memory-management-simulator/mem/pipeline"
)

// Server wraps one pipeline and a set of named allocators, routing
// read-only introspection requests to them.
type Server struct {
	pipeline   *pipeline.Pipeline
	allocators map[string]alloc.Allocator
	router     *mux.Router
}

// NewServer builds a Server over pipeline and allocators, keyed by each
// allocator's Name().
func NewServer(p *pipeline.Pipeline, allocators ...alloc.Allocator) *Server {
	s := &Server{
		pipeline:   p,
		allocators: make(map[string]alloc.Allocator),
	}

	for _, a := range allocators {
		s.allocators[a.Name()] = a
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/metrics", s.metrics)
	r.HandleFunc("/api/dump/{engine}", s.dump)
	r.HandleFunc("/api/resource", s.resource)
	r.HandleFunc("/api/profile", s.profile)
	s.router = r

	return s
}

// ListenAndServe starts the HTTP server on addr. It blocks until the
// server stops or errors.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// ServeHTTP lets Server be used directly as an http.Handler, e.g. under
// httptest or behind another mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type metricsResponse struct {
	VM struct {
		PageFaults uint64 `json:"page_faults"`
	} `json:"vm,omitempty"`
	Cache struct {
		L1Hits   uint64  `json:"l1_hits"`
		L1Misses uint64  `json:"l1_misses"`
		L2Hits   uint64  `json:"l2_hits"`
		L2Misses uint64  `json:"l2_misses"`
		HitRatio float64 `json:"hit_ratio"`
	} `json:"cache,omitempty"`
	Allocators map[string]allocatorMetrics `json:"allocators,omitempty"`
}

type allocatorMetrics struct {
	Total            uint64 `json:"total"`
	Used             uint64 `json:"used"`
	Free             uint64 `json:"free"`
	LargestFreeBlock uint64 `json:"largest_free_block"`
}

func (s *Server) metrics(w http.ResponseWriter, _ *http.Request) {
	var resp metricsResponse

	if s.pipeline != nil {
		resp.VM.PageFaults = s.pipeline.VMM().PageFaults()

		h := s.pipeline.Hierarchy()
		resp.Cache.L1Hits = h.L1().Hits()
		resp.Cache.L1Misses = h.L1().Misses()
		resp.Cache.L2Hits = h.L2().Hits()
		resp.Cache.L2Misses = h.L2().Misses()
		resp.Cache.HitRatio = h.L1().HitRatio()
	}

	if len(s.allocators) > 0 {
		resp.Allocators = make(map[string]allocatorMetrics, len(s.allocators))
		for name, a := range s.allocators {
			resp.Allocators[name] = allocatorMetrics{
				Total:            a.Total(),
				Used:             a.Used(),
				Free:             a.FreeBytes(),
				LargestFreeBlock: a.LargestFreeBlock(),
			}
		}
	}

	writeJSON(w, resp)
}

func (s *Server) dump(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["engine"]

	if name == "vm" {
		entries, occupied := s.pipeline.VMM().Dump()
		writeJSON(w, struct {
			Entries  interface{} `json:"entries"`
			Occupied uint64      `json:"occupied_frames"`
		}{entries, occupied})

		return
	}

	a, ok := s.allocators[name]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "unknown engine %q", name)

		return
	}

	writeJSON(w, a.Dump())
}

type resourceResponse struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (s *Server) resource(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if dieOnErr(w, err) {
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if dieOnErr(w, err) {
		return
	}

	memInfo, err := proc.MemoryInfo()
	if dieOnErr(w, err) {
		return
	}

	writeJSON(w, resourceResponse{CPUPercent: cpuPercent, MemorySize: memInfo.RSS})
}

// profile collects a one-second CPU profile of the server process and
// returns it decoded as JSON, mirroring how a larger simulator exposes
// pprof data for interactive tooling instead of a raw .pprof download.
func (s *Server) profile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	if dieOnErr(w, pprof.StartCPUProfile(buf)) {
		return
	}

	time.Sleep(time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if dieOnErr(w, err) {
		return
	}

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("httpapi: encode response: %v", err)
	}
}

func dieOnErr(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, "error: %v", err)

	return true
}
