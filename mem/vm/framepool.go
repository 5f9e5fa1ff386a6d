package vm

// A FramePool tracks which physical frames are currently bound to a
// valid page-table entry.
type FramePool struct {
	free []bool
}

// NewFramePool creates a pool of numFrames frames, all initially free.
func NewFramePool(numFrames uint64) *FramePool {
	free := make([]bool, numFrames)
	for i := range free {
		free[i] = true
	}

	return &FramePool{free: free}
}

// Size returns the total number of frames in the pool.
func (fp *FramePool) Size() uint64 {
	return uint64(len(fp.free))
}

// Allocate returns the lowest-indexed free frame and marks it in use. The
// bool return reports whether a free frame was found.
func (fp *FramePool) Allocate() (uint64, bool) {
	for i, isFree := range fp.free {
		if isFree {
			fp.free[i] = false
			return uint64(i), true
		}
	}

	return 0, false
}

// Reassign marks frame still in use, transferring ownership from an
// evicted page to the page that is about to occupy it without ever
// passing through the free state.
func (fp *FramePool) Reassign(frame uint64) {
	fp.free[frame] = false
}

// Release marks frame free.
func (fp *FramePool) Release(frame uint64) {
	fp.free[frame] = true
}

// Occupied reports how many frames are currently bound to a valid entry.
func (fp *FramePool) Occupied() uint64 {
	var n uint64
	for _, isFree := range fp.free {
		if !isFree {
			n++
		}
	}

	return n
}
