package engine

import "sync/atomic"

// progressBatch is how many elements a worker enumerates between shared
// counter updates, bounding atomic traffic in the hot loop.
const progressBatch = 50_000

// Tracker is the run's shared progress state: a produced counter and a
// resume cursor, both advanced with lock-free atomic adds. The produced
// counter is purely observational; the cursor feeds the checkpoint, so it
// only moves for combinations that were actually emitted. It is exact only
// once all workers have joined (ranges complete at different times, so a
// mid-run read can under-represent true progress).
type Tracker struct {
	produced atomic.Uint64
	cursor   atomic.Uint64
}

// NewTracker seeds the cursor with the resume offset the run started from.
func NewTracker(offset uint64) *Tracker {
	t := &Tracker{}
	t.cursor.Store(offset)
	return t
}

// Add records n more emitted combinations, advancing the resume cursor.
func (t *Tracker) Add(n uint64) {
	t.produced.Add(n)
	t.cursor.Add(n)
}

// AddProduced counts n combinations without moving the resume cursor. Dry
// runs enumerate without emitting, so their progress must never advance the
// checkpoint.
func (t *Tracker) AddProduced(n uint64) {
	t.produced.Add(n)
}

// Produced returns how many combinations this run has emitted so far.
func (t *Tracker) Produced() uint64 {
	return t.produced.Load()
}

// Cursor returns the resume offset implied by current progress.
func (t *Tracker) Cursor() uint64 {
	return t.cursor.Load()
}
