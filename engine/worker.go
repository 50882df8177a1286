package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/combogen-dev/combogen/sink"
	"github.com/combogen-dev/combogen/space"
)

// worker owns one contiguous range of the index space. It seeds its digit
// vector once from the range start, then walks the range with odometer
// increments, which keeps the per-element cost constant and allocation-free.
type worker struct {
	id      int
	rng     space.Range
	sp      *space.Space
	out     *sink.Locked    // shared sink; nil in dry-run and collect modes
	coll    *sink.Collector // collect mode only
	tracker *Tracker
	flushAt int
	dryRun  bool
}

func (w *worker) run(ctx context.Context) error {
	digits := space.ToDigits(w.rng.Start, w.sp.Base(), w.sp.Length)

	var err error
	switch {
	case w.dryRun:
		err = w.runDry(ctx, digits)
	case w.coll != nil:
		err = w.runCollect(ctx, digits)
	default:
		err = w.runStream(ctx, digits)
	}
	if err != nil {
		return err
	}

	log.Debug().
		Int("worker", w.id).
		Uint64("start", w.rng.Start).
		Uint64("count", w.rng.Count).
		Msg("worker range complete")
	return nil
}

// runStream renders into a local buffer and flushes whole blocks of complete
// combinations to the shared sink. Progress is batched so the atomic counter
// is touched once per progressBatch elements, and cancellation is observed
// at the same cadence.
func (w *worker) runStream(ctx context.Context, digits []uint32) error {
	base := uint32(w.sp.Base())
	buf := make([]byte, 0, w.flushAt+w.sp.Length+1)
	var acc uint64

	for i := uint64(0); i < w.rng.Count; i++ {
		buf = w.sp.RenderFast(buf, digits)
		space.Increment(digits, base)

		acc++
		if acc >= progressBatch {
			w.tracker.Add(acc)
			acc = 0
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if len(buf) >= w.flushAt {
			if _, err := w.out.Write(buf); err != nil {
				return fmt.Errorf("worker %d: write: %w", w.id, err)
			}
			buf = buf[:0]
		}
	}

	if len(buf) > 0 {
		if _, err := w.out.Write(buf); err != nil {
			return fmt.Errorf("worker %d: write: %w", w.id, err)
		}
	}
	if acc > 0 {
		w.tracker.Add(acc)
	}
	return nil
}

// runDry advances the digit vector and counts production without rendering
// or writing, which measures pure enumeration throughput. Nothing is
// emitted, so the resume cursor stays put.
func (w *worker) runDry(ctx context.Context, digits []uint32) error {
	base := uint32(w.sp.Base())
	var acc uint64

	for i := uint64(0); i < w.rng.Count; i++ {
		space.Increment(digits, base)
		acc++
		if acc >= progressBatch {
			w.tracker.AddProduced(acc)
			acc = 0
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
	if acc > 0 {
		w.tracker.AddProduced(acc)
	}
	return nil
}

// runCollect accumulates rendered combinations locally and merges them into
// the shared collector once, at the end of the range.
func (w *worker) runCollect(ctx context.Context, digits []uint32) error {
	base := uint32(w.sp.Base())
	local := make([][]byte, 0, int(min(w.rng.Count, 100_000)))
	var acc uint64

	for i := uint64(0); i < w.rng.Count; i++ {
		combo := make([]byte, w.sp.Length)
		for pos, d := range digits {
			combo[pos] = w.sp.Alphabet[d]
		}
		local = append(local, combo)
		space.Increment(digits, base)

		acc++
		if acc >= progressBatch {
			w.tracker.Add(acc)
			acc = 0
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}

	w.coll.Append(local)
	if acc > 0 {
		w.tracker.Add(acc)
	}
	return nil
}
