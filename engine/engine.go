package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/combogen-dev/combogen/sink"
	"github.com/combogen-dev/combogen/space"
)

// Engine coordinates one enumeration run: partition the effective range,
// spawn one worker per sub-range, join them, flush the sink, persist the
// final checkpoint, and report.
type Engine struct {
	cfg  Config
	spec SinkSpec
	sp   *space.Space

	// Reporter receives periodic progress lines while workers run. Defaults
	// to silent.
	Reporter Reporter
}

// Result summarizes a completed run.
type Result struct {
	RunID     string
	Produced  uint64
	Resumed   uint64 // resume offset the run started from
	Total     uint64 // full space size
	Effective uint64 // total clamped by the limit
	Workers   int
	Elapsed   time.Duration
	Collected *sink.Collector // non-nil in collect mode
}

// BytesWritten is the uncompressed output volume: every combination is
// Length bytes plus a newline.
func (r *Result) BytesWritten(length int) uint64 {
	return r.Produced * uint64(length+1)
}

// New validates the configuration and constructs the run's space. All
// configuration and overflow errors surface here, before any worker spawns
// or any file is touched.
func New(cfg Config) (*Engine, error) {
	spec, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	sp, err := space.New(cfg.Alphabet, cfg.Length)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:      cfg,
		spec:     spec,
		sp:       sp,
		Reporter: &SilentReporter{},
	}, nil
}

// Space exposes the run's combination space.
func (e *Engine) Space() *space.Space {
	return e.sp
}

// Run executes the enumeration. A run with nothing to do (limit 0, or a
// resume offset at or past the effective total) returns a zero-produced
// Result without opening the sink. Any worker write error cancels the whole
// run and is returned; a checkpoint write failure at the end is logged but
// does not fail an otherwise complete run.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	res := &Result{
		RunID:   runID,
		Total:   e.sp.Total,
		Workers: e.cfg.Workers,
	}

	effective := e.sp.Total
	if e.cfg.Limit < effective {
		effective = e.cfg.Limit
	}
	res.Effective = effective

	var ckpt *Checkpoint
	var offset uint64
	if e.cfg.Resume != "" {
		ckpt = NewCheckpoint(e.cfg.Resume)
		var err error
		offset, err = ckpt.Load(e.sp)
		if err != nil {
			return nil, err
		}
		if offset > 0 {
			log.Info().Uint64("offset", offset).Msg("resuming from checkpoint")
		}
	}
	res.Resumed = offset

	ranges := space.Partition(offset, effective, e.cfg.Workers)
	if len(ranges) == 0 {
		log.Info().Msg("nothing to do")
		return res, nil
	}
	if len(ranges) < e.cfg.Workers {
		log.Info().Int("requested", e.cfg.Workers).Int("adjusted", len(ranges)).
			Msg("fewer elements than workers, reducing worker count")
	}
	res.Workers = len(ranges)

	out, coll, err := e.openSink()
	if err != nil {
		return nil, err
	}
	res.Collected = coll

	tracker := NewTracker(offset)
	remaining := effective - offset
	start := time.Now()

	log.Info().
		Str("run_id", runID).
		Uint64("base", e.sp.Base()).
		Int("length", e.sp.Length).
		Uint64("total", e.sp.Total).
		Uint64("effective", effective).
		Int("workers", len(ranges)).
		Str("sink", e.spec.Mode.String()).
		Msg("starting generation")

	g, gctx := errgroup.WithContext(ctx)
	for i, rng := range ranges {
		w := &worker{
			id:      i,
			rng:     rng,
			sp:      e.sp,
			out:     out,
			coll:    coll,
			tracker: tracker,
			flushAt: e.flushThreshold(),
			dryRun:  e.cfg.DryRun,
		}
		g.Go(func() error {
			return w.run(gctx)
		})
	}

	progressDone := make(chan struct{})
	go e.reportProgress(gctx, tracker, remaining, progressDone)

	runErr := g.Wait()
	close(progressDone)

	if out != nil {
		if err := out.Close(); err != nil && runErr == nil {
			runErr = fmt.Errorf("close sink: %w", err)
		}
	}
	if runErr != nil {
		return nil, runErr
	}

	res.Produced = tracker.Produced()
	res.Elapsed = time.Since(start)

	// A dry run emits nothing, so it has no business rewriting the resume
	// offset a later real run will start from.
	if ckpt != nil && !e.cfg.DryRun {
		if err := ckpt.Save(tracker.Cursor(), e.sp, runID); err != nil {
			// Enumeration already completed and the data is durable; only
			// resumability is impaired.
			log.Warn().Err(err).Msg("checkpoint write failed")
		}
	}

	return res, nil
}

// openSink builds the run's single active sink. Dry runs open nothing.
func (e *Engine) openSink() (*sink.Locked, *sink.Collector, error) {
	if e.cfg.DryRun {
		return nil, nil, nil
	}
	switch e.spec.Mode {
	case ModeCollect:
		return nil, sink.NewCollector(), nil
	case ModeDiscard:
		return sink.NewLocked(sink.NewDiscard()), nil, nil
	default:
		var s sink.Sink
		var err error
		switch {
		case e.spec.Path == "-":
			s = sink.NewStdout(e.cfg.BatchSize)
		case e.spec.Compress:
			s, err = sink.NewGzipFile(e.spec.Path, e.cfg.BatchSize)
		default:
			s, err = sink.NewFile(e.spec.Path, e.cfg.BatchSize)
		}
		if err != nil {
			return nil, nil, err
		}
		return sink.NewLocked(s), nil, nil
	}
}

// flushThreshold is how full a worker's local buffer gets before it takes
// the sink lock. Capped below the sink buffer so a flush never forces an
// extra partial write.
func (e *Engine) flushThreshold() int {
	if e.cfg.BatchSize < writeThreshold {
		return e.cfg.BatchSize
	}
	return writeThreshold
}

// reportProgress prints a progress line once a second until the run ends.
func (e *Engine) reportProgress(ctx context.Context, tracker *Tracker, remaining uint64, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			produced := tracker.Produced()
			percent := float64(produced) / float64(remaining) * 100
			e.Reporter.Printf("progress: %s / %s (%.1f%%)\n",
				formatCount(produced), formatCount(remaining), percent)
		}
	}
}
