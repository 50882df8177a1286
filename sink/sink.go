// Package sink provides the byte sinks combination workers stream into: a
// buffered file, standard output, a gzip-wrapped file, a discard sink, and an
// in-memory collector. A Locked wrapper serializes concurrent writers.
package sink

import (
	"io"
	"sync"
)

// Sink is a durable byte stream. Write appends, Flush pushes buffered bytes
// down, Close flushes and releases the underlying resource.
type Sink interface {
	io.Writer
	Flush() error
	Close() error
}

// Locked serializes access to a shared Sink. Each Write is one critical
// section, so a worker's flushed block lands contiguously: bytes of a single
// combination are never split or interleaved with another worker's output.
// Blocks from different workers land in lock-acquisition order, which means
// the global stream is NOT in index order across workers; order is only
// guaranteed within one worker's range.
type Locked struct {
	mu sync.Mutex
	s  Sink
}

// NewLocked wraps s for shared use by concurrent workers.
func NewLocked(s Sink) *Locked {
	return &Locked{s: s}
}

func (l *Locked) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Write(p)
}

func (l *Locked) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Flush()
}

func (l *Locked) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Close()
}
