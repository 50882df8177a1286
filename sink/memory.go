package sink

import "sync"

// Collector accumulates rendered combinations in memory. Workers build
// per-worker slices and merge them with one Append at the end of their
// range, so the lock is taken once per worker rather than once per element.
type Collector struct {
	mu     sync.Mutex
	combos [][]byte
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Append merges a worker's local batch under lock.
func (c *Collector) Append(batch [][]byte) {
	c.mu.Lock()
	c.combos = append(c.combos, batch...)
	c.mu.Unlock()
}

// Len reports how many combinations were collected.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.combos)
}

// Sample returns up to n collected combinations for display.
func (c *Collector) Sample(n int) [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > len(c.combos) {
		n = len(c.combos)
	}
	out := make([][]byte, n)
	copy(out, c.combos[:n])
	return out
}

// Combos returns the collected combinations. The caller must not mutate the
// returned slices while workers are still running.
func (c *Collector) Combos() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.combos
}
