package actions

import "sync"

// Counters is a concurrency-safe set of named counters.
type Counters struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewCounters creates an empty counter set.
func NewCounters() *Counters {
	return &Counters{counts: make(map[string]int)}
}

// Inc adds one to name and returns the new value.
func (c *Counters) Inc(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[name]++
	return c.counts[name]
}

// Get returns the value of name, zero if it was never incremented.
func (c *Counters) Get(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counts[name]
}

// Snapshot returns a copy of all counters.
func (c *Counters) Snapshot() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
