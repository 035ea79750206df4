package orchestrator

import "sync/atomic"

// counter is a concurrency-safe running total, standing in for the
// Python original's threading.Lock-guarded Counter increments.
type counter struct {
	v int64
}

func (c *counter) inc() int {
	return int(atomic.AddInt64(&c.v, 1))
}

func (c *counter) get() int {
	return int(atomic.LoadInt64(&c.v))
}
