// File: metrics/counter.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// Process-wide approximate iteration counter. One cache line, one atomic
// word, two operations. Workers only ever add; the watchdog reads once at
// run end. The padding keeps the hot word off any neighbouring allocation's
// cache line so concurrent increments from pinned workers never false-share
// with unrelated state.

package metrics

import "sync/atomic"

const cacheLine = 64

// Counter is a monotonic counter padded to exactly one cache line.
type Counter struct {
	n atomic.Uint64
	_ [cacheLine - 8]byte
}

// NewCounter returns a zeroed counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Inc adds one completed pass. No ordering is established with any other
// memory operation; the hot loop must not pay for one.
func (c *Counter) Inc() {
	c.n.Add(1)
}

// Snapshot returns some previously written value of the counter. Concurrent
// increments may not yet be visible, but the result never goes below a
// value a previous Snapshot returned.
func (c *Counter) Snapshot() uint64 {
	return c.n.Load()
}
