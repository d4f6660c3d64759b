// File: api/interfaces.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// Core contracts shared by the harness components. The interfaces here are
// intentionally minimal: a worker loop only ever needs Submit and Inc, and
// the watchdog only ever needs Snapshot. Narrow surfaces keep the hot path
// free of accidental synchronization.

package api

// Sink abstracts a write target accepting scatter-gather submissions.
// One Submit call corresponds to one vectored transfer request; it returns
// the number of bytes the target accepted. A non-nil error is fatal for the
// whole run: at benchmark throughput a rejected submission signals a broken
// environment, not backpressure.
type Sink interface {
	// Submit transfers all slices in iov to the target in a single request.
	Submit(iov [][]byte) (int, error)

	// Close releases the underlying target.
	Close() error
}

// Counter is a monotonic, approximate iteration counter.
// Inc carries no ordering guarantee with respect to any other operation;
// Snapshot observes some previously written value, never an invented one.
type Counter interface {
	Inc()
	Snapshot() uint64
}
