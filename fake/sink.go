// Package fake
// Author: payamazadi <payamazadi@gmail.com>
//
// Fake sink implementations for testing worker loops and harness wiring
// without touching a real descriptor.

package fake

import (
	"sync/atomic"
	"time"

	"github.com/payamazadi/kopimashin/api"
)

// Sink is a recording discard sink. It counts submissions and bytes and can
// throttle each Submit so hot loops in tests do not saturate a core.
type Sink struct {
	submits atomic.Uint64
	bytes   atomic.Uint64

	// Delay is applied inside every Submit when non-zero.
	Delay time.Duration

	// FailAfter, when positive, makes Submit return Err once that many
	// submissions have succeeded.
	FailAfter uint64

	// Err is the fault returned once FailAfter is reached. Defaults to
	// api.ErrSinkRejected.
	Err error

	closed atomic.Bool
}

var _ api.Sink = (*Sink)(nil)

// NewSink returns an unlimited recording sink.
func NewSink() *Sink {
	return &Sink{}
}

// Submit records the batch and discards the data.
func (s *Sink) Submit(iov [][]byte) (int, error) {
	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}
	if s.FailAfter > 0 && s.submits.Load() >= s.FailAfter {
		err := s.Err
		if err == nil {
			err = api.ErrSinkRejected
		}
		return 0, err
	}
	n := 0
	for _, b := range iov {
		n += len(b)
	}
	s.submits.Add(1)
	s.bytes.Add(uint64(n))
	return n, nil
}

// Submits returns the number of successful submissions.
func (s *Sink) Submits() uint64 {
	return s.submits.Load()
}

// Bytes returns the total bytes accepted.
func (s *Sink) Bytes() uint64 {
	return s.bytes.Load()
}

// Close marks the sink closed.
func (s *Sink) Close() error {
	s.closed.Store(true)
	return nil
}

// Closed reports whether Close was called.
func (s *Sink) Closed() bool {
	return s.closed.Load()
}
