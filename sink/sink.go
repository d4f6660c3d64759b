// File: sink/sink.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// Vectored write sink. One Submit performs one scatter-gather transfer of
// the whole batch, which is the central performance lever of the harness:
// N segment-sized writes collapse into a single system call per loop
// iteration. The default target is the discard device.

package sink

import (
	"os"

	"github.com/payamazadi/kopimashin/api"
)

// Discard is the conventional discard device path.
const Discard = os.DevNull

// VectoredSink wraps a writable file descriptor accepting batched writes.
type VectoredSink struct {
	f *os.File
}

var _ api.Sink = (*VectoredSink)(nil)

// Open opens path for writing. Startup fault on any failure; the harness
// has no degraded mode.
func Open(path string) (*VectoredSink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, api.WrapError(api.ErrCodeStartupIO, "cannot open sink target", err).
			WithContext("path", path)
	}
	return &VectoredSink{f: f}, nil
}

// Submit transfers the whole batch in one vectored request and returns the
// byte count the target accepted. A short write is reported as a fault: at
// benchmark rates a partial acceptance means the environment is broken, and
// retry logic in the hot loop would distort the measurement.
func (s *VectoredSink) Submit(iov [][]byte) (int, error) {
	want := 0
	for _, b := range iov {
		want += len(b)
	}
	n, err := submitVectored(s.f, iov)
	if err != nil {
		return n, api.WrapError(api.ErrCodeSinkFault, "vectored submission failed", err).
			WithContext("batch_len", len(iov))
	}
	if n != want {
		return n, api.WrapError(api.ErrCodeSinkFault, "vectored submission truncated", api.ErrShortWrite).
			WithContext("accepted", n).
			WithContext("expected", want)
	}
	return n, nil
}

// Close closes the target.
func (s *VectoredSink) Close() error {
	return s.f.Close()
}
