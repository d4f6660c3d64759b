// File: watchdog/watchdog.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// One-shot run terminator. Armed once before the workers start; at expiry
// it reads the counter a single time, derives the throughput figure, writes
// exactly one report line, and halts the whole process. There is no
// per-worker shutdown negotiation: coordinating N units to stop would
// reintroduce the per-iteration check the worker loop exists to avoid.
// In-flight submissions at the moment of the halt are measurement noise.

package watchdog

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/payamazadi/kopimashin/api"
)

// Report is the derived end-of-run figure.
type Report struct {
	Iterations   uint64
	BytesPerPass int
	Duration     time.Duration
}

// Bytes returns the approximate total bytes submitted.
func (r Report) Bytes() uint64 {
	return r.Iterations * uint64(r.BytesPerPass)
}

// Throughput returns bytes per second.
func (r Report) Throughput() float64 {
	secs := r.Duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.Bytes()) / secs
}

// String renders the single report line.
func (r Report) String() string {
	const gib = 1024 * 1024 * 1024
	return fmt.Sprintf("%d iterations in %v: %d bytes (%.2f GiB/s)",
		r.Iterations, r.Duration, r.Bytes(), r.Throughput()/gib)
}

// Watchdog owns the authority to end the run.
type Watchdog struct {
	counter      api.Counter
	bytesPerPass int
	out          io.Writer
	exit         func(code int)
	armed        atomic.Bool
}

// Option adjusts a Watchdog at construction time.
type Option func(*Watchdog)

// WithOutput redirects the report line, default os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Watchdog) { d.out = w }
}

// WithExitFunc replaces the process halt, default os.Exit. Test seam.
func WithExitFunc(fn func(int)) Option {
	return func(d *Watchdog) { d.exit = fn }
}

// New builds a watchdog reading counter at expiry. bytesPerPass is the
// total byte count one counted iteration represents.
func New(counter api.Counter, bytesPerPass int, opts ...Option) (*Watchdog, error) {
	if counter == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "watchdog requires a counter")
	}
	if bytesPerPass <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "bytes per pass must be positive").
			WithContext("bytes_per_pass", bytesPerPass)
	}
	d := &Watchdog{
		counter:      counter,
		bytesPerPass: bytesPerPass,
		out:          os.Stdout,
		exit:         os.Exit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Arm installs the one-shot timer. A watchdog fires at most once per
// process; re-arming within a run is a programming error.
func (d *Watchdog) Arm(duration time.Duration) error {
	if duration <= 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "run duration must be positive").
			WithContext("duration", duration.String())
	}
	if !d.armed.CompareAndSwap(false, true) {
		return api.ErrAlreadyArmed
	}
	time.AfterFunc(duration, func() { d.fire(duration) })
	return nil
}

// fire executes the one-shot transition: snapshot, report, halt.
func (d *Watchdog) fire(duration time.Duration) {
	r := Report{
		Iterations:   d.counter.Snapshot(),
		BytesPerPass: d.bytesPerPass,
		Duration:     duration,
	}
	fmt.Fprintln(d.out, r.String())
	d.exit(0)
}
