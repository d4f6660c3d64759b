// File: harness/harness.go
// Unified facade layer for the kopimashin benchmark harness.
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// This file defines the Harness struct, which aggregates all core components
// of the benchmark behind a single facade. It maps the source, builds the
// segment table, resolves the scatter-gather batches, and wires counter,
// worker pool, and watchdog based on immutable configuration. The facade
// exposes Run, which performs the optional verification pass, arms the
// one-shot watchdog, starts the workers, and blocks until the run is halted.

package harness

import (
	"io"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/payamazadi/kopimashin/api"
	"github.com/payamazadi/kopimashin/metrics"
	"github.com/payamazadi/kopimashin/segment"
	"github.com/payamazadi/kopimashin/sink"
	"github.com/payamazadi/kopimashin/source"
	"github.com/payamazadi/kopimashin/watchdog"
	"github.com/payamazadi/kopimashin/worker"
)

// Config holds parameters immutable per run.
type Config struct {
	SourcePath  string        // File backing the mapped source
	SinkPath    string        // Write target, default the discard device
	Workers     int           // Number of worker units, must be positive
	Duration    time.Duration // Run duration before the watchdog fires
	SegmentSize int           // Per-segment size; 0 selects the cache policy
	MaxPerCall  int           // Max iovec entries per vectored submission
	PinWorkers  bool          // Pin each unit to a core
	Verify      bool          // Run a checksumming pass before measuring
	Out         io.Writer     // Report destination, default os.Stdout
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		SinkPath:    sink.Discard,              // write into the discard device
		Workers:     runtime.NumCPU(),          // one unit per logical CPU
		Duration:    10 * time.Second,          // 10-second measurement window
		SegmentSize: 0,                         // cache-aware policy decides
		MaxPerCall:  segment.DefaultMaxPerCall, // POSIX IOV_MAX floor
		PinWorkers:  false,                     // pinning is opt-in
		Verify:      false,                     // verification is opt-in
		Out:         os.Stdout,
	}
}

// Option adjusts harness wiring at construction time.
type Option func(*Harness)

// WithExitFunc replaces the process halt, default os.Exit. The hook runs
// exactly once, for both the report path (code 0) and the fault path.
func WithExitFunc(fn func(code int)) Option {
	return func(h *Harness) { h.exit = fn }
}

// WithSinkFactory replaces the per-worker sink constructor. Test seam.
func WithSinkFactory(fn func() (api.Sink, error)) Option {
	return func(h *Harness) { h.newSink = fn }
}

// Harness aggregates the benchmark components for one run.
type Harness struct {
	cfg     *Config
	src     *source.MappedSource
	table   *segment.Table
	batches [][][]byte
	counter *metrics.Counter
	dog     *watchdog.Watchdog
	newSink func() (api.Sink, error)

	exit     func(code int)
	haltOnce sync.Once
	done     chan struct{}
	code     int
}

// New validates the configuration, maps the source, and builds the
// submission plan. Any failure here is a startup fault: nothing has been
// spawned yet and the caller should exit non-zero without a report.
func New(cfg *Config, opts ...Option) (*Harness, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Workers <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "worker count must be positive").
			WithContext("workers", cfg.Workers)
	}
	if cfg.Duration <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "run duration must be positive").
			WithContext("duration", cfg.Duration.String())
	}
	if cfg.SourcePath == "" {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "source path is required")
	}

	h := &Harness{
		cfg:  cfg,
		exit: os.Exit,
		done: make(chan struct{}),
	}
	h.newSink = func() (api.Sink, error) { return sink.Open(cfg.SinkPath) }
	for _, opt := range opts {
		opt(h)
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	src, err := source.Open(cfg.SourcePath)
	if err != nil {
		return nil, err
	}
	h.src = src

	segSize := cfg.SegmentSize
	if segSize <= 0 {
		segSize = segment.DefaultSegmentSize()
	}
	table, err := segment.Build(src.Len(), segSize)
	if err != nil {
		src.Close()
		return nil, err
	}
	h.table = table
	groups, err := table.Group(cfg.MaxPerCall)
	if err != nil {
		src.Close()
		return nil, err
	}
	h.batches = segment.Iovecs(groups, src.View())

	h.counter = metrics.NewCounter()
	dog, err := watchdog.New(h.counter, table.Total(),
		watchdog.WithOutput(cfg.Out),
		watchdog.WithExitFunc(func(code int) { h.halt(code) }),
	)
	if err != nil {
		src.Close()
		return nil, err
	}
	h.dog = dog

	log.Printf("[harness] mapped %d bytes from %s", src.Len(), cfg.SourcePath)
	log.Printf("[harness] segment size %d KiB, %d segments, %d batches per pass",
		segSize/1024, table.Count(), len(h.batches))
	log.Printf("[harness] workers: %d, pin: %v, sink: %s, duration: %v",
		cfg.Workers, cfg.PinWorkers, cfg.SinkPath, cfg.Duration)

	return h, nil
}

// Counter exposes the shared counter for observation during a run.
func (h *Harness) Counter() api.Counter {
	return h.counter
}

// Run executes one measurement run. On the normal path it never returns:
// the watchdog halts the process after printing the report. It returns only
// on startup faults or when an injected exit hook suppresses the halt.
func (h *Harness) Run() error {
	if h.cfg.Verify {
		if err := h.verify(); err != nil {
			return err
		}
	}

	// The watchdog is installed before any worker starts, so a timer
	// installation failure is still a startup fault.
	if err := h.dog.Arm(h.cfg.Duration); err != nil {
		return err
	}

	pool, err := worker.NewPool(worker.Config{
		Count:   h.cfg.Workers,
		Pin:     h.cfg.PinWorkers,
		NewSink: h.newSink,
		Batches: h.batches,
		Counter: h.counter,
		Abort:   h.abort,
	})
	if err != nil {
		return err
	}
	if err := pool.Spawn(); err != nil {
		return err
	}

	<-h.done
	return nil
}

// ExitCode reports the code passed to the halt, meaningful once Run
// returned under an injected exit hook.
func (h *Harness) ExitCode() int {
	return h.code
}

// abort is the steady-state fault path: a rejected submission ends the
// whole run immediately, with no report and a non-zero code.
func (h *Harness) abort(err error) {
	log.Printf("[harness] fatal sink fault, aborting run: %v", err)
	h.halt(1)
}

// halt performs the whole-process stop exactly once. Workers are never
// signalled: process exit reclaims the mapping and every descriptor.
func (h *Harness) halt(code int) {
	h.haltOnce.Do(func() {
		h.code = code
		close(h.done)
		h.exit(code)
	})
}
