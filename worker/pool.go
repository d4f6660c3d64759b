// File: worker/pool.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// Worker pool driving the hot loop. Each unit is an independent goroutine,
// optionally locked to an OS thread and pinned to a core, that submits the
// precomputed iovec batches and bumps the shared counter once per full pass
// over the table. The loop carries no stop flag and no select: at the
// iteration rates this harness targets, a per-iteration check on shared
// state becomes the dominant cost. Units are ended only by the watchdog's
// whole-process halt.

package worker

import (
	"log"
	"runtime"

	"github.com/payamazadi/kopimashin/affinity"
	"github.com/payamazadi/kopimashin/api"
)

// Config holds the immutable inputs of a pool.
type Config struct {
	// Count is the number of worker units. Must be positive.
	Count int

	// Pin locks each unit to an OS thread and pins it to core id % NumCPU.
	Pin bool

	// NewSink builds one sink per unit, so units never contend on a
	// shared descriptor.
	NewSink func() (api.Sink, error)

	// Batches are the resolved scatter-gather batches covering the whole
	// source. Shared read-only by all units.
	Batches [][][]byte

	// Counter receives one Inc per completed pass over all batches.
	Counter api.Counter

	// Abort is invoked on a fatal sink fault. It must not return control
	// to the loop; the default harness hook halts the process.
	Abort func(error)
}

// Pool starts N worker units. It performs no monitoring and no join: units
// run until the process ends.
type Pool struct {
	cfg Config
}

// NewPool validates the configuration.
func NewPool(cfg Config) (*Pool, error) {
	if cfg.Count <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "worker count must be positive").
			WithContext("count", cfg.Count)
	}
	if len(cfg.Batches) == 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "no submission batches")
	}
	if cfg.NewSink == nil || cfg.Counter == nil || cfg.Abort == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "pool wiring incomplete")
	}
	return &Pool{cfg: cfg}, nil
}

// Spawn opens every unit's sink, then starts the units. Sink creation
// happens up front so startup faults surface before any loop begins.
func (p *Pool) Spawn() error {
	sinks := make([]api.Sink, p.cfg.Count)
	for i := range sinks {
		s, err := p.cfg.NewSink()
		if err != nil {
			for _, open := range sinks[:i] {
				open.Close()
			}
			return err
		}
		sinks[i] = s
	}
	for i, s := range sinks {
		go p.run(i, s)
	}
	return nil
}

// run is the unit body. A unit never leaves its loop on its own; only the
// run-level halt or a fatal sink fault ends it.
func (p *Pool) run(id int, s api.Sink) {
	if p.cfg.Pin {
		runtime.LockOSThread()
		if err := affinity.SetAffinity(id % runtime.NumCPU()); err != nil {
			log.Printf("[worker] unit %d: pinning unavailable: %v", id, err)
		}
	}

	batches := p.cfg.Batches
	for {
		for _, iov := range batches {
			if _, err := s.Submit(iov); err != nil {
				p.cfg.Abort(err)
				return
			}
		}
		p.cfg.Counter.Inc()
	}
}
