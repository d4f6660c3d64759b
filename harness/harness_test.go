// File: harness/harness_test.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0

package harness

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payamazadi/kopimashin/api"
	"github.com/payamazadi/kopimashin/fake"
)

func writeSource(t *testing.T, size int) string {
	t.Helper()
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 253)
	}
	path := filepath.Join(t.TempDir(), "source.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// throttledFactory keeps spawned hot loops cheap: workers outlive the run
// by design, so test sinks sleep a little on every submission.
func throttledFactory() (api.Sink, error) {
	s := fake.NewSink()
	s.Delay = 200 * time.Microsecond
	return s, nil
}

// TestRun_EndToEnd runs a short bounded measurement and checks exactly one
// report line lands on the configured writer with exit code zero.
func TestRun_EndToEnd(t *testing.T) {
	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.SourcePath = writeSource(t, 256*1024)
	cfg.Workers = 2
	cfg.Duration = 80 * time.Millisecond
	cfg.SegmentSize = 64 * 1024
	cfg.Verify = true
	cfg.Out = &out

	h, err := New(cfg,
		WithExitFunc(func(int) {}),
		WithSinkFactory(throttledFactory),
	)
	require.NoError(t, err)

	require.NoError(t, h.Run())
	assert.Equal(t, 0, h.ExitCode())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 1, "exactly one report line")
	assert.Contains(t, lines[0], "iterations in")
	assert.Positive(t, h.Counter().Snapshot())
}

// TestRun_SinkFaultAbortsWithoutReport checks the steady-state fault path:
// a rejected submission halts the run with a non-zero code and no report.
func TestRun_SinkFaultAbortsWithoutReport(t *testing.T) {
	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.SourcePath = writeSource(t, 64*1024)
	cfg.Workers = 1
	cfg.Duration = time.Hour // the fault halts the run, never the timer
	cfg.SegmentSize = 16 * 1024
	cfg.Out = &out

	h, err := New(cfg,
		WithExitFunc(func(int) {}),
		WithSinkFactory(func() (api.Sink, error) {
			s := fake.NewSink()
			s.FailAfter = 2
			return s, nil
		}),
	)
	require.NoError(t, err)

	require.NoError(t, h.Run())
	assert.Equal(t, 1, h.ExitCode())
	assert.Empty(t, out.String(), "no throughput report on a fatal fault")
}

// TestRun_RepeatedRunsComparable runs the same configuration twice and
// checks the iteration estimates land within a bounded relative spread.
// The throttled sink makes the per-pass cost near deterministic, so a large gap
// indicates broken counting rather than scheduler noise.
func TestRun_RepeatedRunsComparable(t *testing.T) {
	run := func() uint64 {
		cfg := DefaultConfig()
		cfg.SourcePath = writeSource(t, 128*1024)
		cfg.Workers = 2
		cfg.Duration = 100 * time.Millisecond
		cfg.SegmentSize = 32 * 1024
		cfg.Out = &bytes.Buffer{}

		h, err := New(cfg, WithExitFunc(func(int) {}), WithSinkFactory(throttledFactory))
		require.NoError(t, err)
		require.NoError(t, h.Run())
		return h.Counter().Snapshot()
	}

	a := run()
	b := run()
	require.Positive(t, a)
	require.Positive(t, b)

	ratio := float64(a) / float64(b)
	assert.Greater(t, ratio, 0.5, "runs diverged: %d vs %d", a, b)
	assert.Less(t, ratio, 2.0, "runs diverged: %d vs %d", a, b)
}

// TestNew_ZeroWorkersFailsFast pins the explicit N = 0 decision: a
// configuration fault at startup, not a zero-throughput run.
func TestNew_ZeroWorkersFailsFast(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SourcePath = writeSource(t, 4096)
	cfg.Workers = 0

	_, err := New(cfg)
	require.Error(t, err)
	assert.Equal(t, api.ErrCodeInvalidArgument, api.CodeOf(err))
}

func TestNew_StartupFaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SourcePath = filepath.Join(t.TempDir(), "missing.bin")
	_, err := New(cfg)
	require.Error(t, err)
	assert.Equal(t, api.ErrCodeStartupIO, api.CodeOf(err))

	cfg = DefaultConfig()
	cfg.SourcePath = ""
	_, err = New(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.SourcePath = writeSource(t, 4096)
	cfg.Duration = 0
	_, err = New(cfg)
	assert.Error(t, err)
}

// TestVerify_CoversWholeSource checks the verification pass accounts for
// every mapped byte across multiple submission batches.
func TestVerify_CoversWholeSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SourcePath = writeSource(t, 96*1024)
	cfg.Workers = 1
	cfg.Duration = time.Hour
	cfg.SegmentSize = 8 * 1024
	cfg.MaxPerCall = 5 // 12 segments forced into 3 batches

	h, err := New(cfg, WithExitFunc(func(int) {}), WithSinkFactory(throttledFactory))
	require.NoError(t, err)
	require.Len(t, h.batches, 3)
	assert.NoError(t, h.verify())
}
