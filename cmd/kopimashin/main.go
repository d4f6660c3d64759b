// File: cmd/kopimashin/main.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// kopimashin measures sustained scatter-gather write throughput from a
// memory-mapped source into a discard sink. Flag parsing and source-file
// provisioning live here; the measurement engine is the harness package.

package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/payamazadi/kopimashin/harness"
)

func main() {
	cfg := harness.DefaultConfig()

	sourcePath := flag.String("source", "", "source file to map; empty creates a temporary file")
	size := flag.Int("size", 3*1024*1024, "size of the generated source file when -source is empty")
	sinkPath := flag.String("sink", cfg.SinkPath, "write target")
	workers := flag.Int("workers", cfg.Workers, "number of worker units")
	duration := flag.Duration("duration", cfg.Duration, "run duration")
	segSize := flag.Int("segment-size", 0, "per-segment size in bytes; 0 selects the cache-aware policy")
	maxPerCall := flag.Int("max-batch", cfg.MaxPerCall, "max segments per vectored submission")
	pin := flag.Bool("pin", false, "pin worker units to cores")
	verify := flag.Bool("verify", false, "run a checksumming pass before measuring")

	flag.Parse()

	cfg.SourcePath = *sourcePath
	cfg.SinkPath = *sinkPath
	cfg.Workers = *workers
	cfg.Duration = *duration
	cfg.SegmentSize = *segSize
	cfg.MaxPerCall = *maxPerCall
	cfg.PinWorkers = *pin
	cfg.Verify = *verify

	var opts []harness.Option
	if cfg.SourcePath == "" {
		tmp, err := generateSource(*size)
		if err != nil {
			log.Fatalf("kopimashin: %v", err)
		}
		cfg.SourcePath = tmp
		// The watchdog halts the process, so deferred cleanup never
		// runs; remove the generated file from the exit hook instead.
		opts = append(opts, harness.WithExitFunc(func(code int) {
			os.Remove(tmp)
			os.Exit(code)
		}))
	}

	h, err := harness.New(cfg, opts...)
	if err != nil {
		log.Fatalf("kopimashin: %v", err)
	}
	if err := h.Run(); err != nil {
		log.Fatalf("kopimashin: %v", err)
	}
}

// generateSource writes a patterned temporary file of the given size.
func generateSource(size int) (string, error) {
	f, err := os.CreateTemp("", "kopimashin-*.bin")
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 64*1024)
	seed := uint32(time.Now().UnixNano())
	for i := range buf {
		seed = seed*1664525 + 1013904223
		buf[i] = byte(seed >> 24)
	}
	for written := 0; written < size; {
		n := len(buf)
		if size-written < n {
			n = size - written
		}
		if _, err := f.Write(buf[:n]); err != nil {
			os.Remove(f.Name())
			return "", err
		}
		written += n
	}
	return f.Name(), nil
}
