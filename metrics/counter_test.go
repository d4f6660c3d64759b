// File: metrics/counter_test.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0

package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCounter_ConcurrentIncrements checks no increment is lost or invented
// under contention.
func TestCounter_ConcurrentIncrements(t *testing.T) {
	c := NewCounter()

	const goroutines = 8
	const perGoroutine = 10000

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				c.Inc()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(goroutines*perGoroutine), c.Snapshot())
}

// TestCounter_SnapshotMonotonic samples the counter while a writer runs and
// checks the observed sequence never decreases.
func TestCounter_SnapshotMonotonic(t *testing.T) {
	c := NewCounter()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100000; i++ {
			c.Inc()
		}
	}()

	var last uint64
	for {
		v := c.Snapshot()
		if v < last {
			t.Fatalf("snapshot went backwards: %d after %d", v, last)
		}
		last = v
		select {
		case <-done:
			assert.Equal(t, uint64(100000), c.Snapshot())
			return
		default:
		}
	}
}
