// File: segment/table_test.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0

package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuild_ExactDisjointCover checks that segments cover [0, L) exactly
// once for a spread of lengths and segment sizes.
func TestBuild_ExactDisjointCover(t *testing.T) {
	cases := []struct {
		length  int
		segSize int
	}{
		{length: 3 * 1024 * 1024, segSize: 128 * 1024},
		{length: 1, segSize: 128 * 1024},
		{length: 128*1024 + 1, segSize: 128 * 1024},
		{length: 4096, segSize: 4096},
		{length: 1000, segSize: 333},
	}
	for _, tc := range cases {
		table, err := Build(tc.length, tc.segSize)
		require.NoError(t, err)

		next := 0
		sum := 0
		for _, s := range table.Segments() {
			require.Equal(t, next, s.Offset, "segments must be contiguous")
			require.Positive(t, s.Length)
			require.LessOrEqual(t, s.Length, tc.segSize)
			next = s.Offset + s.Length
			sum += s.Length
		}
		assert.Equal(t, tc.length, sum, "concatenated lengths must equal L")
		assert.Equal(t, tc.length, table.Total())
	}
}

// TestBuild_Deterministic checks identical boundaries across repeated calls.
func TestBuild_Deterministic(t *testing.T) {
	a, err := Build(3*1024*1024, 128*1024)
	require.NoError(t, err)
	b, err := Build(3*1024*1024, 128*1024)
	require.NoError(t, err)
	assert.Equal(t, a.Segments(), b.Segments())
}

// TestBuild_ThreeMiBYields24Segments pins the canonical scenario: a 3 MiB
// source at 128 KiB segments yields exactly 24 descriptors, and a sink
// limit of 24 groups them into a single submission batch.
func TestBuild_ThreeMiBYields24Segments(t *testing.T) {
	table, err := Build(3*1024*1024, 128*1024)
	require.NoError(t, err)
	require.Equal(t, 24, table.Count())

	batches, err := table.Group(24)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 24)
}

// TestGroup_SplitsWithoutTruncation checks that exceeding the per-call
// limit produces extra batches, never dropped segments.
func TestGroup_SplitsWithoutTruncation(t *testing.T) {
	table, err := Build(25*64*1024, 64*1024)
	require.NoError(t, err)
	require.Equal(t, 25, table.Count())

	batches, err := table.Group(24)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 24)
	assert.Len(t, batches[1], 1)

	total := 0
	for _, batch := range batches {
		for _, s := range batch {
			total += s.Length
		}
	}
	assert.Equal(t, table.Total(), total)
}

func TestBuild_InvalidInputs(t *testing.T) {
	_, err := Build(0, 4096)
	assert.Error(t, err)
	_, err = Build(4096, 0)
	assert.Error(t, err)

	table, err := Build(4096, 1024)
	require.NoError(t, err)
	_, err = table.Group(0)
	assert.Error(t, err)
}

// TestIovecs_AliasesView checks resolved slices point into the view with
// the right offsets and no copying.
func TestIovecs_AliasesView(t *testing.T) {
	view := make([]byte, 1000)
	for i := range view {
		view[i] = byte(i)
	}
	table, err := Build(len(view), 256)
	require.NoError(t, err)
	batches, err := table.Group(2)
	require.NoError(t, err)

	iovs := Iovecs(batches, view)
	require.Len(t, iovs, 2)

	flat := make([]byte, 0, len(view))
	for _, iov := range iovs {
		for _, b := range iov {
			flat = append(flat, b...)
		}
	}
	assert.Equal(t, view, flat)
	assert.Same(t, &view[0], &iovs[0][0][0], "iovecs must alias the view")
}

// TestDefaultSegmentSize checks the policy stays inside sane bounds on any
// host, detection or fallback.
func TestDefaultSegmentSize(t *testing.T) {
	size := DefaultSegmentSize()
	assert.GreaterOrEqual(t, size, 4*1024)
	assert.LessOrEqual(t, size, 8*1024*1024)

	// Policy is deterministic per host.
	assert.Equal(t, size, DefaultSegmentSize())
}
