// File: segment/table.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// Segment table construction. A table is a pure function of source length
// and segment size: an ordered, non-overlapping, exact cover of [0, L).
// Building is deterministic so repeated runs submit identical iovec shapes.

package segment

import "github.com/payamazadi/kopimashin/api"

// Segment is a contiguous sub-range of the mapped source, the unit of
// submission to the sink.
type Segment struct {
	Offset int
	Length int
}

// Table is an ordered sequence of segments covering a source exactly once.
type Table struct {
	segments []Segment
	total    int
}

// Build partitions a source of length bytes into segments of at most
// segSize bytes. The final segment absorbs the remainder.
func Build(length, segSize int) (*Table, error) {
	if length <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "source length must be positive").
			WithContext("length", length)
	}
	if segSize <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "segment size must be positive").
			WithContext("segment_size", segSize)
	}

	n := (length + segSize - 1) / segSize
	segs := make([]Segment, 0, n)
	for off := 0; off < length; off += segSize {
		l := segSize
		if off+l > length {
			l = length - off
		}
		segs = append(segs, Segment{Offset: off, Length: l})
	}
	return &Table{segments: segs, total: length}, nil
}

// Segments returns the ordered descriptors. Callers must not mutate.
func (t *Table) Segments() []Segment {
	return t.segments
}

// Count returns the number of segments.
func (t *Table) Count() int {
	return len(t.segments)
}

// Total returns the summed segment length, always the source length.
func (t *Table) Total() int {
	return t.total
}
