// File: segment/batch.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// Batch grouping for vectored submission. A sink accepts at most maxPerCall
// iovec entries per request (IOV_MAX on POSIX targets); a table larger than
// that is grouped into several submission batches. Grouping never truncates:
// every segment lands in exactly one batch, in table order.

package segment

import (
	"github.com/eapache/queue"

	"github.com/payamazadi/kopimashin/api"
)

// DefaultMaxPerCall matches the POSIX IOV_MAX floor of 1024 iovec entries.
const DefaultMaxPerCall = 1024

// Group splits the table's segments into submission batches of at most
// maxPerCall descriptors each.
func (t *Table) Group(maxPerCall int) ([][]Segment, error) {
	if maxPerCall <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "max segments per call must be positive").
			WithContext("max_per_call", maxPerCall)
	}

	pending := queue.New()
	for _, s := range t.segments {
		pending.Add(s)
	}

	batches := make([][]Segment, 0, (len(t.segments)+maxPerCall-1)/maxPerCall)
	for pending.Length() > 0 {
		n := pending.Length()
		if n > maxPerCall {
			n = maxPerCall
		}
		batch := make([]Segment, 0, n)
		for i := 0; i < n; i++ {
			batch = append(batch, pending.Remove().(Segment))
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// Iovecs resolves grouped segments against a concrete view into reusable
// scatter-gather slices. The result aliases view; since the view is an
// immutable mapping the slices are safe to share across workers and reuse
// for every loop iteration without copying.
func Iovecs(batches [][]Segment, view []byte) [][][]byte {
	out := make([][][]byte, len(batches))
	for i, batch := range batches {
		iov := make([][]byte, len(batch))
		for j, s := range batch {
			iov[j] = view[s.Offset : s.Offset+s.Length]
		}
		out[i] = iov
	}
	return out
}
