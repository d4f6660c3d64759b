// File: sink/checksum.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// Checksumming sink for verification mode. Reported benchmark figures are
// only trustworthy if bytes are genuinely transferred rather than elided by
// the target; this sink materializes every submitted byte into a CRC so a
// pre-run pass can prove the plumbing touches all of them.

package sink

import (
	"hash/crc32"

	"github.com/payamazadi/kopimashin/api"
)

// ChecksumSink accumulates a CRC32 and byte count over all submissions.
type ChecksumSink struct {
	crc   uint32
	total int
}

var _ api.Sink = (*ChecksumSink)(nil)

// NewChecksumSink returns an empty checksumming sink.
func NewChecksumSink() *ChecksumSink {
	return &ChecksumSink{}
}

// Submit folds every slice into the running checksum.
func (s *ChecksumSink) Submit(iov [][]byte) (int, error) {
	n := 0
	for _, b := range iov {
		s.crc = crc32.Update(s.crc, crc32.IEEETable, b)
		n += len(b)
	}
	s.total += n
	return n, nil
}

// Sum returns the accumulated CRC32 (IEEE).
func (s *ChecksumSink) Sum() uint32 {
	return s.crc
}

// Total returns the accumulated byte count.
func (s *ChecksumSink) Total() int {
	return s.total
}

// Close is a no-op.
func (s *ChecksumSink) Close() error {
	return nil
}
