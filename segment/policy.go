// File: segment/policy.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// Cache-aware segment size policy. The sweet spot for vectored writes sits
// around 128 KiB; the policy clamps that target between the L1 data cache
// size (below it the iovec bookkeeping dominates) and half the L2 (above it
// segments evict each other). Detection failure is non-fatal and falls back
// to conservative constants silently.

package segment

const (
	fallbackL1  = 32 * 1024
	fallbackL2  = 512 * 1024
	targetChunk = 128 * 1024
)

// DefaultSegmentSize returns the segment size chosen by the cache policy.
func DefaultSegmentSize() int {
	l1, l2 := cacheSizes()
	if l1 <= 0 {
		l1 = fallbackL1
	}
	if l2 <= 0 {
		l2 = fallbackL2
	}

	minChunk := l1
	maxChunk := l2 / 2
	if maxChunk < minChunk {
		maxChunk = minChunk
	}

	size := targetChunk
	if size < minChunk {
		size = minChunk
	}
	if size > maxChunk {
		size = maxChunk
	}
	return size
}
