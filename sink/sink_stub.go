//go:build !unix

// File: sink/sink_stub.go
// Author: payamazadi <payamazadi@gmail.com>
//
// Sequential fallback for platforms without writev. Costs one call per
// segment instead of one per batch, so throughput numbers from this path
// are not comparable with the vectored path.

package sink

import "os"

func submitVectored(f *os.File, iov [][]byte) (int, error) {
	total := 0
	for _, b := range iov {
		n, err := f.Write(b)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
