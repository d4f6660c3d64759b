//go:build unix

// File: sink/sink_unix.go
// Author: payamazadi <payamazadi@gmail.com>
//
// Unix vectored submission via writev(2).

package sink

import (
	"os"

	"golang.org/x/sys/unix"
)

// submitVectored issues a single writev covering all iovec entries.
func submitVectored(f *os.File, iov [][]byte) (int, error) {
	return unix.Writev(int(f.Fd()), iov)
}
