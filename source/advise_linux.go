//go:build linux
// +build linux

// File: source/advise_linux.go
// Author: payamazadi <payamazadi@gmail.com>
//
// Linux-specific access-pattern hints for the mapped region.

package source

import "golang.org/x/sys/unix"

// advise tells the kernel the region is read sequentially and wanted soon.
// Hint failures are ignored: madvise is advisory and never load-bearing.
func advise(b []byte) {
	_ = unix.Madvise(b, unix.MADV_SEQUENTIAL)
	_ = unix.Madvise(b, unix.MADV_WILLNEED)
}
