//go:build !linux
// +build !linux

// File: source/advise_stub.go
// Author: payamazadi <payamazadi@gmail.com>
//
// No-op access hints for platforms without madvise support.

package source

func advise(b []byte) {}
