//go:build !linux
// +build !linux

// File: affinity/affinity_stub.go
// Author: payamazadi <payamazadi@gmail.com>
//
// Stub for platforms without a thread-affinity syscall surface.

package affinity

import "github.com/payamazadi/kopimashin/api"

func setAffinityPlatform(cpuID int) error {
	return api.ErrNotSupported
}
