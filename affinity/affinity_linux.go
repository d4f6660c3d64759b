//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: payamazadi <payamazadi@gmail.com>
//
// Linux thread affinity via sched_setaffinity on the calling thread. The
// caller must hold runtime.LockOSThread for the pin to stay meaningful.

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func setAffinityPlatform(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity(cpu %d): %w", cpuID, err)
	}
	return nil
}
