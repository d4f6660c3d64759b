//go:build !linux
// +build !linux

// File: segment/cachesize_stub.go
// Author: payamazadi <payamazadi@gmail.com>
//
// Cache detection stub for platforms without a sysfs topology.

package segment

// cacheSizes reports unknown cache sizes; the policy uses its fallbacks.
func cacheSizes() (l1 int, l2 int) {
	return 0, 0
}
