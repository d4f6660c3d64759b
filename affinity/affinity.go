// File: affinity/affinity.go
// Author: payamazadi <payamazadi@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations
// live in separate files (affinity_linux.go, affinity_stub.go) guarded by
// build tags. Pinning a worker to a core keeps its segment working set in
// that core's private caches for the whole run.

package affinity

// SetAffinity pins the current OS thread to a given logical CPU/core on
// supported platforms. On unsupported platforms it returns an error; callers
// treat that as a lost optimization, not a fault.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}
