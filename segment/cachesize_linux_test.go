//go:build linux
// +build linux

// File: segment/cachesize_linux_test.go
// Author: payamazadi <payamazadi@gmail.com>

package segment

import "testing"

func TestParseCacheSize(t *testing.T) {
	cases := map[string]int{
		"32K":   32 * 1024,
		"128K":  128 * 1024,
		"12M":   12 * 1024 * 1024,
		"512":   512,
		"":      0,
		"junkK": 0,
	}
	for in, want := range cases {
		if got := parseCacheSize(in); got != want {
			t.Errorf("parseCacheSize(%q) = %d, want %d", in, got, want)
		}
	}
}
