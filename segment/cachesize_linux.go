//go:build linux
// +build linux

// File: segment/cachesize_linux.go
// Author: payamazadi <payamazadi@gmail.com>
//
// Linux cache topology detection via sysfs. Reads cpu0's cache indexes and
// picks the L1 data cache and the L2 unified cache. Any parse or read
// failure yields zero, which the policy treats as "unknown".

package segment

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const sysfsCacheRoot = "/sys/devices/system/cpu/cpu0/cache"

// cacheSizes returns (L1 data, L2) sizes in bytes, zero when unknown.
func cacheSizes() (l1 int, l2 int) {
	indexes, err := filepath.Glob(filepath.Join(sysfsCacheRoot, "index*"))
	if err != nil {
		return 0, 0
	}
	for _, dir := range indexes {
		level := readSysfs(filepath.Join(dir, "level"))
		typ := readSysfs(filepath.Join(dir, "type"))
		size := parseCacheSize(readSysfs(filepath.Join(dir, "size")))
		if size <= 0 {
			continue
		}
		switch {
		case level == "1" && typ == "Data":
			l1 = size
		case level == "2":
			l2 = size
		}
	}
	return l1, l2
}

func readSysfs(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// parseCacheSize handles the sysfs "32K" / "12M" notation.
func parseCacheSize(s string) int {
	if s == "" {
		return 0
	}
	mult := 1
	switch s[len(s)-1] {
	case 'K':
		mult = 1024
		s = s[:len(s)-1]
	case 'M':
		mult = 1024 * 1024
		s = s[:len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n * mult
}
