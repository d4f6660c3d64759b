// File: source/source.go
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
//
// Memory-mapped read-only data source. The mapping is created once at
// startup, prefaulted, and never mutated afterwards, which is what makes
// unsynchronized concurrent reads from every worker legal. There is no
// degraded mode: a missing, empty, or unmappable file aborts startup.

package source

import (
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/payamazadi/kopimashin/api"
)

// MappedSource owns a read-only, zero-copy view of a file-backed buffer.
type MappedSource struct {
	f    *os.File
	data mmap.MMap
}

// prefaultSink defeats dead-load elimination in prefault.
var prefaultSink byte

// Open maps path read-only and prefaults every page.
func Open(path string) (*MappedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, api.WrapError(api.ErrCodeStartupIO, "cannot open source file", err).
			WithContext("path", path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, api.WrapError(api.ErrCodeStartupIO, "cannot stat source file", err).
			WithContext("path", path)
	}
	if info.Size() == 0 {
		f.Close()
		return nil, api.NewError(api.ErrCodeStartupIO, "source file is empty").
			WithContext("path", path)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, api.WrapError(api.ErrCodeStartupIO, "cannot map source file", err).
			WithContext("path", path).
			WithContext("size", info.Size())
	}

	advise(data)
	prefault(data)

	return &MappedSource{f: f, data: data}, nil
}

// View returns the immutable mapped region. Callers must not write through
// the returned slice; the mapping is PROT_READ and a write faults.
func (s *MappedSource) View() []byte {
	return s.data
}

// Len returns the mapped length in bytes.
func (s *MappedSource) Len() int {
	return len(s.data)
}

// Close unmaps the region and closes the backing file. Best-effort: the
// abrupt-termination path never calls it and relies on process exit.
func (s *MappedSource) Close() error {
	err := s.data.Unmap()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// prefault touches one byte per page so the first measured pass does not pay
// page-fault cost. The xor accumulator keeps the loads observable.
func prefault(b []byte) {
	page := os.Getpagesize()
	var acc byte
	for i := 0; i < len(b); i += page {
		acc ^= b[i]
	}
	prefaultSink = acc
}
