// File: harness/verify.go
// Author: payamazadi <payamazadi@gmail.com>
//
// Verification mode. Discard-target benchmarks can report figures beyond
// physical memory bandwidth when the environment elides the transfer; this
// pass routes one full pass over the table through a checksumming sink and
// proves every mapped byte actually flows through the submission path
// before any throughput number is trusted.

package harness

import (
	"hash/crc32"
	"log"

	"github.com/payamazadi/kopimashin/api"
	"github.com/payamazadi/kopimashin/sink"
)

// verify submits the whole table once to a ChecksumSink and compares byte
// count and CRC against the mapped view.
func (h *Harness) verify() error {
	chk := sink.NewChecksumSink()
	for _, iov := range h.batches {
		if _, err := chk.Submit(iov); err != nil {
			return err
		}
	}

	if chk.Total() != h.src.Len() {
		return api.NewError(api.ErrCodeInternal, "verification pass lost bytes").
			WithContext("submitted", chk.Total()).
			WithContext("mapped", h.src.Len())
	}
	want := crc32.ChecksumIEEE(h.src.View())
	if chk.Sum() != want {
		return api.NewError(api.ErrCodeInternal, "verification checksum mismatch").
			WithContext("got", chk.Sum()).
			WithContext("want", want)
	}

	log.Printf("[harness] verification pass ok: %d bytes, crc32 %08x", chk.Total(), chk.Sum())
	return nil
}
