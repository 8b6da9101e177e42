package ipc

import (
	"github.com/coldex-io/coldex/errs"
	"github.com/coldex-io/coldex/internal/hash"
)

// BodyChecksum is an optional xxHash64 trailer over a record's body
// bytes, the kind of integrity check Arrow/Parquet readers commonly
// carry for page/record bodies to catch truncation or corruption in
// transit or at rest.
func BodyChecksum(body []byte) uint64 {
	return hash.Sum64(body)
}

// VerifyBodyChecksum compares want against the checksum of body, returning
// errs.ErrCorruptStream on mismatch.
func VerifyBodyChecksum(body []byte, want uint64) error {
	got := BodyChecksum(body)
	if got != want {
		return errs.CorruptStream("body checksum mismatch: want %x, got %x", want, got)
	}

	return nil
}
