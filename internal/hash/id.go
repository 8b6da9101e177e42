// Package hash centralizes the xxHash64 primitive this module uses for
// body checksums, so every caller goes through one seam instead of
// importing cespare/xxhash directly.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a string key.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum64 computes the xxHash64 of raw bytes, the form ipc.BodyChecksum
// trailers use.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
