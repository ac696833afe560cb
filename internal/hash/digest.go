package hash

import "github.com/cespare/xxhash/v2"

// Digest computes the xxHash64 fingerprint of a payload. The diff engine uses
// it to show compact before/after values for changed asset data.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}
