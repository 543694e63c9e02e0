package hash

import (
	"github.com/cespare/xxhash/v2"
)

// String hashes a string key with xxhash, so the value is stable across
// processes. It is the hasher used for batch keys.
func String(key string) uint64 {
	return xxhash.Sum64String(key)
}
