// Package jamhash provides the kernel's content-addressing primitive
// (Blake2b-256) and the deterministic merkle state root built on top of it.
package jamhash

import (
	"golang.org/x/crypto/blake2b"

	"github.com/esscrypt/peanutbutterandjam-core/pkg/types"
)

// Sum computes the Blake2b-256 digest of data. Blake2b-256 is used
// unpersonalized, matching the reference implementation's hashing
// convention throughout the kernel.
func Sum(data []byte) types.Hash {
	digest := blake2b.Sum256(data)
	return types.Hash(digest)
}

// SumConcat computes Blake2b-256 over the concatenation of the given byte
// slices without materializing an intermediate concatenated buffer for any
// slice individually larger than necessary — callers that already hold a
// single buffer should prefer Sum directly.
func SumConcat(parts ...[]byte) types.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails for an oversized key, and we pass nil.
		panic(err)
	}
	for _, p := range parts {
		h.Write(p)
	}
	var out types.Hash
	copy(out[:], h.Sum(nil))
	return out
}
