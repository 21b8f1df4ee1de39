package jamhash

import (
	"bytes"
	"sort"

	"github.com/esscrypt/peanutbutterandjam-core/pkg/types"
)

// KeyValue is one entry of the unordered key-value set the state root is
// computed over. Key and Value are raw octets; hex is only a boundary
// format (see pkg/vectors), never the internal representation.
type KeyValue struct {
	Key   []byte
	Value []byte
}

const (
	leafTag     = 0x00
	internalTag = 0x01
)

// StateRoot computes the deterministic merkle root over an unordered set
// of key-value pairs:
//
//  1. Pairs are sorted lexicographically by key octets.
//  2. Each pair becomes a leaf hash H(0x00 || key || value).
//  3. Leaves are paired bottom-up into internal nodes H(0x01 || left ||
//     right); an odd node at any level is promoted by duplicating it.
//  4. The single remaining hash is the root.
//
// The leaf/internal domain tag (0x00 / 0x01) resolves the reference
// spec's leaf-tagging open question: without it, a promoted odd leaf at
// one level is byte-indistinguishable from a genuine internal node one
// level up whenever the two subtrees happen to hash equal, which tagging
// rules out by construction.
//
// The root is invariant under the insertion order of kvs (required
// property): the sort in step 1 is the only thing that matters.
func StateRoot(kvs []KeyValue) types.Hash {
	if len(kvs) == 0 {
		return types.Hash{}
	}

	sorted := make([]KeyValue, len(kvs))
	copy(sorted, kvs)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key, sorted[j].Key) < 0
	})

	level := make([]types.Hash, len(sorted))
	for i, kv := range sorted {
		level[i] = leafHash(kv.Key, kv.Value)
	}

	for len(level) > 1 {
		level = nextLevel(level)
	}
	return level[0]
}

func leafHash(key, value []byte) types.Hash {
	buf := make([]byte, 0, 1+len(key)+len(value))
	buf = append(buf, leafTag)
	buf = append(buf, key...)
	buf = append(buf, value...)
	return Sum(buf)
}

func internalHash(left, right types.Hash) types.Hash {
	var buf [1 + 32 + 32]byte
	buf[0] = internalTag
	copy(buf[1:33], left[:])
	copy(buf[33:65], right[:])
	return Sum(buf[:])
}

func nextLevel(level []types.Hash) []types.Hash {
	n := len(level)
	out := make([]types.Hash, 0, (n+1)/2)
	for i := 0; i < n; i += 2 {
		if i+1 < n {
			out = append(out, internalHash(level[i], level[i+1]))
		} else {
			// Odd node at this level: duplicate per the spec's rule.
			out = append(out, internalHash(level[i], level[i]))
		}
	}
	return out
}
