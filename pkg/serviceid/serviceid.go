// Package serviceid implements the kernel's deterministic service-account
// identifier allocator: a parent id, the current entropy, and a timeslot
// are hashed down into a protocol-versioned numeric range, with a linear
// probe to skip ids already taken.
package serviceid

import (
	"math/big"

	"github.com/esscrypt/peanutbutterandjam-core/pkg/codec"
	"github.com/esscrypt/peanutbutterandjam-core/pkg/jamhash"
	"github.com/esscrypt/peanutbutterandjam-core/pkg/types"
)

// Accounts is the set of service ids already allocated, checked by
// Allocate's collision probe.
type Accounts map[uint64]struct{}

// Contains reports whether id is already allocated.
func (a Accounts) Contains(id uint64) bool {
	_, ok := a[id]
	return ok
}

// Version selects which range-reduction formula governs allocation.
// The boundary at 0.7.1 is a protocol constant, not a semver comparison:
// only these two shapes exist.
type Version int

const (
	// V070 is the pre-0.7.1 formula: id = (r mod (2^32 - 2^9)) + 2^8.
	V070 Version = iota
	// V071 is the 0.7.1+ formula, parameterized by C_minpublicindex:
	// id = (r mod (2^32 - C_minpublicindex - 2^8)) + C_minpublicindex.
	V071
)

const (
	rangeFloorV070 = 1 << 8
	rangeSizeV070  = uint64(1)<<32 - (1 << 9)
)

// Allocate derives the next free service id for parentServiceID, given the
// current entropy value and timeslot. accounts holds the ids already in
// use; Allocate probes forward (mod the same range) until it finds one
// absent from accounts.
//
// Deterministic: identical inputs always yield the identical id, since
// every step (seed construction, hashing, range reduction, and the probe
// order) is a pure function of its arguments.
func Allocate(parentServiceID uint64, entropy types.Hash, timeslot uint32, accounts Accounts, version Version, cMinPublicIndex uint64) (uint64, error) {
	seed, err := buildSeed(parentServiceID, entropy, timeslot)
	if err != nil {
		return 0, err
	}
	digest := jamhash.Sum(seed)
	r := uint64(digest[0]) | uint64(digest[1])<<8 | uint64(digest[2])<<16 | uint64(digest[3])<<24

	floor, rangeSize := allocationRange(version, cMinPublicIndex)
	id := (r % rangeSize) + floor

	for accounts.Contains(id) {
		id = ((id - floor + 1) % rangeSize) + floor
	}
	return id, nil
}

func allocationRange(version Version, cMinPublicIndex uint64) (floor, size uint64) {
	if version == V070 {
		return rangeFloorV070, rangeSizeV070
	}
	return cMinPublicIndex, uint64(1)<<32 - cMinPublicIndex - (1 << 8)
}

func buildSeed(parentServiceID uint64, entropy types.Hash, timeslot uint32) ([]byte, error) {
	parentEnc, err := codec.EncodeFixedLength(new(big.Int).SetUint64(parentServiceID), 8)
	if err != nil {
		return nil, err
	}
	timeslotEnc, err := codec.EncodeFixedLength(new(big.Int).SetUint64(uint64(timeslot)), 4)
	if err != nil {
		return nil, err
	}
	seed := make([]byte, 0, len(parentEnc)+types.HashLength+len(timeslotEnc))
	seed = append(seed, parentEnc...)
	seed = append(seed, entropy[:]...)
	seed = append(seed, timeslotEnc...)
	return seed, nil
}
