package bandersnatch

import (
	"encoding/binary"
	"math/big"

	"github.com/esscrypt/peanutbutterandjam-core/pkg/jamhash"
)

// maxHashToCurveAttempts bounds the try-and-increment loop. The chance any
// single candidate x lands off-curve is about 1/2, so exhausting this many
// counters without success would indicate a field/curve mismatch rather
// than bad luck.
const maxHashToCurveAttempts = 256

// hashToCurve implements the standard try-and-increment construction: hash
// context||message||counter, reduce mod p, and take the resulting x as a
// candidate curve point, incrementing the counter until one lands on the
// curve.
func hashToCurve(context, message []byte) (Point, error) {
	for counter := uint32(0); counter < maxHashToCurveAttempts; counter++ {
		var ctr [4]byte
		binary.LittleEndian.PutUint32(ctr[:], counter)
		digest := jamhash.SumConcat(context, message, ctr[:])
		x := mod(new(big.Int).SetBytes(digest[:]))
		if pt, ok := liftX(x); ok {
			return pt, nil
		}
	}
	return Point{}, ErrNotOnCurve
}

// hashToScalar reduces the Blake2b-256 digest of the concatenated parts
// modulo the group order, used for both the Fiat-Shamir challenge and the
// RFC-6979-style deterministic nonce.
func hashToScalar(parts ...[]byte) *big.Int {
	digest := jamhash.SumConcat(parts...)
	v := new(big.Int).SetBytes(digest[:])
	return v.Mod(v, groupOrder)
}
