package bandersnatch

import (
	"math/big"

	"github.com/esscrypt/peanutbutterandjam-core/pkg/codec"
)

const encodedWidth = 32

// parityBit is the sole bit of X's 32-octet little-endian encoding that the
// field never sets on its own (fieldP < 2^255), reserved here to carry Y's
// parity so compressed points round-trip without a 33rd byte.
const parityBit = 0x80

// CompressPoint serializes p as a 32-octet little-endian X coordinate with
// Y's parity folded into X's otherwise-unused top bit.
func CompressPoint(p Point) ([32]byte, error) {
	var out [32]byte
	if p.Infinity {
		return out, ErrInvalidPoint
	}
	enc, err := codec.EncodeFixedLength(p.X, encodedWidth)
	if err != nil {
		return out, err
	}
	copy(out[:], enc)
	if p.Y.Bit(0) == 1 {
		out[encodedWidth-1] |= parityBit
	}
	return out, nil
}

// DecompressPoint recovers the point encoded by CompressPoint, rejecting
// encodings whose X coordinate is not on the curve.
func DecompressPoint(enc [32]byte) (Point, error) {
	parity := enc[encodedWidth-1] & parityBit
	raw := enc
	raw[encodedWidth-1] &^= parityBit

	x, rest, err := codec.DecodeFixedLength(raw[:], encodedWidth)
	if err != nil {
		return Point{}, err
	}
	if len(rest) != 0 {
		return Point{}, ErrShortEncoding
	}
	if x.Cmp(fieldP) >= 0 {
		return Point{}, ErrInvalidPoint
	}

	pt, ok := liftX(x)
	if !ok {
		return Point{}, ErrNotOnCurve
	}
	wantOdd := parity != 0
	if (pt.Y.Bit(0) == 1) != wantOdd {
		pt.Y = mod(new(big.Int).Neg(pt.Y))
	}
	return pt, nil
}

// EncodeScalar serializes a scalar already reduced mod the group order as
// 32 little-endian octets.
func EncodeScalar(s *big.Int) ([32]byte, error) {
	var out [32]byte
	enc, err := codec.EncodeFixedLength(s, encodedWidth)
	if err != nil {
		return out, err
	}
	copy(out[:], enc)
	return out, nil
}

// DecodeScalar parses 32 little-endian octets into a scalar in [0, order).
func DecodeScalar(enc [32]byte) (*big.Int, error) {
	v, rest, err := codec.DecodeFixedLength(enc[:], encodedWidth)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrShortEncoding
	}
	if v.Cmp(groupOrder) >= 0 {
		return nil, ErrInvalidScalar
	}
	return v, nil
}
