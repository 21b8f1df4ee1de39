package codec

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// ValidWidths are the only fixed-length integer widths the codec supports.
var ValidWidths = [...]int{1, 2, 4, 8, 16, 32}

func isValidWidth(w int) bool {
	for _, v := range ValidWidths {
		if v == w {
			return true
		}
	}
	return false
}

// EncodeFixedLength encodes v as an unsigned little-endian integer of
// exactly width octets. Width 32 is the width used for opaque
// identifier-style encodings (e.g. compressed curve points), for which the
// codec delegates to uint256 since that is the ecosystem's standard
// 256-bit integer type.
func EncodeFixedLength(v *big.Int, width int) ([]byte, error) {
	if !isValidWidth(width) {
		return nil, fmt.Errorf("%w: width %d", ErrInvalidWidth, width)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegative, v.String())
	}

	if width == 32 {
		u, overflow := uint256.FromBig(v)
		if overflow {
			return nil, fmt.Errorf("%w: %s exceeds 32 octets", ErrWidthOverflow, v.String())
		}
		out := u.Bytes32() // big-endian
		le := make([]byte, 32)
		for i, b := range out {
			le[31-i] = b
		}
		return le, nil
	}

	le := littleEndianBytes(v)
	if len(le) > width {
		return nil, fmt.Errorf("%w: %s exceeds %d octets", ErrWidthOverflow, v.String(), width)
	}
	out := make([]byte, width)
	copy(out, le)
	return out, nil
}

// EncodeFixedLengthUint64 is a convenience wrapper for encoding a native
// uint64 at a given width.
func EncodeFixedLengthUint64(v uint64, width int) ([]byte, error) {
	return EncodeFixedLength(new(big.Int).SetUint64(v), width)
}

// DecodeFixedLength reads exactly width octets off the front of buf as a
// little-endian unsigned integer.
func DecodeFixedLength(buf []byte, width int) (*big.Int, []byte, error) {
	if !isValidWidth(width) {
		return nil, nil, fmt.Errorf("%w: width %d", ErrInvalidWidth, width)
	}
	if len(buf) < width {
		return nil, nil, fmt.Errorf("%w: need %d octets, have %d", ErrShortBuffer, width, len(buf))
	}

	if width == 32 {
		var be [32]byte
		for i := 0; i < 32; i++ {
			be[31-i] = buf[i]
		}
		u := new(uint256.Int).SetBytes(be[:])
		return u.ToBig(), buf[width:], nil
	}

	v := new(big.Int).SetBytes(reverseBytes(buf[:width]))
	return v, buf[width:], nil
}
