// Package codec implements the kernel's canonical serialization: a
// variable-length "compact" natural number encoding with four size modes,
// a fixed-length little-endian integer encoding for widths {1,2,4,8,16,32},
// and a length-prefixed byte-string encoding built on top of the natural
// encoding. Encoding is required to be unique — callers always get back
// the smallest mode that represents a given value — so two conforming
// implementations byte-exactly agree.
package codec

import (
	"fmt"
	"math/big"
)

// Mode boundaries for the compact natural number encoding. The encoding
// dispatches on the low two bits of the leading octet so that the
// big-integer mode's explicit tag (low bits == 0b11) can never be confused
// with a single-byte small value, no matter what that value's high bits
// look like.
const (
	mode0Max = 1<<6 - 1       // 63: fits in the 6 value-bits of a single octet
	mode1Max = 1<<14 - 1      // 16383: fits in the 14 value-bits of two octets
	mode2Max = 1<<30 - 1      // 1073741823: fits in the 30 value-bits of four octets
)

// DecodedNatural is the result of decoding a compact natural number: the
// value itself and the unconsumed remainder of the input.
type DecodedNatural struct {
	Value     *big.Int
	Remaining []byte
}

// EncodeNatural encodes a non-negative integer using the smallest of the
// four compact modes that can represent it.
//
//   - Mode 0 (tag 0b00): v in [0, 63], one octet, value<<2 | 0b00.
//   - Mode 1 (tag 0b01): v in [64, 16383], two little-endian octets,
//     value<<2 | 0b01.
//   - Mode 2 (tag 0b10): v in [16384, 1073741823], four little-endian
//     octets, value<<2 | 0b10.
//   - Mode 3 (tag 0b11): any larger v; first = (length<<2)|0b11 where
//     length is the minimum number of octets >= 4 covering v in
//     little-endian, followed by those `length` octets.
func EncodeNatural(v *big.Int) ([]byte, error) {
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegative, v.String())
	}

	switch {
	case v.IsUint64() && v.Uint64() <= mode0Max:
		return []byte{byte(v.Uint64()<<2) | 0b00}, nil

	case v.IsUint64() && v.Uint64() <= mode1Max:
		x := v.Uint64()<<2 | 0b01
		return []byte{byte(x), byte(x >> 8)}, nil

	case v.IsUint64() && v.Uint64() <= mode2Max:
		x := v.Uint64()<<2 | 0b10
		return []byte{byte(x), byte(x >> 8), byte(x >> 16), byte(x >> 24)}, nil

	default:
		le := littleEndianBytes(v)
		length := len(le)
		if length < 4 {
			length = 4
			padded := make([]byte, 4)
			copy(padded, le)
			le = padded
		}
		if length > 63 {
			return nil, fmt.Errorf("%w: natural %s needs %d octets", ErrWidthOverflow, v.String(), length)
		}
		out := make([]byte, 0, 1+length)
		out = append(out, byte(length<<2)|0b11)
		out = append(out, le...)
		return out, nil
	}
}

// EncodeNaturalUint64 is a convenience wrapper for the common case of
// encoding a native uint64.
func EncodeNaturalUint64(v uint64) []byte {
	enc, err := EncodeNatural(new(big.Int).SetUint64(v))
	if err != nil {
		// Unreachable: every uint64 is non-negative and fits mode 3 at worst.
		panic(err)
	}
	return enc
}

// DecodeNatural reads one compact natural number off the front of buf and
// returns its value plus the unconsumed remainder.
func DecodeNatural(buf []byte) (DecodedNatural, error) {
	if len(buf) == 0 {
		return DecodedNatural{}, fmt.Errorf("%w: empty input", ErrShortBuffer)
	}

	switch buf[0] & 0b11 {
	case 0b00:
		return DecodedNatural{
			Value:     new(big.Int).SetUint64(uint64(buf[0]) >> 2),
			Remaining: buf[1:],
		}, nil

	case 0b01:
		if len(buf) < 2 {
			return DecodedNatural{}, fmt.Errorf("%w: mode-1 natural needs 2 octets", ErrShortBuffer)
		}
		x := uint64(buf[0]) | uint64(buf[1])<<8
		return DecodedNatural{
			Value:     new(big.Int).SetUint64(x >> 2),
			Remaining: buf[2:],
		}, nil

	case 0b10:
		if len(buf) < 4 {
			return DecodedNatural{}, fmt.Errorf("%w: mode-2 natural needs 4 octets", ErrShortBuffer)
		}
		x := uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24
		return DecodedNatural{
			Value:     new(big.Int).SetUint64(x >> 2),
			Remaining: buf[4:],
		}, nil

	default: // 0b11
		length := int(buf[0]>>2) // number of trailing octets
		if len(buf) < 1+length {
			return DecodedNatural{}, fmt.Errorf("%w: mode-3 natural needs %d octets", ErrShortBuffer, length)
		}
		v := new(big.Int).SetBytes(reverseBytes(buf[1 : 1+length]))
		return DecodedNatural{
			Value:     v,
			Remaining: buf[1+length:],
		}, nil
	}
}

// littleEndianBytes returns v's minimal big-endian math/big representation
// reversed into little-endian order.
func littleEndianBytes(v *big.Int) []byte {
	be := v.Bytes()
	return reverseBytes(be)
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}
