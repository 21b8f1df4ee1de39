package codec

import (
	"fmt"
	"math/big"
)

// EncodeBytes length-prefixes b with its compact-natural-encoded length:
// encodeNatural(len(b)) || b.
func EncodeBytes(b []byte) []byte {
	prefix := EncodeNaturalUint64(uint64(len(b)))
	out := make([]byte, 0, len(prefix)+len(b))
	out = append(out, prefix...)
	out = append(out, b...)
	return out
}

// DecodeBytes reads a length-prefixed byte string off the front of buf,
// returning the string and the unconsumed remainder.
func DecodeBytes(buf []byte) (value []byte, remaining []byte, err error) {
	decoded, err := DecodeNatural(buf)
	if err != nil {
		return nil, nil, fmt.Errorf("decode byte-string length: %w", err)
	}
	if !decoded.Value.IsUint64() {
		return nil, nil, fmt.Errorf("%w: byte-string length %s unreasonably large", ErrWidthOverflow, decoded.Value.String())
	}
	n := decoded.Value.Uint64()
	if uint64(len(decoded.Remaining)) < n {
		return nil, nil, fmt.Errorf("%w: need %d octets, have %d", ErrShortBuffer, n, len(decoded.Remaining))
	}
	value = decoded.Remaining[:n]
	remaining = decoded.Remaining[n:]
	return value, remaining, nil
}

// Reader is a sequential decode cursor over a byte slice. Higher-level
// structures (tickets, dependency sets, validator-change records) are
// themselves sequences of codec-encoded fields with no outer framing, so
// they decode field-by-field off a shared Reader rather than each
// allocating their own sub-slice.
type Reader struct {
	buf []byte
	err error
}

// NewReader wraps buf for sequential decoding.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Err returns the first error encountered by any Read* call, if any.
func (r *Reader) Err() error {
	return r.err
}

// Remaining returns the unconsumed tail of the input.
func (r *Reader) Remaining() []byte {
	return r.buf
}

// ReadNatural decodes the next compact natural number.
func (r *Reader) ReadNatural() *big.Int {
	if r.err != nil {
		return nil
	}
	d, err := DecodeNatural(r.buf)
	if err != nil {
		r.err = err
		return nil
	}
	r.buf = d.Remaining
	return d.Value
}

// ReadFixed decodes the next width-octet fixed-length integer.
func (r *Reader) ReadFixed(width int) *big.Int {
	if r.err != nil {
		return nil
	}
	v, rest, err := DecodeFixedLength(r.buf, width)
	if err != nil {
		r.err = err
		return nil
	}
	r.buf = rest
	return v
}

// ReadBytes decodes the next length-prefixed byte string.
func (r *Reader) ReadBytes() []byte {
	if r.err != nil {
		return nil
	}
	v, rest, err := DecodeBytes(r.buf)
	if err != nil {
		r.err = err
		return nil
	}
	r.buf = rest
	return v
}

// ReadRaw consumes exactly n raw (unprefixed) octets, useful for fields
// whose length is implied by context rather than self-described.
func (r *Reader) ReadRaw(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf) < n {
		r.err = fmt.Errorf("%w: need %d raw octets, have %d", ErrShortBuffer, n, len(r.buf))
		return nil
	}
	v := r.buf[:n]
	r.buf = r.buf[n:]
	return v
}

// Writer accumulates a sequence of codec-encoded fields.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteNatural appends a compact natural number encoding.
func (w *Writer) WriteNatural(v *big.Int) error {
	enc, err := EncodeNatural(v)
	if err != nil {
		return err
	}
	w.buf = append(w.buf, enc...)
	return nil
}

// WriteFixed appends a width-octet fixed-length integer encoding.
func (w *Writer) WriteFixed(v *big.Int, width int) error {
	enc, err := EncodeFixedLength(v, width)
	if err != nil {
		return err
	}
	w.buf = append(w.buf, enc...)
	return nil
}

// WriteBytes appends a length-prefixed byte string.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, EncodeBytes(b)...)
}

// WriteRaw appends raw octets with no framing.
func (w *Writer) WriteRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte {
	return w.buf
}
