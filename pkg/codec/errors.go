package codec

import "errors"

// Sentinel errors returned by the codec. Wrapped with fmt.Errorf at the
// point of detection so errors.Is still matches across the wrap.
var (
	// ErrShortBuffer is returned when the input ends before a value's
	// encoding can be fully read.
	ErrShortBuffer = errors.New("codec: short buffer")

	// ErrNegative is returned when a natural number encoding is
	// requested for a negative value.
	ErrNegative = errors.New("codec: negative value")

	// ErrWidthOverflow is returned when a value does not fit in the
	// requested fixed-length integer width.
	ErrWidthOverflow = errors.New("codec: value overflows fixed width")

	// ErrInvalidWidth is returned when a fixed-length integer width
	// outside {1,2,4,8,16,32} is requested.
	ErrInvalidWidth = errors.New("codec: invalid fixed-length width")
)
