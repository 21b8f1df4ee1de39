package bandersnatch

import "errors"

var (
	ErrInvalidScalar = errors.New("bandersnatch: scalar out of range")
	ErrInvalidPoint  = errors.New("bandersnatch: point encoding invalid")
	ErrNotOnCurve    = errors.New("bandersnatch: point not on curve")
	ErrShortEncoding = errors.New("bandersnatch: encoding is not 32 octets")
	ErrVerifyFailed  = errors.New("bandersnatch: proof does not verify")
)
