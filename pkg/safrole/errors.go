package safrole

import (
	"errors"
	"fmt"
)

var (
	// ErrNonMonotonicSlot is returned when an input's slot is strictly less
	// than state.Slot; the pre-state is returned unchanged alongside it.
	// An input slot equal to state.Slot is accepted.
	ErrNonMonotonicSlot = errors.New("safrole: input slot is less than current slot")
	// ErrMalformedInput is returned when a required input field is missing
	// or an epoch boundary is crossed without an announced validator set.
	ErrMalformedInput = errors.New("safrole: malformed input")
	// ErrMultiEpochJump is returned when a transition's next slot would
	// cross more than one epoch boundary at once; per design note 3 this
	// is treated as malformed input rather than guessed at, so it wraps
	// ErrMalformedInput and errors.Is matches either sentinel.
	ErrMultiEpochJump = fmt.Errorf("%w: input crosses more than one epoch boundary", ErrMalformedInput)
)
