// Package config holds the kernel's protocol parameters: the constants
// every other component reads but none of them owns.
package config

import "fmt"

// Version is the kernel's protocol version, gating which formula the
// service-id generator (pkg/serviceid) and other version-sensitive
// components use.
type Version struct {
	Major, Minor, Patch uint8
}

// AtLeast071 reports whether v is 0.7.1 or later, the boundary the
// service-id allocator switches formulas on.
func (v Version) AtLeast071() bool {
	if v.Major != 0 {
		return v.Major > 0
	}
	if v.Minor != 7 {
		return v.Minor > 7
	}
	return v.Patch >= 1
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Params carries every protocol constant the kernel's components read.
// A Params value is immutable data; nothing in the kernel mutates one in
// place once constructed.
type Params struct {
	// EpochDuration is the number of slots per epoch.
	EpochDuration uint64
	// ContestDuration is the number of slots, counted from the start of
	// an epoch, before the closing contest tail begins.
	ContestDuration uint64
	// TicketsPerSlot bounds how many ticket attempts a single validator
	// may submit per slot.
	TicketsPerSlot uint64
	// MaxValidators and MinValidators bound the active validator set
	// size.
	MaxValidators uint64
	MinValidators uint64
	// CMinPublicIndex is the v0.7.1+ service-id floor constant.
	CMinPublicIndex uint64
	// JAMVersion selects which version-sensitive formulas apply.
	JAMVersion Version
}

// TinyParams is the reduced-size preset used by the kernel's own "tiny"
// test-vector suite: small enough to exercise epoch/contest boundaries and
// winners-marker gating within a handful of slots.
func TinyParams() Params {
	return Params{
		EpochDuration:   12,
		ContestDuration: 10,
		TicketsPerSlot:  2,
		MaxValidators:   6,
		MinValidators:   2,
		CMinPublicIndex: 1 << 8,
		JAMVersion:      Version{Major: 0, Minor: 7, Patch: 1},
	}
}

// FullParams is the production-scale parameter set.
func FullParams() Params {
	return Params{
		EpochDuration:   600,
		ContestDuration: 500,
		TicketsPerSlot:  2,
		MaxValidators:   1023,
		MinValidators:   3,
		CMinPublicIndex: 1 << 16,
		JAMVersion:      Version{Major: 0, Minor: 7, Patch: 1},
	}
}

// Validate rejects nonsensical configurations.
func (p Params) Validate() error {
	if p.EpochDuration == 0 {
		return fmt.Errorf("config: EpochDuration must be > 0")
	}
	if p.ContestDuration >= p.EpochDuration {
		return fmt.Errorf("config: ContestDuration (%d) must be < EpochDuration (%d)", p.ContestDuration, p.EpochDuration)
	}
	if p.TicketsPerSlot == 0 {
		return fmt.Errorf("config: TicketsPerSlot must be > 0")
	}
	if p.MinValidators > p.MaxValidators {
		return fmt.Errorf("config: MinValidators (%d) must be <= MaxValidators (%d)", p.MinValidators, p.MaxValidators)
	}
	if p.MaxValidators == 0 {
		return fmt.Errorf("config: MaxValidators must be > 0")
	}
	return nil
}
