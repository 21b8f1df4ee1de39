package types

// EntropyPoolSize is the length of the rolling entropy accumulator η.
const EntropyPoolSize = 4

// SafroleTicket is a validator's VRF-signed claim on a future slot.
// Ticket.ID is the VRF output hash (see pkg/bandersnatch); uniqueness of
// (Validator, Attempt) per epoch is a global invariant enforced by the
// Safrole engine, not by this type.
type SafroleTicket struct {
	ID Hash
	// Attempt is the validator's per-epoch ticket attempt counter; a
	// validator may submit up to Params.TicketsPerSlot distinct attempts
	// (Attempt in [0, TicketsPerSlot)).
	Attempt uint32
	// Signature carries the full VRF proof the ticket was built from:
	// the 32-octet compressed output point, the 32-octet challenge c,
	// and the 32-octet response s, concatenated in that order (96
	// octets total). ID is kept as a separate field rather than derived
	// on every comparison so ticket ordering and map keys never need to
	// decompress a point.
	Signature []byte
	Validator Hash
}

// ValidatorChangeKind enumerates the three ways a validator's membership
// in the active set can change.
type ValidatorChangeKind uint8

const (
	ValidatorAdded ValidatorChangeKind = iota
	ValidatorRemoved
	ValidatorSlashed
)

func (k ValidatorChangeKind) String() string {
	switch k {
	case ValidatorAdded:
		return "added"
	case ValidatorRemoved:
		return "removed"
	case ValidatorSlashed:
		return "slashed"
	default:
		return "unknown"
	}
}

// ValidatorChange records a single validator membership event. Instances
// are emitted by the Safrole engine and never mutated afterward.
type ValidatorChange struct {
	Validator Hash
	Kind      ValidatorChangeKind
	Slot      uint64
}

// VRFOutput is a Bandersnatch VRF proof together with its 32-byte output.
type VRFOutput struct {
	Output [32]byte
	C      [32]byte
	S      [32]byte
}

// ValidatorKeySet pairs the two keys a validator is known by: Bandersnatch
// for VRF ticket verification (C3) and Ed25519 for alternative-name
// derivation (C7). Both are carried together so components resolve the
// key they need without re-deriving one from the other.
type ValidatorKeySet struct {
	Bandersnatch Hash
	Ed25519      Hash
}

// SafroleState is the complete state owned exclusively by the Safrole
// engine. A transition produces a new SafroleState value; the engine never
// mutates a state in place (see pkg/safrole).
type SafroleState struct {
	Slot  uint64
	Epoch uint64

	// Entropy holds η₀…η₃, the rolling entropy accumulator.
	Entropy [EntropyPoolSize]Hash

	// ActiveSet is the validator set for the current epoch.
	ActiveSet []ValidatorKeySet
	// PendingSet is the validator set announced for the next epoch.
	PendingSet []ValidatorKeySet

	// TicketAccumulator collects up to Params.EpochDuration tickets for the
	// epoch currently being contested.
	TicketAccumulator []SafroleTicket

	// Gamma is the index of the next validator slot scheduled for
	// rotation within the active set.
	Gamma uint64
	// Lambda is the value Kappa held before the most recent rotation,
	// retained for equivocation/audit lookups; empty until the first
	// rotation.
	Lambda []ValidatorKeySet
	// Kappa is the active set that was in force just before the most
	// recent rotation (at genesis, the genesis active set), retained
	// alongside Lambda under the same naming convention as the reference
	// implementation's rotation cursors.
	Kappa []ValidatorKeySet

	// Offenders is the set of validator keys barred from ticket
	// submission for the remainder of the current epoch. Validator
	// rotation does not consult it.
	Offenders HashSet

	// TicketSeen tracks (validator, attempt) pairs already admitted in
	// the current epoch, keyed by a combined hash (see pkg/safrole).
	TicketSeen map[Hash]struct{}
}

// Block is the kernel's decoded view of a wire block: a slot, its
// extrinsics, an optional announced-validator set (present only on blocks
// that cross an epoch boundary), and the VRF output that sealed the slot.
type Block struct {
	Slot                uint64
	Extrinsics          []Extrinsic
	AnnouncedValidators []ValidatorKeySet
	VRFOutput           VRFOutput
}

// Extrinsic carries the tickets submitted in a block, the offenders
// reported in it, and an optional entropy source. The Safrole engine does
// not read EntropySource: η₀ is always rolled from Block.VRFOutput.
type Extrinsic struct {
	Tickets       []SafroleTicket
	Offenders     []Hash
	EntropySource *VRFOutput
}
