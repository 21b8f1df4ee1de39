// Package safrole implements the slot-advancing block-production state
// machine: epoch rotation, VRF ticket accumulation, winners-marker
// derivation, and the rolling entropy accumulator.
package safrole

import (
	"fmt"

	"github.com/esscrypt/peanutbutterandjam-core/pkg/bandersnatch"
	"github.com/esscrypt/peanutbutterandjam-core/pkg/codec"
	"github.com/esscrypt/peanutbutterandjam-core/pkg/config"
	"github.com/esscrypt/peanutbutterandjam-core/pkg/jamhash"
	"github.com/esscrypt/peanutbutterandjam-core/pkg/jamlog"
	"github.com/esscrypt/peanutbutterandjam-core/pkg/types"
)

// NoSlot marks a SafroleState that has not yet applied any input. A plain
// zero-value Slot would be indistinguishable from "slot 0 already
// applied", so genesis states must be built with NewGenesisState rather
// than a bare types.SafroleState{}.
const NoSlot = ^uint64(0)

// NewGenesisState builds the state the chain starts in: activeSet is both
// the active and the pending validator set until the first epoch
// boundary, and kappa mirrors activeSet per the rotation-cursor
// convention (§4.5).
func NewGenesisState(activeSet []types.ValidatorKeySet) types.SafroleState {
	return types.SafroleState{
		Slot:       NoSlot,
		Epoch:      0,
		ActiveSet:  activeSet,
		PendingSet: append([]types.ValidatorKeySet(nil), activeSet...),
		Kappa:      append([]types.ValidatorKeySet(nil), activeSet...),
		Offenders:  types.HashSet{},
		TicketSeen: make(map[types.Hash]struct{}),
	}
}

// ApplyInput advances state by one block. It is a pure function: the
// returned state is a distinct value, and pre-state is returned unchanged
// alongside an error on any failure.
func ApplyInput(state types.SafroleState, input types.Block, cfg config.Params, logger *jamlog.Logger) (types.SafroleState, *types.Hash, []types.ValidatorChange, error) {
	if logger == nil {
		logger = jamlog.Default()
	}
	log := logger.Module("safrole")

	if state.Slot != NoSlot && input.Slot < state.Slot {
		return state, nil, nil, fmt.Errorf("%w: input slot %d, current slot %d", ErrNonMonotonicSlot, input.Slot, state.Slot)
	}

	currentSlot := state.Slot
	if state.Slot == NoSlot {
		currentSlot = 0
	}
	currentEpoch := state.Epoch
	nextSlot := input.Slot
	nextEpoch := nextSlot / cfg.EpochDuration

	if nextEpoch > currentEpoch+1 {
		return state, nil, nil, fmt.Errorf("%w: epoch %d to %d", ErrMultiEpochJump, currentEpoch, nextEpoch)
	}
	crossing := nextEpoch > currentEpoch
	if crossing && len(input.AnnouncedValidators) == 0 {
		return state, nil, nil, fmt.Errorf("%w: epoch boundary crossed without an announced validator set", ErrMalformedInput)
	}

	next := types.SafroleState{
		Slot:       input.Slot,
		Epoch:      nextEpoch,
		Entropy:    state.Entropy,
		ActiveSet:  state.ActiveSet,
		PendingSet: state.PendingSet,
		Gamma:      state.Gamma,
		Lambda:     state.Lambda,
		Kappa:      state.Kappa,
		Offenders:  state.Offenders.Clone(),
		TicketSeen: cloneTicketSeen(state.TicketSeen),
	}
	next.TicketAccumulator = append([]types.SafroleTicket(nil), state.TicketAccumulator...)

	var marker *types.Hash
	var changes []types.ValidatorChange

	if crossing {
		marker = computeWinnersMarker(crossing, currentSlot, nextSlot, next.TicketAccumulator, cfg)
		if marker != nil {
			log.WinnersMarkerComputed(input.Slot, *marker)
		}

		changes = diffValidators(state.ActiveSet, state.PendingSet)

		next.Lambda = state.Kappa
		next.Kappa = state.ActiveSet
		next.ActiveSet = state.PendingSet
		next.PendingSet = input.AnnouncedValidators
		next.Gamma = 0
		next.TicketAccumulator = nil
		next.Offenders = types.HashSet{}
		next.TicketSeen = make(map[types.Hash]struct{})

		next.Entropy[3] = state.Entropy[2]
		next.Entropy[2] = state.Entropy[1]
		next.Entropy[1] = state.Entropy[0]

		log.EpochRotated(currentEpoch, nextEpoch, len(next.ActiveSet))
	}

	for _, ext := range input.Extrinsics {
		for _, h := range ext.Offenders {
			if next.Offenders.Contains(h) {
				continue
			}
			next.Offenders.Add(h)
			changes = append(changes, types.ValidatorChange{Validator: h, Kind: types.ValidatorSlashed, Slot: input.Slot})
		}
	}

	activeSet := next.ActiveSet
	for _, ext := range input.Extrinsics {
		for _, t := range ext.Tickets {
			admitted, err := admitTicket(t, activeSet, next.Offenders, next.TicketSeen, cfg)
			if err != nil {
				log.TicketDropped(t.Validator, t.Attempt, err.Error())
				continue
			}
			if !admitted {
				continue
			}
			if len(next.TicketAccumulator) >= int(cfg.EpochDuration) {
				log.TicketDropped(t.Validator, t.Attempt, "accumulator full")
				continue
			}
			next.TicketSeen[ticketSeenKey(t.Validator, t.Attempt)] = struct{}{}
			next.TicketAccumulator = append(next.TicketAccumulator, t)
			log.TicketAdmitted(t.Validator, t.Attempt)
		}
	}

	next.Entropy[0] = jamhash.SumConcat(state.Entropy[0][:], input.VRFOutput.Output[:])

	return next, marker, changes, nil
}

func cloneTicketSeen(m map[types.Hash]struct{}) map[types.Hash]struct{} {
	out := make(map[types.Hash]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

// ticketSeenKey combines a validator's key and attempt number into the
// single hash used to track (validator, attempt) uniqueness within an
// epoch.
func ticketSeenKey(validator types.Hash, attempt uint32) types.Hash {
	attemptBytes, err := codec.EncodeFixedLengthUint64(uint64(attempt), 4)
	if err != nil {
		panic(err) // width 4 always fits a uint32
	}
	return jamhash.SumConcat(validator[:], attemptBytes)
}

// admitTicket applies the §4.5 admission rule: VRF-valid, previously
// unseen (validator, attempt), attempt below TicketsPerSlot, and validator
// not in the offender set.
func admitTicket(t types.SafroleTicket, activeSet []types.ValidatorKeySet, offenders types.HashSet, seen map[types.Hash]struct{}, cfg config.Params) (bool, error) {
	if offenders.Contains(t.Validator) {
		return false, fmt.Errorf("validator is an offender")
	}
	if uint64(t.Attempt) >= cfg.TicketsPerSlot {
		return false, fmt.Errorf("attempt %d exceeds TicketsPerSlot %d", t.Attempt, cfg.TicketsPerSlot)
	}
	if _, ok := seen[ticketSeenKey(t.Validator, t.Attempt)]; ok {
		return false, fmt.Errorf("(validator, attempt) already seen")
	}
	pubPoint, ok := findBandersnatchPoint(activeSet, t.Validator)
	if !ok {
		return false, fmt.Errorf("validator not in active set")
	}
	vrfOut, err := decodeTicketSignature(t)
	if err != nil {
		return false, err
	}
	if bandersnatch.OutputID(vrfOut) != t.ID {
		return false, fmt.Errorf("ticket ID does not match its VRF output")
	}

	ok, err = bandersnatch.Verify(pubPoint, epochContext(cfg), attemptMessage(t.Attempt), vrfOut)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("VRF signature does not verify")
	}
	return true, nil
}

// decodeTicketSignature splits a ticket's 96-octet Signature into its
// three constituent VRF proof fields.
func decodeTicketSignature(t types.SafroleTicket) (types.VRFOutput, error) {
	if len(t.Signature) != 96 {
		return types.VRFOutput{}, fmt.Errorf("signature has unexpected length %d, want 96", len(t.Signature))
	}
	var out types.VRFOutput
	copy(out.Output[:], t.Signature[0:32])
	copy(out.C[:], t.Signature[32:64])
	copy(out.S[:], t.Signature[64:96])
	return out, nil
}

// attemptMessage is the VRF message a ticket's attempt signs: the
// little-endian encoding of the attempt counter, giving each of a
// validator's TicketsPerSlot attempts within an epoch a distinct VRF
// output.
func attemptMessage(attempt uint32) []byte {
	b, err := codec.EncodeFixedLengthUint64(uint64(attempt), 4)
	if err != nil {
		panic(err) // width 4 always fits a uint32
	}
	return b
}

func epochContext(cfg config.Params) []byte {
	return []byte(fmt.Sprintf("jam-safrole-ticket-v%s", cfg.JAMVersion.String()))
}

func findBandersnatchPoint(activeSet []types.ValidatorKeySet, validator types.Hash) (bandersnatch.Point, bool) {
	for _, v := range activeSet {
		if v.Bandersnatch == validator {
			p, err := bandersnatch.DecompressPoint([32]byte(v.Bandersnatch))
			if err != nil {
				return bandersnatch.Point{}, false
			}
			return p, true
		}
	}
	return bandersnatch.Point{}, false
}

// computeWinnersMarker evaluates the four winners-marker predicates and,
// if all hold, returns Blake2b-256 over the outside-in-sequenced ticket
// IDs. crossing carries predicate 1 (nextEpoch > currentEpoch) as
// computed by the caller; the remaining three are phase/fill checks
// local to this function.
func computeWinnersMarker(crossing bool, currentSlot, nextSlot uint64, accumulator []types.SafroleTicket, cfg config.Params) *types.Hash {
	if !crossing {
		return nil
	}
	if len(accumulator) != int(cfg.EpochDuration) {
		return nil
	}
	phaseNow := currentSlot % cfg.EpochDuration
	phaseNext := nextSlot % cfg.EpochDuration
	if phaseNow >= cfg.ContestDuration || phaseNext < cfg.ContestDuration {
		return nil
	}
	m := winnersMarker(accumulator)
	return &m
}

// winnersMarker applies the outside-in sequencer Z to the full ticket
// accumulator and returns Blake2b-256 over the concatenated sequenced
// ticket IDs.
func winnersMarker(tickets []types.SafroleTicket) types.Hash {
	sequenced := outsideIn(tickets)
	parts := make([][]byte, len(sequenced))
	for i, t := range sequenced {
		id := t.ID
		parts[i] = id[:]
	}
	return jamhash.SumConcat(parts...)
}

// outsideIn implements Z(s)_i = s_{i/2} for even i, s_{n-1-floor(i/2)}
// for odd i.
func outsideIn(s []types.SafroleTicket) []types.SafroleTicket {
	n := len(s)
	out := make([]types.SafroleTicket, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			out[i] = s[i/2]
		} else {
			out[i] = s[n-1-i/2]
		}
	}
	return out
}

// diffValidators produces Added/Removed events for the validators that
// leave or join the active set across a rotation.
func diffValidators(oldSet, newSet []types.ValidatorKeySet) []types.ValidatorChange {
	oldKeys := make(map[types.Hash]struct{}, len(oldSet))
	for _, v := range oldSet {
		oldKeys[v.Bandersnatch] = struct{}{}
	}
	newKeys := make(map[types.Hash]struct{}, len(newSet))
	for _, v := range newSet {
		newKeys[v.Bandersnatch] = struct{}{}
	}

	var changes []types.ValidatorChange
	for _, v := range oldSet {
		if _, ok := newKeys[v.Bandersnatch]; !ok {
			changes = append(changes, types.ValidatorChange{Validator: v.Bandersnatch, Kind: types.ValidatorRemoved})
		}
	}
	for _, v := range newSet {
		if _, ok := oldKeys[v.Bandersnatch]; !ok {
			changes = append(changes, types.ValidatorChange{Validator: v.Bandersnatch, Kind: types.ValidatorAdded})
		}
	}
	return changes
}
