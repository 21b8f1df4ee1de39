// Package vectors loads the kernel's on-disk JSON test-vector format: a
// state (or pre_state/post_state) key-value container, a state root, and
// an optional input block, matching the compatibility fixtures the
// reference test suite ships.
package vectors

import (
	"encoding/hex"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/esscrypt/peanutbutterandjam-core/pkg/jamhash"
	"github.com/esscrypt/peanutbutterandjam-core/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// KeyValue is one hex-encoded key-value pair as it appears on disk.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// StateContainer wraps a list of key-value pairs under the "keyvals" key,
// the shape shared by the state/pre_state/post_state fields.
type StateContainer struct {
	KeyVals []KeyValue `json:"keyvals"`
}

// TicketVector is a ticket as it appears in an input block's extrinsic.
type TicketVector struct {
	ID        string `json:"id"`
	Attempt   uint32 `json:"attempt"`
	Signature string `json:"signature"`
	Validator string `json:"validator"`
}

// ExtrinsicVector is one extrinsic entry as it appears in an input block.
type ExtrinsicVector struct {
	Tickets   []TicketVector `json:"tickets"`
	Offenders []string       `json:"offenders"`
}

// BlockVector is the optional "input" field of a TestVectorFile.
type BlockVector struct {
	Slot                uint64            `json:"slot"`
	Extrinsics          []ExtrinsicVector `json:"extrinsics"`
	AnnouncedValidators []string          `json:"announced_validators"`
	VRFOutput           string            `json:"vrf_output"`
}

// TestVectorFile is the on-disk container. The core accepts whichever of
// State, PreState, or PostState is populated; exactly one is expected per
// file, but all three are decoded so callers can tell which was present.
type TestVectorFile struct {
	State     *StateContainer `json:"state,omitempty"`
	PreState  *StateContainer `json:"pre_state,omitempty"`
	PostState *StateContainer `json:"post_state,omitempty"`
	StateRoot string          `json:"state_root"`
	Input     *BlockVector    `json:"input,omitempty"`
}

// Load reads and decodes a test-vector file from path.
func Load(path string) (*TestVectorFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vectors: read %s: %w", path, err)
	}
	var f TestVectorFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("vectors: decode %s: %w", path, err)
	}
	return &f, nil
}

// KeyValues decodes the populated container (state, pre_state, or
// post_state, in that preference order) into the raw key-value pairs C2's
// StateRoot consumes. It returns an error if none of the three is set.
func (f *TestVectorFile) KeyValues() ([]jamhash.KeyValue, error) {
	c := f.State
	if c == nil {
		c = f.PreState
	}
	if c == nil {
		c = f.PostState
	}
	if c == nil {
		return nil, fmt.Errorf("vectors: no state container present")
	}
	out := make([]jamhash.KeyValue, len(c.KeyVals))
	for i, kv := range c.KeyVals {
		key, err := decodeHex(kv.Key)
		if err != nil {
			return nil, fmt.Errorf("vectors: keyvals[%d].key: %w", i, err)
		}
		value, err := decodeHex(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("vectors: keyvals[%d].value: %w", i, err)
		}
		out[i] = jamhash.KeyValue{Key: key, Value: value}
	}
	return out, nil
}

// WantStateRoot decodes StateRoot into a types.Hash for comparison against
// a computed root.
func (f *TestVectorFile) WantStateRoot() (types.Hash, error) {
	return types.HashFromHex(f.StateRoot)
}

// Block decodes the optional Input field into the kernel's types.Block,
// for vector files that exercise a Safrole transition rather than a bare
// state root.
func (f *TestVectorFile) Block() (types.Block, error) {
	if f.Input == nil {
		return types.Block{}, fmt.Errorf("vectors: no input block present")
	}
	b := types.Block{Slot: f.Input.Slot}

	for _, av := range f.Input.AnnouncedValidators {
		h, err := types.HashFromHex(av)
		if err != nil {
			return types.Block{}, fmt.Errorf("vectors: announced_validators: %w", err)
		}
		b.AnnouncedValidators = append(b.AnnouncedValidators, types.ValidatorKeySet{Bandersnatch: h})
	}

	if f.Input.VRFOutput != "" {
		out, err := decodeHex(f.Input.VRFOutput)
		if err != nil {
			return types.Block{}, fmt.Errorf("vectors: vrf_output: %w", err)
		}
		if len(out) != 32 {
			return types.Block{}, fmt.Errorf("vectors: vrf_output has %d octets, want 32", len(out))
		}
		copy(b.VRFOutput.Output[:], out)
	}

	for _, ext := range f.Input.Extrinsics {
		decoded := types.Extrinsic{}
		for _, tv := range ext.Tickets {
			id, err := types.HashFromHex(tv.ID)
			if err != nil {
				return types.Block{}, fmt.Errorf("vectors: ticket id: %w", err)
			}
			sig, err := decodeHex(tv.Signature)
			if err != nil {
				return types.Block{}, fmt.Errorf("vectors: ticket signature: %w", err)
			}
			validator, err := types.HashFromHex(tv.Validator)
			if err != nil {
				return types.Block{}, fmt.Errorf("vectors: ticket validator: %w", err)
			}
			decoded.Tickets = append(decoded.Tickets, types.SafroleTicket{
				ID:        id,
				Attempt:   tv.Attempt,
				Signature: sig,
				Validator: validator,
			})
		}
		for _, off := range ext.Offenders {
			h, err := types.HashFromHex(off)
			if err != nil {
				return types.Block{}, fmt.Errorf("vectors: offender: %w", err)
			}
			decoded.Offenders = append(decoded.Offenders, h)
		}
		b.Extrinsics = append(b.Extrinsics, decoded)
	}

	return b, nil
}

func decodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return hex.DecodeString(s)
}
