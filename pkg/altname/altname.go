// Package altname derives a human-readable, base-32-style textual identity
// from an Ed25519 validator public key.
package altname

import (
	"encoding/base32"
	"fmt"
	"strings"
)

// pubKeyLength is the length of an Ed25519 public key in octets.
const pubKeyLength = 32

// prefix is the fixed leading character of every derived name, chosen by
// the reference implementation to make the kernel's identities visually
// distinct from other base-32 identifiers in the surrounding tooling.
const prefix = "e"

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Derive returns the name for pubKey: "e" followed by 52 lowercase
// base-32 characters (matching /^e[a-z2-7]{52}$/), a direct, unpadded
// base-32 re-encoding of the 256-bit key. Deterministic: the same key
// always derives the same name.
func Derive(pubKey []byte) (string, error) {
	if len(pubKey) != pubKeyLength {
		return "", fmt.Errorf("altname: public key must be %d octets, got %d", pubKeyLength, len(pubKey))
	}
	return prefix + strings.ToLower(encoding.EncodeToString(pubKey)), nil
}
