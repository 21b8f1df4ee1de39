package bandersnatch

import (
	"math/big"

	"github.com/esscrypt/peanutbutterandjam-core/pkg/jamhash"
	"github.com/esscrypt/peanutbutterandjam-core/pkg/types"
)

// KeyPair is a Bandersnatch signing key and its derived public point.
type KeyPair struct {
	Priv *big.Int
	Pub  Point
}

// NewKeyPair reduces seed mod the group order and derives the matching
// public point priv*G. seed would ordinarily come from a uniform random
// 32-octet source; it is accepted directly here so callers control their
// own entropy source.
func NewKeyPair(seed *big.Int) KeyPair {
	priv := new(big.Int).Mod(seed, groupOrder)
	if priv.Sign() == 0 {
		priv = big.NewInt(1)
	}
	return KeyPair{Priv: priv, Pub: ScalarMul(priv, Generator())}
}

// Sign implements the kernel's deterministic VRF: given the same
// (priv, context, message) it returns byte-identical output every time.
func Sign(priv *big.Int, context, message []byte) (types.VRFOutput, error) {
	privBytes := priv.FillBytes(make([]byte, encodedWidth))
	k := hashToScalar(privBytes, context, message)
	if k.Sign() == 0 {
		k = big.NewInt(1)
	}

	hPoint, err := hashToCurve(context, message)
	if err != nil {
		return types.VRFOutput{}, err
	}

	outputPoint := ScalarMul(priv, hPoint)
	outputBytes, err := CompressPoint(outputPoint)
	if err != nil {
		return types.VRFOutput{}, err
	}

	pub := ScalarMul(priv, Generator())
	r := ScalarMul(k, Generator())
	rH := ScalarMul(k, hPoint)

	c, err := challenge(pub, hPoint, outputPoint, r, rH)
	if err != nil {
		return types.VRFOutput{}, err
	}

	s := new(big.Int).Mod(new(big.Int).Add(k, new(big.Int).Mul(c, priv)), groupOrder)

	cBytes, err := EncodeScalar(c)
	if err != nil {
		return types.VRFOutput{}, err
	}
	sBytes, err := EncodeScalar(s)
	if err != nil {
		return types.VRFOutput{}, err
	}

	return types.VRFOutput{Output: outputBytes, C: cBytes, S: sBytes}, nil
}

// Verify checks vrfOutput against pub for the given context and message.
// It never panics on malformed input: a decode failure is reported as
// (false, err) rather than surfaced as a bare bool.
func Verify(pub Point, context, message []byte, vrfOutput types.VRFOutput) (bool, error) {
	hPoint, err := hashToCurve(context, message)
	if err != nil {
		return false, err
	}

	outputPoint, err := DecompressPoint(vrfOutput.Output)
	if err != nil {
		return false, err
	}
	c, err := DecodeScalar(vrfOutput.C)
	if err != nil {
		return false, err
	}
	s, err := DecodeScalar(vrfOutput.S)
	if err != nil {
		return false, err
	}

	negC := new(big.Int).Neg(c)
	rPrime := Add(ScalarMul(s, Generator()), ScalarMul(negC, pub))
	rHPrime := Add(ScalarMul(s, hPoint), ScalarMul(negC, outputPoint))

	cPrime, err := challenge(pub, hPoint, outputPoint, rPrime, rHPrime)
	if err != nil {
		return false, err
	}

	return cPrime.Cmp(c) == 0, nil
}

// OutputID hashes a VRF output's compressed point into the 32-byte ticket
// identifier used to order the Safrole ticket accumulator.
func OutputID(vrfOutput types.VRFOutput) types.Hash {
	return jamhash.Sum(vrfOutput.Output[:])
}

func challenge(pub, hPoint, output, r, rH Point) (*big.Int, error) {
	pubB, err := CompressPoint(pub)
	if err != nil {
		return nil, err
	}
	hB, err := CompressPoint(hPoint)
	if err != nil {
		return nil, err
	}
	outB, err := CompressPoint(output)
	if err != nil {
		return nil, err
	}
	rB, err := CompressPoint(r)
	if err != nil {
		return nil, err
	}
	rHB, err := CompressPoint(rH)
	if err != nil {
		return nil, err
	}
	return hashToScalar(pubB[:], hB[:], outB[:], rB[:], rHB[:]), nil
}
