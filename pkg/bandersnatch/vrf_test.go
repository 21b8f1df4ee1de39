package bandersnatch

import (
	"math/big"
	"testing"

	"github.com/esscrypt/peanutbutterandjam-core/pkg/types"
)

func testKey() *big.Int {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	return new(big.Int).SetBytes(seed)
}

// TestVRFRoundTrip is the spec's concrete scenario: priv = [0,1,...,31],
// ctx = "test-context", msg = "Hello, Bandersnatch VRF!".
func TestVRFRoundTrip(t *testing.T) {
	kp := NewKeyPair(testKey())
	ctx := []byte("test-context")
	msg := []byte("Hello, Bandersnatch VRF!")

	out, err := Sign(kp.Priv, ctx, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(out.Output) != 32 || len(out.C) != 32 || len(out.S) != 32 {
		t.Fatalf("unexpected field widths: %d %d %d", len(out.Output), len(out.C), len(out.S))
	}

	ok, err := Verify(kp.Pub, ctx, msg, out)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("verification failed for a freshly produced proof")
	}
}

func TestVRFDeterministic(t *testing.T) {
	kp := NewKeyPair(testKey())
	ctx := []byte("test-context")
	msg := []byte("Hello, Bandersnatch VRF!")

	first, err := Sign(kp.Priv, ctx, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	second, err := Sign(kp.Priv, ctx, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if first != second {
		t.Errorf("signing the same inputs twice produced different proofs:\n%+v\n%+v", first, second)
	}
}

func TestVRFRejectsTamperedProof(t *testing.T) {
	kp := NewKeyPair(testKey())
	ctx := []byte("test-context")
	msg := []byte("Hello, Bandersnatch VRF!")

	out, err := Sign(kp.Priv, ctx, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tests := map[string]func(types.VRFOutput) types.VRFOutput{
		"flip output bit": func(v types.VRFOutput) types.VRFOutput {
			v.Output[0] ^= 0x01
			return v
		},
		"flip c bit": func(v types.VRFOutput) types.VRFOutput {
			v.C[0] ^= 0x01
			return v
		},
		"flip s bit": func(v types.VRFOutput) types.VRFOutput {
			v.S[0] ^= 0x01
			return v
		},
	}

	for name, tamper := range tests {
		t.Run(name, func(t *testing.T) {
			bad := tamper(out)
			ok, _ := Verify(kp.Pub, ctx, msg, bad)
			if ok {
				t.Errorf("tampered proof (%s) verified as valid", name)
			}
		})
	}
}

func TestVRFRejectsWrongMessageOrKey(t *testing.T) {
	kp := NewKeyPair(testKey())
	other := NewKeyPair(big.NewInt(999))
	ctx := []byte("test-context")
	msg := []byte("Hello, Bandersnatch VRF!")

	out, err := Sign(kp.Priv, ctx, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if ok, _ := Verify(kp.Pub, ctx, []byte("a different message"), out); ok {
		t.Error("proof verified against the wrong message")
	}
	if ok, _ := Verify(other.Pub, ctx, msg, out); ok {
		t.Error("proof verified against the wrong public key")
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	kp := NewKeyPair(testKey())
	enc, err := CompressPoint(kp.Pub)
	if err != nil {
		t.Fatalf("CompressPoint: %v", err)
	}
	got, err := DecompressPoint(enc)
	if err != nil {
		t.Fatalf("DecompressPoint: %v", err)
	}
	if !Equal(got, kp.Pub) {
		t.Errorf("round trip mismatch: got (%s,%s) want (%s,%s)", got.X, got.Y, kp.Pub.X, kp.Pub.Y)
	}
}

func TestCurveArithmetic(t *testing.T) {
	g := Generator()
	if !IsOnCurve(g.X, g.Y) {
		t.Fatal("generator is not on curve")
	}

	two := ScalarMul(big.NewInt(2), g)
	doubled := Double(g)
	if !Equal(two, doubled) {
		t.Error("2*G != Double(G)")
	}

	three := ScalarMul(big.NewInt(3), g)
	addThrice := Add(Add(g, g), g)
	if !Equal(three, addThrice) {
		t.Error("3*G != G+G+G")
	}

	order := Order()
	identity := ScalarMul(order, g)
	if !Equal(identity, Identity()) {
		t.Error("order*G is not the identity")
	}
}
