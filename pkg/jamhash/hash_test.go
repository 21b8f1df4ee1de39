package jamhash

import (
	"math/rand"
	"testing"
)

// TestBlake2bEmpty is the concrete oracle from the spec: Blake2b-256 of the
// empty input.
func TestBlake2bEmpty(t *testing.T) {
	got := Sum(nil).String()
	want := "0x0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	if got != want {
		t.Errorf("Sum(nil) = %s, want %s", got, want)
	}
}

func TestStateRootOrderInvariance(t *testing.T) {
	kvs := make([]KeyValue, 0, 50)
	for i := 0; i < 50; i++ {
		kvs = append(kvs, KeyValue{
			Key:   []byte{byte(i), byte(i * 7), byte(i * 13)},
			Value: []byte{byte(i * 3)},
		})
	}

	root := StateRoot(kvs)

	shuffled := make([]KeyValue, len(kvs))
	copy(shuffled, kvs)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if got := StateRoot(shuffled); got != root {
		t.Errorf("state root changed under shuffle: got %s want %s", got, root)
	}
}

func TestStateRootOddLevelsDontCollideWithLeaves(t *testing.T) {
	single := StateRoot([]KeyValue{{Key: []byte("k"), Value: []byte("v")}})
	pairDup := internalHash(single, single)
	three := StateRoot([]KeyValue{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("c"), Value: []byte("3")},
	})
	if three == pairDup {
		t.Errorf("unrelated trees collided: %s", three)
	}
}

func TestStateRootEmpty(t *testing.T) {
	if got := StateRoot(nil); !got.IsZero() {
		t.Errorf("expected zero root for empty set, got %s", got)
	}
}
