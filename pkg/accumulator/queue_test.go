package accumulator

import (
	"testing"

	"github.com/esscrypt/peanutbutterandjam-core/pkg/types"
)

func hash(b byte) types.Hash {
	var h types.Hash
	h[0] = b
	return h
}

func item(self byte, deps ...byte) types.ReadyItem {
	depSet := make(types.HashSet, len(deps))
	for _, d := range deps {
		depSet.Add(hash(d))
	}
	return types.ReadyItem{
		Report:       types.WorkReport{PackageHash: hash(self)},
		Dependencies: depSet,
	}
}

func packageHashes(items []types.ReadyItem) []types.Hash {
	out := make([]types.Hash, len(items))
	for i, it := range items {
		out[i] = it.PackageHash()
	}
	return out
}

func TestSelectOrderPreserved(t *testing.T) {
	// c depends on a, b is free, a is free: ready order must track input
	// order (a, b) in wave one, then c.
	items := []types.ReadyItem{
		item('a'),
		item('b'),
		item('c', 'a'),
	}
	got := packageHashes(Select(items, types.NewHashSet()))
	want := []types.Hash{hash('a'), hash('b'), hash('c')}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s want %s", i, got[i], want[i])
		}
	}
}

func TestSelectSelfDependencyNeverEmitted(t *testing.T) {
	items := []types.ReadyItem{
		item('a', 'a'), // self-dependency, can never be satisfied
		item('b'),
	}
	got := Select(items, types.NewHashSet())
	for _, it := range got {
		if it.PackageHash() == hash('a') {
			t.Fatal("item with unsatisfiable self-dependency was emitted")
		}
	}
	if len(got) != 1 || got[0].PackageHash() != hash('b') {
		t.Errorf("got %v, want only b", packageHashes(got))
	}
}

func TestSelectRespectsHistory(t *testing.T) {
	// a's dependency is already accumulated in history, so a is ready
	// immediately even though it names a dependency.
	items := []types.ReadyItem{item('a', 'z')}
	history := types.NewHashSet(hash('z'))
	got := Select(items, history)
	if len(got) != 1 || got[0].PackageHash() != hash('a') {
		t.Errorf("got %v, want [a]", packageHashes(got))
	}
}

func TestSelectTerminatesWithNoReadyItem(t *testing.T) {
	items := []types.ReadyItem{
		item('a', 'b'),
		item('b', 'a'), // mutual, unsatisfiable dependency cycle
	}
	got := Select(items, types.NewHashSet())
	if len(got) != 0 {
		t.Errorf("expected no progress on a dependency cycle, got %v", packageHashes(got))
	}
}

func TestSelectIdempotent(t *testing.T) {
	items := []types.ReadyItem{
		item('a'),
		item('b', 'a'),
		item('c', 'a', 'b'),
	}
	history := types.NewHashSet()
	first := Select(items, history)
	second := Select(first, history)
	if len(first) != len(second) {
		t.Fatalf("first=%v second=%v", packageHashes(first), packageHashes(second))
	}
	for i := range first {
		if first[i].PackageHash() != second[i].PackageHash() {
			t.Errorf("position %d: first=%s second=%s", i, first[i].PackageHash(), second[i].PackageHash())
		}
	}
}

func TestEditRemovesMembersAndStripsDependencies(t *testing.T) {
	items := []types.ReadyItem{
		item('a'),
		item('b', 'a', 'z'),
	}
	out := Edit(items, types.NewHashSet(hash('a')))
	if len(out) != 1 {
		t.Fatalf("expected a dropped, got %v", packageHashes(out))
	}
	if out[0].PackageHash() != hash('b') {
		t.Fatalf("unexpected survivor %s", out[0].PackageHash())
	}
	if out[0].Dependencies.Contains(hash('a')) {
		t.Error("dependency on removed item a should have been stripped")
	}
	if !out[0].Dependencies.Contains(hash('z')) {
		t.Error("unrelated dependency z should survive")
	}
}
