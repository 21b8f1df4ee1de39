// Package accumulator implements the dependency-aware scheduling engine
// that decides, each slot, which pending work-reports may move from the
// ready queue into the accumulated history.
package accumulator

import "github.com/esscrypt/peanutbutterandjam-core/pkg/types"

// Edit realises the reference specification's E(items, X): items whose
// own package hash is a member of X are dropped entirely, and every
// surviving item's dependency set has its X members removed. Input order
// is preserved among survivors.
func Edit(items []types.ReadyItem, x types.HashSet) []types.ReadyItem {
	out := make([]types.ReadyItem, 0, len(items))
	for _, it := range items {
		if x.Contains(it.PackageHash()) {
			continue
		}
		deps := make(types.HashSet, len(it.Dependencies))
		for d := range it.Dependencies {
			if !x.Contains(d) {
				deps[d] = struct{}{}
			}
		}
		out = append(out, types.ReadyItem{Report: it.Report, Dependencies: deps})
	}
	return out
}

// Select realises Q(items, history), the maximal accumulatable prefix:
//
//	Q(items, H) =
//	  let g = { item : dependencies(item) = ∅ }
//	  if g empty: []
//	  else: g ++ Q(E(items, H ∪ package_hashes(g)), H)
//
// history is the set of package hashes accumulated in prior slots; it
// never changes across the levels of one Select call, only the shrinking
// item list does. Before the first level the items are edited against
// history, so a dependency that is already accumulated never holds an item
// back. The recursion is run iteratively here: each level peels
// off every currently-dependency-free item (one "wave" g), appends it to
// the result in input order, and re-edits the remaining items against
// history unioned with that wave's hashes. A level with no ready item
// stops the loop, which happens within len(items) iterations since each
// non-empty wave strictly shrinks the remaining set.
func Select(items []types.ReadyItem, history types.HashSet) []types.ReadyItem {
	remaining := Edit(items, history)
	var result []types.ReadyItem

	for {
		var wave, rest []types.ReadyItem
		for _, it := range remaining {
			if len(it.Dependencies) == 0 {
				wave = append(wave, it)
			} else {
				rest = append(rest, it)
			}
		}
		if len(wave) == 0 {
			return result
		}
		result = append(result, wave...)

		waveHashes := make(types.HashSet, len(wave))
		for _, it := range wave {
			waveHashes.Add(it.PackageHash())
		}
		remaining = Edit(rest, history.Union(waveHashes))
	}
}
