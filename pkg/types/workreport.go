package types

// WorkReport is opaque to the kernel except for its package hash and the
// set of package hashes it depends on. The accumulation queue engine (C4)
// never inspects any other field.
type WorkReport struct {
	// PackageHash is the content-addressed hash of the report's
	// package_spec, used as the report's own identity in dependency sets.
	PackageHash Hash

	// Dependencies is the set of package hashes this report requires to
	// have already been accumulated before it becomes eligible itself.
	Dependencies HashSet
}

// ReadyItem pairs a WorkReport with its still-outstanding dependency set.
// A ReadyItem is created when a report enters the ready queue, mutated only
// by replacement with a strictly smaller dependency set, and destroyed once
// its work-report is accumulated.
type ReadyItem struct {
	Report       WorkReport
	Dependencies HashSet
}

// PackageHash returns the identity hash of the item's underlying report.
func (r ReadyItem) PackageHash() Hash {
	return r.Report.PackageHash
}

// AccumulatedHistory is an ordered, append-only sequence of per-slot sets of
// accumulated package hashes. Sealed slots (every entry but the last) are
// immutable; only Append may extend the sequence.
type AccumulatedHistory struct {
	slots []HashSet
}

// NewAccumulatedHistory returns an empty history.
func NewAccumulatedHistory() *AccumulatedHistory {
	return &AccumulatedHistory{}
}

// Append seals a new slot's accumulated set onto the history.
func (h *AccumulatedHistory) Append(accumulated HashSet) {
	h.slots = append(h.slots, accumulated.Clone())
}

// Len returns the number of sealed slots.
func (h *AccumulatedHistory) Len() int {
	return len(h.slots)
}

// All returns the union of every sealed slot's accumulated set, i.e. the
// complete set of package hashes accumulated so far.
func (h *AccumulatedHistory) All() HashSet {
	out := make(HashSet)
	for _, slot := range h.slots {
		for pkg := range slot {
			out[pkg] = struct{}{}
		}
	}
	return out
}
