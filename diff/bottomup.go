package diff

import "github.com/jjkester/checkmerge/ir"

// DefaultMinDice is the default container-similarity threshold below which
// the bottom-up matcher will not accept a candidate pair (§4.4).
const DefaultMinDice = 0.3

// DefaultMaxSize bounds the descendant-set size the OPT refinement step
// will run against, guarding against its O(n^2*m^2) worst case (§4.4).
const DefaultMaxSize = 100

// BottomUpConfig configures BottomUpMatch.
type BottomUpConfig struct {
	// MinDice is the minimum dice coefficient a candidate container match
	// must exceed. Zero means DefaultMinDice.
	MinDice float64
	// MaxSize bounds the descendant-set sizes OPT will run against. Zero
	// means DefaultMaxSize.
	MaxSize int
}

func (c BottomUpConfig) minDice() float64 {
	if c.MinDice > 0 {
		return c.MinDice
	}
	return DefaultMinDice
}

func (c BottomUpConfig) maxSize() int {
	if c.MaxSize > 0 {
		return c.MaxSize
	}
	return DefaultMaxSize
}

// BottomUpMatch extends m in place with container-level matches, following
// the GumTree phase-2 algorithm of §4.4: for every unmatched t1 with at
// least one already-matched child, find the best-dice unmatched same-type
// t2 and, if the trees are small enough, refine the pair via the OPT
// (Zhang-Shasha) step.
func BottomUpMatch(t1Root, t2Root *ir.Node, m *Mapping, cfg BottomUpConfig) {
	minDice := cfg.minDice()
	maxSize := cfg.maxSize()

	t2Nodes := t2Root.Subtree(false)

	for _, t1 := range t1Root.Subtree(true) {
		if m.Has(t1) {
			continue
		}
		if !anyChildMatched(t1, m) {
			continue
		}

		t2 := bestBottomUpCandidate(t1, t2Nodes, m, minDice)
		if t2 == nil {
			continue
		}

		m.Set(t1, t2)

		d1 := t1.Descendants()
		d2 := t2.Descendants()
		if maxOf(len(d1), len(d2)) >= maxSize {
			continue
		}

		for _, pair := range treeEditDistancePairs(t1, t2) {
			r1, r2 := pair[0], pair[1]
			if m.Has(r1) || m.HasOther(r2) {
				continue
			}
			if r1.Type != r2.Type {
				continue
			}
			m.Set(r1, r2)
		}
	}
}

// anyChildMatched reports whether at least one of t1's direct children is
// mapped — the precondition §4.4 requires before t1 itself is considered a
// bottom-up candidate.
func anyChildMatched(t1 *ir.Node, m *Mapping) bool {
	for _, c := range t1.Children() {
		if m.Has(c) {
			return true
		}
	}
	return false
}

// bestBottomUpCandidate returns the unmatched, same-typed node in
// candidates maximizing dice(t1, t2, m), provided that maximum exceeds
// minDice. Ties are broken by traversal order (first seen wins).
func bestBottomUpCandidate(t1 *ir.Node, candidates []*ir.Node, m *Mapping, minDice float64) *ir.Node {
	var best *ir.Node
	bestDice := minDice

	for _, t2 := range candidates {
		if t2.Type != t1.Type {
			continue
		}
		if m.HasOther(t2) {
			continue
		}

		d := Dice(t1, t2, m)
		if d > bestDice {
			bestDice = d
			best = t2
		}
	}

	return best
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
