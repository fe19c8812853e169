package diff

import "github.com/jjkester/checkmerge/ir"

// DefaultMinHeight is the default minimum subtree height the top-down
// matcher will still consider a candidate match (§4.3).
const DefaultMinHeight = 2

// Mapping is a partial bijection between nodes of a base tree and nodes of
// an other tree, produced by the matchers in this package.
type Mapping struct {
	forward map[*ir.Node]*ir.Node
	reverse map[*ir.Node]*ir.Node
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{forward: map[*ir.Node]*ir.Node{}, reverse: map[*ir.Node]*ir.Node{}}
}

// Get returns the partner of n in the other tree, or nil if unmapped.
func (m *Mapping) Get(n *ir.Node) *ir.Node {
	return m.forward[n]
}

// GetReverse returns the partner of n assuming n belongs to the "other"
// side of the mapping.
func (m *Mapping) GetReverse(n *ir.Node) *ir.Node {
	return m.reverse[n]
}

// Has reports whether base is mapped.
func (m *Mapping) Has(base *ir.Node) bool {
	_, ok := m.forward[base]
	return ok
}

// HasOther reports whether other is the target of some mapping.
func (m *Mapping) HasOther(other *ir.Node) bool {
	_, ok := m.reverse[other]
	return ok
}

// Set records base <-> other as a matched pair. It does not check for
// prior mappings of either side; callers that must preserve bijectivity
// (the matchers in this package) guard that themselves before calling Set.
func (m *Mapping) Set(base, other *ir.Node) {
	m.forward[base] = other
	m.reverse[other] = base
}

// Len returns the number of mapped pairs.
func (m *Mapping) Len() int {
	return len(m.forward)
}

// Pairs returns all (base, other) pairs currently in the mapping. Order is
// unspecified.
func (m *Mapping) Pairs() [][2]*ir.Node {
	out := make([][2]*ir.Node, 0, len(m.forward))
	for b, o := range m.forward {
		out = append(out, [2]*ir.Node{b, o})
	}
	return out
}

// TopDownConfig configures TopDownMatch.
type TopDownConfig struct {
	// MinHeight is the minimum subtree height both candidates must have to
	// still be considered (§4.3). Zero means DefaultMinHeight.
	MinHeight int
}

func (c TopDownConfig) minHeight() int {
	if c.MinHeight > 0 {
		return c.MinHeight
	}
	return DefaultMinHeight
}

type ambiguousPair struct {
	base, other *ir.Node
}

// TopDownMatch computes an initial partial bijection between base and
// other, biased towards large isomorphic subtrees, following the GumTree
// phase-1 algorithm of §4.3.
func TopDownMatch(base, other *ir.Node, cfg TopDownConfig) *Mapping {
	minHeight := cfg.minHeight()

	l1 := NewPriorityList(negHeight)
	l2 := NewPriorityList(negHeight)
	l1.Push(base)
	l2.Push(other)

	m := NewMapping()
	var ambiguous []ambiguousPair

	baseNodes := base.Subtree(false)
	otherNodes := other.Subtree(false)

	for l1.Len() > 0 && l2.Len() > 0 && min(l1.Peek().Height(), l2.Peek().Height()) >= minHeight {
		h1Height := l1.Peek().Height()
		h2Height := l2.Peek().Height()

		switch {
		case h1Height > h2Height:
			for _, t := range l1.PopMany() {
				l1.Open(t.Children())
			}
		case h1Height < h2Height:
			for _, t := range l2.PopMany() {
				l2.Open(t.Children())
			}
		default:
			h1 := l1.PopMany()
			h2 := l2.PopMany()

			matchedH1 := map[*ir.Node]bool{}
			matchedH2 := map[*ir.Node]bool{}

			for _, t1 := range h1 {
				for _, t2 := range h2 {
					if t1.Hash() != t2.Hash() {
						continue
					}

					if hasOtherMatch(otherNodes, t1, t2) || hasOtherMatch(baseNodes, t2, t1) {
						ambiguous = append(ambiguous, ambiguousPair{t1, t2})
						matchedH1[t1] = true
						matchedH2[t2] = true
						continue
					}

					mapIsomorphicSubtrees(t1, t2, m)
					matchedH1[t1] = true
					matchedH2[t2] = true
				}
			}

			for _, t := range h1 {
				if !matchedH1[t] {
					l1.Open(t.Children())
				}
			}
			for _, t := range h2 {
				if !matchedH2[t] {
					l2.Open(t.Children())
				}
			}
		}
	}

	sortAmbiguousByDescendingDice(ambiguous, m)

	for _, pair := range ambiguous {
		if m.Has(pair.base) || m.HasOther(pair.other) {
			continue
		}
		mapIsomorphicSubtrees(pair.base, pair.other, m)
	}

	return m
}

func negHeight(n *ir.Node) int {
	return -n.Height()
}

// hasOtherMatch reports whether some node in candidates, other than
// exclude, hashes equal to target — i.e. whether target has more than one
// isomorphic candidate and the match is therefore ambiguous.
func hasOtherMatch(candidates []*ir.Node, target, exclude *ir.Node) bool {
	for _, c := range candidates {
		if c == exclude {
			continue
		}
		if c.Hash() == target.Hash() {
			return true
		}
	}
	return false
}

// mapIsomorphicSubtrees walks t1 and t2 in lockstep (they are isomorphic by
// construction: caller has already verified t1.Hash() == t2.Hash()) and
// maps each corresponding pair of nodes.
func mapIsomorphicSubtrees(t1, t2 *ir.Node, m *Mapping) {
	m.Set(t1, t2)
	c1 := t1.Children()
	c2 := t2.Children()
	for i := range c1 {
		mapIsomorphicSubtrees(c1[i], c2[i], m)
	}
}

// Dice computes the similarity, in [0,1], of t1 and t2's descendant sets
// under mapping m: 2 * |common mapped descendants| / (|desc(t1)| + |desc(t2)|).
func Dice(t1, t2 *ir.Node, m *Mapping) float64 {
	if t1 == nil || t2 == nil {
		return 0
	}

	d1 := t1.Descendants()
	d2 := t2.Descendants()

	d2Set := map[*ir.Node]bool{}
	for _, d := range d2 {
		d2Set[d] = true
	}

	common := 0
	for _, d := range d1 {
		if mapped := m.Get(d); mapped != nil && d2Set[mapped] {
			common++
		}
	}

	denom := len(d1) + len(d2)
	if denom == 0 {
		return 0
	}
	return 2 * float64(common) / float64(denom)
}

func sortAmbiguousByDescendingDice(pairs []ambiguousPair, m *Mapping) {
	// Small insertion sort: the ambiguous set is expected to be tiny
	// relative to tree size, and dice recomputation dominates anyway.
	for i := 1; i < len(pairs); i++ {
		j := i
		for j > 0 && diceOf(pairs[j-1], m) < diceOf(pairs[j], m) {
			pairs[j-1], pairs[j] = pairs[j], pairs[j-1]
			j--
		}
	}
}

func diceOf(p ambiguousPair, m *Mapping) float64 {
	return Dice(p.base.Parent(), p.other.Parent(), m)
}
