package diff

import "github.com/jjkester/checkmerge/ir"

// MergeDiffResult is the outcome of a three-way diff: an ancestor A diffed
// against base B and other O independently, plus a combined B<->O mapping
// (§4.6). Reference analysis (§4.8) needs to see changes on each side
// independently, which is why MergeDiffResult keeps BaseDiff and OtherDiff
// as full DiffResults rather than flattening them.
type MergeDiffResult struct {
	Ancestor *ir.Node
	Base     *ir.Node
	Other    *ir.Node

	BaseDiff  *DiffResult
	OtherDiff *DiffResult

	// Combined is the through-ancestor B<->O bijection: combine(BaseDiff.Mapping,
	// OtherDiff.Mapping), optionally extended by a seeded second pass.
	Combined *Mapping
}

// Combine builds the through-ancestor B<->O bijection: for every ancestor
// node mapped on both sides, M_B[a] is paired with M_O[a] (§4.6).
func Combine(mB, mO *Mapping) *Mapping {
	out := NewMapping()
	for _, pair := range mB.Pairs() {
		a, b := pair[0], pair[1]
		o := mO.Get(a)
		if o == nil {
			continue
		}
		out.Set(b, o)
	}
	return out
}

// MergeDiff computes a three-way merge-diff result: M_B = Diff(ancestor,
// base), M_O = Diff(ancestor, other), and a combined B<->O mapping (§4.6).
//
// The two sub-diffs share the ancestor tree as their base argument, so they
// cannot both tag Node.Mapping on the ancestor side: an unchanged ancestor
// node maps to a distinct partner under each diff, and that field only
// holds one. diffAgainstAncestor tags Mapping on the base/other side only;
// the ancestor's relation to each side is still fully available via
// BaseDiff.Mapping / OtherDiff.Mapping and Combined, none of which go
// through Node.Mapping.
func MergeDiff(ancestor, base, other *ir.Node, cfg Config) *MergeDiffResult {
	baseDiff := diffAgainstAncestor(ancestor, base, cfg)
	otherDiff := diffAgainstAncestor(ancestor, other, cfg)
	combined := Combine(baseDiff.Mapping, otherDiff.Mapping)

	return &MergeDiffResult{
		Ancestor:  ancestor,
		Base:      base,
		Other:     other,
		BaseDiff:  baseDiff,
		OtherDiff: otherDiff,
		Combined:  combined,
	}
}

// diffAgainstAncestor is Diff, specialized for MergeDiff's two ancestor-
// relative sub-diffs: it tags IsChanged and the side tree's Mapping as
// usual, but leaves ancestor.Mapping untouched so the second sub-diff can
// run without tripping setMappingOnce's write-once check.
func diffAgainstAncestor(ancestor, side *ir.Node, cfg Config) *DiffResult {
	m := TopDownMatch(ancestor, side, cfg.TopDown)
	BottomUpMatch(ancestor, side, m, cfg.BottomUp)

	result := &DiffResult{Base: ancestor, Other: side, Mapping: m}
	tagChanged(result.Changes())
	tagMapping(m, false, true)

	return result
}

// Refine runs the optional second diff pass (M_BO) directly between Base
// and Other, seeded from the ancestor-derived Combined mapping, to catch
// B<->O pairs both versions agree on that the independent ancestor diffs
// missed (§4.6). Any pair it finds that does not collide with an existing
// Combined entry is merged in.
//
// This pass only needs the resulting Mapping, not a tagged DiffResult: Base
// and Other nodes already carry their ancestor-relative Mapping from
// diffAgainstAncestor, and tagging them again here with their B<->O
// partner would collide with that (§4.6).
func (r *MergeDiffResult) Refine(cfg Config) {
	seed := NewMapping()
	for _, pair := range r.Combined.Pairs() {
		seed.Set(pair[0], pair[1])
	}

	bo := seed
	for _, pair := range TopDownMatch(r.Base, r.Other, cfg.TopDown).Pairs() {
		if bo.Has(pair[0]) || bo.HasOther(pair[1]) {
			continue
		}
		bo.Set(pair[0], pair[1])
	}
	BottomUpMatch(r.Base, r.Other, bo, cfg.BottomUp)

	for _, pair := range bo.Pairs() {
		b, o := pair[0], pair[1]
		if r.Combined.Has(b) || r.Combined.HasOther(o) {
			continue
		}
		r.Combined.Set(b, o)
	}
}
