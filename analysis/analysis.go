// Package analysis implements the semantic conflict detectors that run
// over a diff.DiffResult or diff.MergeDiffResult once nodes are tagged:
// dependence analysis (§4.7) and reference analysis (§4.8).
package analysis

import (
	"github.com/jjkester/checkmerge/diff"
	"github.com/jjkester/checkmerge/ir"
)

// Input is the data an Analysis operates over: the two tree roots, the
// node mapping connecting them, and an index attributing every involved
// node to its Change. Both a plain two-way diff and a three-way
// merge-diff's combined B<->O view can be adapted into an Input, which
// keeps DependenceAnalysis usable in either case (§4.7 does not
// distinguish two-way from three-way; §4.8 does, and checks separately).
type Input struct {
	Base          *ir.Node
	Other         *ir.Node
	Mapping       *diff.Mapping
	ChangesByNode map[*ir.Node]diff.Change

	// ThreeWay and the fields below are only populated by FromMerge;
	// ReferenceAnalysis (§4.8) requires them and yields nothing without
	// them.
	ThreeWay           bool
	Ancestor           *ir.Node
	BaseMapping        *diff.Mapping
	OtherMapping       *diff.Mapping
	BaseChangesByNode  map[*ir.Node]diff.Change
	OtherChangesByNode map[*ir.Node]diff.Change
}

// FromDiff adapts a two-way diff result into an Input.
func FromDiff(d *diff.DiffResult) Input {
	return Input{Base: d.Base, Other: d.Other, Mapping: d.Mapping, ChangesByNode: d.ChangesByNode()}
}

// FromMerge adapts a three-way merge-diff result into an Input, using the
// combined B<->O mapping and the union of both ancestor-relative
// changes_by_node indices (ancestor-side keys may collide across the two
// halves; only Base/Other-side keys, which never collide, matter to
// analyses operating over subtree(Base) ∪ subtree(Other)).
func FromMerge(r *diff.MergeDiffResult) Input {
	changes := make(map[*ir.Node]diff.Change)
	for k, v := range r.BaseDiff.ChangesByNode() {
		changes[k] = v
	}
	for k, v := range r.OtherDiff.ChangesByNode() {
		changes[k] = v
	}

	return Input{
		Base:               r.Base,
		Other:              r.Other,
		Mapping:            r.Combined,
		ChangesByNode:      changes,
		ThreeWay:           true,
		Ancestor:           r.Ancestor,
		BaseMapping:        r.BaseDiff.Mapping,
		OtherMapping:       r.OtherDiff.Mapping,
		BaseChangesByNode:  r.BaseDiff.ChangesByNode(),
		OtherChangesByNode: r.OtherDiff.ChangesByNode(),
	}
}

// Result is a single conflict found by an Analysis (§6's analysis
// interface): a kind tag, human-readable name/description, a severity
// score, the set of Changes implicated, and optional extra nodes kept only
// for localizing the conflict in source.
type Result struct {
	Kind        string
	Name        string
	Description string
	Severity    float64
	Changes     map[diff.Change]bool
	BaseNodes   map[*ir.Node]bool
	OtherNodes  map[*ir.Node]bool
}

func newResult(kind, name, description string, severity float64) Result {
	return Result{
		Kind:        kind,
		Name:        name,
		Description: description,
		Severity:    severity,
		Changes:     map[diff.Change]bool{},
		BaseNodes:   map[*ir.Node]bool{},
		OtherNodes:  map[*ir.Node]bool{},
	}
}

// ChangedBaseNodes returns the base-tree nodes among this result's Changes.
func (r Result) ChangedBaseNodes() map[*ir.Node]bool {
	out := map[*ir.Node]bool{}
	for c := range r.Changes {
		if c.Base != nil {
			out[c.Base] = true
		}
	}
	return out
}

// ChangedOtherNodes returns the other-tree nodes among this result's Changes.
func (r Result) ChangedOtherNodes() map[*ir.Node]bool {
	out := map[*ir.Node]bool{}
	for c := range r.Changes {
		if c.Other != nil {
			out[c.Other] = true
		}
	}
	return out
}

// BaseLocations returns the compressed set of source ranges in the base
// tree affected by this result.
func (r Result) BaseLocations() []ir.Range {
	return compressNodeLocations(r.ChangedBaseNodes())
}

// OtherLocations returns the compressed set of source ranges in the other
// tree affected by this result.
func (r Result) OtherLocations() []ir.Range {
	return compressNodeLocations(r.ChangedOtherNodes())
}

func compressNodeLocations(nodes map[*ir.Node]bool) []ir.Range {
	var ranges []ir.Range
	for n := range nodes {
		if n.SourceRange != nil {
			ranges = append(ranges, *n.SourceRange)
		}
	}
	return ir.Compress(ranges)
}

// Analysis is a pluggable conflict detector keyed by a short string (§6's
// analysis registry: "dependence", "reference", ...).
type Analysis interface {
	Key() string
	Name() string
	Description() string
	Analyze(input Input) []Result
}
