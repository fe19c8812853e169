package analysis

import (
	"github.com/jjkester/checkmerge/diff"
	"github.com/jjkester/checkmerge/ir"
)

// ReferenceAnalysis finds renamed or deleted declarations whose uses were
// not updated consistently on one side of a three-way merge (§4.8). It
// yields nothing when given a two-way Input. Grounded on
// checkmerge/analysis/reference.py's ReferenceAnalysis, restructured
// around the ancestor-relative M_B/M_O mappings §4.8 calls for instead of
// the Python version's single node.mapping field.
type ReferenceAnalysis struct{}

func (ReferenceAnalysis) Key() string  { return "reference" }
func (ReferenceAnalysis) Name() string { return "Reference analysis" }
func (ReferenceAnalysis) Description() string {
	return "Finds changes that lead to broken references to identifiers."
}

// Analyze implements §4.8's procedure.
func (a ReferenceAnalysis) Analyze(input Input) []Result {
	if !input.ThreeWay {
		return nil
	}

	var results []Result

	for _, d := range input.Ancestor.Subtree(false) {
		if !d.IsDefinition() {
			continue
		}

		baseChange, hasBaseChange := input.BaseChangesByNode[d]
		otherChange, hasOtherChange := input.OtherChangesByNode[d]
		if !hasBaseChange && !hasOtherChange {
			continue
		}

		uses := d.References()

		if hasBaseChange {
			if r, ok := a.sideConflict(input, d, uses, baseChange, input.OtherMapping); ok {
				results = append(results, r)
			}
		}
		if hasOtherChange {
			if r, ok := a.sideConflict(input, d, uses, otherChange, input.BaseMapping); ok {
				results = append(results, r)
			}
		}
	}

	return results
}

// sideConflict evaluates §4.8 step 4-5 for one changed side, given the
// mapping from the ancestor into the *opposite* tree (M_O when the base
// side changed, M_B when the other side changed).
func (a ReferenceAnalysis) sideConflict(input Input, d *ir.Node, uses []*ir.Node, change diff.Change, oppMapping *diff.Mapping) (Result, bool) {
	var kind, name, description string
	var severity float64
	switch change.Operation {
	case diff.Rename:
		kind, name, description, severity = "renamed_reference", "Renamed reference conflict", "Dead or incorrect references to a renamed identifier.", 2.0
	case diff.Delete:
		kind, name, description, severity = "deleted_reference", "Deleted reference conflict", "Dead or incorrect references to a deleted identifier.", 1.5
	default:
		// Insert is not a conflict source for this analysis.
		return Result{}, false
	}

	dOpp := oppMapping.Get(d)
	if dOpp == nil {
		return Result{}, false
	}

	mappedUses := newSet[*ir.Node]()
	for _, u := range uses {
		if m := oppMapping.Get(u); m != nil {
			mappedUses[m] = true
		}
	}

	conflictNodes := newSet[*ir.Node]()
	for _, u := range dOpp.References() {
		if !mappedUses[u] {
			conflictNodes[u] = true
		}
	}
	conflictNodes[d] = true
	conflictNodes[dOpp] = true

	r := newResult(kind, name, description, severity)
	for n := range conflictNodes {
		if c, ok := input.ChangesByNode[n]; ok {
			r.Changes[c] = true
			continue
		}
		switch n.Root() {
		case input.Base:
			r.BaseNodes[n] = true
		case input.Other:
			r.OtherNodes[n] = true
		}
	}

	if len(r.Changes) == 0 {
		return Result{}, false
	}

	return r, true
}
