package analysis

import (
	"github.com/jjkester/checkmerge/diff"
	"github.com/jjkester/checkmerge/ir"
)

// DependenceAnalysis reports sets of changed nodes that can all affect the
// same memory, via the dependency graph's memory-kind edges (§4.7).
// Grounded on checkmerge/analysis/dependence.py's DependenceAnalysis,
// adapted to take an Input so it runs identically over a two-way diff or a
// three-way merge-diff's combined view.
type DependenceAnalysis struct{}

func (DependenceAnalysis) Key() string         { return "dependence" }
func (DependenceAnalysis) Name() string        { return "Dependence analysis" }
func (DependenceAnalysis) Description() string { return "Finds changes that may affect the same memory." }

// Analyze implements §4.7's procedure.
func (a DependenceAnalysis) Analyze(input Input) []Result {
	var candidates []nodeSet

	for _, n := range memoryOperationCandidates(input) {
		changed := newSet[*ir.Node]()
		for x := range affected(input, n) {
			if x.IsChanged {
				changed[x] = true
			}
		}

		if len(changed) <= 1 {
			continue
		}
		if !spansBothTrees(input, changed) {
			continue
		}

		candidates = append(candidates, changed)
	}

	optimized := optimizeChangeSets(candidates)

	var changeSets []set[diff.Change]
	for _, ns := range optimized {
		cs := newSet[diff.Change]()
		for n := range ns {
			if c, ok := input.ChangesByNode[n]; ok {
				cs[c] = true
			}
		}
		if len(cs) > 0 {
			changeSets = append(changeSets, cs)
		}
	}
	changeSets = removeSubsets(changeSets)

	results := make([]Result, 0, len(changeSets))
	for _, cs := range changeSets {
		r := newResult(
			"memory_dependence",
			"Memory dependence conflict",
			"Changes in nodes that may have an effect on the same memory.",
			1.0,
		)
		for c := range cs {
			r.Changes[c] = true
		}
		results = append(results, r)
	}

	return results
}

func memoryOperationCandidates(input Input) []*ir.Node {
	var out []*ir.Node
	for _, n := range input.Base.Subtree(false) {
		if n.IsMemoryOperation() {
			out = append(out, n)
		}
	}
	for _, n := range input.Other.Subtree(false) {
		if n.IsMemoryOperation() {
			out = append(out, n)
		}
	}
	return out
}

// memoryCone computes {n} plus n's recursive dependency cone over
// memory-kind edges (both outgoing and incoming), expanding through the
// children of any memory-operation node encountered (§4.7 step 1).
func memoryCone(n *ir.Node) nodeSet {
	limit := func(d ir.Dependency) bool { return d.Kind.IsMemoryKind() }

	out := newNodeSet(n)
	for _, d := range n.RecursiveDependencies(limit, true) {
		out[d] = true
	}
	for _, d := range n.RecursiveReverseDependencies(limit, true) {
		out[d] = true
	}
	return out
}

// affected computes §4.7's affected(n): n's own memory cone, that cone
// mapped across M, and the mapped node's own memory cone.
func affected(input Input, n *ir.Node) nodeSet {
	own := memoryCone(n)

	out := newNodeSet()
	for x := range own {
		out[x] = true
	}

	p := partner(input, n)
	if p == nil {
		return out
	}

	for x := range own {
		if mapped := partner(input, x); mapped != nil {
			out[mapped] = true
		}
	}
	for x := range memoryCone(p) {
		out[x] = true
	}

	return out
}

// partner returns n's counterpart under input.Mapping, trying both
// directions since Mapping is directed base->other.
func partner(input Input, n *ir.Node) *ir.Node {
	if p := input.Mapping.Get(n); p != nil {
		return p
	}
	return input.Mapping.GetReverse(n)
}

// spansBothTrees reports whether nodes contains at least one node rooted
// in input.Base and at least one rooted in input.Other (§4.7's "spans both
// root trees" requirement).
func spansBothTrees(input Input, nodes nodeSet) bool {
	hasBase, hasOther := false, false
	for n := range nodes {
		switch n.Root() {
		case input.Base:
			hasBase = true
		case input.Other:
			hasOther = true
		}
		if hasBase && hasOther {
			return true
		}
	}
	return false
}
