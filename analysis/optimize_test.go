package analysis

import (
	"testing"

	"github.com/jjkester/checkmerge/ir"
)

func TestRemoveSubsetsDropsSubsetsAndDuplicates(t *testing.T) {
	a := ir.NewNode("A", "")
	b := ir.NewNode("B", "")
	c := ir.NewNode("C", "")

	sets := []nodeSet{
		newNodeSet(a, b),
		newNodeSet(a),       // subset of the first
		newNodeSet(a, b, c), // superset of the first
		newNodeSet(a, b),    // duplicate of the first
	}

	result := removeSubsets(sets)
	if len(result) != 1 {
		t.Fatalf("removeSubsets() = %d sets, want 1", len(result))
	}
	if !result[0].equals(newNodeSet(a, b, c)) {
		t.Errorf("remaining set = %v, want {a,b,c}", result[0])
	}
}

func TestOptimizeChangeSetsAbsorbsDescendants(t *testing.T) {
	loop := ir.NewNode("Loop", "")
	stmt := ir.NewNode("Stmt", "")
	loop.AddChild(stmt)

	other := ir.NewNode("Other", "")

	sets := []nodeSet{
		newNodeSet(stmt),
		newNodeSet(loop, other),
	}

	result := optimizeChangeSets(sets)
	if len(result) != 1 {
		t.Fatalf("optimizeChangeSets() = %d sets, want 1 (stmt absorbed into loop)", len(result))
	}
	if !result[0].equals(newNodeSet(loop, other)) {
		t.Errorf("result = %v, want {loop, other}", result[0])
	}
}

func TestOptimizeChangeSetsKeepsDisjointSets(t *testing.T) {
	a := ir.NewNode("A", "")
	b := ir.NewNode("B", "")

	sets := []nodeSet{newNodeSet(a), newNodeSet(b)}
	result := optimizeChangeSets(sets)

	if len(result) != 2 {
		t.Errorf("optimizeChangeSets() = %d sets, want 2 disjoint sets preserved", len(result))
	}
}
