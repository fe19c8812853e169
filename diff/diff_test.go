package diff

import (
	"testing"

	"github.com/jjkester/checkmerge/ir"
)

func TestDiffMatchesIdenticalTrees(t *testing.T) {
	base := buildTree("Block",
		buildTree("Assign", ir.NewNode("Ident", "x")),
		buildTree("Return", ir.NewNode("Ident", "x")),
	)
	other := buildTree("Block",
		buildTree("Assign", ir.NewNode("Ident", "x")),
		buildTree("Return", ir.NewNode("Ident", "x")),
	)

	result := Diff(base, other, Config{TopDown: TopDownConfig{MinHeight: 1}})

	if len(result.Changes()) != 0 {
		t.Errorf("Diff of identical trees produced changes: %+v", result.Changes())
	}
	if base.Mapping != other {
		t.Error("Diff did not tag the root mapping")
	}
}

func TestDiffDetectsInsertAndDelete(t *testing.T) {
	base := buildTree("Block", ir.NewNode("Ident", "x"))
	other := buildTree("Block", ir.NewNode("Ident", "y"))

	result := Diff(base, other, Config{TopDown: TopDownConfig{MinHeight: 1}})

	changes := result.Changes()
	if len(changes) == 0 {
		t.Fatal("expected Diff to produce at least one change for differing leaves")
	}

	byNode := result.ChangesByNode()
	for _, c := range changes {
		if c.Base != nil {
			if _, ok := byNode[c.Base]; !ok {
				t.Errorf("ChangesByNode missing base node for change %+v", c)
			}
		}
		if c.Other != nil {
			if _, ok := byNode[c.Other]; !ok {
				t.Errorf("ChangesByNode missing other node for change %+v", c)
			}
		}
	}
}

func TestDiffSeededUsesProvidedMapping(t *testing.T) {
	baseLeaf := ir.NewNode("Ident", "x")
	base := ir.NewNode("Block", "")
	base.AddChild(baseLeaf)

	otherLeaf := ir.NewNode("Ident", "x")
	other := ir.NewNode("Block", "")
	other.AddChild(otherLeaf)

	seed := NewMapping()
	seed.Set(baseLeaf, otherLeaf)

	result := DiffSeeded(base, other, seed, Config{})

	if result.Mapping.Get(base) != other {
		t.Error("DiffSeeded did not extend the seed mapping to the container nodes")
	}
}
