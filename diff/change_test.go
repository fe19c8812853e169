package diff

import (
	"testing"

	"github.com/jjkester/checkmerge/ir"
)

func TestEditScriptDeleteInsertRename(t *testing.T) {
	keep := ir.NewNode("Ident", "x")
	deleted := ir.NewNode("Ident", "gone")
	base := ir.NewNode("Block", "")
	base.AddChild(keep)
	base.AddChild(deleted)

	kept2 := ir.NewNode("Ident", "y") // renamed partner of keep
	inserted := ir.NewNode("Ident", "new")
	other := ir.NewNode("Block", "")
	other.AddChild(kept2)
	other.AddChild(inserted)

	m := NewMapping()
	m.Set(base, other)
	m.Set(keep, kept2)

	changes := editScript(base, other, m)

	var hasDelete, hasInsert, hasRename bool
	for _, c := range changes {
		switch c.Operation {
		case Delete:
			if c.Base == deleted {
				hasDelete = true
			}
		case Insert:
			if c.Other == inserted {
				hasInsert = true
			}
		case Rename:
			if c.Base == keep && c.Other == kept2 {
				hasRename = true
			}
		}
	}

	if !hasDelete {
		t.Error("expected a Delete for the unmapped base node")
	}
	if !hasInsert {
		t.Error("expected an Insert for the unmapped other node")
	}
	if !hasRename {
		t.Error("expected a Rename for the mapped pair with differing names")
	}
}

func TestReduceToInsertDeleteSplitsRename(t *testing.T) {
	a := ir.NewNode("Ident", "x")
	b := ir.NewNode("Ident", "y")
	changes := []Change{{Operation: Rename, Base: a, Other: b}}

	reduced := ReduceToInsertDelete(changes)
	if len(reduced) != 2 {
		t.Fatalf("ReduceToInsertDelete = %d changes, want 2", len(reduced))
	}
	if reduced[0].Operation != Delete || reduced[0].Base != a {
		t.Errorf("first reduced change = %+v, want Delete(a)", reduced[0])
	}
	if reduced[1].Operation != Insert || reduced[1].Other != b {
		t.Errorf("second reduced change = %+v, want Insert(b)", reduced[1])
	}
}

func TestTagNodesSetsMappingAndIsChanged(t *testing.T) {
	a := ir.NewNode("Ident", "x")
	b := ir.NewNode("Ident", "x")
	deleted := ir.NewNode("Ident", "gone")

	m := NewMapping()
	m.Set(a, b)

	changes := []Change{{Operation: Delete, Base: deleted}}
	tagNodes(m, changes)

	if a.Mapping != b || b.Mapping != a {
		t.Error("tagNodes did not set a reciprocal mapping")
	}
	if !deleted.IsChanged {
		t.Error("tagNodes did not mark the deleted node as changed")
	}
	if a.IsChanged {
		t.Error("tagNodes should not mark unchanged mapped nodes as changed")
	}
}

func TestTagNodesPanicsOnConflictingMapping(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic writing conflicting mapping twice")
		}
	}()

	a := ir.NewNode("Ident", "x")
	b := ir.NewNode("Ident", "x")
	c := ir.NewNode("Ident", "x")

	a.Mapping = c
	setMappingOnce(a, b)
}

func TestChangesByNodeInvariant(t *testing.T) {
	a := ir.NewNode("Ident", "x")
	b := ir.NewNode("Ident", "y")
	changes := []Change{{Operation: Rename, Base: a, Other: b}}

	index := changesByNode(changes)
	if index[a].Operation != Rename || index[b].Operation != Rename {
		t.Errorf("changesByNode missing entries for renamed pair: %+v", index)
	}
}

func TestSortChangesByLocation(t *testing.T) {
	early := ir.NewNode("Ident", "a")
	early.SourceRange = &ir.Range{
		Start: ir.Location{File: "x.go", Line: 1, Column: 1},
		End:   ir.Location{File: "x.go", Line: 1, Column: 2},
	}
	late := ir.NewNode("Ident", "b")
	late.SourceRange = &ir.Range{
		Start: ir.Location{File: "x.go", Line: 5, Column: 1},
		End:   ir.Location{File: "x.go", Line: 5, Column: 2},
	}

	changes := []Change{
		{Operation: Delete, Base: late},
		{Operation: Delete, Base: early},
	}
	sortChanges(changes)

	if changes[0].Base != early || changes[1].Base != late {
		t.Errorf("sortChanges did not order by location: %+v", changes)
	}
}
