package ir

import (
	"testing"
)

func buildTree(typ string, label string, children ...*Node) *Node {
	n := NewNode(typ, label)
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

func TestHeight(t *testing.T) {
	leaf := buildTree("Leaf", "")
	if got := leaf.Height(); got != 1 {
		t.Errorf("leaf height = %d, want 1", got)
	}

	tree := buildTree("Root", "",
		buildTree("A", "", buildTree("Leaf", "")),
		buildTree("B", ""),
	)
	if got := tree.Height(); got != 3 {
		t.Errorf("tree height = %d, want 3", got)
	}
}

func TestHashIsomorphism(t *testing.T) {
	a := buildTree("BinOp", "+", buildTree("Var", "a"), buildTree("Var", "b"))
	b := buildTree("BinOp", "+", buildTree("Var", "a"), buildTree("Var", "b"))
	c := buildTree("BinOp", "+", buildTree("Var", "a"), buildTree("Var", "c"))
	d := buildTree("BinOp", "-", buildTree("Var", "a"), buildTree("Var", "b"))

	if a.Hash() != b.Hash() {
		t.Error("isomorphic trees should hash equal")
	}
	if a.Hash() == c.Hash() {
		t.Error("trees differing in a leaf label should hash differently")
	}
	if a.Hash() == d.Hash() {
		t.Error("trees differing in root label should hash differently")
	}
}

func TestHashDependsOnChildOrder(t *testing.T) {
	// Order matters: swapping children of a non-commutative op changes the hash.
	ab := buildTree("Call", "f", buildTree("Arg", "a"), buildTree("Arg", "b"))
	ba := buildTree("Call", "f", buildTree("Arg", "b"), buildTree("Arg", "a"))

	if ab.Hash() == ba.Hash() {
		t.Error("reordering children should change the hash (order is semantic)")
	}
}

func TestAddChildRejectsReparenting(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when re-parenting an already-parented node")
		}
	}()

	child := NewNode("Var", "x")
	p1 := NewNode("Block", "")
	p2 := NewNode("Block", "")

	p1.AddChild(child)
	p2.AddChild(child)
}

func TestParentChildInvariant(t *testing.T) {
	child := NewNode("Var", "x")
	parent := NewNode("Block", "")
	parent.AddChild(child)

	if child.Parent() != parent {
		t.Error("child.Parent() should be parent")
	}

	found := false
	for _, c := range parent.Children() {
		if c == child {
			found = true
		}
	}
	if !found {
		t.Error("parent.Children() should contain child")
	}
}

func TestRoot(t *testing.T) {
	leaf := NewNode("Var", "x")
	mid := NewNode("Block", "")
	top := NewNode("Function", "f")
	top.AddChild(mid)
	mid.AddChild(leaf)

	if leaf.Root() != top {
		t.Error("leaf.Root() should be the top-level node")
	}
	if top.Root() != top {
		t.Error("top.Root() should be itself")
	}
}

func TestAddDependenciesMirrorsReverse(t *testing.T) {
	a := NewNode("Store", "")
	b := NewNode("Load", "")

	a.AddDependencies(Dependency{Target: b, Kind: Flow})

	if len(a.Deps()) != 1 || a.Deps()[0].Target != b || a.Deps()[0].Kind != Flow || a.Deps()[0].Reverse {
		t.Errorf("a.Deps() = %+v, want one forward Flow edge to b", a.Deps())
	}
	if len(b.RDeps()) != 1 || b.RDeps()[0].Target != a || b.RDeps()[0].Kind != Flow || !b.RDeps()[0].Reverse {
		t.Errorf("b.RDeps() = %+v, want one reverse Flow edge from a", b.RDeps())
	}
}

func TestIsMemoryOperation(t *testing.T) {
	store := NewNode("Store", "")
	load := NewNode("Load", "")
	store.AddDependencies(Dependency{Target: load, Kind: Flow})

	if !store.IsMemoryOperation() {
		t.Error("node with an outgoing memory-kind edge should be a memory operation")
	}
	if !load.IsMemoryOperation() {
		t.Error("node with an incoming memory-kind edge should be a memory operation")
	}

	plain := NewNode("Literal", "1")
	if plain.IsMemoryOperation() {
		t.Error("node with no memory edges should not be a memory operation")
	}

	override := NewNode("Return", "")
	override.MemoryOperationOverride = True
	if !override.IsMemoryOperation() {
		t.Error("override=True should force IsMemoryOperation")
	}

	overrideFalse := NewNode("Store", "")
	overrideFalse.MemoryOperationOverride = False
	overrideFalse.AddDependencies(Dependency{Target: load, Kind: Flow})
	if overrideFalse.IsMemoryOperation() {
		t.Error("override=False should force IsMemoryOperation to false even with memory edges")
	}
}

func TestIsDefinitionAndReferences(t *testing.T) {
	def := NewNode("VarDecl", "x")
	use1 := NewNode("VarRef", "x")
	use2 := NewNode("VarRef", "x")

	if def.IsDefinition() {
		t.Error("node with no incoming references should not be a definition yet")
	}

	use1.AddDependencies(Dependency{Target: def, Kind: Reference})
	use2.AddDependencies(Dependency{Target: def, Kind: Reference})

	if !def.IsDefinition() {
		t.Error("node with an incoming reference edge should be a definition")
	}

	refs := def.References()
	if len(refs) != 2 {
		t.Fatalf("def.References() = %v, want 2 entries", refs)
	}
}

func TestName(t *testing.T) {
	labeled := NewNode("VarDecl", "x")
	if got, want := labeled.Name(), "VarDecl: x"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}

	unlabeled := NewNode("Return", "")
	if got, want := unlabeled.Name(), "Return"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}
