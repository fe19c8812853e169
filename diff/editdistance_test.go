package diff

import (
	"testing"

	"github.com/jjkester/checkmerge/ir"
)

func TestLabelDistanceZeroIffEqual(t *testing.T) {
	a := ir.NewNode("Ident", "x")
	b := ir.NewNode("Ident", "x")
	c := ir.NewNode("Ident", "y")

	if d := labelDistance(a, b); d != 0 {
		t.Errorf("labelDistance(equal names) = %d, want 0", d)
	}
	if d := labelDistance(a, c); d == 0 {
		t.Error("labelDistance(different names) = 0, want nonzero")
	}
}

func buildTree(typ string, children ...*ir.Node) *ir.Node {
	n := ir.NewNode(typ, "")
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

func TestZhangShashaIdenticalTreesZeroDistance(t *testing.T) {
	t1 := buildTree("Block",
		buildTree("Assign", ir.NewNode("Ident", "x")),
		buildTree("Return", ir.NewNode("Ident", "x")),
	)
	t2 := buildTree("Block",
		buildTree("Assign", ir.NewNode("Ident", "x")),
		buildTree("Return", ir.NewNode("Ident", "x")),
	)

	post1 := postOrder(t1)
	post2 := postOrder(t2)
	dist := zhangShasha(post1, post2)

	root := dist[len(post1)][len(post2)]
	if root != 0 {
		t.Errorf("tree edit distance between identical trees = %d, want 0", root)
	}
}

func TestZhangShashaSingleRelabel(t *testing.T) {
	t1 := ir.NewNode("Ident", "x")
	t2 := ir.NewNode("Ident", "y")

	post1 := postOrder(t1)
	post2 := postOrder(t2)
	dist := zhangShasha(post1, post2)

	if got := dist[1][1]; got != 1 {
		t.Errorf("single relabel distance = %d, want 1", got)
	}
}

func TestZhangShashaInsertOnly(t *testing.T) {
	t1 := ir.NewNode("Ident", "x")
	t2 := buildTree("Block", ir.NewNode("Ident", "x"))

	post1 := postOrder(t1)
	post2 := postOrder(t2)
	dist := zhangShasha(post1, post2)

	got := dist[len(post1)][len(post2)]
	if got != 1 {
		t.Errorf("single-insert distance = %d, want 1", got)
	}
}

func TestTreeEditDistancePairsFindsClosestPartner(t *testing.T) {
	shared := ir.NewNode("Ident", "x")
	other := ir.NewNode("Ident", "y")
	t1 := buildTree("Block", shared)
	t2 := buildTree("Block", other)

	pairs := treeEditDistancePairs(t1, t2)

	found := map[*ir.Node]*ir.Node{}
	for _, p := range pairs {
		found[p[0]] = p[1]
	}

	if found[t1] != t2 {
		t.Errorf("best partner of root = %v, want %v", found[t1], t2)
	}
	if found[shared] != other {
		t.Errorf("best partner of leaf = %v, want %v", found[shared], other)
	}
}

func TestLeftmostAndKeyrootsLeaf(t *testing.T) {
	n := ir.NewNode("Ident", "x")
	leftmost, keyroots := leftmostAndKeyroots([]*ir.Node{n})

	if leftmost[1] != 1 {
		t.Errorf("leftmost[1] = %d, want 1", leftmost[1])
	}
	if len(keyroots) != 1 || keyroots[0] != 1 {
		t.Errorf("keyroots = %v, want [1]", keyroots)
	}
}

func TestLeftmostAndKeyrootsAscendingOrder(t *testing.T) {
	tree := buildTree("Block",
		buildTree("Assign", ir.NewNode("Ident", "x")),
		ir.NewNode("Ident", "y"),
	)
	post := postOrder(tree)
	_, keyroots := leftmostAndKeyroots(post)

	for i := 1; i < len(keyroots); i++ {
		if keyroots[i-1] >= keyroots[i] {
			t.Errorf("keyroots %v not strictly ascending", keyroots)
			break
		}
	}
}
