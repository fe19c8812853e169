package diff

import (
	"github.com/agnivade/levenshtein"
	"github.com/jjkester/checkmerge/ir"
)

// labelDistance is the symmetric, zero-iff-equal metric used as the
// relabel cost inside the Zhang-Shasha tree edit distance (§4.4, §9):
// Levenshtein distance over node names. Any such metric gives the same
// relative ranking for the "pick the best partner" step, per §9.
func labelDistance(a, b *ir.Node) int {
	return levenshtein.ComputeDistance(a.Name(), b.Name())
}

// treeEditDistancePairs computes, for every node in t1's subtree, the node
// in t2's subtree minimizing the Zhang-Shasha tree edit distance rooted at
// that pair, returning those minimal (n1, n2) pairs. This is the OPT step
// of §4.4, used by the bottom-up matcher to refine a container-level match
// into finer-grained pairs.
func treeEditDistancePairs(t1, t2 *ir.Node) [][2]*ir.Node {
	post1 := postOrder(t1)
	post2 := postOrder(t2)

	dist := zhangShasha(post1, post2)

	type best struct {
		dist    int
		partner *ir.Node
	}
	bestFor := make(map[*ir.Node]best, len(post1))

	for x := 1; x <= len(post1); x++ {
		for y := 1; y <= len(post2); y++ {
			d := dist[x][y]
			n1 := post1[x-1]
			n2 := post2[y-1]

			cur, ok := bestFor[n1]
			if !ok || d < cur.dist {
				bestFor[n1] = best{dist: d, partner: n2}
			}
		}
	}

	out := make([][2]*ir.Node, 0, len(bestFor))
	for n1, b := range bestFor {
		out = append(out, [2]*ir.Node{n1, b.partner})
	}
	return out
}

// postOrder returns t's nodes in post-order (0-indexed slice; callers
// needing Zhang-Shasha's 1-indexed node positions use index+1).
func postOrder(t *ir.Node) []*ir.Node {
	var out []*ir.Node
	var visit func(n *ir.Node)
	visit = func(n *ir.Node) {
		for _, c := range n.Children() {
			visit(c)
		}
		out = append(out, n)
	}
	visit(t)
	return out
}

// leftmostAndKeyroots computes, for a 1-indexed post-order sequence (length
// n, nodes accessible as post[i-1] for position i), the leftmost-leaf-
// descendant position l(i) for every position, and the ascending list of
// keyroots (positions with no later position sharing the same l value).
func leftmostAndKeyroots(post []*ir.Node) (leftmost []int, keyroots []int) {
	n := len(post)
	leftmost = make([]int, n+1) // 1-indexed; leftmost[0] unused

	index := make(map[*ir.Node]int, n)
	for i, node := range post {
		index[node] = i + 1
	}

	for i := 1; i <= n; i++ {
		node := post[i-1]
		for len(node.Children()) > 0 {
			node = node.Children()[0]
		}
		leftmost[i] = index[node]
	}

	seen := make(map[int]bool, n)
	for i := n; i >= 1; i-- {
		l := leftmost[i]
		if !seen[l] {
			keyroots = append(keyroots, i)
			seen[l] = true
		}
	}
	for i, j := 0, len(keyroots)-1; i < j; i, j = i+1, j-1 {
		keyroots[i], keyroots[j] = keyroots[j], keyroots[i]
	}

	return leftmost, keyroots
}

// zhangShasha computes the full, 1-indexed node-to-node tree edit distance
// matrix between post1 and post2 (each a post-order node sequence),
// following Zhang & Shasha's 1989 algorithm. §4.4 needs the per-node
// distances (to pick each node's best partner), not just the scalar
// root-to-root distance a textbook implementation would stop at.
func zhangShasha(post1, post2 []*ir.Node) [][]int {
	n, m := len(post1), len(post2)

	l1, keyroots1 := leftmostAndKeyroots(post1)
	l2, keyroots2 := leftmostAndKeyroots(post2)

	treedist := make([][]int, n+1)
	for i := range treedist {
		treedist[i] = make([]int, m+1)
	}
	forestdist := make([][]int, n+1)
	for i := range forestdist {
		forestdist[i] = make([]int, m+1)
	}

	const insertCost, deleteCost = 1, 1

	for _, i := range keyroots1 {
		for _, j := range keyroots2 {
			li, lj := l1[i], l2[j]

			forestdist[li-1][lj-1] = 0
			for x := li; x <= i; x++ {
				forestdist[x][lj-1] = forestdist[x-1][lj-1] + deleteCost
			}
			for y := lj; y <= j; y++ {
				forestdist[li-1][y] = forestdist[li-1][y-1] + insertCost
			}

			for x := li; x <= i; x++ {
				for y := lj; y <= j; y++ {
					del := forestdist[x-1][y] + deleteCost
					ins := forestdist[x][y-1] + insertCost

					if l1[x] == li && l2[y] == lj {
						relabel := forestdist[x-1][y-1] + labelDistance(post1[x-1], post2[y-1])
						v := minOf3(del, ins, relabel)
						forestdist[x][y] = v
						treedist[x][y] = v
					} else {
						sub := forestdist[l1[x]-1][l2[y]-1] + treedist[x][y]
						forestdist[x][y] = minOf3(del, ins, sub)
					}
				}
			}
		}
	}

	return treedist
}

func minOf3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
