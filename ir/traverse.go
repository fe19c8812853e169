package ir

// Subtree returns an iterator-like slice-building walk of n's subtree,
// including n itself, in depth-first order. reverse selects bottom-up
// (post-order) instead of top-down (pre-order) traversal.
//
// CheckMerge's trees are bounded by a single parsed file, so materializing
// the walk as a slice (rather than a pull-based generator) keeps call sites
// simple; VisitSubtree below is the restartable, allocation-free form for
// hot paths.
func (n *Node) Subtree(reverse bool) []*Node {
	var out []*Node
	n.VisitSubtree(reverse, func(c *Node) bool {
		out = append(out, c)
		return true
	})
	return out
}

// VisitSubtree walks n's subtree depth-first, calling visit for each node
// including n. If visit returns false, that node's children are skipped
// (top-down only; in bottom-up order all children are already visited by
// the time their parent is, so the return value is ignored there).
func (n *Node) VisitSubtree(reverse bool, visit func(*Node) bool) {
	if reverse {
		n.visitBottomUp(visit)
		return
	}
	n.visitTopDown(visit)
}

func (n *Node) visitTopDown(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.children {
		c.visitTopDown(visit)
	}
}

func (n *Node) visitBottomUp(visit func(*Node) bool) {
	for _, c := range n.children {
		c.visitBottomUp(visit)
	}
	visit(n)
}

// Descendants returns n's subtree excluding n itself.
func (n *Node) Descendants() []*Node {
	var out []*Node
	for _, c := range n.children {
		out = append(out, c)
		out = append(out, c.Descendants()...)
	}
	return out
}

// IsDescendantOf reports whether n is a (possibly indirect) descendant of
// other.
func (n *Node) IsDescendantOf(other *Node) bool {
	for cur := n.parent; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// DependencyLimit is a predicate that can stop a dependency traversal from
// following a particular edge.
type DependencyLimit func(Dependency) bool

// RecursiveDependencies performs a DFS over n's outgoing dependency edges,
// optionally also descending into the children of any memory-operation
// node it encounters (recurseMemoryOps), with a visited set guarding
// against cycles in the dependency graph. limit, if non-nil, is consulted
// before following each edge; edges it rejects are skipped.
func (n *Node) RecursiveDependencies(limit DependencyLimit, recurseMemoryOps bool) []*Node {
	visited := map[*Node]bool{}
	var out []*Node
	n.walkDependencies(n.deps, limit, recurseMemoryOps, visited, &out)
	return out
}

// RecursiveReverseDependencies is RecursiveDependencies over incoming
// edges instead of outgoing ones.
func (n *Node) RecursiveReverseDependencies(limit DependencyLimit, recurseMemoryOps bool) []*Node {
	visited := map[*Node]bool{}
	var out []*Node
	n.walkDependencies(n.rdeps, limit, recurseMemoryOps, visited, &out)
	return out
}

func (n *Node) walkDependencies(edges []Dependency, limit DependencyLimit, recurseMemoryOps bool, visited map[*Node]bool, out *[]*Node) {
	for _, e := range edges {
		if limit != nil && !limit(e) {
			continue
		}
		target := e.Target
		if visited[target] {
			continue
		}
		visited[target] = true
		*out = append(*out, target)

		var nextEdges []Dependency
		if e.Reverse {
			nextEdges = target.rdeps
		} else {
			nextEdges = target.deps
		}
		target.walkDependencies(nextEdges, limit, recurseMemoryOps, visited, out)

		if recurseMemoryOps && target.IsMemoryOperation() {
			for _, child := range target.children {
				if visited[child] {
					continue
				}
				visited[child] = true
				*out = append(*out, child)

				var childEdges []Dependency
				if e.Reverse {
					childEdges = child.rdeps
				} else {
					childEdges = child.deps
				}
				child.walkDependencies(childEdges, limit, recurseMemoryOps, visited, out)
			}
		}
	}
}
