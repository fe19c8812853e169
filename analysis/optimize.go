package analysis

import "github.com/jjkester/checkmerge/ir"

// set is a small, comparable-keyed set, shared by the node-level and
// change-level variants of the §4.9 change-set optimizer.
type set[T comparable] map[T]bool

func newSet[T comparable](items ...T) set[T] {
	s := make(set[T], len(items))
	for _, item := range items {
		s[item] = true
	}
	return s
}

func (s set[T]) isSubsetOf(other set[T]) bool {
	for item := range s {
		if !other[item] {
			return false
		}
	}
	return true
}

func (s set[T]) equals(other set[T]) bool {
	return len(s) == len(other) && s.isSubsetOf(other)
}

// removeSubsets drops every set that is identical to or a (not necessarily
// proper) subset of another set in sets, grounded on
// checkmerge/util/collections.py's remove_subsets. Of a group of identical
// sets, the first is kept.
func removeSubsets[T comparable](sets []set[T]) []set[T] {
	var result []set[T]

	for i, s := range sets {
		subsumed := false
		for j, other := range sets {
			if i == j {
				continue
			}
			if s.equals(other) {
				if i > j {
					subsumed = true
					break
				}
				continue
			}
			if s.isSubsetOf(other) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			result = append(result, s)
		}
	}

	return result
}

// nodeSet is a set of IR nodes, the unit the §4.9 optimizer itself works
// over (before nodes are converted to Changes).
type nodeSet = set[*ir.Node]

func newNodeSet(nodes ...*ir.Node) nodeSet {
	return newSet(nodes...)
}

// optimizeChangeSets implements §4.9: descendant absorption (a node that is
// a descendant of a node present in another set is replaced by that node)
// followed by subset removal, grounded on
// checkmerge/analysis/__init__.py's optimize_change_sets.
func optimizeChangeSets(changeSets []nodeSet) []nodeSet {
	changeSets = removeSubsets(changeSets)

	replace := map[*ir.Node]*ir.Node{}
	resolve := func(n *ir.Node) *ir.Node {
		if r, ok := replace[n]; ok {
			return r
		}
		return n
	}

	for i := 0; i < len(changeSets); i++ {
		for j := i + 1; j < len(changeSets); j++ {
			for c1 := range changeSets[i] {
				for c2 := range changeSets[j] {
					if c1.IsDescendantOf(c2) {
						replace[c1] = resolve(c2)
					} else if c2.IsDescendantOf(c1) {
						replace[c2] = resolve(c1)
					}
				}
			}
		}
	}

	replaced := make([]nodeSet, 0, len(changeSets))
	for _, s := range changeSets {
		out := nodeSet{}
		for n := range s {
			out[resolve(n)] = true
		}
		replaced = append(replaced, out)
	}

	return removeSubsets(replaced)
}
