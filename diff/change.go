package diff

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jjkester/checkmerge/ir"
)

// EditOperation classifies a Change.
type EditOperation uint8

const (
	// Insert marks a node present only in the other tree.
	Insert EditOperation = iota
	// Delete marks a node present only in the base tree.
	Delete
	// Rename marks a mapped pair whose names differ (§4.5).
	Rename
)

func (op EditOperation) String() string {
	switch op {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Rename:
		return "rename"
	default:
		return "unknown"
	}
}

// Change is a single edit-script entry. Base is nil for Insert, Other is nil
// for Delete; both are set for Rename.
type Change struct {
	Operation EditOperation
	Base      *ir.Node
	Other     *ir.Node
}

// NonNull returns whichever of Base/Other is set, preferring Base. Used to
// locate a Change for display purposes (§4.5's sort key).
func (c Change) NonNull() *ir.Node {
	if c.Base != nil {
		return c.Base
	}
	return c.Other
}

// editScript derives the ordered Change sequence from m: a Delete for every
// unmapped base node, an Insert for every unmapped other node, and a Rename
// for every mapped pair whose Name differs (§4.5).
func editScript(base, other *ir.Node, m *Mapping) []Change {
	var changes []Change

	for _, n := range base.Subtree(false) {
		partner := m.Get(n)
		if partner == nil {
			changes = append(changes, Change{Operation: Delete, Base: n})
			continue
		}
		if n.Name() != partner.Name() {
			changes = append(changes, Change{Operation: Rename, Base: n, Other: partner})
		}
	}

	for _, n := range other.Subtree(false) {
		if !m.HasOther(n) {
			changes = append(changes, Change{Operation: Insert, Other: n})
		}
	}

	sortChanges(changes)
	return changes
}

// sortChanges orders changes by (basename(file), line, column) of each
// change's non-null side, the stable display order §4.5 requires.
func sortChanges(changes []Change) {
	sort.SliceStable(changes, func(i, j int) bool {
		li, okI := sortLocation(changes[i])
		lj, okJ := sortLocation(changes[j])
		if !okI || !okJ {
			return okI && !okJ
		}
		if li.File != lj.File {
			return li.File < lj.File
		}
		if li.Line != lj.Line {
			return li.Line < lj.Line
		}
		return li.Column < lj.Column
	})
}

func sortLocation(c Change) (ir.Location, bool) {
	n := c.NonNull()
	if n == nil || n.SourceRange == nil {
		return ir.Location{}, false
	}
	loc := n.SourceRange.Start
	loc.File = filepath.Base(loc.File)
	return loc, true
}

// ReduceToInsertDelete splits every Rename into a Delete and an Insert,
// producing an edit script using only Insert/Delete operations (§4.5).
func ReduceToInsertDelete(changes []Change) []Change {
	out := make([]Change, 0, len(changes))
	for _, c := range changes {
		if c.Operation != Rename {
			out = append(out, c)
			continue
		}
		out = append(out, Change{Operation: Delete, Base: c.Base})
		out = append(out, Change{Operation: Insert, Other: c.Other})
	}
	return out
}

// tagNodes applies m and changes to both trees: every mapped pair receives
// a reciprocal, write-once Mapping, and every Change marks IsChanged = true
// on its non-null side(s) (§4.5). Panics if a node's Mapping is already set
// to something else, since mapping is write-once by contract.
func tagNodes(m *Mapping, changes []Change) {
	tagMapping(m, true, true)
	tagChanged(changes)
}

// tagChanged marks IsChanged = true on every Change's non-null side(s).
// Unlike tagMapping this is idempotent and safe to call more than once for
// the same node, since IsChanged only ever moves from false to true.
func tagChanged(changes []Change) {
	for _, c := range changes {
		if c.Base != nil {
			c.Base.IsChanged = true
		}
		if c.Other != nil {
			c.Other.IsChanged = true
		}
	}
}

// tagMapping writes m's pairs into Node.Mapping, base-side and/or
// other-side as selected. A node's Mapping field holds a single partner, so
// a tree that takes part in more than one diff (the shared ancestor in a
// three-way merge) must have tagging disabled on the side that would
// otherwise be overwritten with a second, different partner (§4.6).
func tagMapping(m *Mapping, tagBase, tagOther bool) {
	for _, pair := range m.Pairs() {
		b, o := pair[0], pair[1]
		if tagBase {
			setMappingOnce(b, o)
		}
		if tagOther {
			setMappingOnce(o, b)
		}
	}
}

func setMappingOnce(n, partner *ir.Node) {
	if n.Mapping != nil && n.Mapping != partner {
		panic(fmt.Errorf("%w: node mapping for %s written twice with different partners", ir.ErrInvariantViolation, n.Name()))
	}
	n.Mapping = partner
}

// changesByNode indexes changes so that every change.Base and change.Other
// appears exactly once as a key (§4.5's changes_by_node invariant).
func changesByNode(changes []Change) map[*ir.Node]Change {
	out := make(map[*ir.Node]Change, len(changes)*2)
	for _, c := range changes {
		if c.Base != nil {
			out[c.Base] = c
		}
		if c.Other != nil {
			out[c.Other] = c
		}
	}
	return out
}
