package diff

import "github.com/jjkester/checkmerge/ir"

// Config bundles the top-down and bottom-up matcher parameters.
type Config struct {
	TopDown  TopDownConfig
	BottomUp BottomUpConfig
}

// DiffResult is the outcome of diffing a base tree against an other tree:
// the node mapping, the derived edit script, and a lookup from node to its
// Change (§6's diff-algorithm interface).
type DiffResult struct {
	Base    *ir.Node
	Other   *ir.Node
	Mapping *Mapping

	changes       []Change
	changesByNode map[*ir.Node]Change
}

// Changes returns the ordered edit script, computing and caching it on
// first access.
func (d *DiffResult) Changes() []Change {
	if d.changes == nil {
		d.changes = editScript(d.Base, d.Other, d.Mapping)
	}
	return d.changes
}

// ChangesByNode returns the change-by-node index, computing it from
// Changes() on first access.
func (d *DiffResult) ChangesByNode() map[*ir.Node]Change {
	if d.changesByNode == nil {
		d.changesByNode = changesByNode(d.Changes())
	}
	return d.changesByNode
}

// Diff computes a full GumTree-style diff between base and other: a
// top-down match, extended by the bottom-up matcher, then tagged onto both
// trees (§4.3-§4.5).
func Diff(base, other *ir.Node, cfg Config) *DiffResult {
	m := TopDownMatch(base, other, cfg.TopDown)
	BottomUpMatch(base, other, m, cfg.BottomUp)

	result := &DiffResult{Base: base, Other: other, Mapping: m}
	tagNodes(m, result.Changes())

	return result
}

// DiffSeeded is like Diff but skips the top-down pass: the bottom-up
// matcher starts from a caller-supplied mapping (extended in place), or
// from an empty one when seed is nil.
func DiffSeeded(base, other *ir.Node, seed *Mapping, cfg Config) *DiffResult {
	m := seed
	if m == nil {
		m = NewMapping()
	}
	BottomUpMatch(base, other, m, cfg.BottomUp)

	result := &DiffResult{Base: base, Other: other, Mapping: m}
	tagNodes(m, result.Changes())

	return result
}
