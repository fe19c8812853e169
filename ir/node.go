package ir

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ErrInvariantViolation marks a bug in how the IR was built: a double
// parent, a write-once field set twice, or similar structural breakage
// that the core treats as fatal rather than recoverable (§7).
var ErrInvariantViolation = errors.New("ir: invariant violation")

// DependencyKind classifies a directed edge between two nodes.
type DependencyKind uint8

const (
	// Control is a control-flow dependency.
	Control DependencyKind = iota
	// Flow is a read-after-write (data flow) memory dependency.
	Flow
	// Anti is a write-after-read memory dependency.
	Anti
	// Output is a write-after-write memory dependency.
	Output
	// Input is a read-after-read memory dependency.
	Input
	// Reference is a name/identifier reference dependency.
	Reference
	// Argument is a positional-argument dependency.
	Argument
	// Other is any dependency kind not covered above.
	Other
)

func (k DependencyKind) String() string {
	switch k {
	case Control:
		return "control"
	case Flow:
		return "flow"
	case Anti:
		return "anti"
	case Output:
		return "output"
	case Input:
		return "input"
	case Reference:
		return "reference"
	case Argument:
		return "argument"
	default:
		return "other"
	}
}

// IsMemoryKind reports whether k is one of the memory-ordering kinds
// (Flow, Anti, Output, Input).
func (k DependencyKind) IsMemoryKind() bool {
	switch k {
	case Flow, Anti, Output, Input:
		return true
	default:
		return false
	}
}

// Dependency is a directed edge to Target of the given Kind. Reverse marks
// edges installed as the mirror of an outgoing edge recorded on Target.
type Dependency struct {
	Target  *Node
	Kind    DependencyKind
	Reverse bool
}

// Tristate is a three-valued boolean: unset, true, or false. It is used for
// fields that distinguish "not specified" from an explicit value.
type Tristate uint8

const (
	// Unset means no explicit value was provided.
	Unset Tristate = iota
	// True is an explicit true value.
	True
	// False is an explicit false value.
	False
)

// Node is a single element of the intermediate representation tree: a
// typed, labeled, ordered tree node with a secondary dependency graph
// layered on top.
//
// Structural fields (Type, Label, Ref, Children, Parent, SourceRange) are
// frozen after construction; only Mapping (write-once) and IsChanged (only
// ever moved from false to true) are mutated later, by the diff stage.
type Node struct {
	Type  string
	Label string
	Ref   string

	children []*Node
	parent   *Node

	SourceRange *Range

	// MemoryOperationOverride overrides the dependency-derived
	// IsMemoryOperation computation when set to True or False.
	MemoryOperationOverride Tristate

	deps  []Dependency
	rdeps []Dependency

	// Mapping is this node's partner in the other tree after a diff has
	// run. Write-once.
	Mapping *Node
	// IsChanged is set once tag_nodes has run over a diff's edit script.
	IsChanged bool

	height int
	hash   [blake2b.Size256]byte
	hashed bool
}

// NewNode constructs a root node of the given type and label with no
// parent and no children.
func NewNode(typ, label string) *Node {
	return &Node{Type: typ, Label: label}
}

// AddChild appends child to n's children, setting child's parent.
// It is an error (panic) to add a child whose parent is already set, or to
// add a node to itself as an ancestor.
func (n *Node) AddChild(child *Node) {
	if child.parent != nil {
		panic(fmt.Errorf("%w: cannot add child %s, parent already set", ErrInvariantViolation, child.Name()))
	}
	for cur := n; cur != nil; cur = cur.parent {
		if cur == child {
			panic(fmt.Errorf("%w: cannot add %s as a child of its own descendant", ErrInvariantViolation, child.Name()))
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	n.invalidate()
}

// Children returns n's ordered children. The returned slice must not be
// mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns n's parent, or nil if n is a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root walks up through Parent links and returns the root of n's tree.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Name returns "type: label" when Label is set, otherwise just Type. Used
// as the basis for Rename detection (§4.5).
func (n *Node) Name() string {
	if n.Label != "" {
		return fmt.Sprintf("%s: %s", n.Type, n.Label)
	}
	return n.Type
}

func (n *Node) String() string {
	return n.Name()
}

// invalidate clears memoized height/hash. Called whenever children change
// during construction, so a node built bottom-up never serves a stale
// value.
func (n *Node) invalidate() {
	n.height = 0
	n.hashed = false
}

// Height returns 1 for a leaf, or 1 + max(height(child)) otherwise. Memoized.
func (n *Node) Height() int {
	if n.height != 0 {
		return n.height
	}
	if len(n.children) == 0 {
		n.height = 1
		return 1
	}
	max := 0
	for _, c := range n.children {
		if h := c.Height(); h > max {
			max = h
		}
	}
	n.height = max + 1
	return n.height
}

// Hash returns a deterministic, isomorphism-preserving digest of the
// subtree rooted at n: it depends only on Type, Label, and the ordered
// hashes of n's children (§4.1). Memoized.
func (n *Node) Hash() [blake2b.Size256]byte {
	if n.hashed {
		return n.hash
	}

	var buf []byte
	buf = append(buf, '{')
	buf = append(buf, n.Type...)
	buf = append(buf, '@')
	buf = append(buf, n.Label...)
	buf = append(buf, '|')
	for _, c := range n.children {
		h := c.Hash()
		buf = append(buf, h[:]...)
	}
	buf = append(buf, '}')

	n.hash = blake2b.Sum256(buf)
	n.hashed = true
	return n.hash
}

// HashString returns Hash hex-encoded, convenient for use as a map key.
func (n *Node) HashString() string {
	h := n.Hash()
	return fmt.Sprintf("%x", h)
}

// Deps returns the outgoing dependency edges of n.
func (n *Node) Deps() []Dependency {
	return n.deps
}

// RDeps returns the incoming dependency edges of n.
func (n *Node) RDeps() []Dependency {
	return n.rdeps
}

// AddDependencies adds outgoing edges from n to each given target/kind pair
// and installs the mirrored, Reverse-marked incoming edge on each target
// (§4.1's deps/rdeps symmetry invariant).
func (n *Node) AddDependencies(edges ...Dependency) {
	for _, e := range edges {
		e.Reverse = false
		n.deps = append(n.deps, e)
		e.Target.rdeps = append(e.Target.rdeps, Dependency{Target: n, Kind: e.Kind, Reverse: true})
	}
}

// IsMemoryOperation reports whether n is a memory operation: either its
// override is explicitly set, or any of its dependency edges (incoming or
// outgoing) is a memory kind.
func (n *Node) IsMemoryOperation() bool {
	switch n.MemoryOperationOverride {
	case True:
		return true
	case False:
		return false
	}

	for _, d := range n.deps {
		if d.Kind.IsMemoryKind() {
			return true
		}
	}
	for _, d := range n.rdeps {
		if d.Kind.IsMemoryKind() {
			return true
		}
	}
	return false
}

// IsDefinition reports whether n has at least one incoming Reference edge.
func (n *Node) IsDefinition() bool {
	for _, d := range n.rdeps {
		if d.Kind == Reference && d.Reverse {
			return true
		}
	}
	return false
}

// References returns the nodes that hold a Reference dependency on n, i.e.
// the use sites of a definition n.
func (n *Node) References() []*Node {
	var out []*Node
	for _, d := range n.rdeps {
		if d.Kind == Reference && d.Reverse {
			out = append(out, d.Target)
		}
	}
	return out
}
