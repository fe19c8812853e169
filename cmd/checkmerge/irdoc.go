package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jjkester/checkmerge/ir"
)

// ErrParseFailure is returned by Parser.Parse when an input file cannot be
// read or decoded into IR. The language front-ends themselves are out of
// scope (§1); this CLI's only "parser" reads pre-built IR back from JSON,
// standing in for one.
var ErrParseFailure = errors.New("parse failure")

// Parser turns a single input file into a root IR node (§6's parser
// contract, narrowed to this CLI's one stand-in implementation).
type Parser interface {
	Key() string
	Parse(path string) (*ir.Node, error)
}

// irDocument is the on-disk shape a Parser reads: a flat node list plus the
// id of the root, so that dependency and child edges can reference nodes
// declared anywhere in the file regardless of order.
type irDocument struct {
	Root  string      `json:"root"`
	Nodes []irNodeDoc `json:"nodes"`
}

type irNodeDoc struct {
	ID              string      `json:"id"`
	Type            string      `json:"type"`
	Label           string      `json:"label,omitempty"`
	Ref             string      `json:"ref,omitempty"`
	Children        []string    `json:"children,omitempty"`
	SourceRange     *irRangeDoc `json:"source_range,omitempty"`
	MemoryOperation string      `json:"memory_operation,omitempty"` // "", "true", or "false"
	Deps            []irDepDoc  `json:"deps,omitempty"`
}

type irLocationDoc struct {
	File   string `json:"file"`
	Line   uint   `json:"line"`
	Column uint   `json:"column"`
}

type irRangeDoc struct {
	Start irLocationDoc `json:"start"`
	End   irLocationDoc `json:"end"`
}

type irDepDoc struct {
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// jsonParser implements Parser by reading an irDocument back into a real
// *ir.Node tree.
type jsonParser struct{}

func (jsonParser) Key() string { return "json" }

func (jsonParser) Parse(path string) (*ir.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, err)
	}
	defer f.Close()

	var doc irDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, err)
	}

	return buildTree(path, doc)
}

func buildTree(path string, doc irDocument) (*ir.Node, error) {
	if doc.Root == "" {
		return nil, fmt.Errorf("%w: %s: missing root", ErrParseFailure, path)
	}

	byID := make(map[string]*ir.Node, len(doc.Nodes))
	docByID := make(map[string]irNodeDoc, len(doc.Nodes))
	for _, nd := range doc.Nodes {
		if nd.ID == "" {
			return nil, fmt.Errorf("%w: %s: node with empty id", ErrParseFailure, path)
		}
		if _, dup := docByID[nd.ID]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate node id %q", ErrParseFailure, path, nd.ID)
		}
		docByID[nd.ID] = nd
		byID[nd.ID] = ir.NewNode(nd.Type, nd.Label)
	}

	for id, nd := range docByID {
		n := byID[id]
		n.Ref = nd.Ref
		if nd.SourceRange != nil {
			r := ir.NewRange(toLocation(nd.SourceRange.Start), toLocation(nd.SourceRange.End))
			n.SourceRange = &r
		}
		switch nd.MemoryOperation {
		case "true":
			n.MemoryOperationOverride = ir.True
		case "false":
			n.MemoryOperationOverride = ir.False
		}
	}

	for id, nd := range docByID {
		n := byID[id]
		for _, childID := range nd.Children {
			child, ok := byID[childID]
			if !ok {
				return nil, fmt.Errorf("%w: %s: node %q references unknown child %q", ErrParseFailure, path, id, childID)
			}
			n.AddChild(child)
		}
	}

	for id, nd := range docByID {
		n := byID[id]
		for _, dep := range nd.Deps {
			target, ok := byID[dep.Target]
			if !ok {
				return nil, fmt.Errorf("%w: %s: node %q references unknown dependency target %q", ErrParseFailure, path, id, dep.Target)
			}
			kind, err := parseDependencyKind(dep.Kind)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, err)
			}
			n.AddDependencies(ir.Dependency{Target: target, Kind: kind})
		}
	}

	root, ok := byID[doc.Root]
	if !ok {
		return nil, fmt.Errorf("%w: %s: root id %q not found among nodes", ErrParseFailure, path, doc.Root)
	}
	return root, nil
}

func toLocation(l irLocationDoc) ir.Location {
	return ir.Location{File: l.File, Line: l.Line, Column: l.Column}
}

func parseDependencyKind(s string) (ir.DependencyKind, error) {
	switch s {
	case "control":
		return ir.Control, nil
	case "flow":
		return ir.Flow, nil
	case "anti":
		return ir.Anti, nil
	case "output":
		return ir.Output, nil
	case "input":
		return ir.Input, nil
	case "reference":
		return ir.Reference, nil
	case "argument":
		return ir.Argument, nil
	case "other", "":
		return ir.Other, nil
	default:
		return 0, fmt.Errorf("unknown dependency kind %q", s)
	}
}
