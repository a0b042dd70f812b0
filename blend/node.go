// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package blend

import (
	"strconv"
)

// NodeType identifies the operation of a blend node.
type NodeType uint8

// Node types.
const (
	Identity NodeType = iota
	Copy
	Negate
	Concat
	Deconcat
	Convert
	Revert
	Scale
	Biscale
	Nearest
	Lerp
	EaseInOut
	Triangular
	Cubic
	Binearest
	Bilerp
	Bicubic
	CopyClip
	AddClip
	LerpClip
	ScaleClip
	NegateClip
	numNodeType
)

// Invalid is a NodeType that names no operation.
// Nodes created with it fall back to Identity.
const Invalid NodeType = ^NodeType(0)

// Limits of a single node.
const (
	MaxControl = 16
	MaxParam   = 8
)

// arity is the number of inputs of a node type.
type arity struct {
	controls int
	clips    int
	params   int
}

var nodeTypes = [numNodeType]struct {
	name string
	arity
}{
	Identity:   {"identity", arity{}},
	Copy:       {"copy", arity{1, 0, 0}},
	Negate:     {"negate", arity{1, 0, 0}},
	Concat:     {"concat", arity{2, 0, 0}},
	Deconcat:   {"deconcat", arity{2, 0, 0}},
	Convert:    {"convert", arity{1, 0, 0}},
	Revert:     {"revert", arity{1, 0, 0}},
	Scale:      {"scale", arity{1, 0, 1}},
	Biscale:    {"biscale", arity{1, 0, 1}},
	Nearest:    {"nearest", arity{2, 0, 1}},
	Lerp:       {"lerp", arity{2, 0, 1}},
	EaseInOut:  {"easeinout", arity{2, 0, 1}},
	Triangular: {"triangular", arity{3, 0, 2}},
	Cubic:      {"cubic", arity{4, 0, 1}},
	Binearest:  {"binearest", arity{4, 0, 3}},
	Bilerp:     {"bilerp", arity{4, 0, 3}},
	Bicubic:    {"bicubic", arity{16, 0, 5}},
	CopyClip:   {"copyclip", arity{0, 1, 0}},
	AddClip:    {"addclip", arity{0, 2, 0}},
	LerpClip:   {"lerpclip", arity{0, 2, 1}},
	ScaleClip:  {"scaleclip", arity{0, 1, 1}},
	NegateClip: {"negateclip", arity{0, 1, 0}},
}

func (t NodeType) String() string {
	if t < numNodeType {
		return nodeTypes[t].name
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}

// Controls returns the number of control nodes that a
// node of type t requires.
func (t NodeType) Controls() int { return t.arity().controls }

// Clips returns the number of clips that a node of type t
// samples.
func (t NodeType) Clips() int { return t.arity().clips }

// Params returns the number of scalar parameters that a
// node of type t reads.
func (t NodeType) Params() int { return t.arity().params }

func (t NodeType) arity() arity {
	if t < numNodeType {
		return nodeTypes[t].arity
	}
	return arity{}
}

// ParseNodeType returns the node type named s.
// It returns Invalid and false if there is no such type.
func ParseNodeType(s string) (NodeType, bool) {
	for i := range nodeTypes {
		if nodeTypes[i].name == s {
			return NodeType(i), true
		}
	}
	return Invalid, false
}

// NodeSpec describes a blend node.
type NodeSpec struct {
	Name string
	Type NodeType
	// Clips names the clips sampled by clip node types.
	Clips []string
	// Controls are the indices of the nodes whose
	// outputs are inputs of this node. Each must be
	// less than the index of this node.
	Controls []int
	// Params are read on every evaluation.
	Params []*float32
}
