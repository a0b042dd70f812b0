// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package skeleton implements joint hierarchies.
package skeleton

import (
	"errors"
)

const prefix = "skeleton: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// MaxName is the maximum length of a node name, in bytes.
// Longer names are truncated.
const MaxName = 32

// Node describes a single node in a hierarchy.
// Parent refers to another Node's index within the slice
// presented to New, and must be less than the node's own
// index. Parent can be set to -1 or less to indicate that
// the node has no parent.
type Node struct {
	Name   string
	Parent int
}

// Hierarchy is an ordered list of named nodes in which
// every parent comes before any of its descendants.
// It is immutable once created.
type Hierarchy struct {
	names   []string
	parents []int
	depth   []int
	// Children of node i are
	// children[first[i]:first[i+1]].
	children []int
	first    []int
}

// New creates a new hierarchy.
// nodes must already be sorted such that parents come
// first; Sort can be used to produce such ordering.
func New(nodes []Node) (*Hierarchy, error) {
	n := len(nodes)
	if n == 0 {
		return nil, newErr("[]Node length is 0")
	}
	h := &Hierarchy{
		names:   make([]string, n),
		parents: make([]int, n),
		depth:   make([]int, n),
	}
	nchild := make([]int, n+1)
	for i := range nodes {
		pnt := nodes[i].Parent
		switch {
		case pnt >= n:
			return nil, newErr("Node.Parent out of bounds")
		case pnt == i:
			return nil, newErr("Node.Parent refers to itself")
		case pnt > i:
			return nil, newErr("Node.Parent comes after its descendant")
		case pnt < 0:
			pnt = -1
		}
		name := nodes[i].Name
		if len(name) > MaxName {
			name = name[:MaxName]
		}
		h.names[i] = name
		h.parents[i] = pnt
		if pnt >= 0 {
			h.depth[i] = h.depth[pnt] + 1
			nchild[pnt+1]++
		}
	}
	h.first = nchild
	for i := 1; i < len(h.first); i++ {
		h.first[i] += h.first[i-1]
	}
	h.children = make([]int, h.first[n])
	next := make([]int, n)
	copy(next, h.first[:n])
	for i, pnt := range h.parents {
		if pnt >= 0 {
			h.children[next[pnt]] = i
			next[pnt]++
		}
	}
	return h, nil
}

// Len returns the number of nodes in h.
func (h *Hierarchy) Len() int { return len(h.names) }

// Name returns the name of node i.
func (h *Hierarchy) Name(i int) string { return h.names[i] }

// Parent returns the parent index of node i,
// or -1 if i is a root.
func (h *Hierarchy) Parent(i int) int { return h.parents[i] }

// Depth returns the number of ancestors of node i.
func (h *Hierarchy) Depth(i int) int { return h.depth[i] }

// Children returns the immediate descendants of node i
// in ascending order.
// The slice aliases h's storage and must not be mutated.
func (h *Hierarchy) Children(i int) []int { return h.children[h.first[i]:h.first[i+1]] }

// Find returns the index of the first node named name,
// or -1 if there is no such node.
func (h *Hierarchy) Find(name string) int {
	for i, n := range h.names {
		if n == name {
			return i
		}
	}
	return -1
}

// IsLeaf reports whether node i has no descendants.
func (h *Hierarchy) IsLeaf(i int) bool { return h.first[i] == h.first[i+1] }
