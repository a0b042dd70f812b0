// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package skeleton

import (
	"sort"
)

// Sort reorders nodes such that every parent comes before
// any of its descendants, as required by New.
// It returns the sorted nodes, with Parent fields remapped
// to the new indices, and a slice mapping each new index
// to the node's original index.
// nodes must not contain cycles.
func Sort(nodes []Node) ([]Node, []int, error) {
	n := len(nodes)
	if n == 0 {
		return nil, nil, newErr("[]Node length is 0")
	}
	parent := make([]int, n)
	for i := range nodes {
		pnt := nodes[i].Parent
		switch {
		case pnt >= n:
			return nil, nil, newErr("Node.Parent out of bounds")
		case pnt == i:
			return nil, nil, newErr("Node.Parent refers to itself")
		case pnt < 0:
			pnt = -1
		}
		parent[i] = pnt
	}

	// Weigh each node by its depth. An auxiliar stack
	// prevents deep, reverse-sorted hierarchies from
	// degenerating the algorithm.
	var stk []int
	wgts := make([]struct{ wgt, idx int }, n)
	for i := range parent {
		wgt := 1
		pnt := parent[i]
		for pnt >= 0 {
			if wgts[pnt].wgt != 0 {
				wgt += wgts[pnt].wgt
				break
			}
			if len(stk) > n {
				return nil, nil, newErr("Node.Parent forms a cycle")
			}
			stk = append(stk, pnt)
			wgt++
			pnt = parent[pnt]
		}
		wgts[i] = struct{ wgt, idx int }{wgt, i}
		for j := range stk {
			wgt--
			wgts[stk[j]] = struct{ wgt, idx int }{wgt, stk[j]}
		}
		stk = stk[:0]
	}
	sort.SliceStable(wgts, func(i, j int) bool { return wgts[i].wgt < wgts[j].wgt })

	orig := make([]int, n)
	remap := make([]int, n)
	for i := range wgts {
		orig[i] = wgts[i].idx
		remap[wgts[i].idx] = i
	}
	sorted := make([]Node, n)
	for i, o := range orig {
		sorted[i] = nodes[o]
		if pnt := parent[o]; pnt >= 0 {
			sorted[i].Parent = remap[pnt]
		} else {
			sorted[i].Parent = -1
		}
	}
	return sorted, orig, nil
}
