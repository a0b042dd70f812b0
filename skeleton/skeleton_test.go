// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package skeleton

import (
	"strconv"
	"strings"
	"testing"
)

// checkOrder checks that h stores parents before children.
func (h *Hierarchy) checkOrder(t *testing.T) {
	for i := 0; i < h.Len(); i++ {
		if pnt := h.Parent(i); pnt >= i {
			t.Fatalf("Hierarchy: bad order\nnode %d has parent %d", i, pnt)
		}
	}
}

func dummyNodes(len, depth int) []Node {
	ns := make([]Node, 0, len)
	for i := 0; i < len; i++ {
		pnt := -1
		if i%(depth+1) != 0 {
			pnt = i - 1
		}
		ns = append(ns, Node{
			Name:   "Node " + strconv.Itoa(i),
			Parent: pnt,
		})
	}
	return ns
}

func TestNew(t *testing.T) {
	for _, x := range [...][2]int{
		{1, 0},
		{2, 0},
		{2, 1},
		{4, 3},
		{15, 2},
		{127, 64},
		{255, 254},
		{65535, 15},
	} {
		in := dummyNodes(x[0], x[1])
		h, err := New(in)
		if h == nil || err != nil {
			t.Fatalf("New:\nhave %v, %#v\nwant non-nil, nil", h, err)
		}
		if n := h.Len(); n != x[0] {
			t.Fatalf("New: Hierarchy.Len\nhave %d\nwant %d", n, x[0])
		}
		h.checkOrder(t)
		var nchild int
		for i := 0; i < h.Len(); i++ {
			if h.Name(i) != in[i].Name {
				t.Fatalf("New: Hierarchy.Name\nhave %s\nwant %s", h.Name(i), in[i].Name)
			}
			if d, want := h.Depth(i), i%(x[1]+1); d != want {
				t.Fatalf("New: Hierarchy.Depth(%d)\nhave %d\nwant %d", i, d, want)
			}
			for _, c := range h.Children(i) {
				if h.Parent(c) != i {
					t.Fatalf("New: Hierarchy.Children(%d)\nhave child %d with parent %d", i, c, h.Parent(c))
				}
			}
			nchild += len(h.Children(i))
		}
		roots := (x[0] + x[1]) / (x[1] + 1)
		if nchild != x[0]-roots {
			t.Fatalf("New: number of children\nhave %d\nwant %d", nchild, x[0]-roots)
		}
	}
}

func TestNewFail(t *testing.T) {
	var h *Hierarchy
	var err error

	checkFail := func(reason string) {
		if h != nil || err == nil {
			t.Fatalf("New:\nhave %v, %#v\nwant nil, non-nil", h, err)
		}
		if x := err.Error(); !strings.HasSuffix(x, reason) {
			t.Fatalf("New: error.Error()\nhave \"%s\"\nwant \"%s%s\"", x, prefix, reason)
		}
	}

	h, err = New([]Node{})
	checkFail("[]Node length is 0")
	h, err = New(nil)
	checkFail("[]Node length is 0")

	n1 := dummyNodes(1, 0)
	n1[0].Parent = 1
	h, err = New(n1)
	checkFail("Node.Parent out of bounds")
	n1[0].Parent = 0
	h, err = New(n1)
	checkFail("Node.Parent refers to itself")

	n20 := dummyNodes(20, 5)
	n20[3].Parent = 7
	h, err = New(n20)
	checkFail("Node.Parent comes after its descendant")
}

func TestFind(t *testing.T) {
	h, err := New([]Node{
		{"root", -1},
		{"spine", 0},
		{"head", 1},
		{"arm.l", 1},
		{"arm.r", 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range [...]struct {
		name string
		want int
	}{
		{"root", 0},
		{"head", 2},
		{"arm.r", 4},
		{"tail", -1},
	} {
		if i := h.Find(x.name); i != x.want {
			t.Fatalf("Hierarchy.Find(%q)\nhave %d\nwant %d", x.name, i, x.want)
		}
	}
	if c := h.Children(1); len(c) != 3 || c[0] != 2 || c[1] != 3 || c[2] != 4 {
		t.Fatalf("Hierarchy.Children(1)\nhave %v\nwant [2 3 4]", c)
	}
	if !h.IsLeaf(2) || h.IsLeaf(1) {
		t.Fatal("Hierarchy.IsLeaf: unexpected result")
	}
	long := strings.Repeat("x", MaxName+8)
	h, _ = New([]Node{{long, -1}})
	if n := h.Name(0); len(n) != MaxName {
		t.Fatalf("New: name length\nhave %d\nwant %d", len(n), MaxName)
	}
}

func TestSortScrambled(t *testing.T) {
	ns := []Node{
		{"abaa", 1},
		{"aba", 2},
		{"ab", 5},
		{"aa", 5},
		{"aaa", 3},
		{"a", -1},
		{"ba", 8},
		{"bb", 8},
		{"b", -1},
		{"bba", 7},
	}
	sorted, orig, err := Sort(ns)
	if err != nil {
		t.Fatalf("Sort:\nhave %#v\nwant nil", err)
	}
	for i := range sorted {
		if sorted[i].Name != ns[orig[i]].Name {
			t.Fatalf("Sort: orig[%d]\nhave %s\nwant %s", i, ns[orig[i]].Name, sorted[i].Name)
		}
		if pnt := sorted[i].Parent; pnt >= 0 && !strings.HasPrefix(sorted[i].Name, sorted[pnt].Name) {
			t.Fatalf("Sort: bad parent of %s\nhave %s", sorted[i].Name, sorted[pnt].Name)
		}
	}
	h, err := New(sorted)
	if err != nil {
		t.Fatalf("New(Sort(...)):\nhave %#v\nwant nil", err)
	}
	h.checkOrder(t)
}

// This is expected to be the worst case.
func dummyNodesRev(depth int) []Node {
	ns := make([]Node, 0, depth+1)
	for i := 0; i < depth; i++ {
		ns = append(ns, Node{"Node " + strconv.Itoa(i), i + 1})
	}
	return append(ns, Node{"Node " + strconv.Itoa(depth), -1})
}

func TestSortReversed(t *testing.T) {
	sorted, orig, err := Sort(dummyNodesRev(20))
	if err != nil {
		t.Fatalf("Sort:\nhave %#v\nwant nil", err)
	}
	for i := range orig {
		if orig[i] != 20-i {
			t.Fatalf("Sort: orig[%d]\nhave %d\nwant %d", i, orig[i], 20-i)
		}
	}
	h, err := New(sorted)
	if err != nil {
		t.Fatalf("New(Sort(...)):\nhave %#v\nwant nil", err)
	}
	h.checkOrder(t)
	if d := h.Depth(20); d != 20 {
		t.Fatalf("Hierarchy.Depth(20)\nhave %d\nwant 20", d)
	}
}

func TestSortFail(t *testing.T) {
	for _, x := range [...]struct {
		nodes  []Node
		reason string
	}{
		{nil, "[]Node length is 0"},
		{[]Node{{"a", 1}}, "Node.Parent out of bounds"},
		{[]Node{{"a", 0}}, "Node.Parent refers to itself"},
		{[]Node{{"a", 1}, {"b", 2}, {"c", 0}}, "Node.Parent forms a cycle"},
	} {
		_, _, err := Sort(x.nodes)
		if err == nil || !strings.HasSuffix(err.Error(), x.reason) {
			t.Fatalf("Sort:\nhave %v\nwant %s%s", err, prefix, x.reason)
		}
	}
}
