// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package pose

import (
	"errors"

	"github.com/gviegas/anim/skeleton"
)

const prefix = "pose: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// Group is a library of poses that share one hierarchy.
// Channel masks and Euler orders are properties of joint
// slots and thus are shared by every pose in the group.
// A group is populated at load time and should not be
// edited while states derived from it are being evaluated.
type Group struct {
	hier     *skeleton.Hierarchy
	count    int
	spatial  []Spatial
	channels []Channel
	orders   []EulerOrder
}

// NewGroup creates a group of count poses for hierarchy h.
// Every pose is initialized to identity, every channel
// mask to All and every Euler order to XYZ.
func NewGroup(h *skeleton.Hierarchy, count int) (*Group, error) {
	switch {
	case h == nil:
		return nil, newErr("nil Hierarchy")
	case count < 1:
		return nil, newErr("pose count less than 1")
	}
	n := h.Len()
	g := &Group{
		hier:     h,
		count:    count,
		spatial:  make([]Spatial, count*n),
		channels: make([]Channel, n),
		orders:   make([]EulerOrder, n),
	}
	Hierarchical(g.spatial).Identity()
	for i := range g.channels {
		g.channels[i] = All
	}
	return g, nil
}

// Hierarchy returns the hierarchy of g.
func (g *Group) Hierarchy() *skeleton.Hierarchy { return g.hier }

// Len returns the number of poses in g.
func (g *Group) Len() int { return g.count }

// Pose returns the ith pose of g.
// The pose aliases g's storage.
func (g *Group) Pose(i int) Hierarchical {
	n := g.hier.Len()
	return Hierarchical(g.spatial[i*n : i*n+n : i*n+n])
}

// Clamp returns i clamped to [0, g.Len()).
func (g *Group) Clamp(i int) int {
	switch {
	case i < 0:
		return 0
	case i >= g.count:
		return g.count - 1
	}
	return i
}

// Channels returns the channel mask of every joint.
func (g *Group) Channels() []Channel { return g.channels }

// Orders returns the Euler order of every joint.
func (g *Group) Orders() []EulerOrder { return g.orders }

// SetJoint sets the channel mask and Euler order of
// joint j.
func (g *Group) SetJoint(j int, ch Channel, ord EulerOrder) {
	g.channels[j] = ch
	g.orders[j] = ord
}

// Convert rebuilds the transforms of every pose in g.
func (g *Group) Convert() {
	for i := 0; i < g.count; i++ {
		g.Pose(i).Convert(g.channels, g.orders)
	}
}
