// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package pose

import (
	"github.com/gviegas/anim/skeleton"
)

// State holds the poses of one running instance of a
// hierarchy.
// Many states may share the same hierarchy, but a state
// must not be mutated by more than one owner.
type State struct {
	hier *skeleton.Hierarchy
	// Sample is the pose produced by sampling or blending.
	Sample Hierarchical
	// Local is the parent-relative pose.
	Local Hierarchical
	// Object is the root-relative pose. Only its
	// transforms are computed by forward kinematics.
	Object Hierarchical
}

// NewState creates a state for hierarchy h.
// Every pose is initialized to identity.
func NewState(h *skeleton.Hierarchy) (*State, error) {
	if h == nil {
		return nil, newErr("nil Hierarchy")
	}
	n := h.Len()
	buf := make(Hierarchical, n*3)
	buf.Identity()
	return &State{
		hier:   h,
		Sample: buf[:n:n],
		Local:  buf[n : n*2 : n*2],
		Object: buf[n*2:],
	}, nil
}

// Hierarchy returns the hierarchy of s.
func (s *State) Hierarchy() *skeleton.Hierarchy { return s.hier }

// Len returns the number of joints in s.
func (s *State) Len() int { return s.hier.Len() }

// Reset sets every pose of s to identity.
func (s *State) Reset() {
	s.Sample.Identity()
	s.Local.Identity()
	s.Object.Identity()
}

// Resolve sets s.Local to base concatenated with s.Sample
// (or to s.Sample alone if base is nil) and rebuilds the
// local transforms using the joint metadata of g.
func (s *State) Resolve(base Hierarchical, g *Group) {
	if base != nil {
		s.Local.Concat(base, s.Sample)
	} else {
		s.Local.Copy(s.Sample)
	}
	s.Local.Convert(g.Channels(), g.Orders())
}
