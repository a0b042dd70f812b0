// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package anim

import (
	"errors"

	"github.com/gviegas/anim/blend"
	"github.com/gviegas/anim/internal/logging"
	"github.com/gviegas/anim/linear"
	"github.com/gviegas/anim/pose"
	"github.com/gviegas/anim/skin"
)

const prefix = "anim: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// Character is the per-character animation context.
type Character struct {
	Name string
	tree *blend.Tree
	skin *skin.Skin

	// Derived from the first evaluated pose.
	evaluated bool
	reach     float32
	// Chain length of each joint.
	chain []float32
}

// NewCharacter creates a character that animates tree.
// sk may be nil if no skinning is needed; otherwise it
// must have one joint per joint of the tree's hierarchy.
func NewCharacter(name string, tree *blend.Tree, sk *skin.Skin) (*Character, error) {
	if tree == nil {
		return nil, newErr("nil blend.Tree")
	}
	n := tree.Group().Hierarchy().Len()
	if sk != nil && sk.Len() != n {
		return nil, newErr("skin.Skin length mismatch")
	}
	return &Character{
		Name:  name,
		tree:  tree,
		skin:  sk,
		chain: make([]float32, n),
	}, nil
}

// Tree returns the blend tree of c.
func (c *Character) Tree() *blend.Tree { return c.tree }

// Skin returns the skin of c, or nil.
func (c *Character) Skin() *skin.Skin { return c.skin }

// Pose returns the output state of c's tree.
// It must only be read after Update returns.
func (c *Character) Pose() *pose.State { return c.tree.Output() }

// Reach returns the length of the longest joint chain of
// the first pose that c evaluated, or zero if c was not
// updated yet.
func (c *Character) Reach() float32 { return c.reach }

// Update advances c by dt seconds.
// Clip controllers are advanced first, then the tree is
// evaluated and the skin matrices are computed.
func (c *Character) Update(dt float32) {
	c.tree.Update(dt)
	out := c.tree.Output()
	if !c.evaluated {
		c.evaluated = true
		c.reach = c.measure(out)
		logging.Logger().Debug(prefix+"character evaluated", "name", c.Name, "reach", c.reach)
	}
	if c.skin != nil {
		// Lengths are checked in NewCharacter.
		_ = c.skin.Update(out.Object)
	}
}

// measure returns the length of the longest root-to-leaf
// chain of s.
func (c *Character) measure(s *pose.State) (reach float32) {
	h := s.Hierarchy()
	var zero linear.V3
	for i := range c.chain {
		pnt := h.Parent(i)
		if pnt < 0 {
			c.chain[i] = 0
			continue
		}
		p := linear.Point(&s.Object[i].Transform, &zero)
		q := linear.Point(&s.Object[pnt].Transform, &zero)
		var d linear.V3
		d.Sub(&p, &q)
		c.chain[i] = c.chain[pnt] + d.Len()
		if h.IsLeaf(i) {
			reach = max(reach, c.chain[i])
		}
	}
	return
}

// Position returns the object-space position of the
// named joint.
func (c *Character) Position(joint string) (linear.V3, bool) {
	s := c.tree.Output()
	i := s.Hierarchy().Find(joint)
	if i < 0 {
		return linear.V3{}, false
	}
	return linear.Point(&s.Object[i].Transform, &linear.V3{}), true
}
