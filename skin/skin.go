// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package skin computes the matrices that a skinning
// consumer applies to bind-pose vertices.
package skin

import (
	"errors"

	"github.com/gviegas/anim/linear"
	"github.com/gviegas/anim/pose"
	"github.com/gviegas/anim/skeleton"
)

const prefix = "skin: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// Skin holds the inverse bind matrices of a hierarchy and
// the bind-to-current matrices derived from them.
type Skin struct {
	hier *skeleton.Hierarchy
	// Inverse bind matrix index of each joint.
	// Joints whose inverse bind matrix is the identity
	// store -1 and no matrix.
	ibmIdx []int
	ibm    []linear.M4
	mats   []linear.M4
}

func newSkin(h *skeleton.Hierarchy, ibms func(i int) linear.M4) *Skin {
	n := h.Len()
	s := &Skin{
		hier:   h,
		ibmIdx: make([]int, n),
		mats:   make([]linear.M4, n),
	}
	ident := linear.I()
	for i := range n {
		m := ibms(i)
		if linear.ApproxEqualM(&m, &ident, 1e-6) {
			s.ibmIdx[i] = -1
		} else {
			s.ibmIdx[i] = len(s.ibm)
			s.ibm = append(s.ibm, m)
		}
		s.mats[i] = ident
	}
	return s
}

// New creates a skin whose bind pose is the object-space
// pose of bind.
func New(bind *pose.State) (*Skin, error) {
	if bind == nil {
		return nil, newErr("nil pose.State")
	}
	return newSkin(bind.Hierarchy(), func(i int) linear.M4 {
		return linear.Invert(&bind.Object[i].Transform)
	}), nil
}

// NewFromMatrices creates a skin for h from inverse bind
// matrices supplied by an asset.
func NewFromMatrices(h *skeleton.Hierarchy, ibms []linear.M4) (*Skin, error) {
	switch {
	case h == nil:
		return nil, newErr("nil skeleton.Hierarchy")
	case len(ibms) != h.Len():
		return nil, newErr("[]linear.M4 length mismatch")
	}
	return newSkin(h, func(i int) linear.M4 { return ibms[i] }), nil
}

// Len returns the number of joints in s.
func (s *Skin) Len() int { return len(s.mats) }

// InverseBind returns the inverse bind matrix of joint i.
func (s *Skin) InverseBind(i int) linear.M4 {
	if k := s.ibmIdx[i]; k >= 0 {
		return s.ibm[k]
	}
	return linear.I()
}

// Update computes the bind-to-current matrix of every
// joint from the object-space transforms of obj.
func (s *Skin) Update(obj pose.Hierarchical) error {
	if len(obj) != len(s.mats) {
		return newErr("pose.Hierarchical length mismatch")
	}
	for i := range obj {
		if k := s.ibmIdx[i]; k >= 0 {
			s.mats[i] = linear.Mul(&obj[i].Transform, &s.ibm[k])
		} else {
			s.mats[i] = obj[i].Transform
		}
	}
	return nil
}

// Matrices returns the bind-to-current matrices computed
// by the last call to Update.
// The returned slice must not be modified.
func (s *Skin) Matrices() []linear.M4 { return s.mats }
