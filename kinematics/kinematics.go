// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package kinematics resolves hierarchical poses between
// local and object space.
//
// Solvers process joints in ascending index order and rely
// on the hierarchy storing every parent before its
// descendants.
package kinematics

import (
	"errors"

	"github.com/gviegas/anim/linear"
	"github.com/gviegas/anim/pose"
)

const prefix = "kinematics: "

// ErrRange is returned when a partial solve refers to
// joints outside of the state.
var ErrRange = errors.New(prefix + "joint range out of bounds")

func check(s *pose.State, first, count int) error {
	if first < 0 || count < 0 || first+count > s.Len() {
		return ErrRange
	}
	return nil
}

// SolveForward computes the object-space transform of
// every joint of s from its local-space transform.
func SolveForward(s *pose.State) { solveForward(s, 0, s.Len()) }

// SolveForwardPartial is like SolveForward, but only
// processes count joints starting at first.
// The object-space transforms of the parents of these
// joints must already be up to date.
func SolveForwardPartial(s *pose.State, first, count int) error {
	if err := check(s, first, count); err != nil {
		return err
	}
	solveForward(s, first, count)
	return nil
}

func solveForward(s *pose.State, first, count int) {
	h := s.Hierarchy()
	for i := first; i < first+count; i++ {
		if pnt := h.Parent(i); pnt >= 0 {
			s.Object[i].Transform = linear.Mul(&s.Object[pnt].Transform, &s.Local[i].Transform)
		} else {
			s.Object[i].Transform = s.Local[i].Transform
		}
	}
}

// SolveInverse computes the local-space transform of every
// joint of s from its object-space transform.
func SolveInverse(s *pose.State) { solveInverse(s, 0, s.Len()) }

// SolveInversePartial is like SolveInverse, but only
// processes count joints starting at first.
func SolveInversePartial(s *pose.State, first, count int) error {
	if err := check(s, first, count); err != nil {
		return err
	}
	solveInverse(s, first, count)
	return nil
}

func solveInverse(s *pose.State, first, count int) {
	h := s.Hierarchy()
	for i := first; i < first+count; i++ {
		if pnt := h.Parent(i); pnt >= 0 {
			inv := linear.Invert(&s.Object[pnt].Transform)
			s.Local[i].Transform = linear.Mul(&inv, &s.Object[i].Transform)
		} else {
			s.Local[i].Transform = s.Object[i].Transform
		}
	}
}

// Revert recovers the translation, rotation and scale of
// s.Local from its transforms, using the joint metadata of
// g. It is meant to be called after an inverse solve.
func Revert(s *pose.State, g *pose.Group) { s.Local.Revert(g.Channels(), g.Orders()) }
