// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	_ "embed"

	"github.com/gviegas/anim/clip"
	"github.com/gviegas/anim/linear"
	"github.com/gviegas/anim/pose"
	"github.com/gviegas/anim/skeleton"
)

//go:embed default.tree
var defaultTree string

var rigJoints = []skeleton.Node{
	{Name: "pelvis", Parent: -1},
	{Name: "spine", Parent: 0},
	{Name: "head", Parent: 1},
	{Name: "l_thigh", Parent: 0},
	{Name: "l_shin", Parent: 3},
	{Name: "l_foot", Parent: 4},
	{Name: "r_thigh", Parent: 0},
	{Name: "r_shin", Parent: 6},
	{Name: "r_foot", Parent: 7},
}

// Poses of the rig's group.
const (
	poseBase = iota
	poseZero
	poseBreathe
	poseStrideL
	poseStrideR
	poseCount
)

// newRig creates the demo biped: its pose group and the
// clips "idle" and "walk". Every pose but the base is a
// delta from it.
func newRig() (*pose.Group, *clip.ClipPool, error) {
	h, err := skeleton.New(rigJoints)
	if err != nil {
		return nil, nil, err
	}
	g, err := pose.NewGroup(h, poseCount)
	if err != nil {
		return nil, nil, err
	}
	for _, j := range [...]string{"l_thigh", "l_shin", "l_foot", "r_thigh", "r_shin", "r_foot"} {
		g.SetJoint(h.Find(j), pose.Translate|pose.Rotate, pose.ZYX)
	}

	base := g.Pose(poseBase)
	for _, x := range [...]struct {
		joint string
		t     linear.V3
	}{
		{"pelvis", linear.V3{0, 1, 0}},
		{"spine", linear.V3{0, 0.3, 0}},
		{"head", linear.V3{0, 0.35, 0}},
		{"l_thigh", linear.V3{0.1, -0.05, 0}},
		{"l_shin", linear.V3{0, -0.45, 0}},
		{"l_foot", linear.V3{0, -0.45, 0.1}},
		{"r_thigh", linear.V3{-0.1, -0.05, 0}},
		{"r_shin", linear.V3{0, -0.45, 0}},
		{"r_foot", linear.V3{0, -0.45, 0.1}},
	} {
		base[h.Find(x.joint)].T = x.t
	}

	g.Pose(poseBreathe)[h.Find("spine")].R = linear.V3{0.05, 0, 0}
	g.Pose(poseBreathe)[h.Find("head")].R = linear.V3{-0.05, 0, 0}
	for _, x := range [...]struct {
		p     int
		joint string
		r     float32
	}{
		{poseStrideL, "l_thigh", -0.4},
		{poseStrideL, "r_thigh", 0.4},
		{poseStrideL, "r_shin", 0.3},
		{poseStrideR, "r_thigh", -0.4},
		{poseStrideR, "l_thigh", 0.4},
		{poseStrideR, "l_shin", 0.3},
	} {
		g.Pose(x.p)[h.Find(x.joint)].R = linear.V3{x.r, 0, 0}
	}

	// Looping clips interpolate from their last keyframe
	// back to the first one.
	kp, err := clip.NewKeyframePool(4)
	if err != nil {
		return nil, nil, err
	}
	for i, x := range [...]struct {
		dur float32
		p   int
	}{
		{1.5, poseZero}, {1.5, poseBreathe},
		{0.6, poseStrideL}, {0.6, poseStrideR},
	} {
		if err := kp.Init(i, x.dur, float32(x.p)); err != nil {
			return nil, nil, err
		}
	}
	cp, err := clip.NewClipPool(kp, 2)
	if err != nil {
		return nil, nil, err
	}
	if err := cp.Init(0, "idle", 0, 1); err != nil {
		return nil, nil, err
	}
	if err := cp.Init(1, "walk", 2, 3); err != nil {
		return nil, nil, err
	}
	cp.Clip(0).Forward = clip.Transition{Behavior: clip.Forward}
	cp.Clip(1).Forward = clip.Transition{Behavior: clip.Forward}
	if err := cp.Link(); err != nil {
		return nil, nil, err
	}
	return g, cp, nil
}
