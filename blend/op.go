// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package blend

import (
	"github.com/gviegas/anim/clip"
	"github.com/gviegas/anim/pose"
)

// Op is the operation bound to a blend node.
// It is implemented by the *Op types of this package,
// each carrying exactly the inputs its NodeType needs.
type Op interface {
	// Type returns the node type that Op implements.
	Type() NodeType
	eval(t *Tree, dst pose.Hierarchical)
}

// IdentityOp resets the output to identity.
type IdentityOp struct{}

// UnaryOp applies Copy, Negate, Convert or Revert to the
// output of one control node.
type UnaryOp struct {
	Op NodeType
	In int
}

// ScaleOp applies Scale or Biscale to the output of one
// control node.
type ScaleOp struct {
	Op NodeType
	In int
	U  *float32
}

// BinaryOp applies Concat or Deconcat to the outputs of
// two control nodes.
type BinaryOp struct {
	Op NodeType
	In [2]int
}

// InterpOp applies Nearest, Lerp or EaseInOut to the
// outputs of two control nodes.
type InterpOp struct {
	Op NodeType
	In [2]int
	U  *float32
}

// TriangularOp blends the outputs of three control nodes.
type TriangularOp struct {
	In [3]int
	U  [2]*float32
}

// CubicOp interpolates through the outputs of four
// control nodes.
type CubicOp struct {
	In [4]int
	U  *float32
}

// BilinearOp applies Binearest or Bilerp to the outputs
// of four control nodes.
type BilinearOp struct {
	Op NodeType
	In [4]int
	U  [3]*float32
}

// BicubicOp interpolates a 4x4 grid of control nodes.
// U holds the four row parameters followed by the
// column parameter.
type BicubicOp struct {
	In [16]int
	U  [5]*float32
}

// ClipOp samples one clip, applying CopyClip or
// NegateClip to the result.
type ClipOp struct {
	Op   NodeType
	Clip *clip.Controller
}

// ScaleClipOp samples one clip and scales the result.
type ScaleClipOp struct {
	Clip *clip.Controller
	U    *float32
}

// AddClipOp samples two clips and concatenates them.
type AddClipOp struct {
	Clips [2]*clip.Controller
}

// LerpClipOp samples two clips and interpolates them
// linearly.
type LerpClipOp struct {
	Clips [2]*clip.Controller
	U     *float32
}

func (IdentityOp) Type() NodeType    { return Identity }
func (o *UnaryOp) Type() NodeType    { return o.Op }
func (o *ScaleOp) Type() NodeType    { return o.Op }
func (o *BinaryOp) Type() NodeType   { return o.Op }
func (o *InterpOp) Type() NodeType   { return o.Op }
func (*TriangularOp) Type() NodeType { return Triangular }
func (*CubicOp) Type() NodeType      { return Cubic }
func (o *BilinearOp) Type() NodeType { return o.Op }
func (*BicubicOp) Type() NodeType    { return Bicubic }
func (o *ClipOp) Type() NodeType     { return o.Op }
func (*ScaleClipOp) Type() NodeType  { return ScaleClip }
func (*AddClipOp) Type() NodeType    { return AddClip }
func (*LerpClipOp) Type() NodeType   { return LerpClip }

func (IdentityOp) eval(_ *Tree, dst pose.Hierarchical) { dst.Identity() }

func (o *UnaryOp) eval(t *Tree, dst pose.Hierarchical) {
	in := t.input(o.In)
	switch o.Op {
	case Copy:
		dst.Copy(in)
	case Negate:
		dst.Negate(in)
	case Convert:
		dst.Copy(in)
		dst.Convert(t.group.Channels(), t.group.Orders())
	case Revert:
		// Only some operators write Transform, so it is
		// rebuilt from the input components first.
		dst.Copy(in)
		dst.Convert(t.group.Channels(), t.group.Orders())
		dst.Revert(t.group.Channels(), t.group.Orders())
	}
}

func (o *ScaleOp) eval(t *Tree, dst pose.Hierarchical) {
	in := t.input(o.In)
	if o.Op == Biscale {
		dst.Biscale(in, *o.U)
	} else {
		dst.Scale(in, *o.U)
	}
}

func (o *BinaryOp) eval(t *Tree, dst pose.Hierarchical) {
	l, r := t.input(o.In[0]), t.input(o.In[1])
	if o.Op == Deconcat {
		dst.Deconcat(l, r)
	} else {
		dst.Concat(l, r)
	}
}

func (o *InterpOp) eval(t *Tree, dst pose.Hierarchical) {
	h0, h1 := t.input(o.In[0]), t.input(o.In[1])
	switch o.Op {
	case Nearest:
		dst.Nearest(h0, h1, *o.U)
	case Lerp:
		dst.Lerp(h0, h1, *o.U)
	case EaseInOut:
		dst.EaseInOut(h0, h1, *o.U)
	}
}

func (o *TriangularOp) eval(t *Tree, dst pose.Hierarchical) {
	dst.Triangular(t.input(o.In[0]), t.input(o.In[1]), t.input(o.In[2]), *o.U[0], *o.U[1])
}

func (o *CubicOp) eval(t *Tree, dst pose.Hierarchical) {
	dst.Cubic(t.input(o.In[0]), t.input(o.In[1]), t.input(o.In[2]), t.input(o.In[3]), *o.U)
}

func (o *BilinearOp) eval(t *Tree, dst pose.Hierarchical) {
	h00, h01 := t.input(o.In[0]), t.input(o.In[1])
	h10, h11 := t.input(o.In[2]), t.input(o.In[3])
	if o.Op == Binearest {
		dst.Binearest(h00, h01, h10, h11, *o.U[0], *o.U[1], *o.U[2])
	} else {
		dst.Bilerp(h00, h01, h10, h11, *o.U[0], *o.U[1], *o.U[2])
	}
}

func (o *BicubicOp) eval(t *Tree, dst pose.Hierarchical) {
	var in [16]pose.Hierarchical
	for i, x := range o.In {
		in[i] = t.input(x)
	}
	var u [4]float32
	for i := range u {
		u[i] = *o.U[i]
	}
	dst.Bicubic(&in, &u, *o.U[4])
}

func (o *ClipOp) eval(t *Tree, dst pose.Hierarchical) {
	if o.Op == NegateClip {
		s := t.sample(0, o.Clip)
		dst.Negate(s)
	} else {
		t.sampleInto(dst, o.Clip)
	}
}

func (o *ScaleClipOp) eval(t *Tree, dst pose.Hierarchical) {
	dst.Scale(t.sample(0, o.Clip), *o.U)
}

func (o *AddClipOp) eval(t *Tree, dst pose.Hierarchical) {
	dst.Concat(t.sample(0, o.Clips[0]), t.sample(1, o.Clips[1]))
}

func (o *LerpClipOp) eval(t *Tree, dst pose.Hierarchical) {
	dst.Lerp(t.sample(0, o.Clips[0]), t.sample(1, o.Clips[1]), *o.U)
}
