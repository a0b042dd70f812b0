// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package pose implements spatial and hierarchical poses
// and the operators that blend them.
package pose

import (
	"github.com/gviegas/anim/linear"
)

// Channel is a mask of the transform components that are
// animated for a given joint.
type Channel uint16

// Channels.
const (
	TranslateX Channel = 1 << iota
	TranslateY
	TranslateZ
	RotateX
	RotateY
	RotateZ
	ScaleX
	ScaleY
	ScaleZ

	Translate = TranslateX | TranslateY | TranslateZ
	Rotate    = RotateX | RotateY | RotateZ
	Scale     = ScaleX | ScaleY | ScaleZ
	All       = Translate | Rotate | Scale
	None      Channel = 0
)

// EulerOrder is the rotation concatenation order of a joint.
type EulerOrder = linear.Order

// Euler orders.
const (
	XYZ = linear.XYZ
	YZX = linear.YZX
	ZXY = linear.ZXY
	YXZ = linear.YXZ
	XZY = linear.XZY
	ZYX = linear.ZYX
)

// Spatial is the pose of a single joint.
// Operators write into the receiver and only read their
// arguments, which may alias the receiver.
// Operators other than Identity, Copy, Nearest, Binearest,
// Convert and Revert leave Transform untouched; Convert must
// be called before Transform is consumed.
type Spatial struct {
	// T is the translation.
	T linear.V3
	// R is the rotation, as Euler angles in radians.
	R linear.V3
	// S is the scale.
	S linear.V3
	// Transform is the matrix derived from T, R and S.
	Transform linear.M4
}

// Identity sets p to the neutral pose.
func (p *Spatial) Identity() {
	*p = Spatial{
		S:         linear.V3{1, 1, 1},
		Transform: linear.I(),
	}
}

// IsIdentity reports whether p's components are neutral
// within eps.
func (p *Spatial) IsIdentity(eps float32) bool {
	var q Spatial
	q.Identity()
	return p.ApproxEqual(&q, eps)
}

// Copy sets p to contain in.
func (p *Spatial) Copy(in *Spatial) { *p = *in }

// Negate sets p to contain the inverse of in: translation
// and rotation change sign and scale is inverted.
func (p *Spatial) Negate(in *Spatial) {
	p.T.Scale(-1, &in.T)
	p.R.Scale(-1, &in.R)
	p.S.Recip(&in.S)
}

// Concat sets p to contain l composed with r: translations
// and rotations add and scales multiply.
func (p *Spatial) Concat(l, r *Spatial) {
	p.T.Add(&l.T, &r.T)
	p.R.Add(&l.R, &r.R)
	p.S.Mul(&l.S, &r.S)
}

// Deconcat is the inverse of Concat: it sets p to contain
// the pose that concatenated with r yields l.
func (p *Spatial) Deconcat(l, r *Spatial) {
	p.T.Sub(&l.T, &r.T)
	p.R.Sub(&l.R, &r.R)
	p.S.Div(&l.S, &r.S)
}

// mask returns the components of p that are set in ch,
// with every other component neutral.
func (p *Spatial) mask(ch Channel) (t, r, s linear.V3) {
	s = linear.V3{1, 1, 1}
	for i := range t {
		if ch&(TranslateX<<i) != 0 {
			t[i] = p.T[i]
		}
		if ch&(RotateX<<i) != 0 {
			r[i] = p.R[i]
		}
		if ch&(ScaleX<<i) != 0 {
			s[i] = p.S[i]
		}
	}
	return
}

// Convert rebuilds p.Transform from p's components,
// honoring the channel mask ch and the Euler order ord.
func (p *Spatial) Convert(ch Channel, ord EulerOrder) {
	t, r, s := p.mask(ch)
	p.Transform = linear.Compose(&t, &r, &s, ord)
}

// Revert is the inverse of Convert: it recovers p's
// components from p.Transform. Components not set in ch
// become neutral.
func (p *Spatial) Revert(ch Channel, ord EulerOrder) {
	p.T, p.R, p.S = linear.Decompose(&p.Transform, ord)
	p.T, p.R, p.S = p.mask(ch)
}

// Scale sets p to contain the deviation of in from the
// identity scaled by u. Scale is interpolated linearly
// from one, so negative u mirrors it around one.
func (p *Spatial) Scale(in *Spatial, u float32) {
	p.T.Scale(u, &in.T)
	p.R.Scale(u, &in.R)
	for i := range p.S {
		p.S[i] = linear.Lerp(1, in.S[i], u)
	}
}

// Biscale is like Scale, but scale is raised to u, so
// that negative u yields the inverse direction:
// Biscale(in, -1) is equivalent to Negate(in).
func (p *Spatial) Biscale(in *Spatial, u float32) {
	p.T.Scale(u, &in.T)
	p.R.Scale(u, &in.R)
	p.S.Pow(&in.S, u)
}

// Nearest sets p to contain p0 if u < 0.5 and p1 otherwise.
func (p *Spatial) Nearest(p0, p1 *Spatial, u float32) {
	if u < 0.5 {
		*p = *p0
	} else {
		*p = *p1
	}
}

// Lerp sets p to contain the component-wise linear
// interpolation between p0 and p1 at u.
func (p *Spatial) Lerp(p0, p1 *Spatial, u float32) {
	p.T.Lerp(&p0.T, &p1.T, u)
	p.R.Lerp(&p0.R, &p1.R, u)
	p.S.Lerp(&p0.S, &p1.S, u)
}

// EaseInOut is like Lerp, but u is first mapped through
// an ease-in-out curve. u is clamped to [0, 1].
func (p *Spatial) EaseInOut(p0, p1 *Spatial, u float32) { p.Lerp(p0, p1, linear.Ease(u)) }

// Triangular sets p to contain the barycentric blend of
// p0, p1 and p2, weighted by u1, u2 and 1-u1-u2.
func (p *Spatial) Triangular(p0, p1, p2 *Spatial, u1, u2 float32) {
	for i := range p.T {
		p.T[i] = linear.Triangular(p0.T[i], p1.T[i], p2.T[i], u1, u2)
		p.R[i] = linear.Triangular(p0.R[i], p1.R[i], p2.R[i], u1, u2)
		p.S[i] = linear.Triangular(p0.S[i], p1.S[i], p2.S[i], u1, u2)
	}
}

// Cubic sets p to contain the Catmull-Rom interpolation
// between p0 and p1 at u, with pp and pn as the preceding
// and succeeding control poses.
func (p *Spatial) Cubic(pp, p0, p1, pn *Spatial, u float32) {
	for i := range p.T {
		p.T[i] = linear.CatmullRom(pp.T[i], p0.T[i], p1.T[i], pn.T[i], u)
		p.R[i] = linear.CatmullRom(pp.R[i], p0.R[i], p1.R[i], pn.R[i], u)
		p.S[i] = linear.CatmullRom(pp.S[i], p0.S[i], p1.S[i], pn.S[i], u)
	}
}

// Binearest selects between p00 and p01 at u0 and between
// p10 and p11 at u1, then selects between the two at u.
func (p *Spatial) Binearest(p00, p01, p10, p11 *Spatial, u0, u1, u float32) {
	if u < 0.5 {
		p.Nearest(p00, p01, u0)
	} else {
		p.Nearest(p10, p11, u1)
	}
}

// Bilerp interpolates between p00 and p01 at u0 and
// between p10 and p11 at u1, then interpolates the two
// results at u.
func (p *Spatial) Bilerp(p00, p01, p10, p11 *Spatial, u0, u1, u float32) {
	for i := range p.T {
		p.T[i] = linear.Bilerp(p00.T[i], p01.T[i], p10.T[i], p11.T[i], u0, u1, u)
		p.R[i] = linear.Bilerp(p00.R[i], p01.R[i], p10.R[i], p11.R[i], u0, u1, u)
		p.S[i] = linear.Bilerp(p00.S[i], p01.S[i], p10.S[i], p11.S[i], u0, u1, u)
	}
}

// Bicubic interpolates each row of the 4x4 grid in at the
// corresponding u[i], then interpolates the four results
// at v. Rows and columns are in prev/0/1/next order.
func (p *Spatial) Bicubic(in *[16]*Spatial, u *[4]float32, v float32) {
	var t, r, s [16]float32
	for i := 0; i < 3; i++ {
		for j := range in {
			t[j] = in[j].T[i]
			r[j] = in[j].R[i]
			s[j] = in[j].S[i]
		}
		p.T[i] = linear.Bicubic(&t, u, v)
		p.R[i] = linear.Bicubic(&r, u, v)
		p.S[i] = linear.Bicubic(&s, u, v)
	}
}

// ApproxEqual reports whether p's components are within
// eps of q's.
func (p *Spatial) ApproxEqual(q *Spatial, eps float32) bool {
	return p.T.ApproxEqual(&q.T, eps) &&
		p.R.ApproxEqual(&q.R, eps) &&
		p.S.ApproxEqual(&q.S, eps)
}
