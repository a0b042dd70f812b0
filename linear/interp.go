// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"golang.org/x/exp/constraints"
	"honnef.co/go/curve"
)

// Lerp returns the linear interpolation between x0 and x1 at u.
// u is not clamped.
func Lerp[F constraints.Float](x0, x1, u F) F { return x0 + (x1-x0)*u }

// Nearest returns x0 if u < 0.5 and x1 otherwise.
func Nearest[F constraints.Float](x0, x1, u F) F {
	if u < 0.5 {
		return x0
	}
	return x1
}

// Triangular returns the barycentric combination
//
//	u1⋅x0 + u2⋅x1 + (1-u1-u2)⋅x2
//
// so that (1, 0) yields x0, (0, 1) yields x1 and
// (0, 0) yields x2.
func Triangular[F constraints.Float](x0, x1, x2, u1, u2 F) F {
	return u1*x0 + u2*x1 + (1-u1-u2)*x2
}

// CatmullRom returns the Catmull-Rom interpolation between
// x0 and x1 at u, using xp and xn as the preceding and
// succeeding control values.
func CatmullRom[F constraints.Float](xp, x0, x1, xn, u F) F {
	u2 := u * u
	u3 := u2 * u
	return 0.5 * (2*x0 +
		(x1-xp)*u +
		(2*xp-5*x0+4*x1-xn)*u2 +
		(3*x0-xp-3*x1+xn)*u3)
}

// Hermite returns the cubic Hermite interpolation between
// x0 and x1 at u, with m0 and m1 being the tangents at
// x0 and x1, respectively.
func Hermite[F constraints.Float](x0, m0, x1, m1, u F) F {
	u2 := u * u
	u3 := u2 * u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := 3*u2 - 2*u3
	h11 := u3 - u2
	return h00*x0 + h10*m0 + h01*x1 + h11*m1
}

// Bilerp interpolates x00/x01 at u0 and x10/x11 at u1,
// then interpolates the two results at u.
func Bilerp[F constraints.Float](x00, x01, x10, x11, u0, u1, u F) F {
	return Lerp(Lerp(x00, x01, u0), Lerp(x10, x11, u1), u)
}

// Bicubic interpolates each row of the 4x4 grid x at the
// corresponding u[i] and then interpolates the four results
// at v. Rows are expected in prev/0/1/next order.
func Bicubic[F constraints.Float](x *[16]F, u *[4]F, v F) F {
	var c [4]F
	for i := range c {
		r := x[i*4 : i*4+4]
		c[i] = CatmullRom(r[0], r[1], r[2], r[3], u[i])
	}
	return CatmullRom(c[0], c[1], c[2], c[3], v)
}

// ease is a symmetric ease-in-out curve whose control
// points are evenly spaced in x, so that x(t) = t.
var ease = curve.CubicBez{
	P0: curve.Point{X: 0, Y: 0},
	P1: curve.Point{X: 1.0 / 3, Y: 0},
	P2: curve.Point{X: 2.0 / 3, Y: 1},
	P3: curve.Point{X: 1, Y: 1},
}

// Ease maps u through a cubic Bezier ease-in-out curve.
// u is clamped to [0, 1].
func Ease(u float32) float32 {
	switch {
	case u <= 0:
		return 0
	case u >= 1:
		return 1
	}
	return float32(ease.Eval(float64(u)).Y)
}
