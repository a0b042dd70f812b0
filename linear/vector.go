// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package linear implements math for skeletal animation.
package linear

import (
	"math"
)

// V3 is a 3-component vector of float32.
// It holds translation, Euler rotation (radians) and
// scale triples of spatial poses.
type V3 [3]float32

// Add sets v to contain l + r.
func (v *V3) Add(l, r *V3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V3) Sub(l, r *V3) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V3) Scale(s float32, w *V3) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Mul sets v to contain the component-wise product of l and r.
func (v *V3) Mul(l, r *V3) {
	for i := range v {
		v[i] = l[i] * r[i]
	}
}

// Div sets v to contain the component-wise quotient of l and r.
func (v *V3) Div(l, r *V3) {
	for i := range v {
		v[i] = l[i] / r[i]
	}
}

// Recip sets v to contain the component-wise reciprocal of w.
func (v *V3) Recip(w *V3) {
	for i := range v {
		v[i] = 1 / w[i]
	}
}

// Pow sets v to contain each component of w raised to e.
func (v *V3) Pow(w *V3, e float32) {
	for i := range v {
		v[i] = float32(math.Pow(float64(w[i]), float64(e)))
	}
}

// Lerp sets v to contain the linear interpolation
// between l and r at u.
func (v *V3) Lerp(l, r *V3, u float32) {
	for i := range v {
		v[i] = Lerp(l[i], r[i], u)
	}
}

// Dot returns v ⋅ w.
func (v *V3) Dot(w *V3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V3) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Cross sets v to contain l × r.
func (v *V3) Cross(l, r *V3) {
	*v = V3{
		l[1]*r[2] - l[2]*r[1],
		l[2]*r[0] - l[0]*r[2],
		l[0]*r[1] - l[1]*r[0],
	}
}

// ApproxEqual reports whether every component of v is
// within eps of the corresponding component of w.
func (v *V3) ApproxEqual(w *V3, eps float32) bool {
	for i := range v {
		if d := v[i] - w[i]; d > eps || d < -eps {
			return false
		}
	}
	return true
}
