// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// M4 is a column-major 4x4 matrix of float32.
type M4 = mgl32.Mat4

// I returns an identity matrix.
func I() M4 { return mgl32.Ident4() }

// at returns the element of m at row r and column c.
func at(m *M4, r, c int) float32 { return m[c*4+r] }

// Translate returns a matrix that translates by t.
func Translate(t *V3) M4 { return mgl32.Translate3D(t[0], t[1], t[2]) }

// ScaleM returns a matrix that scales by s.
func ScaleM(s *V3) M4 { return mgl32.Scale3D(s[0], s[1], s[2]) }

// rotate returns a matrix that rotates by angle radians
// around the given axis (0, 1 or 2).
func rotate(axis int, angle float32) M4 {
	switch axis {
	case 0:
		return mgl32.HomogRotate3DX(angle)
	case 1:
		return mgl32.HomogRotate3DY(angle)
	default:
		return mgl32.HomogRotate3DZ(angle)
	}
}

// Compose returns T ⋅ R ⋅ S, where R is the rotation
// described by the Euler angles r applied in order ord.
func Compose(t, r, s *V3, ord Order) M4 {
	m := Translate(t)
	m = m.Mul4(Rotate(r, ord))
	return m.Mul4(ScaleM(s))
}

// Decompose is the inverse of Compose.
// The rotation part of m must be orthogonal after the
// removal of scale. Negative determinants are attributed
// to the x scale.
func Decompose(m *M4, ord Order) (t, r, s V3) {
	t = V3{m[12], m[13], m[14]}
	for c := range s {
		col := V3{m[c*4], m[c*4+1], m[c*4+2]}
		s[c] = col.Len()
	}
	if m.Mat3().Det() < 0 {
		s[0] = -s[0]
	}
	var rot M4
	for c := 0; c < 3; c++ {
		for i := 0; i < 3; i++ {
			if s[c] != 0 {
				rot[c*4+i] = m[c*4+i] / s[c]
			}
		}
	}
	rot[15] = 1
	r = Euler(&rot, ord)
	return
}

// Invert returns the inverse of m.
// Singular matrices yield the zero matrix.
func Invert(m *M4) M4 { return m.Inv() }

// Mul returns l ⋅ r.
func Mul(l, r *M4) M4 { return l.Mul4(*r) }

// Point returns m ⋅ p, with p treated as a point.
func Point(m *M4, p *V3) V3 {
	v := m.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
	return V3{v[0], v[1], v[2]}
}

// ApproxEqualM reports whether every element of m is
// within eps of the corresponding element of n.
// The tolerance is absolute, zero elements included.
func ApproxEqualM(m, n *M4, eps float32) bool {
	return m.ApproxFuncEqual(*n, func(a, b float32) bool {
		return math.Abs(float64(a)-float64(b)) <= float64(eps)
	})
}
