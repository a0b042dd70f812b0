// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package pose

// Hierarchical is a pose of every joint in a hierarchy,
// indexed by joint.
// Operators apply their Spatial counterparts to every
// joint in the receiver; every argument must have at
// least len(h) elements.
type Hierarchical []Spatial

// Identity sets every joint of h to the neutral pose.
func (h Hierarchical) Identity() {
	for i := range h {
		h[i].Identity()
	}
}

// IsIdentity reports whether every joint of h is neutral
// within eps.
func (h Hierarchical) IsIdentity(eps float32) bool {
	for i := range h {
		if !h[i].IsIdentity(eps) {
			return false
		}
	}
	return true
}

// Copy sets h to contain in.
func (h Hierarchical) Copy(in Hierarchical) { copy(h, in[:len(h)]) }

// Negate sets h to contain the inverse of in.
func (h Hierarchical) Negate(in Hierarchical) {
	for i := range h {
		h[i].Negate(&in[i])
	}
}

// Concat sets h to contain l composed with r.
func (h Hierarchical) Concat(l, r Hierarchical) {
	for i := range h {
		h[i].Concat(&l[i], &r[i])
	}
}

// Deconcat sets h to contain the pose that concatenated
// with r yields l.
func (h Hierarchical) Deconcat(l, r Hierarchical) {
	for i := range h {
		h[i].Deconcat(&l[i], &r[i])
	}
}

// Convert rebuilds the transform of every joint in h.
// ch and ord hold the channel mask and Euler order of
// each joint.
func (h Hierarchical) Convert(ch []Channel, ord []EulerOrder) {
	for i := range h {
		h[i].Convert(ch[i], ord[i])
	}
}

// Revert recovers the components of every joint in h
// from its transform.
func (h Hierarchical) Revert(ch []Channel, ord []EulerOrder) {
	for i := range h {
		h[i].Revert(ch[i], ord[i])
	}
}

// Scale sets h to contain the deviation of in from the
// identity scaled by u.
func (h Hierarchical) Scale(in Hierarchical, u float32) {
	for i := range h {
		h[i].Scale(&in[i], u)
	}
}

// Biscale is like Scale, but negative u inverts in.
func (h Hierarchical) Biscale(in Hierarchical, u float32) {
	for i := range h {
		h[i].Biscale(&in[i], u)
	}
}

// Nearest sets h to contain h0 if u < 0.5 and h1 otherwise.
func (h Hierarchical) Nearest(h0, h1 Hierarchical, u float32) {
	if u < 0.5 {
		h.Copy(h0)
	} else {
		h.Copy(h1)
	}
}

// Lerp sets h to contain the linear interpolation between
// h0 and h1 at u.
func (h Hierarchical) Lerp(h0, h1 Hierarchical, u float32) {
	for i := range h {
		h[i].Lerp(&h0[i], &h1[i], u)
	}
}

// EaseInOut sets h to contain the eased interpolation
// between h0 and h1 at u.
func (h Hierarchical) EaseInOut(h0, h1 Hierarchical, u float32) {
	for i := range h {
		h[i].EaseInOut(&h0[i], &h1[i], u)
	}
}

// Triangular sets h to contain the barycentric blend of
// h0, h1 and h2.
func (h Hierarchical) Triangular(h0, h1, h2 Hierarchical, u1, u2 float32) {
	for i := range h {
		h[i].Triangular(&h0[i], &h1[i], &h2[i], u1, u2)
	}
}

// Cubic sets h to contain the Catmull-Rom interpolation
// between h0 and h1 at u.
func (h Hierarchical) Cubic(hp, h0, h1, hn Hierarchical, u float32) {
	for i := range h {
		h[i].Cubic(&hp[i], &h0[i], &h1[i], &hn[i], u)
	}
}

// Binearest is the two-axis version of Nearest.
func (h Hierarchical) Binearest(h00, h01, h10, h11 Hierarchical, u0, u1, u float32) {
	if u < 0.5 {
		h.Nearest(h00, h01, u0)
	} else {
		h.Nearest(h10, h11, u1)
	}
}

// Bilerp is the two-axis version of Lerp.
func (h Hierarchical) Bilerp(h00, h01, h10, h11 Hierarchical, u0, u1, u float32) {
	for i := range h {
		h[i].Bilerp(&h00[i], &h01[i], &h10[i], &h11[i], u0, u1, u)
	}
}

// Bicubic is the two-axis version of Cubic.
func (h Hierarchical) Bicubic(in *[16]Hierarchical, u *[4]float32, v float32) {
	var sp [16]*Spatial
	for i := range h {
		for j := range sp {
			sp[j] = &in[j][i]
		}
		h[i].Bicubic(&sp, u, v)
	}
}

// ApproxEqual reports whether every joint of h is within
// eps of the corresponding joint of g.
func (h Hierarchical) ApproxEqual(g Hierarchical, eps float32) bool {
	if len(h) != len(g) {
		return false
	}
	for i := range h {
		if !h[i].ApproxEqual(&g[i], eps) {
			return false
		}
	}
	return true
}
