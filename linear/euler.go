// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"strconv"
)

// Order is a Euler rotation concatenation order.
// The first axis named is applied first.
type Order uint8

// Euler orders.
const (
	XYZ Order = iota
	YZX
	ZXY
	YXZ
	XZY
	ZYX
)

var orderAxes = [...][3]int{
	XYZ: {0, 1, 2},
	YZX: {1, 2, 0},
	ZXY: {2, 0, 1},
	YXZ: {1, 0, 2},
	XZY: {0, 2, 1},
	ZYX: {2, 1, 0},
}

var orderNames = [...]string{
	XYZ: "xyz",
	YZX: "yzx",
	ZXY: "zxy",
	YXZ: "yxz",
	XZY: "xzy",
	ZYX: "zyx",
}

// Axes returns the axis indices of ord in application order.
// Invalid orders are treated as XYZ.
func (ord Order) Axes() [3]int {
	if int(ord) >= len(orderAxes) {
		return orderAxes[XYZ]
	}
	return orderAxes[ord]
}

// String implements fmt.Stringer.
func (ord Order) String() string {
	if int(ord) >= len(orderNames) {
		return "Order(" + strconv.Itoa(int(ord)) + ")"
	}
	return orderNames[ord]
}

// ParseOrder returns the Order named s (e.g., "zyx").
func ParseOrder(s string) (Order, bool) {
	for i, n := range orderNames {
		if n == s {
			return Order(i), true
		}
	}
	return 0, false
}

// even reports whether the axes of ord form a cyclic
// permutation of (x, y, z).
func (ord Order) even() bool { return ord <= ZXY }

// Rotate returns the rotation matrix of the Euler angles r,
// where r[i] is the angle around axis i, applied in order ord.
func Rotate(r *V3, ord Order) M4 {
	ax := ord.Axes()
	m := rotate(ax[2], r[ax[2]])
	m = m.Mul4(rotate(ax[1], r[ax[1]]))
	return m.Mul4(rotate(ax[0], r[ax[0]]))
}

// Euler extracts the Euler angles of the rotation matrix m
// in order ord. It is the inverse of Rotate for middle
// angles in (-π/2, π/2). At gimbal lock, the angle of the
// last axis is set to zero.
func Euler(m *M4, ord Order) (r V3) {
	ax := ord.Axes()
	i, j, k := ax[0], ax[1], ax[2]
	s := 1.0
	if !ord.even() {
		s = -1
	}
	e := func(r, c int) float64 { return float64(at(m, r, c)) }

	sb := -s * e(k, i)
	b := asin(sb)
	var a, c float64
	if math.Abs(sb) < 0.99999 {
		a = math.Atan2(s*e(k, j), e(k, k))
		c = math.Atan2(s*e(j, i), e(i, i))
	} else {
		a = math.Atan2(-s*e(j, k), e(j, j))
	}
	r[i] = float32(a)
	r[j] = float32(b)
	r[k] = float32(c)
	return
}

func asin(x float64) float64 { return math.Asin(math.Max(-1, math.Min(1, x))) }
