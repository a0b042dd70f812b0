// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package bitvec defines a bit vector type used to track
// per-tick node evaluation and identifier allocation.
package bitvec

import (
	"iter"
	"math/bits"
	"unsafe"
)

// Uint represents the granularity of a bit vector.
type Uint interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// V is a growable bit vector with custom granularity.
// The zero value is an empty vector.
type V[T Uint] struct {
	s   []T
	rem int
}

// nbit returns the number of bits in T.
func (*V[T]) nbit() int { return int(unsafe.Sizeof(T(0))) * 8 }

// New creates a vector with at least n unset bits.
func New[T Uint](n int) *V[T] {
	v := new(V[T])
	if n > 0 {
		v.Grow((n + v.nbit() - 1) / v.nbit())
	}
	return v
}

// Len returns the number of bits in the vector.
func (v *V[_]) Len() int { return len(v.s) * v.nbit() }

// Rem returns the number of unset bits in the vector.
func (v *V[_]) Rem() int { return v.rem }

// Grow appends nplus Uints of unset bits to the vector.
// It returns the value of v.Len prior to growing.
// Values of nplus less than 1 are ignored.
func (v *V[T]) Grow(nplus int) (index int) {
	index = v.Len()
	if nplus > 0 {
		v.rem += nplus * v.nbit()
		v.s = append(v.s, make([]T, nplus)...)
	}
	return
}

func (v *V[T]) loc(index int) (int, T) {
	n := v.nbit()
	return index / n, T(1) << (index & (n - 1))
}

// Set sets a given bit.
func (v *V[T]) Set(index int) {
	i, b := v.loc(index)
	if v.s[i]&b == 0 {
		v.s[i] |= b
		v.rem--
	}
}

// Unset unsets a given bit.
func (v *V[T]) Unset(index int) {
	i, b := v.loc(index)
	if v.s[i]&b != 0 {
		v.s[i] &^= b
		v.rem++
	}
}

// IsSet checks whether a given bit is set.
func (v *V[T]) IsSet(index int) bool {
	i, b := v.loc(index)
	return v.s[i]&b != 0
}

// Search locates the lowest unset bit in the vector.
// It fails only when v.Rem() == 0.
func (v *V[T]) Search() (index int, ok bool) {
	if v.rem == 0 {
		return
	}
	for i, x := range v.s {
		if x == ^T(0) {
			continue
		}
		return i*v.nbit() + bits.TrailingZeros64(uint64(^x)), true
	}
	return
}

// Clear unsets every bit in the vector.
func (v *V[T]) Clear() {
	if n := v.Len(); n != v.rem {
		clear(v.s)
		v.rem = n
	}
}

// All returns an iterator over all bits of the vector.
// The first value in the pair is the index of the bit and
// the second indicates whether the bit is set.
func (v *V[T]) All() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		n := v.nbit()
		for i, x := range v.s {
			for b := range n {
				if !yield(i*n+b, x&(1<<b) != 0) {
					return
				}
			}
		}
	}
}
