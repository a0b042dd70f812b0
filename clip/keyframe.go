// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package clip implements keyframed clips and the
// controllers that play them.
package clip

import (
	"errors"
)

const prefix = "clip: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// Sample is a timed value.
type Sample struct {
	Time  float32
	Value float32
}

// Keyframe is one timed sample of a clip.
// Its value is the sample's value at the start of the
// keyframe interval.
type Keyframe struct {
	Index       int
	Duration    float32
	InvDuration float32
	Sample      Sample
	// Handle is the optional control point used by
	// curve evaluation. Its value is the tangent at the
	// start of the keyframe interval.
	Handle Sample
}

// SetDuration sets k's duration and its reciprocal.
// d must be greater than zero.
func (k *Keyframe) SetDuration(d float32) error {
	if !(d > 0) {
		return newErr("Keyframe duration not positive")
	}
	k.Duration = d
	k.InvDuration = 1 / d
	return nil
}

// KeyframePool is a fixed-size array of keyframes.
type KeyframePool struct {
	kfs []Keyframe
}

// NewKeyframePool creates a pool of count keyframes.
// Every keyframe has the duration of one second and a
// zero sample.
func NewKeyframePool(count int) (*KeyframePool, error) {
	if count < 1 {
		return nil, newErr("keyframe count less than 1")
	}
	kfs := make([]Keyframe, count)
	for i := range kfs {
		kfs[i] = Keyframe{Index: i, Duration: 1, InvDuration: 1}
	}
	return &KeyframePool{kfs}, nil
}

// Len returns the number of keyframes in p.
func (p *KeyframePool) Len() int { return len(p.kfs) }

// Keyframe returns the ith keyframe of p.
func (p *KeyframePool) Keyframe(i int) *Keyframe { return &p.kfs[i] }

// Init sets the duration and value of the ith keyframe.
// The sample time is set to the keyframe duration.
func (p *KeyframePool) Init(i int, duration, value float32) error {
	if i < 0 || i >= len(p.kfs) {
		return newErr("keyframe index out of bounds")
	}
	k := &p.kfs[i]
	if err := k.SetDuration(duration); err != nil {
		return err
	}
	k.Sample = Sample{Time: duration, Value: value}
	return nil
}
