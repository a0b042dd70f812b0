// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package clip

import (
	"fmt"
)

// MaxName is the maximum length of a clip name, in bytes.
// Longer names are truncated.
const MaxName = 32

// Clip is a named span of contiguous keyframes.
type Clip struct {
	Name        string
	Index       int
	Duration    float32
	InvDuration float32
	// First and Last are inclusive keyframe indices.
	First int
	Last  int
	Count int
	// Forward is taken when playback crosses the end
	// of the clip and Reverse when it crosses the start.
	Forward Transition
	Reverse Transition
	kp      *KeyframePool
}

// Keyframe returns the ith keyframe of c, counting from
// c.First.
func (c *Clip) Keyframe(i int) *Keyframe { return c.kp.Keyframe(c.First + i) }

// CalculateDuration sets c's duration to the sum of the
// durations of its keyframes.
func (c *Clip) CalculateDuration() {
	var d float32
	for i := c.First; i <= c.Last; i++ {
		d += c.kp.kfs[i].Duration
	}
	c.Duration = d
	c.InvDuration = 1 / d
}

// DistributeDuration sets c's duration to d and divides
// it evenly among its keyframes.
func (c *Clip) DistributeDuration(d float32) error {
	if !(d > 0) {
		return newErr("Clip duration not positive")
	}
	kd := d / float32(c.Count)
	for i := c.First; i <= c.Last; i++ {
		k := &c.kp.kfs[i]
		k.Duration = kd
		k.InvDuration = 1 / kd
		k.Sample.Time = kd
	}
	c.Duration = d
	c.InvDuration = 1 / d
	return nil
}

// locate returns the keyframe that contains clip time t
// and the time at which it starts.
// t is expected to be in [0, c.Duration].
func (c *Clip) locate(t float32) (k int, start float32) {
	for k = c.First; k < c.Last; k++ {
		end := start + c.kp.kfs[k].Duration
		if t <= end {
			return
		}
		start = end
	}
	return
}

// ClipPool is a fixed-size array of clips sharing one
// keyframe pool.
type ClipPool struct {
	clips []Clip
	kp    *KeyframePool
}

// NewClipPool creates a pool of count clips over kp.
// Every clip initially spans the first keyframe of kp.
func NewClipPool(kp *KeyframePool, count int) (*ClipPool, error) {
	switch {
	case kp == nil:
		return nil, newErr("nil KeyframePool")
	case count < 1:
		return nil, newErr("clip count less than 1")
	}
	p := &ClipPool{make([]Clip, count), kp}
	for i := range p.clips {
		if err := p.Init(i, fmt.Sprintf("clip%d", i), 0, 0); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Len returns the number of clips in p.
func (p *ClipPool) Len() int { return len(p.clips) }

// Clip returns the ith clip of p.
func (p *ClipPool) Clip(i int) *Clip { return &p.clips[i] }

// Keyframes returns the keyframe pool of p.
func (p *ClipPool) Keyframes() *KeyframePool { return p.kp }

// Init sets the ith clip to span keyframes first through
// last, inclusive. Its duration is calculated from the
// keyframes and both of its transitions pause on itself.
func (p *ClipPool) Init(i int, name string, first, last int) error {
	switch {
	case i < 0 || i >= len(p.clips):
		return newErr("clip index out of bounds")
	case first < 0 || last >= p.kp.Len():
		return newErr("keyframe range out of bounds")
	case first > last:
		return newErr("first keyframe after last keyframe")
	}
	if len(name) > MaxName {
		name = name[:MaxName]
	}
	c := &p.clips[i]
	*c = Clip{
		Name:    name,
		Index:   i,
		First:   first,
		Last:    last,
		Count:   last - first + 1,
		Forward: Transition{target: i},
		Reverse: Transition{target: i},
		kp:      p.kp,
	}
	c.CalculateDuration()
	return nil
}

// Find returns the index of the clip named name, or -1
// if no such clip exists.
func (p *ClipPool) Find(name string) int {
	if len(name) > MaxName {
		name = name[:MaxName]
	}
	for i := range p.clips {
		if p.clips[i].Name == name {
			return i
		}
	}
	return -1
}

// Link resolves the target of every transition in p.
// It must be called after transitions are modified and
// before any controller is updated. If any target is
// unknown, no transition is modified.
func (p *ClipPool) Link() error {
	for i := range p.clips {
		c := &p.clips[i]
		for _, t := range [...]*Transition{&c.Forward, &c.Reverse} {
			if t.Target != "" && p.Find(t.Target) < 0 {
				return fmt.Errorf("%sclip %q: unknown transition target %q", prefix, c.Name, t.Target)
			}
		}
	}
	for i := range p.clips {
		c := &p.clips[i]
		for _, t := range [...]*Transition{&c.Forward, &c.Reverse} {
			if t.Target == "" {
				t.target = i
			} else {
				t.target = p.Find(t.Target)
			}
		}
	}
	return nil
}

// next returns the clip and keyframe that follow
// keyframe k of clip i during forward playback.
// Past the last keyframe, the forward transition of the
// clip is followed. Transitions that pause or reverse
// hold the last keyframe.
func (p *ClipPool) next(i, k int) (int, int) {
	c := &p.clips[i]
	if k < c.Last {
		return i, k + 1
	}
	t := &c.Forward
	tc := &p.clips[t.target]
	switch t.Behavior {
	case Forward, ForwardPause:
		return t.target, tc.First
	case ForwardSkip, ForwardFrame:
		return t.target, min(tc.First+1, tc.Last)
	}
	return i, k
}

// prev returns the clip and keyframe that precede
// keyframe k of clip i during reverse playback.
// Before the first keyframe, the reverse transition of
// the clip is followed. Transitions that pause or move
// forward hold the first keyframe.
func (p *ClipPool) prev(i, k int) (int, int) {
	c := &p.clips[i]
	if k > c.First {
		return i, k - 1
	}
	t := &c.Reverse
	tc := &p.clips[t.target]
	switch t.Behavior {
	case Reverse, ReversePause:
		return t.target, tc.Last
	case ReverseSkip, ReverseFrame:
		return t.target, max(tc.Last-1, tc.First)
	}
	return i, k
}
