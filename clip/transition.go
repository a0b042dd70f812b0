// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package clip

import (
	"strconv"
)

// Behavior is the action a controller takes when it
// reaches one end of a clip.
type Behavior uint8

// Behaviors.
const (
	// Pause stops at the boundary of the target clip
	// that matches the crossed one.
	Pause Behavior = iota
	// Forward plays the target clip forward from its
	// start.
	Forward
	// ForwardPause pauses at the start of the target
	// clip.
	ForwardPause
	// Reverse plays the target clip in reverse from its
	// end.
	Reverse
	// ReversePause pauses at the end of the target clip.
	ReversePause
	// ForwardSkip plays the target clip forward,
	// skipping its first keyframe.
	ForwardSkip
	// ForwardFrame pauses at the end of the first
	// keyframe of the target clip.
	ForwardFrame
	// ReverseSkip plays the target clip in reverse,
	// skipping its last keyframe.
	ReverseSkip
	// ReverseFrame pauses at the start of the last
	// keyframe of the target clip.
	ReverseFrame
)

var behaviorNames = [...]string{
	Pause:        "pause",
	Forward:      "forward",
	ForwardPause: "forward_pause",
	Reverse:      "reverse",
	ReversePause: "reverse_pause",
	ForwardSkip:  "forward_skip",
	ForwardFrame: "forward_frame",
	ReverseSkip:  "reverse_skip",
	ReverseFrame: "reverse_frame",
}

func (b Behavior) String() string {
	if int(b) < len(behaviorNames) {
		return behaviorNames[b]
	}
	return "Behavior(" + strconv.Itoa(int(b)) + ")"
}

// ParseBehavior returns the behavior named s.
func ParseBehavior(s string) (Behavior, bool) {
	for i, x := range behaviorNames {
		if x == s {
			return Behavior(i), true
		}
	}
	return 0, false
}

// Transition describes what happens when a controller
// crosses one end of a clip.
type Transition struct {
	Behavior Behavior
	// Target is the name of the clip to transition to.
	// The empty string refers to the owning clip.
	Target string
	target int
}

// TargetIndex returns the index of the target clip in
// the pool. It is only valid after ClipPool.Link.
func (t *Transition) TargetIndex() int { return t.target }

// dir returns the playback direction after the
// transition.
func (b Behavior) dir() int {
	switch b {
	case Forward, ForwardSkip:
		return 1
	case Reverse, ReverseSkip:
		return -1
	}
	return 0
}

// apply moves c to the target clip of t.
// over is the non-negative amount of time by which the
// boundary was crossed, and atEnd tells whether the
// crossed boundary is the end of the clip.
func (t *Transition) apply(c *Controller, over float32, atEnd bool) {
	c.Clip = t.target
	cl := c.pool.Clip(t.target)
	first := c.pool.kp.Keyframe(cl.First)
	last := c.pool.kp.Keyframe(cl.Last)
	switch t.Behavior {
	case Forward:
		c.ClipTime = over
	case ForwardPause:
		c.ClipTime = 0
	case Reverse:
		c.ClipTime = cl.Duration - over
	case ReversePause:
		c.ClipTime = cl.Duration
	case ForwardSkip:
		c.ClipTime = first.Duration + over
	case ForwardFrame:
		c.ClipTime = first.Duration
	case ReverseSkip:
		c.ClipTime = cl.Duration - last.Duration - over
	case ReverseFrame:
		c.ClipTime = cl.Duration - last.Duration
	default:
		// Pause, also used for unknown behaviors.
		if atEnd {
			c.ClipTime = cl.Duration
		} else {
			c.ClipTime = 0
		}
	}
	c.Dir = t.Behavior.dir()
}
