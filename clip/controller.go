// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package clip

import (
	"errors"
	"math"
	"strconv"

	"github.com/gviegas/anim/linear"
	"github.com/gviegas/anim/pose"
)

// ErrUnsupported is returned when evaluating with an
// unknown interpolation mode.
var ErrUnsupported = errors.New(prefix + "unsupported interpolation mode")

// Mode is the interpolation used when evaluating a
// controller.
type Mode uint8

// Interpolation modes.
const (
	// Step uses the value of the current keyframe.
	Step Mode = iota
	// Nearest uses the value of the current or next
	// keyframe, whichever is closer.
	Nearest
	// Lerp interpolates linearly between the current and
	// next keyframes.
	Lerp
	// CatmullRom interpolates through the previous,
	// current, next and second next keyframes.
	CatmullRom
	// Hermite interpolates between the current and next
	// keyframes using their handles as tangents.
	Hermite
)

var modeNames = [...]string{
	Step:       "step",
	Nearest:    "nearest",
	Lerp:       "lerp",
	CatmullRom: "catmullrom",
	Hermite:    "hermite",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode returns the mode named s.
func ParseMode(s string) (Mode, bool) {
	for i, x := range modeNames {
		if x == s {
			return Mode(i), true
		}
	}
	return 0, false
}

// maxTransitions bounds the number of transitions taken
// by a single update.
const maxTransitions = 64

// Controller is a playhead over the clips of a pool.
type Controller struct {
	Name string
	pool *ClipPool
	// Clip is the index of the current clip.
	Clip          int
	ClipTime      float32
	ClipParam     float32
	Keyframe      int
	KeyframeTime  float32
	KeyframeParam float32
	// Dir is the playback direction: -1, 0 or 1.
	Dir   int
	Speed float32
	// Overstep is the amount of time by which the last
	// transition crossed its clip boundary.
	Overstep float32
}

// NewController creates a controller that plays clip of
// pool forward at unit speed.
func NewController(name string, pool *ClipPool, clip int) (*Controller, error) {
	if pool == nil {
		return nil, newErr("nil ClipPool")
	}
	c := &Controller{Name: name, pool: pool, Dir: 1, Speed: 1}
	if err := c.SetClip(clip); err != nil {
		return nil, err
	}
	return c, nil
}

// Pool returns the clip pool of c.
func (c *Controller) Pool() *ClipPool { return c.pool }

// SetClip moves c to the start of the given clip, or to
// its end when c plays in reverse.
func (c *Controller) SetClip(clip int) error {
	if clip < 0 || clip >= c.pool.Len() {
		return newErr("clip index out of bounds")
	}
	c.Clip = clip
	if c.Dir < 0 {
		c.ClipTime = c.pool.clips[clip].Duration
	} else {
		c.ClipTime = 0
	}
	c.Overstep = 0
	c.derive()
	return nil
}

// SetPlayback sets the direction and speed of c.
// dir is reduced to its sign.
func (c *Controller) SetPlayback(dir int, speed float32) {
	switch {
	case dir > 0:
		c.Dir = 1
	case dir < 0:
		c.Dir = -1
	default:
		c.Dir = 0
	}
	c.Speed = speed
}

// Update advances c by dt seconds, taking clip
// transitions as needed.
func (c *Controller) Update(dt float32) {
	c.ClipTime += dt * c.Speed * float32(c.Dir)
	for i := 0; i < maxTransitions; i++ {
		cl := &c.pool.clips[c.Clip]
		switch {
		case c.ClipTime > cl.Duration:
			c.Overstep = c.ClipTime - cl.Duration
			cl.Forward.apply(c, c.Overstep, true)
		case c.ClipTime < 0:
			c.Overstep = -c.ClipTime
			cl.Reverse.apply(c, c.Overstep, false)
		default:
			c.derive()
			return
		}
	}
	cl := &c.pool.clips[c.Clip]
	c.ClipTime = max(0, min(c.ClipTime, cl.Duration))
	c.derive()
}

// derive computes the keyframe state of c from its clip
// time.
func (c *Controller) derive() {
	cl := &c.pool.clips[c.Clip]
	k, start := cl.locate(c.ClipTime)
	kf := &c.pool.kp.kfs[k]
	c.ClipParam = c.ClipTime * cl.InvDuration
	c.Keyframe = k
	c.KeyframeTime = c.ClipTime - start
	c.KeyframeParam = c.KeyframeTime * kf.InvDuration
}

// neighbors returns the indices of the keyframes before,
// at, after and two after the current one. Keyframes
// beyond the current clip are found through its
// transitions.
func (c *Controller) neighbors() (kp, k0, k1, kn int) {
	k0 = c.Keyframe
	_, kp = c.pool.prev(c.Clip, k0)
	i, k1 := c.pool.next(c.Clip, k0)
	_, kn = c.pool.next(i, k1)
	return
}

// Evaluate returns the value at c's current position,
// interpolated as m dictates.
func (c *Controller) Evaluate(m Mode) (float32, error) {
	kfs := c.pool.kp.kfs
	kp, k0, k1, kn := c.neighbors()
	u := c.KeyframeParam
	x0, x1 := kfs[k0].Sample.Value, kfs[k1].Sample.Value
	switch m {
	case Step:
		return x0, nil
	case Nearest:
		return linear.Nearest(x0, x1, u), nil
	case Lerp:
		return linear.Lerp(x0, x1, u), nil
	case CatmullRom:
		return linear.CatmullRom(kfs[kp].Sample.Value, x0, x1, kfs[kn].Sample.Value, u), nil
	case Hermite:
		return linear.Hermite(x0, kfs[k0].Handle.Value, x1, kfs[k1].Handle.Value, u), nil
	}
	return 0, ErrUnsupported
}

// poseIndex converts a keyframe value into an index of g.
func poseIndex(g *pose.Group, v float32) int {
	return g.Clamp(int(math.Round(float64(v))))
}

// SamplePose writes the pose at c's current position
// into dst. The value of each keyframe names a pose of g.
// Hermite interpolation has no pose tangents and is
// evaluated as CatmullRom.
func (c *Controller) SamplePose(dst pose.Hierarchical, g *pose.Group, m Mode) error {
	kfs := c.pool.kp.kfs
	kp, k0, k1, kn := c.neighbors()
	u := c.KeyframeParam
	p0 := g.Pose(poseIndex(g, kfs[k0].Sample.Value))
	p1 := g.Pose(poseIndex(g, kfs[k1].Sample.Value))
	switch m {
	case Step:
		dst.Copy(p0)
	case Nearest:
		dst.Nearest(p0, p1, u)
	case Lerp:
		dst.Lerp(p0, p1, u)
	case CatmullRom, Hermite:
		pp := g.Pose(poseIndex(g, kfs[kp].Sample.Value))
		pn := g.Pose(poseIndex(g, kfs[kn].Sample.Value))
		dst.Cubic(pp, p0, p1, pn, u)
	default:
		return ErrUnsupported
	}
	return nil
}
