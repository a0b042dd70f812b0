// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package blend implements hierarchical blend trees.
//
// A tree is an arena of nodes evaluated in storage order.
// Each node binds an operation to the outputs of earlier
// nodes, to sampled clips and to externally owned scalar
// parameters, and produces one pose.State per evaluation.
package blend

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gviegas/anim/clip"
	"github.com/gviegas/anim/internal/bitvec"
	"github.com/gviegas/anim/internal/logging"
	"github.com/gviegas/anim/kinematics"
	"github.com/gviegas/anim/pose"
)

const prefix = "blend: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// Observer is notified of tree activity.
// Its methods are called synchronously.
type Observer interface {
	// Evaluated is called after every evaluation of a
	// tree with the number of nodes evaluated.
	Evaluated(nodes int, elapsed time.Duration)
	// Fallback is called when a node of type typ is
	// replaced by the identity operation.
	Fallback(typ NodeType, reason string)
}

// Config configures a tree.
type Config struct {
	// Mode is the interpolation used when sampling clips.
	// The default is clip.Lerp.
	Mode clip.Mode
	// Base is the index of the pose of the group that
	// every node output is concatenated with. Negative
	// values disable the base pose. The default is 0.
	Base int
	// Observer, if not nil, is notified of evaluations
	// and identity fallbacks.
	Observer Observer
}

// DefaultConfig returns the default tree configuration.
func DefaultConfig() Config { return Config{Mode: clip.Lerp} }

type node struct {
	name    string
	op      Op
	state   *pose.State
	ctrls   []*clip.Controller
	created bool
}

// Tree is a blend tree.
type Tree struct {
	group     *pose.Group
	pool      *clip.ClipPool
	base      pose.Hierarchical
	mode      clip.Mode
	obs       Observer
	nodes     []node
	parents   []int
	children  [][]int
	evaluated *bitvec.V[uint64]
	scratch   [2]pose.Hierarchical
}

// NewTree creates a tree of count identity nodes over the
// poses of g. pool provides the clips sampled by clip
// nodes and may be nil if no such node is created.
func NewTree(g *pose.Group, pool *clip.ClipPool, count int, cfg *Config) (*Tree, error) {
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	switch {
	case g == nil:
		return nil, newErr("nil pose.Group")
	case count < 1:
		return nil, newErr("node count less than 1")
	case cfg.Base >= g.Len():
		return nil, newErr("Config.Base out of bounds")
	case cfg.Mode > clip.Hermite:
		return nil, clip.ErrUnsupported
	}
	h := g.Hierarchy()
	t := &Tree{
		group:     g,
		pool:      pool,
		mode:      cfg.Mode,
		obs:       cfg.Observer,
		nodes:     make([]node, count),
		parents:   make([]int, count),
		children:  make([][]int, count),
		evaluated: bitvec.New[uint64](count),
	}
	if cfg.Base >= 0 {
		t.base = g.Pose(cfg.Base)
	}
	scratch := make(pose.Hierarchical, h.Len()*2)
	scratch.Identity()
	t.scratch = [2]pose.Hierarchical{scratch[:h.Len():h.Len()], scratch[h.Len():]}
	for i := range t.nodes {
		s, err := pose.NewState(h)
		if err != nil {
			return nil, err
		}
		t.nodes[i] = node{name: fmt.Sprintf("node%d", i), op: IdentityOp{}, state: s}
		t.parents[i] = -1
	}
	return t, nil
}

// Create populates the ith node of t from spec.
// A spec that names an unknown type, refers to nodes not
// preceding i, or lacks clips or parameters creates an
// identity node instead. This is not an error.
// Each node can only be created once.
func (t *Tree) Create(i int, spec *NodeSpec) error {
	switch {
	case i < 0 || i >= len(t.nodes):
		return newErr("node index out of bounds")
	case spec == nil:
		return newErr("nil NodeSpec")
	case t.nodes[i].created:
		return newErr("node already created")
	}
	n := &t.nodes[i]
	if spec.Name != "" {
		n.name = spec.Name
	}
	n.created = true
	op, ctrls, reason := t.bind(i, spec)
	if reason != "" {
		logging.Logger().Warn(prefix+"identity fallback", "node", n.name, "index", i, "type", spec.Type, "reason", reason)
		if t.obs != nil {
			t.obs.Fallback(spec.Type, reason)
		}
		n.op = IdentityOp{}
		return nil
	}
	n.op = op
	n.ctrls = ctrls
	for _, c := range spec.Controls {
		if slices.Contains(t.children[i], c) {
			continue
		}
		t.children[i] = append(t.children[i], c)
		if t.parents[c] < 0 {
			t.parents[c] = i
		}
	}
	logging.Logger().Debug(prefix+"node created", "node", n.name, "index", i, "type", spec.Type)
	return nil
}

// bind creates the operation described by spec for the
// ith node. It returns a non-empty reason if the
// operation cannot be created.
func (t *Tree) bind(i int, spec *NodeSpec) (Op, []*clip.Controller, string) {
	typ := spec.Type
	if typ >= numNodeType {
		return nil, nil, "unrecognized node type"
	}
	a := typ.arity()
	switch {
	case len(spec.Controls) > MaxControl:
		return nil, nil, "too many controls"
	case len(spec.Params) > MaxParam:
		return nil, nil, "too many params"
	case len(spec.Controls) != a.controls:
		return nil, nil, "control count mismatch"
	case len(spec.Params) < a.params:
		return nil, nil, "missing params"
	case len(spec.Clips) < a.clips:
		return nil, nil, "missing clips"
	}
	for _, c := range spec.Controls {
		if c < 0 || c >= i {
			return nil, nil, "control does not precede node"
		}
	}
	u := spec.Params[:a.params]
	if slices.Contains(u, nil) {
		return nil, nil, "nil param"
	}
	var ctrls []*clip.Controller
	if a.clips > 0 {
		if t.pool == nil {
			return nil, nil, "no clip pool"
		}
		ctrls = make([]*clip.Controller, a.clips)
		for j, name := range spec.Clips[:a.clips] {
			k := t.pool.Find(name)
			if k < 0 {
				return nil, nil, "unknown clip " + name
			}
			c, err := clip.NewController(t.nodes[i].name+"."+name, t.pool, k)
			if err != nil {
				return nil, nil, err.Error()
			}
			ctrls[j] = c
		}
	}
	in := spec.Controls

	var op Op
	switch typ {
	case Identity:
		op = IdentityOp{}
	case Copy, Negate, Convert, Revert:
		op = &UnaryOp{typ, in[0]}
	case Scale, Biscale:
		op = &ScaleOp{typ, in[0], u[0]}
	case Concat, Deconcat:
		op = &BinaryOp{typ, [2]int(in)}
	case Nearest, Lerp, EaseInOut:
		op = &InterpOp{typ, [2]int(in), u[0]}
	case Triangular:
		op = &TriangularOp{[3]int(in), [2]*float32(u)}
	case Cubic:
		op = &CubicOp{[4]int(in), u[0]}
	case Binearest, Bilerp:
		op = &BilinearOp{typ, [4]int(in), [3]*float32(u)}
	case Bicubic:
		op = &BicubicOp{[16]int(in), [5]*float32(u)}
	case CopyClip, NegateClip:
		op = &ClipOp{typ, ctrls[0]}
	case ScaleClip:
		op = &ScaleClipOp{ctrls[0], u[0]}
	case AddClip:
		op = &AddClipOp{[2]*clip.Controller(ctrls)}
	case LerpClip:
		op = &LerpClipOp{[2]*clip.Controller(ctrls), u[0]}
	}
	return op, ctrls, ""
}

// input returns the output pose of the ith node.
// It panics if the node was not evaluated yet in the
// current evaluation.
func (t *Tree) input(i int) pose.Hierarchical {
	if !t.evaluated.IsSet(i) {
		panic(prefix + "read of unevaluated node")
	}
	return t.nodes[i].state.Sample
}

// sample samples c into the kth scratch pose.
func (t *Tree) sample(k int, c *clip.Controller) pose.Hierarchical {
	t.sampleInto(t.scratch[k], c)
	return t.scratch[k]
}

func (t *Tree) sampleInto(dst pose.Hierarchical, c *clip.Controller) {
	// The mode is validated in NewTree.
	_ = c.SamplePose(dst, t.group, t.mode)
}

// Update advances every clip controller of t by dt
// seconds and then evaluates t.
func (t *Tree) Update(dt float32) {
	for i := range t.nodes {
		for _, c := range t.nodes[i].ctrls {
			c.Update(dt)
		}
	}
	t.Evaluate()
}

// Evaluate evaluates every node of t in storage order.
// For each node, the bound operation writes the node's
// sample pose, which is then concatenated with the base
// pose, converted into local transforms and resolved into
// object space.
func (t *Tree) Evaluate() {
	var start time.Time
	if t.obs != nil {
		start = time.Now()
	}
	t.evaluated.Clear()
	for i := range t.nodes {
		n := &t.nodes[i]
		n.op.eval(t, n.state.Sample)
		n.state.Resolve(t.base, t.group)
		kinematics.SolveForward(n.state)
		t.evaluated.Set(i)
	}
	if t.obs != nil {
		t.obs.Evaluated(len(t.nodes), time.Since(start))
	}
}

// Len returns the number of nodes in t.
func (t *Tree) Len() int { return len(t.nodes) }

// Group returns the pose group of t.
func (t *Tree) Group() *pose.Group { return t.group }

// Name returns the name of the ith node.
func (t *Tree) Name(i int) string { return t.nodes[i].name }

// Find returns the index of the node named name, or -1
// if no such node exists.
func (t *Tree) Find(name string) int {
	for i := range t.nodes {
		if t.nodes[i].name == name {
			return i
		}
	}
	return -1
}

// Op returns the operation bound to the ith node.
func (t *Tree) Op(i int) Op { return t.nodes[i].op }

// State returns the output state of the ith node.
func (t *Tree) State(i int) *pose.State { return t.nodes[i].state }

// Controllers returns the clip controllers of the ith
// node, in the order its clips were named.
func (t *Tree) Controllers(i int) []*clip.Controller { return t.nodes[i].ctrls }

// Parent returns the index of the first node that uses
// the ith node as a control, or -1 if there is none.
func (t *Tree) Parent(i int) int { return t.parents[i] }

// Children returns the distinct control nodes of the ith
// node. The returned slice must not be modified.
func (t *Tree) Children(i int) []int { return t.children[i] }

// Leaves returns the nodes that have no control nodes.
func (t *Tree) Leaves() []int {
	var s []int
	for i := range t.children {
		if len(t.children[i]) == 0 {
			s = append(s, i)
		}
	}
	return s
}

// Evaluated reports whether the ith node was evaluated
// in the current evaluation.
func (t *Tree) Evaluated(i int) bool { return t.evaluated.IsSet(i) }

// Output returns the state of the last node of t.
func (t *Tree) Output() *pose.State { return t.nodes[len(t.nodes)-1].state }
