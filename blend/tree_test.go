// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package blend

import (
	"strings"
	"testing"
	"time"

	"github.com/gviegas/anim/clip"
	"github.com/gviegas/anim/linear"
	"github.com/gviegas/anim/pose"
	"github.com/gviegas/anim/skeleton"
)

// dummyAssets creates a two-joint pose group with the
// following poses:
//
//	0: identity (base)
//	1: translated by +1 along x
//	2: identity
//	3: translated by -1 along x
//
// and a clip pool whose clips "pos", "zero" and "neg"
// hold poses 1, 2 and 3, plus a clip "swing" that plays
// them in sequence, one second each.
func dummyAssets(t testing.TB) (*pose.Group, *clip.ClipPool) {
	h, err := skeleton.New([]skeleton.Node{{Name: "root", Parent: -1}, {Name: "child", Parent: 0}})
	if err != nil {
		t.Fatal(err)
	}
	g, err := pose.NewGroup(h, 4)
	if err != nil {
		t.Fatal(err)
	}
	for j := range h.Len() {
		g.Pose(1)[j].T = linear.V3{1, 0, 0}
		g.Pose(3)[j].T = linear.V3{-1, 0, 0}
	}
	kp, err := clip.NewKeyframePool(4)
	if err != nil {
		t.Fatal(err)
	}
	for i := range kp.Len() {
		kp.Init(i, 1, float32(i))
	}
	p, err := clip.NewClipPool(kp, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range [...]struct {
		name        string
		first, last int
	}{
		{"pos", 1, 1},
		{"zero", 2, 2},
		{"neg", 3, 3},
		{"swing", 1, 3},
	} {
		if err := p.Init(i, x.name, x.first, x.last); err != nil {
			t.Fatal(err)
		}
	}
	return g, p
}

// f32 returns a pointer to a new float32 holding x.
func f32(x float32) *float32 { return &x }

type observer struct {
	evals     int
	nodes     int
	fallbacks []string
}

func (o *observer) Evaluated(nodes int, _ time.Duration) {
	o.evals++
	o.nodes += nodes
}

func (o *observer) Fallback(typ NodeType, reason string) {
	o.fallbacks = append(o.fallbacks, typ.String()+": "+reason)
}

func stepTree(t *testing.T, count int) (*Tree, *observer) {
	g, p := dummyAssets(t)
	obs := new(observer)
	tr, err := NewTree(g, p, count, &Config{Mode: clip.Step, Observer: obs})
	if err != nil {
		t.Fatalf("NewTree:\nhave %#v\nwant nil", err)
	}
	return tr, obs
}

func TestNewTree(t *testing.T) {
	g, p := dummyAssets(t)
	tr, err := NewTree(g, p, 3, nil)
	if err != nil {
		t.Fatalf("NewTree:\nhave %#v\nwant nil", err)
	}
	if n := tr.Len(); n != 3 {
		t.Fatalf("Tree.Len\nhave %d\nwant 3", n)
	}
	for i := range tr.Len() {
		if _, ok := tr.Op(i).(IdentityOp); !ok {
			t.Fatalf("NewTree: Op(%d)\nhave %T\nwant IdentityOp", i, tr.Op(i))
		}
		if tr.Parent(i) != -1 || len(tr.Children(i)) != 0 {
			t.Fatalf("NewTree: node %d has links", i)
		}
	}
	for _, x := range [...]struct {
		g      *pose.Group
		count  int
		cfg    *Config
		reason string
	}{
		{nil, 1, nil, "nil pose.Group"},
		{g, 0, nil, "node count less than 1"},
		{g, 1, &Config{Base: 4}, "Config.Base out of bounds"},
		{g, 1, &Config{Mode: clip.Hermite + 1}, clip.ErrUnsupported.Error()},
	} {
		if _, err := NewTree(x.g, p, x.count, x.cfg); err == nil || !strings.HasSuffix(err.Error(), x.reason) {
			t.Fatalf("NewTree:\nhave %v\nwant %s", err, x.reason)
		}
	}
}

func TestLerpIdentity(t *testing.T) {
	tr, obs := stepTree(t, 3)
	for i, x := range [...]NodeSpec{
		{Name: "a", Type: Identity},
		{Name: "b", Type: Identity},
		{Name: "mix", Type: Lerp, Controls: []int{0, 1}, Params: []*float32{f32(0.5)}},
	} {
		if err := tr.Create(i, &x); err != nil {
			t.Fatalf("Tree.Create(%d):\nhave %#v\nwant nil", i, err)
		}
	}
	if _, ok := tr.Op(2).(*InterpOp); !ok {
		t.Fatalf("Tree.Create: Op\nhave %T\nwant *InterpOp", tr.Op(2))
	}
	tr.Evaluate()
	out := tr.Output()
	if !out.Sample.IsIdentity(0) || !out.Local.IsIdentity(0) {
		t.Fatalf("Tree.Evaluate: lerp of identities\nhave %v\nwant identity", out.Local)
	}
	id := linear.I()
	for i := range out.Object {
		if m := out.Object[i].Transform; !linear.ApproxEqualM(&m, &id, 1e-6) {
			t.Fatalf("Tree.Evaluate: Object[%d].Transform\nhave %v\nwant %v", i, m, id)
		}
	}
	if obs.evals != 1 || obs.nodes != 3 || len(obs.fallbacks) != 0 {
		t.Fatalf("Observer\nhave %d %d %v\nwant 1 3 []", obs.evals, obs.nodes, obs.fallbacks)
	}
}

func TestTriangular(t *testing.T) {
	tr, _ := stepTree(t, 4)
	u1, u2 := f32(0), f32(0)
	for i, x := range [...]NodeSpec{
		{Name: "p0", Type: CopyClip, Clips: []string{"pos"}},
		{Name: "p1", Type: CopyClip, Clips: []string{"zero"}},
		{Name: "p2", Type: CopyClip, Clips: []string{"neg"}},
		{Name: "tri", Type: Triangular, Controls: []int{0, 1, 2}, Params: []*float32{u1, u2}},
	} {
		if err := tr.Create(i, &x); err != nil {
			t.Fatal(err)
		}
	}
	for _, x := range [...]struct {
		u1, u2 float32
		want   int
	}{
		{1, 0, 0},
		{0, 1, 1},
		{0, 0, 2},
	} {
		// Parameters are referenced, not copied.
		*u1, *u2 = x.u1, x.u2
		tr.Evaluate()
		have, want := tr.Output().Sample, tr.State(x.want).Sample
		if !have.ApproxEqual(want, 0) {
			t.Fatalf("Tree.Evaluate: triangular(%v, %v)\nhave %v\nwant %v", x.u1, x.u2, have, want)
		}
	}
	if tr.Output().Sample[0].T[0] != -1 {
		t.Fatalf("Tree.Evaluate: triangular(0, 0) T\nhave %v\nwant -1", tr.Output().Sample[0].T)
	}
}

func TestOps(t *testing.T) {
	tr, obs := stepTree(t, 26)
	var grid []int
	for range 16 {
		grid = append(grid, 0)
	}
	specs := [...]NodeSpec{
		{Type: CopyClip, Clips: []string{"pos"}},
		{Type: CopyClip, Clips: []string{"neg"}},
		{Type: Identity},
		{Type: Copy, Controls: []int{0}},
		{Type: Negate, Controls: []int{0}},
		{Type: Concat, Controls: []int{0, 0}},
		{Type: Deconcat, Controls: []int{0, 1}},
		{Type: Convert, Controls: []int{0}},
		{Type: Revert, Controls: []int{7}},
		{Type: Scale, Controls: []int{0}, Params: []*float32{f32(2)}},
		{Type: Biscale, Controls: []int{0}, Params: []*float32{f32(-1)}},
		{Type: Nearest, Controls: []int{0, 1}, Params: []*float32{f32(0.5)}},
		{Type: Lerp, Controls: []int{0, 1}, Params: []*float32{f32(0.25)}},
		{Type: EaseInOut, Controls: []int{0, 1}, Params: []*float32{f32(0)}},
		{Type: Triangular, Controls: []int{0, 1, 2}, Params: []*float32{f32(0.5), f32(0.5)}},
		{Type: Cubic, Controls: []int{0, 0, 1, 1}, Params: []*float32{f32(1)}},
		{Type: Binearest, Controls: []int{0, 1, 1, 0}, Params: []*float32{f32(0), f32(1), f32(1)}},
		{Type: Bilerp, Controls: []int{0, 1, 1, 0}, Params: []*float32{f32(0.5), f32(0.5), f32(0.5)}},
		{Type: Bicubic, Controls: grid, Params: []*float32{f32(0.2), f32(0.4), f32(0.6), f32(0.8), f32(0.5)}},
		{Type: CopyClip, Clips: []string{"neg"}},
		{Type: AddClip, Clips: []string{"pos", "pos"}},
		{Type: LerpClip, Clips: []string{"pos", "neg"}, Params: []*float32{f32(0.25)}},
		{Type: ScaleClip, Clips: []string{"pos"}, Params: []*float32{f32(0.5)}},
		{Type: NegateClip, Clips: []string{"pos"}},
		{Type: Lerp, Controls: []int{20, 23}, Params: []*float32{f32(0.5)}},
		{Type: Copy, Controls: []int{24}},
	}
	want := [len(specs)]float32{1, -1, 0, 1, -1, 2, 2, 1, 1, 2, -1, -1, 0.5, 1, 0, -1, 1, 0, 1, -1, 2, 0.5, 0.5, -1, 0.5, 0.5}
	for i := range specs {
		if err := tr.Create(i, &specs[i]); err != nil {
			t.Fatalf("Tree.Create(%d):\nhave %#v\nwant nil", i, err)
		}
		if typ := tr.Op(i).Type(); typ != specs[i].Type {
			t.Fatalf("Tree.Create(%d): Op.Type\nhave %v\nwant %v", i, typ, specs[i].Type)
		}
	}
	if len(obs.fallbacks) != 0 {
		t.Fatalf("Tree.Create: unexpected fallbacks %v", obs.fallbacks)
	}
	tr.Evaluate()
	for i := range specs {
		s := tr.State(i).Sample
		for j := range s {
			if d := s[j].T[0] - want[i]; d > 1e-5 || d < -1e-5 {
				t.Fatalf("Tree.Evaluate: %v node %d joint %d\nhave %v\nwant %v", specs[i].Type, i, j, s[j].T[0], want[i])
			}
		}
	}
}

func TestRevert(t *testing.T) {
	tr, _ := stepTree(t, 7)
	specs := [...]NodeSpec{
		{Type: CopyClip, Clips: []string{"pos"}},
		{Type: CopyClip, Clips: []string{"neg"}},
		{Type: Lerp, Controls: []int{0, 1}, Params: []*float32{f32(0.25)}},
		{Type: Revert, Controls: []int{2}},
		{Type: Scale, Controls: []int{0}, Params: []*float32{f32(3)}},
		{Type: Revert, Controls: []int{4}},
		{Type: Revert, Controls: []int{1}},
	}
	for i := range specs {
		if err := tr.Create(i, &specs[i]); err != nil {
			t.Fatalf("Tree.Create(%d):\nhave %#v\nwant nil", i, err)
		}
	}
	for range 2 {
		tr.Evaluate()
		for _, x := range [...]struct {
			node int
			want float32
		}{
			{3, 0.5},
			{5, 3},
			{6, -1},
		} {
			s := tr.State(x.node).Sample
			for j := range s {
				if d := s[j].T[0] - x.want; d > 1e-5 || d < -1e-5 {
					t.Fatalf("Tree.Evaluate: Revert node %d joint %d\nhave %v\nwant %v", x.node, j, s[j].T[0], x.want)
				}
			}
		}
	}
}

func TestFallback(t *testing.T) {
	tr, obs := stepTree(t, 8)
	for i, x := range [...]NodeSpec{
		{Name: "ok", Type: CopyClip, Clips: []string{"pos"}},
		{Name: "unknown", Type: Invalid},
		{Name: "forward", Type: Copy, Controls: []int{3}},
		{Name: "self", Type: Copy, Controls: []int{3}},
		{Name: "noparam", Type: Lerp, Controls: []int{0, 1}},
		{Name: "nilparam", Type: Scale, Controls: []int{0}, Params: []*float32{nil}},
		{Name: "noclip", Type: CopyClip, Clips: []string{"jump"}},
		{Name: "arity", Type: Copy, Controls: []int{0, 1}},
	} {
		if err := tr.Create(i, &x); err != nil {
			t.Fatalf("Tree.Create(%d):\nhave %#v\nwant nil", i, err)
		}
		_, isID := tr.Op(i).(IdentityOp)
		if i == 0 && isID || i > 0 && !isID {
			t.Fatalf("Tree.Create(%d): Op\nhave %T", i, tr.Op(i))
		}
	}
	if n := len(obs.fallbacks); n != 7 {
		t.Fatalf("Observer.Fallback: count\nhave %d\nwant 7", n)
	}
	for i, x := range [...]string{
		"NodeType(255): unrecognized node type",
		"copy: control does not precede node",
		"copy: control does not precede node",
		"lerp: missing params",
		"scale: nil param",
		"copyclip: unknown clip jump",
		"copy: control count mismatch",
	} {
		if obs.fallbacks[i] != x {
			t.Fatalf("Observer.Fallback\nhave %s\nwant %s", obs.fallbacks[i], x)
		}
	}
	tr.Evaluate()
	for i := 1; i < tr.Len(); i++ {
		if !tr.State(i).Local.IsIdentity(0) {
			t.Fatalf("Tree.Evaluate: node %d\nhave %v\nwant identity", i, tr.State(i).Local)
		}
	}

	for _, x := range [...]struct {
		i      int
		reason string
	}{
		{-1, "node index out of bounds"},
		{8, "node index out of bounds"},
		{0, "node already created"},
		{1, "node already created"},
	} {
		if err := tr.Create(x.i, &NodeSpec{}); err == nil || !strings.HasSuffix(err.Error(), x.reason) {
			t.Fatalf("Tree.Create(%d):\nhave %v\nwant %s", x.i, err, x.reason)
		}
	}
	if err := tr.Create(2, nil); err == nil || !strings.HasSuffix(err.Error(), "nil NodeSpec") {
		t.Fatalf("Tree.Create(nil):\nhave %v\nwant nil NodeSpec", err)
	}

	g, _ := dummyAssets(t)
	tr, _ = NewTree(g, nil, 1, nil)
	tr.Create(0, &NodeSpec{Type: CopyClip, Clips: []string{"pos"}})
	if _, ok := tr.Op(0).(IdentityOp); !ok {
		t.Fatalf("Tree.Create: no clip pool\nhave %T\nwant IdentityOp", tr.Op(0))
	}
}

// probeOp records which nodes were evaluated before it.
type probeOp struct {
	seen []bool
}

func (*probeOp) Type() NodeType { return Identity }

func (o *probeOp) eval(t *Tree, dst pose.Hierarchical) {
	o.seen = o.seen[:0]
	for i := range t.Len() {
		o.seen = append(o.seen, t.Evaluated(i))
	}
	dst.Identity()
}

func TestEvaluationOrder(t *testing.T) {
	tr, _ := stepTree(t, 5)
	probes := make([]*probeOp, tr.Len())
	for i := range probes {
		probes[i] = new(probeOp)
		tr.nodes[i].op = probes[i]
	}
	for range 2 {
		tr.Evaluate()
		for k, p := range probes {
			for i, ok := range p.seen {
				if ok != (i < k) {
					t.Fatalf("Tree.Evaluate: node %d saw Evaluated(%d) = %t", k, i, ok)
				}
			}
		}
		for i := range tr.Len() {
			if !tr.Evaluated(i) {
				t.Fatalf("Tree.Evaluated(%d)\nhave false\nwant true", i)
			}
		}
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("Tree.input: expected panic on unevaluated node")
			}
		}()
		tr.evaluated.Clear()
		tr.input(0)
	}()
}

func TestLinks(t *testing.T) {
	tr, _ := stepTree(t, 5)
	for i, x := range [...]NodeSpec{
		{Type: CopyClip, Clips: []string{"pos"}},
		{Type: CopyClip, Clips: []string{"neg"}},
		{Type: Concat, Controls: []int{0, 0}},
		{Type: Lerp, Controls: []int{2, 1}, Params: []*float32{f32(0.5)}},
		{Type: Deconcat, Controls: []int{3, 0}},
	} {
		tr.Create(i, &x)
	}
	for i, x := range [...]struct {
		parent   int
		children []int
	}{
		{2, nil},
		{3, nil},
		{3, []int{0}},
		{4, []int{2, 1}},
		{-1, []int{3, 0}},
	} {
		if n := tr.Parent(i); n != x.parent {
			t.Fatalf("Tree.Parent(%d)\nhave %d\nwant %d", i, n, x.parent)
		}
		c := tr.Children(i)
		if len(c) != len(x.children) {
			t.Fatalf("Tree.Children(%d)\nhave %v\nwant %v", i, c, x.children)
		}
		for j := range c {
			if c[j] != x.children[j] {
				t.Fatalf("Tree.Children(%d)\nhave %v\nwant %v", i, c, x.children)
			}
		}
	}
	if l := tr.Leaves(); len(l) != 2 || l[0] != 0 || l[1] != 1 {
		t.Fatalf("Tree.Leaves\nhave %v\nwant [0 1]", l)
	}
	if tr.Output() != tr.State(4) {
		t.Fatal("Tree.Output: not the last node state")
	}
	if n := tr.Find("node3"); n != 3 {
		t.Fatalf("Tree.Find\nhave %d\nwant 3", n)
	}
}

func TestUpdate(t *testing.T) {
	g, p := dummyAssets(t)
	tr, err := NewTree(g, p, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	tr.Create(0, &NodeSpec{Name: "swing", Type: CopyClip, Clips: []string{"swing"}})
	ctrls := tr.Controllers(0)
	if len(ctrls) != 1 || ctrls[0].Name != "swing.swing" {
		t.Fatalf("Tree.Controllers\nhave %v\nwant [swing.swing]", ctrls)
	}
	for _, x := range [...]struct {
		dt   float32
		want float32
	}{
		{0.5, 0.5},
		{0.5, 0},
		{0.75, -0.75},
		{10, -1},
	} {
		tr.Update(x.dt)
		if v := tr.Output().Local[1].T[0]; v-x.want > 1e-5 || x.want-v > 1e-5 {
			t.Fatalf("Tree.Update(%v): T\nhave %v\nwant %v", x.dt, v, x.want)
		}
	}
	// Object space accumulates along the hierarchy.
	pt := linear.Point(&tr.Output().Object[1].Transform, &linear.V3{})
	if pt[0] != -2 {
		t.Fatalf("Tree.Update: child position\nhave %v\nwant [-2 0 0]", pt)
	}
}
