// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package blend

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gviegas/anim/clip"
	"github.com/gviegas/anim/pose"
)

// Errors returned when parsing tree descriptions.
var (
	ErrFormat = errors.New(prefix + "invalid tree description")
	ErrEmpty  = errors.New(prefix + "empty tree description")
)

// Section markers.
const (
	markNodeCount = "NODECOUNT"
	markLeafCount = "LEAFCOUNT"
	markLeaves    = "LEAVES"
	markNodes     = "NODES"
)

// Keywords that introduce the input lists of a node.
const (
	keyClips    = "clips"
	keyControls = "controls"
	keyParams   = "params"
)

// Description is a parsed tree description.
//
// A description is a sequence of lines. Text following
// '#' is ignored, and so are empty lines. Lines may be
// terminated by "\n", "\r\n" or "\r". The first lines are
// the header:
//
//	NODECOUNT <number of nodes>
//	LEAFCOUNT <number of leaves>
//	LEAVES <leaf names...>
//	NODES
//
// Leaf names may span multiple lines, and leaves must not
// have controls. The header is
// followed by one line per node, in evaluation order:
//
//	<name> <type> [clips <clip...>] [controls <node...>] [params <param...>]
//
// Controls name other nodes, or give their indices.
// Params name externally owned parameters or are numeric
// constants.
type Description struct {
	Nodes []NodeSpec
	// Leaves are the indices of the nodes that were
	// declared as leaves.
	Leaves []int
	// Parents holds, for each node, the index of the
	// first node that declared it as a control, or -1.
	Parents []int
}

// Build creates a tree from d.
func (d *Description) Build(g *pose.Group, pool *clip.ClipPool, cfg *Config) (*Tree, error) {
	t, err := NewTree(g, pool, len(d.Nodes), cfg)
	if err != nil {
		return nil, err
	}
	for i := range d.Nodes {
		if err := t.Create(i, &d.Nodes[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// LoadFile parses the tree description in the named file.
func LoadFile(name string, params map[string]*float32) (*Description, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, params)
}

// scanLines is a bufio.SplitFunc that accepts any of
// "\n", "\r\n" and "\r" as line terminator.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		switch {
		case i+1 < len(data):
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		case atEOF:
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

type parser struct {
	sc     *bufio.Scanner
	line   int
	fields []string
}

// next advances to the next line that has fields.
func (p *parser) next() bool {
	for p.sc.Scan() {
		p.line++
		s := p.sc.Text()
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		if p.fields = strings.Fields(s); len(p.fields) > 0 {
			return true
		}
	}
	p.fields = nil
	return false
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrFormat, p.line, fmt.Sprintf(format, args...))
}

// count parses a marker line that carries a count.
func (p *parser) count(marker string) (int, error) {
	if len(p.fields) == 0 || p.fields[0] != marker {
		return 0, p.errorf("missing %s", marker)
	}
	if len(p.fields) != 2 {
		return 0, p.errorf("malformed %s", marker)
	}
	n, err := strconv.Atoi(p.fields[1])
	if err != nil || n < 0 {
		return 0, p.errorf("invalid %s %q", marker, p.fields[1])
	}
	return n, nil
}

// expect advances to the next line, treating its absence
// as a missing marker.
func (p *parser) expect(marker string) error {
	if !p.next() {
		if err := p.sc.Err(); err != nil {
			return err
		}
		return p.errorf("missing %s", marker)
	}
	return nil
}

func isMarker(s string) bool {
	switch s {
	case markNodeCount, markLeafCount, markLeaves, markNodes:
		return true
	}
	return false
}

// pending is a node whose references are not resolved.
type pending struct {
	line     int
	controls []string
	params   []string
}

// Parse parses a tree description from r.
// params maps the parameter names used in the description
// to their storage, which is referenced and not copied.
// On failure, no description is returned and the error
// matches either ErrEmpty or ErrFormat.
func Parse(r io.Reader, params map[string]*float32) (*Description, error) {
	sc := bufio.NewScanner(r)
	sc.Split(scanLines)
	p := &parser{sc: sc}
	if !p.next() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, ErrEmpty
	}

	nodeCount, err := p.count(markNodeCount)
	if err != nil {
		return nil, err
	}
	if nodeCount < 1 {
		return nil, p.errorf("%s less than 1", markNodeCount)
	}
	if err := p.expect(markLeafCount); err != nil {
		return nil, err
	}
	leafCount, err := p.count(markLeafCount)
	if err != nil {
		return nil, err
	}
	if leafCount > nodeCount {
		return nil, p.errorf("%s greater than %s", markLeafCount, markNodeCount)
	}
	if err := p.expect(markLeaves); err != nil {
		return nil, err
	}
	if p.fields[0] != markLeaves {
		return nil, p.errorf("missing %s", markLeaves)
	}
	leaves := slices.Clone(p.fields[1:])
	for len(leaves) < leafCount {
		if !p.next() || isMarker(p.fields[0]) {
			return nil, p.errorf("expected %d leaves, found %d", leafCount, len(leaves))
		}
		leaves = append(leaves, p.fields...)
	}
	if len(leaves) > leafCount {
		return nil, p.errorf("expected %d leaves, found %d", leafCount, len(leaves))
	}
	if err := p.expect(markNodes); err != nil {
		return nil, err
	}
	if len(p.fields) != 1 || p.fields[0] != markNodes {
		return nil, p.errorf("missing %s", markNodes)
	}

	specs := make([]NodeSpec, 0, nodeCount)
	refs := make([]pending, 0, nodeCount)
	for len(specs) < nodeCount {
		if !p.next() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, p.errorf("expected %d nodes, found %d", nodeCount, len(specs))
		}
		spec, ref, err := p.node()
		if err != nil {
			return nil, err
		}
		if slices.ContainsFunc(specs, func(s NodeSpec) bool { return s.Name == spec.Name }) {
			return nil, p.errorf("duplicate node %q", spec.Name)
		}
		specs = append(specs, spec)
		refs = append(refs, ref)
	}
	if p.next() {
		return nil, p.errorf("expected %d nodes, found more", nodeCount)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	find := func(name string) int {
		return slices.IndexFunc(specs, func(s NodeSpec) bool { return s.Name == name })
	}
	d := &Description{
		Nodes:   specs,
		Leaves:  make([]int, len(leaves)),
		Parents: make([]int, len(specs)),
	}
	for i := range d.Parents {
		d.Parents[i] = -1
	}
	for i := range refs {
		p.line = refs[i].line
		spec := &d.Nodes[i]
		for _, s := range refs[i].controls {
			c := find(s)
			if c < 0 {
				if c, err = strconv.Atoi(s); err != nil || c < 0 || c >= len(specs) {
					return nil, p.errorf("unknown control %q", s)
				}
			}
			spec.Controls = append(spec.Controls, c)
			if c != i && d.Parents[c] < 0 {
				d.Parents[c] = i
			}
		}
		for _, s := range refs[i].params {
			if u, ok := params[s]; ok {
				spec.Params = append(spec.Params, u)
				continue
			}
			f, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, p.errorf("unknown param %q", s)
			}
			u := float32(f)
			spec.Params = append(spec.Params, &u)
		}
	}
	for i, s := range leaves {
		switch d.Leaves[i] = find(s); {
		case d.Leaves[i] < 0:
			return nil, fmt.Errorf("%w: unknown leaf %q", ErrFormat, s)
		case len(d.Nodes[d.Leaves[i]].Controls) > 0:
			return nil, fmt.Errorf("%w: leaf %q has controls", ErrFormat, s)
		case slices.Contains(d.Leaves[:i], d.Leaves[i]):
			return nil, fmt.Errorf("%w: duplicate leaf %q", ErrFormat, s)
		}
	}
	return d, nil
}

// node parses the current line as a node declaration.
func (p *parser) node() (NodeSpec, pending, error) {
	f := p.fields
	if isMarker(f[0]) {
		return NodeSpec{}, pending{}, p.errorf("unexpected %s", f[0])
	}
	if len(f) < 2 {
		return NodeSpec{}, pending{}, p.errorf("node %q has no type", f[0])
	}
	typ, _ := ParseNodeType(f[1])
	spec := NodeSpec{Name: f[0], Type: typ}
	ref := pending{line: p.line}
	var list *[]string
	for _, s := range f[2:] {
		switch s {
		case keyClips:
			list = &spec.Clips
		case keyControls:
			list = &ref.controls
		case keyParams:
			list = &ref.params
		default:
			if list == nil {
				return NodeSpec{}, pending{}, p.errorf("unexpected %q", s)
			}
			*list = append(*list, s)
		}
	}
	return spec, ref, nil
}
