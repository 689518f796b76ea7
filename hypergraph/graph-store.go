package hypergraph

import (
	"github.com/mankinskin/seqraph/seqraph"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

type (
	VertexIndex   = seqraph.VertexIndex
	TokenPosition = seqraph.TokenPosition
	Child         = seqraph.Child
	Pattern       = seqraph.Pattern
	VertexData    = seqraph.VertexData
)

type vertex[T comparable] struct {
	key  seqraph.VertexKey[T]
	data seqraph.VertexData
}

// Graph is an append-only hypergraph of token and pattern vertices.
//
// The arena (verts) is the sole owner of all VertexData; parent and child links are plain indices into it.
// Token values and pattern ids are looked up through separate maps.
type Graph[T comparable] struct {
	opts      seqraph.GraphOpts
	verts     []vertex[T]
	tokens    map[T]VertexIndex
	patterns  map[seqraph.PatternID]VertexIndex
	patternID seqraph.PatternID
}

var (
	_ seqraph.VertexReader[rune] = (*Graph[rune])(nil)
	_ seqraph.Matcher            = (*Graph[rune])(nil)
	_ seqraph.Splitter           = (*Graph[rune])(nil)
	_ seqraph.DotWriter          = (*Graph[rune])(nil)
)

func NewGraph[T comparable](opts seqraph.GraphOpts) *Graph[T] {
	return &Graph[T]{
		opts:     opts,
		tokens:   make(map[T]VertexIndex),
		patterns: make(map[seqraph.PatternID]VertexIndex),
	}
}

func (g *Graph[T]) Opts() seqraph.GraphOpts {
	return g.opts
}

func (g *Graph[T]) Len() int {
	return len(g.verts)
}

// NextPatternID issues a PatternID not yet used by this graph.
func (g *Graph[T]) NextPatternID() seqraph.PatternID {
	id := g.patternID
	g.patternID++
	return id
}

func (g *Graph[T]) expect(index VertexIndex) *vertex[T] {
	if index < 0 || int(index) >= len(g.verts) {
		panic(errors.Wrapf(seqraph.ErrInvalidVertexIndex, "index %d (graph %q has %d vertices)", index, g.opts.Name, len(g.verts)))
	}
	return &g.verts[index]
}

func (g *Graph[T]) VertexKey(index VertexIndex) seqraph.VertexKey[T] {
	return g.expect(index).key
}

func (g *Graph[T]) VertexData(index VertexIndex) *VertexData {
	return &g.expect(index).data
}

// Vertex returns both the key and data of the vertex at index.
func (g *Graph[T]) Vertex(index VertexIndex) (seqraph.VertexKey[T], *VertexData) {
	v := g.expect(index)
	return v.key, &v.data
}

func (g *Graph[T]) TokenIndex(token T) (VertexIndex, bool) {
	index, exists := g.tokens[token]
	return index, exists
}

// Token returns the token value of the atomic vertex at index.
func (g *Graph[T]) Token(index VertexIndex) (token T, err error) {
	v := g.expect(index)
	if !v.key.IsToken {
		return token, errors.Wrapf(seqraph.ErrNotAToken, "vertex %d", index)
	}
	return v.key.Token, nil
}

// TokenData returns the data of the atomic vertex for the given token, if any.
func (g *Graph[T]) TokenData(token T) (*VertexData, bool) {
	index, exists := g.tokens[token]
	if !exists {
		return nil, false
	}
	return &g.verts[index].data, true
}

// Child returns a Child referencing the vertex at index.
func (g *Graph[T]) Child(index VertexIndex) Child {
	return seqraph.NewChild(index, g.expect(index).data.Width)
}

// InsertToken returns the index of the atomic vertex for token, creating a width 1 leaf if needed.
func (g *Graph[T]) InsertToken(token T) VertexIndex {
	if index, exists := g.tokens[token]; exists {
		return index
	}
	return g.InsertVertex(seqraph.TokenKey(token), seqraph.NewVertexData(1))
}

// InsertVertex stores data under key.  If key was already inserted, its data is overwritten and the existing index is returned.
func (g *Graph[T]) InsertVertex(key seqraph.VertexKey[T], data *VertexData) VertexIndex {
	var (
		index  VertexIndex
		exists bool
	)
	if key.IsToken {
		index, exists = g.tokens[key.Token]
	} else {
		index, exists = g.patterns[key.Pattern]
	}
	if exists {
		g.verts[index].data = *data
		return index
	}

	index = VertexIndex(len(g.verts))
	g.verts = append(g.verts, vertex[T]{
		key:  key,
		data: *data,
	})
	if key.IsToken {
		g.tokens[key.Token] = index
	} else {
		g.patterns[key.Pattern] = index
		if key.Pattern >= g.patternID {
			g.patternID = key.Pattern + 1
		}
	}
	return index
}

// TokenPattern returns the tokens as a Pattern of leaf children, inserting unknown tokens.
func (g *Graph[T]) TokenPattern(tokens ...T) Pattern {
	pat := make(Pattern, len(tokens))
	for i, token := range tokens {
		pat[i] = g.Child(g.InsertToken(token))
	}
	return pat
}

// AddParent records in child's data that it occurs at element pos of decomposition pattern of parent.
func (g *Graph[T]) AddParent(child, parent VertexIndex, pattern, pos int) {
	width := g.expect(parent).data.Width
	g.expect(child).data.AddParent(parent, width, pattern, pos)
}

func (g *Graph[T]) checkPattern(pat Pattern) error {
	if len(pat) < 2 {
		return seqraph.ErrEmptyPattern
	}
	for i, ci := range pat {
		if w := g.expect(ci.Index).data.Width; w != ci.Width {
			return errors.Wrapf(seqraph.ErrWidthMismatch, "element %d (vertex %d) has width %d, cached as %d", i, ci.Index, w, ci.Width)
		}
	}
	return nil
}

// InsertPattern creates a composite vertex with the given decompositions and wires the parent links of every element.
//
// All decompositions must have two or more elements and the same width.
func (g *Graph[T]) InsertPattern(pats ...Pattern) (VertexIndex, error) {
	if len(pats) == 0 {
		return 0, seqraph.ErrEmptyPattern
	}
	width := pats[0].Width()
	for i, pat := range pats {
		if err := g.checkPattern(pat); err != nil {
			return 0, errors.Wrapf(err, "decomposition %d", i)
		}
		if w := pat.Width(); w != width {
			return 0, errors.Wrapf(seqraph.ErrWidthMismatch, "decomposition %d has width %d, expected %d", i, w, width)
		}
	}

	index := g.InsertVertex(seqraph.PatternKey[T](g.NextPatternID()), seqraph.NewVertexData(width))
	for _, pat := range pats {
		g.addPattern(index, pat)
	}
	klog.V(4).Infof("%s: inserted vertex %d %q (width %d, %d decompositions)", g.opts.Name, index, g.indexStringer(index), width, len(pats))
	return index, nil
}

// AddPattern appends another decomposition to the vertex at index and wires the parent links of its elements.
func (g *Graph[T]) AddPattern(index VertexIndex, pat Pattern) (int, error) {
	v := g.expect(index)
	if err := g.checkPattern(pat); err != nil {
		return 0, err
	}
	if w := pat.Width(); w != v.data.Width {
		return 0, errors.Wrapf(seqraph.ErrWidthMismatch, "pattern has width %d, vertex %d has width %d", w, index, v.data.Width)
	}
	return g.addPattern(index, pat), nil
}

func (g *Graph[T]) addPattern(index VertexIndex, pat Pattern) int {
	pi := g.verts[index].data.AddPattern(pat)
	for pos, ci := range pat {
		g.AddParent(ci.Index, index, pi, pos)
	}
	return pi
}

// Validate checks the width invariant and that parent and child links mirror each other.
func (g *Graph[T]) Validate() error {
	for vi := range g.verts {
		index := VertexIndex(vi)
		v := &g.verts[vi].data

		for pi, pat := range v.Children {
			if w := pat.Width(); w != v.Width {
				return errors.Wrapf(seqraph.ErrWidthMismatch, "vertex %d decomposition %d has width %d, expected %d", index, pi, w, v.Width)
			}
			for pos, ci := range pat {
				if ci.Index < 0 || int(ci.Index) >= len(g.verts) {
					return errors.Wrapf(seqraph.ErrInvalidVertexIndex, "vertex %d decomposition %d element %d", index, pi, pos)
				}
				child := &g.verts[ci.Index].data
				if child.Width != ci.Width {
					return errors.Wrapf(seqraph.ErrWidthMismatch, "vertex %d decomposition %d element %d", index, pi, pos)
				}
				parent := child.FindParent(index)
				if parent == nil || !containsOccurrence(parent, pi, pos) {
					return errors.Wrapf(seqraph.ErrBrokenParentLink, "vertex %d missing parent %d at (%d, %d)", ci.Index, index, pi, pos)
				}
			}
		}

		for _, parent := range v.Parents {
			if parent.Index < 0 || int(parent.Index) >= len(g.verts) {
				return errors.Wrapf(seqraph.ErrInvalidVertexIndex, "vertex %d parent %d", index, parent.Index)
			}
			pv := &g.verts[parent.Index].data
			if parent.Width != pv.Width || parent.Width <= v.Width {
				return errors.Wrapf(seqraph.ErrBrokenParentLink, "vertex %d parent %d has width %d", index, parent.Index, parent.Width)
			}
			for _, occ := range parent.Occurrences() {
				if occ.Pattern >= len(pv.Children) || occ.Pos >= len(pv.Children[occ.Pattern]) ||
					pv.Children[occ.Pattern][occ.Pos].Index != index {
					return errors.Wrapf(seqraph.ErrBrokenParentLink, "vertex %d parent %d occurrence %v", index, parent.Index, occ)
				}
			}
		}
	}
	return nil
}

func containsOccurrence(parent *seqraph.Parent, pattern, pos int) bool {
	for _, occ := range parent.OccurrencesAt(pos) {
		if occ.Pattern == pattern {
			return true
		}
	}
	return false
}
