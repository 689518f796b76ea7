package seqraph

import (
	"io"
)

// VertexIndex is a stable handle that identifies a vertex in a given graph.
//
// Handles are issued in insertion order, starting at zero, and are never reused while the graph is alive.
type VertexIndex int

// TokenPosition is a count of atomic tokens, used both for widths and offsets into a vertex's span.
type TokenPosition int

// PatternID identifies a composite vertex within one graph.  It carries no content.
type PatternID uint32

// VertexKey is either a Token (an atomic, user supplied value) or a Pattern (a composite identified only by a generated PatternID).
type VertexKey[T comparable] struct {
	Token   T
	Pattern PatternID
	IsToken bool
}

// TokenKey returns the key of the atomic vertex for the given token value.
func TokenKey[T comparable](token T) VertexKey[T] {
	return VertexKey[T]{
		Token:   token,
		IsToken: true,
	}
}

// PatternKey returns the key of a composite vertex.
func PatternKey[T comparable](id PatternID) VertexKey[T] {
	return VertexKey[T]{
		Pattern: id,
	}
}

// GraphOpts specifies params for a new graph
type GraphOpts struct {
	Name string `yaml:"name"` // label used in logs and dot exports

	// MaxSteps bounds the number of work stack steps a single Compare or Resolve may take.
	// Exceeding it panics with ErrStepLimit.  Zero means unbounded.
	MaxSteps int `yaml:"max_steps"`
}

// DefaultGraphOpts{}
var DefaultGraphOpts = GraphOpts{
	Name: "seqraph",
}

// DotOpts specifies what is written when exporting a graph in dot format
type DotOpts struct {
	Label     string        `yaml:"label"`      // graph name; defaults to GraphOpts.Name
	Roots     []VertexIndex `yaml:"roots"`      // if set, only vertices reachable from Roots (via children) are written
	AllPats   bool          `yaml:"all_pats"`   // if set, every decomposition is written as a labeled edge group, else only the first
	ShowWidth bool          `yaml:"show_width"` // if set, vertex labels include the vertex width
}

// VertexReader gives read access to the vertices of a graph.
type VertexReader[T comparable] interface {

	// Len returns the number of vertices issued so far.
	Len() int

	// VertexKey returns the key of the vertex at the given index.  Panics if the index was never issued.
	VertexKey(index VertexIndex) VertexKey[T]

	// VertexData returns the data of the vertex at the given index.  Panics if the index was never issued.
	//
	// The returned data is owned by the graph and must not be modified.
	VertexData(index VertexIndex) *VertexData

	// TokenIndex returns the index of the atomic vertex for the given token, if any.
	TokenIndex(token T) (VertexIndex, bool)
}

// Matcher compares sequences of vertices for a common structural prefix.
type Matcher interface {

	// Compare scans A and B for a common structural prefix.
	//
	// If ok is false, A and B are provably unrelated.  Otherwise the PatternMatch says
	// whether both were consumed or which side has an unconsumed remainder.
	Compare(A, B Pattern) (match PatternMatch, ok bool)

	// Resolve determines whether ascending from sub through parent links, consuming context, reaches target.
	//
	// Only parents narrower than widthCeiling are searched (0 denotes no ceiling).
	Resolve(sub VertexIndex, context Pattern, target VertexIndex, widthCeiling TokenPosition) (match IndexMatch, ok bool)
}

// Splitter cuts decompositions at a token offset.
type Splitter interface {

	// SplitIndex cuts every decomposition of the given vertex at pos.
	SplitIndex(index VertexIndex, pos TokenPosition) (SplitSet, error)

	// SplitPattern cuts the given pattern at pos, recursing into the element pos falls in.
	SplitPattern(pat Pattern, pos TokenPosition) (SplitSet, error)
}

// DotWriter exports a graph's vertex and edge structure as a graphviz description.
type DotWriter interface {
	WriteDot(out io.Writer, opts DotOpts) error
}
