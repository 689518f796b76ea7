package hypergraph

import (
	"fmt"
	"strings"
)

// IndexString renders the vertex at index as the concatenation of its leaf tokens.
//
// A composite vertex is rendered through its first decomposition; all decompositions expand to the same tokens.
func (g *Graph[T]) IndexString(index VertexIndex) string {
	var b strings.Builder
	g.writeIndexString(&b, index)
	return b.String()
}

// PatternString renders each element of pat with IndexString, joined by "_".
func (g *Graph[T]) PatternString(pat Pattern) string {
	var b strings.Builder
	for i, ci := range pat {
		if i > 0 {
			b.WriteByte('_')
		}
		g.writeIndexString(&b, ci.Index)
	}
	return b.String()
}

// SubPatternString renders each element of pat with IndexString, concatenated.
func (g *Graph[T]) SubPatternString(pat Pattern) string {
	var b strings.Builder
	for _, ci := range pat {
		g.writeIndexString(&b, ci.Index)
	}
	return b.String()
}

func (g *Graph[T]) writeIndexString(b *strings.Builder, index VertexIndex) {
	// explicit stack so deep vertices render without recursion
	stack := []VertexIndex{index}
	for len(stack) > 0 {
		vi := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		v := g.expect(vi)
		if v.key.IsToken || len(v.data.Children) == 0 {
			if v.key.IsToken {
				writeToken(b, v.key.Token)
			} else {
				fmt.Fprintf(b, "<%d>", vi)
			}
			continue
		}
		first := v.data.Children[0]
		for i := len(first) - 1; i >= 0; i-- {
			stack = append(stack, first[i].Index)
		}
	}
}

// writeToken renders a token value; runes are written as characters rather than code points.
func writeToken[T comparable](b *strings.Builder, token T) {
	switch tok := any(token).(type) {
	case rune:
		b.WriteRune(tok)
	case string:
		b.WriteString(tok)
	case fmt.Stringer:
		b.WriteString(tok.String())
	default:
		fmt.Fprint(b, tok)
	}
}

// indexStringer and patternStringer defer rendering until a log line is actually written.
type indexStringer[T comparable] struct {
	g     *Graph[T]
	index VertexIndex
}

func (s indexStringer[T]) String() string {
	return s.g.IndexString(s.index)
}

type patternStringer[T comparable] struct {
	g   *Graph[T]
	pat Pattern
}

func (s patternStringer[T]) String() string {
	return s.g.PatternString(s.pat)
}

func (g *Graph[T]) indexStringer(index VertexIndex) fmt.Stringer {
	return indexStringer[T]{g, index}
}

func (g *Graph[T]) patternStringer(pat Pattern) fmt.Stringer {
	return patternStringer[T]{g, pat}
}
