package hypergraph

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/mankinskin/seqraph/seqraph"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// SplitIndex cuts every decomposition of the vertex at index at token offset pos.
//
// For each decomposition, each returned pair concatenates back to a full-span decomposition of the vertex,
// and each Left covers exactly pos tokens.  A leaf vertex can only be cut at 0 or at its width.
func (g *Graph[T]) SplitIndex(index VertexIndex, pos TokenPosition) (seqraph.SplitSet, error) {
	v := g.VertexData(index)
	if pos < 0 || pos > v.Width {
		return nil, errors.Wrapf(seqraph.ErrPositionOutOfRange, "vertex %d has width %d, got %d", index, v.Width, pos)
	}
	s := g.newSplitter()
	s.splitIndex(index, pos)
	return s.results(index, pos), nil
}

// SplitPattern cuts pat at token offset pos.
//
// A cut on an element boundary needs no recursion.  A cut inside an element splits that element's
// vertex at the local offset and splices each of its halves with the untouched neighbors.
func (g *Graph[T]) SplitPattern(pat Pattern, pos TokenPosition) (seqraph.SplitSet, error) {
	if w := pat.Width(); pos < 0 || pos > w {
		return nil, errors.Wrapf(seqraph.ErrPositionOutOfRange, "pattern has width %d, got %d", w, pos)
	}
	s := g.newSplitter()
	return dedupe(s.splitPattern(pat, pos)), nil
}

// SplitPatterns returns the union of cutting each of pats at pos.
func (g *Graph[T]) SplitPatterns(pats []Pattern, pos TokenPosition) (seqraph.SplitSet, error) {
	s := g.newSplitter()
	var all seqraph.SplitSet
	for i, pat := range pats {
		if w := pat.Width(); pos < 0 || pos > w {
			return nil, errors.Wrapf(seqraph.ErrPositionOutOfRange, "pattern %d has width %d, got %d", i, w, pos)
		}
		all = append(all, s.splitPattern(pat, pos)...)
	}
	return dedupe(all), nil
}

type splitKey struct {
	index VertexIndex
	pos   TokenPosition
}

// splitter memoizes vertex splits since shared sub-vertices are cut at the same offsets many times.
//
// Vertex splits are evaluated bottom-up on an explicit stack of pending keys, so nesting depth is not bound by the call stack.
type splitter[T comparable] struct {
	g       *Graph[T]
	memo    map[splitKey]seqraph.SplitSet
	pending []splitKey
}

func (g *Graph[T]) newSplitter() *splitter[T] {
	return &splitter[T]{
		g:    g,
		memo: make(map[splitKey]seqraph.SplitSet),
	}
}

func (s *splitter[T]) results(index VertexIndex, pos TokenPosition) seqraph.SplitSet {
	return s.memo[splitKey{index, pos}]
}

// cut locates pos in pat: the element it falls in and the token offset where that element starts.
// inside is false when pos lies on an element boundary (or at the full width, where i == len(pat)).
func cut(pat Pattern, pos TokenPosition) (i int, skipped TokenPosition, inside bool) {
	for i, ci := range pat {
		if skipped == pos {
			return i, skipped, false
		}
		if skipped+ci.Width > pos {
			return i, skipped, true
		}
		skipped += ci.Width
	}
	return len(pat), skipped, false
}

// splice wraps each split of pat[i] with the untouched neighbors of pat[i].
func splice(pat Pattern, i int, inner seqraph.SplitSet) seqraph.SplitSet {
	set := make(seqraph.SplitSet, len(inner))
	for j, pair := range inner {
		set[j] = seqraph.SplitPair{
			Left:  seqraph.Concat(pat[:i], pair.Left),
			Right: seqraph.Concat(pair.Right, pat[i+1:]),
		}
	}
	return set
}

func (s *splitter[T]) splitIndex(index VertexIndex, pos TokenPosition) seqraph.SplitSet {
	s.pending = append(s.pending[:0], splitKey{index, pos})
	for len(s.pending) > 0 {
		key := s.pending[len(s.pending)-1]
		if _, done := s.memo[key]; done {
			s.pending = s.pending[:len(s.pending)-1]
			continue
		}
		if s.pushInner(key) {
			continue
		}
		s.pending = s.pending[:len(s.pending)-1]
		s.memo[key] = s.splitVertex(key)
	}
	return s.results(index, pos)
}

// pushInner pushes each not yet evaluated inner split that key depends on, returning true if any was pushed.
// Inner keys are strictly narrower than key, so evaluation always terminates.
func (s *splitter[T]) pushInner(key splitKey) bool {
	pushed := false
	for _, pat := range s.g.VertexData(key.index).Children {
		i, skipped, inside := cut(pat, key.pos)
		if !inside {
			continue
		}
		inner := splitKey{pat[i].Index, key.pos - skipped}
		if _, done := s.memo[inner]; !done {
			s.pending = append(s.pending, inner)
			pushed = true
		}
	}
	return pushed
}

// splitVertex cuts every decomposition of key.index, given that all of its inner splits are memoized.
func (s *splitter[T]) splitVertex(key splitKey) seqraph.SplitSet {
	v := s.g.VertexData(key.index)
	if v.IsLeaf() {
		self := Pattern{seqraph.NewChild(key.index, v.Width)}
		switch key.pos {
		case 0:
			return seqraph.SplitSet{{Left: Pattern{}, Right: self}}
		case v.Width:
			return seqraph.SplitSet{{Left: self, Right: Pattern{}}}
		default:
			klog.Warningf("%s: leaf %q cannot be cut at %d", s.g.opts.Name, s.g.indexStringer(key.index), key.pos)
			return nil
		}
	}

	var set seqraph.SplitSet
	for _, pat := range v.Children {
		set = append(set, s.cutPattern(pat, key.pos)...)
	}
	return dedupe(set)
}

// cutPattern splits pat at pos, reading the split of the element pos falls inside from the memo.
func (s *splitter[T]) cutPattern(pat Pattern, pos TokenPosition) seqraph.SplitSet {
	i, skipped, inside := cut(pat, pos)
	if !inside {
		return seqraph.SplitSet{{
			Left:  pat[:i].Clone(),
			Right: pat[i:].Clone(),
		}}
	}
	return splice(pat, i, s.results(pat[i].Index, pos-skipped))
}

func (s *splitter[T]) splitPattern(pat Pattern, pos TokenPosition) seqraph.SplitSet {
	if i, skipped, inside := cut(pat, pos); inside {
		s.splitIndex(pat[i].Index, pos-skipped)
	}
	return s.cutPattern(pat, pos)
}

// dedupe drops repeated pairs and orders the rest canonically.
func dedupe(set seqraph.SplitSet) seqraph.SplitSet {
	if len(set) < 2 {
		return set
	}

	pairs := redblacktree.NewWith(seqraph.SplitPairComparator)
	for _, pair := range set {
		if _, found := pairs.Get(pair); !found {
			pairs.Put(pair, nil)
		}
	}

	out := make(seqraph.SplitSet, 0, pairs.Size())
	itr := pairs.Iterator()
	for itr.Next() {
		out = append(out, itr.Key().(seqraph.SplitPair))
	}
	return out
}
