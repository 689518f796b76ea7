package hypergraph

import (
	"io"
	"sync"

	"github.com/mankinskin/seqraph/seqraph"
)

// SyncGraph guards a Graph for use by many goroutines.
//
// Inserts are exclusive; queries run concurrently with each other.
type SyncGraph[T comparable] struct {
	mu sync.RWMutex
	g  *Graph[T]
}

var (
	_ seqraph.Matcher   = (*SyncGraph[rune])(nil)
	_ seqraph.Splitter  = (*SyncGraph[rune])(nil)
	_ seqraph.DotWriter = (*SyncGraph[rune])(nil)
)

func NewSyncGraph[T comparable](g *Graph[T]) *SyncGraph[T] {
	return &SyncGraph[T]{g: g}
}

// Read calls fn with the graph under the read lock.  fn must not modify the graph or retain any VertexData.
func (sg *SyncGraph[T]) Read(fn func(g *Graph[T])) {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	fn(sg.g)
}

// Write calls fn with the graph under the write lock.
func (sg *SyncGraph[T]) Write(fn func(g *Graph[T])) {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	fn(sg.g)
}

func (sg *SyncGraph[T]) Len() int {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	return sg.g.Len()
}

func (sg *SyncGraph[T]) InsertToken(token T) VertexIndex {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	return sg.g.InsertToken(token)
}

func (sg *SyncGraph[T]) TokenPattern(tokens ...T) Pattern {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	return sg.g.TokenPattern(tokens...)
}

func (sg *SyncGraph[T]) InsertPattern(pats ...Pattern) (VertexIndex, error) {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	return sg.g.InsertPattern(pats...)
}

func (sg *SyncGraph[T]) AddPattern(index VertexIndex, pat Pattern) (int, error) {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	return sg.g.AddPattern(index, pat)
}

func (sg *SyncGraph[T]) TokenIndex(token T) (VertexIndex, bool) {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	return sg.g.TokenIndex(token)
}

func (sg *SyncGraph[T]) Child(index VertexIndex) Child {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	return sg.g.Child(index)
}

func (sg *SyncGraph[T]) Compare(A, B Pattern) (seqraph.PatternMatch, bool) {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	return sg.g.Compare(A, B)
}

func (sg *SyncGraph[T]) Resolve(sub VertexIndex, context Pattern, target VertexIndex, widthCeiling TokenPosition) (seqraph.IndexMatch, bool) {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	return sg.g.Resolve(sub, context, target, widthCeiling)
}

func (sg *SyncGraph[T]) SplitIndex(index VertexIndex, pos TokenPosition) (seqraph.SplitSet, error) {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	return sg.g.SplitIndex(index, pos)
}

func (sg *SyncGraph[T]) SplitPattern(pat Pattern, pos TokenPosition) (seqraph.SplitSet, error) {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	return sg.g.SplitPattern(pat, pos)
}

func (sg *SyncGraph[T]) IndexString(index VertexIndex) string {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	return sg.g.IndexString(index)
}

func (sg *SyncGraph[T]) WriteDot(out io.Writer, opts seqraph.DotOpts) error {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	return sg.g.WriteDot(out, opts)
}
