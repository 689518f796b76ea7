package seqraph

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Occurrence locates a child inside a parent: the parent's decomposition (Pattern) and the element position within it (Pos).
type Occurrence struct {
	Pattern int
	Pos     int
}

// OccurrenceComparator orders occurrences by decomposition index, then by position.
func OccurrenceComparator(a, b interface{}) int {
	A := a.(Occurrence)
	B := b.(Occurrence)
	if d := A.Pattern - B.Pattern; d != 0 {
		return d
	}
	return A.Pos - B.Pos
}

var _ utils.Comparator = OccurrenceComparator

// Parent is a back-reference from a vertex to a composite vertex that contains it as a direct element.
//
// The same child can appear at several positions across several decompositions of one parent,
// so each Parent holds an ordered set of Occurrences.
type Parent struct {
	Index VertexIndex   // the containing vertex
	Width TokenPosition // width of the containing vertex

	occurrences *treeset.Set
}

func NewParent(index VertexIndex, width TokenPosition) Parent {
	return Parent{
		Index:       index,
		Width:       width,
		occurrences: treeset.NewWith(OccurrenceComparator),
	}
}

// AddOccurrence records that the child appears at element pos of decomposition pattern.  Repeated calls have no effect.
func (parent *Parent) AddOccurrence(pattern, pos int) {
	if parent.occurrences == nil {
		parent.occurrences = treeset.NewWith(OccurrenceComparator)
	}
	parent.occurrences.Add(Occurrence{
		Pattern: pattern,
		Pos:     pos,
	})
}

// Occurrences returns all recorded occurrences in ascending (Pattern, Pos) order.
func (parent *Parent) Occurrences() []Occurrence {
	if parent.occurrences == nil {
		return nil
	}
	vals := parent.occurrences.Values()
	occs := make([]Occurrence, len(vals))
	for i, v := range vals {
		occs[i] = v.(Occurrence)
	}
	return occs
}

// OccurrencesAt returns the occurrences at element position pos in ascending decomposition order.
func (parent *Parent) OccurrencesAt(pos int) []Occurrence {
	var occs []Occurrence
	for _, occ := range parent.Occurrences() {
		if occ.Pos == pos {
			occs = append(occs, occ)
		}
	}
	return occs
}

// HasOccurrenceAt returns true if the child appears at element position pos in any decomposition.
func (parent *Parent) HasOccurrenceAt(pos int) bool {
	if parent.occurrences == nil {
		return false
	}
	it := parent.occurrences.Iterator()
	for it.Next() {
		if it.Value().(Occurrence).Pos == pos {
			return true
		}
	}
	return false
}

func (parent *Parent) NumOccurrences() int {
	if parent.occurrences == nil {
		return 0
	}
	return parent.occurrences.Size()
}

// VertexData holds the width of a vertex, its parents and its alternative decompositions.
//
// Invariant: each of Children sums its element widths to exactly Width.
type VertexData struct {
	Width    TokenPosition
	Parents  []Parent
	Children []Pattern
}

// NewVertexData returns empty VertexData for a vertex spanning width tokens.
func NewVertexData(width TokenPosition) *VertexData {
	return &VertexData{
		Width: width,
	}
}

// AddPattern appends a decomposition and returns its index.  Width is not checked here.
func (v *VertexData) AddPattern(pat Pattern) int {
	v.Children = append(v.Children, pat.Clone())
	return len(v.Children) - 1
}

// AddParent records that this vertex occurs at element pos of decomposition pattern of the vertex at index.
//
// An existing Parent for index is merged into; otherwise a new Parent is appended.
func (v *VertexData) AddParent(index VertexIndex, width TokenPosition, pattern, pos int) {
	for i := range v.Parents {
		if v.Parents[i].Index == index {
			v.Parents[i].AddOccurrence(pattern, pos)
			return
		}
	}
	parent := NewParent(index, width)
	parent.AddOccurrence(pattern, pos)
	v.Parents = append(v.Parents, parent)
}

// FindParent returns the Parent entry for the vertex at index, if any.
func (v *VertexData) FindParent(index VertexIndex) *Parent {
	for i := range v.Parents {
		if v.Parents[i].Index == index {
			return &v.Parents[i]
		}
	}
	return nil
}

func (v *VertexData) IsLeaf() bool {
	return len(v.Children) == 0
}
