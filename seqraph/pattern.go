package seqraph

// Child references an element inside a Pattern, caching the width of the referenced vertex.
type Child struct {
	Index VertexIndex
	Width TokenPosition
}

func NewChild(index VertexIndex, width TokenPosition) Child {
	return Child{
		Index: index,
		Width: width,
	}
}

// Pattern is an ordered sequence of Child elements describing one decomposition of a vertex's span.
type Pattern []Child

// Width returns the sum of the widths of all elements.
func (pat Pattern) Width() TokenPosition {
	w := TokenPosition(0)
	for _, ci := range pat {
		w += ci.Width
	}
	return w
}

// Indices returns the vertex indices of all elements.
func (pat Pattern) Indices() []VertexIndex {
	indices := make([]VertexIndex, len(pat))
	for i, ci := range pat {
		indices[i] = ci.Index
	}
	return indices
}

func (pat Pattern) Equal(other Pattern) bool {
	if len(pat) != len(other) {
		return false
	}
	for i, ci := range pat {
		if ci != other[i] {
			return false
		}
	}
	return true
}

// Concat returns a new Pattern holding the elements of all the given patterns.
//
// The result never aliases any of the inputs.
func Concat(pats ...Pattern) Pattern {
	N := 0
	for _, pat := range pats {
		N += len(pat)
	}
	out := make(Pattern, 0, N)
	for _, pat := range pats {
		out = append(out, pat...)
	}
	return out
}

// Clone returns a copy of pat that does not alias it.
func (pat Pattern) Clone() Pattern {
	if pat == nil {
		return nil
	}
	return append(Pattern{}, pat...)
}

// PatternComparator orders patterns element-wise by vertex index, then by length.
func PatternComparator(A, B Pattern) int {
	lenB := len(B)

	for i, ai := range A {
		if lenB == i {
			return 1
		}

		bi := B[i]
		if d := int(ai.Index) - int(bi.Index); d != 0 {
			return d
		}
		if d := int(ai.Width) - int(bi.Width); d != 0 {
			return d
		}
	}

	if len(A) < lenB {
		return -1
	}

	return 0
}
