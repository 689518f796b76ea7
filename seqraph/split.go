package seqraph

// SplitPair is one way of cutting a span: Left followed by Right reconstructs it.
type SplitPair struct {
	Left  Pattern
	Right Pattern
}

// SplitPairComparator orders pairs by Left, then by Right.
func SplitPairComparator(a, b interface{}) int {
	A := a.(SplitPair)
	B := b.(SplitPair)
	if d := PatternComparator(A.Left, B.Left); d != 0 {
		return d
	}
	return PatternComparator(A.Right, B.Right)
}

// SplitSet is a set of alternative cuts of the same span at the same position.
//
// Callers must treat it as a disjunction, not as a canonical factorization.
type SplitSet []SplitPair

// Lefts returns the left halves, aligned with Rights().
func (set SplitSet) Lefts() []Pattern {
	out := make([]Pattern, len(set))
	for i, pair := range set {
		out[i] = pair.Left
	}
	return out
}

// Rights returns the right halves, aligned with Lefts().
func (set SplitSet) Rights() []Pattern {
	out := make([]Pattern, len(set))
	for i, pair := range set {
		out[i] = pair.Right
	}
	return out
}

// Contains returns true if an equal pair is in this set.
func (set SplitSet) Contains(pair SplitPair) bool {
	for _, pi := range set {
		if SplitPairComparator(pi, pair) == 0 {
			return true
		}
	}
	return false
}
