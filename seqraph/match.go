package seqraph

import "fmt"

// MatchKind says which side of a comparison, if any, has an unconsumed remainder.
type MatchKind byte

const (
	Matching       MatchKind = 0 // both sides fully consumed
	RemainderLeft  MatchKind = 1 // the left (first) argument has a remainder
	RemainderRight MatchKind = 2 // the right (second) argument has a remainder
)

func (kind MatchKind) String() string {
	return [...]string{"Matching", "RemainderLeft", "RemainderRight"}[kind]
}

// PatternMatch is the outcome of comparing two patterns that are structurally related.
type PatternMatch struct {
	Kind      MatchKind
	Remainder Pattern // empty for Matching
}

func MatchingMatch() PatternMatch {
	return PatternMatch{Kind: Matching}
}

func LeftRemainder(rem Pattern) PatternMatch {
	return PatternMatch{
		Kind:      RemainderLeft,
		Remainder: rem,
	}
}

func RightRemainder(rem Pattern) PatternMatch {
	return PatternMatch{
		Kind:      RemainderRight,
		Remainder: rem,
	}
}

// Flip swaps RemainderLeft and RemainderRight.
func (m PatternMatch) Flip() PatternMatch {
	switch m.Kind {
	case RemainderLeft:
		m.Kind = RemainderRight
	case RemainderRight:
		m.Kind = RemainderLeft
	}
	return m
}

func (m PatternMatch) Equal(other PatternMatch) bool {
	return m.Kind == other.Kind && m.Remainder.Equal(other.Remainder)
}

func (m PatternMatch) String() string {
	if m.Kind == Matching {
		return m.Kind.String()
	}
	return fmt.Sprintf("%v%v", m.Kind, m.Remainder.Indices())
}

// IndexMatchKind is the outcome of resolving a narrower vertex plus context against a wider target.
type IndexMatchKind byte

const (
	IndexMatching IndexMatchKind = 0 // target reached, context fully consumed
	SubRemainder  IndexMatchKind = 1 // target reached, context has a leftover
	SupRemainder  IndexMatchKind = 2 // target has content beyond sub + context
)

func (kind IndexMatchKind) String() string {
	return [...]string{"Matching", "SubRemainder", "SupRemainder"}[kind]
}

type IndexMatch struct {
	Kind      IndexMatchKind
	Remainder Pattern
}

func (m IndexMatch) String() string {
	if m.Kind == IndexMatching {
		return m.Kind.String()
	}
	return fmt.Sprintf("%v%v", m.Kind, m.Remainder.Indices())
}

// IndexMatch maps a PatternMatch of (context, sup decomposition) onto the resolver's terms:
// a left remainder is left over context, a right remainder is left over sup content.
func (m PatternMatch) IndexMatch() IndexMatch {
	return IndexMatch{
		Kind:      IndexMatchKind(m.Kind),
		Remainder: m.Remainder,
	}
}

// PatternMatch is the inverse of PatternMatch.IndexMatch().
func (m IndexMatch) PatternMatch() PatternMatch {
	return PatternMatch{
		Kind:      MatchKind(m.Kind),
		Remainder: m.Remainder,
	}
}
