package hypergraph

import (
	"testing"

	"github.com/mankinskin/seqraph/seqraph"
	"github.com/stretchr/testify/require"
)

// fixture is the small graph most tests run against:
//
//	ab   = a b
//	bc   = b c
//	abc  = a bc | ab c
//	abcd = abc d
type fixture struct {
	G *Graph[rune]

	a, b, c, d, e        VertexIndex
	ab, bc, abc, abcd    VertexIndex
	a_b, b_c, a_bc, ab_c Pattern
	abc_d, a_bc_d        Pattern
	ab_c_d, a_b_c        Pattern
	a_d_c                Pattern
	bc_, abcd_           Pattern
}

func newFixture(t *testing.T) *fixture {
	return newFixtureOpts(t, seqraph.DefaultGraphOpts)
}

func newFixtureOpts(t *testing.T, opts seqraph.GraphOpts) *fixture {
	G := NewGraph[rune](opts)
	X := &fixture{G: G}

	X.a = G.InsertToken('a')
	X.b = G.InsertToken('b')
	X.c = G.InsertToken('c')
	X.d = G.InsertToken('d')
	X.e = G.InsertToken('e')

	ch := G.Child
	var err error

	X.a_b = Pattern{ch(X.a), ch(X.b)}
	X.ab, err = G.InsertPattern(X.a_b)
	require.NoError(t, err)

	X.b_c = Pattern{ch(X.b), ch(X.c)}
	X.bc, err = G.InsertPattern(X.b_c)
	require.NoError(t, err)

	X.a_bc = Pattern{ch(X.a), ch(X.bc)}
	X.ab_c = Pattern{ch(X.ab), ch(X.c)}
	X.abc, err = G.InsertPattern(X.a_bc, X.ab_c)
	require.NoError(t, err)

	X.abc_d = Pattern{ch(X.abc), ch(X.d)}
	X.abcd, err = G.InsertPattern(X.abc_d)
	require.NoError(t, err)

	X.a_bc_d = Pattern{ch(X.a), ch(X.bc), ch(X.d)}
	X.ab_c_d = Pattern{ch(X.ab), ch(X.c), ch(X.d)}
	X.a_b_c = Pattern{ch(X.a), ch(X.b), ch(X.c)}
	X.a_d_c = Pattern{ch(X.a), ch(X.d), ch(X.c)}
	X.bc_ = Pattern{ch(X.bc)}
	X.abcd_ = Pattern{ch(X.abcd)}

	require.NoError(t, G.Validate())
	return X
}

func (X *fixture) pat(indices ...VertexIndex) Pattern {
	pat := make(Pattern, len(indices))
	for i, vi := range indices {
		pat[i] = X.G.Child(vi)
	}
	return pat
}

// requireSplit checks set holds exactly the pairs in want, in order.
func requireSplit(t *testing.T, want, set seqraph.SplitSet) {
	t.Helper()
	require.Len(t, set, len(want), "split set %v", set)
	for i := range want {
		require.Zero(t, seqraph.SplitPairComparator(want[i], set[i]), "pair %d: want %v, got %v", i, want[i], set[i])
	}
}

// requireStepLimit runs fn and checks it panics with ErrStepLimit.
func requireStepLimit(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a step limit panic")
		err, isErr := r.(error)
		require.True(t, isErr, "panic value %v", r)
		require.ErrorIs(t, err, seqraph.ErrStepLimit)
	}()
	fn()
}
