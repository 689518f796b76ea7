package hypergraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mankinskin/seqraph/seqraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureGrammar = `
# the four letter fixture
ab   = a b ;
bc   = b c ;
abc  = a bc | ab c ;
abcd = abc d
`

func TestLoadString(t *testing.T) {
	G, names, err := LoadString(fixtureGrammar)
	require.NoError(t, err)
	require.NoError(t, G.Validate())

	require.Len(t, names, 4)
	assert.Equal(t, "ab", G.IndexString(names["ab"]))
	assert.Equal(t, "abcd", G.IndexString(names["abcd"]))
	assert.Len(t, G.VertexData(names["abc"]).Children, 2)
	assert.Equal(t, TokenPosition(4), G.VertexData(names["abcd"]).Width)

	for _, r := range "abcd" {
		_, exists := G.TokenIndex(r)
		assert.True(t, exists, "token %q", r)
	}

	A, err := ParsePattern(G, names, "a bc")
	require.NoError(t, err)
	B, err := ParsePattern(G, names, "ab c")
	require.NoError(t, err)
	requireCompare(t, G, A, B, seqraph.MatchingMatch())

	A, err = ParsePattern(G, names, "b c")
	require.NoError(t, err)
	B, err = ParsePattern(G, names, "abcd")
	require.NoError(t, err)
	requireUnrelated(t, G, A, B)
}

func TestLoadErrors(t *testing.T) {
	_, _, err := LoadString("ab = a xy")
	assert.ErrorIs(t, err, seqraph.ErrUnknownName)

	_, _, err = LoadString("ab = a b ; ab = b a")
	assert.ErrorIs(t, err, seqraph.ErrDuplicateName)

	_, _, err = LoadString("ab = a b ; abc = ab c | a")
	assert.ErrorIs(t, err, seqraph.ErrEmptyPattern)

	_, _, err = LoadString("ab = a b ; abc = ab c | a b")
	assert.ErrorIs(t, err, seqraph.ErrWidthMismatch)

	_, _, err = LoadString("ab = ")
	assert.Error(t, err)

	G, names, err := LoadString("ab = a b")
	require.NoError(t, err)
	_, err = ParsePattern(G, names, "ab cd")
	assert.ErrorIs(t, err, seqraph.ErrUnknownName)
}

func TestLoadFile(t *testing.T) {
	pathname := filepath.Join(t.TempDir(), "fixture.seq")
	require.NoError(t, os.WriteFile(pathname, []byte(fixtureGrammar), 0644))

	G, names, err := LoadFile(pathname)
	require.NoError(t, err)
	assert.Equal(t, "abc", G.IndexString(names["abc"]))

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "missing.seq"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadIntoExisting(t *testing.T) {
	G, names, err := LoadString("ab = a b")
	require.NoError(t, err)

	require.NoError(t, Load(G, names, "", "abab = ab ab ; aab = a ab"))
	assert.Equal(t, "abab", G.IndexString(names["abab"]))
	assert.Equal(t, TokenPosition(3), G.VertexData(names["aab"]).Width)
	assert.NoError(t, G.Validate())
}

func TestLoadSeparators(t *testing.T) {
	// a trailing ";" is optional
	G, names, err := LoadString("ab = a b ; abc = ab c ;")
	require.NoError(t, err)
	assert.Equal(t, "abc", G.IndexString(names["abc"]))

	// a definition may span lines
	G, names, err = LoadString("ab = a b ;\nabc = ab c\n    | a b c\n")
	require.NoError(t, err)
	assert.Len(t, G.VertexData(names["abc"]).Children, 2)

	G, names, err = LoadString("")
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Equal(t, 0, G.Len())

	// line breaks do not end a definition
	_, _, err = LoadString("ab = a b\nbc = b c\n")
	assert.Error(t, err)
}
