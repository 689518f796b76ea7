package hypergraph

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/mankinskin/seqraph/seqraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDot(t *testing.T, G *Graph[rune], opts seqraph.DotOpts) string {
	var buf bytes.Buffer
	require.NoError(t, G.WriteDot(&buf, opts))
	return buf.String()
}

func TestWriteDot(t *testing.T) {
	G, names, err := LoadString(fixtureGrammar)
	require.NoError(t, err)

	out := writeDot(t, G, seqraph.DotOpts{})
	assert.True(t, strings.HasPrefix(out, "digraph \"seqraph\" {\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	for vi := 0; vi < G.Len(); vi++ {
		assert.Contains(t, out, "\tv"+itoa(vi)+" [label=\""+G.IndexString(VertexIndex(vi))+"\"];")
	}

	abc := itoa(int(names["abc"]))
	assert.Contains(t, out, "\tv"+abc+" -> v"+itoa(int(names["bc"]))+" [label=\"0.1\"];")
	assert.NotContains(t, out, "[label=\"1.0\"]")

	out = writeDot(t, G, seqraph.DotOpts{
		Label:     "all",
		AllPats:   true,
		ShowWidth: true,
	})
	assert.True(t, strings.HasPrefix(out, "digraph \"all\" {\n"))
	assert.Contains(t, out, "\tv"+abc+" -> v"+itoa(int(names["ab"]))+" [label=\"1.0\"];")
	assert.Contains(t, out, "[label=\"abc (3)\"]")
}

func TestWriteDotRoots(t *testing.T) {
	G, names, err := LoadString(fixtureGrammar)
	require.NoError(t, err)

	a, _ := G.TokenIndex('a')
	b, _ := G.TokenIndex('b')
	c, _ := G.TokenIndex('c')

	out := writeDot(t, G, seqraph.DotOpts{
		Roots: []VertexIndex{names["bc"]},
	})
	assert.Contains(t, out, "\tv"+itoa(int(b))+" [label=\"b\"];")
	assert.Contains(t, out, "\tv"+itoa(int(c))+" [label=\"c\"];")
	assert.NotContains(t, out, "\tv"+itoa(int(a))+" ")
	assert.NotContains(t, out, "\tv"+itoa(int(names["abcd"]))+" ")
	assert.Equal(t, 2, strings.Count(out, "->"))

	assert.Panics(t, func() {
		writeDot(t, G, seqraph.DotOpts{Roots: []VertexIndex{99}})
	})
}

func TestWriteDotFile(t *testing.T) {
	G, _, err := LoadString(fixtureGrammar)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, G.WriteDotFile(filepath.Join(dir, "sub", "fixture.txt"), seqraph.DotOpts{}))

	buf, err := os.ReadFile(filepath.Join(dir, "sub", "fixture.dot"))
	require.NoError(t, err)
	assert.Equal(t, writeDot(t, G, seqraph.DotOpts{}), string(buf))

	// a regular file where a directory is needed
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	err = G.WriteDotFile(filepath.Join(blocker, "fixture"), seqraph.DotOpts{})
	var pathErr *fs.PathError
	assert.ErrorAs(t, err, &pathErr)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
