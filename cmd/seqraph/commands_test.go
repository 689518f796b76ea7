package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mankinskin/seqraph/seqraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGrammar = `
ab   = a b ;
bc   = b c ;
abc  = a bc | ab c ;
abcd = abc d
`

func writeTemp(t *testing.T, name, content string) string {
	pathname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(pathname, []byte(content), 0644))
	return pathname
}

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckCmd(t *testing.T) {
	grammar := writeTemp(t, "fixture.seq", testGrammar)

	out, err := execute(t, "check", grammar)
	require.NoError(t, err)
	assert.Equal(t, "8 vertices, 4 names\n", out)

	_, err = execute(t, "check", writeTemp(t, "bad.seq", "ab = a xy"))
	assert.ErrorIs(t, err, seqraph.ErrUnknownName)
}

func TestCompareCmd(t *testing.T) {
	grammar := writeTemp(t, "fixture.seq", testGrammar)

	out, err := execute(t, "compare", grammar, "a bc", "ab c")
	require.NoError(t, err)
	assert.Equal(t, "Matching\n", out)

	out, err = execute(t, "compare", grammar, "a b c", "a bc d")
	require.NoError(t, err)
	assert.Equal(t, "RemainderRight d\n", out)

	out, err = execute(t, "compare", grammar, "b c", "abcd")
	require.NoError(t, err)
	assert.Equal(t, "unrelated\n", out)

	_, err = execute(t, "compare", "--max-steps", "3", grammar, "a bc d", "abcd")
	assert.ErrorIs(t, err, seqraph.ErrStepLimit)
}

func TestSplitCmd(t *testing.T) {
	grammar := writeTemp(t, "fixture.seq", testGrammar)

	out, err := execute(t, "split", grammar, "a b c", "2")
	require.NoError(t, err)
	assert.Equal(t, "a_b | c\n", out)

	out, err = execute(t, "split", grammar, "abcd", "2")
	require.NoError(t, err)
	assert.Equal(t, "a_b | c_d\nab | c_d\n", out)

	_, err = execute(t, "split", grammar, "abcd", "5")
	assert.ErrorIs(t, err, seqraph.ErrPositionOutOfRange)

	_, err = execute(t, "split", grammar, "abcd", "two")
	assert.Error(t, err)
}

func TestDotCmd(t *testing.T) {
	grammar := writeTemp(t, "fixture.seq", testGrammar)

	out, err := execute(t, "dot", "--root", "bc", grammar)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph \"seqraph\" {"))
	assert.Equal(t, 2, strings.Count(out, "->"))

	config := writeTemp(t, "seqraph.yaml", `
graph:
  name: fixture
dot:
  all_pats: true
  show_width: true
`)
	dotPath := filepath.Join(t.TempDir(), "out", "fixture")
	_, err = execute(t, "dot", "--config", config, "-o", dotPath, grammar)
	require.NoError(t, err)

	buf, err := os.ReadFile(dotPath + ".dot")
	require.NoError(t, err)
	assert.Contains(t, string(buf), "digraph \"fixture\" {")
	assert.Contains(t, string(buf), "[label=\"abc (3)\"]")
	assert.Contains(t, string(buf), "[label=\"1.1\"]")

	_, err = execute(t, "dot", "--root", "xyz", grammar)
	assert.ErrorIs(t, err, seqraph.ErrUnknownName)
}

func TestLoadConfig(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, loadConfig("", &cfg))
	assert.Equal(t, seqraph.DefaultGraphOpts, cfg.Graph)

	pathname := writeTemp(t, "seqraph.yaml", "graph:\n  max_steps: 500\ndot:\n  label: demo\n  roots: [2, 4]\n")
	require.NoError(t, loadConfig(pathname, &cfg))
	assert.Equal(t, 500, cfg.Graph.MaxSteps)
	assert.Equal(t, seqraph.DefaultGraphOpts.Name, cfg.Graph.Name)
	assert.Equal(t, "demo", cfg.Dot.Label)
	assert.Equal(t, []seqraph.VertexIndex{2, 4}, cfg.Dot.Roots)

	assert.ErrorIs(t, loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), &cfg), os.ErrNotExist)
	assert.Error(t, loadConfig(writeTemp(t, "bad.yaml", "graph: [1, 2"), &cfg))
}

func TestRunCmd(t *testing.T) {
	script := writeTemp(t, "check.py", `
import _seqraph

G = _seqraph.Load("ab = a b ; abc = ab c")
assert G.Compare("a b c", "abc") == (_seqraph.MATCHING, "")
assert G.Str(G.Index("abc")) == "abc"
`)
	out, err := execute(t, "run", script)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, script+": done in "), out)

	failing := writeTemp(t, "fail.py", `
import _seqraph

assert _seqraph.Load("ab = a b").Str(0) == "b"
`)
	_, err = execute(t, "run", failing)
	assert.Error(t, err)

	_, err = execute(t, "run", filepath.Join(t.TempDir(), "missing.py"))
	assert.Error(t, err)
}
