package pyseq

import (
	"strings"

	"github.com/go-python/gpython/py"
	"github.com/mankinskin/seqraph/hypergraph"
	"github.com/mankinskin/seqraph/seqraph"
)

var (
	LIB_VERSION = "v0.1.0"
)

var (
	pyGraphType = py.NewType("Graph", "a hypergraph of rune tokens and named pattern vertices")
)

type pyGraph struct {
	G     *hypergraph.Graph[rune]
	Names hypergraph.Names
}

func (X *pyGraph) Type() *py.Type {
	return pyGraphType
}

func (X *pyGraph) M__str__() (py.Object, error) {
	var b strings.Builder
	b.WriteString("Graph(")
	for i := 0; i < X.G.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(X.G.IndexString(seqraph.VertexIndex(i)))
	}
	b.WriteString(")")
	return py.String(b.String()), nil
}

func (X *pyGraph) M__repr__() (py.Object, error) {
	return X.M__str__()
}

func (X *pyGraph) M__len__() (py.Object, error) {
	return py.Int(X.G.Len()), nil
}

func newGraph() *pyGraph {
	return &pyGraph{
		G:     hypergraph.NewGraph[rune](seqraph.DefaultGraphOpts),
		Names: make(hypergraph.Names),
	}
}

func valueError(err error) error {
	return py.ExceptionNewf(py.ValueError, "%v", err)
}

// parse turns a name expression into a Pattern.
func (X *pyGraph) parse(expr string) (seqraph.Pattern, error) {
	pat, err := hypergraph.ParsePattern(X.G, X.Names, expr)
	if err != nil {
		return nil, valueError(err)
	}
	return pat, nil
}

func py_NewGraph(module py.Object, args py.Tuple) (py.Object, error) {
	return newGraph(), nil
}

// Arg 1 (str): grammar expression, e.g. "ab = a b ; abc = ab c"
func py_Load(module py.Object, args py.Tuple) (py.Object, error) {
	X := newGraph()
	if err := X.define(args); err != nil {
		return nil, err
	}
	return X, nil
}

func py_Graph_Define(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(*pyGraph)
	return py.None, X.define(args)
}

func (X *pyGraph) define(args py.Tuple) error {
	var src string
	if err := py.LoadTuple(args, []interface{}{&src}); err != nil {
		return err
	}
	if err := hypergraph.Load(X.G, X.Names, "", src); err != nil {
		return valueError(err)
	}
	return nil
}

func py_Graph_Index(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(*pyGraph)
	var name string
	if err := py.LoadTuple(args, []interface{}{&name}); err != nil {
		return nil, err
	}
	if index, exists := X.Names[name]; exists {
		return py.Int(index), nil
	}
	if r := []rune(name); len(r) == 1 {
		if index, exists := X.G.TokenIndex(r[0]); exists {
			return py.Int(index), nil
		}
	}
	return py.None, nil
}

func py_Graph_Token(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(*pyGraph)
	index, err := X.index(args)
	if err != nil {
		return nil, err
	}
	token, err := X.G.Token(index)
	if err != nil {
		return nil, valueError(err)
	}
	return py.String(string(token)), nil
}

func py_Graph_Str(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(*pyGraph)
	index, err := X.index(args)
	if err != nil {
		return nil, err
	}
	return py.String(X.G.IndexString(index)), nil
}

func (X *pyGraph) index(args py.Tuple) (seqraph.VertexIndex, error) {
	var index int32
	if err := py.LoadTuple(args, []interface{}{&index}); err != nil {
		return 0, err
	}
	if index < 0 || int(index) >= X.G.Len() {
		return 0, py.ExceptionNewf(py.IndexError, "vertex index %d out of range", index)
	}
	return seqraph.VertexIndex(index), nil
}

func py_Graph_Pattern(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(*pyGraph)
	var expr string
	if err := py.LoadTuple(args, []interface{}{&expr}); err != nil {
		return nil, err
	}
	pat, err := X.parse(expr)
	if err != nil {
		return nil, err
	}
	indices := make(py.Tuple, len(pat))
	for i, ci := range pat {
		indices[i] = py.Int(ci.Index)
	}
	return indices, nil
}

// Compare returns None if the two name expressions are unrelated, else (kind, remainder).
func py_Graph_Compare(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(*pyGraph)
	var exprA, exprB string
	if err := py.LoadTuple(args, []interface{}{&exprA, &exprB}); err != nil {
		return nil, err
	}
	A, err := X.parse(exprA)
	if err != nil {
		return nil, err
	}
	B, err := X.parse(exprB)
	if err != nil {
		return nil, err
	}

	match, ok := X.G.Compare(A, B)
	if !ok {
		return py.None, nil
	}
	return py.Tuple{
		py.String(match.Kind.String()),
		py.String(X.G.PatternString(match.Remainder)),
	}, nil
}

// Split cuts a name expression at pos and returns its (left, right) pairs.
// A single defined name is cut across all of its decompositions.
func py_Graph_Split(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(*pyGraph)
	var (
		expr string
		pos  int32
	)
	if err := py.LoadTuple(args, []interface{}{&expr, &pos}); err != nil {
		return nil, err
	}

	var (
		set seqraph.SplitSet
		err error
	)
	if index, exists := X.Names[strings.TrimSpace(expr)]; exists {
		set, err = X.G.SplitIndex(index, seqraph.TokenPosition(pos))
	} else {
		var pat seqraph.Pattern
		if pat, err = X.parse(expr); err != nil {
			return nil, err
		}
		set, err = X.G.SplitPattern(pat, seqraph.TokenPosition(pos))
	}
	if err != nil {
		return nil, valueError(err)
	}

	pairs := make(py.Tuple, len(set))
	for i, pair := range set {
		pairs[i] = py.Tuple{
			py.String(X.G.PatternString(pair.Left)),
			py.String(X.G.PatternString(pair.Right)),
		}
	}
	return pairs, nil
}

// See WriteDot(pathname, label="", all=False, width=False)
func py_Graph_WriteDot(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	X := self.(*pyGraph)
	var pathname string
	if err := py.LoadTuple(args, []interface{}{&pathname}); err != nil {
		return nil, err
	}

	opts := seqraph.DotOpts{}
	py.LoadAttr(kwargs, "label", &opts.Label)
	py.LoadAttr(kwargs, "all", &opts.AllPats)
	py.LoadAttr(kwargs, "width", &opts.ShowWidth)

	if err := X.G.WriteDotFile(pathname, opts); err != nil {
		return nil, py.ExceptionNewf(py.OSError, "%v", err)
	}
	return py.None, nil
}

func py_Graph_Validate(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(*pyGraph)
	if err := X.G.Validate(); err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.None, nil
}

func init() {

	/////////////////////////////////
	// Graph
	{
		pyGraphType.Dict["Define"] = py.MustNewMethod("Define", py_Graph_Define, 0, "adds the definitions of a grammar expression")
		pyGraphType.Dict["Index"] = py.MustNewMethod("Index", py_Graph_Index, 0, "returns the vertex index of a name or token, or None")
		pyGraphType.Dict["Token"] = py.MustNewMethod("Token", py_Graph_Token, 0, "")
		pyGraphType.Dict["Str"] = py.MustNewMethod("Str", py_Graph_Str, 0, "renders a vertex as its token string")
		pyGraphType.Dict["Pattern"] = py.MustNewMethod("Pattern", py_Graph_Pattern, 0, "")
		pyGraphType.Dict["Compare"] = py.MustNewMethod("Compare", py_Graph_Compare, 0, "compares two name expressions for a common prefix")
		pyGraphType.Dict["Split"] = py.MustNewMethod("Split", py_Graph_Split, 0, "cuts a name expression at a token offset")
		pyGraphType.Dict["WriteDot"] = py.MustNewMethod("WriteDot", py_Graph_WriteDot, 0, "writes this Graph in dot format")
		pyGraphType.Dict["Validate"] = py.MustNewMethod("Validate", py_Graph_Validate, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("NewGraph", py_NewGraph, 0, ""),
			py.MustNewMethod("Load", py_Load, 0, "builds a Graph from a grammar expression"),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"MATCHING":    py.String(seqraph.Matching.String()),
			"REM_LEFT":    py.String(seqraph.RemainderLeft.String()),
			"REM_RIGHT":   py.String(seqraph.RemainderRight.String()),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_seqraph",
				Doc:  "seqraph hypergraph gpython module",
			},
			Methods: methods,
			Globals: globals,
		})
	}
}
