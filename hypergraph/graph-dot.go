package hypergraph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/mankinskin/seqraph/seqraph"
)

// WriteDot writes the graph in graphviz dot format.
//
// Each vertex is a node labeled with its token string; each decomposition element is an edge from the
// vertex to the element, labeled "pattern.pos".
func (g *Graph[T]) WriteDot(out io.Writer, opts seqraph.DotOpts) error {
	label := opts.Label
	if label == "" {
		label = g.opts.Name
	}

	verts := g.dotVertices(opts)

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "digraph %q {\n", label)

	itr := verts.Iterator()
	for itr.HasNext() {
		vi := VertexIndex(itr.Next())
		v := &g.verts[vi].data
		name := g.IndexString(vi)
		if opts.ShowWidth {
			name = fmt.Sprintf("%s (%d)", name, v.Width)
		}
		fmt.Fprintf(w, "\tv%d [label=%q];\n", vi, name)
	}

	itr = verts.Iterator()
	for itr.HasNext() {
		vi := VertexIndex(itr.Next())
		for pi, pat := range g.dotPatterns(vi, opts) {
			for pos, ci := range pat {
				fmt.Fprintf(w, "\tv%d -> v%d [label=\"%d.%d\"];\n", vi, ci.Index, pi, pos)
			}
		}
	}

	fmt.Fprint(w, "}\n")
	return w.Flush()
}

// WriteDotFile writes the graph to pathname with its extension replaced by ".dot", creating parent dirs as needed.
func (g *Graph[T]) WriteDotFile(pathname string, opts seqraph.DotOpts) error {
	pathname = strings.TrimSuffix(pathname, filepath.Ext(pathname)) + ".dot"
	if err := os.MkdirAll(filepath.Dir(pathname), 0755); err != nil {
		return err
	}

	file, err := os.Create(pathname)
	if err != nil {
		return err
	}
	err = g.WriteDot(file, opts)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (g *Graph[T]) dotPatterns(vi VertexIndex, opts seqraph.DotOpts) []Pattern {
	pats := g.verts[vi].data.Children
	if !opts.AllPats && len(pats) > 1 {
		pats = pats[:1]
	}
	return pats
}

// dotVertices returns every vertex, or only those reachable from opts.Roots through written decompositions.
func (g *Graph[T]) dotVertices(opts seqraph.DotOpts) *roaring.Bitmap {
	verts := roaring.New()
	if len(opts.Roots) == 0 {
		verts.AddRange(0, uint64(len(g.verts)))
		return verts
	}

	stack := make([]VertexIndex, 0, len(opts.Roots))
	for _, root := range opts.Roots {
		g.expect(root)
		if verts.CheckedAdd(uint32(root)) {
			stack = append(stack, root)
		}
	}
	for len(stack) > 0 {
		vi := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, pat := range g.dotPatterns(vi, opts) {
			for _, ci := range pat {
				if verts.CheckedAdd(uint32(ci.Index)) {
					stack = append(stack, ci.Index)
				}
			}
		}
	}
	return verts
}
