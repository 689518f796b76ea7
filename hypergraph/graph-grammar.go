package hypergraph

import (
	"os"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/mankinskin/seqraph/seqraph"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// GrammarExpr is a list of vertex definitions, e.g.
//
//	ab   = a b ;
//	abc  = a bc | ab c ;
//	abcd = abc d
//
// Every definition ends with ";" or the end of input.
// Line breaks are plain whitespace, so a definition may span lines but two definitions need a ";" between them.
type GrammarExpr struct {
	Defs []*GrammarDef `@@*`
}

type GrammarDef struct {
	Pos  lexer.Position
	Name string         `@Name "="`
	Alts []*PatternExpr `@@ ( "|" @@ )* ( ";" | EOF )`
}

type PatternExpr struct {
	Pos   lexer.Position
	Names []string `@Name+`
}

// Names maps each defined name to its vertex.
type Names map[string]VertexIndex

var sGrammarLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"comment", `#[^\n]*`},
	{"Punct", `[=|;]`},
	{"Name", `[^\s=|;#]+`},
	{"whitespace", `\s+`},
})

var (
	sParseGrammar = participle.MustBuild[GrammarExpr](participle.Lexer(sGrammarLexer))
	sParsePattern = participle.MustBuild[PatternExpr](participle.Lexer(sGrammarLexer))
)

// LoadString builds a new rune graph from a grammar expression.
func LoadString(src string) (*Graph[rune], Names, error) {
	g := NewGraph[rune](seqraph.DefaultGraphOpts)
	names := make(Names)
	if err := Load(g, names, "", src); err != nil {
		return nil, nil, err
	}
	return g, names, nil
}

// LoadFile builds a new rune graph from the grammar file at path.
func LoadFile(path string) (*Graph[rune], Names, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	g := NewGraph[rune](seqraph.DefaultGraphOpts)
	names := make(Names)
	if err = Load(g, names, path, string(buf)); err != nil {
		return nil, nil, err
	}
	return g, names, nil
}

// Load parses src and inserts each definition into g, in order, adding each defined name to names.
//
// A name must be defined before it is used unless it is a single rune, in which case it denotes that rune's token.
func Load(g *Graph[rune], names Names, filename, src string) error {
	expr, err := sParseGrammar.ParseString(filename, src)
	if err != nil {
		return err
	}

	for _, def := range expr.Defs {
		if _, exists := names[def.Name]; exists {
			return errors.Wrapf(seqraph.ErrDuplicateName, "%v: %q", def.Pos, def.Name)
		}

		pats := make([]Pattern, len(def.Alts))
		for i, alt := range def.Alts {
			if pats[i], err = resolveNames(g, names, alt); err != nil {
				return err
			}
		}

		index, err := g.InsertPattern(pats...)
		if err != nil {
			return errors.Wrapf(err, "%v: %q", def.Pos, def.Name)
		}
		names[def.Name] = index
		klog.V(3).Infof("%s: %q => vertex %d", g.opts.Name, def.Name, index)
	}
	return nil
}

// ParsePattern parses a space separated list of names into a Pattern over g.
func ParsePattern(g *Graph[rune], names Names, src string) (Pattern, error) {
	expr, err := sParsePattern.ParseString("", src)
	if err != nil {
		return nil, err
	}
	return resolveNames(g, names, expr)
}

func resolveNames(g *Graph[rune], names Names, expr *PatternExpr) (Pattern, error) {
	pat := make(Pattern, 0, len(expr.Names))
	for _, name := range expr.Names {
		if index, exists := names[name]; exists {
			pat = append(pat, g.Child(index))
			continue
		}
		r, size := utf8.DecodeRuneInString(name)
		if size != len(name) || r == utf8.RuneError {
			return nil, errors.Wrapf(seqraph.ErrUnknownName, "%v: %q", expr.Pos, name)
		}
		pat = append(pat, g.Child(g.InsertToken(r)))
	}
	return pat, nil
}
