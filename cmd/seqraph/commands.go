package main

import (
	"fmt"
	"strconv"

	"github.com/mankinskin/seqraph/hypergraph"
	"github.com/mankinskin/seqraph/seqraph"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// cli holds the flag values and loaded config of one root command.
type cli struct {
	configPath string
	maxSteps   int
	cfg        Config

	dotOut   string
	dotRoots []string
	dotAll   bool
	dotWidth bool
}

func newRootCmd() *cobra.Command {
	c := &cli{
		cfg: defaultConfig(),
	}

	rootCmd := &cobra.Command{
		Use:          "seqraph",
		Short:        "Build and query hypergraphs of token sequences",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(c.configPath, &c.cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("max-steps") {
				c.cfg.Graph.MaxSteps = c.maxSteps
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "yaml config file")
	rootCmd.PersistentFlags().IntVar(&c.maxSteps, "max-steps", 0, "abort a comparison after this many steps (0 for no limit)")

	runCmd := &cobra.Command{
		Use:   "run [script.py]",
		Short: "Runs a gpython script with the _seqraph module, or a REPL if no script is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathname := ""
			if len(args) > 0 {
				pathname = args[0]
			}
			return runPython(cmd.OutOrStdout(), pathname)
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check GRAMMAR",
		Short: "Loads a grammar file and validates the resulting graph",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runCheck,
	}

	dotCmd := &cobra.Command{
		Use:   "dot GRAMMAR",
		Short: "Exports the graph of a grammar file in graphviz dot format",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runDot,
	}
	dotCmd.Flags().StringVarP(&c.dotOut, "out", "o", "", "output pathname (stdout if empty)")
	dotCmd.Flags().StringSliceVar(&c.dotRoots, "root", nil, "only export vertices below these names")
	dotCmd.Flags().BoolVar(&c.dotAll, "all", false, "export every decomposition")
	dotCmd.Flags().BoolVar(&c.dotWidth, "width", false, "include vertex widths in labels")

	compareCmd := &cobra.Command{
		Use:   "compare GRAMMAR EXPR EXPR",
		Short: "Compares two name expressions for a common structural prefix",
		Args:  cobra.ExactArgs(3),
		RunE:  c.runCompare,
	}

	splitCmd := &cobra.Command{
		Use:   "split GRAMMAR EXPR POS",
		Short: "Cuts a name expression at a token offset",
		Args:  cobra.ExactArgs(3),
		RunE:  c.runSplit,
	}

	rootCmd.AddCommand(runCmd, checkCmd, dotCmd, compareCmd, splitCmd)
	return rootCmd
}

func (c *cli) runCheck(cmd *cobra.Command, args []string) error {
	g, names, err := loadGrammar(&c.cfg, args[0])
	if err != nil {
		return err
	}
	if err = g.Validate(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d vertices, %d names\n", g.Len(), len(names))
	return nil
}

func (c *cli) runDot(cmd *cobra.Command, args []string) error {
	g, names, err := loadGrammar(&c.cfg, args[0])
	if err != nil {
		return err
	}

	opts := c.cfg.Dot
	if cmd.Flags().Changed("all") {
		opts.AllPats = c.dotAll
	}
	if cmd.Flags().Changed("width") {
		opts.ShowWidth = c.dotWidth
	}
	for _, name := range c.dotRoots {
		index, exists := names[name]
		if !exists {
			return errors.Wrapf(seqraph.ErrUnknownName, "%q", name)
		}
		opts.Roots = append(opts.Roots, index)
	}

	if c.dotOut == "" {
		return g.WriteDot(cmd.OutOrStdout(), opts)
	}
	return g.WriteDotFile(c.dotOut, opts)
}

func (c *cli) runCompare(cmd *cobra.Command, args []string) error {
	g, names, err := loadGrammar(&c.cfg, args[0])
	if err != nil {
		return err
	}
	A, err := hypergraph.ParsePattern(g, names, args[1])
	if err != nil {
		return err
	}
	B, err := hypergraph.ParsePattern(g, names, args[2])
	if err != nil {
		return err
	}

	match, ok, err := compare(g, A, B)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case !ok:
		fmt.Fprintln(out, "unrelated")
	case match.Kind == seqraph.Matching:
		fmt.Fprintln(out, match.Kind)
	default:
		fmt.Fprintln(out, match.Kind, g.PatternString(match.Remainder))
	}
	return nil
}

func (c *cli) runSplit(cmd *cobra.Command, args []string) error {
	g, names, err := loadGrammar(&c.cfg, args[0])
	if err != nil {
		return err
	}
	pos, err := strconv.Atoi(args[2])
	if err != nil {
		return errors.Wrapf(err, "position %q", args[2])
	}

	var set seqraph.SplitSet
	if index, exists := names[args[1]]; exists {
		set, err = g.SplitIndex(index, seqraph.TokenPosition(pos))
	} else {
		var pat seqraph.Pattern
		if pat, err = hypergraph.ParsePattern(g, names, args[1]); err != nil {
			return err
		}
		set, err = g.SplitPattern(pat, seqraph.TokenPosition(pos))
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, pair := range set {
		fmt.Fprintf(out, "%s | %s\n", g.PatternString(pair.Left), g.PatternString(pair.Right))
	}
	return nil
}

// compare returns a step limit panic from Compare as an error.
func compare(g *hypergraph.Graph[rune], A, B seqraph.Pattern) (match seqraph.PatternMatch, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, isErr := r.(error); isErr && errors.Is(e, seqraph.ErrStepLimit) {
				err = e
				return
			}
			panic(r)
		}
	}()
	match, ok = g.Compare(A, B)
	return
}
