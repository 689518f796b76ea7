package main

import (
	"os"

	"github.com/mankinskin/seqraph/hypergraph"
	"github.com/mankinskin/seqraph/seqraph"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is read from the yaml file named by --config, e.g.
//
//	graph:
//	  name: fixture
//	  max_steps: 100000
//	dot:
//	  all_pats: true
//	  show_width: true
type Config struct {
	Graph seqraph.GraphOpts `yaml:"graph"`
	Dot   seqraph.DotOpts   `yaml:"dot"`
}

func defaultConfig() Config {
	return Config{
		Graph: seqraph.DefaultGraphOpts,
	}
}

// loadConfig overlays the yaml file at pathname onto cfg.  An empty pathname leaves cfg unchanged.
func loadConfig(pathname string, cfg *Config) error {
	if pathname == "" {
		return nil
	}
	buf, err := os.ReadFile(pathname)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(buf, cfg); err != nil {
		return errors.Wrapf(err, "parsing config %q", pathname)
	}
	return nil
}

// loadGrammar builds a graph with the configured options from the grammar file at pathname.
func loadGrammar(cfg *Config, pathname string) (*hypergraph.Graph[rune], hypergraph.Names, error) {
	buf, err := os.ReadFile(pathname)
	if err != nil {
		return nil, nil, err
	}
	g := hypergraph.NewGraph[rune](cfg.Graph)
	names := make(hypergraph.Names)
	if err = hypergraph.Load(g, names, pathname, string(buf)); err != nil {
		return nil, nil, err
	}
	return g, names, nil
}
