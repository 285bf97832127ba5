package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/engine"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/layout"
	"github.com/matzehuels/modelgraph/pkg/model"
	"github.com/matzehuels/modelgraph/pkg/view"
)

// sessionFlags are the flags shared by commands that build a session.
// Zero values leave the configured defaults in place.
type sessionFlags struct {
	view       string
	expandAll  bool
	isolate    string
	related    string
	noRichText bool

	rankDir   string
	align     string
	ranker    string
	acyclicer string
	nodeSep   float64
	rankSep   float64
	edgeSep   float64
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.view, "view", string(view.Default), "view: default, snippet, taxonomy")
	fs.BoolVar(&f.expandAll, "expand-all", false, "expand every node")
	fs.StringVar(&f.isolate, "isolate", "", "show only the node with this id")
	fs.StringVar(&f.related, "related", "", "show only the node with this id and its neighbours")
	fs.BoolVar(&f.noRichText, "no-rich-text", false, "hide edges derived from rich text elements")

	fs.StringVar(&f.rankDir, "rankdir", "", "rank direction: LR (default), TB")
	fs.StringVar(&f.align, "align", "", "alignment: UL (default), UR, DL, DR")
	fs.StringVar(&f.ranker, "ranker", "", "ranker: tight-tree (default), longest-path")
	fs.StringVar(&f.acyclicer, "acyclicer", "", "cycle breaking: none (default), dfs, greedy")
	fs.Float64Var(&f.nodeSep, "nodesep", 0, "separation between nodes of a rank")
	fs.Float64Var(&f.rankSep, "ranksep", 0, "separation between ranks")
	fs.Float64Var(&f.edgeSep, "edgesep", 0, "separation between edge bends")

	cmd.MarkFlagsMutuallyExclusive("isolate", "related")
}

// layoutOptions overlays the flags on base.
func (f *sessionFlags) layoutOptions(base layout.Options) layout.Options {
	opts := base
	if f.rankDir != "" {
		opts.RankDir = f.rankDir
	}
	if f.align != "" {
		opts.Align = f.align
	}
	if f.ranker != "" {
		opts.Ranker = f.ranker
	}
	if f.acyclicer != "" {
		opts.Acyclicer = f.acyclicer
	}
	if f.nodeSep != 0 {
		opts.NodeSep = f.nodeSep
	}
	if f.rankSep != 0 {
		opts.RankSep = f.rankSep
	}
	if f.edgeSep != 0 {
		opts.EdgeSep = f.edgeSep
	}
	return opts
}

// newSession builds a session over doc and applies the visibility flags.
func (c *CLI) newSession(doc model.Document, f *sessionFlags) (*engine.Session, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	s, err := engine.New(doc,
		engine.WithView(view.ID(f.view)),
		engine.WithLayout(f.layoutOptions(cfg.Layout)),
		engine.WithLogger(c.Logger),
	)
	if err != nil {
		return nil, err
	}

	if f.noRichText {
		s.SetIncludeRichText(false)
	}
	if f.expandAll {
		s.ExpandAll()
	}
	if f.isolate != "" {
		if err := requireNode(s, f.isolate); err != nil {
			return nil, err
		}
		s.IsolateSingle(f.isolate)
	}
	if f.related != "" {
		if err := requireNode(s, f.related); err != nil {
			return nil, err
		}
		s.IsolateRelated(f.related)
	}
	return s, nil
}

func requireNode(s *engine.Session, id string) error {
	if _, ok := s.Graph().Node(id); !ok {
		return errors.New(errors.ErrCodeNotFound, "no node %q in the %s view", id, s.View().ID)
	}
	return nil
}
