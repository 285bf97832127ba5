package layout

import (
	"github.com/matzehuels/modelgraph/pkg/dag/transform"
	"github.com/matzehuels/modelgraph/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

// Rank directions.
const (
	RankDirTB = "TB"
	RankDirLR = "LR"
)

// Alignments. The first letter picks the sweep that fixes positions last
// (Up or Down), the second the median used for even neighbour counts (Left
// or Right).
const (
	AlignUL = "UL"
	AlignUR = "UR"
	AlignDL = "DL"
	AlignDR = "DR"
)

// Acyclicer names. "none" is accepted for compatibility and behaves like
// "dfs": cyclic input is normal and always needs breaking.
const (
	AcyclicerDFS    = string(transform.AcyclicerDFS)
	AcyclicerGreedy = string(transform.AcyclicerGreedy)
	AcyclicerNone   = "none"
)

// Ranker names.
const (
	RankerLongestPath = string(transform.RankerLongestPath)
	RankerTightTree   = string(transform.RankerTightTree)
)

const (
	DefaultRankDir   = RankDirLR
	DefaultAlign     = AlignUL
	DefaultRanker    = RankerTightTree
	DefaultAcyclicer = AcyclicerNone

	DefaultNodeSep    = 60.0
	DefaultRankSep    = 200.0
	DefaultEdgeSep    = 10.0
	DefaultNodeWidth  = 172.0
	DefaultNodeHeight = 76.0
	DefaultRowHeight  = 26.0
)

// ValidRankDirs is the set of supported rank directions.
var ValidRankDirs = map[string]bool{
	RankDirTB: true,
	RankDirLR: true,
}

// ValidAligns is the set of supported alignments.
var ValidAligns = map[string]bool{
	AlignUL: true,
	AlignUR: true,
	AlignDL: true,
	AlignDR: true,
}

// ValidRankers is the set of supported rankers.
var ValidRankers = map[string]bool{
	RankerLongestPath: true,
	RankerTightTree:   true,
}

// ValidAcyclicers is the set of supported cycle breaking heuristics.
var ValidAcyclicers = map[string]bool{
	AcyclicerDFS:    true,
	AcyclicerGreedy: true,
	AcyclicerNone:   true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures [Layout]. Zero values are replaced by defaults.
type Options struct {
	RankDir   string `json:"rankdir,omitempty" toml:"rankdir"`
	Align     string `json:"align,omitempty" toml:"align"`
	Ranker    string `json:"ranker,omitempty" toml:"ranker"`
	Acyclicer string `json:"acyclicer,omitempty" toml:"acyclicer"`

	NodeSep    float64 `json:"nodesep,omitempty" toml:"nodesep"`
	RankSep    float64 `json:"ranksep,omitempty" toml:"ranksep"`
	EdgeSep    float64 `json:"edgesep,omitempty" toml:"edgesep"`
	NodeWidth  float64 `json:"node_width,omitempty" toml:"node_width"`
	NodeHeight float64 `json:"node_height,omitempty" toml:"node_height"`
	RowHeight  float64 `json:"row_height,omitempty" toml:"row_height"`
}

// Defaults returns the default options.
func Defaults() Options {
	var o Options
	o.SetDefaults()
	return o
}

// SetDefaults fills zero fields with default values.
func (o *Options) SetDefaults() {
	if o.RankDir == "" {
		o.RankDir = DefaultRankDir
	}
	if o.Align == "" {
		o.Align = DefaultAlign
	}
	if o.Ranker == "" {
		o.Ranker = DefaultRanker
	}
	if o.Acyclicer == "" {
		o.Acyclicer = DefaultAcyclicer
	}
	if o.NodeSep == 0 {
		o.NodeSep = DefaultNodeSep
	}
	if o.RankSep == 0 {
		o.RankSep = DefaultRankSep
	}
	if o.EdgeSep == 0 {
		o.EdgeSep = DefaultEdgeSep
	}
	if o.NodeWidth == 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.RowHeight == 0 {
		o.RowHeight = DefaultRowHeight
	}
}

// Validate applies defaults and checks every option.
func (o *Options) Validate() error {
	o.SetDefaults()
	if !ValidRankDirs[o.RankDir] {
		return errors.New(errors.ErrCodeInvalidLayout, "invalid rankdir: %q (must be one of: TB, LR)", o.RankDir)
	}
	if !ValidAligns[o.Align] {
		return errors.New(errors.ErrCodeInvalidLayout, "invalid align: %q (must be one of: UL, UR, DL, DR)", o.Align)
	}
	if !ValidRankers[o.Ranker] {
		return errors.New(errors.ErrCodeInvalidLayout, "invalid ranker: %q (must be one of: longest-path, tight-tree)", o.Ranker)
	}
	if !ValidAcyclicers[o.Acyclicer] {
		return errors.New(errors.ErrCodeInvalidLayout, "invalid acyclicer: %q (must be one of: dfs, greedy, none)", o.Acyclicer)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"nodesep", o.NodeSep},
		{"ranksep", o.RankSep},
		{"edgesep", o.EdgeSep},
		{"node_width", o.NodeWidth},
		{"node_height", o.NodeHeight},
		{"row_height", o.RowHeight},
	} {
		if f.value < 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "%s must not be negative (got %v)", f.name, f.value)
		}
	}
	return nil
}

func (o Options) acyclicer() transform.Acyclicer {
	if o.Acyclicer == AcyclicerGreedy {
		return transform.AcyclicerGreedy
	}
	return transform.AcyclicerDFS
}

func (o Options) ranker() transform.Ranker {
	if o.Ranker == RankerLongestPath {
		return transform.RankerLongestPath
	}
	return transform.RankerTightTree
}

func (o Options) horizontal() bool { return o.RankDir == RankDirLR }

// alignToParents reports whether the coordinate sweeps end with a downward
// pass, which aligns nodes with their parents.
func (o Options) alignToParents() bool { return o.Align == AlignUL || o.Align == AlignUR }

func (o Options) rightMedian() bool { return o.Align == AlignUR || o.Align == AlignDR }
