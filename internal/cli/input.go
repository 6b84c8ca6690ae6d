package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/workflowgraph/pkg/dag/transform"
	"github.com/matzehuels/workflowgraph/pkg/errors"
	"github.com/matzehuels/workflowgraph/pkg/graph"
	"github.com/matzehuels/workflowgraph/pkg/httputil"
	"github.com/matzehuels/workflowgraph/pkg/render/layout"
)

// stdioName is the input/output argument for stdin/stdout.
const stdioName = "-"

// =============================================================================
// Graph Input
// =============================================================================

// graphFlags override parts of the input graph.
type graphFlags struct {
	start       int
	urlTemplate string
}

func addGraphFlags(cmd *cobra.Command, f *graphFlags) {
	cmd.Flags().IntVar(&f.start, "start", 0, "start node id (overrides the graph's start_node)")
	cmd.Flags().StringVar(&f.urlTemplate, "url-template", "", "link template containing {id} (overrides the graph's url_template)")
}

func (f *graphFlags) apply(cmd *cobra.Command, g *graph.Graph) error {
	if cmd.Flags().Changed("start") {
		start := f.start
		g.StartNode = &start
	}
	if cmd.Flags().Changed("url-template") {
		if err := errors.ValidateURLTemplate(f.urlTemplate); err != nil {
			return err
		}
		g.URLTemplate = f.urlTemplate
	}
	return nil
}

// readGraphInput loads a graph from a file, an http(s) URL or stdin ("-").
func readGraphInput(ctx context.Context, input string, stdin io.Reader, noCache bool) (graph.Graph, error) {
	switch {
	case input == stdioName:
		return graph.ReadGraph(stdin)
	case httputil.IsURL(input):
		c, err := newCache(noCache)
		if err != nil {
			return graph.Graph{}, err
		}
		defer c.Close()
		f := httputil.NewFetcher(c)
		f.Logger = loggerFromContext(ctx)
		data, err := f.Get(ctx, input)
		if err != nil {
			return graph.Graph{}, err
		}
		return graph.UnmarshalGraph(data)
	default:
		return graph.ReadGraphFile(input)
	}
}

// outputBase derives the output path stem from the input argument.
func outputBase(input string) string {
	if input == stdioName || httputil.IsURL(input) {
		return "workflow"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// writeOutput writes data to path, or to stdout for "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == stdioName {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// =============================================================================
// Layout Flags
// =============================================================================

// layoutFlags mirror layout.Config. Only flags given on the command line
// override the config file.
type layoutFlags struct {
	width, height         float64
	rectWidth, rectHeight float64
	sideMargin            float64
	nodeMargin            float64
	straight              bool
	nudge                 bool
	leafPolicy            string
}

func addLayoutFlags(cmd *cobra.Command, f *layoutFlags) {
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", layout.DefaultWindowWidth, "frame width")
	fs.Float64Var(&f.height, "height", layout.DefaultWindowHeight, "frame height")
	fs.Float64Var(&f.rectWidth, "rect-width", 0, "node width (0 sizes nodes to the frame)")
	fs.Float64Var(&f.rectHeight, "rect-height", layout.DefaultRectHeight, "node height")
	fs.Float64Var(&f.sideMargin, "side-margin", layout.DefaultSideMargin, "left and right margin")
	fs.Float64Var(&f.nodeMargin, "node-margin", layout.DefaultNodeMargin, "gap between depth columns")
	fs.BoolVar(&f.straight, "straight", false, "draw every edge as one straight line")
	fs.BoolVar(&f.nudge, "straight-nudge", false, "offset straight arrows by half a node height")
	fs.StringVar(&f.leafPolicy, "leaf-policy", transform.LeafPolicyContinue.String(), "depth walk at leaves: continue, stop")
}

func (f *layoutFlags) apply(cmd *cobra.Command, cfg *layout.Config) {
	fs := cmd.Flags()
	set := func(name string, dst *float64, v float64) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("width", &cfg.WindowWidth, f.width)
	set("height", &cfg.WindowHeight, f.height)
	set("rect-width", &cfg.RectWidth, f.rectWidth)
	set("rect-height", &cfg.RectHeight, f.rectHeight)
	set("side-margin", &cfg.SideMargin, f.sideMargin)
	set("node-margin", &cfg.NodeMargin, f.nodeMargin)
	if fs.Changed("straight") {
		cfg.StraightArrows = f.straight
	}
	if fs.Changed("straight-nudge") {
		cfg.StraightNudge = f.nudge
	}
	if fs.Changed("leaf-policy") {
		cfg.LeafPolicy = f.leafPolicy
	}
}
