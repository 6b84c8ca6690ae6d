package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/workflowgraph/pkg/graph"
	"github.com/matzehuels/workflowgraph/pkg/pipeline"
)

// renderFlags hold the render options shared by 'render' and 'visualize'.
type renderFlags struct {
	formats  string
	output   string
	noCache  bool
	refresh  bool
	detailed bool
	hover    bool
	title    string
	scale    float64
}

func addRenderFlags(cmd *cobra.Command, f *renderFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, dot, png, pdf (comma-separated)")
	fs.StringVarP(&f.output, "output", "o", "", `output file (single format), base path (multiple) or "-" for stdout`)
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
	fs.BoolVar(&f.detailed, "detailed", false, "show task counters in node-link labels")
	fs.BoolVar(&f.hover, "hover", false, "highlight stages under the pointer (SVG)")
	fs.StringVar(&f.title, "title", "", "document title (SVG)")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
}

func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = pipeline.ParseFormats(f.formats)
	opts.Refresh = f.refresh
	opts.Detailed = f.detailed
	opts.Hover = f.hover
	opts.Title = f.title
	opts.Scale = f.scale
	opts.SetRenderDefaults()

	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if f.output == stdioName && len(opts.Formats) > 1 {
		return fmt.Errorf("stdout output needs exactly one format, got %d", len(opts.Formats))
	}
	return nil
}

// renderCommand creates the render command that goes from graph to output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		rf      renderFlags
		lf      layoutFlags
		gf      graphFlags
		vizType string
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json|URL|-]",
		Short: "Render a workflow graph to SVG, PNG, PDF, DOT or JSON",
		Long: `Render a workflow graph to SVG, PNG, PDF, DOT or JSON.

This is 'layout' followed by 'visualize' in one step. PNG and PDF need
rsvg-convert (librsvg) on the PATH.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.VizType = vizType
			lf.apply(cmd, &opts.Layout)
			if err := rf.apply(&opts); err != nil {
				return err
			}

			g, err := readGraphInput(cmd.Context(), args[0], cmd.InOrStdin(), rf.noCache)
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			if err := gf.apply(cmd, &g); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], g, opts, rf)
		},
	}

	cmd.Flags().StringVarP(&vizType, "type", "t", pipeline.DefaultVizType, "visualization type: workflow, nodelink")
	addRenderFlags(cmd, &rf)
	addLayoutFlags(cmd, &lf)
	addGraphFlags(cmd, &gf)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, g graph.Graph, opts pipeline.Options, rf renderFlags) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(rf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, layoutHit, err := computeLayout(ctx, runner, g, opts)
	if err != nil {
		return err
	}
	artifacts, renderHit, err := renderArtifacts(cmd, runner, l, opts)
	if err != nil {
		return err
	}

	return writeArtifacts(cmd, artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    rf.output,
		nodes:     len(g.Nodes),
		edges:     len(g.Edges),
		cacheHit:  layoutHit && renderHit,
	})
}

// renderArtifacts runs the render stage behind a spinner.
func renderArtifacts(cmd *cobra.Command, runner *pipeline.Runner, l graph.Layout, opts pipeline.Options) (map[string][]byte, bool, error) {
	ctx := cmd.Context()
	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, false, fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %s", strings.Join(opts.Formats, ", ")))
	return artifacts, cacheHit, nil
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts    map[string][]byte
	formats      []string
	input        string
	output       string
	nodes, edges int
	cacheHit     bool
}

// artifactPaths maps each format to its output file.
//
// A single format writes to output verbatim. Several formats share a base
// path: output minus any known format extension, else the input stem.
func artifactPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or derives the
// stem from input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(outputBase(input), ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeArtifacts(cmd *cobra.Command, p artifactWriteParams) error {
	paths := artifactPaths(p.formats, p.input, p.output)
	for _, f := range p.formats {
		if err := writeOutput(paths[f], p.artifacts[f], cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
	}
	if p.output == stdioName {
		return nil
	}

	printSuccess("Render complete")
	for _, f := range p.formats {
		printFile(paths[f])
	}
	printStats(p.nodes, p.edges, p.cacheHit)
	return nil
}
