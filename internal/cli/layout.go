package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/workflowgraph/pkg/graph"
	"github.com/matzehuels/workflowgraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing workflow layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		vizType string
		lf      layoutFlags
		gf      graphFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json|URL|-]",
		Short: "Compute a layout from a workflow graph",
		Long: `Compute a layout from a workflow graph.

The layout command assigns every stage a depth, places it in its depth
column and routes the arrows between stages. The output is a layout.json
file (same format as 'render -f json') that 'visualize' and 'preview' read.

The input may be a file, an http(s) URL or "-" for stdin.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.VizType = vizType
			opts.Refresh = refresh
			lf.apply(cmd, &opts.Layout)

			g, err := readGraphInput(cmd.Context(), args[0], cmd.InOrStdin(), noCache)
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			if err := gf.apply(cmd, &g); err != nil {
				return err
			}
			if output == "" {
				output = outputBase(args[0]) + ".layout.json"
			}
			return c.runLayout(cmd, g, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default: <input>.layout.json)`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().StringVarP(&vizType, "type", "t", pipeline.DefaultVizType, "visualization type: workflow, nodelink")
	addLayoutFlags(cmd, &lf)
	addGraphFlags(cmd, &gf)

	return cmd
}

// runLayout computes the layout and writes it as JSON.
func (c *CLI) runLayout(cmd *cobra.Command, g graph.Graph, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, cacheHit, err := computeLayout(ctx, runner, g, opts)
	if err != nil {
		return err
	}

	data, err := graph.MarshalLayout(l)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := writeOutput(output, data, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	if output == stdioName {
		return nil
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(g.Nodes), len(g.Edges), cacheHit)
	if l.Fallback {
		printWarning("No start node: every stage was placed at depth 0")
	}
	printNewline()
	printNextStep("Render", appName+" visualize "+output)
	return nil
}

// computeLayout runs the layout stage behind a spinner.
func computeLayout(ctx context.Context, runner *pipeline.Runner, g graph.Graph, opts pipeline.Options) (graph.Layout, bool, error) {
	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.VizType))
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return graph.Layout{}, false, fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return graph.Layout{}, false, ctx.Err()
	}
	prog.done(fmt.Sprintf("Computed layout for %d stages", len(l.Nodes)))
	return l, cacheHit, nil
}
