package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/workflowgraph/pkg/graph"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a previously computed layout",
		Long: `Render a previously computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it. The layout holds every position and route, so this step is
purely about drawing. The visualization type is read from the layout.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from graph.json to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			if err := rf.apply(&opts); err != nil {
				return err
			}

			l, err := graph.ReadLayoutFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}
			if l.VizType != "" {
				opts.VizType = l.VizType
			}

			runner, err := c.newRunner(rf.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			artifacts, cacheHit, err := renderArtifacts(cmd, runner, l, opts)
			if err != nil {
				return err
			}
			return writeArtifacts(cmd, artifactWriteParams{
				artifacts: artifacts,
				formats:   opts.Formats,
				input:     args[0],
				output:    rf.output,
				nodes:     len(l.Nodes),
				edges:     len(l.Edges),
				cacheHit:  cacheHit,
			})
		},
	}

	addRenderFlags(cmd, &rf)
	return cmd
}
