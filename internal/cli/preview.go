package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/workflowgraph/pkg/graph"
	"github.com/matzehuels/workflowgraph/pkg/render/layout"
)

// previewCommand creates the preview command for browsing a layout.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		static  bool
		noCache bool
		lf      layoutFlags
		gf      graphFlags
	)

	cmd := &cobra.Command{
		Use:   "preview [graph.json|layout.json|URL|-]",
		Short: "Browse positioned stages and their routes in the terminal",
		Long: `Browse positioned stages and their routes in the terminal.

Inputs ending in .layout.json are shown as they are; anything else is laid
out first. Use --static to print the table once without the interactive
browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.previewLayout(cmd, args[0], noCache, &lf, &gf)
			if err != nil {
				return err
			}

			m := NewPreviewModel(l)
			if static {
				m.Height = len(l.Nodes)
				fmt.Fprintln(cmd.OutOrStdout(), m.View())
				return nil
			}
			_, err = tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&static, "static", false, "print the table once and exit")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &lf)
	addGraphFlags(cmd, &gf)

	return cmd
}

// previewLayout loads a layout file or computes one from a graph.
func (c *CLI) previewLayout(cmd *cobra.Command, input string, noCache bool, lf *layoutFlags, gf *graphFlags) (layout.Layout, error) {
	if strings.HasSuffix(input, ".layout.json") {
		gl, err := graph.ReadLayoutFile(input)
		if err != nil {
			return layout.Layout{}, fmt.Errorf("load layout %s: %w", input, err)
		}
		return layout.Parse(gl)
	}

	opts := c.baseOptions()
	lf.apply(cmd, &opts.Layout)
	g, err := readGraphInput(cmd.Context(), input, cmd.InOrStdin(), noCache)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("load graph %s: %w", input, err)
	}
	if err := gf.apply(cmd, &g); err != nil {
		return layout.Layout{}, err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	gl, _, err := runner.LayoutWithCacheInfo(cmd.Context(), g, opts)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("compute layout: %w", err)
	}
	return layout.Parse(gl)
}
