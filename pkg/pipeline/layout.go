package pipeline

import (
	"github.com/matzehuels/workflowgraph/pkg/graph"
	"github.com/matzehuels/workflowgraph/pkg/render/layout"
	"github.com/matzehuels/workflowgraph/pkg/render/nodelink"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes a complete serializable layout for any
// visualization type. opts must have passed ValidateForLayout.
//
// Both workflow and nodelink layouts carry positioned nodes, edges and routed
// segments. A nodelink layout additionally embeds the pinned DOT source and
// the Graphviz engine used to draw it.
func GenerateLayout(g graph.Graph, opts Options) (graph.Layout, error) {
	dg, err := graph.ToDAG(g)
	if err != nil {
		return graph.Layout{}, err
	}

	l, err := layout.Build(dg, opts.Layout,
		layout.WithURLResolver(g.Resolver()),
		layout.WithLogger(opts.Logger))
	if err != nil {
		return graph.Layout{}, err
	}

	out := l.Export()
	if opts.IsNodelink() {
		out.VizType = graph.VizTypeNodelink
		out.DOT = nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})
		out.Engine = nodelink.Engine
	}
	return out, nil
}
