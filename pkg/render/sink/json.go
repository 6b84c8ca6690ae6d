package sink

import (
	"github.com/matzehuels/workflowgraph/pkg/graph"
	"github.com/matzehuels/workflowgraph/pkg/render/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	engine string
	dot    string
}

// WithJSONEngine records the Graphviz engine used for a node-link rendering.
func WithJSONEngine(name string) JSONOption { return func(r *jsonRenderer) { r.engine = name } }

// WithJSONDOT embeds a DOT source and marks the document as a node-link
// layout.
func WithJSONDOT(dot string) JSONOption { return func(r *jsonRenderer) { r.dot = dot } }

// RenderJSON exports the layout as a pretty-printed JSON document. The
// document carries the frame, every positioned node with its depth and
// resolved URL, the edges, and the routed segments in edge order, so it can
// be parsed back with [graph.UnmarshalLayout] and [layout.Parse] and
// rendered again without recomputation.
//
// RenderJSON does not modify l and is safe to call concurrently.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := l.Export()
	out.Engine = r.engine
	if r.dot != "" {
		out.VizType = graph.VizTypeNodelink
		out.DOT = r.dot
	}
	return graph.MarshalLayout(out)
}
