// Package sink provides output format renderers for workflow layouts.
//
// # Overview
//
// After [layout.Build] computes node positions and arrow segments, this
// package turns the result into files:
//
//   - SVG: [RenderSVG] draws nodes, labels, count badges and arrows
//   - JSON: [RenderJSON] exports the layout for caching and re-rendering
//   - PDF: [RenderPDF] converts the SVG (requires rsvg-convert)
//   - PNG: [RenderPNG] rasterizes the SVG (requires rsvg-convert)
//
// # SVG Output
//
// Every node is a light rectangle whose left edge sits at the node's X and
// whose vertical centre sits at its Y. The label starts just inside the left
// edge and is cut to the characters that fit. Up to three rounded badges sit
// on the top edge: the task total on the left, completed tasks in the middle
// and remaining tasks on the right. A badge whose count is zero is not drawn.
// Nodes with a URL are wrapped in a link that opens in a new tab.
//
// Arrows are plain lines. The bend leg of an angled route has no head; the
// final leg ends in a triangle marker.
//
// Colours and badge geometry come from a [Theme]:
//
//	svg := sink.RenderSVG(l, sink.WithTheme(sink.Theme{Node: "#eef"}))
//
// # JSON Output
//
// The JSON document is a [graph.Layout]. It can be read back with
// [graph.ReadLayoutFile] and [layout.Parse].
//
// [layout.Build]: github.com/matzehuels/workflowgraph/pkg/render/layout.Build
// [layout.Parse]: github.com/matzehuels/workflowgraph/pkg/render/layout.Parse
// [graph.Layout]: github.com/matzehuels/workflowgraph/pkg/graph.Layout
// [graph.ReadLayoutFile]: github.com/matzehuels/workflowgraph/pkg/graph.ReadLayoutFile
package sink
