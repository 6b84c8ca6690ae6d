// Package nodelink renders workflow layouts as Graphviz node-link diagrams.
//
// # Overview
//
// This package is an alternative output for a computed workflow layout. It
// emits Graphviz DOT in which every node is pinned to the coordinates chosen
// by the layout package, and lets Graphviz draw the boxes and spline edges.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the completed/total counts
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools (neato -n)
//   - Customized before rendering
//
// Positions are written in inches with a trailing "!" so neato keeps them.
// Nodes with a URL become links in the SVG output.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
