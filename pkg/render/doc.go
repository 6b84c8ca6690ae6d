// Package render provides visualization rendering for workflow graphs.
//
// # Overview
//
// This package contains the rendering pipeline that turns a computed layout
// into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Coordinate and arrow computation (in [layout] subpackage)
//   - Workflow diagram output (in [sink] subpackage)
//   - Graphviz node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both sinks use them.
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// When rsvg-convert is missing the conversion fails with an UNSUPPORTED
// error; [Available] checks beforehand.
//
// # Workflow Diagrams
//
// The [layout] subpackage places nodes in depth columns and routes arrows.
// The [sink] subpackage draws the result as SVG with count badges, or
// exports it as JSON.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage emits the same layout as Graphviz DOT with every
// node pinned to its computed position, and renders it in-process.
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [layout]: github.com/matzehuels/workflowgraph/pkg/render/layout
// [sink]: github.com/matzehuels/workflowgraph/pkg/render/sink
// [nodelink]: github.com/matzehuels/workflowgraph/pkg/render/nodelink
package render
