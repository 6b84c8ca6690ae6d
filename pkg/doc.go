// Package pkg provides the libraries behind workflowgraph, a layout and
// routing engine for workflow graphs.
//
// # Overview
//
// A workflow graph is a list of queues or stages (nodes) carrying task
// counters, connected by transitions (edges). workflowgraph assigns each node
// a column by breadth-first depth from a start node, positions the columns on
// a fixed canvas and routes every edge as a straight or bent arrow. The pkg
// directory is organized as:
//
//  1. [dag] - Input model and adjacency
//  2. [dag/transform] - Depth assignment and per-layer census
//  3. [render] - Layout, SVG and DOT output, raster conversion
//  4. [graph] - Serialization types for graphs and layouts
//  5. [pipeline] - Orchestration (parse → layout → render) with caching
//
// # Architecture
//
//	graph JSON (file, stdin, URL, HTTP body)
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [dag/transform] package (depths + census)
//	         ↓
//	    [render/layout] package (positions + arrow routes)
//	         ↓
//	    [render/sink] or [render/nodelink] (SVG/PDF/PNG/JSON/DOT)
//
// # Quick Start
//
//	g, urls, err := graph.LoadDAG("flow.json")
//	l, err := layout.Build(g, layout.DefaultConfig(), layout.WithURLResolver(urls))
//	svg := sink.RenderSVG(l, sink.WithTitle("ingest"))
//
// # Infrastructure
//
// [cache] - Content-addressed cache with file, Redis and no-op backends.
//
// [observability] - Hook registry for pipeline, cache and HTTP events, with a
// Prometheus implementation.
//
// [httputil] - Remote graph fetching with retry and caching.
//
// [api] - HTTP service exposing layout and render over JSON.
//
// [errors] - Coded errors shared by every package.
//
// [dag]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/dag/transform
// [render]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/render
// [render/layout]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/render/layout
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/render/nodelink
// [graph]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/httputil
// [api]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/workflowgraph/pkg/errors
package pkg
