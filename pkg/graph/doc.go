// Package graph provides serialization types for workflow graphs and layouts.
//
// This package defines the canonical wire format for workflowgraph data,
// used for JSON files, API bodies and cache keys.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [Layout]: Serialization types (this package)
//   - pkg/dag.Graph: Internal graph representation
//   - pkg/render/layout.Layout: Internal layout (positions, routes)
//
// Use [FromDAG]/[ToDAG] and the layout package's Export/Parse to convert
// between them.
//
// # Graph Serialization
//
// Graphs use a node-link JSON format with task counters:
//
//	{
//	  "nodes": [{"id": 1, "name": "ingest", "all": 10, "completed": 4, "remaining": 6}],
//	  "edges": [{"source": 1, "end": 2}],
//	  "start_node": 1,
//	  "url_template": "/queues/{id}"
//	}
//
// start_node is optional and 0 is a valid id. url_template links every node
// that has no url of its own.
//
// Common operations:
//
//	gj, _ := graph.ReadGraphFile("flow.json")   // File → Graph
//	g, _ := graph.ToDAG(gj)                     // Graph → validated dag.Graph
//	graph.WriteGraphFile(gj, "out.json")        // Graph → File
//
// # Layout Serialization
//
// Layouts carry frame geometry, positioned nodes (with depth) and routed
// segments (with direction). Nodelink layouts also carry pinned DOT:
//
//	layout, _ := graph.UnmarshalLayout(data)
//	if layout.IsNodelink() {
//	    // Use layout.DOT for Graphviz rendering
//	}
//
// # Concurrency
//
// All functions are safe for concurrent use; none keep state.
package graph
