// Package dag provides the workflow graph model used by the layout engine.
//
// # Overview
//
// A workflow graph is a set of stages ([Node], usually queues with task
// counters) connected by directed transitions ([Edge]). Layout starts from a
// single start node and walks the graph breadth-first, so the graph is
// expected to be reachable from that node; nodes that are not reachable are
// still placed, at depth 0.
//
// The graph is "acyclic-ish": cycles are not detected or removed. The
// breadth-first walk visits each node once, so cycles simply stop expanding.
//
// # Adjacency
//
// [BuildAdjacency] converts the flat edge list into parent→children entries,
// preserving first-seen edge order and parallel edges:
//
//	adj := dag.BuildAdjacency([]dag.Edge{{Source: 1, End: 2}, {Source: 1, End: 3}})
//	adj.Children(1) // [2 3]
//
// # Validation
//
// [Graph.Validate] checks referential integrity before a layout pass: node
// ids must be unique and every edge endpoint and the start node must exist.
// Errors carry codes from the errors package (UNKNOWN_NODE, INVALID_INPUT).
//
// # Start Node
//
// [Graph.Start] is a pointer so that "no start node" is distinct from a start
// node with id 0. Use [StartAt] to build one inline.
package dag
