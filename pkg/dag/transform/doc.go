// Package transform computes the layering of a workflow graph.
//
// # Overview
//
// Layout places nodes in vertical columns (layers). The column of a node is
// its depth: the number of breadth-first steps from the start node. This
// package turns an adjacency into depths and then into a per-layer census
// that the positioner uses for vertical spacing.
//
// # Depth Assignment
//
// [AssignDepths] runs a level-synchronized breadth-first traversal from the
// start node:
//
//	adj := dag.BuildAdjacency(edges)
//	depths, err := transform.AssignDepths(nodes, adj, dag.StartAt(1), transform.DepthOptions{})
//
// Nodes the traversal does not reach are placed at depth 0, so every input
// node gets exactly one entry.
//
// By default childless nodes are ordinary leaves and the full reachable graph
// is laid out ([LeafPolicyContinue]). [LeafPolicyStop] ends the traversal at
// the first dequeued node with no children, the historical behaviour of the
// dashboards this engine replaces.
//
// # Level Census
//
// [Census] counts nodes per depth. [LevelCensus.MaxCount] and
// [LevelCensus.MaxDepth] drive frame sizing.
//
// # Cycles
//
// Cycles are neither detected nor removed. Each node is visited once, so a
// back edge simply points at a node that already has a depth.
package transform
