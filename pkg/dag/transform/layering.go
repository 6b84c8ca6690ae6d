package transform

import (
	"github.com/matzehuels/workflowgraph/pkg/dag"
	"github.com/matzehuels/workflowgraph/pkg/errors"
)

// DepthEntry records the layer assigned to one node.
type DepthEntry struct {
	NodeID int `json:"node_id"`
	Depth  int `json:"depth"`
}

// LeafPolicy controls what the depth assigner does when it dequeues a node
// with no outgoing edges.
type LeafPolicy int

const (
	// LeafPolicyContinue treats a childless node as an ordinary leaf and
	// keeps draining the queue.
	LeafPolicyContinue LeafPolicy = iota

	// LeafPolicyStop ends the whole traversal at the first childless node.
	// Nodes still queued or undiscovered are back-filled to depth 0. This
	// reproduces the layering of the dashboards this engine replaces.
	LeafPolicyStop
)

// String returns the policy name used in config files and flags.
func (p LeafPolicy) String() string {
	switch p {
	case LeafPolicyStop:
		return "stop"
	case LeafPolicyContinue:
		return "continue"
	}
	return "unknown"
}

// ParseLeafPolicy parses "continue" or "stop". The empty string selects
// [LeafPolicyContinue].
func ParseLeafPolicy(s string) (LeafPolicy, error) {
	switch s {
	case "", "continue":
		return LeafPolicyContinue, nil
	case "stop":
		return LeafPolicyStop, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown leaf policy %q (want continue or stop)", s)
}

// DepthOptions configures [AssignDepths].
type DepthOptions struct {
	LeafPolicy LeafPolicy
}

// AssignDepths assigns every node a layer by level-synchronized breadth-first
// traversal from start.
//
// The traversal records each dequeued node at the current depth, enqueues its
// undiscovered children in child order, and advances the depth once every
// node of the current level has been dequeued. Within a level, nodes appear
// in first-discovery order. After the traversal, every node in nodes that
// received no entry is appended at depth 0, in input order.
//
// # Childless Nodes
//
// With [LeafPolicyContinue] (the zero value) a childless node is a plain leaf
// and the traversal keeps going. With [LeafPolicyStop] it ends the first time
// a dequeued node has no children, even if other nodes are still queued.
// Those nodes are then back-filled to depth 0.
//
// # Errors
//
// A nil start returns a MISSING_START_NODE error and no entries. The start
// node itself does not need to appear in nodes; children are only ever taken
// from adj, so AssignDepths never fails on unknown ids. Validate the graph
// first with [dag.Graph.Validate] to catch them.
//
// # Performance
//
// Time complexity is O(V + E). Children are looked up through a map built once
// from adj.
func AssignDepths(nodes []dag.Node, adj dag.Adjacency, start *int, opts DepthOptions) ([]DepthEntry, error) {
	if start == nil {
		return nil, errors.New(errors.ErrCodeMissingStartNode, "no start node supplied")
	}

	children := adj.Lookup()
	depths := make([]DepthEntry, 0, len(nodes))
	recorded := make(map[int]bool, len(nodes))
	seen := map[int]bool{*start: true}

	queue := []int{*start}
	depth, remaining, next := 0, 1, 0

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		depths = append(depths, DepthEntry{NodeID: curr, Depth: depth})
		recorded[curr] = true

		kids := children[curr]
		if len(kids) == 0 && opts.LeafPolicy == LeafPolicyStop {
			break
		}
		for _, c := range kids {
			if seen[c] {
				continue
			}
			seen[c] = true
			queue = append(queue, c)
			next++
		}

		remaining--
		if remaining == 0 {
			depth++
			remaining, next = next, 0
		}
	}

	for _, n := range nodes {
		if recorded[n.ID] {
			continue
		}
		recorded[n.ID] = true
		depths = append(depths, DepthEntry{NodeID: n.ID, Depth: 0})
	}
	return depths, nil
}

// FlatDepths places every node at depth 0 in input order. Callers use it as
// the fallback when [AssignDepths] reports a missing start node.
func FlatDepths(nodes []dag.Node) []DepthEntry {
	depths := make([]DepthEntry, 0, len(nodes))
	seen := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		depths = append(depths, DepthEntry{NodeID: n.ID, Depth: 0})
	}
	return depths
}

// DepthMap indexes depth entries by node id.
func DepthMap(depths []DepthEntry) map[int]int {
	m := make(map[int]int, len(depths))
	for _, d := range depths {
		m[d.NodeID] = d.Depth
	}
	return m
}
