package dag

import (
	"slices"

	"github.com/matzehuels/workflowgraph/pkg/errors"
)

// Node is a workflow stage (typically a queue) with its task counters.
//
// All is expected to equal Completed+Remaining but this is not enforced;
// mismatched counters are rendered as given.
type Node struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	All       int    `json:"all"`
	Completed int    `json:"completed"`
	Remaining int    `json:"remaining"`
	URL       string `json:"url,omitempty"` // Optional link; resolved from a template when empty
}

// Edge is a directed transition from Source to End.
// Multiple edges between the same pair are allowed and each is routed.
type Edge struct {
	Source int `json:"source"`
	End    int `json:"end"`
}

// Graph is the complete input of one layout pass.
//
// Start is optional: a nil Start means no start node was supplied. Id 0 is a
// valid start node.
type Graph struct {
	Nodes []Node
	Edges []Edge
	Start *int
}

// StartAt returns a pointer to id, for use as [Graph.Start].
func StartAt(id int) *int { return &id }

// NodeIndex maps node ids to their position in a node slice.
type NodeIndex map[int]int

// IndexNodes builds an id index over nodes. When ids repeat, the first
// occurrence wins.
func IndexNodes(nodes []Node) NodeIndex {
	idx := make(NodeIndex, len(nodes))
	for i, n := range nodes {
		if _, ok := idx[n.ID]; !ok {
			idx[n.ID] = i
		}
	}
	return idx
}

// Has reports whether id is indexed.
func (idx NodeIndex) Has(id int) bool {
	_, ok := idx[id]
	return ok
}

// Validate checks the graph's referential integrity.
//
// It returns an INVALID_INPUT error for duplicate node ids or negative task
// counters, and an UNKNOWN_NODE error when an edge or the start node refers
// to an id missing from Nodes. A nil Start is not an error here; the depth
// assigner reports it as MISSING_START_NODE.
func (g Graph) Validate() error {
	idx := make(NodeIndex, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, dup := idx[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate node id %d", n.ID)
		}
		if n.All < 0 || n.Completed < 0 || n.Remaining < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "node %d: task counts must not be negative", n.ID)
		}
		if err := errors.ValidateNodeURL(n.URL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", n.ID)
		}
		idx[n.ID] = i
	}
	for _, e := range g.Edges {
		if !idx.Has(e.Source) {
			return errors.New(errors.ErrCodeUnknownNode, "edge %d->%d: source node %d not found", e.Source, e.End, e.Source)
		}
		if !idx.Has(e.End) {
			return errors.New(errors.ErrCodeUnknownNode, "edge %d->%d: end node %d not found", e.Source, e.End, e.End)
		}
	}
	if g.Start != nil && !idx.Has(*g.Start) {
		return errors.New(errors.ErrCodeUnknownNode, "start node %d not found", *g.Start)
	}
	return nil
}

// Clone returns a deep copy of the graph.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: slices.Clone(g.Nodes),
		Edges: slices.Clone(g.Edges),
	}
	if g.Start != nil {
		out.Start = StartAt(*g.Start)
	}
	return out
}
