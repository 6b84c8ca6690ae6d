package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/workflowgraph/pkg/dag"
	"github.com/matzehuels/workflowgraph/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeWorkflow = "workflow"
	VizTypeNodelink = "nodelink"
)

// URLPlaceholder is replaced by the node id when expanding a URL template.
const URLPlaceholder = "{id}"

// =============================================================================
// Graph - Workflow Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for workflow graphs.
// Used for CLI input files, API request bodies and cache keys.
//
// StartNode is optional; a missing start node is reported when the layout
// is computed, not when the graph is decoded. URLTemplate, when set, links
// every node without its own URL to the template with {id} replaced.
type Graph struct {
	Nodes       []Node `json:"nodes"`
	Edges       []Edge `json:"edges"`
	StartNode   *int   `json:"start_node,omitempty"`
	URLTemplate string `json:"url_template,omitempty"`
}

// =============================================================================
// Node - Workflow Stage
// =============================================================================

// Node is a workflow stage with its task counters.
type Node struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	All       int    `json:"all"`
	Completed int    `json:"completed"`
	Remaining int    `json:"remaining"`
	URL       string `json:"url,omitempty"`
}

// DisplayName returns the name if set, otherwise the id.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return strconv.Itoa(n.ID)
}

// =============================================================================
// Edge - Directed Transition
// =============================================================================

// Edge represents a directed transition between two stages.
type Edge struct {
	Source int `json:"source"`
	End    int `json:"end"`
}

// =============================================================================
// DAG ↔ Graph Conversion
// =============================================================================

// FromDAG converts a workflow graph to its serialization format.
// Node and edge order is preserved since it drives layout order.
func FromDAG(g dag.Graph) Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = Node(n)
	}
	for i, e := range g.Edges {
		out.Edges[i] = Edge(e)
	}
	if g.Start != nil {
		out.StartNode = dag.StartAt(*g.Start)
	}
	return out
}

// ToDAG converts a Graph to a validated workflow graph.
// Returns UNKNOWN_NODE or INVALID_INPUT errors for inconsistent data.
func ToDAG(gj Graph) (dag.Graph, error) {
	if err := errors.ValidateURLTemplate(gj.URLTemplate); err != nil {
		return dag.Graph{}, err
	}
	g := dag.Graph{
		Nodes: make([]dag.Node, len(gj.Nodes)),
		Edges: make([]dag.Edge, len(gj.Edges)),
	}
	for i, n := range gj.Nodes {
		g.Nodes[i] = dag.Node(n)
	}
	for i, e := range gj.Edges {
		g.Edges[i] = dag.Edge(e)
	}
	if gj.StartNode != nil {
		g.Start = dag.StartAt(*gj.StartNode)
	}
	if err := g.Validate(); err != nil {
		return dag.Graph{}, err
	}
	return g, nil
}

// Resolver returns a function that expands the graph's URL template for a
// node id, or nil when no template is set.
func (g Graph) Resolver() func(id int) string {
	return TemplateResolver(g.URLTemplate)
}

// TemplateResolver returns a function that replaces {id} in tmpl with the
// node id. An empty template yields nil.
func TemplateResolver(tmpl string) func(id int) string {
	if tmpl == "" {
		return nil
	}
	return func(id int) string {
		return strings.ReplaceAll(tmpl, URLPlaceholder, strconv.Itoa(id))
	}
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph")
	}
	return g, nil
}

// Summary returns a short human-readable description of the graph.
func (g Graph) Summary() string {
	start := "none"
	if g.StartNode != nil {
		start = strconv.Itoa(*g.StartNode)
	}
	return fmt.Sprintf("%d nodes, %d edges, start %s", len(g.Nodes), len(g.Edges), start)
}
