package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/workflowgraph/pkg/errors"
)

// =============================================================================
// Layout - Computed Diagram Format
// =============================================================================

// Layout is the serialization format for a computed workflow diagram.
//
// Both viz types carry the positioned nodes and routed segments:
//
//	Workflow ("workflow"):
//	  - rendered directly to SVG from Nodes and Segments
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT with node positions pinned to Nodes
//	  - Engine: Graphviz layout engine used to render DOT
//
// For rendering there is also an internal representation
// (pkg/render/layout.Layout). Use its Export method and layout.Parse to
// convert between them.
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type"`

	// Frame and node geometry
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	RectWidth  float64 `json:"rect_width"`
	RectHeight float64 `json:"rect_height"`
	SideMargin float64 `json:"side_margin"`
	NodeMargin float64 `json:"node_margin"`
	Straight   bool    `json:"straight,omitempty"`

	// Graph structure
	StartNode *int          `json:"start_node,omitempty"`
	Fallback  bool          `json:"fallback,omitempty"` // Depths defaulted to 0, no start node
	Nodes     []LayoutNode  `json:"nodes"`
	Edges     []Edge        `json:"edges,omitempty"`
	Segments  []Segment     `json:"segments"`
	Levels    map[int][]int `json:"levels,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty"`
	Engine string `json:"engine,omitempty"`
}

// IsWorkflow returns true if this is a workflow layout.
func (l *Layout) IsWorkflow() bool { return l.VizType == VizTypeWorkflow }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// =============================================================================
// LayoutNode - Positioned Stage
// =============================================================================

// LayoutNode is a node with its depth and coordinates.
// X is the rectangle's left edge, Y its vertical centre.
type LayoutNode struct {
	Node
	Depth int     `json:"depth"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// =============================================================================
// Segment - Routed Line
// =============================================================================

// Segment is one drawable line of a routed edge.
type Segment struct {
	Bend      bool    `json:"bend"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Direction string  `json:"direction,omitempty"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal layout")
	}

	if l.VizType == "" {
		l.VizType = VizTypeWorkflow
	}

	switch {
	case !l.IsWorkflow() && !l.IsNodelink():
		return Layout{}, errors.New(errors.ErrCodeInvalidVizType, "unknown viz_type %q", l.VizType)
	case l.Height <= 0 && len(l.Nodes) > 0:
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "layout with nodes must have a positive height")
	case l.IsNodelink() && l.DOT == "":
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "nodelink layout must contain DOT string")
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
