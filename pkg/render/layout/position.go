package layout

import (
	"github.com/matzehuels/workflowgraph/pkg/dag"
	"github.com/matzehuels/workflowgraph/pkg/dag/transform"
	"github.com/matzehuels/workflowgraph/pkg/errors"
)

// URLResolver derives a link for a node that carries none of its own.
// A nil resolver leaves such nodes without a link.
type URLResolver func(id int) string

// PositionedNode is a node with its layer and coordinates. X is the left edge
// of the node's rectangle and Y its vertical centre. URL holds the resolved
// link.
type PositionedNode struct {
	dag.Node
	Depth int
	X, Y  float64
}

// Position assigns coordinates to every depth entry, in entry order.
//
// Column: x = SideMargin + depth·(RectWidth + NodeMargin).
// Row: each depth keeps a running accumulator advanced by
// WindowHeight/(census[depth]+1) before each placement, so a level of n nodes
// gets y = k·H/(n+1) for k = 1..n in discovery order.
//
// Input nodes are never modified; the result holds copies. An entry for an id
// missing from nodes is an UNKNOWN_NODE error. A depth with a zero census
// count is a DEGENERATE_GEOMETRY error.
func Position(depths []transform.DepthEntry, census transform.LevelCensus, p Params, nodes []dag.Node, urls URLResolver) ([]PositionedNode, error) {
	idx := dag.IndexNodes(nodes)
	acc := make(map[int]float64, len(census))
	out := make([]PositionedNode, 0, len(depths))

	for _, d := range depths {
		i, ok := idx[d.NodeID]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "depth entry for node %d: node not found", d.NodeID)
		}
		count := census[d.Depth]
		if count <= 0 {
			return nil, errors.New(errors.ErrCodeDegenerateGeometry, "depth %d has no nodes in census", d.Depth)
		}

		acc[d.Depth] += p.WindowHeight / float64(count+1)

		pn := PositionedNode{
			Node:  nodes[i],
			Depth: d.Depth,
			X:     p.SideMargin + float64(d.Depth)*(p.RectWidth+p.NodeMargin),
			Y:     acc[d.Depth],
		}
		if pn.URL == "" && urls != nil {
			pn.URL = urls(pn.ID)
		}
		out = append(out, pn)
	}
	return out, nil
}
