package layout

import (
	"math"

	"github.com/matzehuels/workflowgraph/pkg/dag"
	"github.com/matzehuels/workflowgraph/pkg/errors"
)

// eps is the tolerance for comparing y coordinates. Level accumulators sum
// repeated fractions of the window height, so a node drawn on the centre row
// may sit a few ulps away from H/2.
const eps = 1e-9

// arrowInset keeps arrowheads clear of the target rectangle; bendOffset moves
// vertical legs off the rectangle's centre line.
const (
	arrowInset = 7.0
	bendOffset = 5.0
)

// Direction classifies an edge by where its target sits relative to its
// source.
type Direction string

// Edge directions.
const (
	DirectionStraight  Direction = "straight"   // Same row, or straight-arrow mode
	DirectionSouthWest Direction = "south_west" // Target below, source on the centre row
	DirectionNorthEast Direction = "north_east" // Target below, source off the centre row
	DirectionNorthWest Direction = "north_west" // Target above, source on the centre row
	DirectionSouthEast Direction = "south_east" // Target above, source off the centre row
)

// Segment is one drawable line. Bend marks the first leg of a bent edge,
// which is drawn without an arrowhead.
type Segment struct {
	Bend      bool      `json:"bend"`
	X1        float64   `json:"x1"`
	Y1        float64   `json:"y1"`
	X2        float64   `json:"x2"`
	Y2        float64   `json:"y2"`
	Direction Direction `json:"direction,omitempty"`
}

// EdgeRoute is the geometry of one edge: one segment for straight edges, two
// for bent ones.
type EdgeRoute struct {
	Edge      dag.Edge
	Direction Direction
	Segments  []Segment
}

// Route computes the segments for every edge, in edge order.
func Route(edges []dag.Edge, nodes []PositionedNode, p Params) ([]Segment, error) {
	routes, err := RouteAll(edges, nodes, p)
	if err != nil {
		return nil, err
	}
	return Flatten(routes), nil
}

// RouteAll computes one [EdgeRoute] per edge, in edge order. Positioned
// nodes are indexed once; the first node wins when ids repeat. An edge whose
// endpoint is not positioned is an UNKNOWN_NODE error.
func RouteAll(edges []dag.Edge, nodes []PositionedNode, p Params) ([]EdgeRoute, error) {
	idx := make(map[int]int, len(nodes))
	for i, n := range nodes {
		if _, ok := idx[n.ID]; !ok {
			idx[n.ID] = i
		}
	}

	routes := make([]EdgeRoute, 0, len(edges))
	for _, e := range edges {
		si, ok := idx[e.Source]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "edge %d->%d: source node %d not positioned", e.Source, e.End, e.Source)
		}
		ei, ok := idx[e.End]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "edge %d->%d: end node %d not positioned", e.Source, e.End, e.End)
		}
		routes = append(routes, RouteEdge(e, nodes[si], nodes[ei], p))
	}
	return routes, nil
}

// RouteEdge computes the geometry between two positioned nodes.
//
// In straight mode the edge is a single segment from the source's right edge
// to just before the target's left edge, optionally nudged toward the target
// row. Otherwise it is classified by the endpoints' rows:
//
//	same row                    one segment, right edge to target
//	below, source on centre     down from source bottom, then right to target
//	below, source off centre    right to above target, then down to its top
//	above, source on centre     up from source top, then right to target
//	above, source off centre    right to below target, then up to its bottom
//
// The centre row is y = WindowHeight/2.
func RouteEdge(e dag.Edge, src, dst PositionedNode, p Params) EdgeRoute {
	x1, y1, x2, y2 := src.X, src.Y, dst.X, dst.Y
	w, h := p.RectWidth, p.RectHeight

	if p.Straight {
		y := y1
		if p.StraightNudge && !same(y1, y2) {
			dy := y2 - y1
			y += math.Copysign(min(h/4, math.Abs(dy)/15), dy)
		}
		return straight(e, x1+w, y, x2-arrowInset, y2)
	}

	if same(y1, y2) {
		return straight(e, x1+w, y1, x2-arrowInset, y2)
	}

	centre := same(y1, p.WindowHeight/2)
	srcMid := x1 + w/2 + bendOffset
	dstMid := x2 + w/2 - bendOffset

	var dir Direction
	var first, second Segment
	switch {
	case y1 < y2 && centre:
		dir = DirectionSouthWest
		first = Segment{X1: srcMid, Y1: y1 + h/2, X2: srcMid, Y2: y2}
		second = Segment{X1: srcMid, Y1: y2, X2: x2 - arrowInset, Y2: y2}
	case y1 < y2:
		dir = DirectionNorthEast
		first = Segment{X1: x1 + w, Y1: y1, X2: dstMid, Y2: y1}
		second = Segment{X1: dstMid, Y1: y1, X2: dstMid, Y2: y2 - h/2 - arrowInset}
	case centre:
		dir = DirectionNorthWest
		first = Segment{X1: srcMid, Y1: y1 - h/2, X2: srcMid, Y2: y2}
		second = Segment{X1: srcMid, Y1: y2, X2: x2 - arrowInset, Y2: y2}
	default:
		dir = DirectionSouthEast
		first = Segment{X1: x1 + w, Y1: y1, X2: dstMid, Y2: y1}
		second = Segment{X1: dstMid, Y1: y1, X2: dstMid, Y2: y2 + h/2 + arrowInset}
	}
	first.Bend, first.Direction = true, dir
	second.Direction = dir

	return EdgeRoute{Edge: e, Direction: dir, Segments: []Segment{first, second}}
}

// Flatten concatenates the segments of routes in order.
func Flatten(routes []EdgeRoute) []Segment {
	n := 0
	for _, r := range routes {
		n += len(r.Segments)
	}
	segs := make([]Segment, 0, n)
	for _, r := range routes {
		segs = append(segs, r.Segments...)
	}
	return segs
}

func straight(e dag.Edge, x1, y1, x2, y2 float64) EdgeRoute {
	return EdgeRoute{
		Edge:      e,
		Direction: DirectionStraight,
		Segments: []Segment{{
			X1: x1, Y1: y1, X2: x2, Y2: y2,
			Direction: DirectionStraight,
		}},
	}
}

func same(a, b float64) bool {
	return math.Abs(a-b) <= eps
}
