package layout

import (
	"github.com/matzehuels/workflowgraph/pkg/dag"
	"github.com/matzehuels/workflowgraph/pkg/dag/transform"
	"github.com/matzehuels/workflowgraph/pkg/errors"
	"github.com/matzehuels/workflowgraph/pkg/graph"
)

// Export converts a computed layout to the serialization format.
//
// Use this when you need to serialize the layout for:
//   - JSON file output (via graph.WriteLayoutFile)
//   - API responses
//   - Caching
func (l Layout) Export() graph.Layout {
	out := graph.Layout{
		VizType:    graph.VizTypeWorkflow,
		Width:      l.WindowWidth,
		Height:     l.WindowHeight,
		RectWidth:  l.RectWidth,
		RectHeight: l.RectHeight,
		SideMargin: l.SideMargin,
		NodeMargin: l.NodeMargin,
		Straight:   l.Straight,
		Fallback:   l.Fallback,
		Nodes:      make([]graph.LayoutNode, len(l.Nodes)),
		Edges:      make([]graph.Edge, len(l.Edges)),
		Segments:   make([]graph.Segment, 0, len(l.Routes)),
		Levels:     l.Levels(),
	}
	if l.Start != nil {
		out.StartNode = dag.StartAt(*l.Start)
	}
	for i, n := range l.Nodes {
		out.Nodes[i] = graph.LayoutNode{Node: graph.Node(n.Node), Depth: n.Depth, X: n.X, Y: n.Y}
	}
	for i, e := range l.Edges {
		out.Edges[i] = graph.Edge(e)
	}
	for _, s := range l.Segments() {
		out.Segments = append(out.Segments, graph.Segment{
			Bend:      s.Bend,
			X1:        s.X1,
			Y1:        s.Y1,
			X2:        s.X2,
			Y2:        s.Y2,
			Direction: string(s.Direction),
		})
	}
	return out
}

// Parse converts a serialized layout back to a computed layout.
//
// Use this when you need to render from a previously serialized layout:
//   - Loading from JSON file (via graph.ReadLayoutFile)
//   - Receiving from API/cache
//
// Segments are regrouped into per-edge routes: a segment with Bend set opens
// a two-segment route, any other segment is a route on its own. A segment
// list that does not match the edge list is an INVALID_INPUT error.
func Parse(gl graph.Layout) (Layout, error) {
	l := Layout{
		Params: Params{
			SideMargin:   gl.SideMargin,
			NodeMargin:   gl.NodeMargin,
			RectWidth:    gl.RectWidth,
			RectHeight:   gl.RectHeight,
			WindowWidth:  gl.Width,
			WindowHeight: gl.Height,
			Straight:     gl.Straight,
		},
		Fallback: gl.Fallback,
		Nodes:    make([]PositionedNode, len(gl.Nodes)),
		Edges:    make([]dag.Edge, len(gl.Edges)),
		Routes:   make([]EdgeRoute, 0, len(gl.Edges)),
	}
	if gl.StartNode != nil {
		l.Start = dag.StartAt(*gl.StartNode)
	}

	depths := make([]transform.DepthEntry, len(gl.Nodes))
	for i, n := range gl.Nodes {
		l.Nodes[i] = PositionedNode{Node: dag.Node(n.Node), Depth: n.Depth, X: n.X, Y: n.Y}
		depths[i] = transform.DepthEntry{NodeID: n.ID, Depth: n.Depth}
	}
	l.Census = transform.Census(depths)

	segs := gl.Segments
	for i, e := range gl.Edges {
		edge := dag.Edge(e)
		l.Edges[i] = edge

		n := 1
		if len(segs) > 0 && segs[0].Bend {
			n = 2
		}
		if len(segs) < n {
			return Layout{}, errors.New(errors.ErrCodeInvalidInput, "edge %d->%d: missing segments", e.Source, e.End)
		}
		r := EdgeRoute{Edge: edge, Direction: Direction(segs[0].Direction)}
		for _, s := range segs[:n] {
			r.Segments = append(r.Segments, Segment{
				Bend:      s.Bend,
				X1:        s.X1,
				Y1:        s.Y1,
				X2:        s.X2,
				Y2:        s.Y2,
				Direction: Direction(s.Direction),
			})
		}
		l.Routes = append(l.Routes, r)
		segs = segs[n:]
	}
	if len(segs) > 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "%d segments without an edge", len(segs))
	}
	return l, nil
}
