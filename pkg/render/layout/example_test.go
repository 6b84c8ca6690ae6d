package layout_test

import (
	"fmt"

	"github.com/matzehuels/workflowgraph/pkg/dag"
	"github.com/matzehuels/workflowgraph/pkg/render/layout"
)

func ExampleBuild() {
	g := dag.Graph{
		Nodes: []dag.Node{{ID: 1, Name: "ingest"}, {ID: 2, Name: "parse"}, {ID: 3, Name: "index"}},
		Edges: []dag.Edge{{Source: 1, End: 2}, {Source: 1, End: 3}},
		Start: dag.StartAt(1),
	}

	l, err := layout.Build(g, layout.DefaultConfig())
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("frame %.0fx%.0f, node width %.0f\n", l.WindowWidth, l.WindowHeight, l.RectWidth)
	for _, n := range l.Nodes {
		fmt.Printf("%s: depth %d at (%.1f, %.1f)\n", n.Name, n.Depth, n.X, n.Y)
	}
	for _, r := range l.Routes {
		fmt.Printf("%d->%d %s, %d segments\n", r.Edge.Source, r.Edge.End, r.Direction, len(r.Segments))
	}
	// Output:
	// frame 1200x500, node width 450
	// ingest: depth 0 at (25.0, 250.0)
	// parse: depth 1 at (675.0, 166.7)
	// index: depth 1 at (675.0, 333.3)
	// 1->2 north_west, 2 segments
	// 1->3 south_west, 2 segments
}

func ExampleRouteEdge() {
	p := layout.Params{RectWidth: 100, RectHeight: 40, WindowHeight: 500}
	src := layout.PositionedNode{Node: dag.Node{ID: 1}, X: 0, Y: 100}
	dst := layout.PositionedNode{Node: dag.Node{ID: 2}, X: 300, Y: 400}

	r := layout.RouteEdge(dag.Edge{Source: 1, End: 2}, src, dst, p)
	fmt.Println(r.Direction)
	for _, s := range r.Segments {
		fmt.Printf("bend=%v (%.0f,%.0f)->(%.0f,%.0f)\n", s.Bend, s.X1, s.Y1, s.X2, s.Y2)
	}
	// Output:
	// north_east
	// bend=true (100,100)->(345,100)
	// bend=false (345,100)->(345,373)
}
