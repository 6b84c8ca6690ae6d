package dag_test

import (
	"fmt"

	"github.com/matzehuels/workflowgraph/pkg/dag"
)

func ExampleBuildAdjacency() {
	// ingest fans out to parse and index; parse feeds index again
	edges := []dag.Edge{
		{Source: 1, End: 2},
		{Source: 1, End: 3},
		{Source: 2, End: 3},
	}
	adj := dag.BuildAdjacency(edges)

	for _, e := range adj {
		fmt.Println(e.ParentID, "->", e.Children)
	}
	fmt.Println("Children of 3:", adj.Children(3))
	// Output:
	// 1 -> [2 3]
	// 2 -> [3]
	// Children of 3: []
}

func ExampleBuildAdjacency_parallelEdges() {
	// Parallel edges are kept; each one is routed separately.
	adj := dag.BuildAdjacency([]dag.Edge{
		{Source: 1, End: 2},
		{Source: 1, End: 2},
	})
	fmt.Println(adj.Children(1))
	fmt.Println("Edges:", adj.EdgeCount())
	// Output:
	// [2 2]
	// Edges: 2
}

func ExampleGraph_Validate() {
	g := dag.Graph{
		Nodes: []dag.Node{{ID: 1, Name: "ingest"}, {ID: 2, Name: "parse"}},
		Edges: []dag.Edge{{Source: 1, End: 9}},
		Start: dag.StartAt(1),
	}
	fmt.Println(g.Validate())
	// Output:
	// UNKNOWN_NODE: edge 1->9: end node 9 not found
}
