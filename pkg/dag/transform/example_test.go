package transform_test

import (
	"fmt"

	"github.com/matzehuels/workflowgraph/pkg/dag"
	"github.com/matzehuels/workflowgraph/pkg/dag/transform"
)

func ExampleAssignDepths() {
	nodes := []dag.Node{{ID: 1, Name: "ingest"}, {ID: 2, Name: "parse"}, {ID: 3, Name: "index"}}
	edges := []dag.Edge{{Source: 1, End: 2}, {Source: 1, End: 3}}

	depths, err := transform.AssignDepths(nodes, dag.BuildAdjacency(edges), dag.StartAt(1), transform.DepthOptions{})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, d := range depths {
		fmt.Printf("node %d: depth %d\n", d.NodeID, d.Depth)
	}
	// Output:
	// node 1: depth 0
	// node 2: depth 1
	// node 3: depth 1
}

func ExampleAssignDepths_leafPolicy() {
	// 1 fans out to 2 and 3; only 3 continues to 4.
	nodes := []dag.Node{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	adj := dag.BuildAdjacency([]dag.Edge{{Source: 1, End: 2}, {Source: 1, End: 3}, {Source: 3, End: 4}})

	for _, p := range []transform.LeafPolicy{transform.LeafPolicyStop, transform.LeafPolicyContinue} {
		depths, _ := transform.AssignDepths(nodes, adj, dag.StartAt(1), transform.DepthOptions{LeafPolicy: p})
		fmt.Println(p, transform.DepthMap(depths))
	}
	// Output:
	// stop map[1:0 2:1 3:0 4:0]
	// continue map[1:0 2:1 3:1 4:2]
}

func ExampleCensus() {
	depths := []transform.DepthEntry{{NodeID: 1, Depth: 0}, {NodeID: 2, Depth: 1}, {NodeID: 3, Depth: 1}}
	c := transform.Census(depths)
	fmt.Println(c)
	fmt.Println("Most crowded level:", c.MaxCount())
	// Output:
	// map[0:1 1:2]
	// Most crowded level: 2
}
