package dag

import (
	"slices"
	"testing"

	"github.com/matzehuels/workflowgraph/pkg/errors"
)

func TestBuildAdjacency(t *testing.T) {
	tests := []struct {
		name  string
		edges []Edge
		want  Adjacency
	}{
		{
			name:  "empty",
			edges: nil,
			want:  Adjacency{},
		},
		{
			name:  "fan out",
			edges: []Edge{{1, 2}, {1, 3}},
			want:  Adjacency{{ParentID: 1, Children: []int{2, 3}}},
		},
		{
			name:  "first seen parent order",
			edges: []Edge{{3, 4}, {1, 2}, {3, 5}},
			want: Adjacency{
				{ParentID: 3, Children: []int{4, 5}},
				{ParentID: 1, Children: []int{2}},
			},
		},
		{
			name:  "parallel edges kept",
			edges: []Edge{{1, 2}, {1, 2}, {1, 2}},
			want:  Adjacency{{ParentID: 1, Children: []int{2, 2, 2}}},
		},
		{
			name:  "self loop",
			edges: []Edge{{7, 7}},
			want:  Adjacency{{ParentID: 7, Children: []int{7}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildAdjacency(tt.edges)
			if len(got) != len(tt.want) {
				t.Fatalf("BuildAdjacency() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ParentID != tt.want[i].ParentID {
					t.Errorf("entry %d ParentID = %d, want %d", i, got[i].ParentID, tt.want[i].ParentID)
				}
				if !slices.Equal(got[i].Children, tt.want[i].Children) {
					t.Errorf("entry %d Children = %v, want %v", i, got[i].Children, tt.want[i].Children)
				}
			}
		})
	}
}

func TestBuildAdjacency_NoEntryForSinks(t *testing.T) {
	adj := BuildAdjacency([]Edge{{1, 2}, {2, 3}})
	if c := adj.Children(3); c != nil {
		t.Errorf("Children(3) = %v, want nil", c)
	}
	for _, e := range adj {
		if e.ParentID == 3 {
			t.Error("sink node 3 has an adjacency entry")
		}
	}
}

func TestAdjacency_Lookup(t *testing.T) {
	adj := BuildAdjacency([]Edge{{1, 2}, {1, 3}, {2, 3}})
	m := adj.Lookup()
	if len(m) != 2 {
		t.Fatalf("Lookup() len = %d, want 2", len(m))
	}
	if !slices.Equal(m[1], []int{2, 3}) {
		t.Errorf("Lookup()[1] = %v, want [2 3]", m[1])
	}
	if adj.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", adj.EdgeCount())
	}
}

func TestGraph_Validate(t *testing.T) {
	nodes := []Node{{ID: 0, Name: "a"}, {ID: 1, Name: "b"}}

	tests := []struct {
		name     string
		graph    Graph
		wantCode errors.Code
	}{
		{
			name:  "valid",
			graph: Graph{Nodes: nodes, Edges: []Edge{{0, 1}}, Start: StartAt(0)},
		},
		{
			name:  "nil start is not a validation error",
			graph: Graph{Nodes: nodes, Edges: []Edge{{0, 1}}},
		},
		{
			name:     "duplicate id",
			graph:    Graph{Nodes: []Node{{ID: 1}, {ID: 1}}},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "negative counter",
			graph:    Graph{Nodes: []Node{{ID: 1, Remaining: -1}}},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "script url",
			graph:    Graph{Nodes: []Node{{ID: 1, URL: "javascript:alert(1)"}}},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "unknown source",
			graph:    Graph{Nodes: nodes, Edges: []Edge{{5, 1}}},
			wantCode: errors.ErrCodeUnknownNode,
		},
		{
			name:     "unknown end",
			graph:    Graph{Nodes: nodes, Edges: []Edge{{0, 5}}},
			wantCode: errors.ErrCodeUnknownNode,
		},
		{
			name:     "unknown start",
			graph:    Graph{Nodes: nodes, Start: StartAt(9)},
			wantCode: errors.ErrCodeUnknownNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.graph.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestGraph_Clone(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: 1, Name: "a"}},
		Edges: []Edge{{1, 1}},
		Start: StartAt(1),
	}
	c := g.Clone()
	c.Nodes[0].Name = "changed"
	*c.Start = 2

	if g.Nodes[0].Name != "a" {
		t.Errorf("Clone shares node storage")
	}
	if *g.Start != 1 {
		t.Errorf("Clone shares start pointer")
	}
}

func TestIndexNodes_FirstWins(t *testing.T) {
	idx := IndexNodes([]Node{{ID: 4}, {ID: 4}, {ID: 5}})
	if idx[4] != 0 {
		t.Errorf("idx[4] = %d, want 0", idx[4])
	}
	if !idx.Has(5) || idx.Has(6) {
		t.Errorf("Has() mismatch: %v", idx)
	}
}
