package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/workflowgraph/pkg/errors"
)

const sampleGraph = `{
  "nodes": [
    {"id": 1, "name": "ingest", "all": 10, "completed": 4, "remaining": 6},
    {"id": 2, "name": "parse", "all": 3, "completed": 3, "remaining": 0, "url": "/custom"},
    {"id": 3, "name": "index", "all": 0, "completed": 0, "remaining": 0}
  ],
  "edges": [{"source": 1, "end": 2}, {"source": 1, "end": 3}],
  "start_node": 1,
  "url_template": "/queues/{id}"
}`

func TestReadGraph(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(sampleGraph))
	if err != nil {
		t.Fatalf("ReadGraph() error = %v", err)
	}
	if len(g.Nodes) != 3 || len(g.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
	if g.StartNode == nil || *g.StartNode != 1 {
		t.Errorf("StartNode = %v, want 1", g.StartNode)
	}
	if g.Nodes[0].Remaining != 6 {
		t.Errorf("Nodes[0].Remaining = %d, want 6", g.Nodes[0].Remaining)
	}
	if g.Summary() != "3 nodes, 2 edges, start 1" {
		t.Errorf("Summary() = %q", g.Summary())
	}
}

func TestReadGraph_Malformed(t *testing.T) {
	_, err := ReadGraph(strings.NewReader(`{"nodes": [`))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ReadGraph() error = %v, want INVALID_INPUT", err)
	}
}

func TestReadGraphFile_Missing(t *testing.T) {
	_, err := ReadGraphFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadGraphFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	in, err := UnmarshalGraph([]byte(sampleGraph))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(in, path); err != nil {
		t.Fatalf("WriteGraphFile() error = %v", err)
	}
	out, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error = %v", err)
	}
	if out.URLTemplate != in.URLTemplate || *out.StartNode != *in.StartNode {
		t.Errorf("round trip lost fields: %+v", out)
	}
	if out.Nodes[1].URL != "/custom" {
		t.Errorf("Nodes[1].URL = %q, want /custom", out.Nodes[1].URL)
	}
}

func TestMarshalGraph_OmitsEmptyOptionals(t *testing.T) {
	data, err := MarshalGraph(Graph{Nodes: []Node{{ID: 1}}, Edges: []Edge{}})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"start_node", "url_template", `"url"`} {
		if bytes.Contains(data, []byte(key)) {
			t.Errorf("MarshalGraph() output contains %s:\n%s", key, data)
		}
	}
}

func TestToDAG(t *testing.T) {
	start := 1
	tests := []struct {
		name     string
		in       Graph
		wantCode errors.Code
	}{
		{
			name: "valid",
			in: Graph{
				Nodes:     []Node{{ID: 1}, {ID: 2}},
				Edges:     []Edge{{1, 2}},
				StartNode: &start,
			},
		},
		{
			name:     "unknown edge endpoint",
			in:       Graph{Nodes: []Node{{ID: 1}}, Edges: []Edge{{1, 7}}},
			wantCode: errors.ErrCodeUnknownNode,
		},
		{
			name:     "bad template",
			in:       Graph{Nodes: []Node{{ID: 1}}, URLTemplate: "/queues/"},
			wantCode: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ToDAG(tt.in)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("ToDAG() error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToDAG() error = %v", err)
			}
			if g.Start == nil || *g.Start != 1 {
				t.Errorf("Start = %v, want 1", g.Start)
			}
			back := FromDAG(g)
			if len(back.Nodes) != len(tt.in.Nodes) || len(back.Edges) != len(tt.in.Edges) {
				t.Errorf("FromDAG() = %+v", back)
			}
		})
	}
}

func TestToDAG_CopiesStart(t *testing.T) {
	start := 1
	g, err := ToDAG(Graph{Nodes: []Node{{ID: 1}}, StartNode: &start})
	if err != nil {
		t.Fatal(err)
	}
	start = 5
	if *g.Start != 1 {
		t.Errorf("Start aliases the wire value")
	}
}

func TestTemplateResolver(t *testing.T) {
	if TemplateResolver("") != nil {
		t.Error("TemplateResolver(\"\") should be nil")
	}
	r := TemplateResolver("/queues/{id}/tasks?q={id}")
	if got := r(42); got != "/queues/42/tasks?q=42" {
		t.Errorf("resolver(42) = %q", got)
	}
}

func TestLoadDAG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.json")
	if err := os.WriteFile(path, []byte(sampleGraph), 0o644); err != nil {
		t.Fatal(err)
	}
	g, urls, err := LoadDAG(path)
	if err != nil {
		t.Fatalf("LoadDAG() error = %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("len(Nodes) = %d, want 3", len(g.Nodes))
	}
	if urls == nil || urls(3) != "/queues/3" {
		t.Errorf("resolver not derived from template")
	}
}

func TestUnmarshalLayout(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantType string
		wantCode errors.Code
	}{
		{
			name:     "defaults to workflow",
			data:     `{"width": 100, "height": 100, "nodes": [{"id": 1, "x": 25, "y": 50}], "segments": []}`,
			wantType: VizTypeWorkflow,
		},
		{
			name:     "empty workflow",
			data:     `{"viz_type": "workflow", "nodes": [], "segments": []}`,
			wantType: VizTypeWorkflow,
		},
		{
			name:     "nodelink with dot",
			data:     `{"viz_type": "nodelink", "height": 10, "dot": "digraph G {}", "nodes": [], "segments": []}`,
			wantType: VizTypeNodelink,
		},
		{
			name:     "nodelink without dot",
			data:     `{"viz_type": "nodelink", "nodes": [], "segments": []}`,
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "unknown type",
			data:     `{"viz_type": "tower"}`,
			wantCode: errors.ErrCodeInvalidVizType,
		},
		{
			name:     "nodes without height",
			data:     `{"nodes": [{"id": 1}]}`,
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "malformed",
			data:     `{`,
			wantCode: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := UnmarshalLayout([]byte(tt.data))
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("UnmarshalLayout() error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalLayout() error = %v", err)
			}
			if l.VizType != tt.wantType {
				t.Errorf("VizType = %q, want %q", l.VizType, tt.wantType)
			}
		})
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	in := Layout{
		VizType:    VizTypeWorkflow,
		Width:      1200,
		Height:     500,
		RectWidth:  150,
		RectHeight: 40,
		Nodes: []LayoutNode{
			{Node: Node{ID: 1, Name: "ingest", All: 3}, Depth: 0, X: 25, Y: 250},
		},
		Segments: []Segment{{Bend: true, X1: 1, Y1: 2, X2: 3, Y2: 4, Direction: "south_west"}},
		Levels:   map[int][]int{0: {1}},
	}
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(in, path); err != nil {
		t.Fatal(err)
	}
	out, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}
	if out.Nodes[0].Name != "ingest" || out.Nodes[0].Y != 250 {
		t.Errorf("node = %+v", out.Nodes[0])
	}
	if !out.Segments[0].Bend || out.Segments[0].Direction != "south_west" {
		t.Errorf("segment = %+v", out.Segments[0])
	}
	if len(out.Levels[0]) != 1 {
		t.Errorf("Levels = %v", out.Levels)
	}
}
