package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/workflowgraph/pkg/cache"
	"github.com/matzehuels/workflowgraph/pkg/errors"
	"github.com/matzehuels/workflowgraph/pkg/graph"
)

// countingCache wraps a cache and counts writes.
type countingCache struct {
	cache.Cache
	mu   sync.Mutex
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.Cache.Set(ctx, key, data, ttl)
}

func newTestRunner(t *testing.T) (*Runner, *countingCache) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	cc := &countingCache{Cache: fc}
	return NewRunner(cc, nil, nil), cc
}

func sampleGraph() graph.Graph {
	start := 1
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: 1, Name: "ingest", All: 3, Completed: 1, Remaining: 2},
			{ID: 2, Name: "parse"},
			{ID: 3, Name: "index"},
		},
		Edges:       []graph.Edge{{Source: 1, End: 2}, {Source: 1, End: 3}},
		StartNode:   &start,
		URLTemplate: "/queues/{id}",
	}
}

func TestRunner_Execute(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Formats: []string{"svg", "json", "dot"}}

	res, err := r.Execute(ctx, sampleGraph(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 2 || res.Stats.Levels != 2 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if len(res.Artifacts) != 3 {
		t.Fatalf("Artifacts = %d, want 3", len(res.Artifacts))
	}
	if !strings.Contains(string(res.Artifacts["svg"]), `<a href="/queues/1"`) {
		t.Error("URL template not applied in SVG")
	}
	if !strings.HasPrefix(string(res.Artifacts["dot"]), "digraph G {") {
		t.Error("DOT artifact malformed")
	}
	if _, err := graph.UnmarshalLayout(res.Artifacts["json"]); err != nil {
		t.Errorf("JSON artifact does not parse: %v", err)
	}
	if res.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
}

func TestRunner_CachesLayoutAndArtifacts(t *testing.T) {
	r, cc := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Formats: []string{"svg", "json"}}

	first, err := r.Execute(ctx, sampleGraph(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	setsAfterFirst := cc.sets
	if setsAfterFirst != 3 {
		t.Errorf("first run wrote %d entries, want 3 (layout + 2 artifacts)", setsAfterFirst)
	}

	second, err := r.Execute(ctx, sampleGraph(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want both hits", second.CacheInfo)
	}
	if cc.sets != setsAfterFirst {
		t.Error("cached run should not write")
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached SVG differs")
	}

	// Adding a format renders only the new one.
	opts.Formats = append(opts.Formats, "dot")
	third, err := r.Execute(ctx, sampleGraph(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("partial cache should not be reported as a full hit")
	}
	if cc.sets != setsAfterFirst+1 {
		t.Errorf("writes = %d, want %d", cc.sets, setsAfterFirst+1)
	}
}

func TestRunner_RefreshBypassesCache(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, sampleGraph(), Options{}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	res, err := r.Execute(ctx, sampleGraph(), Options{Refresh: true})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunner_LayoutKeyDependsOnConfig(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Layout(ctx, sampleGraph(), Options{}); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	opts := Options{}
	opts.Layout.WindowHeight = 800
	l, hit, err := r.LayoutWithCacheInfo(ctx, sampleGraph(), opts)
	if err != nil {
		t.Fatalf("LayoutWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("a different configuration must not hit the cache")
	}
	if l.Height != 800 {
		t.Errorf("Height = %v, want 800", l.Height)
	}
}

func TestRunner_Nodelink(t *testing.T) {
	r, _ := newTestRunner(t)
	l, err := r.Layout(context.Background(), sampleGraph(), Options{VizType: "nodelink"})
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if !l.IsNodelink() || l.DOT == "" || l.Engine != "neato" {
		t.Errorf("nodelink layout = viz %q, engine %q, dot %d bytes", l.VizType, l.Engine, len(l.DOT))
	}

	arts, err := r.Render(context.Background(), l, Options{VizType: "nodelink", Formats: []string{"dot"}})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if string(arts["dot"]) != l.DOT {
		t.Error("nodelink DOT artifact should be the embedded DOT")
	}
}

func TestRunner_NodelinkDetailedNotShared(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()

	plain, err := r.Layout(ctx, sampleGraph(), Options{VizType: "nodelink"})
	if err != nil {
		t.Fatal(err)
	}
	detailed, hit, err := r.LayoutWithCacheInfo(ctx, sampleGraph(), Options{VizType: "nodelink", Detailed: true})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("detailed layout must not reuse the plain cache entry")
	}
	if strings.Contains(plain.DOT, "done") || !strings.Contains(detailed.DOT, "1/3 done") {
		t.Errorf("labels: plain=%q detailed=%q", plain.DOT, detailed.DOT)
	}
}

func TestRunner_MissingStartFallsBack(t *testing.T) {
	r, _ := newTestRunner(t)
	g := sampleGraph()
	g.StartNode = nil

	res, err := r.Execute(context.Background(), g, Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !res.Stats.Fallback || res.Stats.Levels != 1 {
		t.Errorf("Stats = %+v, want fallback with one level", res.Stats)
	}
}

func TestRunner_Errors(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()

	g := sampleGraph()
	g.Edges = append(g.Edges, graph.Edge{Source: 2, End: 9})
	if _, err := r.Execute(ctx, g, Options{}); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("unknown edge end: err = %v, want UNKNOWN_NODE", err)
	}

	if _, err := r.Execute(ctx, sampleGraph(), Options{Formats: []string{"gif"}}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: err = %v, want INVALID_FORMAT", err)
	}
}
