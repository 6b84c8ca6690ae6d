package layout

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/workflowgraph/pkg/dag"
	"github.com/matzehuels/workflowgraph/pkg/dag/transform"
	"github.com/matzehuels/workflowgraph/pkg/errors"
)

// Layout is the result of one complete layout pass.
type Layout struct {
	Params

	Start    *int
	Fallback bool // No start node; every node was placed at depth 0
	Nodes    []PositionedNode
	Edges    []dag.Edge
	Routes   []EdgeRoute
	Census   transform.LevelCensus
}

// Segments returns every routed segment in edge order.
func (l Layout) Segments() []Segment { return Flatten(l.Routes) }

// Node returns the positioned node with the given id.
func (l Layout) Node(id int) (PositionedNode, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}

// Levels groups node ids by depth, each level in placement order.
func (l Layout) Levels() map[int][]int {
	levels := make(map[int][]int)
	for _, n := range l.Nodes {
		levels[n.Depth] = append(levels[n.Depth], n.ID)
	}
	return levels
}

// Option configures [Build].
type Option func(*builder)

type builder struct {
	urls   URLResolver
	logger *log.Logger
}

// WithURLResolver links nodes that carry no URL of their own.
func WithURLResolver(r URLResolver) Option { return func(b *builder) { b.urls = r } }

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *log.Logger) Option { return func(b *builder) { b.logger = l } }

// Build runs one complete layout pass over g: adjacency, depths, census,
// frame fitting, positioning and routing.
//
// cfg should already be defaulted; Build validates it and g. When g has no
// start node the pass does not fail: a warning is logged, every node is
// placed at depth 0 and Fallback is set. Any other depth, lookup or geometry
// error is returned.
//
// Build keeps no state and does not modify g, so concurrent calls are safe.
func Build(g dag.Graph, cfg Config, opts ...Option) (Layout, error) {
	b := builder{}
	for _, opt := range opts {
		opt(&b)
	}

	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}
	if err := g.Validate(); err != nil {
		return Layout{}, err
	}

	adj := dag.BuildAdjacency(g.Edges)
	depths, err := transform.AssignDepths(g.Nodes, adj, g.Start, cfg.DepthOptions())
	fallback := false
	if errors.Is(err, errors.ErrCodeMissingStartNode) {
		if b.logger != nil {
			b.logger.Warn("no start node, placing all nodes at depth 0", "nodes", len(g.Nodes))
		}
		depths = transform.FlatDepths(g.Nodes)
		fallback = true
	} else if err != nil {
		return Layout{}, err
	}

	census := transform.Census(depths)
	params := Fit(cfg, census)

	nodes, err := Position(depths, census, params, g.Nodes, b.urls)
	if err != nil {
		return Layout{}, err
	}
	routes, err := RouteAll(g.Edges, nodes, params)
	if err != nil {
		return Layout{}, err
	}

	l := Layout{
		Params:   params,
		Fallback: fallback,
		Nodes:    nodes,
		Edges:    slices.Clone(g.Edges),
		Routes:   routes,
		Census:   census,
	}
	if g.Start != nil {
		l.Start = dag.StartAt(*g.Start)
	}

	if b.logger != nil {
		b.logger.Debug("layout computed",
			"nodes", len(nodes),
			"edges", len(routes),
			"levels", census.Levels(),
			"width", params.WindowWidth,
			"height", params.WindowHeight)
	}
	return l, nil
}
