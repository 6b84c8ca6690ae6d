// Package layout turns a layered workflow graph into coordinates and arrow
// geometry.
//
// # Overview
//
// Nodes are drawn as fixed-size rectangles arranged in columns, one column per
// depth. Within a column nodes are spread evenly over the window height in the
// order the depth assigner discovered them. Edges become one straight segment
// or two orthogonal segments (a bend), chosen from where the target sits
// relative to the source.
//
// [Build] runs a full pass from a [dag.Graph]:
//
//	cfg := layout.DefaultConfig()
//	l, err := layout.Build(g, cfg, layout.WithURLResolver(urls))
//
// The individual stages are exported for callers that already have depths:
//
//	params := layout.Fit(cfg, census)
//	nodes, err := layout.Position(depths, census, params, g.Nodes, urls)
//	segs, err := layout.Route(g.Edges, nodes, params)
//
// # Sizing
//
// [Fit] picks the rectangle width (when not configured) from the window width
// and the number of levels, then grows the window so that every column and
// the most crowded level fit. Positioning and routing use the grown size.
//
// # Routing
//
// The window's vertical centre row is special: bent arrows leaving a node on
// that row drop out of its top or bottom, while arrows from any other row
// leave from its right edge. See [RouteEdge] for the five cases.
//
// # Immutability
//
// Nothing in this package modifies its inputs. Positioned nodes are copies,
// so repeated passes over the same graph give identical results.
//
// [dag.Graph]: github.com/matzehuels/workflowgraph/pkg/dag.Graph
package layout
