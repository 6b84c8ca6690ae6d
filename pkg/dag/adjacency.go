package dag

// AdjacencyEntry lists the children of one parent node in first-seen edge
// order. Parallel edges produce repeated children.
type AdjacencyEntry struct {
	ParentID int
	Children []int
}

// Adjacency is the parent→children structure derived from an edge list.
// Entries appear in the order their parent was first seen as an edge source.
type Adjacency []AdjacencyEntry

// BuildAdjacency converts a flat edge list into an [Adjacency].
//
// For each edge in input order the entry for Source is found or created and
// End is appended to its children. Nodes with no outgoing edges get no
// entry. Duplicates are preserved because each parallel edge is routed
// separately. An empty edge list yields an empty adjacency.
func BuildAdjacency(edges []Edge) Adjacency {
	adj := make(Adjacency, 0)
	pos := make(map[int]int)
	for _, e := range edges {
		i, ok := pos[e.Source]
		if !ok {
			i = len(adj)
			pos[e.Source] = i
			adj = append(adj, AdjacencyEntry{ParentID: e.Source})
		}
		adj[i].Children = append(adj[i].Children, e.End)
	}
	return adj
}

// Children returns the children of id, or nil if id has no outgoing edges.
// The returned slice should be treated as read-only.
func (a Adjacency) Children(id int) []int {
	for _, e := range a {
		if e.ParentID == id {
			return e.Children
		}
	}
	return nil
}

// Lookup returns an O(1) children lookup over the adjacency.
func (a Adjacency) Lookup() map[int][]int {
	m := make(map[int][]int, len(a))
	for _, e := range a {
		m[e.ParentID] = e.Children
	}
	return m
}

// EdgeCount returns the total number of child references, which equals the
// number of edges the adjacency was built from.
func (a Adjacency) EdgeCount() int {
	n := 0
	for _, e := range a {
		n += len(e.Children)
	}
	return n
}
