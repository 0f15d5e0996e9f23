package dot

import "strings"

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// Port is a node-relative attachment point for an edge endpoint: an optional
// port name and/or compass point (n, ne, e, se, s, sw, w, nw, c, _).
type Port struct {
	Name    string
	Compass string
}

func (p Port) String() string {
	switch {
	case p.Name != "" && p.Compass != "":
		return p.Name + ":" + p.Compass
	case p.Name != "":
		return p.Name
	default:
		return p.Compass
	}
}

// compassPoints is the set of valid compass point tokens.
var compassPoints = map[string]bool{
	"n": true, "ne": true, "e": true, "se": true, "s": true,
	"sw": true, "w": true, "nw": true, "c": true, "_": true,
}

// IsCompassPoint reports whether s is one of the ten compass point tokens.
func IsCompassPoint(s string) bool { return compassPoints[s] }

// Node represents a parsed node declaration or edge endpoint. Two Node values
// with the same ID are logically the same graph node; the parser does not
// merge them, so consumers that care about object identity must merge by ID.
type Node struct {
	ID    string
	Port  *Port // set when the node appears with a port in an edge endpoint
	Attrs AttrMap
	Pos   Position
}

// Attr looks up a node attribute by key.
func (n *Node) Attr(key string) (Value, bool) {
	return n.Attrs.Get(key)
}

// Edge represents a single edge between two endpoints. Chained edge
// statements are expanded, so an Edge always has exactly one tail and head.
// The endpoints are identifying references only; an edge does not own the
// lifetime of the nodes it names.
type Edge struct {
	Tail     *Node
	Head     *Node
	Directed bool
	Attrs    AttrMap
	Pos      Position
}

// Attr looks up an edge attribute by key.
func (e *Edge) Attr(key string) (Value, bool) {
	return e.Attrs.Get(key)
}

// Body holds the element collections common to graphs, subgraphs and
// clusters. Collections preserve encounter order.
type Body struct {
	Nodes     []*Node
	Edges     []*Edge
	Subgraphs []*Subgraph
	Clusters  []*Cluster
	Attrs     AttrMap
}

// Node returns the first declared node with the given ID, or nil.
func (b *Body) Node(id string) *Node {
	for _, n := range b.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// EdgesFrom returns all edges whose tail is the given node ID.
func (b *Body) EdgesFrom(id string) []*Edge {
	var result []*Edge
	for _, e := range b.Edges {
		if e.Tail.ID == id {
			result = append(result, e)
		}
	}
	return result
}

// EdgesTo returns all edges whose head is the given node ID.
func (b *Body) EdgesTo(id string) []*Edge {
	var result []*Edge
	for _, e := range b.Edges {
		if e.Head.ID == id {
			result = append(result, e)
		}
	}
	return result
}

// Attr looks up a scope-level attribute by key.
func (b *Body) Attr(key string) (Value, bool) {
	return b.Attrs.Get(key)
}

// Subgraph is a nested graph scope with its own collections and attributes.
type Subgraph struct {
	ID string // empty for anonymous subgraphs
	Body
}

// Cluster is a subgraph whose identifier starts with "cluster"
// (case-insensitive). The distinction is a naming convention, not a separate
// grammar production; classification happens after the body is parsed.
type Cluster struct {
	Subgraph
}

// IsClusterID reports whether a subgraph identifier names a cluster.
func IsClusterID(id string) bool {
	return len(id) >= 7 && strings.EqualFold(id[:7], "cluster")
}

// Graph is the root container produced by a parse. Strict and Directed are
// fixed by the graph header and are descriptive only; the parser does not
// enforce strictness.
type Graph struct {
	ID       string // empty when the header has no identifier
	Strict   bool
	Directed bool
	Body
}
