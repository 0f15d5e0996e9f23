// Package graphindex builds a gonum-backed adjacency index over a parsed
// DOT graph. The index flattens the subgraph/cluster containment tree into a
// single node/edge set keyed by identifier, which is what structural queries
// (reachability, cycles, roots) want to see. The parsed dot.Graph itself is
// left untouched.
package graphindex

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/jcrabtree/godot/dot"
)

// Index maps DOT node identifiers onto a gonum graph for structural queries.
type Index struct {
	directed bool
	ids      map[string]int64
	names    map[int64]string
	nextID   int64
	dg       *simple.DirectedGraph
	ug       *simple.UndirectedGraph

	// simple graphs reject self-loops; they are tracked here so Cycles can
	// still report them.
	selfLoops  []string
	loopedSeen map[string]bool
}

// Build indexes a parsed graph, including the contents of all nested
// subgraphs and clusters. Node identity is the DOT identifier: declarations
// and edge endpoints with the same ID map to one indexed node.
func Build(g *dot.Graph) *Index {
	ix := &Index{
		directed:   g.Directed,
		ids:        make(map[string]int64),
		names:      make(map[int64]string),
		loopedSeen: make(map[string]bool),
	}
	if g.Directed {
		ix.dg = simple.NewDirectedGraph()
	} else {
		ix.ug = simple.NewUndirectedGraph()
	}
	ix.addBody(&g.Body)
	return ix
}

func (ix *Index) addBody(b *dot.Body) {
	for _, n := range b.Nodes {
		ix.addNode(n.ID)
	}
	for _, e := range b.Edges {
		ix.addEdge(e.Tail.ID, e.Head.ID)
	}
	for _, sub := range b.Subgraphs {
		ix.addBody(&sub.Body)
	}
	for _, cl := range b.Clusters {
		ix.addBody(&cl.Body)
	}
}

func (ix *Index) addNode(id string) int64 {
	if gid, ok := ix.ids[id]; ok {
		return gid
	}
	gid := ix.nextID
	ix.nextID++
	ix.ids[id] = gid
	ix.names[gid] = id
	if ix.directed {
		ix.dg.AddNode(simple.Node(gid))
	} else {
		ix.ug.AddNode(simple.Node(gid))
	}
	return gid
}

func (ix *Index) addEdge(tail, head string) {
	tid := ix.addNode(tail)
	hid := ix.addNode(head)
	if tid == hid {
		if !ix.loopedSeen[tail] {
			ix.loopedSeen[tail] = true
			ix.selfLoops = append(ix.selfLoops, tail)
		}
		return
	}
	if ix.directed {
		if !ix.dg.HasEdgeFromTo(tid, hid) {
			ix.dg.SetEdge(ix.dg.NewEdge(simple.Node(tid), simple.Node(hid)))
		}
	} else {
		if !ix.ug.HasEdgeBetween(tid, hid) {
			ix.ug.SetEdge(ix.ug.NewEdge(simple.Node(tid), simple.Node(hid)))
		}
	}
}

// Directed reports whether the indexed graph is directed.
func (ix *Index) Directed() bool { return ix.directed }

// Len returns the number of distinct node identifiers in the index.
func (ix *Index) Len() int { return len(ix.ids) }

// Has reports whether a node identifier is present.
func (ix *Index) Has(id string) bool {
	_, ok := ix.ids[id]
	return ok
}

// Nodes returns all indexed node identifiers, sorted.
func (ix *Index) Nodes() []string {
	nodes := make([]string, 0, len(ix.ids))
	for id := range ix.ids {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	return nodes
}

// Neighbors returns the identifiers reachable from id over one edge: edge
// heads in a directed graph, all adjacent nodes in an undirected one.
func (ix *Index) Neighbors(id string) []string {
	gid, ok := ix.ids[id]
	if !ok {
		return nil
	}
	var iter graph.Nodes
	if ix.directed {
		iter = ix.dg.From(gid)
	} else {
		iter = ix.ug.From(gid)
	}
	var result []string
	for iter.Next() {
		result = append(result, ix.names[iter.Node().ID()])
	}
	sort.Strings(result)
	return result
}

// Roots returns the identifiers with no incoming edges. Only meaningful for
// directed graphs; undirected indexes return nil.
func (ix *Index) Roots() []string {
	if !ix.directed {
		return nil
	}
	var roots []string
	for id, gid := range ix.ids {
		if ix.dg.To(gid).Len() == 0 {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

// Cycles returns the node identifier groups that form cycles: strongly
// connected components of size greater than one, plus self-loops. Only
// meaningful for directed graphs; undirected indexes return nil.
func (ix *Index) Cycles() [][]string {
	if !ix.directed {
		return nil
	}
	var cycles [][]string
	for _, scc := range topo.TarjanSCC(ix.dg) {
		if len(scc) < 2 {
			continue
		}
		ids := make([]string, 0, len(scc))
		for _, n := range scc {
			ids = append(ids, ix.names[n.ID()])
		}
		sort.Strings(ids)
		cycles = append(cycles, ids)
	}
	for _, id := range ix.selfLoops {
		cycles = append(cycles, []string{id})
	}
	return cycles
}
