package dot

// Element is a single value produced by a statement: a node, an edge, a
// nested subgraph or cluster, or a scope-level attribute assignment. Each
// scope's statement list yields a sequence of elements which the assembler
// dispatches into the enclosing container.
type Element interface {
	isElement()
}

func (*Node) isElement()     {}
func (*Edge) isElement()     {}
func (*Subgraph) isElement() {}
func (*Cluster) isElement()  {}

// Assign is a scope-level scalar attribute assignment (bare key=value or an
// entry of a graph [...] attribute statement).
type Assign struct {
	Key   string
	Value Value
	Pos   Position
}

func (Assign) isElement() {}

// assemble appends each element to the matching collection in encounter
// order, or sets the scalar attribute on the container. Pure dispatch by
// element kind; no reordering, no further interpretation.
func (b *Body) assemble(elems []Element) {
	for _, el := range elems {
		switch e := el.(type) {
		case *Node:
			b.Nodes = append(b.Nodes, e)
		case *Edge:
			b.Edges = append(b.Edges, e)
		case *Cluster:
			b.Clusters = append(b.Clusters, e)
		case *Subgraph:
			b.Subgraphs = append(b.Subgraphs, e)
		case Assign:
			if b.Attrs == nil {
				b.Attrs = AttrMap{}
			}
			b.Attrs.Set(e.Key, e.Value)
		}
	}
}
