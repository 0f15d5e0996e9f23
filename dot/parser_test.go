package dot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinimalGraphs(t *testing.T) {
	tests := []struct {
		src      string
		id       string
		strict   bool
		directed bool
	}{
		{`graph { }`, "", false, false},
		{`digraph { }`, "", false, true},
		{`graph G { }`, "G", false, false},
		{`digraph G { }`, "G", false, true},
		{`strict graph G { }`, "G", true, false},
		{`strict digraph G { }`, "G", true, true},
		{`STRICT DIGRAPH G { }`, "G", true, true},
	}
	for _, tt := range tests {
		g, err := ParseString(tt.src)
		require.NoError(t, err, "input: %s", tt.src)
		assert.Equal(t, tt.id, g.ID, "input: %s", tt.src)
		assert.Equal(t, tt.strict, g.Strict, "input: %s", tt.src)
		assert.Equal(t, tt.directed, g.Directed, "input: %s", tt.src)
		assert.Empty(t, g.Nodes, "input: %s", tt.src)
		assert.Empty(t, g.Edges, "input: %s", tt.src)
		assert.Empty(t, g.Subgraphs, "input: %s", tt.src)
		assert.Empty(t, g.Clusters, "input: %s", tt.src)
	}
}

func TestParseQuotedGraphID(t *testing.T) {
	g, err := ParseString(`digraph "my graph" { }`)
	require.NoError(t, err)
	assert.Equal(t, "my graph", g.ID)
}

func TestParseEdgeChain(t *testing.T) {
	g, err := ParseString(`digraph G { a -> b -> c; }`)
	require.NoError(t, err)
	require.Len(t, g.Edges, 2)

	assert.Equal(t, "a", g.Edges[0].Tail.ID)
	assert.Equal(t, "b", g.Edges[0].Head.ID)
	assert.Equal(t, "b", g.Edges[1].Tail.ID)
	assert.Equal(t, "c", g.Edges[1].Head.ID)
	assert.True(t, g.Edges[0].Directed)
	assert.True(t, g.Edges[1].Directed)
}

func TestParseEdgeChainSharedAttrs(t *testing.T) {
	g, err := ParseString(`digraph G { a -> b -> c [weight=2]; }`)
	require.NoError(t, err)
	require.Len(t, g.Edges, 2)
	for _, e := range g.Edges {
		w, ok := e.Attr("weight")
		require.True(t, ok, "edge %s -> %s", e.Tail.ID, e.Head.ID)
		assert.Equal(t, int64(2), w.Int)
	}
}

func TestParseUndirectedEdges(t *testing.T) {
	g, err := ParseString(`graph G { a -- b; b -- c; }`)
	require.NoError(t, err)
	require.Len(t, g.Edges, 2)
	assert.False(t, g.Edges[0].Directed)
	assert.False(t, g.Edges[1].Directed)
}

func TestParseEdgeOpMustMatchHeader(t *testing.T) {
	_, err := ParseString(`digraph G { a -- b; }`)
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)

	_, err = ParseString(`graph G { a -> b; }`)
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
}

func TestParseEdgeEndpointsNotDeclaredAsNodes(t *testing.T) {
	// Nodes appearing only in edge statements are synthesized on the edge,
	// not appended to the node collection.
	g, err := ParseString(`digraph G { a -> b; }`)
	require.NoError(t, err)
	assert.Empty(t, g.Nodes)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "a", g.Edges[0].Tail.ID)
	assert.Empty(t, g.Edges[0].Tail.Attrs)
}

func TestParseNodeDefaultsInStatementOrder(t *testing.T) {
	src := `digraph G { node [color=red]; a; node [color=blue]; b; }`
	g, err := ParseString(src)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)

	a := g.Node("a")
	require.NotNil(t, a)
	color, ok := a.Attr("color")
	require.True(t, ok)
	assert.Equal(t, "red", color.Str)

	b := g.Node("b")
	require.NotNil(t, b)
	color, ok = b.Attr("color")
	require.True(t, ok)
	assert.Equal(t, "blue", color.Str)
}

func TestParseNodeDefaultsAccumulate(t *testing.T) {
	src := `digraph G { node [color=red]; node [shape=box]; a; }`
	g, err := ParseString(src)
	require.NoError(t, err)

	a := g.Node("a")
	require.NotNil(t, a)
	color, ok := a.Attr("color")
	require.True(t, ok)
	assert.Equal(t, "red", color.Str)
	shape, ok := a.Attr("shape")
	require.True(t, ok)
	assert.Equal(t, "box", shape.Str)
}

func TestParseDefaultsDoNotCrossScopes(t *testing.T) {
	src := `
digraph G {
    node [color=red];
    a;
    subgraph inner {
        b;
    }
}
`
	g, err := ParseString(src)
	require.NoError(t, err)

	a := g.Node("a")
	require.NotNil(t, a)
	_, ok := a.Attr("color")
	assert.True(t, ok)

	// The nested scope starts with empty defaults
	require.Len(t, g.Subgraphs, 1)
	b := g.Subgraphs[0].Node("b")
	require.NotNil(t, b)
	assert.Empty(t, b.Attrs)
}

func TestParseAttrOverride(t *testing.T) {
	src := `digraph G { node [color=red]; a [color=green]; }`
	g, err := ParseString(src)
	require.NoError(t, err)

	a := g.Node("a")
	require.NotNil(t, a)
	color, ok := a.Attr("color")
	require.True(t, ok)
	assert.Equal(t, "green", color.Str)
}

func TestParseEdgeDefaults(t *testing.T) {
	src := `
digraph G {
    edge [weight=5];
    a -> b;
    c -> d [weight=9, label=x];
}
`
	g, err := ParseString(src)
	require.NoError(t, err)
	require.Len(t, g.Edges, 2)

	w, ok := g.Edges[0].Attr("weight")
	require.True(t, ok)
	assert.Equal(t, int64(5), w.Int)

	w, ok = g.Edges[1].Attr("weight")
	require.True(t, ok)
	assert.Equal(t, int64(9), w.Int)
}

func TestParseClusterClassification(t *testing.T) {
	src := `
digraph G {
    subgraph cluster_0 { a; }
    subgraph Cluster_1 { b; }
    subgraph sub_0 { c; }
}
`
	g, err := ParseString(src)
	require.NoError(t, err)

	require.Len(t, g.Clusters, 2)
	assert.Equal(t, "cluster_0", g.Clusters[0].ID)
	assert.Equal(t, "Cluster_1", g.Clusters[1].ID)
	require.Len(t, g.Subgraphs, 1)
	assert.Equal(t, "sub_0", g.Subgraphs[0].ID)

	// Identical nested content support
	require.Len(t, g.Clusters[0].Nodes, 1)
	assert.Equal(t, "a", g.Clusters[0].Nodes[0].ID)
	require.Len(t, g.Subgraphs[0].Nodes, 1)
	assert.Equal(t, "c", g.Subgraphs[0].Nodes[0].ID)
}

func TestParseAnonymousSubgraph(t *testing.T) {
	src := `digraph G { subgraph { a; } { b; } }`
	g, err := ParseString(src)
	require.NoError(t, err)
	require.Len(t, g.Subgraphs, 2)
	assert.Equal(t, "", g.Subgraphs[0].ID)
	assert.Equal(t, "", g.Subgraphs[1].ID)
	assert.Equal(t, "a", g.Subgraphs[0].Nodes[0].ID)
	assert.Equal(t, "b", g.Subgraphs[1].Nodes[0].ID)
}

func TestParseNestedSubgraphs(t *testing.T) {
	src := `
digraph G {
    subgraph outer {
        subgraph cluster_inner {
            a;
        }
    }
}
`
	g, err := ParseString(src)
	require.NoError(t, err)
	require.Len(t, g.Subgraphs, 1)
	outer := g.Subgraphs[0]
	require.Len(t, outer.Clusters, 1)
	assert.Equal(t, "cluster_inner", outer.Clusters[0].ID)
	assert.Equal(t, "a", outer.Clusters[0].Nodes[0].ID)
}

func TestParsePorts(t *testing.T) {
	src := `digraph G { a:out -> b:in:ne; c:sw -> d; }`
	g, err := ParseString(src)
	require.NoError(t, err)
	require.Len(t, g.Edges, 2)

	tail := g.Edges[0].Tail
	require.NotNil(t, tail.Port)
	assert.Equal(t, "out", tail.Port.Name)
	assert.Equal(t, "", tail.Port.Compass)

	head := g.Edges[0].Head
	require.NotNil(t, head.Port)
	assert.Equal(t, "in", head.Port.Name)
	assert.Equal(t, "ne", head.Port.Compass)

	// A lone compass token is a compass port, not a name
	tail = g.Edges[1].Tail
	require.NotNil(t, tail.Port)
	assert.Equal(t, "", tail.Port.Name)
	assert.Equal(t, "sw", tail.Port.Compass)
}

func TestParsePortsSetEdgeAttrs(t *testing.T) {
	g, err := ParseString(`digraph G { a:out:n -> b:in; }`)
	require.NoError(t, err)
	require.Len(t, g.Edges, 1)

	tp, ok := g.Edges[0].Attr("tailport")
	require.True(t, ok)
	assert.Equal(t, "out:n", tp.Str)
	hp, ok := g.Edges[0].Attr("headport")
	require.True(t, ok)
	assert.Equal(t, "in", hp.Str)
}

func TestParseInlinePortWinsOverAttrList(t *testing.T) {
	g, err := ParseString(`digraph G { a:nw -> b [tailport=e]; }`)
	require.NoError(t, err)
	require.Len(t, g.Edges, 1)

	tp, ok := g.Edges[0].Attr("tailport")
	require.True(t, ok)
	assert.Equal(t, "nw", tp.Str)
}

func TestParseInvalidCompassPoint(t *testing.T) {
	_, err := ParseString(`digraph G { a:p:q -> b; }`)
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
	assert.Contains(t, err.Error(), "compass point")
}

func TestParseNodeWithPort(t *testing.T) {
	g, err := ParseString(`digraph G { a:n [color=red]; }`)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	require.NotNil(t, g.Nodes[0].Port)
	assert.Equal(t, "n", g.Nodes[0].Port.Compass)
}

func TestParseGraphAttrStmtAndAssignment(t *testing.T) {
	// graph [k=v] and bare k=v have identical effect on the enclosing scope
	src := `
digraph G {
    graph [rankdir=LR]
    label = "My Graph";
}
`
	g, err := ParseString(src)
	require.NoError(t, err)

	rd, ok := g.Attr("rankdir")
	require.True(t, ok)
	assert.Equal(t, "LR", rd.Str)

	lbl, ok := g.Attr("label")
	require.True(t, ok)
	assert.Equal(t, "My Graph", lbl.Str)
}

func TestParseSubgraphScopedAssignment(t *testing.T) {
	src := `
digraph G {
    label = "outer";
    subgraph cluster_a {
        label = "inner";
    }
}
`
	g, err := ParseString(src)
	require.NoError(t, err)

	lbl, ok := g.Attr("label")
	require.True(t, ok)
	assert.Equal(t, "outer", lbl.Str)

	require.Len(t, g.Clusters, 1)
	lbl, ok = g.Clusters[0].Attr("label")
	require.True(t, ok)
	assert.Equal(t, "inner", lbl.Str)
}

func TestParseMultipleBracketGroups(t *testing.T) {
	g, err := ParseString(`digraph G { a [color=red] [shape=box, color=blue]; }`)
	require.NoError(t, err)

	a := g.Node("a")
	require.NotNil(t, a)
	color, ok := a.Attr("color")
	require.True(t, ok)
	assert.Equal(t, "blue", color.Str) // later group wins
	shape, ok := a.Attr("shape")
	require.True(t, ok)
	assert.Equal(t, "box", shape.Str)
}

func TestParseEmptyAttrBlock(t *testing.T) {
	g, err := ParseString(`digraph G { a []; }`)
	require.NoError(t, err)
	a := g.Node("a")
	require.NotNil(t, a)
	assert.Empty(t, a.Attrs)
}

func TestParseSemicolonSeparatedAList(t *testing.T) {
	g, err := ParseString(`digraph G { a [color=red; shape=box]; }`)
	require.NoError(t, err)
	a := g.Node("a")
	require.NotNil(t, a)
	_, ok := a.Attr("color")
	assert.True(t, ok)
	_, ok = a.Attr("shape")
	assert.True(t, ok)
}

func TestParseUnknownAttrsAccepted(t *testing.T) {
	g, err := ParseString(`digraph G { a [frobnicate="yes"]; }`)
	require.NoError(t, err)
	a := g.Node("a")
	require.NotNil(t, a)
	v, ok := a.Attr("frobnicate")
	require.True(t, ok)
	assert.Equal(t, "yes", v.Str)
}

func TestParseStringConcatenation(t *testing.T) {
	g, err := ParseString(`digraph G { a [label="hello, " + "world"]; }`)
	require.NoError(t, err)
	a := g.Node("a")
	require.NotNil(t, a)
	lbl, ok := a.Attr("label")
	require.True(t, ok)
	assert.Equal(t, "hello, world", lbl.Str)
}

func TestParseHTMLLabel(t *testing.T) {
	g, err := ParseString(`digraph G { a [label=<<b>bold</b>>]; }`)
	require.NoError(t, err)
	a := g.Node("a")
	require.NotNil(t, a)
	lbl, ok := a.Attr("label")
	require.True(t, ok)
	assert.Equal(t, ValueHTML, lbl.Kind)
	assert.Equal(t, "<b>bold</b>", lbl.Str)
	assert.Equal(t, "<<<b>bold</b>>>", lbl.Raw)
}

func TestParseQuotedNodeIDs(t *testing.T) {
	g, err := ParseString(`digraph G { "node one" -> "node two"; }`)
	require.NoError(t, err)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "node one", g.Edges[0].Tail.ID)
	assert.Equal(t, "node two", g.Edges[0].Head.ID)
}

func TestParseNumericNodeIDs(t *testing.T) {
	g, err := ParseString(`digraph G { 1 -> 2; }`)
	require.NoError(t, err)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "1", g.Edges[0].Tail.ID)
	assert.Equal(t, "2", g.Edges[0].Head.ID)
}

func TestParseComments(t *testing.T) {
	commented := `
// leading comment
digraph G { /* header */
    # preprocessor line
    a [label="A"]; // trailing
    /* block
       spanning lines */
    a -> b;
}
`
	plain := `
digraph G {
    a [label="A"];
    a -> b;
}
`
	g1, err := ParseString(commented)
	require.NoError(t, err)
	g2, err := ParseString(plain)
	require.NoError(t, err)

	assert.Equal(t, len(g2.Nodes), len(g1.Nodes))
	assert.Equal(t, len(g2.Edges), len(g1.Edges))
	assert.Equal(t, g2.Nodes[0].ID, g1.Nodes[0].ID)
}

func TestParseDuplicateNodeStatementsKept(t *testing.T) {
	// The parser does not merge nodes by identifier; that is the consumer's
	// business.
	g, err := ParseString(`digraph G { a [color=red]; a [shape=box]; }`)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "a", g.Nodes[0].ID)
	assert.Equal(t, "a", g.Nodes[1].ID)
}

func TestParseValueTypes(t *testing.T) {
	src := `digraph G { a [weight=3, ratio=0.5, active=true, hidden=false, label="x", shape=box]; }`
	g, err := ParseString(src)
	require.NoError(t, err)

	a := g.Node("a")
	require.NotNil(t, a)

	w, ok := a.Attr("weight")
	require.True(t, ok)
	assert.Equal(t, ValueInt, w.Kind)
	assert.Equal(t, int64(3), w.Int)

	r, ok := a.Attr("ratio")
	require.True(t, ok)
	assert.Equal(t, ValueFloat, r.Kind)
	assert.InDelta(t, 0.5, r.Float, 0.001)

	act, ok := a.Attr("active")
	require.True(t, ok)
	assert.Equal(t, ValueBool, act.Kind)
	assert.True(t, act.Bool)

	hid, ok := a.Attr("hidden")
	require.True(t, ok)
	assert.Equal(t, ValueBool, hid.Kind)
	assert.False(t, hid.Bool)

	lbl, ok := a.Attr("label")
	require.True(t, ok)
	assert.Equal(t, ValueString, lbl.Kind)
	assert.Equal(t, "x", lbl.Str)

	shape, ok := a.Attr("shape")
	require.True(t, ok)
	assert.Equal(t, ValueString, shape.Kind)
	assert.Equal(t, "box", shape.Str)
}

func TestParseDanglingEdgeFails(t *testing.T) {
	_, err := ParseString(`digraph G { a -> ; }`)
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
	assert.Contains(t, err.Error(), "node identifier")
}

func TestParseMismatchedBraceFails(t *testing.T) {
	_, err := ParseString(`digraph G { a;`)
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
}

func TestParseTrailingContentFails(t *testing.T) {
	_, err := ParseString(`digraph A { } digraph B { }`)
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
}

func TestParseMissingHeaderFails(t *testing.T) {
	_, err := ParseString(`{ a; }`)
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := ParseString("digraph G {\n  a -> ;\n}")
	require.Error(t, err)
	var syn *SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Equal(t, 2, syn.Pos.Line)
}

func TestParseReader(t *testing.T) {
	g, err := ParseReader(strings.NewReader(`digraph G { a -> b; }`))
	require.NoError(t, err)
	assert.Equal(t, "G", g.ID)
	assert.Len(t, g.Edges, 1)
}

func TestParseEncounterOrderPreserved(t *testing.T) {
	src := `
digraph G {
    a; b;
    subgraph s1 { }
    c;
    subgraph cluster_x { }
}
`
	g, err := ParseString(src)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "a", g.Nodes[0].ID)
	assert.Equal(t, "b", g.Nodes[1].ID)
	assert.Equal(t, "c", g.Nodes[2].ID)
	assert.Len(t, g.Subgraphs, 1)
	assert.Len(t, g.Clusters, 1)
}

func TestParseEdgesFromAndTo(t *testing.T) {
	src := `
digraph G {
    a -> b;
    a -> c;
    b -> c;
}
`
	g, err := ParseString(src)
	require.NoError(t, err)

	assert.Len(t, g.EdgesFrom("a"), 2)
	assert.Len(t, g.EdgesTo("c"), 2)
	assert.Empty(t, g.EdgesFrom("c"))
}

func TestIsClusterID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"cluster_0", true},
		{"CLUSTER_0", true},
		{"ClusterA", true},
		{"cluster", true},
		{"clust", false},
		{"sub_0", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsClusterID(tt.id), "id: %q", tt.id)
	}
}
