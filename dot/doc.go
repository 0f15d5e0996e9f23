// Package dot implements a parser for the Graphviz DOT language.
//
// The parser converts DOT source text into a passive in-memory graph
// description: a directed or undirected Graph containing nodes, edges,
// nested subgraphs, cluster subgraphs and attribute maps, with Graphviz's
// default-attribute inheritance reproduced statement by statement. Both
// graph and digraph headers are supported, including the strict modifier,
// compound ports with compass points, edge chains, quoted strings with
// concatenation, HTML-like labels, and all three comment styles.
//
// The parser is structured as a hand-rolled recursive-descent parser with
// three layers:
//
//   - Lexer: converts raw bytes into a token stream, stripping comments and
//     whitespace.
//   - Parser: consumes tokens according to the DOT grammar, runs the
//     semantic actions (default-attribute state, edge-chain expansion,
//     cluster classification) and produces tagged elements.
//   - Assembler and model: each scope's elements are dispatched into the
//     Graph/Subgraph/Cluster containment tree.
//
// Usage:
//
//	graph, err := dot.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(graph.ID, len(graph.Nodes), len(graph.Edges))
//
// Parsing is single-pass and synchronous. A parser instance holds no state
// between invocations, so independent documents may be parsed concurrently.
// On failure the caller receives a *LexError, *SyntaxError or *ValueError
// with line and column information; no partial graph is returned.
//
// The grammar follows https://graphviz.org/doc/info/lang.html. Attribute
// values are never validated beyond their syntactic shape; see Lint for
// opt-in structural diagnostics.
package dot
