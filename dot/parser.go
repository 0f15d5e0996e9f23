package dot

import (
	"fmt"
	"io"
	"os"
)

// Parse parses a complete DOT document held in memory and returns the Graph.
// Returns a *LexError, *SyntaxError, or *ValueError on malformed input; no
// partial graph is ever returned.
func Parse(src []byte) (*Graph, error) {
	p := &parser{lex: NewLexer(src)}
	return p.parseGraph()
}

// ParseString parses DOT source held in a string.
func ParseString(src string) (*Graph, error) {
	return Parse([]byte(src))
}

// ParseReader reads the entire source from r and parses it.
func ParseReader(r io.Reader) (*Graph, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dot source: %w", err)
	}
	return Parse(src)
}

// ParseFile reads and parses the named DOT file.
func ParseFile(path string) (*Graph, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dot file: %w", err)
	}
	return Parse(src)
}

type parser struct {
	lex *Lexer
}

// defaults is the per-scope default attribute state. Every brace-delimited
// body starts with fresh empty maps; defaults never cross scope boundaries.
type defaults struct {
	node AttrMap
	edge AttrMap
}

func newDefaults() *defaults {
	return &defaults{node: AttrMap{}, edge: AttrMap{}}
}

func (p *parser) peek() (Token, error) {
	return p.lex.Peek()
}

func (p *parser) next() (Token, error) {
	return p.lex.Next()
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, p.syntaxError(tok, kind.String())
	}
	return tok, nil
}

func (p *parser) syntaxError(got Token, expected string) error {
	return &SyntaxError{
		ParseError: ParseError{Pos: got.Pos},
		Expected:   expected,
		Got:        fmt.Sprintf("%s (%q)", got.Kind, got.Literal),
	}
}

// nodeRef is a parsed node_id: an identifier plus optional port. It is the
// grammar layer's intermediate form; the semantic layer turns it into Node
// values when edges and node statements are built.
type nodeRef struct {
	id   string
	port *Port
	pos  Position
}

// node materializes the reference as a fresh Node value carrying no
// attributes beyond the identifier and port.
func (r nodeRef) node() *Node {
	n := &Node{ID: r.id, Attrs: AttrMap{}, Pos: r.pos}
	if r.port != nil {
		port := *r.port
		n.Port = &port
	}
	return n
}

func (p *parser) parseGraph() (*Graph, error) {
	g := &Graph{}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenStrict {
		g.Strict = true
		_, _ = p.next()
	}

	tok, err = p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenDigraph:
		g.Directed = true
	case TokenGraph:
		g.Directed = false
	default:
		return nil, p.syntaxError(tok, "'graph' or 'digraph'")
	}

	// Optional graph identifier
	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if isIDToken(tok.Kind) {
		id, _, err := p.parseIDText()
		if err != nil {
			return nil, err
		}
		g.ID = id
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	elems, err := p.parseStmtList(g.Directed)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}

	// One graph per document
	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenEOF {
		return nil, p.syntaxError(tok, "EOF")
	}

	g.Attrs = AttrMap{}
	g.assemble(elems)
	return g, nil
}

// parseStmtList parses statements up to the closing brace of the current
// scope. Each scope carries its own fresh default-attribute state.
func (p *parser) parseStmtList(directed bool) ([]Element, error) {
	d := newDefaults()
	var elems []Element

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
			return elems, nil
		}
		if tok.Kind == TokenSemicolon {
			_, _ = p.next()
			continue
		}
		stmt, err := p.parseStatement(d, directed)
		if err != nil {
			return nil, err
		}
		elems = append(elems, stmt...)
	}
}

func (p *parser) parseStatement(d *defaults, directed bool) ([]Element, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case TokenGraph:
		// graph [...] sets the enclosing scope's own attributes, with the
		// same effect as bare key=value assignments.
		_, _ = p.next()
		attrs, err := p.parseAttrLists()
		if err != nil {
			return nil, err
		}
		var elems []Element
		for key, val := range attrs {
			elems = append(elems, Assign{Key: key, Value: val, Pos: tok.Pos})
		}
		return elems, nil

	case TokenNode:
		_, _ = p.next()
		attrs, err := p.parseAttrLists()
		if err != nil {
			return nil, err
		}
		d.node.update(attrs)
		return nil, nil

	case TokenEdge:
		_, _ = p.next()
		attrs, err := p.parseAttrLists()
		if err != nil {
			return nil, err
		}
		d.edge.update(attrs)
		return nil, nil

	case TokenSubgraph:
		sub, err := p.parseSubgraph(directed)
		if err != nil {
			return nil, err
		}
		return []Element{classifySubgraph(sub)}, nil

	case TokenLBrace:
		// Anonymous subgraph: a bare brace block
		sub, err := p.parseSubgraphBody("", directed)
		if err != nil {
			return nil, err
		}
		return []Element{classifySubgraph(sub)}, nil

	case TokenIdentifier, TokenString, TokenHTML, TokenInteger, TokenFloat:
		return p.parseIDStatement(d, directed)

	default:
		return nil, p.syntaxError(tok, "statement")
	}
}

// parseIDStatement handles a statement that begins with an ID token.
// Disambiguates between attribute assignment, edge statement and node
// statement by peeking for '=' or an edge operator.
func (p *parser) parseIDStatement(d *defaults, directed bool) ([]Element, error) {
	id, idTok, err := p.parseIDText()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == TokenEquals {
		_, _ = p.next()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return []Element{Assign{Key: id, Value: val, Pos: idTok.Pos}}, nil
	}

	ref := nodeRef{id: id, pos: idTok.Pos}
	if tok.Kind == TokenColon {
		port, err := p.parsePort()
		if err != nil {
			return nil, err
		}
		ref.port = port
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
	}

	if tok.Kind == TokenArrow || tok.Kind == TokenDoubleDash {
		return p.parseEdgeChain(ref, d, directed)
	}

	return p.parseNodeStmt(ref, d)
}

// parseNodeStmt parses the optional attribute lists of a node statement and
// resolves the final attributes as scope node-defaults overridden by the
// statement's own list.
func (p *parser) parseNodeStmt(ref nodeRef, d *defaults) ([]Element, error) {
	explicit, err := p.parseOptionalAttrLists()
	if err != nil {
		return nil, err
	}

	n := ref.node()
	n.Attrs = mergeAttrs(d.node, explicit)
	return []Element{n}, nil
}

// parseEdgeChain parses edgeop node_id (edgeop node_id)* attr_list? and
// expands N endpoints into N-1 edges sharing the trailing attribute list.
func (p *parser) parseEdgeChain(first nodeRef, d *defaults, directed bool) ([]Element, error) {
	refs := []nodeRef{first}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenArrow && tok.Kind != TokenDoubleDash {
			break
		}
		_, _ = p.next()

		// The edge operator is fixed by the graph header: -> in digraphs,
		// -- in undirected graphs.
		if directed && tok.Kind == TokenDoubleDash {
			return nil, p.syntaxError(tok, "'->' in a digraph")
		}
		if !directed && tok.Kind == TokenArrow {
			return nil, p.syntaxError(tok, "'--' in an undirected graph")
		}

		ref, err := p.parseNodeRef()
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	explicit, err := p.parseOptionalAttrLists()
	if err != nil {
		return nil, err
	}
	merged := mergeAttrs(d.edge, explicit)

	elems := make([]Element, 0, len(refs)-1)
	for i := 0; i < len(refs)-1; i++ {
		tail, head := refs[i].node(), refs[i+1].node()
		attrs := merged.clone()
		// A port parsed inline on the endpoint wins over a tailport/headport
		// entry in the attribute list.
		if tail.Port != nil {
			attrs.Set("tailport", stringValue(tail.Port.String()))
		}
		if head.Port != nil {
			attrs.Set("headport", stringValue(head.Port.String()))
		}
		elems = append(elems, &Edge{
			Tail:     tail,
			Head:     head,
			Directed: directed,
			Attrs:    attrs,
			Pos:      refs[i].pos,
		})
	}
	return elems, nil
}

// parseNodeRef parses node_id = ID [port].
func (p *parser) parseNodeRef() (nodeRef, error) {
	tok, err := p.peek()
	if err != nil {
		return nodeRef{}, err
	}
	if !isIDToken(tok.Kind) {
		return nodeRef{}, p.syntaxError(tok, "node identifier")
	}

	id, idTok, err := p.parseIDText()
	if err != nil {
		return nodeRef{}, err
	}
	ref := nodeRef{id: id, pos: idTok.Pos}

	tok, err = p.peek()
	if err != nil {
		return nodeRef{}, err
	}
	if tok.Kind == TokenColon {
		port, err := p.parsePort()
		if err != nil {
			return nodeRef{}, err
		}
		ref.port = port
	}
	return ref, nil
}

// parsePort parses ':' ID (':' compass)? | ':' compass. A lone part that
// matches a compass point token is a compass port; otherwise it is a port
// name.
func (p *parser) parsePort() (*Port, error) {
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}

	first, _, err := p.parseIDText()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenColon {
		if IsCompassPoint(first) {
			return &Port{Compass: first}, nil
		}
		return &Port{Name: first}, nil
	}

	_, _ = p.next()
	second, secondTok, err := p.parseIDText()
	if err != nil {
		return nil, err
	}
	if !IsCompassPoint(second) {
		return nil, p.syntaxError(secondTok, "compass point (n, ne, e, se, s, sw, w, nw, c, _)")
	}
	return &Port{Name: first, Compass: second}, nil
}

// parseSubgraph parses 'subgraph' [ID] '{' stmt_list '}'.
func (p *parser) parseSubgraph(directed bool) (*Subgraph, error) {
	if _, err := p.expect(TokenSubgraph); err != nil {
		return nil, err
	}

	var id string
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if isIDToken(tok.Kind) {
		id, _, err = p.parseIDText()
		if err != nil {
			return nil, err
		}
	}

	return p.parseSubgraphBody(id, directed)
}

// parseSubgraphBody parses a brace-delimited body into a Subgraph with the
// given (possibly empty) identifier. The nested scope starts with fresh
// empty defaults; nothing is inherited from the parent scope.
func (p *parser) parseSubgraphBody(id string, directed bool) (*Subgraph, error) {
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	elems, err := p.parseStmtList(directed)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}

	sub := &Subgraph{ID: id}
	sub.Attrs = AttrMap{}
	sub.assemble(elems)
	return sub, nil
}

// classifySubgraph promotes a parsed subgraph to a Cluster when its
// identifier carries the "cluster" prefix. Classification is by naming
// convention, not by grammar.
func classifySubgraph(sub *Subgraph) Element {
	if IsClusterID(sub.ID) {
		return &Cluster{Subgraph: *sub}
	}
	return sub
}

// parseOptionalAttrLists parses attr_list if the next token opens a bracket
// group, else returns an empty map.
func (p *parser) parseOptionalAttrLists() (AttrMap, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenLBracket {
		return AttrMap{}, nil
	}
	return p.parseAttrLists()
}

// parseAttrLists parses ('[' a_list? ']')+ and merges all bracket groups
// into one map, later keys overwriting earlier ones.
func (p *parser) parseAttrLists() (AttrMap, error) {
	attrs := AttrMap{}

	if _, err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}
	if err := p.parseAList(attrs); err != nil {
		return nil, err
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenLBracket {
			return attrs, nil
		}
		_, _ = p.next()
		if err := p.parseAList(attrs); err != nil {
			return nil, err
		}
	}
}

// parseAList parses (ID '=' ID (','|';')?)* up to and including the closing
// bracket. Unrecognized attribute names are accepted and stored as opaque
// values rather than rejected.
func (p *parser) parseAList(attrs AttrMap) error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Kind == TokenRBracket {
			_, _ = p.next()
			return nil
		}
		if tok.Kind == TokenComma || tok.Kind == TokenSemicolon {
			_, _ = p.next()
			continue
		}

		key, _, err := p.parseAttrKey()
		if err != nil {
			return err
		}
		if _, err := p.expect(TokenEquals); err != nil {
			return err
		}
		val, err := p.parseValue()
		if err != nil {
			return err
		}
		attrs.Set(key, val)
	}
}

// parseAttrKey parses an attribute name. Keywords are accepted as keys for
// leniency toward files that use names like "node" or "edge".
func (p *parser) parseAttrKey() (string, Token, error) {
	tok, err := p.peek()
	if err != nil {
		return "", Token{}, err
	}
	switch tok.Kind {
	case TokenGraph, TokenNode, TokenEdge:
		_, _ = p.next()
		return tok.Literal, tok, nil
	}
	if !isIDToken(tok.Kind) {
		_, _ = p.next()
		return "", Token{}, p.syntaxError(tok, "attribute name")
	}
	return p.parseIDText()
}

// parseValue parses an ID in value position into a typed Value, joining
// quoted-string concatenations ("a" + "b").
func (p *parser) parseValue() (Value, error) {
	tok, err := p.next()
	if err != nil {
		return Value{}, err
	}

	if tok.Kind == TokenString {
		text, err := p.continueStringConcat(tok.Literal)
		if err != nil {
			return Value{}, err
		}
		return stringValue(text), nil
	}
	return tokenValue(tok)
}

// parseIDText parses any ID form (identifier, quoted string with
// concatenation, numeral, HTML label) into its text representation. Returns
// the first token for position reporting.
func (p *parser) parseIDText() (string, Token, error) {
	tok, err := p.next()
	if err != nil {
		return "", Token{}, err
	}

	switch tok.Kind {
	case TokenIdentifier, TokenInteger, TokenFloat:
		return tok.Literal, tok, nil
	case TokenString:
		text, err := p.continueStringConcat(tok.Literal)
		if err != nil {
			return "", Token{}, err
		}
		return text, tok, nil
	case TokenHTML:
		return "<<" + tok.Literal + ">>", tok, nil
	default:
		return "", Token{}, p.syntaxError(tok, "identifier")
	}
}

// continueStringConcat joins further quoted strings connected by '+' onto an
// already-consumed first segment.
func (p *parser) continueStringConcat(first string) (string, error) {
	text := first
	for {
		tok, err := p.peek()
		if err != nil {
			return "", err
		}
		if tok.Kind != TokenPlus {
			return text, nil
		}
		_, _ = p.next()
		seg, err := p.expect(TokenString)
		if err != nil {
			return "", err
		}
		text += seg.Literal
	}
}

func isIDToken(kind TokenKind) bool {
	switch kind {
	case TokenIdentifier, TokenString, TokenHTML, TokenInteger, TokenFloat:
		return true
	}
	return false
}
