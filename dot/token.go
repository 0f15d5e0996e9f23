package dot

import "strings"

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF        TokenKind = iota
	TokenIdentifier           // [A-Za-z_][A-Za-z0-9_]*
	TokenString               // "..." with escaped quotes
	TokenHTML                 // <...> balanced angle-bracket label, captured verbatim
	TokenInteger              // -?[0-9]+
	TokenFloat                // -?([0-9]*.[0-9]+ | [0-9]+.[0-9]*)
	TokenArrow                // ->
	TokenDoubleDash           // --
	TokenLBrace               // {
	TokenRBrace               // }
	TokenLBracket             // [
	TokenRBracket             // ]
	TokenEquals               // =
	TokenComma                // ,
	TokenSemicolon            // ;
	TokenColon                // :
	TokenPlus                 // + (quoted-string concatenation)

	// Keywords (matched case-insensitively against identifier text)
	TokenStrict   // strict
	TokenGraph    // graph
	TokenDigraph  // digraph
	TokenSubgraph // subgraph
	TokenNode     // node
	TokenEdge     // edge
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "identifier",
	TokenString:     "string",
	TokenHTML:       "HTML label",
	TokenInteger:    "integer",
	TokenFloat:      "float",
	TokenArrow:      "'->'",
	TokenDoubleDash: "'--'",
	TokenLBrace:     "'{'",
	TokenRBrace:     "'}'",
	TokenLBracket:   "'['",
	TokenRBracket:   "']'",
	TokenEquals:     "'='",
	TokenComma:      "','",
	TokenSemicolon:  "';'",
	TokenColon:      "':'",
	TokenPlus:       "'+'",
	TokenStrict:     "'strict'",
	TokenGraph:      "'graph'",
	TokenDigraph:    "'digraph'",
	TokenSubgraph:   "'subgraph'",
	TokenNode:       "'node'",
	TokenEdge:       "'edge'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string // text content (decoded for strings, inner markup for HTML)
	Pos     Position
}

// keywords maps lower-cased keyword strings to their token kinds.
// DOT keywords are case-insensitive.
var keywords = map[string]TokenKind{
	"strict":   TokenStrict,
	"graph":    TokenGraph,
	"digraph":  TokenDigraph,
	"subgraph": TokenSubgraph,
	"node":     TokenNode,
	"edge":     TokenEdge,
}

func keywordKind(literal string) (TokenKind, bool) {
	kind, ok := keywords[strings.ToLower(literal)]
	return kind, ok
}
