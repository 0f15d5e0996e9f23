package dot

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the Value tagged union.
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueInt    ValueKind = "int"
	ValueFloat  ValueKind = "float"
	ValueBool   ValueKind = "bool"
	ValueHTML   ValueKind = "html"
)

// Value is a parsed attribute value. Kind determines which typed field is
// populated. HTML label values carry the verbatim markup in Str and a
// sentinel-wrapped form (<<...>>) in Raw so consumers can tell them apart
// from plain strings.
type Value struct {
	Kind  ValueKind
	Str   string  // populated when Kind is ValueString or ValueHTML
	Int   int64   // populated when Kind == ValueInt
	Float float64 // populated when Kind == ValueFloat
	Bool  bool    // populated when Kind == ValueBool
	Raw   string  // original text representation, always set
}

// String returns the original text representation of the value.
func (v Value) String() string { return v.Raw }

// AttrMap maps attribute names to values. Later assignment of the same key
// overwrites earlier ones; iteration order is not significant.
type AttrMap map[string]Value

// Get looks up an attribute by key.
func (m AttrMap) Get(key string) (Value, bool) {
	v, ok := m[key]
	return v, ok
}

// Set assigns an attribute, replacing any earlier value for the key.
func (m AttrMap) Set(key string, v Value) {
	m[key] = v
}

// clone returns an independent copy of the map.
func (m AttrMap) clone() AttrMap {
	cp := make(AttrMap, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// update copies all entries of other into m, overwriting existing keys.
func (m AttrMap) update(other AttrMap) {
	for k, v := range other {
		m[k] = v
	}
}

// mergeAttrs resolves final attributes as defaults overridden by explicit.
func mergeAttrs(defaults, explicit AttrMap) AttrMap {
	merged := defaults.clone()
	merged.update(explicit)
	return merged
}

// tokenValue converts a token in value position into a typed Value. Bare
// identifiers become unquoted strings, except the literals true/false which
// become booleans.
func tokenValue(tok Token) (Value, error) {
	switch tok.Kind {
	case TokenString:
		return Value{Kind: ValueString, Str: tok.Literal, Raw: tok.Literal}, nil

	case TokenHTML:
		return Value{
			Kind: ValueHTML,
			Str:  tok.Literal,
			Raw:  "<<" + tok.Literal + ">>",
		}, nil

	case TokenInteger:
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return Value{}, &ValueError{ParseError{
				Message: fmt.Sprintf("invalid integer %q: %v", tok.Literal, err),
				Pos:     tok.Pos,
				Cause:   err,
			}}
		}
		return Value{Kind: ValueInt, Int: n, Raw: tok.Literal}, nil

	case TokenFloat:
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return Value{}, &ValueError{ParseError{
				Message: fmt.Sprintf("invalid float %q: %v", tok.Literal, err),
				Pos:     tok.Pos,
				Cause:   err,
			}}
		}
		return Value{Kind: ValueFloat, Float: f, Raw: tok.Literal}, nil

	case TokenIdentifier:
		if strings.EqualFold(tok.Literal, "true") {
			return Value{Kind: ValueBool, Bool: true, Raw: tok.Literal}, nil
		}
		if strings.EqualFold(tok.Literal, "false") {
			return Value{Kind: ValueBool, Bool: false, Raw: tok.Literal}, nil
		}
		// Bare identifiers in value position are unquoted strings
		// (e.g. shape=box, rankdir=LR).
		return Value{Kind: ValueString, Str: tok.Literal, Raw: tok.Literal}, nil

	// Keywords used as attribute values (e.g. shape=node) degrade to strings.
	case TokenGraph, TokenNode, TokenEdge, TokenSubgraph, TokenStrict, TokenDigraph:
		return Value{Kind: ValueString, Str: tok.Literal, Raw: tok.Literal}, nil

	default:
		return Value{}, &ValueError{ParseError{
			Message: fmt.Sprintf("unexpected token %s in value position", tok.Kind),
			Pos:     tok.Pos,
		}}
	}
}

// stringValue builds a plain string Value, used for concatenated quoted
// strings and port-derived attributes.
func stringValue(s string) Value {
	return Value{Kind: ValueString, Str: s, Raw: s}
}
