package dot

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a lint diagnostic.
type Severity int

const (
	// Error means the graph contradicts its own header (e.g. strict
	// violations).
	Error Severity = iota
	// Warning means consumers may see surprising behavior.
	Warning
	// Info is an informational note.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single lint finding.
type Diagnostic struct {
	Rule     string   // rule identifier (e.g. "strict_duplicate_edge")
	Severity Severity // ERROR, WARNING, or INFO
	Message  string   // human-readable description
	Scope    string   // graph/subgraph/cluster the finding applies to
	NodeID   string   // related node ID (optional)
	Edge     *EdgeRef // related edge as (tail, head) (optional)
}

// EdgeRef identifies an edge by its endpoints.
type EdgeRef struct {
	Tail string
	Head string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.Scope != "" {
		fmt.Fprintf(&b, " (in %s)", d.Scope)
	}
	if d.NodeID != "" {
		fmt.Fprintf(&b, " (node: %s)", d.NodeID)
	}
	if d.Edge != nil {
		fmt.Fprintf(&b, " (edge: %s -> %s)", d.Edge.Tail, d.Edge.Head)
	}
	return b.String()
}

// LintRule is the interface for a single lint rule.
type LintRule interface {
	Name() string
	Apply(g *Graph) []Diagnostic
}

// LintError is returned by LintOrError when error-severity diagnostics exist.
type LintError struct {
	Diagnostics []Diagnostic
}

func (e *LintError) Error() string {
	var msgs []string
	for _, d := range e.Diagnostics {
		msgs = append(msgs, d.String())
	}
	return fmt.Sprintf("lint failed with %d error(s):\n  %s", len(e.Diagnostics), strings.Join(msgs, "\n  "))
}

// Lint runs all built-in rules (and any extra rules) against the graph.
// Returns all diagnostics regardless of severity. Lint is opt-in; Parse
// never applies these rules.
func Lint(g *Graph, extraRules ...LintRule) []Diagnostic {
	rules := builtInRules()
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(g)...)
	}
	return diagnostics
}

// LintOrError runs Lint and returns an error if any error-severity
// diagnostics are found. Non-error diagnostics are still returned.
func LintOrError(g *Graph, extraRules ...LintRule) ([]Diagnostic, error) {
	diagnostics := Lint(g, extraRules...)

	var errors []Diagnostic
	for _, d := range diagnostics {
		if d.Severity == Error {
			errors = append(errors, d)
		}
	}
	if len(errors) > 0 {
		return diagnostics, &LintError{Diagnostics: errors}
	}
	return diagnostics, nil
}

func builtInRules() []LintRule {
	return []LintRule{
		strictDuplicateEdgeRule{},
		strictSelfLoopRule{},
		duplicateNodeRule{},
		unknownAttrRule{},
		emptyClusterRule{},
	}
}

// --- Helper functions ---

// scopeRef names a body for diagnostics: the root graph, or a subgraph or
// cluster path like "cluster_0" / "outer/inner".
type scopeRef struct {
	name string
	body *Body
}

// allScopes returns every body in the containment tree, root first.
func allScopes(g *Graph) []scopeRef {
	name := g.ID
	if name == "" {
		name = "graph"
	}
	scopes := []scopeRef{{name: name, body: &g.Body}}
	scopes = append(scopes, nestedScopes(name, &g.Body)...)
	return scopes
}

func nestedScopes(prefix string, b *Body) []scopeRef {
	var scopes []scopeRef
	add := func(id string, body *Body) {
		name := id
		if name == "" {
			name = "subgraph"
		}
		name = prefix + "/" + name
		scopes = append(scopes, scopeRef{name: name, body: body})
		scopes = append(scopes, nestedScopes(name, body)...)
	}
	for _, sub := range b.Subgraphs {
		add(sub.ID, &sub.Body)
	}
	for _, cl := range b.Clusters {
		add(cl.ID, &cl.Body)
	}
	return scopes
}

// --- Built-in rules ---

// strictDuplicateEdgeRule reports duplicate edges in a strict graph. For
// undirected graphs the endpoint pair is unordered.
type strictDuplicateEdgeRule struct{}

func (strictDuplicateEdgeRule) Name() string { return "strict_duplicate_edge" }

func (strictDuplicateEdgeRule) Apply(g *Graph) []Diagnostic {
	if !g.Strict {
		return nil
	}
	var diagnostics []Diagnostic
	for _, scope := range allScopes(g) {
		seen := make(map[EdgeRef]bool)
		for _, e := range scope.body.Edges {
			key := EdgeRef{Tail: e.Tail.ID, Head: e.Head.ID}
			if !e.Directed && key.Head < key.Tail {
				key.Tail, key.Head = key.Head, key.Tail
			}
			if seen[key] {
				diagnostics = append(diagnostics, Diagnostic{
					Rule:     "strict_duplicate_edge",
					Severity: Error,
					Message:  "duplicate edge in a strict graph",
					Scope:    scope.name,
					Edge:     &EdgeRef{Tail: e.Tail.ID, Head: e.Head.ID},
				})
			}
			seen[key] = true
		}
	}
	return diagnostics
}

// strictSelfLoopRule reports self-loops in a strict graph.
type strictSelfLoopRule struct{}

func (strictSelfLoopRule) Name() string { return "strict_self_loop" }

func (strictSelfLoopRule) Apply(g *Graph) []Diagnostic {
	if !g.Strict {
		return nil
	}
	var diagnostics []Diagnostic
	for _, scope := range allScopes(g) {
		for _, e := range scope.body.Edges {
			if e.Tail.ID == e.Head.ID {
				diagnostics = append(diagnostics, Diagnostic{
					Rule:     "strict_self_loop",
					Severity: Error,
					Message:  "self-loop in a strict graph",
					Scope:    scope.name,
					NodeID:   e.Tail.ID,
				})
			}
		}
	}
	return diagnostics
}

// duplicateNodeRule reports a node declared more than once in the same
// scope. Graphviz merges such declarations; consumers that rely on object
// identity should know about them.
type duplicateNodeRule struct{}

func (duplicateNodeRule) Name() string { return "duplicate_node" }

func (duplicateNodeRule) Apply(g *Graph) []Diagnostic {
	var diagnostics []Diagnostic
	for _, scope := range allScopes(g) {
		seen := make(map[string]bool)
		for _, n := range scope.body.Nodes {
			if seen[n.ID] {
				diagnostics = append(diagnostics, Diagnostic{
					Rule:     "duplicate_node",
					Severity: Info,
					Message:  "node declared more than once; attributes merge by identifier",
					Scope:    scope.name,
					NodeID:   n.ID,
				})
			}
			seen[n.ID] = true
		}
	}
	return diagnostics
}

// unknownAttrRule reports attribute names outside the recognized Graphviz
// vocabularies. The parser stores them regardless.
type unknownAttrRule struct{}

func (unknownAttrRule) Name() string { return "unknown_attr" }

func (unknownAttrRule) Apply(g *Graph) []Diagnostic {
	var diagnostics []Diagnostic
	note := func(scope, kind, owner, key string) {
		diagnostics = append(diagnostics, Diagnostic{
			Rule:     "unknown_attr",
			Severity: Info,
			Message:  fmt.Sprintf("unrecognized %s attribute %q on %s", kind, key, owner),
			Scope:    scope,
		})
	}
	for _, scope := range allScopes(g) {
		for key := range scope.body.Attrs {
			if !KnownGraphAttr(strings.ToLower(key)) {
				note(scope.name, "graph", scope.name, key)
			}
		}
		for _, n := range scope.body.Nodes {
			for key := range n.Attrs {
				if !KnownNodeAttr(strings.ToLower(key)) {
					note(scope.name, "node", n.ID, key)
				}
			}
		}
		for _, e := range scope.body.Edges {
			for key := range e.Attrs {
				if !KnownEdgeAttr(strings.ToLower(key)) {
					note(scope.name, "edge", e.Tail.ID+" -> "+e.Head.ID, key)
				}
			}
		}
	}
	return diagnostics
}

// emptyClusterRule reports clusters with no content at all.
type emptyClusterRule struct{}

func (emptyClusterRule) Name() string { return "empty_cluster" }

func (emptyClusterRule) Apply(g *Graph) []Diagnostic {
	var diagnostics []Diagnostic
	var walk func(prefix string, b *Body)
	walk = func(prefix string, b *Body) {
		for _, cl := range b.Clusters {
			if len(cl.Nodes) == 0 && len(cl.Edges) == 0 &&
				len(cl.Subgraphs) == 0 && len(cl.Clusters) == 0 {
				diagnostics = append(diagnostics, Diagnostic{
					Rule:     "empty_cluster",
					Severity: Info,
					Message:  fmt.Sprintf("cluster %q contains no nodes, edges or subgraphs", cl.ID),
					Scope:    prefix,
				})
			}
			walk(prefix+"/"+cl.ID, &cl.Body)
		}
		for _, sub := range b.Subgraphs {
			name := sub.ID
			if name == "" {
				name = "subgraph"
			}
			walk(prefix+"/"+name, &sub.Body)
		}
	}
	name := g.ID
	if name == "" {
		name = "graph"
	}
	walk(name, &g.Body)
	return diagnostics
}
