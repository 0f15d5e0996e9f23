package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcrabtree/godot/dot"
	"github.com/jcrabtree/godot/graphindex"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.dot>",
	Short: "Parse a DOT file and report diagnostics",
	Long:  "Parse a Graphviz DOT file, print a structural summary and run the built-in lint rules.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("strict-lint", false, "Exit non-zero on error-severity diagnostics")
	checkCmd.Flags().Bool("cycles", false, "Report cycles in the edge structure")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	path := args[0]
	strictLint, _ := cmd.Flags().GetBool("strict-lint")
	reportCycles, _ := cmd.Flags().GetBool("cycles")

	logger.Debug("parsing dot file", "path", path)
	g, err := dot.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	printSummary(g)

	diags, err := dot.LintOrError(g)
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d)
	}
	if err != nil && strictLint {
		return err
	}
	if err != nil {
		logger.Info("lint found errors", "count", len(diags))
	}

	if reportCycles {
		ix := graphindex.Build(g)
		cycles := ix.Cycles()
		if len(cycles) == 0 {
			fmt.Println("no cycles")
		}
		for _, cycle := range cycles {
			fmt.Printf("cycle: %s\n", strings.Join(cycle, " -> "))
		}
	}

	return nil
}

func printSummary(g *dot.Graph) {
	kind := "graph"
	if g.Directed {
		kind = "digraph"
	}
	if g.Strict {
		kind = "strict " + kind
	}
	name := g.ID
	if name == "" {
		name = "(anonymous)"
	}
	fmt.Printf("%s %s: %d nodes, %d edges, %d subgraphs, %d clusters, %d attrs\n",
		kind, name, countNodes(&g.Body), countEdges(&g.Body),
		len(g.Subgraphs), len(g.Clusters), len(g.Attrs))
}

func countNodes(b *dot.Body) int {
	n := len(b.Nodes)
	for _, sub := range b.Subgraphs {
		n += countNodes(&sub.Body)
	}
	for _, cl := range b.Clusters {
		n += countNodes(&cl.Body)
	}
	return n
}

func countEdges(b *dot.Body) int {
	n := len(b.Edges)
	for _, sub := range b.Subgraphs {
		n += countEdges(&sub.Body)
	}
	for _, cl := range b.Clusters {
		n += countEdges(&cl.Body)
	}
	return n
}
