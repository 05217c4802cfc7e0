package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"gtv/internal/engine"
	"gtv/internal/render"
)

var graphFormat string // --format: json or human

var graphCmd = &cobra.Command{
	Use:   "graph <input>",
	Short: "Print the layered trace graph without rendering HTML",
	Long: `Runs the pipeline on one node-list file and prints the resulting
graph: nodes grouped by layout level, then dependency and ancestry edges.

With --format json the full render document is emitted instead, suitable
for piping into other tooling.`,
	Args: cobra.ExactArgs(1),
	Run:  runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphFormat, "format", "human", "Output format: human or json")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	report, err := engine.New(logger).Run(args[0])
	if err != nil {
		fatal(err)
	}

	switch graphFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report.Document); err != nil {
			fatal(err)
		}
	case "human":
		printDocument(os.Stdout, report.Document)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want human or json)\n", graphFormat)
		os.Exit(1)
	}
}

func printDocument(w io.Writer, doc *render.Document) {
	fmt.Fprintf(w, "Source: %s\n\n", doc.Source)

	byLevel := map[int][]render.NodeView{}
	for _, n := range doc.Nodes {
		byLevel[n.Level] = append(byLevel[n.Level], n)
	}
	levels := make([]int, 0, len(byLevel))
	for l := range byLevel {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	for _, l := range levels {
		fmt.Fprintf(w, "L%d:\n", l)
		for _, n := range byLevel[l] {
			switch n.Kind {
			case "trace":
				fmt.Fprintf(w, "  %-12s %s", n.ID, n.Name)
				if n.Version != "" {
					fmt.Fprintf(w, " v%s", n.Version)
				}
				if n.Transformation != "" {
					fmt.Fprintf(w, " (%s, %d rules)", n.Transformation, n.RuleCount)
				}
				fmt.Fprintln(w)
			default:
				fmt.Fprintf(w, "  %-12s %s [%s]\n", n.ID, n.Name, n.Tag)
			}
		}
	}

	fmt.Fprintln(w)
	for _, e := range doc.Edges {
		arrow := "->"
		if e.Kind != render.EdgeDependency {
			arrow = "~>"
		}
		fmt.Fprintf(w, "  %s %s %s", e.Source, arrow, e.Target)
		if e.Kind != render.EdgeDependency {
			fmt.Fprintf(w, " (%s)", e.Kind)
		}
		fmt.Fprintln(w)
	}
}
