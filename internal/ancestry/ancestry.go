// Package ancestry reconstructs the secondary, non-structural edge set of a
// trace run: explicit version lineage, inferred version evolution, and
// variant siblinghood. These edges are kept disjoint from the dependency
// graph so consumers can trust or ignore inferred edges independently.
package ancestry

import (
	"sort"

	"gtv/internal/errors"
	"gtv/internal/graph"
	"gtv/internal/model"
	"gtv/internal/nodestore"
)

// Kind tags a secondary edge.
type Kind string

const (
	// VersionEvolution connects a trace to the trace it evolved into
	VersionEvolution Kind = "version_evolution"
	// VariantSibling connects alternative traces of the same design step
	VariantSibling Kind = "variant_sibling"
)

// Edge is one secondary edge between trace nodes of the dependency graph.
type Edge struct {
	From string
	To   string
	Kind Kind
	// Inferred marks edges reconstructed from version metadata rather than
	// recorded ancestor pointers.
	Inferred bool
}

// Result carries the secondary edges and the traces excluded from inference.
type Result struct {
	Edges    []Edge
	Warnings []errors.Warning
}

type pair struct{ a, b string }

func orderedPair(x, y string) pair {
	if x < y {
		return pair{y, x}
	}
	return pair{x, y}
}

// Infer produces the secondary edge set for the given run. The graph supplies
// layout levels for sibling grouping; it must already be level-assigned.
func Infer(store *nodestore.Store, g *graph.Graph) *Result {
	res := &Result{}

	// Explicit ancestor pointers come first and win over inference for the
	// pairs they cover.
	explicit := make(map[pair]bool)
	for _, tm := range store.TraceModels {
		if tm.Ancestor == nil {
			continue
		}
		from, to := graph.TraceID(tm.Ancestor.Index), graph.TraceID(tm.Index)
		res.Edges = append(res.Edges, Edge{From: from, To: to, Kind: VersionEvolution})
		explicit[orderedPair(from, to)] = true
	}

	eligible := inferenceCandidates(store, res)

	res.Edges = append(res.Edges, inferEvolution(eligible, explicit)...)
	res.Edges = append(res.Edges, inferSiblings(eligible, g, explicit)...)
	return res
}

// inferenceCandidates filters traces that carry the metadata inference needs.
// Excluded traces are reported, never guessed at.
func inferenceCandidates(store *nodestore.Store, res *Result) []*model.TraceModel {
	var eligible []*model.TraceModel
	for _, tm := range store.TraceModels {
		switch {
		case !tm.HasVersion:
			res.Warnings = append(res.Warnings, errors.Warnf(errors.AncestryAmbiguous,
				tm.Name, "no version tag; excluded from ancestry inference"))
		case tm.Transformation() == nil:
			res.Warnings = append(res.Warnings, errors.Warnf(errors.AncestryAmbiguous,
				tm.Name, "no owning execution; excluded from ancestry inference"))
		default:
			eligible = append(eligible, tm)
		}
	}
	return eligible
}

// inferEvolution chains traces of one transformation in version order:
// consecutive traces with differing versions are connected predecessor to
// successor, unless an explicit ancestor edge already covers the pair.
func inferEvolution(traces []*model.TraceModel, explicit map[pair]bool) []Edge {
	byTransformation := make(map[int][]*model.TraceModel)
	var keys []int
	for _, tm := range traces {
		k := tm.Transformation().Index
		if _, ok := byTransformation[k]; !ok {
			keys = append(keys, k)
		}
		byTransformation[k] = append(byTransformation[k], tm)
	}
	sort.Ints(keys)

	var edges []Edge
	for _, k := range keys {
		group := byTransformation[k]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Version != group[j].Version {
				return group[i].Version < group[j].Version
			}
			// Ties break on execution position, then name.
			if group[i].Owner.Index != group[j].Owner.Index {
				return group[i].Owner.Index < group[j].Owner.Index
			}
			return group[i].Name < group[j].Name
		})

		for i := 1; i < len(group); i++ {
			prev, cur := group[i-1], group[i]
			if prev.Version == cur.Version {
				continue
			}
			from, to := graph.TraceID(prev.Index), graph.TraceID(cur.Index)
			if explicit[orderedPair(from, to)] {
				continue
			}
			edges = append(edges, Edge{From: from, To: to, Kind: VersionEvolution, Inferred: true})
		}
	}
	return edges
}

// inferSiblings fully connects traces that sit at the same layout level with
// the same version but arise from alternative executions.
func inferSiblings(traces []*model.TraceModel, g *graph.Graph, explicit map[pair]bool) []Edge {
	type groupKey struct{ level, version int }
	groups := make(map[groupKey][]*model.TraceModel)
	var keys []groupKey
	for _, tm := range traces {
		node := g.Node(graph.TraceID(tm.Index))
		if node == nil {
			continue
		}
		k := groupKey{level: node.Level, version: tm.Version}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], tm)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].level != keys[j].level {
			return keys[i].level < keys[j].level
		}
		return keys[i].version < keys[j].version
	})

	var edges []Edge
	for _, k := range keys {
		group := groups[k]
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Index < group[j].Index })
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				from, to := graph.TraceID(group[i].Index), graph.TraceID(group[j].Index)
				if explicit[orderedPair(from, to)] {
					continue
				}
				edges = append(edges, Edge{From: from, To: to, Kind: VariantSibling, Inferred: true})
			}
		}
	}
	return edges
}
