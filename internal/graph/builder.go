package graph

import (
	"strconv"

	"gtv/internal/nodestore"
)

// Build constructs the dependency graph from the resolved store: for each
// execution of each transformation, every input model points at the generated
// trace, and the trace points at the output model. The returned graph is
// cycle-checked and level-assigned.
func Build(store *nodestore.Store) (*Graph, error) {
	g := New()

	for _, m := range store.Models {
		g.AddNode(&Node{
			ID:   ModelID(m.Index),
			Name: m.Name,
			Kind: KindModel,
			Tag:  string(m.Tag),
		})
	}
	for _, tm := range store.TraceModels {
		n := &Node{
			ID:        TraceID(tm.Index),
			Name:      tm.Name,
			Kind:      KindTrace,
			Tag:       "trace",
			RuleCount: len(tm.Rules),
		}
		if tm.HasVersion {
			n.Version = strconv.Itoa(tm.Version)
		}
		if t := tm.Transformation(); t != nil {
			n.Transformation = t.Name
		}
		g.AddNode(n)
	}

	for _, t := range store.Transformations {
		for _, e := range t.Execs {
			if e.Generates == nil {
				continue
			}
			trace := TraceID(e.Generates.Index)
			for _, in := range t.Inputs {
				g.AddEdge(ModelID(in.Index), trace)
			}
			if t.Output != nil {
				g.AddEdge(trace, ModelID(t.Output.Index))
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		return nil, err
	}
	g.AssignLevels()
	return g, nil
}
