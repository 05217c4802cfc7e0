package render

import (
	"gtv/internal/ancestry"
	"gtv/internal/graph"
)

// EdgeKind is the edge classification exposed to the render layer. The
// viewer maps dependency edges to solid strokes and ancestry edges to
// dotted ones.
type EdgeKind string

const (
	EdgeDependency      EdgeKind = "dependency"
	EdgeAncestryVersion EdgeKind = "ancestry-version"
	EdgeAncestrySibling EdgeKind = "ancestry-sibling"
)

// NodeView is the per-node projection consumed by the viewer.
type NodeView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	Tag            string `json:"tag"`
	Level          int    `json:"level"`
	Version        string `json:"version,omitempty"`
	Transformation string `json:"transformation,omitempty"`
	RuleCount      int    `json:"numRules"`
}

// EdgeView is the per-edge projection consumed by the viewer.
type EdgeView struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
}

// Document is the complete annotated graph handed to the render layer.
type Document struct {
	Source string     `json:"source"`
	Nodes  []NodeView `json:"nodes"`
	Edges  []EdgeView `json:"edges"`
}

// BuildDocument projects the dependency graph and the secondary ancestry
// edges into the render contract. Node and edge order follow graph insertion
// order, so identical inputs produce identical documents.
func BuildDocument(g *graph.Graph, anc []ancestry.Edge, source string) *Document {
	doc := &Document{Source: source}

	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeView{
			ID:             n.ID,
			Name:           n.Name,
			Kind:           string(n.Kind),
			Tag:            n.Tag,
			Level:          n.Level,
			Version:        n.Version,
			Transformation: n.Transformation,
			RuleCount:      n.RuleCount,
		})
	}

	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeView{Source: e.From, Target: e.To, Kind: EdgeDependency})
	}
	for _, e := range anc {
		kind := EdgeAncestryVersion
		if e.Kind == ancestry.VariantSibling {
			kind = EdgeAncestrySibling
		}
		doc.Edges = append(doc.Edges, EdgeView{Source: e.From, Target: e.To, Kind: kind})
	}

	return doc
}

// MaxLevel returns the highest layout level in the document.
func (d *Document) MaxLevel() int {
	max := 0
	for _, n := range d.Nodes {
		if n.Level > max {
			max = n.Level
		}
	}
	return max
}

// split partitions edges into dependency and ancestry sets for the template.
func (d *Document) split() (deps, anc []EdgeView) {
	for _, e := range d.Edges {
		if e.Kind == EdgeDependency {
			deps = append(deps, e)
		} else {
			anc = append(anc, e)
		}
	}
	return deps, anc
}
