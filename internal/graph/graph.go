// Package graph builds the directed dependency graph of one trace run.
// Nodes are models and trace models; edges always interpose the trace model
// between the models it connects (model -> trace -> model), because the trace
// is the record of why the transformation happened.
package graph

import "fmt"

// NodeKind discriminates graph nodes.
type NodeKind string

const (
	// KindModel is a model node
	KindModel NodeKind = "model"
	// KindTrace is a trace model node
	KindTrace NodeKind = "trace"
)

// Node is one vertex of the dependency graph.
type Node struct {
	ID   string
	Name string
	Kind NodeKind
	// Tag is the model's abstraction tag, or "trace" for trace nodes.
	Tag string
	// Level is the BFS layout level, assigned after construction.
	Level int

	// Trace-node annotations for the render layer.
	Version        string
	Transformation string
	RuleCount      int
}

// Edge is one directed dependency edge.
type Edge struct {
	From string
	To   string
}

// Graph is a directed graph with deterministic, insertion-ordered iteration.
type Graph struct {
	nodes map[string]*Node
	order []string
	succ  map[string][]string
	pred  map[string][]string
	edges []Edge
	seen  map[Edge]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		succ:  make(map[string][]string),
		pred:  make(map[string][]string),
		seen:  make(map[Edge]bool),
	}
}

// ModelID returns the graph id for the model at the given node index.
func ModelID(index int) string { return fmt.Sprintf("model.%d", index) }

// TraceID returns the graph id for the trace model at the given node index.
func TraceID(index int) string { return fmt.Sprintf("trace.%d", index) }

// AddNode registers a node. Re-adding an existing id is a no-op.
func (g *Graph) AddNode(n *Node) {
	if _, ok := g.nodes[n.ID]; ok {
		return
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
}

// AddEdge adds a directed edge, ignoring duplicates.
func (g *Graph) AddEdge(from, to string) {
	e := Edge{From: from, To: to}
	if g.seen[e] {
		return
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
	g.succ[from] = append(g.succ[from], to)
	g.pred[to] = append(g.pred[to], from)
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node { return g.nodes[id] }

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge { return g.edges }

// Successors returns the ids reachable one step from id.
func (g *Graph) Successors(id string) []string { return g.succ[id] }

// Predecessors returns the ids with an edge into id.
func (g *Graph) Predecessors(id string) []string { return g.pred[id] }

// Len returns the node count.
func (g *Graph) Len() int { return len(g.order) }
