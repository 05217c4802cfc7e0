package graph

import (
	"gtv/internal/errors"
)

// DetectCycles checks the graph for cycles via depth-first traversal with a
// recursion-stack set. A cycle is a malformed trace and is reported with its
// full node sequence, never silently resolved.
func (g *Graph) DetectCycles() error {
	const (
		white = 0 // unvisited
		grey  = 1 // on the current recursion stack
		black = 2 // fully explored
	)
	color := make(map[string]int, len(g.order))

	var stack []string
	var visit func(id string) error
	visit = func(id string) error {
		color[id] = grey
		stack = append(stack, id)
		for _, next := range g.succ[id] {
			switch color[next] {
			case white:
				if err := visit(next); err != nil {
					return err
				}
			case grey:
				return errors.New(errors.CycleDetected,
					"transformation dependency graph is not acyclic").
					WithDetails(errors.FormatCyclePath(cyclePath(stack, next)))
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return nil
	}

	for _, id := range g.order {
		if color[id] == white {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// cyclePath trims the recursion stack to the cycle proper and closes it by
// repeating the entry node.
func cyclePath(stack []string, entry string) []string {
	start := 0
	for i, id := range stack {
		if id == entry {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	path = append(path, stack[start:]...)
	path = append(path, entry)
	return path
}
