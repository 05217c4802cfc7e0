package graph

// AssignLevels gives every node a non-negative layout level: nodes with no
// incoming edge sit at level 0, every other node at 1 + the maximum level of
// its predecessors. Propagation is a multi-source BFS that re-visits a node
// whenever a newly processed predecessor implies a higher level, so a node
// with predecessors at different depths always settles at the maximum.
// Terminates because the graph is acyclic. Levels are layout advice only.
func (g *Graph) AssignLevels() {
	levels := make(map[string]int, len(g.order))

	var queue []string
	for _, id := range g.order {
		if len(g.pred[id]) == 0 {
			levels[id] = 0
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		next := levels[id] + 1
		for _, succ := range g.succ[id] {
			if cur, ok := levels[succ]; !ok || next > cur {
				levels[succ] = next
				queue = append(queue, succ)
			}
		}
	}

	for id, level := range levels {
		g.nodes[id].Level = level
	}
}
