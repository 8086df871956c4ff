package graph

// HamiltonianCycle searches, by backtracking from start, for a cycle that
// visits every vertex exactly once and closes back to start, per §4.5.5.
// Returns the cycle (length n+1, first element equal to last) or nil with
// ErrNoHamiltonianCycle if none exists. The search stays recursive — it is
// bounded by the declared vertex count, unlike the SCC/Euler traversals
// which must tolerate arbitrarily large graphs.
func (g *Graph) HamiltonianCycle(start Vertex) ([]Vertex, error) {
	path := make([]Vertex, 0, g.n+1)
	path = append(path, start)
	visited := map[Vertex]struct{}{start: {}}
	if g.hamiltonStep(start, start, &path, visited) {
		return path, nil
	}
	return nil, ErrNoHamiltonianCycle
}

func (g *Graph) hamiltonStep(v, start Vertex, path *[]Vertex, visited map[Vertex]struct{}) bool {
	if len(*path) == g.n {
		if g.HasEdge(v, start) {
			*path = append(*path, start)
			return true
		}
		return false
	}
	for _, n := range g.Neighbors(v) {
		if _, ok := visited[n.To]; ok {
			continue
		}
		visited[n.To] = struct{}{}
		*path = append(*path, n.To)
		if g.hamiltonStep(n.To, start, path, visited) {
			return true
		}
		*path = (*path)[:len(*path)-1]
		delete(visited, n.To)
	}
	return false
}
