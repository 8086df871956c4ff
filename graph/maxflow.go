package graph

import "math"

type residualArc struct {
	to       Vertex
	capacity float64
	flow     float64
}

func (a *residualArc) residual() float64 { return a.capacity - a.flow }

// MaxFlow computes the maximum flow from source to sink via Edmonds-Karp,
// per §4.5.4. A source or sink absent from the graph, or a sink
// unreachable from source, yields 0 with no error — max-flow has no
// AlgorithmInapplicable outcome, only a zero answer.
func (g *Graph) MaxFlow(source, sink Vertex) float64 {
	residual := g.buildResidual()
	if _, ok := residual[source]; !ok {
		return 0
	}

	var total float64
	for {
		parent, found := bfsAugmentingPath(residual, source, sink)
		if !found {
			break
		}
		bottleneck := math.Inf(1)
		for v := sink; v != source; {
			u := parent[v]
			for _, a := range residual[u] {
				if a.to == v {
					if a.residual() < bottleneck {
						bottleneck = a.residual()
					}
					break
				}
			}
			v = u
		}
		for v := sink; v != source; {
			u := parent[v]
			for i := range residual[u] {
				if residual[u][i].to == v {
					residual[u][i].flow += bottleneck
					break
				}
			}
			for i := range residual[v] {
				if residual[v][i].to == u {
					residual[v][i].flow -= bottleneck
					break
				}
			}
			v = u
		}
		total += bottleneck
	}
	return total
}

// buildResidual converts g into a residual graph: every forward arc u->v
// with capacity c becomes a forward residual arc (cap=c, flow=0); a reverse
// arc v->u with cap=0 is added unless the input graph already has an arc
// v->u (in which case that arc's own forward residual entry plays the
// reverse role).
func (g *Graph) buildResidual() map[Vertex][]residualArc {
	rs := make(map[Vertex][]residualArc)
	for _, u := range g.Vertices() {
		for _, n := range g.Neighbors(u) {
			rs[u] = append(rs[u], residualArc{to: n.To, capacity: n.Weight})
		}
	}
	for _, u := range g.Vertices() {
		for _, n := range g.Neighbors(u) {
			v := n.To
			hasReverse := false
			for _, a := range rs[v] {
				if a.to == u {
					hasReverse = true
					break
				}
			}
			if !hasReverse {
				rs[v] = append(rs[v], residualArc{to: u, capacity: 0})
			}
		}
	}
	return rs
}

// bfsAugmentingPath finds a shortest path (by arc count) from source to
// sink over arcs with positive residual capacity, recording a parent map.
func bfsAugmentingPath(rs map[Vertex][]residualArc, source, sink Vertex) (map[Vertex]Vertex, bool) {
	visited := map[Vertex]struct{}{source: {}}
	parent := map[Vertex]Vertex{}
	queue := []Vertex{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, a := range rs[u] {
			if a.residual() <= 0 {
				continue
			}
			if _, ok := visited[a.to]; ok {
				continue
			}
			parent[a.to] = u
			if a.to == sink {
				return parent, true
			}
			visited[a.to] = struct{}{}
			queue = append(queue, a.to)
		}
	}
	return nil, false
}
