package graph

// IsEulerian reports whether g has an Eulerian circuit under §4.5.1's
// preconditions: for undirected graphs, every vertex has even degree and the
// non-isolated vertices are connected; for directed graphs, every vertex has
// equal in- and out-degree and the non-isolated vertices are weakly
// connected.
func (g *Graph) IsEulerian() bool {
	if g.directed {
		return g.isEulerianDirected()
	}
	return g.allEvenDegree() && g.isConnectedUndirected()
}

func (g *Graph) isEulerianDirected() bool {
	if !g.weaklyConnectedNonZero() {
		return false
	}
	for v := range g.adj {
		in, out := g.InDegree(v), g.OutDegree(v)
		if in+out > 0 && in != out {
			return false
		}
	}
	return true
}

// EulerianCircuit computes an Eulerian circuit via Hierholzer's algorithm,
// returning the vertex sequence (first element equal to last) or an empty
// slice with ErrNotEulerian if none exists.
func (g *Graph) EulerianCircuit() ([]Vertex, error) {
	if !g.IsEulerian() {
		return nil, ErrNotEulerian
	}
	if g.directed {
		return g.eulerDirected(), nil
	}
	return g.eulerUndirected(), nil
}

// eulerUndirected runs Hierholzer over a local multiset copy of the
// adjacency lists so that arc removal during traversal never mutates g
// itself and never invalidates an iterator over g's own maps.
func (g *Graph) eulerUndirected() []Vertex {
	remaining := make(map[Vertex][]Vertex, len(g.adj))
	for u, nbrs := range g.adj {
		for v := range nbrs {
			remaining[u] = append(remaining[u], v)
		}
	}

	var start Vertex
	haveStart := false
	for v := range g.adj {
		start = v
		haveStart = true
		if len(g.adj[v]) > 0 {
			break
		}
	}
	if !haveStart {
		return nil
	}

	eraseOne := func(a, b Vertex) {
		list := remaining[a]
		for i, v := range list {
			if v == b {
				remaining[a] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}
	eraseUndirected := func(a, b Vertex) {
		eraseOne(a, b)
		eraseOne(b, a)
	}

	stack := []Vertex{start}
	var circuit []Vertex
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		if len(remaining[u]) > 0 {
			v := remaining[u][0]
			eraseUndirected(u, v)
			stack = append(stack, v)
		} else {
			circuit = append(circuit, u)
			stack = stack[:len(stack)-1]
		}
	}
	reverse(circuit)
	return circuit
}

// eulerDirected runs Hierholzer over an index into each vertex's adjacency
// list, consuming one outgoing arc per visit rather than mutating g.
func (g *Graph) eulerDirected() []Vertex {
	adj := make(map[Vertex][]Vertex, len(g.adj))
	for u := range g.adj {
		adj[u] = g.sortedNeighborVertices(u)
	}

	var start Vertex
	haveStart := false
	for v := range g.adj {
		start = v
		haveStart = true
		if len(g.adj[v]) > 0 {
			break
		}
	}
	if !haveStart {
		return nil
	}

	idx := make(map[Vertex]int)
	stack := []Vertex{start}
	var circuit []Vertex
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		vec := adj[u]
		i := idx[u]
		if i < len(vec) {
			idx[u] = i + 1
			stack = append(stack, vec[i])
		} else {
			circuit = append(circuit, u)
			stack = stack[:len(stack)-1]
		}
	}
	reverse(circuit)
	return circuit
}

func (g *Graph) sortedNeighborVertices(u Vertex) []Vertex {
	nbrs := g.Neighbors(u)
	out := make([]Vertex, len(nbrs))
	for i, n := range nbrs {
		out[i] = n.To
	}
	return out
}

func reverse(vs []Vertex) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}
