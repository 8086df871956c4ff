package graph

import (
	"container/heap"
	"math"
)

// Arc is a materialized edge in an algorithm's output: MST/arborescence
// results, residual-graph arcs, and similar.
type Arc struct {
	From, To Vertex
	Weight   float64
}

// MinimumSpanningTree computes the minimum spanning tree (undirected) or
// minimum arborescence rooted at root (directed) per §4.5.2. A directed
// graph with some non-root vertex unreachable from root yields a nil slice
// and ErrNoArborescence.
func (g *Graph) MinimumSpanningTree(root Vertex) ([]Arc, error) {
	if g.directed {
		return g.arborescence(root)
	}
	return g.primMST(root), nil
}

type pqItem struct {
	from, to Vertex
	weight   float64
}

type primQueue []pqItem

func (q primQueue) Len() int            { return len(q) }
func (q primQueue) Less(i, j int) bool   { return q[i].weight < q[j].weight }
func (q primQueue) Swap(i, j int)        { q[i], q[j] = q[j], q[i] }
func (q *primQueue) Push(x interface{})  { *q = append(*q, x.(pqItem)) }
func (q *primQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// primMST grows a tree from source by repeatedly adding the minimum-weight
// crossing edge, covering exactly the connected component containing
// source.
func (g *Graph) primMST(source Vertex) []Arc {
	pq := &primQueue{{from: source, to: source, weight: 0}}
	inTree := map[Vertex]struct{}{}
	var result []Arc

	for pq.Len() > 0 {
		top := heap.Pop(pq).(pqItem)
		v := top.to
		if _, ok := inTree[v]; ok {
			continue
		}
		if top.to != top.from {
			result = append(result, Arc{From: top.from, To: top.to, Weight: top.weight})
		}
		inTree[v] = struct{}{}
		for _, n := range g.Neighbors(v) {
			if _, ok := inTree[n.To]; !ok {
				heap.Push(pq, pqItem{from: v, to: n.To, weight: n.Weight})
			}
		}
	}
	return result
}

// arbEdge is one candidate arc during Chu-Liu/Edmonds contraction. u/v are
// the current round's (possibly contracted) vertex ids; orig is the real
// arc this edge descends from, carried unchanged through every contraction
// so the final answer can always be expressed in terms of real vertices;
// dst is the destination id one contraction round up (the id space of
// whichever round built this edge), recording exactly which vertex of that
// round is entered whenever this edge is the one a deeper round selects.
type arbEdge struct {
	u, v, dst int
	w         float64
	orig      Arc
}

// arborescence implements Chu-Liu/Edmonds: find the cheapest incoming arc
// per non-root vertex; if that forms no cycle, it is the answer. Otherwise
// contract each cycle to a super-vertex, re-weight its incoming arcs, and
// recurse on the smaller graph, then expand every contracted cycle back
// into real arcs by keeping each member's own cheapest-incoming arc except
// the one member the recursive solution actually enters from outside.
func (g *Graph) arborescence(root Vertex) ([]Arc, error) {
	nodes := g.Vertices()
	id := make(map[Vertex]int, len(nodes))
	for i, v := range nodes {
		id[v] = i
	}
	rootID, ok := id[root]
	if !ok {
		return nil, ErrNoArborescence
	}

	var edges []arbEdge
	for _, u := range nodes {
		iu := id[u]
		for _, n := range g.Neighbors(u) {
			iv := id[n.To]
			if iu != iv {
				edges = append(edges, arbEdge{
					u: iu, v: iv, dst: iv, w: n.Weight,
					orig: Arc{From: u, To: n.To, Weight: n.Weight},
				})
			}
		}
	}

	n := len(nodes)
	if n == 0 {
		return nil, ErrNoArborescence
	}

	chosen, err := edmonds(edges, n, rootID)
	if err != nil {
		return nil, err
	}

	result := make([]Arc, 0, n-1)
	for v := 0; v < n; v++ {
		if v == rootID {
			continue
		}
		e, ok := chosen[v]
		if !ok {
			return nil, ErrNoArborescence
		}
		result = append(result, e.orig)
	}
	return result, nil
}

// edmonds runs one level of Chu-Liu/Edmonds over edges addressed by local
// ids 0..n-1, contracting and recursing whenever the cheapest-incoming
// choice per vertex forms one or more cycles. It returns, for every
// non-root local id, the arbEdge whose orig field is that id's final
// chosen arc.
func edmonds(edges []arbEdge, n, root int) (map[int]arbEdge, error) {
	in := make([]float64, n)
	pre := make([]int, n)
	inEdge := make([]arbEdge, n)
	for i := range in {
		in[i] = math.Inf(1)
		pre[i] = -1
	}
	for _, e := range edges {
		if e.u != e.v && e.w < in[e.v] {
			in[e.v] = e.w
			pre[e.v] = e.u
			inEdge[e.v] = e
		}
	}
	in[root] = 0

	for i := 0; i < n; i++ {
		if i != root && math.IsInf(in[i], 1) {
			return nil, ErrNoArborescence
		}
	}

	idc := make([]int, n)
	vis := make([]int, n)
	for i := range idc {
		idc[i] = -1
		vis[i] = -1
	}
	cnt := 0
	groups := make(map[int][]int)
	for i := 0; i < n; i++ {
		v := i
		for vis[v] != i && idc[v] == -1 && v != root {
			vis[v] = i
			v = pre[v]
		}
		if v != root && idc[v] == -1 {
			cycle := []int{v}
			for u := pre[v]; u != v; u = pre[u] {
				idc[u] = cnt
				cycle = append(cycle, u)
			}
			idc[v] = cnt
			groups[cnt] = cycle
			cnt++
		}
	}

	if cnt == 0 {
		chosen := make(map[int]arbEdge, n-1)
		for v := 0; v < n; v++ {
			if v != root {
				chosen[v] = inEdge[v]
			}
		}
		return chosen, nil
	}

	for i := 0; i < n; i++ {
		if idc[i] == -1 {
			groups[cnt] = []int{i}
			idc[i] = cnt
			cnt++
		}
	}

	newEdges := make([]arbEdge, 0, len(edges))
	for _, e := range edges {
		u, v := idc[e.u], idc[e.v]
		if u == v {
			continue
		}
		newEdges = append(newEdges, arbEdge{u: u, v: v, dst: e.v, w: e.w - in[e.v], orig: e.orig})
	}

	sub, err := edmonds(newEdges, cnt, idc[root])
	if err != nil {
		return nil, err
	}

	// Expand: every contracted group keeps all of its members' own
	// cheapest-incoming arcs, except the one member the sub-solution
	// actually enters from outside the group, which gets that external
	// arc instead.
	chosen := make(map[int]arbEdge, n-1)
	for g, members := range groups {
		sel, ok := sub[g]
		if !ok {
			continue // g is root's own singleton group
		}
		if len(members) == 1 {
			chosen[members[0]] = sel
			continue
		}
		entered := sel.dst
		chosen[entered] = sel
		for _, m := range members {
			if m != entered {
				chosen[m] = inEdge[m]
			}
		}
	}
	return chosen, nil
}
