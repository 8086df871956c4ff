package graph

import "testing"

func TestUndirectedTriangle(t *testing.T) {
	g := New(3, false)
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 0, 1)

	circuit, err := g.EulerianCircuit()
	if err != nil || len(circuit) != 4 || circuit[0] != circuit[len(circuit)-1] {
		t.Fatalf("euler circuit = %v, err = %v; want length-4 closed circuit", circuit, err)
	}

	mst, err := g.MinimumSpanningTree(0)
	if err != nil {
		t.Fatalf("mst error: %v", err)
	}
	if len(mst) != 2 {
		t.Fatalf("mst edges = %d, want 2", len(mst))
	}
	var total float64
	for _, a := range mst {
		total += a.Weight
	}
	if total != 2 {
		t.Fatalf("mst weight = %v, want 2", total)
	}

	comps := g.Components()
	if len(comps) != 1 || len(comps[0]) != 3 {
		t.Fatalf("components = %v, want one component of 3", comps)
	}

	cycle, err := g.HamiltonianCycle(0)
	if err != nil || len(cycle) != 4 {
		t.Fatalf("hamiltonian cycle = %v, err = %v; want length 4", cycle, err)
	}

	if flow := g.MaxFlow(0, 2); flow != 2 {
		t.Fatalf("max flow = %v, want 2", flow)
	}
}

func TestDirectedFigureEight(t *testing.T) {
	g := New(5, true)
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 0, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(3, 4, 1)

	if g.IsEulerian() {
		t.Fatalf("expected directed figure-eight to not be Eulerian")
	}

	arcs, err := g.MinimumSpanningTree(0)
	if err != nil {
		t.Fatalf("arborescence error: %v", err)
	}
	if len(arcs) != 4 {
		t.Fatalf("arborescence arcs = %d, want 4", len(arcs))
	}

	comps := g.Components()
	if len(comps) != 3 {
		t.Fatalf("scc partition = %v, want 3 parts", comps)
	}

	if flow := g.MaxFlow(0, 4); flow != 1 {
		t.Fatalf("max flow = %v, want 1", flow)
	}
}

func TestClassicMaxFlowNetwork(t *testing.T) {
	g := New(5, true)
	g.AddEdge(0, 1, 10)
	g.AddEdge(0, 2, 5)
	g.AddEdge(1, 2, 15)
	g.AddEdge(1, 3, 10)
	g.AddEdge(2, 4, 10)
	g.AddEdge(3, 4, 10)

	if flow := g.MaxFlow(0, 4); flow != 15 {
		t.Fatalf("max flow = %v, want 15", flow)
	}
}

func TestPathOfFiveVertices(t *testing.T) {
	g := New(5, false)
	for i := 0; i < 4; i++ {
		g.AddEdge(i, i+1, 1)
	}

	if _, err := g.EulerianCircuit(); err == nil {
		t.Fatalf("expected path graph to have no Eulerian circuit")
	}

	mst, err := g.MinimumSpanningTree(0)
	if err != nil {
		t.Fatalf("mst error: %v", err)
	}
	if len(mst) != 4 {
		t.Fatalf("mst edges = %d, want 4", len(mst))
	}

	if _, err := g.HamiltonianCycle(0); err == nil {
		t.Fatalf("expected path graph to have no Hamiltonian cycle")
	}

	if comps := g.Components(); len(comps) != 1 {
		t.Fatalf("components = %v, want 1", comps)
	}
}

func TestK5CompleteGraph(t *testing.T) {
	g := New(5, false)
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			g.AddEdge(i, j, 1)
		}
	}

	if _, err := g.EulerianCircuit(); err != nil {
		t.Fatalf("expected K5 to be Eulerian, got error %v", err)
	}

	cycle, err := g.HamiltonianCycle(0)
	if err != nil || len(cycle) != 6 {
		t.Fatalf("hamiltonian cycle = %v, err = %v; want length 6", cycle, err)
	}

	mst, err := g.MinimumSpanningTree(0)
	if err != nil {
		t.Fatalf("mst error: %v", err)
	}
	if len(mst) != 4 {
		t.Fatalf("mst edges = %d, want 4", len(mst))
	}
	var total float64
	for _, a := range mst {
		total += a.Weight
	}
	if total != 4 {
		t.Fatalf("mst weight = %v, want 4", total)
	}
}

func TestDisconnectedTwoTriangles(t *testing.T) {
	g := New(6, false)
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 0, 1)
	g.AddEdge(3, 4, 1)
	g.AddEdge(4, 5, 1)
	g.AddEdge(5, 3, 1)

	if _, err := g.EulerianCircuit(); err == nil {
		t.Fatalf("expected disconnected graph to have no Eulerian circuit")
	}

	comps := g.Components()
	if len(comps) != 2 {
		t.Fatalf("components = %v, want 2", comps)
	}

	mst, err := g.MinimumSpanningTree(0)
	if err != nil {
		t.Fatalf("mst error: %v", err)
	}
	if len(mst) != 2 {
		t.Fatalf("mst from component A = %d edges, want 2", len(mst))
	}
}

func TestBoundaryEmptyAndSingleVertex(t *testing.T) {
	empty := New(0, false)
	if comps := empty.Components(); len(comps) != 0 {
		t.Fatalf("empty graph components = %v, want none", comps)
	}

	singleNoEdges := New(1, false)
	if flow := singleNoEdges.MaxFlow(0, 0); flow != 0 {
		t.Fatalf("max flow on single vertex = %v, want 0", flow)
	}
	if _, err := singleNoEdges.HamiltonianCycle(0); err == nil {
		t.Fatalf("expected no Hamiltonian cycle on a single vertex with no self-loop")
	}
}

func TestDisconnectedMaxFlowIsZero(t *testing.T) {
	g := New(4, true)
	g.AddEdge(0, 1, 5)
	g.AddEdge(2, 3, 5)
	if flow := g.MaxFlow(0, 3); flow != 0 {
		t.Fatalf("max flow across disconnected components = %v, want 0", flow)
	}
}

func TestUnknownSourceOrSinkYieldsZeroFlow(t *testing.T) {
	g := New(2, true)
	g.AddEdge(0, 1, 5)
	if flow := g.MaxFlow(99, 1); flow != 0 {
		t.Fatalf("max flow with unknown source = %v, want 0", flow)
	}
}
