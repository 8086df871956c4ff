package graph

import (
	"testing"

	gc "gopkg.in/check.v1"
)

func Test(t *testing.T) { gc.TestingT(t) }

// InvariantsSuite exercises §8's quantified invariants against Graph.
type InvariantsSuite struct{}

var _ = gc.Suite(new(InvariantsSuite))

func (s *InvariantsSuite) TestAddThenRemoveEdgeIsNoOp(c *gc.C) {
	g := New(3, false)
	g.AddEdge(0, 1, 2.0)
	g.AddEdge(0, 1, 2.0) // re-add is itself a no-op
	g.RemoveEdge(0, 1)
	before := g.String()
	g.AddEdge(0, 1, 2.0)
	g.RemoveEdge(0, 1)
	after := g.String()
	c.Assert(g.HasEdge(0, 1), gc.Equals, false)
	c.Assert(g.HasEdge(1, 0), gc.Equals, false)
	c.Assert(after, gc.Equals, before)
}

func (s *InvariantsSuite) TestUndirectedMirrorInvariant(c *gc.C) {
	g := New(2, false)
	g.AddEdge(0, 1, 5)
	w1, ok1 := g.Weight(0, 1)
	w2, ok2 := g.Weight(1, 0)
	c.Assert(ok1, gc.Equals, true)
	c.Assert(ok2, gc.Equals, true)
	c.Assert(w1, gc.Equals, w2)
}

func (s *InvariantsSuite) TestCloneIsIndependent(c *gc.C) {
	g := New(2, false)
	g.AddEdge(0, 1, 1)
	clone := g.Clone()
	clone.AddEdge(1, 0, 99) // already present, no-op; mutate differently below
	clone.AddEdge(0, 0, 7)
	c.Assert(g.HasEdge(0, 0), gc.Equals, false)
	c.Assert(clone.HasEdge(0, 0), gc.Equals, true)
}

func (s *InvariantsSuite) TestFirstVertexStable(c *gc.C) {
	g := New(3, true)
	g.AddEdge(2, 0, 1)
	g.AddEdge(0, 1, 1)
	first, ok := g.FirstVertex()
	c.Assert(ok, gc.Equals, true)
	c.Assert(first, gc.Equals, 2)
}

func (s *InvariantsSuite) TestSelfLoopCountsAsOneNeighbor(c *gc.C) {
	g := New(1, true)
	g.AddEdge(0, 0, 1)
	c.Assert(g.Degree(0), gc.Equals, 1)
}

func (s *InvariantsSuite) TestMaxFlowEqualsMinCutOnClassicNetwork(c *gc.C) {
	g := New(5, true)
	g.AddEdge(0, 1, 10)
	g.AddEdge(0, 2, 5)
	g.AddEdge(1, 2, 15)
	g.AddEdge(1, 3, 10)
	g.AddEdge(2, 4, 10)
	g.AddEdge(3, 4, 10)
	c.Assert(g.MaxFlow(0, 4), gc.Equals, 15.0)
}

func (s *InvariantsSuite) TestResidualZeroFlowMatchesInputCapacities(c *gc.C) {
	g := New(2, true)
	g.AddEdge(0, 1, 7)
	rs := g.buildResidual()
	for _, a := range rs[0] {
		if a.to == 1 {
			c.Assert(a.capacity, gc.Equals, 7.0)
			c.Assert(a.flow, gc.Equals, 0.0)
		}
	}
}

func (s *InvariantsSuite) TestTransposeTwiceIsAdjacencyEqual(c *gc.C) {
	g := New(3, true)
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 2)
	twice := g.transpose().transpose()
	for _, v := range g.Vertices() {
		c.Assert(twice.Neighbors(v), gc.DeepEquals, g.Neighbors(v))
	}
}

func (s *InvariantsSuite) TestArborescenceContractsACycleAmongMinimumIncomingArcs(c *gc.C) {
	// 1 and 2's cheapest incoming arcs point at each other (1<-2, 2<-1),
	// forcing exactly one Chu-Liu/Edmonds contraction pass before the
	// root-reachable arc 0->1 can be selected to break it.
	g := New(4, true)
	g.AddEdge(0, 1, 10)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 1, 1)
	g.AddEdge(1, 3, 3)
	g.AddEdge(2, 3, 1)

	arcs, err := g.MinimumSpanningTree(0)
	c.Assert(err, gc.IsNil)
	c.Assert(len(arcs), gc.Equals, 3)

	var total float64
	byTo := map[Vertex]Arc{}
	for _, a := range arcs {
		total += a.Weight
		byTo[a.To] = a
	}
	c.Assert(total, gc.Equals, 12.0)
	c.Assert(byTo[1], gc.DeepEquals, Arc{From: 0, To: 1, Weight: 10})
	c.Assert(byTo[2], gc.DeepEquals, Arc{From: 1, To: 2, Weight: 1})
	c.Assert(byTo[3], gc.DeepEquals, Arc{From: 2, To: 3, Weight: 1})
}

func (s *InvariantsSuite) TestHamiltonianCycleShapeWhenPresent(c *gc.C) {
	g := New(4, false)
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(3, 0, 1)
	cycle, err := g.HamiltonianCycle(0)
	c.Assert(err, gc.IsNil)
	c.Assert(cycle[0], gc.Equals, cycle[len(cycle)-1])
	c.Assert(len(cycle), gc.Equals, 5)
	seen := map[Vertex]struct{}{}
	for _, v := range cycle[:len(cycle)-1] {
		seen[v] = struct{}{}
	}
	c.Assert(len(seen), gc.Equals, g.n)
}
