package registry

import (
	"strconv"

	"GraphCompute/graph"
)

// Algorithm name constants, matching the pipeline's four algorithm queues
// and the aggregator's four report sections.
const (
	MST      = "mst"
	SCC      = "scc"
	Hamilton = "hamilton"
	MaxFlow  = "maxflow"
)

// Default returns a Registry pre-populated with the four algorithm
// strategies the pipeline's fan-out stage dispatches to, grounded on the
// strategy shapes of AlgoIO/MST_Algo/SCC_Algo/Max_Flow/HamiltonAlgo.
func Default() *Registry {
	r := New()
	r.Register(MST, mstStrategy)
	r.Register(SCC, sccStrategy)
	r.Register(Hamilton, hamiltonStrategy)
	r.Register(MaxFlow, maxFlowStrategy)
	return r
}

func mstStrategy(g *graph.Graph, _ Params) (string, error) {
	root, ok := g.FirstVertex()
	if !ok {
		return "", nil
	}
	arcs, err := g.MinimumSpanningTree(root)
	if err != nil {
		return "", err
	}
	return graph.ArcsString(arcs), nil
}

func sccStrategy(g *graph.Graph, _ Params) (string, error) {
	return graph.ComponentsString(g.Components()), nil
}

func hamiltonStrategy(g *graph.Graph, _ Params) (string, error) {
	start, ok := g.FirstVertex()
	if !ok {
		return "", nil
	}
	cycle, err := g.HamiltonianCycle(start)
	if err != nil {
		return "", err
	}
	return graph.CycleString(cycle), nil
}

func maxFlowStrategy(g *graph.Graph, params Params) (string, error) {
	flow := g.MaxFlow(params.MaxFlowSource, params.MaxFlowSink)
	return strconv.FormatFloat(flow, 'g', -1, 64), nil
}
