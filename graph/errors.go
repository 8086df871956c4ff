package graph

import "golang.org/x/xerrors"

// Sentinel errors for algorithms that cannot produce a result for the given
// graph. ErrNoArborescence and ErrNoHamiltonianCycle are rendered into their
// report sections as ERR|... lines rather than aborting the job.
// ErrNotEulerian is returned by EulerianCircuit, which the pipeline does not
// run. ErrUnknownSourceOrSink and ErrVertexOutOfRange are not returned by
// any function in this module; MaxFlow answers 0 for an unknown source or
// sink.
var (
	ErrNotEulerian          = xerrors.New("graph has no Eulerian circuit")
	ErrNoArborescence       = xerrors.New("no arborescence reachable from root")
	ErrNoHamiltonianCycle   = xerrors.New("no Hamiltonian cycle from start")
	ErrUnknownSourceOrSink  = xerrors.New("max-flow source or sink not in graph")
	ErrVertexOutOfRange     = xerrors.New("vertex out of declared range")
)
