// Package pipeline wires the bounded-queue, active-object stages that turn
// a committed Job into a single aggregated report: fan-out registers the
// job and fans a copy into each algorithm queue, the four algorithm workers
// each compute one partial Result, the aggregator collates four partials
// per job into an Outgoing, and the responder delivers it to the
// connection.
package pipeline

import (
	"github.com/google/uuid"

	"GraphCompute/graph"
	"GraphCompute/registry"
)

// Default queue capacities, grounded on the reference pipeline's
// Q_CAP_IN/Q_CAP_ALGO/Q_CAP_AGG/Q_CAP_OUT constants.
const (
	CapIn   = 128
	CapAlgo = 128
	CapAgg  = 256
	CapOut  = 256
)

// resultsPerJob is the number of algorithm partials the aggregator waits
// for before it emits one Outgoing per job.
const resultsPerJob = 4

// DoneSentinel terminates every Outgoing payload so a client can reliably
// detect the end of one job's report.
const DoneSentinel = "===== DONE =====\n"

// Sender delivers a fully aggregated payload to whatever is consuming a
// client connection's responses. The server package implements it over a
// network connection; tests can stub it.
type Sender interface {
	Send(clientID uuid.UUID, payload string) error
}

// Job is one committed graph submitted for the fixed battery of algorithms.
type Job struct {
	ClientID      uuid.UUID
	JobID         uuid.UUID
	Graph         *graph.Graph
	Directed      bool
	MaxFlowSource graph.Vertex
	MaxFlowSink   graph.Vertex
}

// Kind identifies which report section a Result belongs to.
type Kind int

const (
	KindMST Kind = iota
	KindSCC
	KindHamilton
	KindMaxFlow
)

func (k Kind) sectionHeader(directed bool) string {
	switch k {
	case KindMST:
		if directed {
			return "Directed Arborescence"
		}
		return "MST (Prim)"
	case KindSCC:
		if directed {
			return "Strongly Connected Components"
		}
		return "Connected Components"
	case KindHamilton:
		return "Hamiltonian"
	case KindMaxFlow:
		return "Max-Flow"
	default:
		return "Unknown"
	}
}

// Result is one algorithm worker's output for a single job.
type Result struct {
	JobID uuid.UUID
	Kind  Kind
	OK    bool
	Value string
	Err   error
}

// registryName maps a Kind to the registry.AlgoFunc name that computes it.
func (k Kind) registryName() string {
	switch k {
	case KindMST:
		return registry.MST
	case KindSCC:
		return registry.SCC
	case KindHamilton:
		return registry.Hamilton
	case KindMaxFlow:
		return registry.MaxFlow
	default:
		return ""
	}
}
