// Package registry maps a textual algorithm name to the strategy function
// that computes it, so the pipeline's algorithm workers are constructed by
// name rather than by a fixed switch statement over algorithm kind.
package registry

import (
	"sort"

	"GraphCompute/graph"
)

// Params carries the job-level inputs an AlgoFunc needs beyond the graph
// itself (currently only the max-flow source/sink pair).
type Params struct {
	MaxFlowSource graph.Vertex
	MaxFlowSink   graph.Vertex
}

// AlgoFunc computes one algorithm's report-section text for g.
type AlgoFunc func(g *graph.Graph, params Params) (string, error)

// Registry holds the predefined algorithm strategies, keyed by name.
type Registry struct {
	algorithms map[string]AlgoFunc
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{algorithms: make(map[string]AlgoFunc)}
}

// Register associates name with fn, overwriting any prior registration.
func (r *Registry) Register(name string, fn AlgoFunc) {
	r.algorithms[name] = fn
}

// Lookup returns the strategy registered under name, or nil if none exists.
func (r *Registry) Lookup(name string) AlgoFunc {
	if fn, ok := r.algorithms[name]; ok {
		return fn
	}
	return nil
}

// Names returns the registered algorithm names, sorted ascending.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
