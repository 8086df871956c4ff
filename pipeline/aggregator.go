package pipeline

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// partialSet tracks the partials collected so far for one job, per §4.6.
type partialSet struct {
	clientID     uuid.UUID
	graphHeader  string
	directed     bool
	count        int
	sections     map[Kind]Result
}

// Outgoing is a fully aggregated report ready for delivery to one client.
type Outgoing struct {
	ClientID uuid.UUID
	Payload  string
}

// aggregatorState is the aggregator's bookkeeping, keyed by job ID. The
// fanout goroutine calls register and the aggregator goroutine calls
// absorb, so mu guards pending.
type aggregatorState struct {
	mu      sync.Mutex
	pending map[uuid.UUID]*partialSet
}

func newAggregatorState() *aggregatorState {
	return &aggregatorState{pending: make(map[uuid.UUID]*partialSet)}
}

// register creates the bookkeeping entry for a newly fanned-out job.
func (a *aggregatorState) register(jobID uuid.UUID, clientID uuid.UUID, graphHeader string, directed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending[jobID] = &partialSet{
		clientID:    clientID,
		graphHeader: graphHeader,
		directed:    directed,
		sections:    make(map[Kind]Result, resultsPerJob),
	}
}

// absorb records one algorithm Result. Once the fourth partial for a job
// arrives it returns the assembled Outgoing and removes the job's
// bookkeeping; otherwise it returns false.
func (a *aggregatorState) absorb(r Result) (Outgoing, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	set, ok := a.pending[r.JobID]
	if !ok {
		return Outgoing{}, false
	}
	set.sections[r.Kind] = r
	set.count++
	if set.count < resultsPerJob {
		return Outgoing{}, false
	}

	delete(a.pending, r.JobID)
	return Outgoing{ClientID: set.clientID, Payload: formatReport(set)}, true
}

func formatReport(set *partialSet) string {
	var b strings.Builder
	b.WriteString("===== Graph =====\n")
	b.WriteString(set.graphHeader)
	b.WriteString("\n\n")

	for _, kind := range []Kind{KindMST, KindSCC, KindHamilton, KindMaxFlow} {
		b.WriteString("===== ")
		b.WriteString(kind.sectionHeader(set.directed))
		b.WriteString(" =====\n")
		b.WriteString(sectionBody(set.sections[kind]))
		b.WriteString("\n")
	}

	b.WriteString(DoneSentinel)
	return b.String()
}

func sectionBody(r Result) string {
	if !r.OK {
		if r.Err != nil {
			return "ERR|" + r.Err.Error()
		}
		return "ERR|no result"
	}
	return r.Value
}
