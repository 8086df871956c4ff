package pipeline

import (
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"GraphCompute/activeobject"
	"GraphCompute/queue"
	"GraphCompute/registry"
)

// Pipeline owns the queues and active objects described in §4.3: fanout,
// four algorithm workers, aggregator, and responder.
type Pipeline struct {
	log *logrus.Entry
	reg *registry.Registry

	in      *queue.BoundedQueue[Job]
	mst     *queue.BoundedQueue[Job]
	scc     *queue.BoundedQueue[Job]
	ham     *queue.BoundedQueue[Job]
	flow    *queue.BoundedQueue[Job]
	results *queue.BoundedQueue[Result]
	out     *queue.BoundedQueue[Outgoing]

	fanout     *activeobject.ActiveObject[Job]
	mstWorker  *activeobject.ActiveObject[Job]
	sccWorker  *activeobject.ActiveObject[Job]
	hamWorker  *activeobject.ActiveObject[Job]
	flowWorker *activeobject.ActiveObject[Job]
	aggregator *activeobject.ActiveObject[Result]
	responder  *activeobject.ActiveObject[Outgoing]

	state *aggregatorState
}

// New constructs a Pipeline. Start must be called before Submit.
func New(reg *registry.Registry, sender Sender, log *logrus.Entry) *Pipeline {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}

	p := &Pipeline{
		log:     log,
		reg:     reg,
		in:      queue.New[Job](CapIn),
		mst:     queue.New[Job](CapAlgo),
		scc:     queue.New[Job](CapAlgo),
		ham:     queue.New[Job](CapAlgo),
		flow:    queue.New[Job](CapAlgo),
		results: queue.New[Result](CapAgg),
		out:     queue.New[Outgoing](CapOut),
		state:   newAggregatorState(),
	}

	p.fanout = activeobject.New(p.in, p.runFanout)
	p.mstWorker = activeobject.New(p.mst, p.algoWorker(KindMST))
	p.sccWorker = activeobject.New(p.scc, p.algoWorker(KindSCC))
	p.hamWorker = activeobject.New(p.ham, p.algoWorker(KindHamilton))
	p.flowWorker = activeobject.New(p.flow, p.algoWorker(KindMaxFlow))
	p.aggregator = activeobject.New(p.results, p.runAggregator)
	p.responder = activeobject.New(p.out, p.runResponder(sender))

	return p
}

// Start launches every active object's worker goroutine.
func (p *Pipeline) Start() {
	p.fanout.Start()
	p.mstWorker.Start()
	p.sccWorker.Start()
	p.hamWorker.Start()
	p.flowWorker.Start()
	p.aggregator.Start()
	p.responder.Start()
}

// Stop closes the queues in topological order (in → algorithm queues →
// results → out) and waits for every active object to drain and exit.
// Pending partials for jobs that never completed are dropped, per §4.3.
func (p *Pipeline) Stop() error {
	var result *multierror.Error

	p.fanout.Stop()
	p.mstWorker.Stop()
	p.sccWorker.Stop()
	p.hamWorker.Stop()
	p.flowWorker.Stop()
	p.aggregator.Stop()
	p.responder.Stop()

	return result.ErrorOrNil()
}

// Submit enqueues a committed job for compute. It blocks if the in queue is
// full and reports false if the pipeline has been stopped.
func (p *Pipeline) Submit(job Job) bool {
	return p.in.Push(job)
}

func (p *Pipeline) runFanout(job Job) {
	header := job.Graph.String()
	p.state.register(job.JobID, job.ClientID, header, job.Directed)

	for _, q := range []*queue.BoundedQueue[Job]{p.mst, p.scc, p.ham, p.flow} {
		if !q.Push(job) {
			p.log.WithField("job_id", job.JobID).Warn("algorithm queue closed during fan-out")
		}
	}
}

func (p *Pipeline) algoWorker(kind Kind) func(Job) {
	return func(job Job) {
		fn := p.reg.Lookup(kind.registryName())
		result := Result{JobID: job.JobID, Kind: kind}
		if fn == nil {
			result.Err = xerrors.Errorf("no algorithm registered for %s", kind.registryName())
		} else {
			value, err := fn(job.Graph, registry.Params{
				MaxFlowSource: job.MaxFlowSource,
				MaxFlowSink:   job.MaxFlowSink,
			})
			if err != nil {
				result.Err = err
			} else {
				result.OK = true
				result.Value = value
			}
		}
		if !p.results.Push(result) {
			p.log.WithField("job_id", job.JobID).Warn("results queue closed before partial could be delivered")
		}
	}
}

func (p *Pipeline) runAggregator(result Result) {
	outgoing, ready := p.state.absorb(result)
	if !ready {
		return
	}
	if !p.out.Push(outgoing) {
		p.log.WithField("client_id", outgoing.ClientID).Warn("out queue closed before outgoing payload could be delivered")
	}
}

func (p *Pipeline) runResponder(sender Sender) func(Outgoing) {
	return func(outgoing Outgoing) {
		if err := sender.Send(outgoing.ClientID, outgoing.Payload); err != nil {
			p.log.WithError(err).WithField("client_id", outgoing.ClientID).Warn("failed to deliver outgoing payload")
		}
	}
}
