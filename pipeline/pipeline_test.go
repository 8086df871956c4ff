package pipeline

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"GraphCompute/graph"
	"GraphCompute/registry"
)

type captureSender struct {
	mu       sync.Mutex
	payloads map[uuid.UUID]string
	received chan struct{}
}

func newCaptureSender(expect int) *captureSender {
	return &captureSender{
		payloads: make(map[uuid.UUID]string),
		received: make(chan struct{}, expect),
	}
}

func (c *captureSender) Send(clientID uuid.UUID, payload string) error {
	c.mu.Lock()
	c.payloads[clientID] = payload
	c.mu.Unlock()
	c.received <- struct{}{}
	return nil
}

func TestPipelineSubmitProducesOneOutgoingPerJob(t *testing.T) {
	sender := newCaptureSender(1)
	p := New(registry.Default(), sender, nil)
	p.Start()
	defer p.Stop()

	g := graph.New(3, false)
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 0, 1)

	clientID := uuid.New()
	jobID := uuid.New()
	if !p.Submit(Job{ClientID: clientID, JobID: jobID, Graph: g, Directed: false, MaxFlowSource: 0, MaxFlowSink: 2}) {
		t.Fatal("submit failed")
	}

	select {
	case <-sender.received:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for aggregated payload")
	}

	sender.mu.Lock()
	payload := sender.payloads[clientID]
	sender.mu.Unlock()

	if payload == "" {
		t.Fatal("expected a non-empty payload")
	}
	if !containsAll(payload, "===== Graph =====", "===== MST (Prim) =====", "===== Connected Components =====",
		"===== Hamiltonian =====", "===== Max-Flow =====", DoneSentinel) {
		t.Fatalf("payload missing expected sections:\n%s", payload)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
