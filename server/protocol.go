package server

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"GraphCompute/graph"
	"GraphCompute/pipeline"
)

// processLine parses and executes one command line from a connection, per
// §4.4's grammar. It writes any inline ERR|... response via send, and
// submits a Job to p on commit.
func (m *ConnectionMux) processLine(fd int, raw string, send func(string)) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	fields := strings.Split(line, "|")
	cmd := strings.ToLower(strings.TrimSpace(fields[0]))

	switch cmd {
	case "init":
		m.handleInit(fd, fields, send)
	case "edge":
		m.handleEdge(fd, fields, send)
	case "maxflow":
		m.handleMaxFlow(fd, fields, send)
	case "print", "connected", "scc", "mst", "hamilton":
		// accepted but ignored, per §4.4.
	case "commit":
		m.handleCommit(fd, send)
	default:
		send("ERR|Unknown command: " + cmd + "\n")
	}
}

func (m *ConnectionMux) handleInit(fd int, fields []string, send func(string)) {
	if len(fields) < 3 {
		send("ERR|malformed init command\n")
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		send("ERR|malformed vertex count\n")
		return
	}
	directed := strings.TrimSpace(fields[2]) == "1"

	m.state.withConn(fd, func(c *connState) {
		c.graph = graph.New(n, directed)
		c.n = n
		c.directed = directed
		c.hasGraph = true
		c.hasMaxFlow = false
	})
}

func (m *ConnectionMux) handleEdge(fd int, fields []string, send func(string)) {
	if len(fields) < 4 {
		send("ERR|malformed edge command\n")
		return
	}
	u, errU := strconv.Atoi(strings.TrimSpace(fields[1]))
	v, errV := strconv.Atoi(strings.TrimSpace(fields[2]))
	w, errW := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if errU != nil || errV != nil || errW != nil {
		send("ERR|malformed edge fields\n")
		return
	}

	var hasGraph bool
	m.state.withConn(fd, func(c *connState) {
		hasGraph = c.hasGraph
		if hasGraph {
			c.graph.AddEdge(u, v, w)
		}
	})
	if !hasGraph {
		send("ERR|Graph not initialized yet.\n")
	}
}

func (m *ConnectionMux) handleMaxFlow(fd int, fields []string, send func(string)) {
	if len(fields) < 3 {
		send("ERR|malformed maxflow command\n")
		return
	}
	src, errS := strconv.Atoi(strings.TrimSpace(fields[1]))
	sink, errT := strconv.Atoi(strings.TrimSpace(fields[2]))
	if errS != nil || errT != nil {
		send("ERR|malformed maxflow fields\n")
		return
	}
	m.state.withConn(fd, func(c *connState) {
		c.mfSource = src
		c.mfSink = sink
		c.hasMaxFlow = true
	})
}

func (m *ConnectionMux) handleCommit(fd int, send func(string)) {
	var (
		g                *graph.Graph
		n                int
		directed         bool
		hasGraph         bool
		hasMaxFlow       bool
		mfSource, mfSink graph.Vertex
		clientID         uuid.UUID
	)
	m.state.withConn(fd, func(c *connState) {
		hasGraph = c.hasGraph
		if hasGraph {
			g = c.graph.Clone()
			n = c.n
			directed = c.directed
			hasMaxFlow = c.hasMaxFlow
			mfSource, mfSink = c.mfSource, c.mfSink
		}
		clientID = c.clientID
	})

	if !hasGraph {
		send("ERR|Graph not initialized yet.\n")
		return
	}

	if !hasMaxFlow {
		mfSource = 0
		if n > 0 {
			mfSink = n - 1
		} else {
			mfSink = 0
		}
	}

	job := pipeline.Job{
		ClientID:      clientID,
		JobID:         uuid.New(),
		Graph:         g,
		Directed:      directed,
		MaxFlowSource: mfSource,
		MaxFlowSink:   mfSink,
	}
	m.pipeline.Submit(job)

	m.state.withConn(fd, func(c *connState) {
		c.hasMaxFlow = false
	})
}
