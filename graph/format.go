package graph

import (
	"strconv"
	"strings"
)

// String renders the adjacency dump used as the aggregator report's
// "Graph" header section, matching the reference formatter's bracketed
// per-vertex neighbor lists.
func (g *Graph) String() string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, v := range g.Vertices() {
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(v))
		b.WriteString(" : [ ")
		for _, n := range g.Neighbors(v) {
			b.WriteString("(")
			b.WriteString(strconv.Itoa(n.To))
			b.WriteString(", w=")
			b.WriteString(formatWeight(n.Weight))
			b.WriteString(") ")
		}
		b.WriteString("]\n")
	}
	b.WriteString("}")
	return b.String()
}

// ArcsString renders a list of arcs as "(from, to, weight: w)" lines, the
// format §4.5's MST/arborescence sections use.
func ArcsString(arcs []Arc) string {
	var b strings.Builder
	for _, a := range arcs {
		b.WriteString("(")
		b.WriteString(strconv.Itoa(a.From))
		b.WriteString(", ")
		b.WriteString(strconv.Itoa(a.To))
		b.WriteString(", weight: ")
		b.WriteString(formatWeight(a.Weight))
		b.WriteString(")\n")
	}
	return b.String()
}

// ComponentsString renders a component partition as a brace-delimited,
// comma-separated list of brace-delimited vertex lists.
func ComponentsString(comps [][]Vertex) string {
	var b strings.Builder
	b.WriteString("{ ")
	for i, comp := range comps {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("{")
		for j, v := range comp {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(v))
		}
		b.WriteString("}")
	}
	b.WriteString(" }")
	return b.String()
}

// CycleString renders a vertex sequence (Euler circuit or Hamiltonian
// cycle) as a brace-delimited, space-separated list.
func CycleString(cycle []Vertex) string {
	var b strings.Builder
	b.WriteString("{ ")
	for i, v := range cycle {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteString(" }")
	return b.String()
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}
