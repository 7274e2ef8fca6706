// Package converters reads and writes core.Graph in the plain-text
// edge-list format:
//
//	G                 ← line 1: G (undirected) or D (directed)
//	a,b,c,d           ← line 2: comma-separated vertex IDs
//	(a,b)             ← following lines: one edge each, optional cost
//	(b,c,5)
//
// A missing cost defaults to 1. In a G file every edge is stored in both
// directions with the same cost. Vertices named only in an edge line are
// created on the fly. Every vertex gets an empty payload.
package converters

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/relgraph/core"
)

// ErrFormat indicates a malformed edge-list document.
var ErrFormat = errors.New("converters: malformed edge list")

// Graph kinds as written on line 1.
const (
	KindUndirected = "G"
	KindDirected   = "D"
)

// defaultCost is used when an edge line carries no third field.
const defaultCost = 1.0

// EdgeList is a decoded edge-list document.
type EdgeList struct {
	// Directed is true for a D header.
	Directed bool

	// Graph holds the vertices and cost edges.
	Graph *core.Graph
}

// ReadEdgeList decodes an edge-list document from r.
//
// Errors:
//   - ErrFormat: fewer than three lines, unknown header, a line with other
//     than 2 or 3 fields, or an unparsable cost.
//   - core errors (wrapped with the line number) for duplicate edges.
func ReadEdgeList(r io.Reader) (*EdgeList, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("converters: read: %w", err)
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: expected at least 3 lines, got %d", ErrFormat, len(lines))
	}

	out := &EdgeList{Graph: core.NewGraph()}
	switch lines[0] {
	case KindUndirected:
	case KindDirected:
		out.Directed = true
	default:
		return nil, fmt.Errorf("%w: line 1: expected %s or %s, got %q", ErrFormat, KindUndirected, KindDirected, lines[0])
	}

	for _, id := range strings.Split(lines[1], ",") {
		if err := ensureVertex(out.Graph, strings.TrimSpace(id)); err != nil {
			return nil, fmt.Errorf("converters: line 2: %w", err)
		}
	}

	for i, line := range lines[2:] {
		lineNo := i + 3
		from, to, cost, err := parseEdge(line)
		if err != nil {
			return nil, fmt.Errorf("converters: line %d: %w", lineNo, err)
		}
		for _, id := range []string{from, to} {
			if err = ensureVertex(out.Graph, id); err != nil {
				return nil, fmt.Errorf("converters: line %d: %w", lineNo, err)
			}
		}
		if err = out.Graph.AddRelation(from, to, core.Cost(cost), !out.Directed); err != nil {
			return nil, fmt.Errorf("converters: line %d: %w", lineNo, err)
		}
	}

	return out, nil
}

// parseEdge splits "(a,b[,w])" into its parts.
func parseEdge(line string) (from, to string, cost float64, err error) {
	fields := strings.Split(strings.Trim(line, "() "), ",")
	if len(fields) != 2 && len(fields) != 3 {
		return "", "", 0, fmt.Errorf("%w: expected 2 or 3 fields, got %q", ErrFormat, line)
	}
	from, to = strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])
	if from == "" || to == "" {
		return "", "", 0, fmt.Errorf("%w: empty endpoint in %q", ErrFormat, line)
	}
	cost = defaultCost
	if len(fields) == 3 {
		cost, err = strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return "", "", 0, fmt.Errorf("%w: cost in %q: %v", ErrFormat, line, err)
		}
	}

	return from, to, cost, nil
}

func ensureVertex(g *core.Graph, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty vertex ID", ErrFormat)
	}
	if g.HasVertex(id) {
		return nil
	}

	return g.InsertVertex(id, map[string]any{})
}

// WriteEdgeList encodes g in the edge-list format. When directed is false a
// mirrored pair is written once, from the lexicographically smaller ID.
// Label-valued edges cannot be represented and fail with ErrFormat.
func WriteEdgeList(w io.Writer, g *core.Graph, directed bool) error {
	kind := KindUndirected
	if directed {
		kind = KindDirected
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, kind)
	fmt.Fprintln(bw, strings.Join(g.Vertices(), ","))
	for _, e := range g.Edges() {
		c, ok := e.Value.AsCost()
		if !ok {
			return fmt.Errorf("%w: edge %s→%s carries label %v", ErrFormat, e.From, e.To, e.Value)
		}
		if !directed && e.From > e.To && g.HasEdge(e.To, e.From) {
			continue
		}
		fmt.Fprintf(bw, "(%s,%s,%s)\n", e.From, e.To, strconv.FormatFloat(c, 'g', -1, 64))
	}

	return bw.Flush()
}
