// File: types.go
// Role: Sentinel errors, Vertex, Edge, GraphOption and the Graph arena.

package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrInvalidPayload indicates that a payload is not a non-nil map with string keys.
	ErrInvalidPayload = errors.New("core: payload must be a key/value map")

	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrDuplicateID indicates that a vertex ID is already taken.
	ErrDuplicateID = errors.New("core: duplicate vertex ID")

	// ErrMissingVertex indicates an edge operation referenced an absent endpoint.
	ErrMissingVertex = errors.New("core: missing vertex")

	// ErrUnknownVertex indicates a query referenced a vertex that does not exist.
	ErrUnknownVertex = errors.New("core: unknown vertex")

	// ErrDuplicateRelation indicates the directed edge already exists.
	ErrDuplicateRelation = errors.New("core: relation already exists")

	// ErrInvalidEdgeValue indicates an edge value of the wrong kind or an
	// uncomparable label.
	ErrInvalidEdgeValue = errors.New("core: invalid edge value")

	// ErrNoEdge indicates the directed edge does not exist.
	ErrNoEdge = errors.New("core: edge not found")
)

// defaultMaxIDAttempts bounds how many times AddVertex re-rolls a colliding ID.
const defaultMaxIDAttempts = 16

// Vertex is a single entity in the arena.
//
// Payload is stored by reference: callers that keep the map they inserted
// observe later changes made through Vertex.Payload and vice versa.
type Vertex struct {
	// ID is unique within the owning Graph.
	ID string

	// Payload is the open-ended attribute map.
	Payload map[string]any
}

// Edge is a directed relation From→To carrying Value.
type Edge struct {
	From  string
	To    string
	Value EdgeValue
}

// adjacency keeps outgoing edges in insertion order with O(1) membership.
type adjacency struct {
	order  []string
	values map[string]EdgeValue
}

func newAdjacency() *adjacency {
	return &adjacency{values: make(map[string]EdgeValue)}
}

// GraphOption configures a Graph before first use.
type GraphOption func(g *Graph)

// WithIDGenerator replaces the random ID generator used by AddVertex.
// A nil generator is ignored.
func WithIDGenerator(gen func() string) GraphOption {
	return func(g *Graph) {
		if gen != nil {
			g.newID = gen
		}
	}
}

// WithMaxIDAttempts sets how many generated IDs AddVertex tries before it
// gives up with ErrDuplicateID. Values below 1 are ignored.
func WithMaxIDAttempts(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.maxIDAttempts = n
		}
	}
}

// Graph is the in-memory arena of vertices and directed, valued edges.
//
// mu guards vertices, out and in. Self-loops are permitted; parallel edges
// between the same ordered pair are not.
type Graph struct {
	mu sync.RWMutex

	newID         func() string
	maxIDAttempts int

	vertices map[string]*Vertex
	out      map[string]*adjacency          // from → ordered targets
	in       map[string]map[string]struct{} // to → set of sources
	edges    int
}

// NewGraph creates an empty Graph.
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		newID:         NewID,
		maxIDAttempts: defaultMaxIDAttempts,
		vertices:      make(map[string]*Vertex),
		out:           make(map[string]*adjacency),
		in:            make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
