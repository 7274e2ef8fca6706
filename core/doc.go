// Package core provides the thread-safe in-memory arena every relgraph
// traversal, query and namespace is built on.
//
// The Graph G = (V,E) is deliberately small:
//
//   - Vertices are addressed by stable string IDs and carry a map[string]any payload.
//   - Edges are directed and carry one EdgeValue: either an opaque label
//     (compared with ==) or a float64 cost used by weighted algorithms.
//   - At most one edge per ordered pair (from, to); self-loops are allowed.
//   - Outgoing edges keep insertion order; an incoming index makes
//     RemoveVertex O(in + out) and leaves no dangling targets.
//   - Generated IDs are 128-bit random hex strings, re-rolled on collision.
//
// Configuration Options (GraphOption):
//
//	– WithIDGenerator(func() string)
//	    Replace the random generator used by AddVertex.
//
//	– WithMaxIDAttempts(n int)
//	    Bound the number of re-rolls before AddVertex fails with ErrDuplicateID.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(payload any) (id string, err error)   // O(1) expected
//	InsertVertex(id string, payload any) error      // O(1)
//	HasVertex(id string) bool                       // O(1)
//	Vertex(id string) (*Vertex, bool)               // O(1)
//	RemoveVertex(id string) error                   // O(in + out·d)
//
//	// Edge lifecycle
//	AddEdge(from, to string, v EdgeValue) error                        // O(1)
//	AddRelation(from, to string, v EdgeValue, bidirectional bool) error // O(1), atomic
//	RemoveRelation(from, to string, bidirectional bool) error          // O(d)
//	HasEdge(from, to string) bool                                      // O(1)
//	EdgeValue(from, to string) (EdgeValue, bool)                       // O(1)
//
//	// Query
//	Neighbors(id string) ([]Neighbor, error)  // O(d), insertion order
//	NeighborIDs(id string) ([]string, error)  // O(d), insertion order
//	Vertices() []string                       // O(V·log V), sorted
//	Edges() []Edge                            // O(V·log V + E)
//	VertexCount() int                         // O(1)
//	EdgeCount() int                           // O(1)
//
//	// Maintenance
//	Clear()                                   // O(1)
//
// Errors:
//
//	ErrInvalidPayload    – payload is not a non-nil map with string keys
//	ErrEmptyVertexID     – zero-length vertex ID
//	ErrDuplicateID       – vertex ID taken, or every generated ID collided
//	ErrMissingVertex     – an edge endpoint does not exist
//	ErrUnknownVertex     – a lookup or traversal start does not exist
//	ErrDuplicateRelation – from→to already exists
//	ErrInvalidEdgeValue  – uncomparable label, or wrong kind for an algorithm
//	ErrNoEdge            – from→to does not exist
package core
