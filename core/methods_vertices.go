// File: methods_vertices.go
// Role: Vertex lifecycle & queries.
//
// Determinism:
//   - Vertices() returns IDs sorted lexicographically ascending.
//
// Concurrency:
//   - All vertex and adjacency state is protected by mu.

package core

import (
	"fmt"
	"sort"
)

// AddVertex validates payload, generates a fresh ID and registers a vertex.
//
// Implementation:
//   - Stage 1: Validate payload (ErrInvalidPayload).
//   - Stage 2: Under mu, draw IDs until one is free; a collision is re-rolled.
//   - Stage 3: Register the vertex and bootstrap its adjacency.
//
// Returns:
//   - string: the generated vertex ID.
//   - error: ErrInvalidPayload, or ErrDuplicateID when every attempt collided.
//
// Complexity:
//   - Time O(1) expected, Space O(1).
func (g *Graph) AddVertex(payload any) (string, error) {
	p, err := NewPayload(payload)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := GenerateID(g.newID, g.maxIDAttempts, func(id string) bool {
		_, taken := g.vertices[id]
		return taken
	})
	if err != nil {
		return "", err
	}
	g.register(id, p)

	return id, nil
}

// InsertVertex registers a vertex under a caller-supplied ID.
//
// Errors:
//   - ErrEmptyVertexID: if id == "".
//   - ErrInvalidPayload: if payload is not a key/value map.
//   - ErrDuplicateID: if id is already present.
//
// Complexity:
//   - Time O(1), Space O(1).
func (g *Graph) InsertVertex(id string, payload any) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	p, err := NewPayload(payload)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.vertices[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	g.register(id, p)

	return nil
}

// register assumes mu is held for writing.
func (g *Graph) register(id string, payload map[string]any) {
	g.vertices[id] = &Vertex{ID: id, Payload: payload}
	g.out[id] = newAdjacency()
	g.in[id] = make(map[string]struct{})
}

// HasVertex reports whether the vertex ID exists (empty ID ⇒ false).
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// Vertex returns the stored vertex. The pointer is shared with the graph.
func (g *Graph) Vertex(id string) (*Vertex, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.vertices[id]

	return v, ok
}

// Vertices returns all vertex IDs sorted ascending.
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	g.mu.RUnlock()
	sort.Strings(ids)

	return ids
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.vertices)
}

// RemoveVertex deletes a vertex together with every edge into or out of it.
//
// Implementation:
//   - Stage 1: Verify presence (ErrUnknownVertex).
//   - Stage 2: Detach incoming edges using the incoming index.
//   - Stage 3: Detach outgoing edges and drop the vertex.
//
// Complexity:
//   - Time O(in·deg + out), Space O(1).
func (g *Graph) RemoveVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.vertices[id]; !exists {
		return fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}

	for src := range g.in[id] {
		g.detach(src, id)
	}
	for _, dst := range append([]string(nil), g.out[id].order...) {
		g.detach(id, dst)
	}

	delete(g.vertices, id)
	delete(g.out, id)
	delete(g.in, id)

	return nil
}

// Clear drops every vertex and edge but keeps the options.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.vertices = make(map[string]*Vertex)
	g.out = make(map[string]*adjacency)
	g.in = make(map[string]map[string]struct{})
	g.edges = 0
}
