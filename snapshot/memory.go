package snapshot

import (
	"context"
	"sync"

	"github.com/katalvlaran/relgraph/store"
)

// MemoryStore keeps encoded documents in process. Loads decode a fresh copy,
// so callers never share payload maps with what was saved.
type MemoryStore struct {
	mu          sync.Mutex
	nodes       []byte
	collections []byte
	saves       int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context) (*store.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	return decode(m.nodes, m.collections)
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, s *store.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	nodes, collections, err := encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes, m.collections = nodes, collections
	m.saves++

	return nil
}

// Saves reports how many times Save succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saves
}

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }
