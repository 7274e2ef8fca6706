// Package snapshot persists store.Snapshot values.
//
// Every backend keeps the same two documents: the top-level nodes
// ("nodes") and the collections with their nodes ("collections"), each
// JSON encoded. A Save always rewrites both in full.
//
// Backends:
//
//	FileStore   – nodes.json and collections.json in one directory.
//	BadgerStore – two keys in a badger database.
//	SQLiteStore – two rows in a snapshots table.
//	MemoryStore – in-process byte copies, for tests.
//
// Open picks a backend from a Config.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/katalvlaran/relgraph/store"
)

// Document names shared by every backend.
const (
	NodesDoc       = "nodes"
	CollectionsDoc = "collections"
)

var (
	// ErrIncomplete indicates that only one of the two documents exists.
	ErrIncomplete = errors.New("snapshot: incomplete snapshot")

	// ErrUnknownBackend indicates a Config.Backend that Open does not know.
	ErrUnknownBackend = errors.New("snapshot: unknown backend")
)

// Store loads and saves full snapshots.
type Store interface {
	// Load returns the last saved snapshot, or nil when nothing was saved.
	Load(ctx context.Context) (*store.Snapshot, error)

	// Save replaces the stored snapshot with s.
	Save(ctx context.Context, s *store.Snapshot) error

	// Close releases the backend.
	Close() error
}

// encode splits s into its two documents.
func encode(s *store.Snapshot) (nodes, collections []byte, err error) {
	if s == nil {
		s = &store.Snapshot{}
	}
	top := s.Nodes
	if top == nil {
		top = []store.NodeRecord{}
	}
	cols := s.Collections
	if cols == nil {
		cols = []store.CollectionRecord{}
	}
	if nodes, err = json.Marshal(top); err != nil {
		return nil, nil, fmt.Errorf("snapshot: encode %s: %w", NodesDoc, err)
	}
	if collections, err = json.Marshal(cols); err != nil {
		return nil, nil, fmt.Errorf("snapshot: encode %s: %w", CollectionsDoc, err)
	}

	return nodes, collections, nil
}

// decode joins the two documents. Both nil means nothing was saved.
func decode(nodes, collections []byte) (*store.Snapshot, error) {
	switch {
	case nodes == nil && collections == nil:
		return nil, nil
	case nodes == nil:
		return nil, fmt.Errorf("%w: %s is missing", ErrIncomplete, NodesDoc)
	case collections == nil:
		return nil, fmt.Errorf("%w: %s is missing", ErrIncomplete, CollectionsDoc)
	}

	s := &store.Snapshot{}
	if err := json.Unmarshal(nodes, &s.Nodes); err != nil {
		return nil, fmt.Errorf("snapshot: decode %s: %w", NodesDoc, err)
	}
	if err := json.Unmarshal(collections, &s.Collections); err != nil {
		return nil, fmt.Errorf("snapshot: decode %s: %w", CollectionsDoc, err)
	}

	return s, nil
}
