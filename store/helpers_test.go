package store_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/relgraph/store"
	"github.com/stretchr/testify/require"
)

// Labels shared by store tests.
const (
	LabelX = "X"
	LabelY = "Y"
)

// sequenceKeys returns a generator yielding keys in order, then "gen-N".
func sequenceKeys(keys ...string) func() string {
	i := 0
	return func() string {
		defer func() { i++ }()
		if i < len(keys) {
			return keys[i]
		}

		return fmt.Sprintf("gen-%d", i)
	}
}

// mustInsert inserts {"name": key} into collection (or the top level).
func mustInsert(t *testing.T, db *store.Database, collection, key string) *store.Node {
	t.Helper()
	n, err := db.InsertAt(collection, map[string]any{"name": key}, key)
	require.NoError(t, err)

	return n
}

// mustAdd creates the named collections.
func mustAdd(t *testing.T, db *store.Database, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := db.Add(name)
		require.NoError(t, err)
	}
}

// numAssociations is NumAssociations with the error checked.
func numAssociations(t *testing.T, db *store.Database) int {
	t.Helper()
	n, err := db.NumAssociations()
	require.NoError(t, err)

	return n
}

func keys(nodes []*store.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID())
	}

	return out
}
