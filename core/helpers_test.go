package core_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/relgraph/core"
	"github.com/stretchr/testify/require"
)

// Common vertex IDs used across core tests.
const (
	VertexA = "A"
	VertexB = "B"
	VertexC = "C"
	VertexD = "D"
)

// Common labels used across core tests.
const (
	LabelFriend = "FRIEND"
	LabelWorks  = "WORKS_WITH"
)

// sequenceIDs returns a generator yielding ids in order, then "exhausted-N".
func sequenceIDs(ids ...string) func() string {
	i := 0
	return func() string {
		defer func() { i++ }()
		if i < len(ids) {
			return ids[i]
		}

		return fmt.Sprintf("exhausted-%d", i)
	}
}

// newABCD builds a graph with vertices A..D and empty payloads.
func newABCD(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, id := range []string{VertexA, VertexB, VertexC, VertexD} {
		require.NoError(t, g.InsertVertex(id, map[string]any{"name": id}))
	}

	return g
}
