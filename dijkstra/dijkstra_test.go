package dijkstra_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/relgraph/core"
	"github.com/katalvlaran/relgraph/dijkstra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wedge struct {
	from, to string
	cost     float64
}

func weighted(t *testing.T, ids []string, edges ...wedge) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, id := range ids {
		require.NoError(t, g.InsertVertex(id, map[string]any{}))
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e.from, e.to, core.Cost(e.cost)))
	}

	return g
}

func triangle(t *testing.T) *core.Graph {
	return weighted(t, []string{"a", "b", "c"},
		wedge{"a", "b", 1}, wedge{"a", "c", 4}, wedge{"b", "c", 2})
}

func TestDijkstra_Triangle(t *testing.T) {
	dist, prev, err := dijkstra.Dijkstra(triangle(t), "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 0, "b": 1, "c": 3}, dist)
	assert.Nil(t, prev)
}

func TestDijkstra_WithPath(t *testing.T) {
	dist, prev, err := dijkstra.Dijkstra(triangle(t), "a", dijkstra.WithReturnPath())
	require.NoError(t, err)
	assert.Equal(t, 3.0, dist["c"])
	assert.Equal(t, "b", prev["c"])

	path, err := dijkstra.PathTo(prev, "a", "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, path)

	path, err = dijkstra.PathTo(prev, "a", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, path)
}

func TestDijkstra_Unreachable(t *testing.T) {
	g := weighted(t, []string{"a", "b", "z"}, wedge{"a", "b", 2})
	dist, prev, err := dijkstra.Dijkstra(g, "a", dijkstra.WithReturnPath())
	require.NoError(t, err)
	assert.True(t, math.IsInf(dist["z"], 1))

	_, err = dijkstra.PathTo(prev, "a", "z")
	assert.ErrorIs(t, err, dijkstra.ErrUnreachable)
}

func TestDijkstra_Errors(t *testing.T) {
	_, _, err := dijkstra.Dijkstra(nil, "a")
	assert.ErrorIs(t, err, dijkstra.ErrNilGraph)

	_, _, err = dijkstra.Dijkstra(triangle(t), "missing")
	assert.ErrorIs(t, err, dijkstra.ErrVertexNotFound)

	neg := weighted(t, []string{"a", "b"}, wedge{"a", "b", -1})
	_, _, err = dijkstra.Dijkstra(neg, "a")
	assert.ErrorIs(t, err, dijkstra.ErrNegativeWeight)

	_, _, err = dijkstra.Dijkstra(triangle(t), "a", dijkstra.WithMaxDistance(-1))
	assert.ErrorIs(t, err, dijkstra.ErrBadMaxDistance)

	_, _, err = dijkstra.Dijkstra(triangle(t), "a", dijkstra.WithInfEdgeThreshold(0))
	assert.ErrorIs(t, err, dijkstra.ErrBadInfThreshold)
}

func TestDijkstra_LabelEdges(t *testing.T) {
	g := triangle(t)
	require.NoError(t, g.InsertVertex("tag", map[string]any{}))
	require.NoError(t, g.AddEdge("c", "tag", core.Label("FRIEND")))

	_, _, err := dijkstra.Dijkstra(g, "a")
	assert.ErrorIs(t, err, core.ErrInvalidEdgeValue)

	// a label edge that is never reached does not matter
	require.NoError(t, g.InsertVertex("island", map[string]any{}))
	require.NoError(t, g.AddEdge("island", "a", core.Label("FRIEND")))
	dist, _, err := dijkstra.Dijkstra(g, "tag")
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist["tag"])
}

func TestDijkstra_MaxDistanceAndThreshold(t *testing.T) {
	g := weighted(t, []string{"a", "b", "c", "d"},
		wedge{"a", "b", 1}, wedge{"b", "c", 1}, wedge{"c", "d", 1}, wedge{"a", "d", 10})

	dist, _, err := dijkstra.Dijkstra(g, "a", dijkstra.WithMaxDistance(2))
	require.NoError(t, err)
	assert.Equal(t, 2.0, dist["c"])
	assert.True(t, math.IsInf(dist["d"], 1))

	dist, _, err = dijkstra.Dijkstra(g, "a", dijkstra.WithInfEdgeThreshold(1))
	require.NoError(t, err)
	assert.True(t, math.IsInf(dist["b"], 1), "cost-1 edges are walls at threshold 1")
	assert.True(t, math.IsInf(dist["d"], 1))
}

func TestDijkstra_SelfLoopAndZeroCost(t *testing.T) {
	g := weighted(t, []string{"a", "b"}, wedge{"a", "a", 0}, wedge{"a", "b", 0})
	dist, _, err := dijkstra.Dijkstra(g, "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 0, "b": 0}, dist)
}
