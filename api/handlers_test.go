package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/relgraph/api"
	"github.com/katalvlaran/relgraph/persisted"
	"github.com/katalvlaran/relgraph/snapshot"
	"github.com/katalvlaran/relgraph/store"
)

func setup(t *testing.T) (http.Handler, *persisted.Database) {
	t.Helper()
	db, err := persisted.Open(context.Background(), snapshot.NewMemoryStore(),
		persisted.WithMetrics(persisted.NewMetrics("apitest")))
	require.NoError(t, err)

	return api.New(db, zaptest.NewLogger(t)).Routes(), db
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func decodeInto[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), w.Body.String())

	return v
}

// seed builds people/{ann,bob,cat} with ann→bob→cat FRIEND chains.
func seed(t *testing.T, h http.Handler) {
	t.Helper()
	require.Equal(t, http.StatusCreated, do(t, h, "POST", "/collections", `{"name":"people"}`).Code)
	for _, k := range []string{"ann", "bob", "cat"} {
		w := do(t, h, "POST", "/nodes", `{"collection":"people","key":"`+k+`","data":{"name":"`+k+`"}}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	for _, pair := range [][2]string{{"ann", "bob"}, {"bob", "cat"}} {
		body := `{"from":{"key":"` + pair[0] + `","belongs_to":"people"},"to":{"key":"` + pair[1] + `","belongs_to":"people"},"by":"FRIEND"}`
		w := do(t, h, "POST", "/relations", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h, _ := setup(t)
	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeInto[map[string]string](t, w)["status"])
}

func TestStatusMapping(t *testing.T) {
	h, _ := setup(t)
	seed(t, h)

	cases := []struct {
		name, method, target, body string
		want                       int
	}{
		{"short collection name", "POST", "/collections", `{"name":"ab"}`, http.StatusBadRequest},
		{"duplicate collection", "POST", "/collections", `{"name":"people"}`, http.StatusConflict},
		{"broken json", "POST", "/collections", `{`, http.StatusBadRequest},
		{"missing data", "POST", "/nodes", `{"key":"x"}`, http.StatusBadRequest},
		{"unknown collection", "POST", "/nodes", `{"collection":"nope","data":{}}`, http.StatusNotFound},
		{"duplicate key", "POST", "/nodes", `{"collection":"people","key":"ann","data":{}}`, http.StatusConflict},
		{"duplicate relation", "POST", "/relations",
			`{"from":{"key":"ann","belongs_to":"people"},"to":{"key":"bob","belongs_to":"people"},"by":"X"}`, http.StatusConflict},
		{"relation without label", "POST", "/relations",
			`{"from":{"key":"ann","belongs_to":"people"},"to":{"key":"cat","belongs_to":"people"}}`, http.StatusBadRequest},
		{"missing entry", "DELETE", "/entries/ghost", "", http.StatusNotFound},
		{"bad kind", "DELETE", "/entries/people?kind=table", "", http.StatusBadRequest},
		{"missing node", "DELETE", "/collections/people/nodes/zed", "", http.StatusNotFound},
		{"missing relation", "DELETE", "/relations",
			`{"from":{"key":"cat","belongs_to":"people"},"to":{"key":"ann","belongs_to":"people"}}`, http.StatusNotFound},
		{"unknown related", "GET", "/related?collection=people&key=zed&by=FRIEND", "", http.StatusNotFound},
		{"no path", "GET", "/path?from=cat&from_collection=people&to=ann&to_collection=people", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, h, tc.method, tc.target, tc.body)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestQueries(t *testing.T) {
	h, db := setup(t)
	seed(t, h)

	related := decodeInto[[]api.NodeView](t, do(t, h, "GET", "/related?collection=people&key=ann&by=FRIEND", ""))
	require.Len(t, related, 1)
	assert.Equal(t, "bob", related[0].Key)

	diff := decodeInto[[]api.CountView](t, do(t, h, "GET", "/difference?collection=people&key=ann&direct=FRIEND&indirect=FRIEND", ""))
	require.Len(t, diff, 1)
	assert.Equal(t, "cat", diff[0].Node.Key)
	assert.Equal(t, 1, diff[0].Count)

	path := decodeInto[[]store.Ref](t, do(t, h, "GET", "/path?from=ann&from_collection=people&to=cat&to_collection=people", ""))
	assert.Equal(t, []store.Ref{
		{Key: "ann", Collection: "people"},
		{Key: "bob", Collection: "people"},
		{Key: "cat", Collection: "people"},
	}, path)

	assoc := decodeInto[[]api.AssociationView](t, do(t, h, "GET", "/associations", ""))
	require.Len(t, assoc, 1)
	assert.Len(t, assoc[0].Pairs, 2)

	stats := decodeInto[api.StatsView](t, do(t, h, "GET", "/stats", ""))
	assert.Equal(t, api.StatsView{Nodes: 3, Collections: 1, Associations: 2, Edges: 2}, stats)
	assert.Equal(t, 3, db.Store().NumNodes())
}

func TestDeleteAndWipe(t *testing.T) {
	h, db := setup(t)
	seed(t, h)

	assert.Equal(t, http.StatusNoContent, do(t, h, "DELETE", "/collections/people/nodes/bob", "").Code)
	assert.Equal(t, 2, db.Store().NumNodes())
	assert.Equal(t, 0, db.Store().Graph().EdgeCount())

	assert.Equal(t, http.StatusNoContent, do(t, h, "DELETE", "/entries/people?kind=collection", "").Code)
	assert.Equal(t, 0, db.Store().NumNodes())

	seed(t, h)
	assert.Equal(t, http.StatusNoContent, do(t, h, "POST", "/wipe", "").Code)
	assert.Equal(t, 0, db.Store().NumNodes())
}

func TestDeleteRelation(t *testing.T) {
	h, db := setup(t)
	seed(t, h)
	annBob := `{"from":{"key":"ann","belongs_to":"people"},"to":{"key":"bob","belongs_to":"people"}}`

	w := do(t, h, "DELETE", "/relations", annBob)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	assert.Equal(t, 1, db.Store().Graph().EdgeCount())
	assert.Empty(t, decodeInto[[]api.NodeView](t, do(t, h, "GET", "/related?collection=people&key=ann&by=FRIEND", "")))

	assert.Equal(t, http.StatusNotFound, do(t, h, "DELETE", "/relations", annBob).Code)

	// bob→cat has no mirror, so nothing is removed
	bobCat := `{"from":{"key":"bob","belongs_to":"people"},"to":{"key":"cat","belongs_to":"people"},"bidirectional":true}`
	assert.Equal(t, http.StatusNotFound, do(t, h, "DELETE", "/relations", bobCat).Code)
	assert.Equal(t, 1, db.Store().Graph().EdgeCount())
	require.NoError(t, db.SaveErr())
}

func TestImport(t *testing.T) {
	h, db := setup(t)
	doc := `
collections: [teams]
nodes:
  - {key: core, belongs_to: teams, data: {size: 3}}
  - {key: lead, data: {}}
relations:
  - {from: {key: lead}, to: {key: core, belongs_to: teams}, by: LEADS}
`
	w := do(t, h, "POST", "/import?format=yaml", doc)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rep := decodeInto[map[string]int](t, w)
	assert.Equal(t, 2, rep["nodes"])
	assert.Equal(t, 2, db.Store().NumNodes())

	w = do(t, h, "POST", "/import", `{"collections":["no"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/import", `{"nodes":[{"key":"lead","data":{}}]}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"report"`)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := setup(t)
	seed(t, h)

	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "apitest_snapshot_saves_total")
	assert.Contains(t, body, `http_requests_total{method="POST",route="/nodes",status="201"} 3`)
}
