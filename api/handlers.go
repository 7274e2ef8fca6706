package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/katalvlaran/relgraph/bfs"
	"github.com/katalvlaran/relgraph/core"
	"github.com/katalvlaran/relgraph/migrate"
	"github.com/katalvlaran/relgraph/store"
)

// NodeView is the JSON form of a node.
type NodeView struct {
	Key        string         `json:"key"`
	Collection string         `json:"collection,omitempty"`
	Data       map[string]any `json:"data"`
}

func viewOf(n *store.Node) NodeView {
	return NodeView{Key: n.ID(), Collection: n.Collection(), Data: n.Payload()}
}

// CreateCollectionRequest is the body of POST /collections.
type CreateCollectionRequest struct {
	Name string `json:"name"`
}

// CreateNodeRequest is the body of POST /nodes.
type CreateNodeRequest struct {
	Collection string         `json:"collection,omitempty"`
	Key        string         `json:"key,omitempty"`
	Data       map[string]any `json:"data"`
}

// CreateRelationRequest is the body of POST /relations.
type CreateRelationRequest struct {
	From          store.Ref `json:"from"`
	To            store.Ref `json:"to"`
	By            string    `json:"by"`
	Bidirectional bool      `json:"bidirectional,omitempty"`
}

// DeleteRelationRequest is the body of DELETE /relations.
type DeleteRelationRequest struct {
	From          store.Ref `json:"from"`
	To            store.Ref `json:"to"`
	Bidirectional bool      `json:"bidirectional,omitempty"`
}

// CountView is one entry of GET /difference.
type CountView struct {
	Node  NodeView `json:"node"`
	Count int      `json:"count"`
}

// AssociationView is one edge value and its pairs in GET /associations.
type AssociationView struct {
	Value core.EdgeValue `json:"value"`
	Pairs [][2]store.Ref `json:"pairs"`
}

// StatsView is the body of GET /stats.
type StatsView struct {
	Nodes        int    `json:"nodes"`
	Collections  int    `json:"collections"`
	Associations int    `json:"associations"`
	Edges        int    `json:"edges"`
	SaveError    string `json:"save_error,omitempty"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok"}
	if err := s.db.SaveErr(); err != nil {
		body["status"] = "degraded"
		body["save_error"] = err.Error()
	}
	writeJSON(w, http.StatusOK, body)
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	db := s.db.Store()
	assoc, err := db.NumAssociations()
	if err != nil {
		s.writeError(w, err)
		return
	}
	v := StatsView{
		Nodes:        db.NumNodes(),
		Collections:  len(db.Collections()),
		Associations: assoc,
		Edges:        db.Graph().EdgeCount(),
	}
	if err := s.db.SaveErr(); err != nil {
		v.SaveError = err.Error()
	}
	writeJSON(w, http.StatusOK, v)
}

// CreateCollection handles POST /collections.
func (s *Server) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if !s.decode(w, r, &req) {
		return
	}
	c, err := s.db.Add(req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": c.Name()})
}

// DeleteEntry handles DELETE /entries/{name}.
func (s *Server) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	kind, err := store.ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		return
	}
	if err = s.db.Remove(chi.URLParam(r, "name"), kind); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateNode handles POST /nodes.
func (s *Server) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if !s.decode(w, r, &req) {
		return
	}
	var payload any // a missing data field must reach the store as nil
	if req.Data != nil {
		payload = req.Data
	}
	n, err := s.db.InsertAt(req.Collection, payload, req.Key)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(n))
}

// DeleteNode handles DELETE /collections/{name}/nodes/{key}.
func (s *Server) DeleteNode(w http.ResponseWriter, r *http.Request) {
	if err := s.db.RemoveNode(chi.URLParam(r, "name"), chi.URLParam(r, "key")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateRelation handles POST /relations.
func (s *Server) CreateRelation(w http.ResponseWriter, r *http.Request) {
	var req CreateRelationRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.By == "" {
		writeJSON(w, http.StatusBadRequest, errorBody(errors.New("by is required")))
		return
	}
	if err := s.db.Relate(req.From, req.To, req.By, req.Bidirectional); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// DeleteRelation handles DELETE /relations.
func (s *Server) DeleteRelation(w http.ResponseWriter, r *http.Request) {
	var req DeleteRelationRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.db.Unrelate(req.From, req.To, req.Bidirectional); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Related handles GET /related.
func (s *Server) Related(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := s.db.Store().Resolve(store.Ref{Key: q.Get("key"), Collection: q.Get("collection")})
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := []NodeView{}
	for t := range n.RelatedBy(q.Get("by")) {
		out = append(out, viewOf(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// Difference handles GET /difference. Entries are ordered by count, highest
// first, then by address.
func (s *Server) Difference(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := s.db.Store().Resolve(store.Ref{Key: q.Get("key"), Collection: q.Get("collection")})
	if err != nil {
		s.writeError(w, err)
		return
	}
	counts, err := n.RelatedDifference(q.Get("direct"), q.Get("indirect"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]CountView, 0, len(counts))
	for node, c := range counts {
		out = append(out, CountView{Node: viewOf(node), Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		a, b := out[i].Node, out[j].Node
		if a.Collection != b.Collection {
			return a.Collection < b.Collection
		}
		return a.Key < b.Key
	})
	writeJSON(w, http.StatusOK, out)
}

// Path handles GET /path: the fewest-hop path between two nodes.
func (s *Server) Path(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	db := s.db.Store()
	from, err := db.Resolve(store.Ref{Key: q.Get("from"), Collection: q.Get("from_collection")})
	if err != nil {
		s.writeError(w, err)
		return
	}
	to, err := db.Resolve(store.Ref{Key: q.Get("to"), Collection: q.Get("to_collection")})
	if err != nil {
		s.writeError(w, err)
		return
	}
	refs, err := bfs.FindShortestPath(db.Graph(), from.Ref(), to.Ref())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]store.Ref, 0, len(refs))
	for _, ref := range refs {
		if n, ok := db.NodeByRef(ref); ok {
			out = append(out, n.Address())
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Associations handles GET /associations. Values are ordered by their
// string form.
func (s *Server) Associations(w http.ResponseWriter, r *http.Request) {
	assoc, err := s.db.Store().Associations()
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]AssociationView, 0, len(assoc))
	for v, pairs := range assoc {
		av := AssociationView{Value: v, Pairs: make([][2]store.Ref, 0, len(pairs))}
		for _, p := range pairs {
			av.Pairs = append(av.Pairs, [2]store.Ref{p.From.Address(), p.To.Address()})
		}
		out = append(out, av)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value.String() < out[j].Value.String() })
	writeJSON(w, http.StatusOK, out)
}

// Import handles POST /import with a migration document as the body.
func (s *Server) Import(w http.ResponseWriter, r *http.Request) {
	format := migrate.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = migrate.FormatJSON
	}
	doc, err := migrate.Decode(r.Body, format)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		return
	}
	rep, err := migrate.Apply(r.Context(), s.db, doc, s.log)
	if err != nil {
		status := statusOf(err)
		writeJSON(w, status, map[string]any{"error": err.Error(), "report": rep})
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// Wipe handles POST /wipe.
func (s *Server) Wipe(w http.ResponseWriter, r *http.Request) {
	s.db.Wipe()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(fmt.Errorf("invalid JSON body: %w", err)))
		return false
	}

	return true
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, core.ErrUnknownVertex),
		errors.Is(err, core.ErrMissingVertex),
		errors.Is(err, core.ErrNoEdge),
		errors.Is(err, bfs.ErrNoPath):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateCollection),
		errors.Is(err, store.ErrDuplicateKey),
		errors.Is(err, core.ErrDuplicateRelation),
		errors.Is(err, core.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidName),
		errors.Is(err, core.ErrInvalidPayload),
		errors.Is(err, core.ErrInvalidEdgeValue),
		errors.Is(err, migrate.ErrInvalidDocument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, errorBody(err))
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
