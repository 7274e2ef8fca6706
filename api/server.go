// Package api exposes a persisted database over HTTP.
//
// Routes:
//
//	GET    /health
//	GET    /metrics
//	GET    /stats
//	POST   /collections                      {"name"}
//	DELETE /entries/{name}?kind=node|collection
//	POST   /nodes                            {"collection", "key", "data"}
//	DELETE /collections/{name}/nodes/{key}
//	POST   /relations                        {"from", "to", "by", "bidirectional"}
//	DELETE /relations                        {"from", "to", "bidirectional"}
//	GET    /related?collection=&key=&by=
//	GET    /difference?collection=&key=&direct=&indirect=
//	GET    /path?from=&from_collection=&to=&to_collection=
//	GET    /associations
//	POST   /import?format=json|yaml
//	POST   /wipe
//
// Errors are {"error": "..."} with 400 for invalid input, 404 for missing
// entries and 409 for duplicates.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/katalvlaran/relgraph/persisted"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	db      *persisted.Database
	log     *zap.Logger
	metrics *httpMetrics
}

// New creates a Server over db. HTTP collectors join db's metrics registry.
func New(db *persisted.Database, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		db:      db,
		log:     log,
		metrics: newHTTPMetrics(db.Metrics().Registry()),
	}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(s.db.Metrics().Registry(), promhttp.HandlerOpts{}))
	r.Get("/stats", s.Stats)

	r.Post("/collections", s.CreateCollection)
	r.Delete("/collections/{name}/nodes/{key}", s.DeleteNode)
	r.Delete("/entries/{name}", s.DeleteEntry)
	r.Post("/nodes", s.CreateNode)
	r.Post("/relations", s.CreateRelation)
	r.Delete("/relations", s.DeleteRelation)

	r.Get("/related", s.Related)
	r.Get("/difference", s.Difference)
	r.Get("/path", s.Path)
	r.Get("/associations", s.Associations)

	r.Post("/import", s.Import)
	r.Post("/wipe", s.Wipe)

	return r
}

// httpMetrics counts requests by route pattern.
type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	m := &httpMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.requests = registerOrReuse(reg, m.requests)
	m.duration = registerOrReuse(reg, m.duration)

	return m
}

// registerOrReuse registers c, or returns the collector already registered
// under the same description.
func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}

	return c
}

// observe records metrics and an access log line per request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		took := time.Since(start)
		s.metrics.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		s.metrics.duration.WithLabelValues(r.Method, route).Observe(took.Seconds())
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("took", took),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
