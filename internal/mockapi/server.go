// Package mockapi is an in-memory implementation of the user collection
// endpoint. It backs the mock-server command and the transport tests.
package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rhystmorgan/clientDesk/internal/models"
)

type failure struct {
	status int
	body   string
}

type Server struct {
	repo       *Repository
	metrics    *Metrics
	logger     *zap.Logger
	collection string

	mu       sync.Mutex
	failures []failure
}

func NewServer(repo *Repository, collection string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if collection == "" {
		collection = "/api/users"
	}

	s := &Server{
		repo:       repo,
		metrics:    NewMetrics(),
		logger:     logger.Named("mockapi"),
		collection: "/" + strings.Trim(collection, "/"),
	}
	s.metrics.RecordsStored.Set(float64(repo.Len()))
	return s
}

// FailNext makes the next request answer with the given status and body
// instead of touching the repository. Calls queue up.
func (s *Server) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = append(s.failures, failure{status: status, body: body})
}

func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) Repository() *Repository {
	return s.repo
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	r.Route(s.collection, func(r chi.Router) {
		r.Use(s.injectFailures)
		r.Get("/", s.instrument("list", s.handleList))
		r.Post("/", s.instrument("create", s.handleCreate))
		r.Put("/{id}", s.instrument("replace", s.handleReplace))
		r.Delete("/{id}", s.instrument("delete", s.handleDelete))
	})

	return r
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var f *failure
		if len(s.failures) > 0 {
			f = &s.failures[0]
			s.failures = s.failures[1:]
		}
		s.mu.Unlock()

		if f != nil {
			s.metrics.RequestsTotal.WithLabelValues("injected", strconv.Itoa(f.status)).Inc()
			http.Error(w, f.body, f.status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) instrument(op string, h func(http.ResponseWriter, *http.Request) int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		code := h(w, r)
		s.metrics.RequestsTotal.WithLabelValues(op, strconv.Itoa(code)).Inc()
		s.metrics.RequestDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
		s.metrics.RecordsStored.Set(float64(s.repo.Len()))
		s.logger.Debug("served",
			zap.String("op", op),
			zap.Int("code", code),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) int {
	return writeJSON(w, http.StatusOK, s.repo.List())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) int {
	var record models.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		return writeText(w, http.StatusBadRequest, "invalid request body")
	}

	created, err := s.repo.Create(record)
	if err != nil {
		return s.writeRepoError(w, err)
	}
	return writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) int {
	id, ok := parseID(r)
	if !ok {
		return writeText(w, http.StatusBadRequest, "invalid id")
	}

	var record models.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		return writeText(w, http.StatusBadRequest, "invalid request body")
	}
	record.ID = id

	updated, err := s.repo.Replace(record)
	if err != nil {
		return s.writeRepoError(w, err)
	}
	return writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) int {
	id, ok := parseID(r)
	if !ok {
		return writeText(w, http.StatusBadRequest, "invalid id")
	}

	if err := s.repo.Delete(id); err != nil {
		return s.writeRepoError(w, err)
	}
	w.WriteHeader(http.StatusNoContent)
	return http.StatusNoContent
}

func (s *Server) writeRepoError(w http.ResponseWriter, err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return writeText(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicateEmail):
		return writeText(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("repository failure", zap.Error(err))
		return writeText(w, http.StatusInternalServerError, "internal error")
	}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
	return status
}

func writeText(w http.ResponseWriter, status int, text string) int {
	http.Error(w, text, status)
	return status
}
