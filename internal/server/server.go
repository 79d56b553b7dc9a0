// Package server exposes the service over the same HTTP contract the remote
// backend speaks, so the frontend can point at either interchangeably.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jeremyhunt/jobscout/internal/job"
	"github.com/jeremyhunt/jobscout/internal/query"
	"github.com/jeremyhunt/jobscout/internal/service"
)

type Server struct {
	svc    *service.Service
	logger *zap.Logger
}

func New(svc *service.Service, logger *zap.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/jobs/search", s.handleSearch)
	r.Post("/api/jobs/{id}/status", s.handleUpdateStatus)
	r.Get("/api/stats", s.handleStats)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := query.DefaultCriteria()
	criteria.Search = q.Get("search")
	if location := q.Get("location"); location != "" {
		criteria.Location = location
	}
	if sortBy := q.Get("sortBy"); sortBy != "" {
		criteria.SortBy = sortBy
	}

	offset := intParam(q.Get("offset"), 0)
	limit := intParam(q.Get("limit"), service.DefaultLimit)

	s.writeJSON(w, http.StatusOK, s.svc.Search(criteria, offset, limit))
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status job.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := s.svc.UpdateStatus(chi.URLParam(r, "id"), body.Status)
	if err != nil {
		if !body.Status.Valid() {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	s.logger.Info("application status updated",
		zap.String("job_id", updated.ID),
		zap.String("status", string(body.Status)),
	)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"job":  updated,
		"jobs": s.svc.Jobs(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Stats())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
