package cli

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/sbusard/graphlayout/pkg/cache"
	"github.com/sbusard/graphlayout/pkg/errors"
	"github.com/sbusard/graphlayout/pkg/graph"
	"github.com/sbusard/graphlayout/pkg/observability"
	"github.com/sbusard/graphlayout/pkg/pipeline"
	"github.com/sbusard/graphlayout/pkg/store"
)

// maxRequestBody caps layout request bodies at 10 MiB.
const maxRequestBody = 10 << 20

// Server exposes the layout pipeline over HTTP.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server backed by the given cache and store.
func NewServer(c cache.Cache, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: pipeline.NewRunner(c, logger),
		store:  st,
		logger: logger,
	}
}

// Handler builds the chi router with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/svg", s.handleSVG)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// requestID assigns each request a UUID, echoed in the X-Request-ID header.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// logRequests logs each request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Millisecond),
			"request_id", w.Header().Get("X-Request-ID"))
	})
}

// =============================================================================
// Request / Response Types
// =============================================================================

// layoutRequest is the body of POST /layouts.
type layoutRequest struct {
	Graph   graph.Graph      `json:"graph"`
	Options pipeline.Options `json:"options,omitzero"`
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "malformed request body: %v", err))
		return
	}

	// The server stores positions itself; artifacts are rendered on read.
	req.Options.Formats = []string{pipeline.FormatJSON}
	if req.Options.Engine == "" {
		req.Options.Engine = pipeline.DefaultEngine
	}
	res, err := s.runner.Execute(r.Context(), req.Graph, req.Options)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	rec := store.Record{
		ID:         store.NewID(),
		Graph:      res.Graph,
		Engine:     req.Options.Engine,
		MeanForce:  res.Stats.MeanForce,
		Iterations: res.Stats.Iterations,
		Converged:  res.Stats.Converged,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), rec.Graph, pipeline.Options{
		Formats: []string{pipeline.FormatSVG},
	})
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

// statusFor maps pipeline and store errors to HTTP status codes.
func statusFor(err error) int {
	if stderrors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidEngine, errors.ErrCodeUnknownNode:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeLayoutNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
