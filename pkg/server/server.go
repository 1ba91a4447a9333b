// Package server exposes the placement pipeline over HTTP.
//
// The server solves scenes posted as JSON, stores the resulting layouts,
// and renders stored layouts on demand:
//
//	POST   /v1/layouts              solve a scene and store the layout
//	GET    /v1/layouts              list stored layouts
//	GET    /v1/layouts/{id}         fetch a stored layout
//	GET    /v1/layouts/{id}/render  render a stored layout (?format=svg)
//	DELETE /v1/layouts/{id}         remove a stored layout
//	GET    /healthz                 liveness probe
//
// Storage backends implement [Store]; [MemoryStore] keeps layouts in
// process memory and [MongoStore] persists them in MongoDB.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/placardlabs/placard/pkg/buildinfo"
	"github.com/placardlabs/placard/pkg/cache"
	"github.com/placardlabs/placard/pkg/errors"
	"github.com/placardlabs/placard/pkg/observability"
	"github.com/placardlabs/placard/pkg/pipeline"
	"github.com/placardlabs/placard/pkg/scene"
)

// shutdownTimeout bounds graceful shutdown on context cancellation.
const shutdownTimeout = 10 * time.Second

// defaultListLimit caps list responses when no limit is given.
const defaultListLimit = 50

// Config configures a Server.
type Config struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string

	// Store holds solved layouts. Defaults to an in-memory store.
	Store Store

	// Runner executes the solve and render stages. Defaults to an
	// uncached runner.
	Runner *pipeline.Runner

	// Logger receives request and lifecycle logs. Defaults to the
	// package-level logger.
	Logger *log.Logger
}

// Server is the HTTP front end for the placement pipeline.
type Server struct {
	addr   string
	store  Store
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a Server and mounts its routes.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}

	s := &Server{
		addr:   cfg.Addr,
		store:  cfg.Store,
		runner: cfg.Runner,
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler with all routes and middleware mounted.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.handleSolve)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/render", s.handleRender)
		r.Delete("/{id}", s.handleDelete)
	})
	return r
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestID returns the request ID assigned by the server middleware,
// or an empty string if none is set.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID assigns each request a UUID, exposed via [RequestID] and the
// X-Request-ID response header. An incoming X-Request-ID is preserved.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// logRequests logs each request and feeds the server observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, rec.status, duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", duration,
			"request_id", RequestID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

// solveRequest is the body of POST /v1/layouts.
type solveRequest struct {
	Scene   *scene.Scene     `json:"scene"`
	Options pipeline.Options `json:"options"`
}

// solveResponse is the body of a successful POST /v1/layouts.
type solveResponse struct {
	ID         string `json:"id"`
	SceneHash  string `json:"scene_hash"`
	LayoutHash string `json:"layout_hash"`
	Labels     int    `json:"labels"`
	Overlaps   int    `json:"overlaps"`
	Cached     bool   `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Scene == nil {
		s.writeError(w, r, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidInput, "request body must contain a scene"))
		return
	}

	ctx := r.Context()
	l, hit, err := s.runner.SolveWithCacheInfo(ctx, req.Scene, req.Options)
	if err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}

	rec := &Record{
		ID:        uuid.NewString(),
		Layout:    l,
		CreatedAt: time.Now().UTC(),
	}
	if data, err := scene.MarshalScene(req.Scene); err == nil {
		rec.SceneHash = cache.Hash(data)
	}
	if data, err := scene.MarshalLayout(l); err == nil {
		rec.LayoutHash = cache.Hash(data)
	}
	if err := s.store.Put(ctx, rec); err != nil {
		s.writeError(w, r, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeInternal, err, "store layout"))
		return
	}

	writeJSON(w, http.StatusCreated, solveResponse{
		ID:         rec.ID,
		SceneHash:  rec.SceneHash,
		LayoutHash: rec.LayoutHash,
		Labels:     len(l.Labels),
		Overlaps:   l.Stats.Overlaps,
		Cached:     hit,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, http.StatusBadRequest,
				errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", raw))
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeInternal, err, "list layouts"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"layouts": recs,
		"count":   len(recs),
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	opts := pipeline.Options{Formats: []string{format}}
	if raw := q.Get("scale"); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil || scale <= 0 {
			s.writeError(w, r, http.StatusBadRequest,
				errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", raw))
			return
		}
		opts.Scale = scale
	}
	if raw := q.Get("width"); raw != "" {
		width, err := strconv.Atoi(raw)
		if err != nil || width <= 0 {
			s.writeError(w, r, http.StatusBadRequest,
				errors.New(errors.ErrCodeInvalidInput, "invalid width %q", raw))
			return
		}
		opts.PNGWidth = width
	}
	opts.Refresh = q.Get("refresh") == "true"

	artifacts, err := s.runner.RenderArtifacts(r.Context(), rec.Layout, opts)
	if err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), rec.ID); err != nil {
		s.writeError(w, r, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeInternal, err, "delete layout"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// lookup loads the record addressed by the {id} URL parameter, writing the
// error response itself when the record can't be served.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*Record, bool) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeInternal, err, "load layout %s", id))
		return nil, false
	}
	if rec == nil {
		s.writeError(w, r, http.StatusNotFound,
			errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id))
		return nil, false
	}
	return rec, true
}

// =============================================================================
// Response Helpers
// =============================================================================

// errorResponse is the body of every error response.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.Server().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

// statusForError maps error codes from the solve and render stages to
// HTTP statuses.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidBox, errors.ErrCodeInvalidSector,
		errors.ErrCodeInvalidElement, errors.ErrCodeInvalidScene, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeLayoutNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// contentTypeFor returns the MIME type for a rendered artifact format.
func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/json"
	}
}
