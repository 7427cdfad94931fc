// Package server exposes the exporter over HTTP.
//
// Routes:
//
//	GET  /health
//	GET  /api/profiles
//	POST /api/export/{format}                 body: JSON manuscript
//	GET  /api/projects/{id}/export/{format}   only with WithProjects
//
// Export failures are reported as a single generic JSON error; details go
// to the log, never to the client.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	tccexport "github.com/alnah/go-tccexport"
	"github.com/alnah/go-tccexport/internal/store"
)

// DefaultMaxBodyBytes bounds the manuscript accepted by POST /api/export.
const DefaultMaxBodyBytes = 8 << 20

const shutdownTimeout = 10 * time.Second

// Client-facing error messages.
const (
	msgExportFailed      = "export failed"
	msgInvalidManuscript = "invalid manuscript"
	msgUnknownFormat     = "unknown format"
	msgProjectNotFound   = "project not found"
)

// Projects resolves stored projects by ID. *store.Store satisfies it.
type Projects interface {
	Source(id string) tccexport.ManuscriptSource
}

// Profiles lists the formatting profiles available to clients.
type Profiles interface {
	ListProfiles() ([]string, error)
}

// Server serves export requests.
type Server struct {
	exporter *tccexport.Exporter
	projects Projects
	profiles Profiles
	logger   *slog.Logger
	maxBody  int64
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithProjects enables the project export route.
func WithProjects(p Projects) Option {
	return func(s *Server) { s.projects = p }
}

// WithProfiles enables GET /api/profiles.
func WithProfiles(p Profiles) Option {
	return func(s *Server) { s.profiles = p }
}

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxBodyBytes bounds request bodies. Values <= 0 keep the default.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New creates a Server backed by exporter.
func New(exporter *tccexport.Exporter, opts ...Option) *Server {
	s := &Server{
		exporter: exporter,
		logger:   slog.New(slog.DiscardHandler),
		maxBody:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		if s.profiles != nil {
			r.Get("/profiles", s.handleProfiles)
		}
		r.Post("/export/{format}", s.handleExport)
		if s.projects != nil {
			r.Get("/projects/{id}/export/{format}", s.handleProjectExport)
		}
	})
	s.router = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	names, err := s.profiles.ListProfiles()
	if err != nil {
		s.logger.Warn("list profiles", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, http.StatusInternalServerError, "listing profiles failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": names})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r)
	if !ok {
		return
	}

	var m tccexport.Manuscript
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		s.logger.Debug("decode manuscript", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, http.StatusBadRequest, msgInvalidManuscript)
		return
	}

	art, err := s.exporter.Export(r.Context(), format, m)
	s.respond(w, r, art, err)
}

func (s *Server) handleProjectExport(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	art, err := s.exporter.ExportSource(r.Context(), format, s.projects.Source(id))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgProjectNotFound)
		return
	}
	s.respond(w, r, art, err)
}

// format resolves the {format} URL parameter, answering 404 when unknown.
func (s *Server) format(w http.ResponseWriter, r *http.Request) (tccexport.Format, bool) {
	f, err := tccexport.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, http.StatusNotFound, msgUnknownFormat)
		return "", false
	}
	return f, true
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, art *tccexport.Artifact, err error) {
	if err != nil {
		s.logger.Warn("export request failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, http.StatusInternalServerError, msgExportFailed)
		return
	}

	h := w.Header()
	h.Set("Content-Type", art.Format.ContentType())
	h.Set("Content-Length", strconv.Itoa(len(art.Data)))
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": art.Filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.Data)
}

// logRequests logs one line per request at info level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
