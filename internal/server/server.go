// internal/server/server.go
// Package server hosts the leaderboard page over HTTP. Every page request is a
// fresh mount: it gets its own view, which reads the source exactly once.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/mwiater/ccboard/internal/leaderboard"
	"github.com/mwiater/ccboard/internal/logging"
	"github.com/mwiater/ccboard/internal/view"
)

// Config holds the HTTP server configuration.
type Config struct {
	Addr    string
	Source  string
	Root    string
	Timeout time.Duration
	View    view.Options
	// Client is used when Source is an http(s) URL.
	Client *http.Client
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg Config
	srv *http.Server
	mux *http.ServeMux
}

type errResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// New creates a server and registers its routes.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.Source == "" {
		cfg.Source = leaderboard.DefaultSource
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}

	mux := http.NewServeMux()
	s := &Server{
		cfg: cfg,
		mux: mux,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	if s.servesDocument() {
		s.mux.HandleFunc("GET "+s.cfg.Source, s.handleDocument)
	}
}

// servesDocument reports whether the source is a root-relative local file that
// the server should also expose at the same path. Directory-like sources such
// as "/" or "/data/" are never exposed.
func (s *Server) servesDocument() bool {
	src := s.cfg.Source
	if !strings.HasPrefix(src, "/") || strings.HasSuffix(src, "/") || strings.ContainsAny(src, "{}") {
		return false
	}
	return path.Ext(src) != ""
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.LogEvent("listening on %s (source=%s)", s.srv.Addr, s.cfg.Source)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logging.LogEvent("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()

	v := view.New(leaderboard.NewFetcher(s.cfg.Source, s.cfg.Root, s.cfg.Client), s.cfg.View)
	v.Load(ctx)

	var buf bytes.Buffer
	if err := v.Render(&buf); err != nil {
		logging.LogEvent("render error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errResp{OK: false, Error: "render failed"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	file := leaderboard.ResolvePath(s.cfg.Source, s.cfg.Root)
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	http.ServeFile(w, r, file)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
