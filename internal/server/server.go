package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portcheck/internal/logger"
	"portcheck/internal/models"
)

// Checker runs a single port check.
type Checker interface {
	Check(ctx context.Context, target models.Target) (models.CheckResult, error)
}

// Server exposes single port checks over HTTP and websocket.
type Server struct {
	httpServer *http.Server
	checker    Checker
	defaults   models.Target
	maxTimeout time.Duration
}

// New creates a configured HTTP server. Fields missing from a request fall
// back to defaults.
func New(addr string, checker Checker, defaults models.Target) *Server {
	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		checker:    checker,
		defaults:   defaults,
		maxTimeout: time.Minute,
	}
	s.registerRoutes(mux)
	return s
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run blocks and serves HTTP traffic.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/check", s.handleCheck)
	mux.HandleFunc("/api/check/ws", s.handleCheckWS)
}

// checkRequest is the wire form of a target. Timeout uses Go duration syntax.
// A nil Port means the field was absent.
type checkRequest struct {
	Host    string `json:"host"`
	Port    *int   `json:"port"`
	Timeout string `json:"timeout"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	q := r.URL.Query()
	req := checkRequest{
		Host:    q.Get("host"),
		Timeout: q.Get("timeout"),
	}
	if q.Has("port") {
		port, err := strconv.Atoi(q.Get("port"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "port must be a number"})
			return
		}
		req.Port = &port
	}

	result, err := s.runCheck(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) runCheck(ctx context.Context, req checkRequest) (models.CheckResult, error) {
	target, err := s.resolveTarget(req)
	if err != nil {
		return models.CheckResult{}, err
	}

	result, err := s.checker.Check(ctx, target)
	if err != nil {
		return models.CheckResult{}, err
	}

	l := logger.WithComponent("server")
	l.Info().
		Str("host", result.Host).
		Int("port", result.Port).
		Str("outcome", string(result.Outcome)).
		Msg("check served")
	return result, nil
}

func (s *Server) resolveTarget(req checkRequest) (models.Target, error) {
	target := s.defaults
	if host := strings.TrimSpace(req.Host); host != "" {
		target.Host = host
	}
	if req.Port != nil {
		target.Port = *req.Port
	}
	if req.Timeout != "" {
		timeout, err := time.ParseDuration(req.Timeout)
		if err != nil {
			return models.Target{}, fmt.Errorf("%w: timeout: %v", models.ErrInvalidTarget, err)
		}
		target.Timeout = timeout
	}
	if target.Timeout > s.maxTimeout {
		target.Timeout = s.maxTimeout
	}
	if err := target.Validate(); err != nil {
		return models.Target{}, err
	}
	return target, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
