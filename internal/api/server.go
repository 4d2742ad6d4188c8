// Package api provides the REST and WebSocket server over the query
// pipeline. Clients POST a concept query and may subscribe to the
// progress feed to watch the engine fan-out complete.
package api

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	apperrors "bcnav/internal/errors"
	"bcnav/internal/logging"
	"bcnav/internal/navigator"
	"bcnav/internal/store"
)

// Server serves the REST API and WebSocket progress feed.
type Server struct {
	nav   *navigator.Navigator
	store *store.Store
	hub   *Hub
	addr  string
}

// New builds a Server. The hub should also be registered as the
// navigator's Observer so queries feed the progress socket.
func New(nav *navigator.Navigator, st *store.Store, hub *Hub, addr string) *Server {
	if hub == nil {
		hub = NewHub()
	}
	return &Server{nav: nav, store: st, hub: hub, addr: addr}
}

// Hub returns the server's WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Routes builds the API route table.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/navigate", s.handleNavigate)
	mux.HandleFunc("GET /api/resolve", s.handleResolve)
	mux.HandleFunc("GET /api/verse", s.handleVerse)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return s.logRequests(mux)
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	go s.hub.Run()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("api_listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack passes through to the underlying writer so the WebSocket
// upgrade works behind the logging wrapper.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return h.Hijack()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.HTTPRequest(r.Method, r.URL.Path, r.RemoteAddr, rec.status, time.Since(start))
	})
}

// errorStatus maps the error taxonomy onto HTTP status codes.
func errorStatus(err error) (int, string) {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case apperrors.Is(err, apperrors.ErrUnknownBook):
		return http.StatusBadRequest, "UNKNOWN_BOOK"
	case apperrors.Is(err, apperrors.ErrAmbiguousBook):
		return http.StatusBadRequest, "AMBIGUOUS_BOOK"
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case apperrors.Is(err, apperrors.ErrTotalFailure):
		return http.StatusServiceUnavailable, "TOTAL_FAILURE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
