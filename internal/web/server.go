// Package web provides the JSON API server for venue-finder.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/evcraddock/venue-finder/internal/logging"
	"github.com/evcraddock/venue-finder/internal/venue"
)

// Server is the venue API HTTP server.
type Server struct {
	store   *venue.Store
	mux     *http.ServeMux
	handler http.Handler
}

// NewServer creates a server backed by store.
func NewServer(store *venue.Store) *Server {
	s := &Server{
		store: store,
		mux:   http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/venues", s.apiListVenues)
	s.mux.HandleFunc("POST /api/venues", s.apiCreateVenue)
	s.mux.HandleFunc("GET /api/venues/search", s.apiSearchVenues)
	s.mux.HandleFunc("GET /api/venues/type/{type}", s.apiListVenuesByType)
	s.mux.HandleFunc("POST /api/venues/refresh", s.apiRefreshVenues)
	s.mux.HandleFunc("GET /api/venues/{id}", s.apiGetVenue)
	s.mux.HandleFunc("PATCH /api/venues/{id}", s.apiUpdateVenue)
	s.mux.HandleFunc("DELETE /api/venues/{id}", s.apiDeleteVenue)

	s.handler = logging.RequestLogger(cors(recovery(s.mux)))
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealth reports liveness and when venues were last loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Status      string     `json:"status"`
		Timestamp   string     `json:"timestamp"`
		LastRefresh *time.Time `json:"lastRefresh"`
	}{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if t := s.store.LastRefresh(); !t.IsZero() {
		resp.LastRefresh = &t
	}
	apiJSON(w, resp, http.StatusOK)
}

// recovery turns handler panics into 500 responses.
func recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic recovered",
					"error", err,
					"request_id", logging.RequestID(r.Context()),
					"stack", string(debug.Stack()),
				)
				apiError(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// cors allows the browser map client to call the API from another origin.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
