package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cookievault/go-cookie-vault/internal/logger"
	"github.com/cookievault/go-cookie-vault/internal/store"
)

// StatusServer exposes the local sync-run history over HTTP so external
// processes (menu bar widgets, health checks) can display sync state
// without touching the remote or any secret.
type StatusServer struct {
	server *http.Server
	status store.StatusStore
	logger *logger.Logger
}

// NewStatusServer builds the server listening on address. It serves only
// plaintext run metadata; no cookie data and no credentials ever pass
// through it.
func NewStatusServer(address string, statusStore store.StatusStore, log *logger.Logger) *StatusServer {
	s := &StatusServer{
		status: statusStore,
		logger: log,
	}
	s.server = &http.Server{
		Addr:              address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *StatusServer) routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ping", s.ping)
	router.Get("/api/status", s.lastRun)
	router.Get("/api/status/history", s.history)

	return router
}

// RunServer blocks serving requests until Shutdown is called.
func (s *StatusServer) RunServer() {
	s.logger.Info().Str("address", s.server.Addr).Msg("status server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error().Err(err).Msg("status server stopped")
	}
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *StatusServer) Shutdown() {
	if err := s.server.Shutdown(context.Background()); err != nil {
		s.logger.Error().Err(err).Msg("status server shutdown")
	}
}

func (s *StatusServer) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// lastRun returns the most recent sync run, or 204 when no run has been
// recorded yet.
func (s *StatusServer) lastRun(w http.ResponseWriter, r *http.Request) {
	run, found, err := s.status.LastRun(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("last run lookup failed")
		http.Error(w, "status lookup failed", http.StatusInternalServerError)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.writeJSON(w, run)
}

// history returns recent runs, newest first. The limit query parameter
// caps the count; it defaults to 20.
func (s *StatusServer) history(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := parseLimit(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	runs, err := s.status.ListRuns(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("run history lookup failed")
		http.Error(w, "status lookup failed", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, runs)
}

func (s *StatusServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("status response encode failed")
	}
}

func parseLimit(raw string) (int, error) {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errInvalidLimit
	}
	return limit, nil
}
