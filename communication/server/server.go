package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"tilemerge/communication"
	"tilemerge/game"
	"tilemerge/searcher"
	"tilemerge/searcher/agent"
)

// Server exposes an agent over HTTP.
type Server struct {
	agent agent.Agent
	mux   *http.ServeMux
}

func New(a agent.Agent) *Server {
	s := &Server{
		agent: a,
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("POST "+communication.FindMovePath, s.handleFindMove)
	s.mux.HandleFunc("GET "+communication.HealthPath, s.handleHealth)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("agent server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down agent server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var req communication.FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	board, err := game.BoardFromValues(req.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	move, metric, err := s.agent.FindMove(r.Context(), board)
	switch {
	case errors.Is(err, searcher.ErrNoLegalMove):
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		log.Error().Err(err).Msg("failed to find move")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	log.Info().Stringer("move", move).Dur("duration", metric.Duration).Msg("found move")
	writeJSON(w, http.StatusOK, communication.FindMoveResponse{Direction: move, Metric: metric})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, communication.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
