package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ThenerzZ/chess-engine-go/internal/board"
	"github.com/ThenerzZ/chess-engine-go/internal/config"
	"github.com/ThenerzZ/chess-engine-go/internal/errors"
	"github.com/ThenerzZ/chess-engine-go/internal/eval"
)

// defaultSearchTime applies when a search request carries no budget.
const defaultSearchTime = time.Second

// Server is the HTTP/WebSocket front of the engine.
type Server struct {
	manager  *Manager
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// New builds a server with its own session manager.
func New(cfg config.Config, logger zerolog.Logger) (*Server, error) {
	manager, err := NewManager(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Server{
		manager: manager,
		log:     logger.With().Str("component", "server").Logger(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	session, err := s.manager.Create(req.FEN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, stateResponse(session))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(session))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.manager.Remove(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := session.ApplyMove(req.Move); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(session))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	result, err := session.Search(r.Context(), searchBudget(req), req.MovesToGo)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, searchResponseFrom(result, session))
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	g, err := board.FromFEN(req.FEN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, evaluateResponse{
		FEN:   g.FEN(),
		Turn:  colourName(g.CurrentTurn()),
		Score: eval.EvaluatePosition(g),
	})
}

// session resolves the {id} URL parameter, writing a 404 on failure.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	session, err := s.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return session, true
}

func searchBudget(req searchRequest) time.Duration {
	if req.TimeMs <= 0 {
		return defaultSearchTime
	}
	return time.Duration(req.TimeMs) * time.Millisecond
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errors.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, errors.ErrGameNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
