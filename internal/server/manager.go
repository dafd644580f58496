// Package server exposes the engine over HTTP and WebSocket: game sessions
// with engine search, one-shot position evaluation, and a live analysis
// stream that emits one frame per completed search iteration.
package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ThenerzZ/chess-engine-go/internal/board"
	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/config"
	"github.com/ThenerzZ/chess-engine-go/internal/errors"
	"github.com/ThenerzZ/chess-engine-go/internal/search"
)

// Session is one game with its own engine. The engine's position cache
// lives as long as the session, so repeated searches in the same game
// reuse earlier work. All access goes through the session mutex; the
// engine itself is single-threaded.
type Session struct {
	ID      string
	Created time.Time

	mu     sync.Mutex
	game   *board.Board
	engine *search.Engine
}

// GameState is a point-in-time snapshot of a session.
type GameState struct {
	FEN        string
	Turn       chess.Colour
	Status     string
	LegalMoves []chess.Move
	LastMove   chess.Move
	HasLast    bool
}

// Manager owns the session table.
type Manager struct {
	cfg config.Config
	log zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager validates the engine configuration once up front; sessions
// share it.
func NewManager(cfg config.Config, logger zerolog.Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		cfg:      cfg,
		log:      logger.With().Str("component", "server").Logger(),
		sessions: make(map[string]*Session),
	}, nil
}

// Create starts a new session from the given FEN, or from the standard
// initial position when fen is empty.
func (m *Manager) Create(fen string) (*Session, error) {
	var g *board.Board
	if fen == "" {
		g = board.NewInitial()
	} else {
		parsed, err := board.FromFEN(fen)
		if err != nil {
			return nil, err
		}
		g = parsed
	}

	engine, err := search.New(m.cfg, m.log)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:      uuid.NewString(),
		Created: time.Now(),
		game:    g,
		engine:  engine,
	}
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.log.Info().Str("game_id", session.ID).Msg("session created")
	return session, nil
}

// Get looks up a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "session %s", id)
	}
	return session, nil
}

// Remove deletes a session.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return errors.Wrapf(errors.ErrGameNotFound, "session %s", id)
	}
	delete(m.sessions, id)
	m.log.Info().Str("game_id", id).Msg("session removed")
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// State snapshots the session.
func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := GameState{
		FEN:        s.game.FEN(),
		Turn:       s.game.CurrentTurn(),
		Status:     statusOf(s.game),
		LegalMoves: s.game.LegalMoves(),
	}
	state.LastMove, state.HasLast = s.game.LastMove()
	return state
}

// ApplyMove plays a move given in long algebraic notation. The move is
// matched against the legal move list, so castling, en passant, and
// promotion details come from the generator, not the client.
func (s *Session) ApplyMove(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gameOver(s.game) {
		return errors.Wrap(errors.ErrGameOver, "apply move")
	}

	parsed, err := chess.ParseMove(text)
	if err != nil {
		return &errors.MoveError{Err: errors.ErrIllegalMove, MoveText: text}
	}
	for _, legal := range s.game.LegalMoves() {
		if legal.SameSquares(parsed) && legal.Promotion == parsed.Promotion {
			return s.game.MakeMove(legal)
		}
	}
	return &errors.MoveError{Err: errors.ErrIllegalMove, MoveText: text}
}

// Analyse searches the current position without playing the result.
// onIteration, when non-nil, observes every completed depth.
func (s *Session) Analyse(ctx context.Context, total time.Duration, movesToGo int, onIteration func(search.Iteration)) (search.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyseLocked(ctx, total, movesToGo, onIteration)
}

// Search picks the engine's move and plays it on the session board.
func (s *Session) Search(ctx context.Context, total time.Duration, movesToGo int) (search.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.analyseLocked(ctx, total, movesToGo, nil)
	if err != nil {
		return search.Result{}, err
	}
	if err := s.game.MakeMove(result.Move); err != nil {
		return search.Result{}, err
	}
	return result, nil
}

func (s *Session) analyseLocked(ctx context.Context, total time.Duration, movesToGo int, onIteration func(search.Iteration)) (search.Result, error) {
	if gameOver(s.game) {
		return search.Result{}, errors.Wrap(errors.ErrGameOver, "search")
	}

	s.engine.OnIteration = onIteration
	defer func() { s.engine.OnIteration = nil }()

	result, ok := s.engine.BestMove(ctx, s.game, total, movesToGo)
	if !ok {
		return search.Result{}, errors.Wrap(errors.ErrGameOver, "search")
	}
	return result, nil
}

func gameOver(g chess.Game) bool {
	return g.IsCheckmate() || g.IsStalemate() || g.HasInsufficientMaterial()
}

func statusOf(g chess.Game) string {
	switch {
	case g.IsCheckmate():
		return "checkmate"
	case g.IsStalemate():
		return "stalemate"
	case g.HasInsufficientMaterial():
		return "draw"
	case g.IsInCheck(g.CurrentTurn()):
		return "check"
	default:
		return "in_progress"
	}
}
