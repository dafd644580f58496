package server

import (
	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/search"
)

type createGameRequest struct {
	// FEN of the starting position; empty means the standard initial
	// position.
	FEN string `json:"fen,omitempty"`
}

type moveRequest struct {
	Move string `json:"move"`
}

type searchRequest struct {
	TimeMs    int `json:"time_ms"`
	MovesToGo int `json:"moves_to_go"`
}

type evaluateRequest struct {
	FEN string `json:"fen"`
}

type gameStateResponse struct {
	ID         string   `json:"id"`
	FEN        string   `json:"fen"`
	Turn       string   `json:"turn"`
	Status     string   `json:"status"`
	LegalMoves []string `json:"legal_moves"`
	LastMove   string   `json:"last_move,omitempty"`
}

type searchResponse struct {
	Move      string            `json:"move"`
	Score     int               `json:"score"`
	Depth     int               `json:"depth"`
	Nodes     uint64            `json:"nodes"`
	ElapsedMs int64             `json:"elapsed_ms"`
	PV        []string          `json:"pv,omitempty"`
	FromBook  bool              `json:"from_book"`
	Obvious   bool              `json:"obvious"`
	Game      gameStateResponse `json:"game"`
}

type evaluateResponse struct {
	FEN   string `json:"fen"`
	Turn  string `json:"turn"`
	Score int    `json:"score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// analysisFrame is one WebSocket message on the analysis stream: an
// "iteration" frame per completed depth, then a single "result" frame, or
// an "error" frame.
type analysisFrame struct {
	Type      string   `json:"type"`
	Depth     int      `json:"depth,omitempty"`
	Score     int      `json:"score,omitempty"`
	Move      string   `json:"move,omitempty"`
	Nodes     uint64   `json:"nodes,omitempty"`
	ElapsedMs int64    `json:"elapsed_ms,omitempty"`
	PV        []string `json:"pv,omitempty"`
	FromBook  bool     `json:"from_book,omitempty"`
	Error     string   `json:"error,omitempty"`
}

func colourName(colour chess.Colour) string {
	if colour == chess.White {
		return "white"
	}
	return "black"
}

func movesToStrings(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, move := range moves {
		out[i] = move.String()
	}
	return out
}

func stateResponse(session *Session) gameStateResponse {
	state := session.State()
	resp := gameStateResponse{
		ID:         session.ID,
		FEN:        state.FEN,
		Turn:       colourName(state.Turn),
		Status:     state.Status,
		LegalMoves: movesToStrings(state.LegalMoves),
	}
	if state.HasLast {
		resp.LastMove = state.LastMove.String()
	}
	return resp
}

func searchResponseFrom(result search.Result, session *Session) searchResponse {
	return searchResponse{
		Move:      result.Move.String(),
		Score:     result.Score,
		Depth:     result.Depth,
		Nodes:     result.Nodes,
		ElapsedMs: result.Elapsed.Milliseconds(),
		PV:        movesToStrings(result.PV),
		FromBook:  result.FromBook,
		Obvious:   result.Obvious,
		Game:      stateResponse(session),
	}
}

func iterationFrame(it search.Iteration) analysisFrame {
	return analysisFrame{
		Type:      "iteration",
		Depth:     it.Depth,
		Score:     it.Score,
		Move:      it.Move.String(),
		Nodes:     it.Nodes,
		ElapsedMs: it.Elapsed.Milliseconds(),
	}
}

func resultFrame(result search.Result) analysisFrame {
	return analysisFrame{
		Type:      "result",
		Depth:     result.Depth,
		Score:     result.Score,
		Move:      result.Move.String(),
		Nodes:     result.Nodes,
		ElapsedMs: result.Elapsed.Milliseconds(),
		PV:        movesToStrings(result.PV),
		FromBook:  result.FromBook,
	}
}
