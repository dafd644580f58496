package server

import (
	"context"
	"net/http"

	"github.com/ThenerzZ/chess-engine-go/internal/search"
)

// handleAnalysis streams a search over a WebSocket. The client sends one
// JSON request ({"time_ms": ..., "moves_to_go": ...}); the server replies
// with an "iteration" frame per completed depth and a final "result"
// frame. The analysed position is not changed. A disconnect cancels the
// search.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var req searchRequest
	if err := conn.ReadJSON(&req); err != nil {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// One reader, one writer: this goroutine only reads, the loop below
	// only writes.
	go func() {
		if _, _, err := conn.ReadMessage(); err != nil {
			cancel()
		}
	}()

	frames := make(chan analysisFrame, 16)
	go func() {
		defer close(frames)
		result, err := session.Analyse(ctx, searchBudget(req), req.MovesToGo, func(it search.Iteration) {
			frames <- iterationFrame(it)
		})
		if err != nil {
			frames <- analysisFrame{Type: "error", Error: err.Error()}
			return
		}
		frames <- resultFrame(result)
	}()

	writeFailed := false
	for frame := range frames {
		if writeFailed {
			continue
		}
		if err := conn.WriteJSON(frame); err != nil {
			s.log.Debug().Err(err).Str("game_id", session.ID).Msg("analysis stream closed")
			writeFailed = true
			cancel()
		}
	}
}
