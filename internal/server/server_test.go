package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ThenerzZ/chess-engine-go/internal/config"
	"github.com/ThenerzZ/chess-engine-go/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.MaxDepth = 2

	s, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	resp, err := http.Post(url, "application/json", &body)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func createGame(t *testing.T, ts *httptest.Server, fen string) gameStateResponse {
	t.Helper()
	resp := postJSON(t, ts.URL+"/api/games", createGameRequest{FEN: fen})
	testutil.AssertEqual(t, resp.StatusCode, http.StatusCreated)
	return decodeBody[gameStateResponse](t, resp)
}

func TestPing(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/ping")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	resp.Body.Close()
}

func TestCreateAndGetGame(t *testing.T) {
	ts := newTestServer(t)

	created := createGame(t, ts, "")
	if created.ID == "" {
		t.Fatal("created game has no id")
	}
	testutil.AssertEqual(t, created.Turn, "white")
	testutil.AssertEqual(t, created.Status, "in_progress")
	testutil.AssertEqual(t, len(created.LegalMoves), 20)

	resp, err := http.Get(ts.URL + "/api/games/" + created.ID)
	testutil.AssertNoError(t, err)
	got := decodeBody[gameStateResponse](t, resp)
	testutil.AssertEqual(t, got, created)
}

func TestCreateGameInvalidFEN(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/games", createGameRequest{FEN: "not a fen"})
	defer resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)
}

func TestGetGameNotFound(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/games/no-such-id")
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusNotFound)
}

func TestApplyMove(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts, "")
	movesURL := ts.URL + "/api/games/" + created.ID + "/moves"

	resp := postJSON(t, movesURL, moveRequest{Move: "e2e4"})
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	state := decodeBody[gameStateResponse](t, resp)
	testutil.AssertEqual(t, state.Turn, "black")
	testutil.AssertEqual(t, state.LastMove, "e2e4")

	resp = postJSON(t, movesURL, moveRequest{Move: "e7e3"})
	defer resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusBadRequest, "illegal move accepted")
}

func TestApplyMoveGameOver(t *testing.T) {
	ts := newTestServer(t)
	// Fool's mate: white is checkmated.
	created := createGame(t, ts, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	testutil.AssertEqual(t, created.Status, "checkmate")

	resp := postJSON(t, ts.URL+"/api/games/"+created.ID+"/moves", moveRequest{Move: "a2a3"})
	defer resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusConflict)
}

func TestSearchPlaysMove(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts, "")

	resp := postJSON(t, ts.URL+"/api/games/"+created.ID+"/search", searchRequest{TimeMs: 300})
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	result := decodeBody[searchResponse](t, resp)

	if result.Move == "" {
		t.Fatal("search returned no move")
	}
	testutil.AssertEqual(t, result.Game.Turn, "black", "engine move not applied")
	testutil.AssertEqual(t, result.Game.LastMove, result.Move)
}

func TestSearchGameOver(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	resp := postJSON(t, ts.URL+"/api/games/"+created.ID+"/search", searchRequest{TimeMs: 100})
	defer resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusConflict)
}

func TestEvaluate(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/evaluate", evaluateRequest{
		FEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	})
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	got := decodeBody[evaluateResponse](t, resp)

	testutil.AssertEqual(t, got.Turn, "white")
	// The initial position is symmetric.
	if got.Score < -50 || got.Score > 50 {
		t.Errorf("Score = %d, want near zero", got.Score)
	}

	resp = postJSON(t, ts.URL+"/api/evaluate", evaluateRequest{FEN: "garbage"})
	defer resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)
}

func TestDeleteGame(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts, "")

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/games/"+created.ID, nil)
	testutil.AssertNoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	testutil.AssertNoError(t, err)
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)

	getResp, err := http.Get(ts.URL + "/api/games/" + created.ID)
	testutil.AssertNoError(t, err)
	defer getResp.Body.Close()
	testutil.AssertEqual(t, getResp.StatusCode, http.StatusNotFound)
}

func TestAnalysisStream(t *testing.T) {
	ts := newTestServer(t)
	// A sparse off-book position, so the stream comes from real search
	// iterations rather than the opening book.
	created := createGame(t, ts, "r3k3/ppp5/8/8/8/8/PPP5/R3K3 w - - 0 1")

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/api/games/" + created.ID + "/analysis"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	testutil.AssertNoError(t, err)
	defer conn.Close()

	testutil.AssertNoError(t, conn.WriteJSON(searchRequest{TimeMs: 60000}))

	var frames []analysisFrame
	for {
		var frame analysisFrame
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("stream ended before the result frame: %v (frames: %d)", err, len(frames))
		}
		frames = append(frames, frame)
		if frame.Type == "result" || frame.Type == "error" {
			break
		}
	}

	final := frames[len(frames)-1]
	testutil.AssertEqual(t, final.Type, "result")
	if final.Move == "" {
		t.Error("result frame has no move")
	}
	if len(frames) < 2 {
		t.Fatalf("got %d frames, want iteration frames before the result", len(frames))
	}
	for i, frame := range frames[:len(frames)-1] {
		testutil.AssertEqual(t, frame.Type, "iteration")
		testutil.AssertEqual(t, frame.Depth, i+1, "iteration depths out of order")
	}

	// Analysis must not touch the game.
	resp, err := http.Get(ts.URL + "/api/games/" + created.ID)
	testutil.AssertNoError(t, err)
	state := decodeBody[gameStateResponse](t, resp)
	testutil.AssertEqual(t, state.FEN, created.FEN, "analysis mutated the position")
}
