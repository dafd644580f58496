package board

import (
	"testing"

	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/errors"
)

// mustFromFEN parses a FEN string or fails the test.
func mustFromFEN(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q) error: %v", fen, err)
	}
	return b
}

// mustMove parses a move in long algebraic notation or fails the test.
func mustMove(t *testing.T, s string) chess.Move {
	t.Helper()
	move, err := chess.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q) error: %v", s, err)
	}
	return move
}

func TestNewInitial(t *testing.T) {
	b := NewInitial()

	if b.CurrentTurn() != chess.White {
		t.Errorf("CurrentTurn() = %v, want White", b.CurrentTurn())
	}

	tests := []struct {
		square string
		want   chess.Piece
	}{
		{"e1", chess.W(chess.King)},
		{"d8", chess.B(chess.Queen)},
		{"a1", chess.W(chess.Rook)},
		{"g8", chess.B(chess.Knight)},
		{"e2", chess.W(chess.Pawn)},
		{"e4", chess.Empty},
	}

	for _, tt := range tests {
		pos, err := chess.ParsePosition(tt.square)
		if err != nil {
			t.Fatalf("ParsePosition(%q) error: %v", tt.square, err)
		}
		if got := b.Get(pos); got != tt.want {
			t.Errorf("Get(%s) = %v, want %v", tt.square, got, tt.want)
		}
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPP2PPP/RNBQKBNR b KQkq e3 0 3",
		"4k3/8/8/8/8/8/8/4K3 w - - 12 40",
	}

	for _, fen := range fens {
		b := mustFromFEN(t, fen)
		if got := b.FEN(); got != fen {
			t.Errorf("FEN round trip:\n got %q\nwant %q", got, fen)
		}
	}
}

func TestFromFENInvalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty string", ""},
		{"bad piece character", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBXR w KQkq - 0 1"},
		{"bad side to move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromFEN(tt.fen); !errors.Is(err, errors.ErrInvalidFEN) {
				t.Errorf("FromFEN(%q) error = %v, want ErrInvalidFEN", tt.fen, err)
			}
		})
	}
}

func TestMakeMoveErrors(t *testing.T) {
	b := NewInitial()

	if err := b.MakeMove(mustMove(t, "e4e5")); !errors.Is(err, errors.ErrNoPiece) {
		t.Errorf("move from empty square: error = %v, want ErrNoPiece", err)
	}
	if err := b.MakeMove(mustMove(t, "e7e5")); !errors.Is(err, errors.ErrWrongTurn) {
		t.Errorf("move out of turn: error = %v, want ErrWrongTurn", err)
	}
	if err := b.MakeMove(mustMove(t, "e2e5")); !errors.Is(err, errors.ErrIllegalMove) {
		t.Errorf("illegal pawn move: error = %v, want ErrIllegalMove", err)
	}

	// The board must be unchanged after a rejected move.
	if got := b.FEN(); got != InitialFEN {
		t.Errorf("board changed after rejected move: %q", got)
	}
}

func TestMakeMoveUpdatesState(t *testing.T) {
	b := NewInitial()

	if err := b.MakeMove(mustMove(t, "e2e4")); err != nil {
		t.Fatalf("MakeMove(e2e4) error: %v", err)
	}

	if b.CurrentTurn() != chess.Black {
		t.Errorf("CurrentTurn() = %v after e2e4, want Black", b.CurrentTurn())
	}
	last, ok := b.LastMove()
	if !ok || last.String() != "e2e4" {
		t.Errorf("LastMove() = %v, %v, want e2e4, true", last, ok)
	}
	if ep, ok := b.EnPassantTarget(); !ok || ep.String() != "e3" {
		t.Errorf("EnPassantTarget() = %v, %v, want e3, true", ep, ok)
	}
	if got := b.FEN(); got != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1" {
		t.Errorf("FEN after e2e4 = %q", got)
	}
}

func TestEnPassantCapture(t *testing.T) {
	b := mustFromFEN(t, "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPP2PPP/RNBQKBNR b KQkq e3 0 3")

	d4, _ := chess.ParsePosition("d4")
	moves := b.GetValidMoves(d4)
	var epMove chess.Move
	for _, move := range moves {
		if move.Class == chess.EnPassantMove {
			epMove = move
		}
	}
	if epMove.IsZero() {
		t.Fatalf("GetValidMoves(d4) = %v, want an en passant capture", moves)
	}
	if epMove.To.String() != "e3" {
		t.Errorf("en passant target = %s, want e3", epMove.To)
	}

	if err := b.MakeMove(epMove); err != nil {
		t.Fatalf("MakeMove(%s) error: %v", epMove, err)
	}

	// The captured pawn disappears from e4.
	e4, _ := chess.ParsePosition("e4")
	if got := b.Get(e4); got != chess.Empty {
		t.Errorf("Get(e4) = %v after en passant, want Empty", got)
	}
	e3, _ := chess.ParsePosition("e3")
	if got := b.Get(e3); got != chess.B(chess.Pawn) {
		t.Errorf("Get(e3) = %v after en passant, want black pawn", got)
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name      string
		move      string
		kingTo    string
		rookTo    string
		rookEmpty string
	}{
		{"white kingside", "e1g1", "g1", "f1", "h1"},
		{"white queenside", "e1c1", "c1", "d1", "a1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
			if err := b.MakeMove(mustMove(t, tt.move)); err != nil {
				t.Fatalf("MakeMove(%s) error: %v", tt.move, err)
			}

			kingTo, _ := chess.ParsePosition(tt.kingTo)
			if got := b.Get(kingTo); got != chess.W(chess.King) {
				t.Errorf("Get(%s) = %v, want white king", tt.kingTo, got)
			}
			rookTo, _ := chess.ParsePosition(tt.rookTo)
			if got := b.Get(rookTo); got != chess.W(chess.Rook) {
				t.Errorf("Get(%s) = %v, want white rook", tt.rookTo, got)
			}
			rookFrom, _ := chess.ParsePosition(tt.rookEmpty)
			if got := b.Get(rookFrom); got != chess.Empty {
				t.Errorf("Get(%s) = %v, want Empty", tt.rookEmpty, got)
			}
			if b.wKingside || b.wQueenside {
				t.Error("white castling rights not cleared after castling")
			}
		})
	}
}

func TestCastlingBlocked(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
	}{
		{"piece between", "r3k2r/8/8/8/8/8/8/R3KB1R w KQkq - 0 1", "e1g1"},
		{"king in check", "r3k2r/8/8/8/8/4r3/8/R3K2R w KQkq - 0 1", "e1g1"},
		{"path attacked", "r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1", "e1g1"},
		{"no right", "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", "e1g1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFromFEN(t, tt.fen)
			if err := b.MakeMove(mustMove(t, tt.move)); err == nil {
				t.Errorf("MakeMove(%s) succeeded, want error", tt.move)
			}
		})
	}
}

func TestPromotion(t *testing.T) {
	b := mustFromFEN(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")

	if err := b.MakeMove(mustMove(t, "a7a8q")); err != nil {
		t.Fatalf("MakeMove(a7a8q) error: %v", err)
	}
	a8, _ := chess.ParsePosition("a8")
	if got := b.Get(a8); got != chess.W(chess.Queen) {
		t.Errorf("Get(a8) = %v after promotion, want white queen", got)
	}
}

func TestPromotionRequiresPiece(t *testing.T) {
	b := mustFromFEN(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")

	// A pawn push to the last rank without naming a piece is rejected.
	if err := b.MakeMove(mustMove(t, "a7a8")); !errors.Is(err, errors.ErrIllegalMove) {
		t.Errorf("MakeMove(a7a8) error = %v, want ErrIllegalMove", err)
	}
}

func TestMakeNullMove(t *testing.T) {
	b := mustFromFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")

	b.MakeNullMove()

	if b.CurrentTurn() != chess.White {
		t.Errorf("CurrentTurn() = %v after null move, want White", b.CurrentTurn())
	}
	if _, ok := b.EnPassantTarget(); ok {
		t.Error("en passant opportunity survived a null move")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewInitial()
	clone := b.Clone()

	if err := clone.MakeMove(mustMove(t, "e2e4")); err != nil {
		t.Fatalf("MakeMove on clone error: %v", err)
	}

	if b.CurrentTurn() != chess.White {
		t.Error("moving on a clone changed the original board's turn")
	}
	e2, _ := chess.ParsePosition("e2")
	if got := b.Get(e2); got != chess.W(chess.Pawn) {
		t.Errorf("Get(e2) = %v on original after clone moved, want white pawn", got)
	}
}

func TestHashTransposition(t *testing.T) {
	// Knights out and back reach the starting placement with the same
	// side to move, so the keys must collide.
	b := NewInitial()
	for _, s := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		if err := b.MakeMove(mustMove(t, s)); err != nil {
			t.Fatalf("MakeMove(%s) error: %v", s, err)
		}
	}

	if b.Hash() != NewInitial().Hash() {
		t.Error("transposed position hashes differently from the initial position")
	}
}

func TestHashDistinguishesSideToMove(t *testing.T) {
	b := NewInitial()
	before := b.Hash()
	b.MakeNullMove()
	if b.Hash() == before {
		t.Error("hash unchanged after the side to move flipped")
	}
}
