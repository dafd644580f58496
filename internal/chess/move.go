package chess

import (
	"fmt"
	"strings"
)

// MoveClass categorizes different types of chess moves.
type MoveClass int

const (
	NormalMove MoveClass = iota
	CaptureMove
	EnPassantMove
	KingsideCastleMove
	QueensideCastleMove
)

// String returns the string representation of a move class.
func (c MoveClass) String() string {
	names := []string{"Normal", "Capture", "EnPassant", "KingsideCastle", "QueensideCastle"}
	if int(c) < len(names) {
		return names[c]
	}
	return "Unknown"
}

// Move represents a single chess move. It is an immutable value type;
// equality is structural, so moves can be compared with == and used as
// map keys.
type Move struct {
	// Source and destination squares. Castling is encoded as the king's
	// two-square move.
	From Position
	To   Position

	// The piece promoted to (Empty if not a promotion).
	Promotion Piece

	// Class of move (normal, capture, en passant, castle).
	Class MoveClass
}

// IsCapture returns true if this move captures a piece, including
// en passant captures.
func (m Move) IsCapture() bool {
	return m.Class == CaptureMove || m.Class == EnPassantMove
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != Empty
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	switch m.Class {
	case KingsideCastleMove, QueensideCastleMove:
		return true
	default:
		return false
	}
}

// IsZero returns true if the move is the zero value, used as a "no move"
// marker in the search tables.
func (m Move) IsZero() bool {
	return m == Move{}
}

// SameSquares returns true if the other move has the same source and
// destination, ignoring class and promotion. Used to match moves coming
// from different generators (e.g., a cached best move against a freshly
// generated list).
func (m Move) SameSquares(other Move) bool {
	return m.From == other.From && m.To == other.To
}

// String returns the move in long algebraic notation (e.g., "e2e4",
// "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != Empty {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// ParseMove parses a move in long algebraic notation. The move class is
// left as NormalMove; callers match the parsed squares against the legal
// move list to recover class information.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParsePosition(s[:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %v", s, err)
	}
	to, err := ParsePosition(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %v", s, err)
	}
	move := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			move.Promotion = Queen
		case 'r':
			move.Promotion = Rook
		case 'b':
			move.Promotion = Bishop
		case 'n':
			move.Promotion = Knight
		default:
			return Move{}, fmt.Errorf("invalid promotion piece %q", s[4])
		}
	}
	return move, nil
}
