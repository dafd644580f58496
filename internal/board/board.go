// Package board implements the chess board and rules: piece placement,
// fully legal move generation, move application with special-move handling
// (castling, en passant, promotion), and game-status detection. The search
// engine consumes it through the chess.Game interface.
package board

import (
	"fmt"

	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/errors"
	"github.com/ThenerzZ/chess-engine-go/internal/hashing"
)

// Board holds the full state of a chess game. Boards are value-copyable:
// Copy returns an independent snapshot, and the engine clones a board for
// every branch it explores rather than mutating and undoing.
type Board struct {
	// squares[file-1][rank-1] holds the coloured piece on each square,
	// chess.Empty when vacant.
	squares [chess.BoardSize][chess.BoardSize]chess.Piece

	// Who has the next move.
	toMove chess.Colour

	// Castling rights.
	wKingside  bool
	wQueenside bool
	bKingside  bool
	bQueenside bool

	// En passant target square, valid only when epValid is set.
	epTarget chess.Position
	epValid  bool

	// The most recently applied move.
	lastMove    chess.Move
	hasLastMove bool

	// Keep track of where the two kings are for check detection.
	wKing chess.Position
	bKing chess.Position

	// Halfmove clock since the last pawn move or capture, and the
	// current full-move number.
	halfmoveClock int
	moveNumber    int
}

// New creates an empty board with White to move.
func New() *Board {
	return &Board{
		toMove:     chess.White,
		moveNumber: 1,
	}
}

// NewInitial creates a board with the standard starting position.
func NewInitial() *Board {
	b, err := FromFEN(InitialFEN)
	if err != nil {
		panic(fmt.Sprintf("board: initial FEN failed to parse: %v", err))
	}
	return b
}

// Get returns the coloured piece on the given square, or chess.Empty.
func (b *Board) Get(pos chess.Position) chess.Piece {
	if !pos.Valid() {
		return chess.Empty
	}
	return b.squares[pos.File-1][pos.Rank-1]
}

// set places a coloured piece on the given square.
func (b *Board) set(pos chess.Position, piece chess.Piece) {
	if pos.Valid() {
		b.squares[pos.File-1][pos.Rank-1] = piece
	}
}

// CurrentTurn returns the side to move.
func (b *Board) CurrentTurn() chess.Colour {
	return b.toMove
}

// GetPiece returns the coloured piece on the given square and whether the
// square is occupied.
func (b *Board) GetPiece(pos chess.Position) (chess.Piece, bool) {
	piece := b.Get(pos)
	return piece, piece != chess.Empty
}

// LastMove returns the most recently applied move, or false if no move
// has been made on this board.
func (b *Board) LastMove() (chess.Move, bool) {
	return b.lastMove, b.hasLastMove
}

// EnPassantTarget returns the current en passant target square, or false
// if no en passant capture is possible.
func (b *Board) EnPassantTarget() (chess.Position, bool) {
	return b.epTarget, b.epValid
}

// HalfmoveClock returns the number of half-moves since the last pawn move
// or capture.
func (b *Board) HalfmoveClock() int {
	return b.halfmoveClock
}

// MoveNumber returns the current full-move number.
func (b *Board) MoveNumber() int {
	return b.moveNumber
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := &Board{}
	*nb = *b
	return nb
}

// Clone returns an independent copy of the game state.
func (b *Board) Clone() chess.Game {
	return b.Copy()
}

// Hash returns a canonical key over (piece placement, side to move).
func (b *Board) Hash() uint64 {
	return hashing.PositionKey(b)
}

// MakeNullMove passes the turn without moving a piece. The en passant
// opportunity lapses; castling rights and clocks are untouched. Only used
// on cloned boards by null-move pruning.
func (b *Board) MakeNullMove() {
	b.toMove = b.toMove.Opposite()
	b.epValid = false
	b.hasLastMove = false
}

// MakeMove applies the move, enforcing turn order and full legality.
// The proposed move only needs correct source and destination squares
// (and a promotion piece where required); the move class is recovered
// from the legal move list. The board is unchanged on error.
func (b *Board) MakeMove(move chess.Move) error {
	piece := b.Get(move.From)
	if piece == chess.Empty {
		return errors.Wrapf(errors.ErrNoPiece, "no piece on %s", move.From)
	}
	if chess.ExtractColour(piece) != b.toMove {
		return errors.Wrapf(errors.ErrWrongTurn, "%s to move", b.toMove)
	}

	for _, legal := range b.GetValidMoves(move.From) {
		if legal.To != move.To {
			continue
		}
		if legal.IsPromotion() {
			if legal.Promotion != move.Promotion {
				continue
			}
		} else if move.Promotion != chess.Empty {
			continue
		}
		b.apply(legal)
		return nil
	}

	return errors.Wrapf(errors.ErrIllegalMove, "move %s", move)
}

// apply performs a move without validation. Callers guarantee legality.
func (b *Board) apply(move chess.Move) {
	colour := b.toMove
	piece := b.Get(move.From)
	captured := b.Get(move.To)

	b.set(move.From, chess.Empty)

	switch move.Class {
	case chess.EnPassantMove:
		// The captured pawn stands beside the destination square.
		victim := chess.Position{File: move.To.File, Rank: move.From.Rank}
		b.set(victim, chess.Empty)
		captured = chess.MakeColouredPiece(colour.Opposite(), chess.Pawn)

	case chess.KingsideCastleMove:
		rank := move.From.Rank
		b.set(chess.Position{File: 8, Rank: rank}, chess.Empty)
		b.set(chess.Position{File: 6, Rank: rank}, chess.MakeColouredPiece(colour, chess.Rook))

	case chess.QueensideCastleMove:
		rank := move.From.Rank
		b.set(chess.Position{File: 1, Rank: rank}, chess.Empty)
		b.set(chess.Position{File: 4, Rank: rank}, chess.MakeColouredPiece(colour, chess.Rook))
	}

	if move.Promotion != chess.Empty {
		b.set(move.To, chess.MakeColouredPiece(colour, move.Promotion))
	} else {
		b.set(move.To, piece)
	}

	pieceType := chess.ExtractPiece(piece)

	// King moves surrender both castling rights; track the king square.
	if pieceType == chess.King {
		if colour == chess.White {
			b.wKing = move.To
			b.wKingside, b.wQueenside = false, false
		} else {
			b.bKing = move.To
			b.bKingside, b.bQueenside = false, false
		}
	}

	// Rook moves or captures on a rook's home square clear the matching right.
	b.clearCastlingRights(move.From)
	b.clearCastlingRights(move.To)

	// A pawn double push opens an en passant opportunity on the square
	// it skipped; anything else closes it.
	b.epValid = false
	if pieceType == chess.Pawn {
		dr := move.To.Rank - move.From.Rank
		if dr == 2 || dr == -2 {
			b.epTarget = chess.Position{File: move.From.File, Rank: move.From.Rank + dr/2}
			b.epValid = true
		}
	}

	if pieceType == chess.Pawn || captured != chess.Empty {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if colour == chess.Black {
		b.moveNumber++
	}

	b.lastMove = move
	b.hasLastMove = true
	b.toMove = colour.Opposite()
}

// clearCastlingRights clears a castling right if the square is a rook's
// home square.
func (b *Board) clearCastlingRights(pos chess.Position) {
	switch pos {
	case chess.Position{File: 1, Rank: 1}:
		b.wQueenside = false
	case chess.Position{File: 8, Rank: 1}:
		b.wKingside = false
	case chess.Position{File: 1, Rank: 8}:
		b.bQueenside = false
	case chess.Position{File: 8, Rank: 8}:
		b.bKingside = false
	}
}

// kingPosition returns the tracked king square for the given colour.
func (b *Board) kingPosition(colour chess.Colour) chess.Position {
	if colour == chess.White {
		return b.wKing
	}
	return b.bKing
}
