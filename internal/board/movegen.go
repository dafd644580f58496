package board

import "github.com/ThenerzZ/chess-engine-go/internal/chess"

var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// promotionPieces are the pieces a pawn may promote to, strongest first.
var promotionPieces = []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// GetValidMoves returns all fully legal moves for the piece on the given
// square, regardless of whose turn it is. Moves that would leave the
// piece's own king in check are filtered out.
func (b *Board) GetValidMoves(pos chess.Position) []chess.Move {
	piece := b.Get(pos)
	if piece == chess.Empty {
		return nil
	}
	colour := chess.ExtractColour(piece)

	pseudo := b.pseudoMoves(pos, chess.ExtractPiece(piece), colour)
	if len(pseudo) == 0 {
		return nil
	}

	legal := pseudo[:0]
	for _, move := range pseudo {
		if b.leavesKingSafe(move, colour) {
			legal = append(legal, move)
		}
	}
	return legal
}

// LegalMoves returns all fully legal moves for the side to move.
func (b *Board) LegalMoves() []chess.Move {
	var moves []chess.Move
	for file := 1; file <= chess.BoardSize; file++ {
		for rank := 1; rank <= chess.BoardSize; rank++ {
			pos := chess.Position{File: file, Rank: rank}
			piece := b.Get(pos)
			if piece == chess.Empty || chess.ExtractColour(piece) != b.toMove {
				continue
			}
			moves = append(moves, b.GetValidMoves(pos)...)
		}
	}
	return moves
}

// HasLegalMoves returns true if the given colour has at least one legal
// move. Cheaper than LegalMoves because it stops at the first hit.
func (b *Board) HasLegalMoves(colour chess.Colour) bool {
	for file := 1; file <= chess.BoardSize; file++ {
		for rank := 1; rank <= chess.BoardSize; rank++ {
			pos := chess.Position{File: file, Rank: rank}
			piece := b.Get(pos)
			if piece == chess.Empty || chess.ExtractColour(piece) != colour {
				continue
			}
			if len(b.GetValidMoves(pos)) > 0 {
				return true
			}
		}
	}
	return false
}

// leavesKingSafe makes the move on a copied board and checks that the
// mover's king is not left in check.
func (b *Board) leavesKingSafe(move chess.Move, colour chess.Colour) bool {
	test := b.Copy()
	test.toMove = colour
	test.apply(move)
	return !test.IsInCheck(colour)
}

// pseudoMoves generates moves obeying piece movement rules but without
// the own-king-safety filter. Castling generation checks the king's path
// itself since passing through check is part of the castling rule.
func (b *Board) pseudoMoves(pos chess.Position, pieceType chess.Piece, colour chess.Colour) []chess.Move {
	switch pieceType {
	case chess.Pawn:
		return b.pawnMoves(pos, colour)
	case chess.Knight:
		return b.stepMoves(pos, colour, knightOffsets)
	case chess.Bishop:
		return b.slidingMoves(pos, colour, diagonalDirs)
	case chess.Rook:
		return b.slidingMoves(pos, colour, straightDirs)
	case chess.Queen:
		moves := b.slidingMoves(pos, colour, diagonalDirs)
		return append(moves, b.slidingMoves(pos, colour, straightDirs)...)
	case chess.King:
		moves := b.stepMoves(pos, colour, kingOffsets)
		return append(moves, b.castleMoves(pos, colour)...)
	}
	return nil
}

// pawnMoves generates pushes, double pushes, captures, en passant
// captures, and promotions for a pawn.
func (b *Board) pawnMoves(pos chess.Position, colour chess.Colour) []chess.Move {
	var moves []chess.Move
	dir := chess.ColourOffset(colour)
	startRank, promoRank := 2, 8
	if colour == chess.Black {
		startRank, promoRank = 7, 1
	}

	// Forward pushes.
	one := pos.Offset(0, dir)
	if one.Valid() && b.Get(one) == chess.Empty {
		moves = appendPawnMove(moves, pos, one, chess.NormalMove, promoRank)
		if pos.Rank == startRank {
			two := pos.Offset(0, 2*dir)
			if b.Get(two) == chess.Empty {
				moves = append(moves, chess.Move{From: pos, To: two, Class: chess.NormalMove})
			}
		}
	}

	// Diagonal captures and en passant.
	for _, df := range []int{-1, 1} {
		to := pos.Offset(df, dir)
		if !to.Valid() {
			continue
		}
		target := b.Get(to)
		if target != chess.Empty && chess.ExtractColour(target) != colour {
			moves = appendPawnMove(moves, pos, to, chess.CaptureMove, promoRank)
		}
		// The en passant right belongs to the side to move only; the
		// opponent's pawns reaching the same square have no capture there.
		if b.epValid && to == b.epTarget && colour == b.toMove {
			moves = append(moves, chess.Move{From: pos, To: to, Class: chess.EnPassantMove})
		}
	}

	return moves
}

// appendPawnMove appends a pawn move, expanding it into the four
// promotion choices when it reaches the last rank.
func appendPawnMove(moves []chess.Move, from, to chess.Position, class chess.MoveClass, promoRank int) []chess.Move {
	if to.Rank != promoRank {
		return append(moves, chess.Move{From: from, To: to, Class: class})
	}
	for _, piece := range promotionPieces {
		moves = append(moves, chess.Move{From: from, To: to, Class: class, Promotion: piece})
	}
	return moves
}

// stepMoves generates single-step moves for knights and kings.
func (b *Board) stepMoves(pos chess.Position, colour chess.Colour, offsets [][2]int) []chess.Move {
	var moves []chess.Move
	for _, offset := range offsets {
		to := pos.Offset(offset[0], offset[1])
		if !to.Valid() {
			continue
		}
		target := b.Get(to)
		switch {
		case target == chess.Empty:
			moves = append(moves, chess.Move{From: pos, To: to, Class: chess.NormalMove})
		case chess.ExtractColour(target) != colour:
			moves = append(moves, chess.Move{From: pos, To: to, Class: chess.CaptureMove})
		}
	}
	return moves
}

// slidingMoves generates moves along the given directions until blocked.
func (b *Board) slidingMoves(pos chess.Position, colour chess.Colour, dirs [][2]int) []chess.Move {
	var moves []chess.Move
	for _, dir := range dirs {
		to := pos.Offset(dir[0], dir[1])
		for to.Valid() {
			target := b.Get(to)
			if target != chess.Empty {
				if chess.ExtractColour(target) != colour {
					moves = append(moves, chess.Move{From: pos, To: to, Class: chess.CaptureMove})
				}
				break // Blocked
			}
			moves = append(moves, chess.Move{From: pos, To: to, Class: chess.NormalMove})
			to = to.Offset(dir[0], dir[1])
		}
	}
	return moves
}

// castleMoves generates castling moves for the king on its home square.
// Castling requires the right to castle, empty squares between king and
// rook, the rook on its home square, and a king path free of attacks.
func (b *Board) castleMoves(pos chess.Position, colour chess.Colour) []chess.Move {
	homeRank := 1
	kingside, queenside := b.wKingside, b.wQueenside
	if colour == chess.Black {
		homeRank = 8
		kingside, queenside = b.bKingside, b.bQueenside
	}
	home := chess.Position{File: 5, Rank: homeRank}
	if pos != home {
		return nil
	}

	enemy := colour.Opposite()
	if b.isSquareAttacked(pos, enemy) {
		return nil
	}

	rook := chess.MakeColouredPiece(colour, chess.Rook)
	var moves []chess.Move

	if kingside && b.Get(chess.Position{File: 8, Rank: homeRank}) == rook {
		fSquare := chess.Position{File: 6, Rank: homeRank}
		gSquare := chess.Position{File: 7, Rank: homeRank}
		if b.Get(fSquare) == chess.Empty && b.Get(gSquare) == chess.Empty &&
			!b.isSquareAttacked(fSquare, enemy) && !b.isSquareAttacked(gSquare, enemy) {
			moves = append(moves, chess.Move{From: pos, To: gSquare, Class: chess.KingsideCastleMove})
		}
	}

	if queenside && b.Get(chess.Position{File: 1, Rank: homeRank}) == rook {
		dSquare := chess.Position{File: 4, Rank: homeRank}
		cSquare := chess.Position{File: 3, Rank: homeRank}
		bSquare := chess.Position{File: 2, Rank: homeRank}
		if b.Get(dSquare) == chess.Empty && b.Get(cSquare) == chess.Empty && b.Get(bSquare) == chess.Empty &&
			!b.isSquareAttacked(dSquare, enemy) && !b.isSquareAttacked(cSquare, enemy) {
			moves = append(moves, chess.Move{From: pos, To: cSquare, Class: chess.QueensideCastleMove})
		}
	}

	return moves
}
