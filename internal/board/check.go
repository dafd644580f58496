package board

import "github.com/ThenerzZ/chess-engine-go/internal/chess"

// IsInCheck returns true if the given colour's king is in check.
func (b *Board) IsInCheck(colour chess.Colour) bool {
	king := b.kingPosition(colour)
	if !king.Valid() {
		// King position not tracked (hand-built test boards); search for it.
		king = b.findKing(colour)
		if !king.Valid() {
			return false
		}
	}
	return b.isSquareAttacked(king, colour.Opposite())
}

// findKing locates the king of the given colour on the board.
func (b *Board) findKing(colour chess.Colour) chess.Position {
	king := chess.MakeColouredPiece(colour, chess.King)
	for file := 1; file <= chess.BoardSize; file++ {
		for rank := 1; rank <= chess.BoardSize; rank++ {
			pos := chess.Position{File: file, Rank: rank}
			if b.Get(pos) == king {
				return pos
			}
		}
	}
	return chess.Position{}
}

// isSquareAttacked returns true if the square is attacked by the given
// colour. Attack patterns are checked piece class by piece class, which
// avoids generating the attacker's full move list.
func (b *Board) isSquareAttacked(pos chess.Position, byColour chess.Colour) bool {
	// Pawn attacks come from the rank the attacking pawn stands on.
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	pawnDir := -chess.ColourOffset(byColour)
	for _, df := range []int{-1, 1} {
		from := pos.Offset(df, pawnDir)
		if from.Valid() && b.Get(from) == pawn {
			return true
		}
	}

	// Knight attacks.
	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, offset := range knightOffsets {
		from := pos.Offset(offset[0], offset[1])
		if from.Valid() && b.Get(from) == knight {
			return true
		}
	}

	// Adjacent enemy king.
	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, offset := range kingOffsets {
		from := pos.Offset(offset[0], offset[1])
		if from.Valid() && b.Get(from) == king {
			return true
		}
	}

	// Sliding attacks along diagonals (bishop or queen).
	bishop := chess.MakeColouredPiece(byColour, chess.Bishop)
	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	for _, dir := range diagonalDirs {
		from := pos.Offset(dir[0], dir[1])
		for from.Valid() {
			piece := b.Get(from)
			if piece != chess.Empty {
				if piece == bishop || piece == queen {
					return true
				}
				break // Blocked
			}
			from = from.Offset(dir[0], dir[1])
		}
	}

	// Sliding attacks along files and ranks (rook or queen).
	rook := chess.MakeColouredPiece(byColour, chess.Rook)
	for _, dir := range straightDirs {
		from := pos.Offset(dir[0], dir[1])
		for from.Valid() {
			piece := b.Get(from)
			if piece != chess.Empty {
				if piece == rook || piece == queen {
					return true
				}
				break // Blocked
			}
			from = from.Offset(dir[0], dir[1])
		}
	}

	return false
}
