package board

import "github.com/ThenerzZ/chess-engine-go/internal/chess"

// IsCheckmate returns true if the side to move is in check and has no
// legal move.
func (b *Board) IsCheckmate() bool {
	return b.IsInCheck(b.toMove) && !b.HasLegalMoves(b.toMove)
}

// IsStalemate returns true if the side to move is not in check but has
// no legal move.
func (b *Board) IsStalemate() bool {
	return !b.IsInCheck(b.toMove) && !b.HasLegalMoves(b.toMove)
}

// HasInsufficientMaterial returns true if neither side has enough
// material to deliver mate:
//   - K vs K
//   - K+B vs K or K+N vs K
//   - K+B vs K+B with both bishops on the same square colour
func (b *Board) HasInsufficientMaterial() bool {
	var whiteMinors, blackMinors []chess.Piece
	var whiteBishopOnLight, blackBishopOnLight bool

	for file := 1; file <= chess.BoardSize; file++ {
		for rank := 1; rank <= chess.BoardSize; rank++ {
			pos := chess.Position{File: file, Rank: rank}
			piece := b.Get(pos)
			if piece == chess.Empty {
				continue
			}

			colour := chess.ExtractColour(piece)
			pieceType := chess.ExtractPiece(piece)

			// Kings don't count for material.
			if pieceType == chess.King {
				continue
			}

			// Any pawn, rook, or queen means sufficient material.
			if pieceType == chess.Pawn || pieceType == chess.Rook || pieceType == chess.Queen {
				return false
			}

			if colour == chess.White {
				whiteMinors = append(whiteMinors, pieceType)
				if pieceType == chess.Bishop {
					whiteBishopOnLight = isLightSquare(pos)
				}
			} else {
				blackMinors = append(blackMinors, pieceType)
				if pieceType == chess.Bishop {
					blackBishopOnLight = isLightSquare(pos)
				}
			}
		}
	}

	// K vs K
	if len(whiteMinors) == 0 && len(blackMinors) == 0 {
		return true
	}

	// K+B vs K or K+N vs K
	if len(whiteMinors) == 0 && len(blackMinors) == 1 {
		return true
	}
	if len(blackMinors) == 0 && len(whiteMinors) == 1 {
		return true
	}

	// K+B vs K+B with same-colour bishops
	if len(whiteMinors) == 1 && len(blackMinors) == 1 {
		if whiteMinors[0] == chess.Bishop && blackMinors[0] == chess.Bishop {
			return whiteBishopOnLight == blackBishopOnLight
		}
	}

	return false
}

// isLightSquare returns true if the given square is a light square.
func isLightSquare(pos chess.Position) bool {
	return (pos.File+pos.Rank)%2 == 1
}
