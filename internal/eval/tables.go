package eval

import "github.com/ThenerzZ/chess-engine-go/internal/chess"

// pieceValues holds material values in centipawns, indexed by piece type.
// The king carries no material value; losing it ends the game instead.
var pieceValues = [chess.NumPieceValues]int{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   0,
}

// PieceValue returns the material value of a piece type in centipawns.
func PieceValue(piece chess.Piece) int {
	if piece < chess.NumPieceValues {
		return pieceValues[piece]
	}
	return 0
}

// mobilityWeights scale the legal-move count per piece type. Minor pieces
// gain the most from activity; queen mobility is discounted because raw
// queen move counts are large and mostly noise.
var mobilityWeights = [chess.NumPieceValues]int{
	chess.Pawn:   0,
	chess.Knight: 4,
	chess.Bishop: 5,
	chess.Rook:   2,
	chess.Queen:  1,
	chess.King:   0,
}

// Piece-square tables, indexed from White's perspective with a1 = 0 and
// h8 = 63. Black piece lookups mirror the square vertically.

var pawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenTable = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// kingMiddleTable rewards a castled, sheltered king.
var kingMiddleTable = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

// kingEndTable pulls the king toward the centre once queens come off.
var kingEndTable = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

// squareIndex maps a position to a table index from the given colour's
// perspective: White reads tables as laid out, Black mirrors the rank.
func squareIndex(pos chess.Position, colour chess.Colour) int {
	rank := pos.Rank
	if colour == chess.Black {
		rank = 9 - rank
	}
	return (rank-1)*8 + (pos.File - 1)
}

// pieceSquareValue returns the positional bonus for a piece of the given
// colour standing on the given square.
func pieceSquareValue(piece chess.Piece, pos chess.Position, colour chess.Colour, endgame bool) int {
	idx := squareIndex(pos, colour)
	switch piece {
	case chess.Pawn:
		return pawnTable[idx]
	case chess.Knight:
		return knightTable[idx]
	case chess.Bishop:
		return bishopTable[idx]
	case chess.Rook:
		return rookTable[idx]
	case chess.Queen:
		return queenTable[idx]
	case chess.King:
		if endgame {
			return kingEndTable[idx]
		}
		return kingMiddleTable[idx]
	}
	return 0
}
