// Package hashing provides Zobrist position keys for the chess engine.
// The position cache and the opening book index positions by these keys.
package hashing

import (
	"github.com/ThenerzZ/chess-engine-go/internal/chess"
)

// PieceSource is the minimal view of a position needed to compute its key.
type PieceSource interface {
	GetPiece(pos chess.Position) (chess.Piece, bool)
	CurrentTurn() chess.Colour
}

// numColouredPieces bounds the coloured-piece encoding: the largest value
// is White King.
const numColouredPieces = int(chess.King)<<chess.PieceShift + int(chess.White) + 1

var (
	// pieceKeys[colouredPiece][square] is the key contribution of that
	// piece standing on that square.
	pieceKeys [numColouredPieces][64]uint64

	// sideKey is mixed in when Black is to move.
	sideKey uint64
)

func init() {
	state := uint64(0x9E3779B97F4A7C15)
	for piece := range pieceKeys {
		for square := range pieceKeys[piece] {
			pieceKeys[piece][square] = splitmix64(&state)
		}
	}
	sideKey = splitmix64(&state)
}

// splitmix64 is a small deterministic PRNG. A fixed seed keeps keys stable
// across runs, so cached scores and book lookups are reproducible.
func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// PositionKey computes the Zobrist key over piece placement and side to
// move. Two positions with identical placement and turn hash identically.
func PositionKey(src PieceSource) uint64 {
	var key uint64
	for file := 1; file <= chess.BoardSize; file++ {
		for rank := 1; rank <= chess.BoardSize; rank++ {
			pos := chess.Position{File: file, Rank: rank}
			piece, ok := src.GetPiece(pos)
			if !ok {
				continue
			}
			square := (rank-1)*chess.BoardSize + (file - 1)
			key ^= pieceKeys[piece][square]
		}
	}
	if src.CurrentTurn() == chess.Black {
		key ^= sideKey
	}
	return key
}
