// Package eval implements the static position evaluator. Scores are in
// centipawns from the side to move's perspective: positive means the mover
// stands better. Evaluation is pure, it never mutates the board.
package eval

import "github.com/ThenerzZ/chess-engine-go/internal/chess"

// Structural bonuses and penalties in centipawns.
const (
	doubledPawnPenalty  = -10
	isolatedPawnPenalty = -20
	passedPawnBonus     = 30
	connectedPawnBonus  = 10
	bishopPairBonus     = 30
	kingDefenderBonus   = 5
	pawnShieldBonus     = 10

	// mopUpThreshold is the material lead required before the endgame
	// king-driving term kicks in.
	mopUpThreshold = 200
)

var adjacentOffsets = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// EvaluatePosition scores the position for the side to move. Checkmate
// scores -MateScore (the mover has lost); stalemate and dead-material
// positions score exactly zero. Non-terminal scores are the sum of
// material, piece placement, mobility, pawn structure, bishop pair, king
// safety, and an endgame king-driving term. The whole sum is computed
// White-minus-Black and negated for Black, so evaluating the same
// placement from each side's perspective yields exact negations.
func EvaluatePosition(g chess.Game) int {
	if g.IsCheckmate() {
		return -MateScore
	}
	if g.IsStalemate() || g.HasInsufficientMaterial() {
		return DrawScore
	}

	endgame := isEndgame(g)

	score := materialAndPlacement(g, endgame)
	score += mobility(g)
	score += pawnStructure(g)
	score += kingSafety(g, endgame)
	if endgame {
		score += mopUp(g)
	}

	if g.CurrentTurn() == chess.White {
		return score
	}
	return -score
}

// signFor maps a colour to its contribution sign in the White-perspective
// sum.
func signFor(colour chess.Colour) int {
	if colour == chess.White {
		return 1
	}
	return -1
}

// materialAndPlacement sums material values and piece-square bonuses, plus
// the bishop pair bonus, in one board scan.
func materialAndPlacement(g chess.Game, endgame bool) int {
	score := 0
	bishops := [2]int{}

	for _, pos := range chess.AllPositions() {
		piece, ok := g.GetPiece(pos)
		if !ok {
			continue
		}
		colour := chess.ExtractColour(piece)
		pieceType := chess.ExtractPiece(piece)
		sign := signFor(colour)

		score += sign * pieceValues[pieceType]
		score += sign * pieceSquareValue(pieceType, pos, colour, endgame)

		if pieceType == chess.Bishop {
			bishops[colour]++
		}
	}

	if bishops[chess.White] >= 2 {
		score += bishopPairBonus
	}
	if bishops[chess.Black] >= 2 {
		score -= bishopPairBonus
	}
	return score
}

// mobility rewards each side's legal-move count, weighted by piece type.
// GetValidMoves works for either colour regardless of whose turn it is, so
// both sides' activity is measured on the same board.
func mobility(g chess.Game) int {
	score := 0
	for _, pos := range chess.AllPositions() {
		piece, ok := g.GetPiece(pos)
		if !ok {
			continue
		}
		weight := mobilityWeights[chess.ExtractPiece(piece)]
		if weight == 0 {
			continue
		}
		count := len(g.GetValidMoves(pos))
		score += signFor(chess.ExtractColour(piece)) * weight * count
	}
	return score
}

// pawnStructure scores doubled, isolated, passed, and connected pawns.
func pawnStructure(g chess.Game) int {
	// pawnRanks[colour][file] lists the ranks holding that colour's pawns.
	var pawnRanks [2][chess.BoardSize + 1][]int

	for _, pos := range chess.AllPositions() {
		piece, ok := g.GetPiece(pos)
		if !ok || chess.ExtractPiece(piece) != chess.Pawn {
			continue
		}
		colour := chess.ExtractColour(piece)
		pawnRanks[colour][pos.File] = append(pawnRanks[colour][pos.File], pos.Rank)
	}

	score := 0
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		sign := signFor(colour)
		own := &pawnRanks[colour]
		enemy := &pawnRanks[colour.Opposite()]

		for file := 1; file <= chess.BoardSize; file++ {
			ranks := own[file]
			if len(ranks) == 0 {
				continue
			}

			// Extra pawns stacked on one file.
			if len(ranks) > 1 {
				score += sign * doubledPawnPenalty * (len(ranks) - 1)
			}

			// No friendly pawns on either neighbouring file.
			if len(neighbourRanks(own, file)) == 0 {
				score += sign * isolatedPawnPenalty
			}

			for _, rank := range ranks {
				if isPassed(enemy, file, rank, colour) {
					score += sign * passedPawnBonus
				}
				if isConnected(own, file, rank) {
					score += sign * connectedPawnBonus
				}
			}
		}
	}
	return score
}

// neighbourRanks collects the ranks of pawns on the files adjacent to file.
func neighbourRanks(files *[chess.BoardSize + 1][]int, file int) []int {
	var ranks []int
	if file > 1 {
		ranks = append(ranks, files[file-1]...)
	}
	if file < chess.BoardSize {
		ranks = append(ranks, files[file+1]...)
	}
	return ranks
}

// isPassed reports whether no enemy pawn on this or a neighbouring file
// stands ahead of the pawn.
func isPassed(enemy *[chess.BoardSize + 1][]int, file, rank int, colour chess.Colour) bool {
	for f := file - 1; f <= file+1; f++ {
		if f < 1 || f > chess.BoardSize {
			continue
		}
		for _, enemyRank := range enemy[f] {
			if colour == chess.White && enemyRank > rank {
				return false
			}
			if colour == chess.Black && enemyRank < rank {
				return false
			}
		}
	}
	return true
}

// isConnected reports whether a friendly pawn stands within one rank on a
// neighbouring file.
func isConnected(own *[chess.BoardSize + 1][]int, file, rank int) bool {
	for _, r := range neighbourRanks(own, file) {
		if r >= rank-1 && r <= rank+1 {
			return true
		}
	}
	return false
}

// kingSafety rewards defenders adjacent to the king and an intact pawn
// shield in front of it. The term is damped in the endgame, where king
// activity matters more than shelter.
func kingSafety(g chess.Game, endgame bool) int {
	score := 0
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		king, ok := findKing(g, colour)
		if !ok {
			continue
		}
		safety := 0

		for _, offset := range adjacentOffsets {
			pos := king.Offset(offset[0], offset[1])
			if !pos.Valid() {
				continue
			}
			if piece, occupied := g.GetPiece(pos); occupied && chess.ExtractColour(piece) == colour {
				safety += kingDefenderBonus
			}
		}

		shieldPawn := chess.MakeColouredPiece(colour, chess.Pawn)
		dir := chess.ColourOffset(colour)
		for df := -1; df <= 1; df++ {
			pos := king.Offset(df, dir)
			if !pos.Valid() {
				continue
			}
			if piece, occupied := g.GetPiece(pos); occupied && piece == shieldPawn {
				safety += pawnShieldBonus
			}
		}

		if endgame {
			safety /= 4
		}
		score += signFor(colour) * safety
	}
	return score
}

// mopUp rewards the materially stronger side for boxing the defending king
// toward the edge and closing the distance between the kings. Only applied
// in the endgame phase.
func mopUp(g chess.Game) int {
	lead := materialBalance(g)
	if lead > -mopUpThreshold && lead < mopUpThreshold {
		return 0
	}

	wKing, wok := findKing(g, chess.White)
	bKing, bok := findKing(g, chess.Black)
	if !wok || !bok {
		return 0
	}

	closeness := 14 - manhattanDistance(wKing, bKing)
	if lead > 0 {
		return centreDistance(bKing)*10 + closeness*4
	}
	return -(centreDistance(wKing)*10 + closeness*4)
}

// materialBalance sums raw material, White minus Black.
func materialBalance(g chess.Game) int {
	balance := 0
	for _, pos := range chess.AllPositions() {
		piece, ok := g.GetPiece(pos)
		if !ok {
			continue
		}
		balance += signFor(chess.ExtractColour(piece)) * pieceValues[chess.ExtractPiece(piece)]
	}
	return balance
}

// isEndgame detects the endgame phase: a side with its queen still on the
// board needs more than one other non-pawn piece to keep the position in
// the middlegame.
func isEndgame(g chess.Game) bool {
	var queens, others [2]int
	for _, pos := range chess.AllPositions() {
		piece, ok := g.GetPiece(pos)
		if !ok {
			continue
		}
		colour := chess.ExtractColour(piece)
		switch chess.ExtractPiece(piece) {
		case chess.Queen:
			queens[colour]++
		case chess.Knight, chess.Bishop, chess.Rook:
			others[colour]++
		}
	}
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if queens[colour] > 0 && others[colour] > 1 {
			return false
		}
	}
	return true
}

// findKing locates the king of the given colour.
func findKing(g chess.Game, colour chess.Colour) (chess.Position, bool) {
	king := chess.MakeColouredPiece(colour, chess.King)
	for _, pos := range chess.AllPositions() {
		if piece, ok := g.GetPiece(pos); ok && piece == king {
			return pos, true
		}
	}
	return chess.Position{}, false
}

// centreDistance is the Chebyshev distance from the four centre squares.
func centreDistance(pos chess.Position) int {
	df := pos.File - 4
	if pos.File > 4 {
		df = pos.File - 5
	}
	dr := pos.Rank - 4
	if pos.Rank > 4 {
		dr = pos.Rank - 5
	}
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// manhattanDistance is the file distance plus rank distance between two
// squares.
func manhattanDistance(a, b chess.Position) int {
	df := a.File - b.File
	if df < 0 {
		df = -df
	}
	dr := a.Rank - b.Rank
	if dr < 0 {
		dr = -dr
	}
	return df + dr
}
