// Package book provides a small weighted opening book. Lookups are
// deterministic: the same position always yields the same book move.
package book

import (
	"github.com/ThenerzZ/chess-engine-go/internal/board"
	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/errors"
)

// bookMove pairs a move with its selection weight. Higher weight means
// the line is preferred more often across distinct positions.
type bookMove struct {
	move   chess.Move
	weight uint64
}

// Book maps position keys to weighted candidate moves.
type Book struct {
	positions map[uint64][]bookMove
}

// New builds a book of common openings: the open games behind 1.e4
// (Ruy Lopez, Italian, Sicilian), the queen's pawn structures behind 1.d4
// (Queen's Gambit, Indian defences), and the Réti and English as
// sidelines.
func New() *Book {
	b := &Book{positions: make(map[uint64][]bookMove)}

	initial := board.NewInitial()

	// 1.e4 main lines.
	b.mustAdd(initial, "e2e4", 100)
	afterE4 := replay(initial, "e2e4")
	b.mustAdd(afterE4, "e7e5", 100)
	b.mustAdd(afterE4, "c7c5", 90)

	openGame := replay(afterE4, "e7e5")
	b.mustAdd(openGame, "g1f3", 100)
	afterNf3 := replay(openGame, "g1f3")
	b.mustAdd(afterNf3, "b8c6", 100)
	twoKnights := replay(afterNf3, "b8c6")
	b.mustAdd(twoKnights, "f1b5", 100) // Ruy Lopez
	b.mustAdd(twoKnights, "f1c4", 80)  // Italian Game

	sicilian := replay(afterE4, "c7c5")
	b.mustAdd(sicilian, "g1f3", 100)
	openSicilian := replay(sicilian, "g1f3")
	b.mustAdd(openSicilian, "d7d6", 90) // Najdorf setup
	b.mustAdd(openSicilian, "b8c6", 80) // Classical setup

	// 1.d4 main lines.
	b.mustAdd(initial, "d2d4", 90)
	afterD4 := replay(initial, "d2d4")
	b.mustAdd(afterD4, "d7d5", 100)
	b.mustAdd(afterD4, "g8f6", 90)

	closedGame := replay(afterD4, "d7d5")
	b.mustAdd(closedGame, "c2c4", 100) // Queen's Gambit
	gambit := replay(closedGame, "c2c4")
	b.mustAdd(gambit, "e7e6", 90) // Declined
	b.mustAdd(gambit, "d5c4", 70) // Accepted

	indian := replay(afterD4, "g8f6")
	b.mustAdd(indian, "c2c4", 90)

	// Sidelines from the start.
	b.mustAdd(initial, "g1f3", 60) // Réti
	b.mustAdd(initial, "c2c4", 50) // English

	return b
}

// AddLine records a candidate move for the given position. The move must
// be legal there.
func (b *Book) AddLine(g chess.Game, move chess.Move, weight uint64) error {
	if !isLegal(g, move) {
		return errors.Wrapf(errors.ErrIllegalMove, "book move %s", move)
	}
	key := g.Hash()
	b.positions[key] = append(b.positions[key], bookMove{move: move, weight: weight})
	return nil
}

// Lookup returns the book move for a position, if the position is known.
// When several candidates exist, one is picked by a weighted choice seeded
// by the position key, so repeated lookups of the same position always
// agree. Candidates that are not legal on the given board are skipped.
func (b *Book) Lookup(g chess.Game) (chess.Move, bool) {
	candidates := b.positions[g.Hash()]
	if len(candidates) == 0 {
		return chess.Move{}, false
	}

	var total uint64
	for _, candidate := range candidates {
		total += candidate.weight
	}
	if total == 0 {
		return chess.Move{}, false
	}

	chosen := g.Hash() % total
	for _, candidate := range candidates {
		if chosen < candidate.weight {
			if isLegal(g, candidate.move) {
				return candidate.move, true
			}
			return chess.Move{}, false
		}
		chosen -= candidate.weight
	}
	return chess.Move{}, false
}

// Len returns the number of positions the book knows.
func (b *Book) Len() int {
	return len(b.positions)
}

// mustAdd inserts a line given in long algebraic notation; the built-in
// book only contains legal moves, so failures are programming errors.
func (b *Book) mustAdd(g chess.Game, moveText string, weight uint64) {
	move, err := chess.ParseMove(moveText)
	if err != nil {
		panic(err)
	}
	if err := b.AddLine(g, move, weight); err != nil {
		panic(err)
	}
}

// replay clones the position and applies the given moves.
func replay(g chess.Game, moveTexts ...string) chess.Game {
	clone := g.Clone()
	for _, text := range moveTexts {
		move, err := chess.ParseMove(text)
		if err != nil {
			panic(err)
		}
		if err := clone.MakeMove(move); err != nil {
			panic(err)
		}
	}
	return clone
}

// isLegal checks a move against the board's legal move list.
func isLegal(g chess.Game, move chess.Move) bool {
	for _, legal := range g.GetValidMoves(move.From) {
		if legal.To == move.To && legal.Promotion == move.Promotion {
			return true
		}
	}
	return false
}
