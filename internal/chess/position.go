package chess

import "fmt"

// Position identifies a square by file and rank, each 1..8.
// File 1 is the a-file, rank 1 is White's back rank.
// It is an immutable value type.
type Position struct {
	File int
	Rank int
}

// Valid returns true if the position lies on the board.
func (p Position) Valid() bool {
	return p.File >= 1 && p.File <= BoardSize && p.Rank >= 1 && p.Rank <= BoardSize
}

// String returns the algebraic name of the square (e.g., "e4").
func (p Position) String() string {
	if !p.Valid() {
		return "??"
	}
	return string([]byte{byte('a' + p.File - 1), byte('0' + p.Rank)})
}

// Offset returns the position shifted by the given file and rank deltas.
// The result may be off the board; callers check Valid.
func (p Position) Offset(df, dr int) Position {
	return Position{File: p.File + df, Rank: p.Rank + dr}
}

// ParsePosition parses an algebraic square name such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	return Position{File: int(s[0]-'a') + 1, Rank: int(s[1] - '0')}, nil
}

// AllPositions returns every square on the board in file-major order.
// Useful for whole-board scans in the evaluator and tests.
func AllPositions() []Position {
	squares := make([]Position, 0, BoardSize*BoardSize)
	for file := 1; file <= BoardSize; file++ {
		for rank := 1; rank <= BoardSize; rank++ {
			squares = append(squares, Position{File: file, Rank: rank})
		}
	}
	return squares
}
