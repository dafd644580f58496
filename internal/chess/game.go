package chess

// Game is the narrow interface through which the evaluator and the search
// engine consume the board/rules component. Implementations must provide
// fully legal move generation (check-filtered, including castling,
// en passant, and promotion) and cheap full-state cloning; the engine
// never mutates a board it did not clone itself.
type Game interface {
	// CurrentTurn returns the side to move.
	CurrentTurn() Colour

	// GetPiece returns the coloured piece on the given square, or false
	// if the square is empty.
	GetPiece(pos Position) (Piece, bool)

	// GetValidMoves returns all fully legal moves for the piece on the
	// given square, regardless of whose turn it is. Returns nil for an
	// empty square.
	GetValidMoves(pos Position) []Move

	// LegalMoves returns all fully legal moves for the side to move.
	LegalMoves() []Move

	// MakeMove applies the move, enforcing turn order and full legality.
	// It returns an error for illegal moves and leaves the board
	// unchanged in that case.
	MakeMove(move Move) error

	// MakeNullMove passes the turn without moving: the side to move
	// flips and any en passant opportunity is cleared. Used by null-move
	// pruning on cloned boards only.
	MakeNullMove()

	// IsCheckmate returns true if the side to move is checkmated.
	IsCheckmate() bool

	// IsStalemate returns true if the side to move is stalemated.
	IsStalemate() bool

	// HasInsufficientMaterial returns true if neither side can mate.
	HasInsufficientMaterial() bool

	// IsInCheck returns true if the given colour's king is attacked.
	IsInCheck(colour Colour) bool

	// LastMove returns the most recently applied move, or false if no
	// move has been made.
	LastMove() (Move, bool)

	// Clone returns an independent deep copy of the game state.
	Clone() Game

	// Hash returns a canonical key over (piece placement, side to move),
	// used by the position cache and the opening book.
	Hash() uint64
}
