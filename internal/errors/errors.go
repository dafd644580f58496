// Package errors provides sentinel errors and error types for the chess
// engine. It defines common error conditions and structured error types
// that preserve context while allowing error inspection with errors.Is()
// and errors.As().
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoPiece indicates a move from an empty square.
	ErrNoPiece = errors.New("no piece on square")

	// ErrWrongTurn indicates a move by the side not on turn.
	ErrWrongTurn = errors.New("not that side's turn")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameNotFound indicates an unknown game session identifier.
	ErrGameNotFound = errors.New("game not found")

	// ErrGameOver indicates an operation on a finished game.
	ErrGameOver = errors.New("game is over")
)

// MoveError wraps errors with move context. It implements the error
// interface and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err      error  // The underlying error
	MoveText string // The move that caused the error
	Ply      int    // Ply number where the error occurred (0 if not applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	msg := fmt.Sprintf("move %q", e.MoveText)
	if e.Ply > 0 {
		msg += fmt.Sprintf(" at ply %d", e.Ply)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers don't need both this package and the standard
// library errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
