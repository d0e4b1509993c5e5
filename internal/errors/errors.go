// Package errors provides sentinel errors and error types for puzzle-cards.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrMalformedMove indicates a move token that does not have the shape
	// of a move in the expected notation.
	ErrMalformedMove = errors.New("malformed move")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrAmbiguousMove indicates an algebraic move matching more than one legal move.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPuzzleNotFound indicates the puzzle source has no puzzle with the requested id.
	ErrPuzzleNotFound = errors.New("puzzle not found")

	// ErrDuplicatePuzzle indicates a puzzle whose starting position was already carded.
	ErrDuplicatePuzzle = errors.New("duplicate puzzle")
)

// Phase names the stage of puzzle resolution in which a failure occurred.
type Phase string

const (
	PhasePrefix   Phase = "prefix"
	PhaseSolution Phase = "solution"
)

// RejectedTranscriptError is returned when a puzzle transcript cannot be
// replayed. It records which token failed, where, and why. The cause is one
// of ErrMalformedMove, ErrIllegalMove or ErrAmbiguousMove.
type RejectedTranscriptError struct {
	Err   error  // The underlying error
	Phase Phase  // Game prefix or solution
	Index int    // 0-based index of the failing token within its phase
	Token string // The token that could not be replayed
}

// Error returns a formatted error message including all available context.
func (e *RejectedTranscriptError) Error() string {
	msg := fmt.Sprintf("rejected transcript: %s move %d %q", e.Phase, e.Index+1, e.Token)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the wrapper.
func (e *RejectedTranscriptError) Unwrap() error {
	return e.Err
}

// PuzzleError wraps errors with puzzle context for the orchestration layer.
type PuzzleError struct {
	Err      error  // The underlying error
	PuzzleID string // Lichess puzzle id
	Stage    string // fetch, resolve, render, write (if known)
}

// Error returns a formatted error message including all available context.
func (e *PuzzleError) Error() string {
	parts := []string{fmt.Sprintf("puzzle %s", e.PuzzleID)}
	if e.Stage != "" {
		parts = append(parts, e.Stage)
	}
	context := strings.Join(parts, ", ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *PuzzleError) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
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
