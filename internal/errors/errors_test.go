package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	sentinels := []error{
		ErrInvalidFEN, ErrMalformedMove, ErrIllegalMove, ErrAmbiguousMove,
		ErrInvalidConfig, ErrPuzzleNotFound, ErrDuplicatePuzzle,
	}
	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", sentinel)
			if !errors.Is(wrapped, sentinel) {
				t.Errorf("errors.Is(wrapped, %v) = false, want true", sentinel)
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	if errors.Is(ErrIllegalMove, ErrMalformedMove) || errors.Is(ErrAmbiguousMove, ErrIllegalMove) {
		t.Error("move sentinels must be distinct")
	}
}

// TestRejectedTranscriptError_Error verifies the error message format
func TestRejectedTranscriptError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RejectedTranscriptError
		contains []string
	}{
		{
			name: "prefix failure",
			err: &RejectedTranscriptError{
				Err:   ErrAmbiguousMove,
				Phase: PhasePrefix,
				Index: 4,
				Token: "Nc3",
			},
			contains: []string{"prefix", "move 5", "Nc3", "ambiguous move"},
		},
		{
			name: "solution failure",
			err: &RejectedTranscriptError{
				Err:   ErrIllegalMove,
				Phase: PhaseSolution,
				Index: 0,
				Token: "e2e4",
			},
			contains: []string{"solution", "move 1", "e2e4", "illegal move"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestRejectedTranscriptError_As verifies errors.As and errors.Is work through wrapping
func TestRejectedTranscriptError_As(t *testing.T) {
	rejected := &RejectedTranscriptError{
		Err:   Wrapf(ErrMalformedMove, "token %q", "e2e"),
		Phase: PhaseSolution,
		Index: 2,
		Token: "e2e",
	}
	wrapped := fmt.Errorf("resolving: %w", rejected)

	var extracted *RejectedTranscriptError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As() could not extract RejectedTranscriptError")
	}
	if extracted.Index != 2 || extracted.Phase != PhaseSolution {
		t.Errorf("extracted = %+v", extracted)
	}
	if !errors.Is(wrapped, ErrMalformedMove) {
		t.Error("errors.Is(wrapped, ErrMalformedMove) = false, want true")
	}
}

func TestPuzzleError(t *testing.T) {
	err := &PuzzleError{Err: ErrPuzzleNotFound, PuzzleID: "ATSSe", Stage: "fetch"}

	msg := err.Error()
	for _, s := range []string{"ATSSe", "fetch", "puzzle not found"} {
		if !containsIgnoreCase(msg, s) {
			t.Errorf("Error() = %q, should contain %q", msg, s)
		}
	}
	if !errors.Is(err, ErrPuzzleNotFound) {
		t.Error("errors.Is(err, ErrPuzzleNotFound) = false, want true")
	}

	bare := &PuzzleError{PuzzleID: "x"}
	if bare.Error() != "puzzle x" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "puzzle x")
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrInvalidFEN, "parsing FEN string")

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrap should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "parsing FEN string") {
		t.Errorf("Wrap should include context, got %q", wrapped.Error())
	}
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "move %d of puzzle %s", 3, "5kHIg")

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "move 3 of puzzle 5kHIg") {
		t.Errorf("Wrapf should include formatted context, got %q", wrapped.Error())
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func TestIsAs(t *testing.T) {
	err := Wrap(&PuzzleError{Err: ErrPuzzleNotFound, PuzzleID: "ATSSe", Stage: "fetch"}, "run")
	if !Is(err, ErrPuzzleNotFound) {
		t.Error("Is() should see the sentinel through PuzzleError")
	}
	var pe *PuzzleError
	if !As(err, &pe) || pe.PuzzleID != "ATSSe" {
		t.Errorf("As() = %v, want PuzzleError for ATSSe", pe)
	}
}
