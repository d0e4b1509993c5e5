// Package puzzle replays a puzzle transcript, an algebraic game prefix
// followed by coordinate solution moves, and collects what a flashcard
// needs: the starting FEN, the side to move and the solution in SAN.
package puzzle

import (
	"strings"
	"unicode"
)

// Transcript is the move record of one puzzle.
type Transcript struct {
	// Game holds the moves leading to the puzzle position, in SAN.
	Game []string
	// Solution holds the best moves from the puzzle position, in
	// coordinate notation such as "e2e4" or "e7e8q".
	Solution []string
	// InitialFEN is the position Game starts from. Empty means the
	// standard starting position.
	InitialFEN string
}

// gameResults are the PGN termination markers.
var gameResults = map[string]bool{
	"1-0":     true,
	"0-1":     true,
	"1/2-1/2": true,
	"*":       true,
}

// SplitTranscript splits move text into SAN tokens. Move numbers such as
// "12." or "12..." and game results are dropped; a move number glued to
// its move ("1.e4") is stripped.
func SplitTranscript(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(text) {
		if gameResults[field] {
			continue
		}
		token := stripMoveNumber(field)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// stripMoveNumber removes a leading "N." or "N..." from a field. A field
// that is only a move number becomes empty.
func stripMoveNumber(field string) string {
	digits := strings.IndexFunc(field, func(r rune) bool { return !unicode.IsDigit(r) })
	switch {
	case digits == -1:
		// All digits: not a move in any notation.
		return ""
	case digits == 0 || field[digits] != '.':
		return field
	}
	return strings.TrimLeft(field[digits:], ".")
}
