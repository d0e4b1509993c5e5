package testutil

import (
	"testing"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/engine"
)

// Common positions used across package tests.
const (
	// RuyLopezFEN is the position after 1.e4 e5 2.Nf3 Nc6 3.Bb5.
	RuyLopezFEN = "r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3"
	// KiwipeteFEN is a busy middlegame with castling, pins and en passant.
	KiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	// PromotionFEN has pawns about to promote on both sides.
	PromotionFEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
)

// MustBoard parses a FEN string and calls t.Fatal on failure.
func MustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("failed to parse FEN %q: %v", fen, err)
	}
	return board
}

// Move builds a move from coordinate text such as "e2e4" or "e7e8q".
// It does not check the text; tests pass well-formed moves.
func Move(s string) chess.Move {
	move := chess.NewMove(chess.Col(s[0]), chess.Rank(s[1]), chess.Col(s[2]), chess.Rank(s[3]))
	if len(s) == 5 {
		move = move.WithPromotion(chess.PieceFromLetter(s[4]))
	}
	return move
}

// MustPlay applies coordinate moves in order and returns the final board.
// It calls t.Fatal on the first illegal move.
func MustPlay(t *testing.T, board *chess.Board, moves ...string) *chess.Board {
	t.Helper()
	for _, s := range moves {
		next, err := engine.Apply(board, Move(s))
		if err != nil {
			t.Fatalf("failed to play %s on %s: %v", s, engine.BoardToFEN(board), err)
		}
		board = next
	}
	return board
}
