package engine

import (
	"fmt"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// isCastlingMove reports whether a king move is a castling attempt: two
// files sideways along the home rank from the e-file.
func isCastlingMove(move chess.Move, colour chess.Colour) bool {
	home := chess.HomeRank(colour)
	return move.FromCol == 'e' && move.FromRank == home &&
		move.ToRank == home && (move.ToCol == 'g' || move.ToCol == 'c')
}

// castlingRookCols returns the rook's origin and destination files.
func castlingRookCols(kingside bool) (from, to chess.Col) {
	if kingside {
		return 'h', 'f'
	}
	return 'a', 'd'
}

// validateCastle checks the castling rules: the right must still be held,
// the rook must stand on its corner, the squares between king and rook must
// be empty, and the king may not castle out of, through, or into check.
func validateCastle(board *chess.Board, move chess.Move, colour chess.Colour) error {
	kingside := move.ToCol == 'g'
	if !board.CanCastle(colour, kingside) {
		return fmt.Errorf("%s: castling right already lost: %w", move, errors.ErrIllegalMove)
	}

	rank := chess.HomeRank(colour)
	rookFrom, _ := castlingRookCols(kingside)
	if board.Get(rookFrom, rank) != chess.MakeColouredPiece(colour, chess.Rook) {
		return fmt.Errorf("%s: no rook on %c%c: %w", move, rookFrom, rank, errors.ErrIllegalMove)
	}
	if !isPathClear(board, move.FromCol, rank, rookFrom, rank) {
		return fmt.Errorf("%s: pieces between king and rook: %w", move, errors.ErrIllegalMove)
	}

	enemy := colour.Opposite()
	dir := sign(int(move.ToCol) - int(move.FromCol))
	for col := move.FromCol; ; col = chess.Col(int(col) + dir) {
		if IsSquareAttacked(board, col, rank, enemy) {
			return fmt.Errorf("%s: king passes through check on %c%c: %w", move, col, rank, errors.ErrIllegalMove)
		}
		if col == move.ToCol {
			break
		}
	}
	return nil
}

// applyCastle relocates the rook for a castling king move.
// The king itself has already been moved by the caller.
func applyCastle(board *chess.Board, move chess.Move) {
	rookFrom, rookTo := castlingRookCols(move.ToCol == 'g')
	rook := board.Get(rookFrom, move.FromRank)
	board.Set(rookFrom, move.FromRank, chess.Empty)
	board.Set(rookTo, move.FromRank, rook)
}

// updateCastlingRights removes the right tied to a corner square when
// anything moves from or to it: the rook left, or it was captured.
func updateCastlingRights(board *chess.Board, col chess.Col, rank chess.Rank) {
	switch {
	case col == 'h' && rank == '1':
		board.WKingCastle = false
	case col == 'a' && rank == '1':
		board.WQueenCastle = false
	case col == 'h' && rank == '8':
		board.BKingCastle = false
	case col == 'a' && rank == '8':
		board.BQueenCastle = false
	}
}
