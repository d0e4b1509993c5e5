package engine

import (
	"fmt"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// startRank returns the rank from which the given colour's pawns may
// advance two squares.
func startRank(colour chess.Colour) chess.Rank {
	if colour == chess.White {
		return '2'
	}
	return '7'
}

// validatePawnMove checks the pawn-specific rules for a move: single and
// double advances, captures, en passant and promotion.
func validatePawnMove(board *chess.Board, move chess.Move, colour chess.Colour) error {
	dir := chess.ColourOffset(colour)
	colDiff := int(move.ToCol) - int(move.FromCol)
	rankDiff := int(move.ToRank) - int(move.FromRank)
	target := board.Get(move.ToCol, move.ToRank)

	switch {
	case colDiff == 0 && rankDiff == dir:
		if target != chess.Empty {
			return fmt.Errorf("%s: pawn advance blocked on %s: %w", move, move.To(), errors.ErrIllegalMove)
		}

	case colDiff == 0 && rankDiff == 2*dir:
		if move.FromRank != startRank(colour) {
			return fmt.Errorf("%s: double pawn advance from %s: %w", move, move.From(), errors.ErrIllegalMove)
		}
		midCol, midRank := offset(move.FromCol, move.FromRank, 0, dir)
		if board.Get(midCol, midRank) != chess.Empty || target != chess.Empty {
			return fmt.Errorf("%s: pawn advance blocked: %w", move, errors.ErrIllegalMove)
		}

	case abs(colDiff) == 1 && rankDiff == dir:
		if isEnPassantCapture(board, move) {
			victim := board.Get(move.ToCol, move.FromRank)
			if victim != chess.MakeColouredPiece(colour.Opposite(), chess.Pawn) {
				return fmt.Errorf("%s: no pawn to capture en passant: %w", move, errors.ErrIllegalMove)
			}
			break
		}
		if !chess.IsOccupied(target) {
			if target == chess.Empty && isEnPassantShape(move, colour) {
				return fmt.Errorf("%s: no en passant target on %s: %w", move, move.To(), errors.ErrIllegalMove)
			}
			return fmt.Errorf("%s: pawn capture on empty square %s: %w", move, move.To(), errors.ErrIllegalMove)
		}

	default:
		return fmt.Errorf("%s: pawns cannot move that way: %w", move, errors.ErrIllegalMove)
	}

	promoting := move.ToRank == chess.PromotionRank(colour)
	switch {
	case promoting && !move.IsPromotion():
		return fmt.Errorf("%s: promotion piece required: %w", move, errors.ErrIllegalMove)
	case promoting && !isPromotionPiece(move.Promotion):
		return fmt.Errorf("%s: cannot promote to %v: %w", move, move.Promotion, errors.ErrIllegalMove)
	case !promoting && move.IsPromotion():
		return fmt.Errorf("%s: promotion off the last rank: %w", move, errors.ErrIllegalMove)
	}
	return nil
}

// isEnPassantCapture reports whether a diagonal pawn move lands on the
// board's en passant target square.
func isEnPassantCapture(board *chess.Board, move chess.Move) bool {
	return board.EnPassant &&
		move.ToCol == board.EPCol && move.ToRank == board.EPRank &&
		move.FromCol != move.ToCol &&
		chess.ExtractPiece(board.Get(move.FromCol, move.FromRank)) == chess.Pawn
}

// isEnPassantShape reports whether a diagonal pawn move ends on the rank
// where en passant captures land for the given colour.
func isEnPassantShape(move chess.Move, colour chess.Colour) bool {
	if colour == chess.White {
		return move.ToRank == '6'
	}
	return move.ToRank == '3'
}

// isPromotionPiece reports whether a pawn may promote to the given piece.
func isPromotionPiece(piece chess.Piece) bool {
	switch piece {
	case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
		return true
	}
	return false
}

// pawnTargets lists the candidate destinations of a pawn, including both
// advances and both diagonals. Moves to the last rank are expanded into
// the four promotions.
func pawnTargets(fromCol chess.Col, fromRank chess.Rank, colour chess.Colour) []chess.Move {
	dir := chess.ColourOffset(colour)
	var moves []chess.Move
	for _, d := range [][2]int{{0, dir}, {0, 2 * dir}, {-1, dir}, {1, dir}} {
		toCol, toRank := offset(fromCol, fromRank, d[0], d[1])
		if !chess.OnBoard(toCol, toRank) {
			continue
		}
		move := chess.NewMove(fromCol, fromRank, toCol, toRank)
		if toRank == chess.PromotionRank(colour) {
			for _, p := range []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight} {
				moves = append(moves, move.WithPromotion(p))
			}
			continue
		}
		moves = append(moves, move)
	}
	return moves
}
