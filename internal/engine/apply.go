package engine

import (
	"fmt"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// Apply plays a move for the side to move and returns the resulting board.
// The input board is never modified. A move that breaks any rule, including
// one that leaves the mover's own king in check, fails with
// errors.ErrIllegalMove.
func Apply(board *chess.Board, move chess.Move) (*chess.Board, error) {
	if err := validateMove(board, move); err != nil {
		return nil, err
	}
	next := board.Copy()
	makeMove(next, move)
	if IsInCheck(next, board.ToMove) {
		return nil, fmt.Errorf("%s: leaves own king in check: %w", move, errors.ErrIllegalMove)
	}
	return next, nil
}

// IsLegal reports whether the move can be played in the position.
func IsLegal(board *chess.Board, move chess.Move) bool {
	_, err := Apply(board, move)
	return err == nil
}

// validateMove checks everything about a move except king safety after it.
func validateMove(board *chess.Board, move chess.Move) error {
	if !chess.OnBoard(move.FromCol, move.FromRank) || !chess.OnBoard(move.ToCol, move.ToRank) {
		return fmt.Errorf("%s: square off the board: %w", move, errors.ErrIllegalMove)
	}

	colour := board.ToMove
	piece := board.Get(move.FromCol, move.FromRank)
	if piece == chess.Empty {
		return fmt.Errorf("%s: no piece on %s: %w", move, move.From(), errors.ErrIllegalMove)
	}
	if chess.ExtractColour(piece) != colour {
		return fmt.Errorf("%s: piece on %s belongs to %v: %w", move, move.From(), colour.Opposite(), errors.ErrIllegalMove)
	}

	target := board.Get(move.ToCol, move.ToRank)
	if chess.IsOccupied(target) && chess.ExtractColour(target) == colour {
		return fmt.Errorf("%s: %s is occupied by own piece: %w", move, move.To(), errors.ErrIllegalMove)
	}
	if chess.IsOccupied(target) && chess.ExtractPiece(target) == chess.King {
		return fmt.Errorf("%s: kings cannot be captured: %w", move, errors.ErrIllegalMove)
	}

	pieceType := chess.ExtractPiece(piece)
	if pieceType == chess.Pawn {
		return validatePawnMove(board, move, colour)
	}
	if move.IsPromotion() {
		return fmt.Errorf("%s: only pawns promote: %w", move, errors.ErrIllegalMove)
	}
	if pieceType == chess.King && isCastlingMove(move, colour) {
		return validateCastle(board, move, colour)
	}
	if !canPieceMove(board, pieceType, move.FromCol, move.FromRank, move.ToCol, move.ToRank) {
		return fmt.Errorf("%s: %v on %s cannot reach %s: %w", move, pieceType, move.From(), move.To(), errors.ErrIllegalMove)
	}
	return nil
}

// makeMove updates the board in place for a move already known to be
// valid: moves the piece, removes any capture, relocates the castling rook,
// and updates castling rights, en passant, clocks and side to move.
func makeMove(board *chess.Board, move chess.Move) {
	colour := board.ToMove
	piece := board.Get(move.FromCol, move.FromRank)
	pieceType := chess.ExtractPiece(piece)
	captured := board.Get(move.ToCol, move.ToRank)

	enPassant := pieceType == chess.Pawn && isEnPassantCapture(board, move)
	castle := pieceType == chess.King && isCastlingMove(move, colour)

	board.Set(move.FromCol, move.FromRank, chess.Empty)
	if move.IsPromotion() {
		board.Set(move.ToCol, move.ToRank, chess.MakeColouredPiece(colour, move.Promotion))
	} else {
		board.Set(move.ToCol, move.ToRank, piece)
	}

	if enPassant {
		// The captured pawn sits beside the origin, on the destination file.
		board.Set(move.ToCol, move.FromRank, chess.Empty)
	}
	if castle {
		applyCastle(board, move)
	}

	if pieceType == chess.King {
		board.SetKing(colour, move.ToCol, move.ToRank)
		board.RevokeCastling(colour)
	}
	updateCastlingRights(board, move.FromCol, move.FromRank)
	updateCastlingRights(board, move.ToCol, move.ToRank)

	board.ClearEnPassant()
	if pieceType == chess.Pawn && abs(int(move.ToRank)-int(move.FromRank)) == 2 {
		board.EnPassant = true
		board.EPCol = move.FromCol
		board.EPRank = chess.Rank(int(move.FromRank) + chess.ColourOffset(colour))
	}

	if pieceType == chess.Pawn || chess.IsOccupied(captured) || enPassant {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}

	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()
}
