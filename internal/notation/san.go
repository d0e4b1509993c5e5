package notation

import (
	"strings"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/engine"
)

// ToSAN writes a move in Standard Algebraic Notation. before is the
// position the move is played from and after the position it produces;
// after decides the check and mate suffixes.
func ToSAN(before *chess.Board, move chess.Move, after *chess.Board) string {
	piece := before.Get(move.FromCol, move.FromRank)
	if !chess.IsOccupied(piece) {
		return move.String()
	}

	var sb strings.Builder
	pieceType := chess.ExtractPiece(piece)

	switch {
	case isCastle(before, move) && move.ToCol > move.FromCol:
		sb.WriteString("O-O")
	case isCastle(before, move):
		sb.WriteString("O-O-O")
	default:
		writeMove(&sb, before, move, pieceType)
	}

	writeCheckSuffix(&sb, after)
	return sb.String()
}

// writeMove writes everything but the check suffix for a non-castling move.
func writeMove(sb *strings.Builder, before *chess.Board, move chess.Move, pieceType chess.Piece) {
	if pieceType != chess.Pawn {
		sb.WriteByte(pieceType.Letter())
		sb.WriteString(disambiguation(before, move, pieceType))
	}

	if isCaptureMove(before, move, pieceType) {
		if pieceType == chess.Pawn {
			sb.WriteByte(byte(move.FromCol))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(move.To())

	if move.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(move.Promotion.Letter())
	}
}

// isCaptureMove reports whether the move takes a piece, counting en
// passant, where the destination square is empty.
func isCaptureMove(before *chess.Board, move chess.Move, pieceType chess.Piece) bool {
	if chess.IsOccupied(before.Get(move.ToCol, move.ToRank)) {
		return true
	}
	return pieceType == chess.Pawn && move.FromCol != move.ToCol
}

// writeCheckSuffix appends "#" for mate or "+" for check.
func writeCheckSuffix(sb *strings.Builder, after *chess.Board) {
	if after == nil || !engine.IsInCheck(after, after.ToMove) {
		return
	}
	if engine.HasLegalMoves(after) {
		sb.WriteByte('+')
	} else {
		sb.WriteByte('#')
	}
}

// disambiguation returns the origin file, rank, or both, needed to tell
// the move apart from other legal moves of the same piece kind to the same
// square. The file is preferred; the rank is used when the file is shared;
// both when each is shared with some other piece.
func disambiguation(before *chess.Board, move chess.Move, pieceType chess.Piece) string {
	if pieceType == chess.King {
		return ""
	}

	var ambiguous, sameFile, sameRank bool
	for _, other := range engine.LegalMoves(before) {
		if other.ToCol != move.ToCol || other.ToRank != move.ToRank {
			continue
		}
		if other.FromCol == move.FromCol && other.FromRank == move.FromRank {
			continue
		}
		if chess.ExtractPiece(before.Get(other.FromCol, other.FromRank)) != pieceType {
			continue
		}
		ambiguous = true
		if other.FromCol == move.FromCol {
			sameFile = true
		}
		if other.FromRank == move.FromRank {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(byte(move.FromCol))
	case !sameRank:
		return string(byte(move.FromRank))
	}
	return move.From()
}

// ToFEN returns the FEN of a position.
func ToFEN(board *chess.Board) string {
	return engine.BoardToFEN(board)
}

// SAN plays a move on the board and returns its SAN together with the
// resulting position. The move must be legal.
func SAN(board *chess.Board, move chess.Move) (string, *chess.Board, error) {
	after, err := engine.Apply(board, move)
	if err != nil {
		return "", nil, err
	}
	return ToSAN(board, move, after), after, nil
}
