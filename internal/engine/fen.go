// Package engine provides chess move validation and board manipulation.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ColouredPieceToFENLetter returns the FEN letter for a coloured piece:
// uppercase for White, lowercase for Black.
func ColouredPieceToFENLetter(colouredPiece chess.Piece) byte {
	letter := chess.ExtractPiece(colouredPiece).Letter()
	if chess.ExtractColour(colouredPiece) == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// NewBoardFromFEN creates a board from a six-field FEN string. A position
// in which the side that just moved is still in check is rejected.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("expected 6 fields, got %d: %w", len(parts), errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, parts[1]); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(board, parts[2]); err != nil {
		return nil, err
	}
	if err := parseEnPassant(board, parts[3]); err != nil {
		return nil, err
	}
	if err := parseClocks(board, parts[4], parts[5]); err != nil {
		return nil, err
	}
	if IsInCheck(board, board.ToMove.Opposite()) {
		return nil, fmt.Errorf("%v is in check with %v to move: %w", board.ToMove.Opposite(), board.ToMove, errors.ErrInvalidFEN)
	}

	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("expected 8 ranks, got %d: %w", len(ranks), errors.ErrInvalidFEN)
	}

	kings := map[chess.Colour]int{}
	for i, row := range ranks {
		rank := chess.Rank(chess.LastRank - i)
		col := chess.Col(chess.FirstCol)
		for _, c := range row {
			if c >= '1' && c <= '8' {
				col += chess.Col(c - '0')
				if col > chess.LastCol+1 {
					return fmt.Errorf("rank %c overflows: %w", rank, errors.ErrInvalidFEN)
				}
				continue
			}
			piece := chess.PieceFromLetter(byte(c))
			if piece == chess.Empty || c > unicode.MaxASCII {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if col > chess.LastCol {
				return fmt.Errorf("rank %c overflows: %w", rank, errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			if piece == chess.Pawn && (rank == chess.FirstRank || rank == chess.LastRank) {
				return fmt.Errorf("pawn on back rank %c%c: %w", col, rank, errors.ErrInvalidFEN)
			}

			board.Set(col, rank, chess.MakeColouredPiece(colour, piece))
			if piece == chess.King {
				kings[colour]++
				board.SetKing(colour, col, rank)
			}
			col++
		}
		if col != chess.LastCol+1 {
			return fmt.Errorf("rank %c has %d squares: %w", rank, int(col-chess.FirstCol), errors.ErrInvalidFEN)
		}
	}

	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return fmt.Errorf("need exactly one king per side, got %d white and %d black: %w",
			kings[chess.White], kings[chess.Black], errors.ErrInvalidFEN)
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, side string) error {
	switch side {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", side, errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, rights string) error {
	board.RevokeCastling(chess.White)
	board.RevokeCastling(chess.Black)

	if rights == "-" {
		return nil
	}

	for _, c := range rights {
		var right *bool
		switch c {
		case 'K':
			right = &board.WKingCastle
		case 'Q':
			right = &board.WQueenCastle
		case 'k':
			right = &board.BKingCastle
		case 'q':
			right = &board.BQueenCastle
		default:
			return fmt.Errorf("invalid castling character: %c: %w", c, errors.ErrInvalidFEN)
		}
		if *right {
			return fmt.Errorf("repeated castling character: %c: %w", c, errors.ErrInvalidFEN)
		}
		*right = true
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *chess.Board, square string) error {
	board.ClearEnPassant()
	if square == "-" {
		return nil
	}
	if len(square) != 2 || !chess.IsCol(square[0]) || (square[1] != '3' && square[1] != '6') {
		return fmt.Errorf("invalid en passant square: %s: %w", square, errors.ErrInvalidFEN)
	}
	board.EnPassant = true
	board.EPCol = chess.Col(square[0])
	board.EPRank = chess.Rank(square[1])
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, halfmove, fullmove string) error {
	hm, err := strconv.ParseUint(halfmove, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid halfmove clock: %s: %w", halfmove, errors.ErrInvalidFEN)
	}
	fm, err := strconv.ParseUint(fullmove, 10, 32)
	if err != nil || fm == 0 {
		return fmt.Errorf("invalid fullmove number: %s: %w", fullmove, errors.ErrInvalidFEN)
	}
	board.HalfmoveClock = uint(hm)
	board.MoveNumber = uint(fm)
	return nil
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", board.HalfmoveClock, board.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.Rank('8'); rank >= '1'; rank-- {
		emptyCount := 0
		for col := chess.Col('a'); col <= 'h'; col++ {
			piece := board.Get(col, rank)
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(ColouredPieceToFENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > '1' {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	for _, r := range []struct {
		set    bool
		letter byte
	}{
		{board.WKingCastle, 'K'},
		{board.WQueenCastle, 'Q'},
		{board.BKingCastle, 'k'},
		{board.BQueenCastle, 'q'},
	} {
		if r.set {
			sb.WriteByte(r.letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	if board.EnPassant {
		sb.WriteByte(byte(board.EPCol))
		sb.WriteByte(byte(board.EPRank))
	} else {
		sb.WriteByte('-')
	}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	return board
}

// SideToMove returns "White" or "Black" from the second field of a FEN
// string, or "" when the field is missing or invalid.
func SideToMove(fen string) string {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return ""
	}
	switch parts[1] {
	case "w":
		return chess.White.String()
	case "b":
		return chess.Black.String()
	}
	return ""
}
