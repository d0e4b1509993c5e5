package notation

import (
	"fmt"
	"strings"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/engine"
	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// castleSide distinguishes the two castling forms of a SAN token.
type castleSide int

const (
	noCastle castleSide = iota
	kingsideCastle
	queensideCastle
)

// sanPattern is what a SAN token says about a move, before it is matched
// against the legal moves of a position. Zero coordinates mean "any".
type sanPattern struct {
	piece     chess.Piece
	fromCol   chess.Col
	fromRank  chess.Rank
	toCol     chess.Col
	toRank    chess.Rank
	promotion chess.Piece
	castle    castleSide
}

// isPiece returns the piece named by an uppercase SAN letter, or Empty.
// Lowercase letters are files, so "b" is never a bishop here.
func isPiece(c byte) chess.Piece {
	switch c {
	case 'N', 'B', 'R', 'Q', 'K':
		return chess.PieceFromLetter(c)
	}
	return chess.Empty
}

// isCapture returns true if c is a capture character.
func isCapture(c byte) bool {
	return c == 'x' || c == 'X' || c == ':'
}

// isAnnotation returns true for the check, mate and commentary suffixes
// that may trail a move.
func isAnnotation(c byte) bool {
	return c == '+' || c == '#' || c == '!' || c == '?'
}

// trimSuffixes strips trailing annotations and an "e.p." marker.
func trimSuffixes(token string) string {
	for {
		switch {
		case len(token) > 0 && isAnnotation(token[len(token)-1]):
			token = token[:len(token)-1]
		case strings.HasSuffix(token, "e.p."):
			token = strings.TrimSpace(strings.TrimSuffix(token, "e.p."))
		default:
			return token
		}
	}
}

// parseCastle recognises O-O and O-O-O, also written with zeros.
func parseCastle(token string) castleSide {
	switch strings.ReplaceAll(token, "0", "O") {
	case "O-O", "OO":
		return kingsideCastle
	case "O-O-O", "OOO":
		return queensideCastle
	}
	return noCastle
}

// parseSAN splits a SAN token into its parts. It checks shape only.
func parseSAN(token string) (sanPattern, error) {
	var p sanPattern
	malformed := func(reason string) (sanPattern, error) {
		return sanPattern{}, fmt.Errorf("%q: %s: %w", token, reason, errors.ErrMalformedMove)
	}

	text := trimSuffixes(strings.TrimSpace(token))
	if text == "" {
		return malformed("empty move")
	}

	if p.castle = parseCastle(text); p.castle != noCastle {
		p.piece = chess.King
		return p, nil
	}

	p.piece = chess.Pawn
	if piece := isPiece(text[0]); piece != chess.Empty {
		p.piece = piece
		text = text[1:]
	}

	// Promotion: e8=Q, or e8Q without the equals sign.
	p.promotion = chess.Empty
	if i := strings.IndexByte(text, '='); i >= 0 {
		if i != len(text)-2 {
			return malformed("bad promotion")
		}
		p.promotion = isPiece(text[i+1])
		if p.promotion == chess.Empty || p.promotion == chess.King {
			return malformed("bad promotion piece")
		}
		text = text[:i]
	} else if p.piece == chess.Pawn && len(text) > 2 {
		if piece := isPiece(text[len(text)-1]); piece != chess.Empty && piece != chess.King {
			p.promotion = piece
			text = text[:len(text)-1]
		}
	}
	if p.promotion != chess.Empty && p.piece != chess.Pawn {
		return malformed("only pawns promote")
	}

	// What is left is [file][rank][x]file rank.
	if i := strings.IndexFunc(text, func(r rune) bool { return r < 128 && isCapture(byte(r)) }); i >= 0 {
		text = text[:i] + text[i+1:]
	}
	if len(text) < 2 || len(text) > 4 {
		return malformed("bad length")
	}

	dest := text[len(text)-2:]
	if !chess.IsCol(dest[0]) || !chess.IsRank(dest[1]) {
		return malformed("bad destination")
	}
	p.toCol, p.toRank = chess.Col(dest[0]), chess.Rank(dest[1])

	for _, c := range []byte(text[:len(text)-2]) {
		switch {
		case chess.IsCol(c) && p.fromCol == 0 && p.fromRank == 0:
			p.fromCol = chess.Col(c)
		case chess.IsRank(c) && p.fromRank == 0:
			p.fromRank = chess.Rank(c)
		default:
			return malformed("bad disambiguation")
		}
	}

	// A pawn move without an origin file stays on its file.
	if p.piece == chess.Pawn && p.fromCol == 0 {
		p.fromCol = p.toCol
	}
	return p, nil
}

// matches reports whether a legal move fits the pattern.
func (p sanPattern) matches(board *chess.Board, move chess.Move) bool {
	if chess.ExtractPiece(board.Get(move.FromCol, move.FromRank)) != p.piece {
		return false
	}

	if p.castle != noCastle {
		home := chess.HomeRank(board.ToMove)
		toCol := chess.Col('g')
		if p.castle == queensideCastle {
			toCol = 'c'
		}
		return move.FromCol == 'e' && move.FromRank == home && move.ToCol == toCol && move.ToRank == home
	}

	if move.ToCol != p.toCol || move.ToRank != p.toRank {
		return false
	}
	if p.fromCol != 0 && move.FromCol != p.fromCol {
		return false
	}
	if p.fromRank != 0 && move.FromRank != p.fromRank {
		return false
	}
	if p.piece == chess.King && isCastle(board, move) {
		return false
	}
	return move.Promotion == p.promotion
}

// DecodeAlgebraic finds the legal move named by a SAN token such as "Nf3",
// "exd5", "Nbd7", "e8=Q+" or "O-O". Every legal move of the position is
// matched against the token; exactly one must remain. None left fails with
// errors.ErrIllegalMove, more than one with errors.ErrAmbiguousMove.
func DecodeAlgebraic(board *chess.Board, token string) (chess.Move, error) {
	pattern, err := parseSAN(token)
	if err != nil {
		return chess.Move{}, err
	}

	var candidates []chess.Move
	for _, move := range engine.LegalMoves(board) {
		if pattern.matches(board, move) {
			candidates = append(candidates, move)
		}
	}

	switch len(candidates) {
	case 0:
		return chess.Move{}, fmt.Errorf("%q: no legal move matches: %w", token, errors.ErrIllegalMove)
	case 1:
		return candidates[0], nil
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.String()
	}
	return chess.Move{}, fmt.Errorf("%q: matches %s: %w", token, strings.Join(names, ", "), errors.ErrAmbiguousMove)
}

// isCastle reports whether a king move is a castling move.
func isCastle(board *chess.Board, move chess.Move) bool {
	piece := board.Get(move.FromCol, move.FromRank)
	if chess.ExtractPiece(piece) != chess.King || !chess.IsOccupied(piece) {
		return false
	}
	diff := int(move.ToCol) - int(move.FromCol)
	return move.FromRank == move.ToRank && (diff == 2 || diff == -2)
}
