// Package notation converts between move text and board moves: coordinate
// notation in, Standard Algebraic Notation in and out, and FEN out.
package notation

import (
	"fmt"
	"unicode"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/engine"
	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// ParseCoordinate parses the shape of a coordinate move such as "e2e4" or
// "e7e8q" without consulting any position. The promotion letter may be
// either case.
func ParseCoordinate(token string) (chess.Move, error) {
	if len(token) != 4 && len(token) != 5 {
		return chess.Move{}, fmt.Errorf("%q: want 4 or 5 characters: %w", token, errors.ErrMalformedMove)
	}
	if !chess.IsCol(token[0]) || !chess.IsRank(token[1]) || !chess.IsCol(token[2]) || !chess.IsRank(token[3]) {
		return chess.Move{}, fmt.Errorf("%q: bad square: %w", token, errors.ErrMalformedMove)
	}

	move := chess.NewMove(chess.Col(token[0]), chess.Rank(token[1]), chess.Col(token[2]), chess.Rank(token[3]))
	if len(token) == 5 {
		promotion := promotionFromLetter(byte(unicode.ToLower(rune(token[4]))))
		if promotion == chess.Empty {
			return chess.Move{}, fmt.Errorf("%q: bad promotion letter %q: %w", token, token[4], errors.ErrMalformedMove)
		}
		move = move.WithPromotion(promotion)
	}
	return move, nil
}

// DecodeCoordinate parses a coordinate move and checks that it is legal in
// the position. Shape problems fail with errors.ErrMalformedMove, rule
// violations with errors.ErrIllegalMove.
func DecodeCoordinate(board *chess.Board, token string) (chess.Move, error) {
	move, err := ParseCoordinate(token)
	if err != nil {
		return chess.Move{}, err
	}
	if _, err := engine.Apply(board, move); err != nil {
		return chess.Move{}, err
	}
	return move, nil
}

// promotionFromLetter maps a lowercase promotion letter to its piece.
// Empty is returned for anything a pawn cannot become.
func promotionFromLetter(c byte) chess.Piece {
	switch c {
	case 'q':
		return chess.Queen
	case 'r':
		return chess.Rook
	case 'b':
		return chess.Bishop
	case 'n':
		return chess.Knight
	}
	return chess.Empty
}
