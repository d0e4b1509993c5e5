package engine

import "github.com/lgbarn/puzzle-cards/internal/chess"

var (
	knightOffsets  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets    = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allSlidingDirs = append(append([][2]int{}, diagonalDirs...), straightDirs...)
)

// IsInCheck returns true if the given colour's king is in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	kingCol, kingRank := board.King(colour)

	// If king position not tracked, search for it
	if kingCol == 0 || kingRank == 0 || board.Get(kingCol, kingRank) != chess.MakeColouredPiece(colour, chess.King) {
		kingCol, kingRank = findKing(board, colour)
		if kingCol == 0 {
			return false
		}
	}

	return IsSquareAttacked(board, kingCol, kingRank, colour.Opposite())
}

// findKing finds the king of the given colour on the board.
func findKing(board *chess.Board, colour chess.Colour) (chess.Col, chess.Rank) {
	king := chess.MakeColouredPiece(colour, chess.King)
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			if board.Get(col, rank) == king {
				return col, rank
			}
		}
	}
	return 0, 0
}

// offset shifts a square by the given file and rank deltas. The result may
// be off the board; board.Get reports such squares as chess.Off.
func offset(col chess.Col, rank chess.Rank, dc, dr int) (chess.Col, chess.Rank) {
	return chess.Col(int(col) + dc), chess.Rank(int(rank) + dr)
}

// IsSquareAttacked returns true if the square is attacked by the given colour.
func IsSquareAttacked(board *chess.Board, col chess.Col, rank chess.Rank, byColour chess.Colour) bool {
	// Pawns attack diagonally forward, so look one rank behind the target
	// from the attacker's point of view.
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	pawnDir := -chess.ColourOffset(byColour)
	for _, dc := range []int{-1, 1} {
		if c, r := offset(col, rank, dc, pawnDir); board.Get(c, r) == pawn {
			return true
		}
	}

	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, o := range knightOffsets {
		if c, r := offset(col, rank, o[0], o[1]); board.Get(c, r) == knight {
			return true
		}
	}

	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, o := range kingOffsets {
		if c, r := offset(col, rank, o[0], o[1]); board.Get(c, r) == king {
			return true
		}
	}

	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	if slidingAttack(board, col, rank, diagonalDirs, chess.MakeColouredPiece(byColour, chess.Bishop), queen) {
		return true
	}
	return slidingAttack(board, col, rank, straightDirs, chess.MakeColouredPiece(byColour, chess.Rook), queen)
}

// slidingAttack walks each direction from the square until the first
// occupied square and reports whether that square holds one of the attackers.
func slidingAttack(board *chess.Board, col chess.Col, rank chess.Rank, dirs [][2]int, attackers ...chess.Piece) bool {
	for _, dir := range dirs {
		c, r := offset(col, rank, dir[0], dir[1])
		for {
			piece := board.Get(c, r)
			if piece == chess.Empty {
				c, r = offset(c, r, dir[0], dir[1])
				continue
			}
			for _, a := range attackers {
				if piece == a {
					return true
				}
			}
			break // Blocked or off the board
		}
	}
	return false
}
