package engine

import "github.com/lgbarn/puzzle-cards/internal/chess"

// canPieceMove checks if a non-pawn piece can move from one square to
// another by its movement pattern, with sliding paths unobstructed.
// Castling is handled separately.
func canPieceMove(board *chess.Board, pieceType chess.Piece, fromCol chess.Col, fromRank chess.Rank, toCol chess.Col, toRank chess.Rank) bool {
	colDiff := abs(int(toCol) - int(fromCol))
	rankDiff := abs(int(toRank) - int(fromRank))
	if colDiff == 0 && rankDiff == 0 {
		return false
	}

	switch pieceType {
	case chess.Knight:
		return (colDiff == 1 && rankDiff == 2) || (colDiff == 2 && rankDiff == 1)

	case chess.Bishop:
		if colDiff != rankDiff {
			return false
		}
		return isPathClear(board, fromCol, fromRank, toCol, toRank)

	case chess.Rook:
		if colDiff != 0 && rankDiff != 0 {
			return false
		}
		return isPathClear(board, fromCol, fromRank, toCol, toRank)

	case chess.Queen:
		if colDiff != rankDiff && colDiff != 0 && rankDiff != 0 {
			return false
		}
		return isPathClear(board, fromCol, fromRank, toCol, toRank)

	case chess.King:
		return colDiff <= 1 && rankDiff <= 1
	}

	return false
}

// isPathClear checks that every square strictly between the two squares is
// empty. The squares must share a file, rank or diagonal.
func isPathClear(board *chess.Board, fromCol chess.Col, fromRank chess.Rank, toCol chess.Col, toRank chess.Rank) bool {
	colDir := sign(int(toCol) - int(fromCol))
	rankDir := sign(int(toRank) - int(fromRank))

	col, rank := offset(fromCol, fromRank, colDir, rankDir)
	for col != toCol || rank != toRank {
		if board.Get(col, rank) != chess.Empty {
			return false
		}
		col, rank = offset(col, rank, colDir, rankDir)
	}

	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
