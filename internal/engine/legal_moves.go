package engine

import "github.com/lgbarn/puzzle-cards/internal/chess"

// LegalMoves returns every legal move for the side to move, ordered by
// origin square (a1, a2, ..., h8) and then by candidate order.
func LegalMoves(board *chess.Board) []chess.Move {
	var moves []chess.Move
	forEachCandidate(board, func(move chess.Move) bool {
		if IsLegal(board, move) {
			moves = append(moves, move)
		}
		return true
	})
	return moves
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board) bool {
	found := false
	forEachCandidate(board, func(move chess.Move) bool {
		if IsLegal(board, move) {
			found = true
			return false
		}
		return true
	})
	return found
}

// forEachCandidate calls fn with every pseudo-legal destination of every
// piece of the side to move, stopping early when fn returns false.
func forEachCandidate(board *chess.Board, fn func(chess.Move) bool) {
	colour := board.ToMove
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			piece := board.Get(col, rank)
			if !chess.IsOccupied(piece) || chess.ExtractColour(piece) != colour {
				continue
			}
			for _, move := range pieceTargets(board, col, rank, chess.ExtractPiece(piece), colour) {
				if !fn(move) {
					return
				}
			}
		}
	}
}

// pieceTargets generates candidate moves for a single piece based on its
// movement pattern. Candidates still need full validation.
func pieceTargets(board *chess.Board, fromCol chess.Col, fromRank chess.Rank, pieceType chess.Piece, colour chess.Colour) []chess.Move {
	switch pieceType {
	case chess.Pawn:
		return pawnTargets(fromCol, fromRank, colour)
	case chess.Knight:
		return stepTargets(fromCol, fromRank, knightOffsets)
	case chess.King:
		moves := stepTargets(fromCol, fromRank, kingOffsets)
		home := chess.HomeRank(colour)
		if fromCol == 'e' && fromRank == home {
			moves = append(moves,
				chess.NewMove(fromCol, fromRank, 'g', home),
				chess.NewMove(fromCol, fromRank, 'c', home))
		}
		return moves
	case chess.Bishop:
		return slidingTargets(board, fromCol, fromRank, diagonalDirs)
	case chess.Rook:
		return slidingTargets(board, fromCol, fromRank, straightDirs)
	case chess.Queen:
		return slidingTargets(board, fromCol, fromRank, allSlidingDirs)
	}
	return nil
}

// stepTargets returns the on-board squares at the given offsets.
func stepTargets(fromCol chess.Col, fromRank chess.Rank, offsets [][2]int) []chess.Move {
	moves := make([]chess.Move, 0, len(offsets))
	for _, o := range offsets {
		toCol, toRank := offset(fromCol, fromRank, o[0], o[1])
		if chess.OnBoard(toCol, toRank) {
			moves = append(moves, chess.NewMove(fromCol, fromRank, toCol, toRank))
		}
	}
	return moves
}

// slidingTargets walks each direction up to and including the first
// occupied square.
func slidingTargets(board *chess.Board, fromCol chess.Col, fromRank chess.Rank, dirs [][2]int) []chess.Move {
	var moves []chess.Move
	for _, dir := range dirs {
		toCol, toRank := offset(fromCol, fromRank, dir[0], dir[1])
		for chess.OnBoard(toCol, toRank) {
			moves = append(moves, chess.NewMove(fromCol, fromRank, toCol, toRank))
			if board.Get(toCol, toRank) != chess.Empty {
				break // Blocked
			}
			toCol, toRank = offset(toCol, toRank, dir[0], dir[1])
		}
	}
	return moves
}
