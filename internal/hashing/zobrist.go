// Package hashing detects puzzles that start from a position already carded.
package hashing

import (
	"github.com/lgbarn/puzzle-cards/internal/chess"
)

// HashCode is a cheap secondary position hash.
type HashCode uint64

// zobristKeys holds one random key per feature of a position.
type zobristKeys struct {
	pieces      [2][chess.NumPieceValues][chess.BoardSize * chess.BoardSize]uint64
	blackToMove uint64
	castling    [4]uint64
	epFile      [chess.BoardSize]uint64
}

// keys are generated from a fixed seed so hashes are stable across runs.
var keys = newZobristKeys(0x5DEECE66D)

// splitmix64 is the generator used to fill the key table.
func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func newZobristKeys(seed uint64) *zobristKeys {
	k := &zobristKeys{}
	state := seed
	for colour := range k.pieces {
		for piece := range k.pieces[colour] {
			for sq := range k.pieces[colour][piece] {
				k.pieces[colour][piece][sq] = splitmix64(&state)
			}
		}
	}
	k.blackToMove = splitmix64(&state)
	for i := range k.castling {
		k.castling[i] = splitmix64(&state)
	}
	for i := range k.epFile {
		k.epFile[i] = splitmix64(&state)
	}
	return k
}

// squareIndex maps a square to 0..63, a1 first.
func squareIndex(col chess.Col, rank chess.Rank) int {
	return int(rank-chess.FirstRank)*chess.BoardSize + int(col-chess.FirstCol)
}

// GenerateZobristHash hashes piece placement, side to move, castling
// rights and the en-passant file. The move clocks are ignored, so the same
// position reached at different points of a game hashes alike.
func GenerateZobristHash(board *chess.Board) uint64 {
	var hash uint64
	for rank := chess.Rank(chess.FirstRank); rank <= chess.LastRank; rank++ {
		for col := chess.Col(chess.FirstCol); col <= chess.LastCol; col++ {
			square := board.Get(col, rank)
			if !chess.IsOccupied(square) {
				continue
			}
			colour := chess.ExtractColour(square)
			piece := chess.ExtractPiece(square)
			hash ^= keys.pieces[colour][piece][squareIndex(col, rank)]
		}
	}

	if board.ToMove == chess.Black {
		hash ^= keys.blackToMove
	}
	for i, right := range []bool{board.WKingCastle, board.WQueenCastle, board.BKingCastle, board.BQueenCastle} {
		if right {
			hash ^= keys.castling[i]
		}
	}
	if board.EnPassant {
		hash ^= keys.epFile[board.EPCol-chess.FirstCol]
	}
	return hash
}

// WeakHash sums a weight per occupied square. It confirms a Zobrist match
// with an independent function.
func WeakHash(board *chess.Board) HashCode {
	var hash HashCode
	for rank := chess.Rank(chess.FirstRank); rank <= chess.LastRank; rank++ {
		for col := chess.Col(chess.FirstCol); col <= chess.LastCol; col++ {
			square := board.Get(col, rank)
			if !chess.IsOccupied(square) {
				continue
			}
			weight := HashCode(square) * HashCode(squareIndex(col, rank)+1)
			hash += weight * weight
		}
	}
	return hash
}
