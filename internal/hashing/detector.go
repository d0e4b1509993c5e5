package hashing

import (
	"strings"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/engine"
)

// DuplicateDetector remembers puzzle start positions.
type DuplicateDetector struct {
	// hashTable maps Zobrist hashes to the positions seen with that hash
	hashTable map[uint64][]PositionSignature
	// useExactMatch also compares the FEN position fields
	useExactMatch bool
	// maxCapacity bounds the number of remembered positions (0 = unlimited)
	maxCapacity int
	uniqueCount int
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// PositionSignature identifies a start position and the puzzle that
// first reached it.
type PositionSignature struct {
	Hash     uint64
	WeakHash HashCode
	// Key is the FEN without its move clocks; set only for exact matching.
	Key      string
	PuzzleID string
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]PositionSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// CheckAndAdd records the start position of a puzzle. When the position
// was seen before it returns the id of the puzzle that first had it and
// true. Once the detector is full new positions are no longer remembered.
func (d *DuplicateDetector) CheckAndAdd(puzzleID string, board *chess.Board) (string, bool) {
	if board == nil {
		return "", false
	}

	sig := PositionSignature{
		Hash:     GenerateZobristHash(board),
		WeakHash: WeakHash(board),
		PuzzleID: puzzleID,
	}
	if d.useExactMatch {
		sig.Key = positionKey(board)
	}

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return existing.PuzzleID, true
		}
	}

	if d.IsFull() {
		return "", false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.uniqueCount++
	return "", false
}

// signaturesMatch checks if two signatures name the same position.
func (d *DuplicateDetector) signaturesMatch(a, b PositionSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	return !d.useExactMatch || a.Key == b.Key
}

// positionKey is the FEN without the halfmove clock and fullmove number.
func positionKey(board *chess.Board) string {
	fields := strings.Fields(engine.BoardToFEN(board))
	return strings.Join(fields[:4], " ")
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of remembered positions.
func (d *DuplicateDetector) UniqueCount() int {
	return d.uniqueCount
}

// IsFull reports whether the capacity limit has been reached.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.uniqueCount >= d.maxCapacity
}
