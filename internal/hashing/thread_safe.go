package hashing

import (
	"sync"

	"github.com/lgbarn/puzzle-cards/internal/chess"
)

// ThreadSafeDuplicateDetector is a DuplicateDetector shared between
// concurrent requests.
type ThreadSafeDuplicateDetector struct {
	mu       sync.Mutex
	detector *DuplicateDetector
}

// Stats is a snapshot of a detector's counters.
type Stats struct {
	Unique     int  `json:"unique"`
	Duplicates int  `json:"duplicates"`
	Full       bool `json:"full"`
}

// NewThreadSafeDuplicateDetector creates a new thread-safe detector.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafeDuplicateDetector(exactMatch bool, maxCapacity int) *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{
		detector: NewDuplicateDetector(exactMatch, maxCapacity),
	}
}

// CheckAndAdd atomically checks whether a puzzle's start position was
// already seen and records it.
func (d *ThreadSafeDuplicateDetector) CheckAndAdd(puzzleID string, board *chess.Board) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.CheckAndAdd(puzzleID, board)
}

// Stats returns the counters as of one instant.
func (d *ThreadSafeDuplicateDetector) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		Unique:     d.detector.UniqueCount(),
		Duplicates: d.detector.DuplicateCount(),
		Full:       d.detector.IsFull(),
	}
}
