package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/lgbarn/puzzle-cards/internal/deck"
	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// MemoryRepository is a CardRepository held in memory. It is safe for
// concurrent use.
type MemoryRepository struct {
	mu    sync.RWMutex
	cards map[string]deck.Card // by puzzle id
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{cards: make(map[string]deck.Card)}
}

func (r *MemoryRepository) Upsert(ctx context.Context, card deck.Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[card.PuzzleID] = card
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, puzzleID string) (deck.Card, error) {
	if err := ctx.Err(); err != nil {
		return deck.Card{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	card, ok := r.cards[puzzleID]
	if !ok {
		return deck.Card{}, fmt.Errorf("store: %s: %w", puzzleID, errors.ErrPuzzleNotFound)
	}
	return card, nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.cards)), nil
}
