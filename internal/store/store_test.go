package store

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/puzzle-cards/internal/config"
	"github.com/lgbarn/puzzle-cards/internal/deck"
	"github.com/lgbarn/puzzle-cards/internal/errors"
	"github.com/lgbarn/puzzle-cards/internal/puzzle"
)

var (
	_ CardRepository = (*MongoRepository)(nil)
	_ CardRepository = (*MemoryRepository)(nil)
)

func testCard(id string, rating int) deck.Card {
	return deck.NewCard(deck.CardInput{
		PuzzleID: id,
		Themes:   []string{"mateIn1"},
		Rating:   rating,
		Resolution: &puzzle.Resolution{
			StartFEN:   "4k3/8/8/8/8/8/8/4K2R w K - 0 1",
			SideToMove: "White",
			Solution:   []string{"Rh8#"},
		},
	})
}

// exerciseRepository runs the behaviour every CardRepository shares.
func exerciseRepository(t *testing.T, repo CardRepository) {
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.FindByID(ctx, "ATSSe")
	assert.ErrorIs(t, err, errors.ErrPuzzleNotFound)

	require.NoError(t, repo.Upsert(ctx, testCard("ATSSe", 1500)))
	require.NoError(t, repo.Upsert(ctx, testCard("YMCyG", 1700)))
	require.NoError(t, repo.Upsert(ctx, testCard("ATSSe", 1550)))

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	card, err := repo.FindByID(ctx, "ATSSe")
	require.NoError(t, err)
	assert.Equal(t, testCard("ATSSe", 1550), card)
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository())
}

func TestMemoryRepository_Cancelled(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Upsert(ctx, testCard("ATSSe", 1)), context.Canceled)
	_, err := repo.FindByID(ctx, "ATSSe")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryRepository_Concurrent(t *testing.T) {
	repo := NewMemoryRepository()
	ids := []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8"}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range ids {
				assert.NoError(t, repo.Upsert(context.Background(), testCard(id, 1)))
				_, _ = repo.FindByID(context.Background(), id)
			}
		}()
	}
	wg.Wait()

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(ids)), n)
}

// TestMongoRepository runs against a live server named by
// PUZZLE_CARDS_TEST_MONGO, e.g. mongodb://localhost:27017.
func TestMongoRepository(t *testing.T) {
	address := os.Getenv("PUZZLE_CARDS_TEST_MONGO")
	if address == "" {
		t.Skip("PUZZLE_CARDS_TEST_MONGO not set")
	}

	cfg := config.NewStoreConfig()
	cfg.Address = address
	cfg.Database = "puzzle_cards_test"
	cfg.Collection = "cards_" + uuid.NewString()

	ctx := context.Background()
	client, err := Connect(ctx, *cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Cards.Drop(context.Background())
		_ = client.Close(context.Background())
	})

	repo := NewMongoRepository(client.Cards, 5*time.Second)
	require.NoError(t, repo.EnsureIndexes(ctx))
	exerciseRepository(t, repo)
}

func TestConnect_Unreachable(t *testing.T) {
	cfg := config.NewStoreConfig()
	cfg.Address = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100&connectTimeoutMS=100"
	cfg.Timeout = 500 * time.Millisecond

	_, err := Connect(context.Background(), *cfg)
	assert.Error(t, err)
}
