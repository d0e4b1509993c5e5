// Package store persists flashcards. MongoRepository keeps them in a
// MongoDB collection; MemoryRepository keeps them in process.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lgbarn/puzzle-cards/internal/config"
	"github.com/lgbarn/puzzle-cards/internal/deck"
	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// CardRepository stores cards keyed by puzzle id.
type CardRepository interface {
	// Upsert inserts the card or replaces the stored card with the same GUID.
	Upsert(ctx context.Context, card deck.Card) error
	// FindByID returns the card of a puzzle, or an error wrapping
	// errors.ErrPuzzleNotFound.
	FindByID(ctx context.Context, puzzleID string) (deck.Card, error)
	// Count returns the number of stored cards.
	Count(ctx context.Context) (int64, error)
}

// Client is a connection to the card database.
type Client struct {
	client *mongo.Client
	Cards  *mongo.Collection
}

// Connect opens and pings the database named by cfg.
func Connect(ctx context.Context, cfg config.StoreConfig) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Address))
	if err != nil {
		return nil, errors.Wrap(err, "store: connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "store: ping")
	}
	return &Client{
		client: client,
		Cards:  client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Close disconnects from the database.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// MongoRepository is a CardRepository backed by a collection.
type MongoRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoRepository creates a repository on coll. Every call is bounded
// by timeout.
func NewMongoRepository(coll *mongo.Collection, timeout time.Duration) *MongoRepository {
	return &MongoRepository{coll: coll, timeout: timeout}
}

// EnsureIndexes creates the unique puzzle id index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "puzzle_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return errors.Wrap(err, "store: create index")
}

func (r *MongoRepository) Upsert(ctx context.Context, card deck.Card) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: card.GUID}},
		card,
		options.Replace().SetUpsert(true))
	return errors.Wrapf(err, "store: upsert %s", card.PuzzleID)
}

func (r *MongoRepository) FindByID(ctx context.Context, puzzleID string) (deck.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var card deck.Card
	err := r.coll.FindOne(ctx, bson.D{{Key: "puzzle_id", Value: puzzleID}}).Decode(&card)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return deck.Card{}, fmt.Errorf("store: %s: %w", puzzleID, errors.ErrPuzzleNotFound)
	}
	if err != nil {
		return deck.Card{}, errors.Wrapf(err, "store: find %s", puzzleID)
	}
	return card, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.D{})
	return n, errors.Wrap(err, "store: count")
}
