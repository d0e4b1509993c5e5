// Package pipeline turns puzzle ids into flashcards: fetch, resolve,
// de-duplicate, render, assemble and store.
package pipeline

import (
	"context"

	"github.com/lgbarn/puzzle-cards/internal/deck"
	"github.com/lgbarn/puzzle-cards/internal/errors"
	"github.com/lgbarn/puzzle-cards/internal/lichess"
	"github.com/lgbarn/puzzle-cards/internal/puzzle"
)

// Stages named in *errors.PuzzleError.
const (
	StageFetch   = "fetch"
	StageResolve = "resolve"
	StageDedupe  = "dedupe"
	StageRender  = "render"
	StageStore   = "store"
)

// Source supplies puzzles by id.
type Source interface {
	Fetch(ctx context.Context, id string) (*lichess.Puzzle, error)
}

// Result is one resolved puzzle and its card.
type Result struct {
	Puzzle     *lichess.Puzzle
	Resolution *puzzle.Resolution
	Card       deck.Card
}

// Build fetches and resolves one puzzle. Failures are *errors.PuzzleError
// values naming the stage.
func Build(ctx context.Context, src Source, id string) (*Result, error) {
	p, err := src.Fetch(ctx, id)
	if err != nil {
		return nil, &errors.PuzzleError{Err: err, PuzzleID: id, Stage: StageFetch}
	}
	res, err := puzzle.Resolve(p.Transcript())
	if err != nil {
		return nil, &errors.PuzzleError{Err: err, PuzzleID: id, Stage: StageResolve}
	}
	return &Result{
		Puzzle:     p,
		Resolution: res,
		Card: deck.NewCard(deck.CardInput{
			PuzzleID:   p.ID,
			Themes:     p.Themes,
			Rating:     p.Rating,
			Resolution: res,
		}),
	}, nil
}

// IsRejected reports whether err is a transcript the engine could not
// replay, as opposed to a failure to obtain the puzzle.
func IsRejected(err error) bool {
	var rejected *errors.RejectedTranscriptError
	return errors.As(err, &rejected)
}
