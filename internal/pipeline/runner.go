package pipeline

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lgbarn/puzzle-cards/internal/config"
	"github.com/lgbarn/puzzle-cards/internal/deck"
	"github.com/lgbarn/puzzle-cards/internal/errors"
	"github.com/lgbarn/puzzle-cards/internal/hashing"
	"github.com/lgbarn/puzzle-cards/internal/render"
	"github.com/lgbarn/puzzle-cards/internal/store"
	"github.com/lgbarn/puzzle-cards/internal/worker"
)

// Runner cards every puzzle of a configuration.
type Runner struct {
	cfg    *config.Config
	source Source
	cards  store.CardRepository // nil when no store is configured
	log    zerolog.Logger
}

// NewRunner creates a runner. cards may be nil.
func NewRunner(cfg *config.Config, source Source, cards store.CardRepository, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, source: source, cards: cards, log: log}
}

// Run fetches and resolves the configured puzzles in parallel, then, in
// puzzle order, drops repeated start positions, renders the diagrams,
// stores the cards and writes the deck. Rejected or unavailable puzzles
// are logged and skipped; in strict mode the first rejection ends the run
// with its error.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	ids := uniqueIDs(r.cfg.Puzzles)
	report := newReport(len(ids))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	process := func(ctx context.Context, item worker.WorkItem) worker.ProcessResult {
		result := worker.ProcessResult{PuzzleID: item.PuzzleID, Index: item.Index}
		built, err := Build(ctx, r.source, item.PuzzleID)
		if err != nil {
			result.Error = err
			if r.cfg.Strict && IsRejected(err) {
				cancel()
			}
			return result
		}
		result.Resolution = built.Resolution
		result.Payload = built
		return result
	}

	items := make([]worker.WorkItem, len(ids))
	for i, id := range ids {
		items[i] = worker.WorkItem{PuzzleID: id, Index: i}
	}
	pool := worker.NewPool(process,
		worker.WithWorkers(r.cfg.Workers),
		worker.WithBufferSize(len(items)+1),
		worker.WithContext(ctx))
	results := pool.Run(items)

	detector := hashing.NewDuplicateDetector(false, 0)
	cards := deck.New(r.cfg.Deck.Name)
	imageDir := deck.PathsFor(r.cfg.Deck.OutputDir, r.cfg.Deck.Name).Images

	for _, result := range results {
		log := r.log.With().Str("puzzle", result.PuzzleID).Logger()
		if result.Error != nil {
			if !IsRejected(result.Error) {
				report.Failed++
				report.Errors = append(report.Errors, result.Error)
				log.Warn().Err(result.Error).Msg("skipping puzzle")
				continue
			}
			report.Fetched++
			report.Rejected++
			report.Errors = append(report.Errors, result.Error)
			log.Warn().Err(result.Error).Msg("rejected puzzle")
			if r.cfg.Strict {
				return report, result.Error
			}
			continue
		}

		built := result.Payload.(*Result)
		report.Fetched++
		report.Resolved++

		if first, dup := detector.CheckAndAdd(result.PuzzleID, built.Resolution.StartBoard); dup {
			err := &errors.PuzzleError{
				Err:      errors.Wrapf(errors.ErrDuplicatePuzzle, "same start position as %s", first),
				PuzzleID: result.PuzzleID,
				Stage:    StageDedupe,
			}
			report.Duplicates++
			report.Errors = append(report.Errors, err)
			log.Info().Err(err).Str("duplicate_of", first).Msg("skipping puzzle")
			continue
		}

		if err := r.card(ctx, imageDir, built); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, err)
			log.Error().Err(err).Msg("could not card puzzle")
			continue
		}
		cards.Add(built.Card)
		report.Carded++
		report.addThemes(built.Puzzle.Themes)
		log.Debug().
			Str("fen", built.Resolution.StartFEN).
			Strs("solution", built.Resolution.Solution).
			Msg("carded")
	}

	if cards.Len() > 0 {
		paths, err := cards.Save(r.cfg.Deck.OutputDir, r.cfg.Deck.JSON)
		if err != nil {
			return report, errors.Wrap(err, "write deck")
		}
		report.Deck = paths
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	r.log.Info().
		Int("carded", report.Carded).
		Int("rejected", report.Rejected).
		Int("duplicates", report.Duplicates).
		Int("positions", detector.UniqueCount()).
		Int("failed", report.Failed).
		Msg("run complete")
	return report, nil
}

// card renders the diagram and stores the card.
func (r *Runner) card(ctx context.Context, imageDir string, built *Result) error {
	res := built.Resolution
	id := built.Card.PuzzleID
	opts := render.OptionsFromConfig(r.cfg.Render, res.StartBoard.ToMove)
	if err := render.SaveFile(filepath.Join(imageDir, deck.ImageName(id)), res.StartBoard, res.LastMove, opts); err != nil {
		return &errors.PuzzleError{Err: err, PuzzleID: id, Stage: StageRender}
	}
	if r.cards != nil {
		if err := r.cards.Upsert(ctx, built.Card); err != nil {
			return &errors.PuzzleError{Err: err, PuzzleID: id, Stage: StageStore}
		}
	}
	return nil
}

// uniqueIDs drops repeated ids, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
