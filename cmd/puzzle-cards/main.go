// puzzle-cards turns Lichess puzzles into an Anki flashcard deck.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/lgbarn/puzzle-cards/internal/config"
	"github.com/lgbarn/puzzle-cards/internal/lichess"
	"github.com/lgbarn/puzzle-cards/internal/logging"
	"github.com/lgbarn/puzzle-cards/internal/pipeline"
	"github.com/lgbarn/puzzle-cards/internal/store"
)

const programVersion = "0.3.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("puzzle-cards version %s\n", programVersion)
		os.Exit(0)
	}

	os.Exit(run(setFlags(), flag.Args(), os.Stdout))
}

// run cards the configured puzzles and returns the process exit code.
func run(set map[string]bool, args []string, stdout io.Writer) int {
	cfg, err := loadConfig(*configFile, *envFile, set, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	closeLog, err := setupLogFile(cfg, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		return 2
	}
	defer closeLog()

	log, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cards, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("could not open card store")
		return 1
	}
	defer closeStore()

	runner := pipeline.NewRunner(cfg, lichess.NewClient(cfg.Source, nil), cards, log)
	report, err := runner.Run(ctx)
	if report != nil && cfg.Verbosity > 0 {
		if werr := report.Write(stdout); werr != nil {
			log.Error().Err(werr).Msg("could not write report")
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		return 1
	}
	return 0
}

// loadConfig layers defaults, the TOML file, the environment and the
// command-line flags, then validates the result.
func loadConfig(path, dotenv string, set map[string]bool, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadEnv(dotenv); err != nil {
		return nil, err
	}
	applyFlags(cfg, set, args)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogFile points the log at path when one is given.
func setupLogFile(cfg *config.Config, path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	file, err := os.Create(path) //nolint:gosec // G304: CLI tool writes user-specified files
	if err != nil {
		return nil, err
	}
	cfg.SetLogFile(file)
	return func() { file.Close() }, nil //nolint:errcheck,gosec // G104: cleanup on exit
}

// openStore connects to the card store when one is configured. The
// returned repository is nil otherwise.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.CardRepository, func(), error) {
	if !cfg.Store.Enabled() {
		return nil, func() {}, nil
	}
	client, err := store.Connect(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := client.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("could not close card store")
		}
	}
	repo := store.NewMongoRepository(client.Cards, cfg.Store.Timeout)
	if err := repo.EnsureIndexes(ctx); err != nil {
		closeStore()
		return nil, nil, err
	}
	log.Debug().Str("database", cfg.Store.Database).Str("collection", cfg.Store.Collection).Msg("card store ready")
	return repo, closeStore, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: puzzle-cards [options] [puzzle-ids...]\n\n")
	fmt.Fprintf(os.Stderr, "Turns Lichess puzzles into an Anki flashcard deck.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nSettings are read from the -config file, then the environment\n")
	fmt.Fprintf(os.Stderr, "(%s_<NAME> or <NAME>, e.g. DECK_NAME), then the flags above.\n", config.EnvPrefix)
}
