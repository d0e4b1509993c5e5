// puzzle-server serves the puzzle engine over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lgbarn/puzzle-cards/internal/config"
	"github.com/lgbarn/puzzle-cards/internal/lichess"
	"github.com/lgbarn/puzzle-cards/internal/logging"
	"github.com/lgbarn/puzzle-cards/internal/server"
	"github.com/lgbarn/puzzle-cards/internal/store"
)

var (
	configFile = flag.String("config", "", "TOML configuration file")
	envFile    = flag.String("env", ".env", "Environment file to load before reading the environment (ignored if missing)")
	address    = flag.String("addr", "", "Listen address, host:port")
)

const shutdownTimeout = 10 * time.Second

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if *address != "" {
		cfg.Server.Address = *address
		if err := cfg.Server.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}

	log, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := serve(cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains open
// requests.
func serve(cfg *config.Config, log zerolog.Logger) error {
	if cfg.Server.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cards store.CardRepository = store.NewMemoryRepository()
	if cfg.Store.Enabled() {
		client, err := store.Connect(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer client.Close(context.Background()) //nolint:errcheck // best effort on exit

		repo := store.NewMongoRepository(client.Cards, cfg.Store.Timeout)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		cards = repo
	}

	api := server.New(log, lichess.NewClient(cfg.Source, nil), cards, cfg.Render)
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Bool("mongo", cfg.Store.Enabled()).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
