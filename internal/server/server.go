// Package server exposes the puzzle engine over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lgbarn/puzzle-cards/internal/config"
	"github.com/lgbarn/puzzle-cards/internal/hashing"
	"github.com/lgbarn/puzzle-cards/internal/pipeline"
	"github.com/lgbarn/puzzle-cards/internal/store"
)

// Server holds the handlers' dependencies.
type Server struct {
	source   pipeline.Source
	cards    store.CardRepository
	render   config.RenderConfig
	detector *hashing.ThreadSafeDuplicateDetector
	log      zerolog.Logger
}

// New creates a server. Cards served by GET /api/puzzle/:id are kept in
// cards.
func New(log zerolog.Logger, source pipeline.Source, cards store.CardRepository, render config.RenderConfig) *Server {
	return &Server{
		source:   source,
		cards:    cards,
		render:   render,
		detector: hashing.NewThreadSafeDuplicateDetector(false, 100000),
		log:      log,
	}
}

// Router returns the HTTP handler with every route registered.
func (s *Server) Router() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), accessLog(s.log), cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/healthz", s.Health)
	api := r.Group("/api")
	api.POST("/resolve", s.Resolve)
	api.POST("/san", s.SAN)
	api.GET("/puzzle/:id", s.Puzzle)
	api.GET("/puzzle/:id/board.svg", s.Board)
	api.GET("/puzzle/:id/card.html", s.CardPreview)
	return r
}

// Health reports liveness and how many distinct start positions the
// server has carded.
func (s *Server) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "positions": s.detector.Stats()})
}

func accessLog(log zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		event := log.Info()
		if ctx.Writer.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
