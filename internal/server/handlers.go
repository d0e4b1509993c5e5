package server

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/deck"
	"github.com/lgbarn/puzzle-cards/internal/engine"
	"github.com/lgbarn/puzzle-cards/internal/errors"
	"github.com/lgbarn/puzzle-cards/internal/notation"
	"github.com/lgbarn/puzzle-cards/internal/pipeline"
	"github.com/lgbarn/puzzle-cards/internal/puzzle"
	"github.com/lgbarn/puzzle-cards/internal/render"
)

type resolveRequest struct {
	// Game is move text: SAN moves, optionally with move numbers.
	Game       string   `json:"game"`
	Solution   []string `json:"solution"`
	InitialFEN string   `json:"initial_fen"`
}

type resolutionResponse struct {
	StartFEN   string   `json:"start_fen"`
	SideToMove string   `json:"side_to_move"`
	Solution   []string `json:"solution"`
	FinalFEN   string   `json:"final_fen"`
	LastMove   string   `json:"last_move,omitempty"`
}

func newResolutionResponse(res *puzzle.Resolution) resolutionResponse {
	out := resolutionResponse{
		StartFEN:   res.StartFEN,
		SideToMove: res.SideToMove,
		Solution:   res.Solution,
		FinalFEN:   res.FinalFEN,
	}
	if res.LastMove != nil {
		out.LastMove = res.LastMove.String()
	}
	return out
}

// Resolve replays a posted transcript.
func (s *Server) Resolve(ctx *gin.Context) {
	var req resolveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := puzzle.Resolve(puzzle.Transcript{
		Game:       puzzle.SplitTranscript(req.Game),
		Solution:   req.Solution,
		InitialFEN: req.InitialFEN,
	})
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newResolutionResponse(res))
}

type sanRequest struct {
	FEN   string   `json:"fen" binding:"required"`
	Moves []string `json:"moves" binding:"required"`
}

// SAN converts coordinate moves played from a FEN into SAN.
func (s *Server) SAN(ctx *gin.Context) {
	var req sanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	board, err := engine.NewBoardFromFEN(req.FEN)
	if err != nil {
		s.fail(ctx, err)
		return
	}

	sans := make([]string, 0, len(req.Moves))
	for i, token := range req.Moves {
		move, err := notation.DecodeCoordinate(board, token)
		var san string
		if err == nil {
			san, board, err = notation.SAN(board, move)
		}
		if err != nil {
			s.fail(ctx, &errors.RejectedTranscriptError{Err: err, Phase: errors.PhaseSolution, Index: i, Token: token})
			return
		}
		sans = append(sans, san)
	}
	ctx.JSON(http.StatusOK, gin.H{"san": sans, "fen": notation.ToFEN(board), "status": positionStatus(board)})
}

// positionStatus names the state of the side to move: "checkmate",
// "stalemate", "check" or "" for none of them.
func positionStatus(board *chess.Board) string {
	switch {
	case engine.IsCheckmate(board):
		return "checkmate"
	case engine.IsStalemate(board):
		return "stalemate"
	case engine.IsInCheck(board, board.ToMove):
		return "check"
	}
	return ""
}

type cardResponse struct {
	deck.Card
	DuplicateOf string `json:"duplicate_of,omitempty"`
}

// Puzzle returns the card of a Lichess puzzle, fetching and resolving it
// on first request.
func (s *Server) Puzzle(ctx *gin.Context) {
	id := ctx.Param("id")
	card, err := s.cards.FindByID(ctx.Request.Context(), id)
	if err == nil {
		ctx.JSON(http.StatusOK, cardResponse{Card: card})
		return
	}
	if !errors.Is(err, errors.ErrPuzzleNotFound) {
		s.fail(ctx, err)
		return
	}

	built, err := pipeline.Build(ctx.Request.Context(), s.source, id)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	resp := cardResponse{Card: built.Card}
	if first, dup := s.detector.CheckAndAdd(id, built.Resolution.StartBoard); dup && first != id {
		resp.DuplicateOf = first
	}
	if err := s.cards.Upsert(ctx.Request.Context(), built.Card); err != nil {
		s.log.Warn().Err(err).Str("puzzle", id).Msg("could not store card")
	}
	ctx.JSON(http.StatusOK, resp)
}

// Board renders the puzzle position as SVG. Query parameters size and
// orient override the configured diagram settings.
func (s *Server) Board(ctx *gin.Context) {
	built, err := pipeline.Build(ctx.Request.Context(), s.source, ctx.Param("id"))
	if err != nil {
		s.fail(ctx, err)
		return
	}

	cfg := s.render
	if size := ctx.Query("size"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "size must be an integer"})
			return
		}
		cfg.Size = n
	}
	if orient := ctx.Query("orient"); orient != "" {
		cfg.Orient = orient == "true" || orient == "1"
	}
	if err := cfg.Validate(); err != nil {
		s.fail(ctx, err)
		return
	}

	res := built.Resolution
	var buf bytes.Buffer
	if err := render.Render(&buf, res.StartBoard, res.LastMove, render.OptionsFromConfig(cfg, res.StartBoard.ToMove)); err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

// CardPreview renders both sides of a puzzle's card as an HTML page.
func (s *Server) CardPreview(ctx *gin.Context) {
	id := ctx.Param("id")
	built, err := pipeline.Build(ctx.Request.Context(), s.source, id)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	back, err := built.Card.Back("board.svg")
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<!DOCTYPE html>\n<html><body>\n"+back+"\n</body></html>\n"))
}

// fail writes err with the status its cause calls for.
func (s *Server) fail(ctx *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	status := http.StatusInternalServerError

	var rejected *errors.RejectedTranscriptError
	switch {
	case errors.As(err, &rejected):
		status = http.StatusUnprocessableEntity
		body["phase"] = rejected.Phase
		body["index"] = rejected.Index
		body["token"] = rejected.Token
	case errors.Is(err, errors.ErrPuzzleNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrInvalidFEN), errors.Is(err, errors.ErrInvalidConfig):
		status = http.StatusBadRequest
	case isFetchFailure(err):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("request failed")
	}
	ctx.JSON(status, body)
}

func isFetchFailure(err error) bool {
	var perr *errors.PuzzleError
	return errors.As(err, &perr) && perr.Stage == pipeline.StageFetch
}
