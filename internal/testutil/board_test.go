package testutil

import (
	"testing"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/engine"
)

func TestMustBoard(t *testing.T) {
	for _, fen := range []string{engine.InitialFEN, RuyLopezFEN, KiwipeteFEN, PromotionFEN} {
		board := MustBoard(t, fen)
		AssertEqual(t, engine.BoardToFEN(board), fen)
	}
}

func TestMove(t *testing.T) {
	AssertEqual(t, Move("e2e4"), chess.NewMove('e', '2', 'e', '4'))
	AssertEqual(t, Move("b7b8n"), chess.NewMove('b', '7', 'b', '8').WithPromotion(chess.Knight))
}

func TestMustPlay(t *testing.T) {
	board := MustPlay(t, engine.NewInitialBoard(), "e2e4", "e7e5", "g1f3", "b8c6", "f1b5")
	AssertEqual(t, engine.BoardToFEN(board), RuyLopezFEN)
}
