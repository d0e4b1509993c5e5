package notation

import (
	"testing"

	nchess "github.com/notnil/chess"

	"github.com/lgbarn/puzzle-cards/internal/engine"
	"github.com/lgbarn/puzzle-cards/internal/testutil"
)

// TestToSAN_MatchesNotnil compares move generation and SAN output with
// github.com/notnil/chess on every legal move of the round-trip positions.
func TestToSAN_MatchesNotnil(t *testing.T) {
	for _, fen := range roundTripFENs {
		t.Run(fen, func(t *testing.T) {
			fenOpt, err := nchess.FEN(fen)
			testutil.AssertNoError(t, err)
			pos := nchess.NewGame(fenOpt).Position()

			want := map[string]string{}
			for _, m := range pos.ValidMoves() {
				want[nchess.UCINotation{}.Encode(pos, m)] = nchess.AlgebraicNotation{}.Encode(pos, m)
			}

			board := testutil.MustBoard(t, fen)
			got := map[string]string{}
			for _, move := range engine.LegalMoves(board) {
				san, _, err := SAN(board, move)
				testutil.AssertNoError(t, err)
				got[move.String()] = san
			}

			testutil.AssertEqual(t, got, want)
		})
	}
}
