package puzzle

import (
	"testing"

	"github.com/lgbarn/puzzle-cards/internal/testutil"
)

func TestSplitTranscript(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"lichess move list", "e4 e5 Nf3 Nc6 Bb5", []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}},
		{"move numbers", "1. e4 e5 2. Nf3 Nc6 3. Bb5", []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}},
		{"glued move numbers", "1.e4 e5 2.Nf3", []string{"e4", "e5", "Nf3"}},
		{"black continuation", "12... Qxd5 13. O-O", []string{"Qxd5", "O-O"}},
		{"result dropped", "1. f3 e5 2. g4 Qh4# 0-1", []string{"f3", "e5", "g4", "Qh4#"}},
		{"castling with zeros kept", "0-0 0-0-0", []string{"0-0", "0-0-0"}},
		{"extra whitespace", "  e4\n\te5  ", []string{"e4", "e5"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, SplitTranscript(tt.text), tt.want)
		})
	}
}
