package hashing

import (
	"testing"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/engine"
	"github.com/lgbarn/puzzle-cards/internal/testutil"
)

func TestZobristHashConsistency(t *testing.T) {
	// Create two identical boards and verify they produce the same hash
	board1 := chess.NewBoard()
	board1.SetupInitialPosition()

	board2 := engine.NewInitialBoard()

	hash1 := GenerateZobristHash(board1)
	hash2 := GenerateZobristHash(board2)

	if hash1 != hash2 {
		t.Errorf("Identical boards produced different hashes: %x != %x", hash1, hash2)
	}
}

func TestZobristHashDifferentPositions(t *testing.T) {
	board1 := engine.NewInitialBoard()

	// Manually move e2 to e4
	board2 := engine.NewInitialBoard()
	board2.Set('e', '2', chess.Empty)
	board2.Set('e', '4', chess.W(chess.Pawn))

	if GenerateZobristHash(board1) == GenerateZobristHash(board2) {
		t.Error("Different positions produced the same hash")
	}
}

func TestZobristHash_PositionFeatures(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{
			"clocks ignored",
			"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
			"4k3/8/8/8/8/8/8/4K2R w K - 12 40",
			true,
		},
		{
			"side to move",
			"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
			"4k3/8/8/8/8/8/8/4K2R b K - 0 1",
			false,
		},
		{
			"castling rights",
			"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
			"4k3/8/8/8/8/8/8/4K2R w - - 0 1",
			false,
		},
		{
			"en passant target",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
			false,
		},
		{
			"piece colour",
			"4k3/8/8/8/8/8/8/R3K3 w - - 0 1",
			"4k3/8/8/8/8/8/8/r3K3 w - - 0 1",
			false,
		},
		{
			"piece kind",
			"4k3/8/8/8/8/8/8/R3K3 w - - 0 1",
			"4k3/8/8/8/8/8/8/Q3K3 w - - 0 1",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := GenerateZobristHash(testutil.MustBoard(t, tt.a))
			b := GenerateZobristHash(testutil.MustBoard(t, tt.b))
			if (a == b) != tt.same {
				t.Errorf("hash(%q) == hash(%q) is %v; want %v", tt.a, tt.b, a == b, tt.same)
			}
		})
	}
}

func TestZobristHash_Transposition(t *testing.T) {
	initial := engine.NewInitialBoard()
	a := testutil.MustPlay(t, initial, "g1f3", "g8f6", "b1c3")
	b := testutil.MustPlay(t, initial, "b1c3", "g8f6", "g1f3")

	if GenerateZobristHash(a) != GenerateZobristHash(b) {
		t.Error("transposed move orders produced different hashes")
	}
	if WeakHash(a) != WeakHash(b) {
		t.Error("transposed move orders produced different weak hashes")
	}
}

func TestWeakHashConsistency(t *testing.T) {
	board1 := chess.NewBoard()
	board1.SetupInitialPosition()

	board2 := chess.NewBoard()
	board2.SetupInitialPosition()

	hash1 := WeakHash(board1)
	hash2 := WeakHash(board2)

	if hash1 != hash2 {
		t.Errorf("Identical boards produced different weak hashes: %x != %x", hash1, hash2)
	}
}

func TestDuplicateDetector(t *testing.T) {
	detector := NewDuplicateDetector(false, 0)
	board := testutil.MustBoard(t, testutil.RuyLopezFEN)

	// First puzzle should not be a duplicate
	if _, dup := detector.CheckAndAdd("ATSSe", board); dup {
		t.Error("First puzzle was marked as duplicate")
	}

	// Same position should be a duplicate of the first puzzle
	first, dup := detector.CheckAndAdd("YMCyG", board.Copy())
	if !dup {
		t.Error("Duplicate position was not detected")
	}
	if first != "ATSSe" {
		t.Errorf("duplicate of %q; want ATSSe", first)
	}

	if detector.DuplicateCount() != 1 {
		t.Errorf("DuplicateCount = %d; want 1", detector.DuplicateCount())
	}
	if detector.UniqueCount() != 1 {
		t.Errorf("UniqueCount = %d; want 1", detector.UniqueCount())
	}
}

func TestDuplicateDetector_NilBoard(t *testing.T) {
	detector := NewDuplicateDetector(false, 0)
	if _, dup := detector.CheckAndAdd("ATSSe", nil); dup {
		t.Error("nil board reported as duplicate")
	}
	if detector.UniqueCount() != 0 {
		t.Errorf("UniqueCount = %d; want 0", detector.UniqueCount())
	}
}

func TestDuplicateDetector_DifferentClocks(t *testing.T) {
	for _, exact := range []bool{false, true} {
		detector := NewDuplicateDetector(exact, 0)
		detector.CheckAndAdd("a", testutil.MustBoard(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1"))
		if _, dup := detector.CheckAndAdd("b", testutil.MustBoard(t, "4k3/8/8/8/8/8/8/4K2R w K - 7 30")); !dup {
			t.Errorf("exact=%v: same position with other clocks not detected", exact)
		}
	}
}

func TestDuplicateDetector_MaxCapacity(t *testing.T) {
	detector := NewDuplicateDetector(false, 3)
	fens := []string{
		"4k3/8/8/8/8/8/8/R3K3 w - - 0 1",
		"4k3/8/8/8/8/8/8/1R2K3 w - - 0 1",
		"4k3/8/8/8/8/8/8/2R1K3 w - - 0 1",
		"4k3/8/8/8/8/8/8/3RK3 w - - 0 1",
	}
	for i, fen := range fens {
		if _, dup := detector.CheckAndAdd(string(rune('a'+i)), testutil.MustBoard(t, fen)); dup {
			t.Errorf("%s marked as duplicate", fen)
		}
	}

	if !detector.IsFull() {
		t.Error("detector should be full")
	}
	if detector.UniqueCount() != 3 {
		t.Errorf("UniqueCount = %d; want 3", detector.UniqueCount())
	}
	if _, dup := detector.CheckAndAdd("x", testutil.MustBoard(t, fens[0])); !dup {
		t.Error("remembered position not detected once full")
	}
	if _, dup := detector.CheckAndAdd("y", testutil.MustBoard(t, fens[3])); dup {
		t.Error("position seen after the detector filled up was remembered")
	}
}
