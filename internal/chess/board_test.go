package chess

import (
	"testing"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("initial state", func(t *testing.T) {
		if b.ToMove != White {
			t.Errorf("ToMove = %v; want White", b.ToMove)
		}
		if b.MoveNumber != 1 {
			t.Errorf("MoveNumber = %d; want 1", b.MoveNumber)
		}
		if b.EnPassant {
			t.Error("EnPassant = true; want false")
		}
		if b.HalfmoveClock != 0 {
			t.Errorf("HalfmoveClock = %d; want 0", b.HalfmoveClock)
		}
	})

	t.Run("all squares empty", func(t *testing.T) {
		for col := Col('a'); col <= 'h'; col++ {
			for rank := Rank('1'); rank <= '8'; rank++ {
				if got := b.Get(col, rank); got != Empty {
					t.Errorf("Get(%c, %c) = %v; want Empty", col, rank, got)
				}
			}
		}
	})

	t.Run("hedge squares are Off", func(t *testing.T) {
		if b.Squares[0][0] != Off {
			t.Error("Hedge corner (0,0) is not Off")
		}
		if b.Squares[1][1] != Off {
			t.Error("Hedge corner (1,1) is not Off")
		}
		if b.Squares[Hedge+BoardSize][Hedge+BoardSize] != Off {
			t.Error("Hedge corner at far edge is not Off")
		}
		if got := b.Get('i', '1'); got != Off {
			t.Errorf("Get(i, 1) = %v; want Off", got)
		}
	})
}

func TestSetupInitialPosition(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()

	tests := []struct {
		name  string
		col   Col
		rank  Rank
		piece Piece
	}{
		{"white rook a1", 'a', '1', W(Rook)},
		{"white knight b1", 'b', '1', W(Knight)},
		{"white queen d1", 'd', '1', W(Queen)},
		{"white king e1", 'e', '1', W(King)},
		{"white pawn e2", 'e', '2', W(Pawn)},
		{"empty e4", 'e', '4', Empty},
		{"black pawn e7", 'e', '7', B(Pawn)},
		{"black queen d8", 'd', '8', B(Queen)},
		{"black king e8", 'e', '8', B(King)},
		{"black rook h8", 'h', '8', B(Rook)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Get(tt.col, tt.rank); got != tt.piece {
				t.Errorf("Get(%c, %c) = %v; want %v", tt.col, tt.rank, got, tt.piece)
			}
		})
	}

	t.Run("castling rights", func(t *testing.T) {
		for _, colour := range []Colour{White, Black} {
			for _, kingside := range []bool{true, false} {
				if !b.CanCastle(colour, kingside) {
					t.Errorf("CanCastle(%v, kingside=%v) = false; want true", colour, kingside)
				}
			}
		}
	})

	t.Run("king squares", func(t *testing.T) {
		if col, rank := b.King(White); col != 'e' || rank != '1' {
			t.Errorf("King(White) = %c%c; want e1", col, rank)
		}
		if col, rank := b.King(Black); col != 'e' || rank != '8' {
			t.Errorf("King(Black) = %c%c; want e8", col, rank)
		}
	})
}

func TestBoardCopy(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()

	c := b.Copy()
	c.Set('e', '2', Empty)
	c.Set('e', '4', W(Pawn))
	c.RevokeCastling(White)
	c.ToMove = Black

	if b.Get('e', '2') != W(Pawn) {
		t.Error("modifying the copy changed the original e2")
	}
	if b.Get('e', '4') != Empty {
		t.Error("modifying the copy changed the original e4")
	}
	if !b.WKingCastle || !b.WQueenCastle {
		t.Error("revoking castling on the copy changed the original")
	}
	if b.ToMove != White {
		t.Error("modifying the copy changed the original side to move")
	}
}

func TestColouredPieces(t *testing.T) {
	for p := Pawn; p <= King; p++ {
		for _, colour := range []Colour{White, Black} {
			cp := MakeColouredPiece(colour, p)
			if ExtractPiece(cp) != p {
				t.Errorf("ExtractPiece(%v %v) = %v", colour, p, ExtractPiece(cp))
			}
			if ExtractColour(cp) != colour {
				t.Errorf("ExtractColour(%v %v) = %v", colour, p, ExtractColour(cp))
			}
			if !IsOccupied(cp) {
				t.Errorf("IsOccupied(%v %v) = false", colour, p)
			}
		}
	}
	if IsOccupied(Empty) || IsOccupied(Off) {
		t.Error("IsOccupied should be false for Empty and Off")
	}
}

func TestPieceFromLetter(t *testing.T) {
	tests := []struct {
		in   byte
		want Piece
	}{
		{'N', Knight}, {'n', Knight}, {'q', Queen}, {'K', King},
		{'b', Bishop}, {'r', Rook}, {'P', Pawn}, {'x', Empty},
	}
	for _, tt := range tests {
		if got := PieceFromLetter(tt.in); got != tt.want {
			t.Errorf("PieceFromLetter(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{NewMove('e', '2', 'e', '4'), "e2e4"},
		{NewMove('g', '1', 'f', '3'), "g1f3"},
		{NewMove('e', '7', 'e', '8').WithPromotion(Queen), "e7e8q"},
		{NewMove('a', '2', 'b', '1').WithPromotion(Knight), "a2b1n"},
	}
	for _, tt := range tests {
		if got := tt.move.String(); got != tt.want {
			t.Errorf("String() = %q; want %q", got, tt.want)
		}
	}
}

func TestMoveEquality(t *testing.T) {
	a := NewMove('e', '7', 'e', '8').WithPromotion(Queen)
	b := NewMove('e', '7', 'e', '8').WithPromotion(Queen)
	c := NewMove('e', '7', 'e', '8').WithPromotion(Rook)
	if a != b {
		t.Error("identical moves compare unequal")
	}
	if a == c {
		t.Error("moves with different promotions compare equal")
	}
}
