package chess

// Board represents a chess board with all state needed for the game.
type Board struct {
	// The board squares with a hedge of 2 around for knight move calculation.
	// board[col][rank] where col and rank are 0-11 (with hedge).
	Squares [Hedge + BoardSize + Hedge][Hedge + BoardSize + Hedge]Piece

	// Who has the next move.
	ToMove Colour

	// The fullmove number, incremented after each Black move.
	MoveNumber uint

	// Castling rights. A right is lost for good once the king or the
	// corresponding corner rook moves, or the rook is captured.
	WKingCastle  bool
	WQueenCastle bool
	BKingCastle  bool
	BQueenCastle bool

	// Keep track of where the two kings are for check detection.
	WKingCol  Col
	WKingRank Rank
	BKingCol  Col
	BKingRank Rank

	// Is EnPassant capture possible? If so then EPRank and EPCol have
	// the square on which this can be made.
	EnPassant bool
	EPRank    Rank
	EPCol     Col

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	b := &Board{
		ToMove:     White,
		MoveNumber: 1,
	}
	// Initialize all squares to Off (hedge) or Empty
	for col := 0; col < Hedge+BoardSize+Hedge; col++ {
		for rank := 0; rank < Hedge+BoardSize+Hedge; rank++ {
			if col >= Hedge && col < Hedge+BoardSize &&
				rank >= Hedge && rank < Hedge+BoardSize {
				b.Squares[col][rank] = Empty
			} else {
				b.Squares[col][rank] = Off
			}
		}
	}
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	for col := Hedge; col < Hedge+BoardSize; col++ {
		for rank := Hedge; rank < Hedge+BoardSize; rank++ {
			b.Squares[col][rank] = Empty
		}
	}

	backRank := []Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Squares[col+Hedge][Hedge] = W(backRank[col])
		b.Squares[col+Hedge][Hedge+1] = W(Pawn)
		b.Squares[col+Hedge][Hedge+6] = B(Pawn)
		b.Squares[col+Hedge][Hedge+7] = B(backRank[col])
	}

	b.WKingCol, b.WKingRank = 'e', '1'
	b.BKingCol, b.BKingRank = 'e', '8'

	b.WKingCastle = true
	b.WQueenCastle = true
	b.BKingCastle = true
	b.BQueenCastle = true

	b.ToMove = White
	b.MoveNumber = 1
	b.EnPassant = false
	b.EPCol, b.EPRank = 0, 0
	b.HalfmoveClock = 0
}

// Get returns the piece at the given coordinates (using char coords 'a'-'h', '1'-'8').
func (b *Board) Get(col Col, rank Rank) Piece {
	c := ColConvert(col)
	r := RankConvert(rank)
	if c == 0 || r == 0 {
		return Off
	}
	return b.Squares[c][r]
}

// Set places a piece at the given coordinates.
func (b *Board) Set(col Col, rank Rank, piece Piece) {
	c := ColConvert(col)
	r := RankConvert(rank)
	if c != 0 && r != 0 {
		b.Squares[c][r] = piece
	}
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// King returns the tracked square of the given colour's king.
func (b *Board) King(colour Colour) (Col, Rank) {
	if colour == White {
		return b.WKingCol, b.WKingRank
	}
	return b.BKingCol, b.BKingRank
}

// SetKing records the square of the given colour's king.
func (b *Board) SetKing(colour Colour, col Col, rank Rank) {
	if colour == White {
		b.WKingCol, b.WKingRank = col, rank
	} else {
		b.BKingCol, b.BKingRank = col, rank
	}
}

// CanCastle reports whether the given colour still holds the castling right
// on the requested wing.
func (b *Board) CanCastle(colour Colour, kingside bool) bool {
	switch {
	case colour == White && kingside:
		return b.WKingCastle
	case colour == White:
		return b.WQueenCastle
	case kingside:
		return b.BKingCastle
	default:
		return b.BQueenCastle
	}
}

// RevokeCastling clears both castling rights of the given colour.
func (b *Board) RevokeCastling(colour Colour) {
	if colour == White {
		b.WKingCastle = false
		b.WQueenCastle = false
	} else {
		b.BKingCastle = false
		b.BQueenCastle = false
	}
}

// ClearEnPassant removes any en-passant target.
func (b *Board) ClearEnPassant() {
	b.EnPassant = false
	b.EPCol, b.EPRank = 0, 0
}
