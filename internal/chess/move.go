package chess

// Move is an origin square, a destination square and an optional
// promotion piece. Moves are plain values: copy them, compare them with ==.
type Move struct {
	FromCol  Col
	FromRank Rank
	ToCol    Col
	ToRank   Rank

	// Piece promoted to (Empty if not a promotion).
	Promotion Piece
}

// NewMove creates a move between two squares without promotion.
func NewMove(fromCol Col, fromRank Rank, toCol Col, toRank Rank) Move {
	return Move{
		FromCol:   fromCol,
		FromRank:  fromRank,
		ToCol:     toCol,
		ToRank:    toRank,
		Promotion: Empty,
	}
}

// WithPromotion returns a copy of the move promoting to the given piece.
func (m Move) WithPromotion(piece Piece) Move {
	m.Promotion = piece
	return m
}

// IsPromotion returns true if this move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion != Empty && m.Promotion != Off
}

// From returns the origin square as text, e.g. "e2".
func (m Move) From() string {
	return string([]byte{byte(m.FromCol), byte(m.FromRank)})
}

// To returns the destination square as text, e.g. "e4".
func (m Move) To() string {
	return string([]byte{byte(m.ToCol), byte(m.ToRank)})
}

// String returns the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From() + m.To()
	if m.IsPromotion() {
		s += string(rune(m.Promotion.Letter() + ('a' - 'A')))
	}
	return s
}
