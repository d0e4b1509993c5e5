// Package deck assembles resolved puzzles into flashcards and writes them
// as an Anki-importable notes file and as JSON.
package deck

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lgbarn/puzzle-cards/internal/lichess"
	"github.com/lgbarn/puzzle-cards/internal/puzzle"
)

// FieldNames are the note fields, in column order after the GUID.
var FieldNames = []string{"Position", "Side to Move", "Solution", "Themes", "Lichess Link", "FEN"}

// guidSpace namespaces card GUIDs so they never collide with other
// name-based UUIDs derived from the same training URL.
var guidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://lichess.org/training"))

// Card is one flashcard.
type Card struct {
	GUID        string   `json:"guid" bson:"_id"`
	PuzzleID    string   `json:"puzzle_id" bson:"puzzle_id"`
	Position    string   `json:"position" bson:"position"`
	SideToMove  string   `json:"side_to_move" bson:"side_to_move"`
	Solution    string   `json:"solution" bson:"solution"`
	Themes      string   `json:"themes" bson:"themes"`
	LichessLink string   `json:"lichess_link" bson:"lichess_link"`
	FEN         string   `json:"fen" bson:"fen"`
	Tags        []string `json:"tags" bson:"tags"`
	Rating      int      `json:"rating,omitempty" bson:"rating,omitempty"`
}

// CardInput is everything a card is built from.
type CardInput struct {
	PuzzleID   string
	Themes     []string
	Rating     int
	Resolution *puzzle.Resolution
}

// NewCard builds the card for a resolved puzzle. The position field
// references the diagram by ImageName.
func NewCard(in CardInput) Card {
	res := in.Resolution
	themes := in.Themes
	if themes == nil {
		themes = []string{}
	}
	return Card{
		GUID:        GUID(in.PuzzleID),
		PuzzleID:    in.PuzzleID,
		Position:    fmt.Sprintf(`<img src="%s">`, ImageName(in.PuzzleID)),
		SideToMove:  res.SideToMove,
		Solution:    strings.Join(res.Solution, ", "),
		Themes:      strings.Join(themes, ", "),
		LichessLink: lichess.TrainingURL(in.PuzzleID),
		FEN:         res.StartFEN,
		Tags:        append([]string{}, themes...),
		Rating:      in.Rating,
	}
}

// GUID returns the stable note id of a puzzle, so reimporting a deck
// updates existing notes instead of adding copies.
func GUID(puzzleID string) string {
	return uuid.NewSHA1(guidSpace, []byte(puzzleID)).String()
}

// ImageName is the diagram file name of a puzzle.
func ImageName(puzzleID string) string {
	return puzzleID + ".svg"
}

// Fields returns the note fields in FieldNames order.
func (c Card) Fields() []string {
	return []string{c.Position, c.SideToMove, c.Solution, c.Themes, c.LichessLink, c.FEN}
}
