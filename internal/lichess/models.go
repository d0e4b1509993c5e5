package lichess

import (
	"github.com/lgbarn/puzzle-cards/internal/puzzle"
)

// Puzzle is one Lichess training puzzle.
type Puzzle struct {
	ID       string
	GameID   string
	Game     string   // moves of the source game up to the puzzle, in SAN
	Solution []string // best moves from the puzzle position, coordinate notation
	Themes   []string
	Rating   int
	Plays    int
	// InitialPly is the ply of the last game move before the puzzle starts.
	InitialPly int
}

// Transcript returns the move record the resolver replays.
func (p *Puzzle) Transcript() puzzle.Transcript {
	return puzzle.Transcript{
		Game:     puzzle.SplitTranscript(p.Game),
		Solution: append([]string(nil), p.Solution...),
	}
}

// TrainingURL is the puzzle's page on the Lichess site.
func TrainingURL(id string) string {
	return "https://lichess.org/training/" + id
}

// puzzleResponse is the subset of the /api/puzzle/{id} payload we use.
type puzzleResponse struct {
	Game struct {
		ID  string `json:"id"`
		PGN string `json:"pgn"`
	} `json:"game"`
	Puzzle struct {
		ID         string   `json:"id"`
		Rating     int      `json:"rating"`
		Plays      int      `json:"plays"`
		Solution   []string `json:"solution"`
		Themes     []string `json:"themes"`
		InitialPly int      `json:"initialPly"`
	} `json:"puzzle"`
}

func (r *puzzleResponse) toPuzzle(id string) *Puzzle {
	p := &Puzzle{
		ID:         r.Puzzle.ID,
		GameID:     r.Game.ID,
		Game:       r.Game.PGN,
		Solution:   r.Puzzle.Solution,
		Themes:     r.Puzzle.Themes,
		Rating:     r.Puzzle.Rating,
		Plays:      r.Puzzle.Plays,
		InitialPly: r.Puzzle.InitialPly,
	}
	if p.ID == "" {
		p.ID = id
	}
	if p.Solution == nil {
		p.Solution = []string{}
	}
	if p.Themes == nil {
		p.Themes = []string{}
	}
	return p
}
