package puzzle

import (
	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/engine"
	"github.com/lgbarn/puzzle-cards/internal/errors"
	"github.com/lgbarn/puzzle-cards/internal/notation"
)

// State is a stage of puzzle resolution.
type State int

const (
	// ReplayingPrefix plays the game moves towards the puzzle position.
	ReplayingPrefix State = iota
	// EmittingStart records the puzzle position.
	EmittingStart
	// ReplayingSolution plays the solution moves and writes their SAN.
	ReplayingSolution
	// Resolved is the terminal success state.
	Resolved
	// Rejected is the terminal failure state.
	Rejected
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case ReplayingPrefix:
		return "ReplayingPrefix"
	case EmittingStart:
		return "EmittingStart"
	case ReplayingSolution:
		return "ReplayingSolution"
	case Resolved:
		return "Resolved"
	case Rejected:
		return "Rejected"
	}
	return "Unknown"
}

// Resolution is the result of replaying a transcript.
type Resolution struct {
	StartFEN   string   // position after the game prefix
	SideToMove string   // "White" or "Black", the side solving the puzzle
	Solution   []string // solution moves in SAN, in order
	FinalFEN   string   // position after the last solution move

	// LastMove is the final game move, the one the solver responds to.
	// It is nil when the game prefix is empty.
	LastMove *chess.Move
	// StartBoard is the puzzle position, for rendering.
	StartBoard *chess.Board
}

// Resolver steps a transcript through the resolution states.
// A Resolver is used by a single goroutine.
type Resolver struct {
	transcript Transcript
	state      State
	index      int
	board      *chess.Board
	resolution *Resolution
	err        error
}

// NewResolver creates a resolver positioned before the first game move.
func NewResolver(transcript Transcript) *Resolver {
	return &Resolver{
		transcript: transcript,
		state:      ReplayingPrefix,
		resolution: &Resolution{Solution: make([]string, 0, len(transcript.Solution))},
	}
}

// State returns the current state.
func (r *Resolver) State() State {
	return r.state
}

// Err returns the rejection cause once the resolver is Rejected.
func (r *Resolver) Err() error {
	return r.err
}

// Step performs one transition: one game move, the start snapshot, or one
// solution move. It returns false once a terminal state is reached.
func (r *Resolver) Step() bool {
	switch r.state {
	case ReplayingPrefix:
		r.stepPrefix()
	case EmittingStart:
		r.emitStart()
	case ReplayingSolution:
		r.stepSolution()
	}
	return r.state != Resolved && r.state != Rejected
}

// Run steps until a terminal state and returns the resolution, or a
// *errors.RejectedTranscriptError.
func (r *Resolver) Run() (*Resolution, error) {
	for r.Step() {
	}
	if r.state == Rejected {
		return nil, r.err
	}
	return r.resolution, nil
}

// Resolve replays a transcript from start to finish.
func Resolve(transcript Transcript) (*Resolution, error) {
	return NewResolver(transcript).Run()
}

func (r *Resolver) stepPrefix() {
	if r.board == nil {
		board, err := startingBoard(r.transcript.InitialFEN)
		if err != nil {
			r.reject(errors.PhasePrefix, r.transcript.InitialFEN, err)
			return
		}
		r.board = board
	}

	if r.index == len(r.transcript.Game) {
		r.state = EmittingStart
		r.index = 0
		return
	}

	token := r.transcript.Game[r.index]
	move, err := notation.DecodeAlgebraic(r.board, token)
	if err != nil {
		r.reject(errors.PhasePrefix, token, err)
		return
	}
	next, err := engine.Apply(r.board, move)
	if err != nil {
		r.reject(errors.PhasePrefix, token, err)
		return
	}
	r.board = next
	r.resolution.LastMove = &move
	r.index++
}

func (r *Resolver) emitStart() {
	r.resolution.StartFEN = notation.ToFEN(r.board)
	r.resolution.SideToMove = r.board.ToMove.String()
	r.resolution.StartBoard = r.board
	r.state = ReplayingSolution
}

func (r *Resolver) stepSolution() {
	if r.index == len(r.transcript.Solution) {
		r.resolution.FinalFEN = notation.ToFEN(r.board)
		r.state = Resolved
		return
	}

	token := r.transcript.Solution[r.index]
	move, err := notation.DecodeCoordinate(r.board, token)
	if err != nil {
		r.reject(errors.PhaseSolution, token, err)
		return
	}
	san, next, err := notation.SAN(r.board, move)
	if err != nil {
		r.reject(errors.PhaseSolution, token, err)
		return
	}
	r.resolution.Solution = append(r.resolution.Solution, san)
	r.board = next
	r.index++
}

func (r *Resolver) reject(phase errors.Phase, token string, err error) {
	r.err = &errors.RejectedTranscriptError{
		Err:   err,
		Phase: phase,
		Index: r.index,
		Token: token,
	}
	r.resolution = nil
	r.state = Rejected
}

// startingBoard returns the standard starting position, or the given FEN.
func startingBoard(fen string) (*chess.Board, error) {
	if fen == "" {
		return engine.NewInitialBoard(), nil
	}
	return engine.NewBoardFromFEN(fen)
}
