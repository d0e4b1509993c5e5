// Package render draws board diagrams as SVG.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/lgbarn/puzzle-cards/internal/chess"
	"github.com/lgbarn/puzzle-cards/internal/config"
	"github.com/lgbarn/puzzle-cards/internal/engine"
)

// Options controls the look of a diagram.
type Options struct {
	Size        int // width and height in pixels
	Light       string
	Dark        string
	Highlight   string
	Coordinates bool
	// Flipped draws the board with rank 8 at the bottom.
	Flipped bool
}

// OptionsFromConfig builds diagram options. With Orient set the board is
// drawn from the point of view of toMove.
func OptionsFromConfig(cfg config.RenderConfig, toMove chess.Colour) Options {
	return Options{
		Size:        cfg.Size,
		Light:       cfg.LightColour,
		Dark:        cfg.DarkColour,
		Highlight:   cfg.HighlightColour,
		Coordinates: cfg.Coordinates,
		Flipped:     cfg.Orient && toMove == chess.Black,
	}
}

// glyphs holds the Unicode chess symbols indexed by piece type; white
// pieces use the outlined set, black the solid one.
var glyphs = [2][chess.NumPieceValues]string{
	chess.Black: {chess.Pawn: "♟", chess.Knight: "♞", chess.Bishop: "♝", chess.Rook: "♜", chess.Queen: "♛", chess.King: "♚"},
	chess.White: {chess.Pawn: "♙", chess.Knight: "♘", chess.Bishop: "♗", chess.Rook: "♖", chess.Queen: "♕", chess.King: "♔"},
}

// layout is the pixel geometry of a diagram.
type layout struct {
	square int // square edge
	origin int // offset of the a8 corner (h1 when flipped) from the canvas edge
	opts   Options
}

func newLayout(opts Options) layout {
	border := 0
	if opts.Coordinates {
		border = opts.Size / 20
	}
	square := (opts.Size - 2*border) / chess.BoardSize
	return layout{
		square: square,
		origin: (opts.Size - chess.BoardSize*square) / 2,
		opts:   opts,
	}
}

// topLeft returns the canvas position of a square.
func (l layout) topLeft(col chess.Col, rank chess.Rank) (int, int) {
	x := int(col - chess.FirstCol)
	y := int(chess.LastRank - rank)
	if l.opts.Flipped {
		x = chess.BoardSize - 1 - x
		y = chess.BoardSize - 1 - y
	}
	return l.origin + x*l.square, l.origin + y*l.square
}

// Render writes an SVG diagram of board to w. When lastMove is not nil
// its origin and destination squares are highlighted.
func Render(w io.Writer, board *chess.Board, lastMove *chess.Move, opts Options) error {
	if opts.Size < chess.BoardSize {
		return fmt.Errorf("render: size %d too small", opts.Size)
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	l := newLayout(opts)

	canvas.Start(opts.Size, opts.Size)
	canvas.Title(engine.BoardToFEN(board))

	canvas.Group(`class="board"`)
	for rank := chess.Rank(chess.FirstRank); rank <= chess.LastRank; rank++ {
		for col := chess.Col(chess.FirstCol); col <= chess.LastCol; col++ {
			drawSquare(canvas, l, col, rank, lastMove)
		}
	}
	canvas.Gend()

	canvas.Group(`class="pieces"`, fmt.Sprintf(`font-size="%d"`, l.square*4/5), `text-anchor="middle"`, `dominant-baseline="central"`)
	for rank := chess.Rank(chess.FirstRank); rank <= chess.LastRank; rank++ {
		for col := chess.Col(chess.FirstCol); col <= chess.LastCol; col++ {
			drawPiece(canvas, l, board, col, rank)
		}
	}
	canvas.Gend()

	if opts.Coordinates {
		drawCoordinates(canvas, l)
	}
	canvas.End()
	return ew.err
}

func drawSquare(canvas *svg.SVG, l layout, col chess.Col, rank chess.Rank, lastMove *chess.Move) {
	shade, fill := "light", l.opts.Light
	if (int(col-chess.FirstCol)+int(rank-chess.FirstRank))%2 == 0 {
		shade, fill = "dark", l.opts.Dark
	}
	class := []string{"square", shade, squareName(col, rank)}
	if lastMove != nil && touches(*lastMove, col, rank) {
		class = append(class, "lastmove")
		fill = l.opts.Highlight
	}
	x, y := l.topLeft(col, rank)
	canvas.Rect(x, y, l.square, l.square,
		fmt.Sprintf(`class="%s"`, strings.Join(class, " ")),
		fmt.Sprintf(`fill="%s"`, fill))
}

func drawPiece(canvas *svg.SVG, l layout, board *chess.Board, col chess.Col, rank chess.Rank) {
	square := board.Get(col, rank)
	if !chess.IsOccupied(square) {
		return
	}
	colour := chess.ExtractColour(square)
	piece := chess.ExtractPiece(square)
	x, y := l.topLeft(col, rank)
	canvas.Text(x+l.square/2, y+l.square/2, glyphs[colour][piece],
		fmt.Sprintf(`class="piece %s %s %s"`,
			strings.ToLower(colour.String()), strings.ToLower(piece.String()), squareName(col, rank)))
}

func drawCoordinates(canvas *svg.SVG, l layout) {
	size := l.origin * 3 / 5
	canvas.Group(`class="coordinates"`, fmt.Sprintf(`font-size="%d"`, size), `text-anchor="middle"`, `dominant-baseline="central"`, `fill="#4a5568"`)
	for i := 0; i < chess.BoardSize; i++ {
		col := chess.Col(chess.FirstCol + i)
		rank := chess.Rank(chess.FirstRank + i)
		x, _ := l.topLeft(col, chess.FirstRank)
		_, y := l.topLeft(chess.FirstCol, rank)
		canvas.Text(x+l.square/2, l.opts.Size-l.origin/2, string(rune(col)))
		canvas.Text(l.origin/2, y+l.square/2, string(rune(rank)))
	}
	canvas.Gend()
}

func touches(m chess.Move, col chess.Col, rank chess.Rank) bool {
	return (m.FromCol == col && m.FromRank == rank) || (m.ToCol == col && m.ToRank == rank)
}

func squareName(col chess.Col, rank chess.Rank) string {
	return string([]byte{byte(col), byte(rank)})
}

// SaveFile renders the diagram into path, creating missing directories.
func SaveFile(path string, board *chess.Board, lastMove *chess.Move, opts Options) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("render: %w", cerr)
		}
	}()
	return Render(f, board, lastMove, opts)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
