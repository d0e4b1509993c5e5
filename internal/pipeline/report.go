package pipeline

import (
	"fmt"
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/puzzle-cards/internal/deck"
)

// Report summarises a run.
type Report struct {
	Requested  int
	Fetched    int
	Resolved   int
	Rejected   int
	Duplicates int
	Failed     int // could not be fetched, rendered or stored
	Carded     int

	// Paths of the written deck; empty when nothing was written.
	Deck deck.Paths
	// Errors holds one entry per failed, rejected or duplicate puzzle.
	Errors []error

	themes map[string]int
}

func newReport(requested int) *Report {
	return &Report{Requested: requested, themes: make(map[string]int)}
}

func (r *Report) addThemes(themes []string) {
	for _, theme := range themes {
		r.themes[theme]++
	}
}

// Themes returns how many carded puzzles carry each theme.
func (r *Report) Themes() map[string]int {
	return maps.Clone(r.themes)
}

// Write prints the summary and the theme histogram, themes in name order.
func (r *Report) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "requested %d, fetched %d, resolved %d, rejected %d, duplicates %d, failed %d, carded %d\n",
		r.Requested, r.Fetched, r.Resolved, r.Rejected, r.Duplicates, r.Failed, r.Carded)
	if err != nil {
		return err
	}
	if r.Deck.Notes != "" {
		if _, err := fmt.Fprintf(w, "deck: %s\n", r.Deck.Notes); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "  %-20s %d\n", name, r.themes[name]); err != nil {
			return err
		}
	}
	return nil
}
