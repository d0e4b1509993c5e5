package main

import (
	"reflect"
	"testing"
	"time"

	"github.com/lgbarn/puzzle-cards/internal/config"
)

// saveRestoreBool sets a bool flag pointer and returns a func restoring it.
// Usage: defer saveRestoreBool(strictMode, true)()
func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreDuration(ptr *time.Duration, val time.Duration) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func flagSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

func TestApplyFlags_UnsetFlagsKeepConfig(t *testing.T) {
	defer saveRestoreInt(workers, 9)()
	defer saveRestoreString(deckName, "Ignored")()
	defer saveRestoreInt(boardSize, 200)()

	cfg := config.NewConfig()
	cfg.Deck.Name = "From File"
	applyFlags(cfg, flagSet(), nil)

	if cfg.Workers != 4 {
		t.Errorf("Workers = %d; want 4", cfg.Workers)
	}
	if cfg.Deck.Name != "From File" {
		t.Errorf("Deck.Name = %q; want %q", cfg.Deck.Name, "From File")
	}
	if cfg.Render.Size != 1000 {
		t.Errorf("Render.Size = %d; want 1000", cfg.Render.Size)
	}
}

func TestApplySelectionFlags(t *testing.T) {
	tests := []struct {
		name    string
		list    string
		set     map[string]bool
		args    []string
		want    []string
		strict  bool
		workers int
	}{
		{"defaults", "", flagSet(), nil, config.DefaultPuzzles, false, 4},
		{"list", "abc, def,,ghi", flagSet("puzzles"), nil, []string{"abc", "def", "ghi"}, false, 4},
		{"arguments", "", flagSet(), []string{"xyz", "uvw"}, []string{"xyz", "uvw"}, false, 4},
		{"list then arguments", "abc", flagSet("puzzles"), []string{"xyz"}, []string{"abc", "xyz"}, false, 4},
		{"strict and workers", "", flagSet("strict", "workers"), nil, config.DefaultPuzzles, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreString(puzzleList, tt.list)()
			defer saveRestoreBool(strictMode, true)()
			defer saveRestoreInt(workers, 2)()

			cfg := config.NewConfig()
			applySelectionFlags(cfg, tt.set, tt.args)

			if !reflect.DeepEqual(cfg.Puzzles, tt.want) {
				t.Errorf("Puzzles = %v; want %v", cfg.Puzzles, tt.want)
			}
			if cfg.Strict != tt.strict {
				t.Errorf("Strict = %v; want %v", cfg.Strict, tt.strict)
			}
			if cfg.Workers != tt.workers {
				t.Errorf("Workers = %d; want %d", cfg.Workers, tt.workers)
			}
		})
	}
}

func TestApplySourceFlags(t *testing.T) {
	defer saveRestoreString(lichessURL, "http://localhost:9663")()
	defer saveRestoreDuration(delay, 250*time.Millisecond)()

	cfg := config.NewConfig()
	applySourceFlags(cfg, flagSet("lichess", "delay"))

	if cfg.Source.BaseURL != "http://localhost:9663" {
		t.Errorf("Source.BaseURL = %q", cfg.Source.BaseURL)
	}
	if cfg.Source.Delay != 250*time.Millisecond {
		t.Errorf("Source.Delay = %v; want 250ms", cfg.Source.Delay)
	}
}

func TestApplyDeckFlags(t *testing.T) {
	defer saveRestoreString(outputDir, "cards")()
	defer saveRestoreString(deckName, "Endgames")()
	defer saveRestoreBool(noJSON, true)()

	cfg := config.NewConfig()
	applyDeckFlags(cfg, flagSet("out", "deck", "nojson"))

	if cfg.Deck.OutputDir != "cards" {
		t.Errorf("Deck.OutputDir = %q; want cards", cfg.Deck.OutputDir)
	}
	if cfg.Deck.Name != "Endgames" {
		t.Errorf("Deck.Name = %q; want Endgames", cfg.Deck.Name)
	}
	if cfg.Deck.JSON {
		t.Error("Deck.JSON = true; want false with -nojson")
	}
}

func TestApplyRenderFlags(t *testing.T) {
	defer saveRestoreInt(boardSize, 480)()
	defer saveRestoreBool(orient, true)()
	defer saveRestoreBool(noCoords, true)()

	cfg := config.NewConfig()
	applyRenderFlags(cfg, flagSet("size", "orient", "nocoords"))

	if cfg.Render.Size != 480 {
		t.Errorf("Render.Size = %d; want 480", cfg.Render.Size)
	}
	if !cfg.Render.Orient {
		t.Error("Render.Orient = false; want true")
	}
	if cfg.Render.Coordinates {
		t.Error("Render.Coordinates = true; want false with -nocoords")
	}
}

func TestApplyLogFlags(t *testing.T) {
	tests := []struct {
		name      string
		set       map[string]bool
		v         int
		quiet     bool
		style     string
		wantV     int
		wantStyle string
	}{
		{"defaults", flagSet(), 1, false, "", 1, "console"},
		{"verbose json", flagSet("v", "log-style"), 2, false, "json", 2, "json"},
		{"quiet wins", flagSet("v", "s"), 2, true, "", 0, "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreInt(verbosity, tt.v)()
			defer saveRestoreBool(quiet, tt.quiet)()
			defer saveRestoreString(logStyle, tt.style)()

			cfg := config.NewConfig()
			applyLogFlags(cfg, tt.set)

			if cfg.Verbosity != tt.wantV {
				t.Errorf("Verbosity = %d; want %d", cfg.Verbosity, tt.wantV)
			}
			if cfg.Log.Style != tt.wantStyle {
				t.Errorf("Log.Style = %q; want %q", cfg.Log.Style, tt.wantStyle)
			}
		})
	}
}

func TestApplyFlags_Mongo(t *testing.T) {
	defer saveRestoreString(mongoAddress, "mongodb://localhost:27017")()

	cfg := config.NewConfig()
	applyFlags(cfg, flagSet("mongo"), nil)

	if !cfg.Store.Enabled() {
		t.Error("store not enabled by -mongo")
	}
}

func TestPuzzleIDs(t *testing.T) {
	if got := puzzleIDs("", nil); got != nil {
		t.Errorf("puzzleIDs(empty) = %v; want nil", got)
	}
	got := puzzleIDs(" a1 ,b2", []string{" c3", ""})
	want := []string{"a1", "b2", "c3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("puzzleIDs = %v; want %v", got, want)
	}
}
