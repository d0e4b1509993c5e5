package lichess

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/puzzle-cards/internal/config"
	"github.com/lgbarn/puzzle-cards/internal/errors"
)

const ruyLopezPayload = `{
  "game": {"id": "abcd1234", "pgn": "e4 e5 Nf3 Nc6 Bb5", "clock": "3+0"},
  "puzzle": {
    "id": "ATSSe",
    "rating": 1520,
    "plays": 4242,
    "initialPly": 4,
    "solution": ["a7a6"],
    "themes": ["opening", "short"]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NewSourceConfig()
	cfg.BaseURL = srv.URL
	cfg.Delay = 0
	return NewClient(*cfg, srv.Client())
}

func TestClient_Fetch(t *testing.T) {
	var gotPath, gotAgent, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ruyLopezPayload))
	})

	p, err := client.Fetch(context.Background(), "ATSSe")
	require.NoError(t, err)

	assert.Equal(t, "/api/puzzle/ATSSe", gotPath)
	assert.Equal(t, "puzzle-cards", gotAgent)
	assert.Equal(t, "application/json", gotAccept)

	assert.Equal(t, "ATSSe", p.ID)
	assert.Equal(t, "abcd1234", p.GameID)
	assert.Equal(t, "e4 e5 Nf3 Nc6 Bb5", p.Game)
	assert.Equal(t, []string{"a7a6"}, p.Solution)
	assert.Equal(t, []string{"opening", "short"}, p.Themes)
	assert.Equal(t, 1520, p.Rating)
	assert.Equal(t, 4242, p.Plays)
	assert.Equal(t, 4, p.InitialPly)
}

func TestClient_Fetch_MissingFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"game": {"pgn": "e4"}, "puzzle": {}}`))
	})

	p, err := client.Fetch(context.Background(), "zzzzz")
	require.NoError(t, err)
	assert.Equal(t, "zzzzz", p.ID, "id falls back to the requested one")
	assert.NotNil(t, p.Solution)
	assert.Empty(t, p.Solution)
	assert.NotNil(t, p.Themes)
}

func TestClient_Fetch_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.Fetch(context.Background(), "nope1")
	assert.ErrorIs(t, err, errors.ErrPuzzleNotFound)
}

func TestClient_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"rate limited", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"game": `))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.Fetch(context.Background(), "ATSSe")
			require.Error(t, err)
			assert.NotErrorIs(t, err, errors.ErrPuzzleNotFound)
		})
	}
}

func TestClient_Fetch_MalformedID(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	for _, id := range []string{"", "../admin", "a b"} {
		_, err := client.Fetch(context.Background(), id)
		assert.ErrorIs(t, err, errors.ErrPuzzleNotFound, id)
	}
	assert.Zero(t, atomic.LoadInt32(&calls), "malformed ids never reach the server")
}

func TestClient_Fetch_Delay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ruyLopezPayload))
	}))
	defer srv.Close()

	cfg := config.NewSourceConfig()
	cfg.BaseURL = srv.URL + "/"
	cfg.Delay = 50 * time.Millisecond
	client := NewClient(*cfg, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Fetch(context.Background(), "ATSSe")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestClient_Fetch_Cancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ruyLopezPayload))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Fetch(ctx, "ATSSe")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPuzzle_Transcript(t *testing.T) {
	p := &Puzzle{
		ID:       "ATSSe",
		Game:     "1. e4 e5 2. Nf3 Nc6 3. Bb5",
		Solution: []string{"a7a6"},
	}
	tr := p.Transcript()
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}, tr.Game)
	assert.Equal(t, []string{"a7a6"}, tr.Solution)
	assert.Empty(t, tr.InitialFEN)

	tr.Solution[0] = "h7h6"
	assert.Equal(t, "a7a6", p.Solution[0], "transcript does not alias the puzzle")
}

func TestTrainingURL(t *testing.T) {
	assert.Equal(t, "https://lichess.org/training/ATSSe", TrainingURL("ATSSe"))
}
