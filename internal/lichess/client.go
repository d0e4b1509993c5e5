// Package lichess fetches training puzzles from the Lichess puzzle API.
package lichess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lgbarn/puzzle-cards/internal/config"
	"github.com/lgbarn/puzzle-cards/internal/errors"
)

// maxBody bounds how much of a response is read.
const maxBody = 1 << 20

// Client reads puzzles from GET {base}/api/puzzle/{id}.
// It is safe for concurrent use; requests are spaced by the configured delay.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	throttle   *Throttle
}

// NewClient creates a client for the given source settings. A nil
// httpClient gets a client with the configured timeout.
func NewClient(cfg config.SourceConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		throttle:   NewThrottle(cfg.Delay),
	}
}

// Fetch retrieves one puzzle. A puzzle the API does not know yields an
// error wrapping errors.ErrPuzzleNotFound.
func (c *Client) Fetch(ctx context.Context, id string) (*Puzzle, error) {
	if !config.IsPuzzleID(id) {
		return nil, fmt.Errorf("malformed puzzle id %q: %w", id, errors.ErrPuzzleNotFound)
	}
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/api/puzzle/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "lichess: build request for %s", id)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "lichess: fetch %s", id)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("lichess: %s: %w", id, errors.ErrPuzzleNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("lichess: %s: unexpected status %s", id, resp.Status)
	}

	var payload puzzleResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&payload); err != nil {
		return nil, errors.Wrapf(err, "lichess: decode %s", id)
	}
	return payload.toPuzzle(id), nil
}
