// Package worker provides a worker pool for resolving puzzles in parallel.
package worker

import (
	"context"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/puzzle-cards/internal/puzzle"
)

// WorkItem represents a puzzle to be processed.
type WorkItem struct {
	PuzzleID string
	Index    int // Original index for tracking
}

// ProcessResult represents the result of processing a puzzle.
type ProcessResult struct {
	PuzzleID   string
	Index      int
	Resolution *puzzle.Resolution // nil when Error is set
	Payload    interface{}        // Opaque source data; typed by consumer
	Error      error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(ctx context.Context, item WorkItem) ProcessResult

// Pool runs a ProcessFunc over work items on a fixed number of goroutines.
type Pool struct {
	numWorkers  int
	bufferSize  int
	ctx         context.Context
	processFunc ProcessFunc
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// WithContext sets the context passed to the process function. Once it is
// done, remaining items are drained without processing.
func WithContext(ctx context.Context) PoolOption {
	return func(p *Pool) {
		if ctx != nil {
			p.ctx = ctx
		}
	}
}

// NewPool creates a worker pool. processFunc is required.
// Default: 1 worker, buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		ctx:         context.Background(),
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes items and returns the results ordered by Index. Items
// still queued when the context is done have no result.
func (p *Pool) Run(items []WorkItem) []ProcessResult {
	work := make(chan WorkItem, p.bufferSize)
	results := make(chan ProcessResult, p.bufferSize)

	var wg sync.WaitGroup
	for i := 0; i < p.numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range work {
				if p.ctx.Err() != nil {
					continue // Drain channel without processing
				}
				results <- p.processFunc(p.ctx, item)
			}
		}()
	}

	go func() {
		defer func() {
			close(work)
			wg.Wait()
			close(results)
		}()
		for _, item := range items {
			if p.ctx.Err() != nil {
				return
			}
			work <- item
		}
	}()

	out := make([]ProcessResult, 0, len(items))
	for result := range results {
		out = append(out, result)
	}
	slices.SortFunc(out, func(a, b ProcessResult) int {
		return a.Index - b.Index
	})
	return out
}
