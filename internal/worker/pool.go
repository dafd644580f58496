// Package worker provides a worker pool for parallel move scoring.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/ThenerzZ/chess-engine-go/internal/chess"
)

// WorkItem represents one root move to be scored. Game is the position
// the move belongs to; every worker clones it before moving, so items may
// share a board.
type WorkItem struct {
	Game  chess.Game
	Move  chess.Move
	Index int // Original index for stable tie-breaking
}

// ScoreResult represents the outcome of scoring one move.
type ScoreResult struct {
	Index int
	Move  chess.Move
	Score int
	Err   error
}

// ScoreFunc is the function signature for scoring a work item.
type ScoreFunc func(item WorkItem) ScoreResult

// Pool manages a pool of workers for parallel move scoring.
type Pool struct {
	numWorkers int
	bufferSize int
	workChan   chan WorkItem
	resultChan chan ScoreResult
	scoreFunc  ScoreFunc
	wg         sync.WaitGroup
	stopFlag   int32 // Atomic flag for early termination
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

// NewPool creates a new worker pool using functional options.
// scoreFunc is required; other settings have sensible defaults.
// Default: 1 worker, buffer size of 64.
func NewPool(scoreFunc ScoreFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		bufferSize: 64,
		scoreFunc:  scoreFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ScoreResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker scores items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.scoreFunc(item)
	}
}

// Submit submits a work item for scoring.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not scored.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers
// are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading scored moves.
func (p *Pool) Results() <-chan ScoreResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
