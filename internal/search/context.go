package search

import (
	"context"
	"sync/atomic"

	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/config"
)

const (
	// maxPly bounds killer-move bookkeeping and principal variation
	// extraction.
	maxPly = 64

	// historyMax caps history scores; hitting the cap halves the whole
	// table so recent cutoffs keep outweighing stale ones.
	historyMax = 8000

	// pollInterval is the node count between deadline checks. Polling
	// every node would spend more time reading the clock than searching.
	pollInterval = 1024
)

// counterKey identifies the move a counter-move replies to.
type counterKey struct {
	from chess.Position
	to   chess.Position
}

// Stats counts work done during one search call.
type Stats struct {
	Nodes   uint64
	QNodes  uint64
	TTHits  uint64
	Cutoffs uint64
	Cleared bool // position cache was cleared before this search
}

// SearchContext owns all mutable search state: the position cache and the
// ordering heuristics, the cancellation flag, and the time manager. One
// context belongs to exactly one top-level search call and is threaded
// through the recursion explicitly; there is no process-wide state.
type SearchContext struct {
	cfg   config.Config
	table *Table
	timer *TimeManager

	// ctx carries external cancellation (e.g. a disconnected client).
	ctx context.Context

	killers  [maxPly][2]chess.Move
	history  [64][64]int
	counters map[counterKey]chess.Move

	stopped   atomic.Bool
	pollCount uint64

	stats Stats
}

// newSearchContext builds the state for one top-level search. The table
// is supplied by the caller so it can persist across searches.
func newSearchContext(ctx context.Context, cfg config.Config, table *Table, timer *TimeManager) *SearchContext {
	return &SearchContext{
		cfg:      cfg,
		table:    table,
		timer:    timer,
		ctx:      ctx,
		counters: make(map[counterKey]chess.Move),
	}
}

// Stop sets the cancellation flag. In-flight recursion observes it at node
// entry and returns its current static evaluation.
func (sc *SearchContext) Stop() {
	sc.stopped.Store(true)
}

// Stopped reports whether the search has been told to wind down.
func (sc *SearchContext) Stopped() bool {
	return sc.stopped.Load()
}

// countNode registers one visited node and occasionally checks the clock
// and external cancellation.
func (sc *SearchContext) countNode() {
	sc.stats.Nodes++
	sc.maybePoll()
}

// countQNode registers one quiescence node; the clock is polled on the
// same cadence as main-search nodes.
func (sc *SearchContext) countQNode() {
	sc.stats.QNodes++
	sc.maybePoll()
}

func (sc *SearchContext) maybePoll() {
	sc.pollCount++
	if sc.pollCount%pollInterval != 0 {
		return
	}
	if !sc.timer.ShouldContinue() {
		sc.stopped.Store(true)
		return
	}
	if sc.ctx != nil && sc.ctx.Err() != nil {
		sc.stopped.Store(true)
	}
}

// Stats returns the counters accumulated so far.
func (sc *SearchContext) Stats() Stats {
	return sc.stats
}

// recordCutoff rewards a quiet move that caused a beta cutoff: it becomes
// the first killer for its ply, the counter to the previous move, and its
// from/to cell in the history table grows by depth².
func (sc *SearchContext) recordCutoff(move chess.Move, prev chess.Move, ply, depth int) {
	sc.stats.Cutoffs++

	if ply < maxPly && sc.killers[ply][0] != move {
		sc.killers[ply][1] = sc.killers[ply][0]
		sc.killers[ply][0] = move
	}

	if !prev.IsZero() {
		sc.counters[counterKey{from: prev.From, to: prev.To}] = move
	}

	from, to := squareOf(move.From), squareOf(move.To)
	sc.history[from][to] += depth * depth
	if sc.history[from][to] > historyMax {
		sc.halveHistory()
	}
}

// halveHistory scales every history cell down, keeping relative order.
func (sc *SearchContext) halveHistory() {
	for from := range sc.history {
		for to := range sc.history[from] {
			sc.history[from][to] /= 2
		}
	}
}

// historyScore returns the accumulated cutoff credit for a quiet move.
func (sc *SearchContext) historyScore(move chess.Move) int {
	return sc.history[squareOf(move.From)][squareOf(move.To)]
}

// killerSlot returns 0 or 1 if the move is a killer at this ply, -1
// otherwise.
func (sc *SearchContext) killerSlot(move chess.Move, ply int) int {
	if ply >= maxPly {
		return -1
	}
	switch move {
	case sc.killers[ply][0]:
		return 0
	case sc.killers[ply][1]:
		return 1
	}
	return -1
}

// counterTo returns the recorded reply to prev, if any.
func (sc *SearchContext) counterTo(prev chess.Move) (chess.Move, bool) {
	if prev.IsZero() {
		return chess.Move{}, false
	}
	move, ok := sc.counters[counterKey{from: prev.From, to: prev.To}]
	return move, ok
}

// squareOf flattens a position into a 0..63 index.
func squareOf(pos chess.Position) int {
	return (pos.Rank-1)*8 + (pos.File - 1)
}
