package search

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ThenerzZ/chess-engine-go/internal/book"
	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/config"
	"github.com/ThenerzZ/chess-engine-go/internal/eval"
)

// Result is the outcome of one best-move request.
type Result struct {
	Move    chess.Move
	Score   int
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
	PV      []chess.Move

	// FromBook and Obvious mark moves returned without searching.
	FromBook bool
	Obvious  bool
}

// Iteration describes one completed depth of iterative deepening.
type Iteration struct {
	Depth   int
	Score   int
	Move    chess.Move
	Nodes   uint64
	Elapsed time.Duration
}

// Engine is the top-level search driver. It owns the position cache,
// which persists across calls, and the opening book. An Engine must not
// be used from multiple goroutines at once.
type Engine struct {
	cfg   config.Config
	log   zerolog.Logger
	table *Table
	book  *book.Book

	// OnIteration, when set, is called after every completed depth.
	OnIteration func(Iteration)
}

// New creates an engine from a validated configuration.
func New(cfg config.Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:   cfg,
		log:   logger.With().Str("component", "search").Logger(),
		table: NewTable(cfg.TableMaxEntries),
	}
	if cfg.UseOpeningBook {
		e.book = book.New()
	}
	return e, nil
}

// BestMove picks a move for the side to move under the given time budget.
// It returns false only when the position has no legal move. Shortcuts,
// in order: single legal reply, opening book, an unambiguous winning
// capture. Otherwise it deepens iteratively until time, depth, or a
// forced mate stops it, and returns the best move of the deepest
// iteration that ran to completion.
func (e *Engine) BestMove(ctx context.Context, g chess.Game, total time.Duration, movesToGo int) (Result, bool) {
	start := time.Now()

	legal := g.LegalMoves()
	if len(legal) == 0 {
		return Result{}, false
	}

	timer := NewTimeManager(total, movesToGo, e.cfg.MovesToGo,
		e.cfg.MinTimePerMove, e.cfg.MaxTimePerMove, e.cfg.TimeBuffer)
	e.log.Debug().
		Dur("allocated", timer.Allocated()).
		Int("legal_moves", len(legal)).
		Msg("starting search")

	if len(legal) == 1 {
		return Result{Move: legal[0], Elapsed: time.Since(start)}, true
	}

	if e.book != nil {
		if move, ok := e.book.Lookup(g); ok {
			e.log.Debug().Str("move", move.String()).Msg("book move")
			return Result{Move: move, FromBook: true, Elapsed: time.Since(start)}, true
		}
	}

	if move, ok := findObviousMove(g, legal); ok {
		e.log.Debug().Str("move", move.String()).Msg("obvious capture")
		return Result{Move: move, Obvious: true, Elapsed: time.Since(start)}, true
	}

	sc := newSearchContext(ctx, e.cfg, e.table, timer)
	sc.stats.Cleared = e.table.ClearIfOversized()
	if sc.stats.Cleared {
		e.log.Debug().Msg("position cache cleared at capacity")
	}

	rootMoves := make([]chess.Move, len(legal))
	copy(rootMoves, legal)
	if e.cfg.ParallelRoot {
		preOrderRoot(g, rootMoves, e.cfg.Workers)
	}

	var best Result
	haveBest := false
	window := e.cfg.AspirationWindow

	for depth := 1; depth <= e.cfg.MaxDepth; depth++ {
		if !timer.ShouldContinue() {
			e.log.Debug().Int("depth", depth).Msg("time budget exhausted")
			break
		}
		if ctx != nil && ctx.Err() != nil {
			break
		}

		alpha, beta := -eval.Infinity, eval.Infinity
		if e.cfg.UseAspiration && haveBest {
			alpha = eval.SaturatingAdd(best.Score, -window)
			beta = eval.SaturatingAdd(best.Score, window)
		}

		score, move, completed := searchRoot(g, rootMoves, depth, alpha, beta, sc)
		missed := completed && (score <= alpha || score >= beta)
		if missed {
			// Aspiration window missed; redo the depth with full bounds.
			score, move, completed = searchRoot(g, rootMoves, depth, -eval.Infinity, eval.Infinity, sc)
		}
		if !completed {
			// The iteration was cut short; its partial result is not
			// trusted over the last completed one.
			break
		}

		best = Result{Move: move, Score: score, Depth: depth}
		haveBest = true
		moveToFront(rootMoves, move)

		e.log.Debug().
			Int("depth", depth).
			Int("score", score).
			Str("move", move.String()).
			Uint64("nodes", sc.stats.Nodes).
			Msg("iteration complete")

		if e.OnIteration != nil {
			e.OnIteration(Iteration{
				Depth:   depth,
				Score:   score,
				Move:    move,
				Nodes:   sc.stats.Nodes,
				Elapsed: time.Since(start),
			})
		}

		if eval.IsMateScore(score) {
			e.log.Debug().Int("mate_in", eval.MateIn(score)).Msg("forced mate found")
			break
		}
		window = nextWindow(window, e.cfg.AspirationWindow, missed)
	}

	if !haveBest {
		// Not even depth 1 completed. Any legal move beats forfeiting;
		// the first root move is the best guess available.
		best = Result{Move: rootMoves[0], Score: eval.EvaluatePosition(g)}
	}

	best.PV = e.principalVariation(g, best.Move)
	best.Nodes = sc.stats.Nodes
	best.Elapsed = time.Since(start)
	return best, true
}

// ClearCache empties the position cache, e.g. between unrelated games.
func (e *Engine) ClearCache() {
	e.table.Clear()
}

// BestMove searches with the default configuration, no logging, and no
// external cancellation: the convenience form of Engine.BestMove for
// callers that need exactly one answer.
func BestMove(g chess.Game, total time.Duration, movesToGo int) (Result, bool) {
	engine, err := New(config.Default(), zerolog.Nop())
	if err != nil {
		return Result{}, false
	}
	return engine.BestMove(context.Background(), g, total, movesToGo)
}

// nextWindow picks the aspiration half-width for the next iteration: it
// widens after a miss and falls back to the configured width after a hit,
// so one volatile depth does not leave the window inflated for the rest
// of the game.
func nextWindow(window, base int, missed bool) int {
	if missed {
		return window * 5 / 4
	}
	return base
}

// searchRoot runs one depth over the root move list. It returns completed
// = false when cancellation interrupted the iteration, in which case the
// caller must discard the partial score.
func searchRoot(g chess.Game, moves []chess.Move, depth, alpha, beta int, sc *SearchContext) (int, chess.Move, bool) {
	bestScore := -eval.Infinity
	var bestMove chess.Move

	searched := 0
	for _, move := range moves {
		child := g.Clone()
		if err := child.MakeMove(move); err != nil {
			continue
		}
		searched++

		var score int
		if searched == 1 {
			score = -pvs(child, depth-1, -beta, -alpha, 1, true, move, sc)
		} else {
			score = -pvs(child, depth-1, -(alpha + 1), -alpha, 1, false, move, sc)
			if score > alpha && score < beta {
				score = -pvs(child, depth-1, -beta, -alpha, 1, true, move, sc)
			}
		}
		if sc.Stopped() {
			return bestScore, bestMove, false
		}

		if score > bestScore {
			bestScore, bestMove = score, move
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	return bestScore, bestMove, searched > 0
}

// findObviousMove looks for a capture that wins material outright and
// cannot be profitably recaptured. Such a move is played without search.
func findObviousMove(g chess.Game, moves []chess.Move) (chess.Move, bool) {
	for _, move := range moves {
		if !move.IsCapture() {
			continue
		}
		if exchangeValues[victimOf(g, move)] <= exchangeValues[attackerOf(g, move)] {
			continue
		}
		child := g.Clone()
		if child.MakeMove(move) != nil {
			continue
		}
		if !pieceHanging(child, move.To) {
			return move, true
		}
	}
	return chess.Move{}, false
}

// pieceHanging reports whether the piece on pos can be captured by a
// cheaper enemy piece.
func pieceHanging(g chess.Game, pos chess.Position) bool {
	piece, ok := g.GetPiece(pos)
	if !ok {
		return false
	}
	value := exchangeValues[chess.ExtractPiece(piece)]
	colour := chess.ExtractColour(piece)

	for _, from := range chess.AllPositions() {
		attacker, occupied := g.GetPiece(from)
		if !occupied || chess.ExtractColour(attacker) == colour {
			continue
		}
		if exchangeValues[chess.ExtractPiece(attacker)] >= value {
			continue
		}
		for _, reply := range g.GetValidMoves(from) {
			if reply.To == pos {
				return true
			}
		}
	}
	return false
}

// principalVariation reconstructs the expected line by walking the
// position cache from the root. Capped at maxPly to survive cycles.
func (e *Engine) principalVariation(g chess.Game, first chess.Move) []chess.Move {
	if first.IsZero() {
		return nil
	}
	pv := []chess.Move{first}
	child := g.Clone()
	if child.MakeMove(first) != nil {
		return pv
	}

	for len(pv) < maxPly {
		entry, ok := e.table.Probe(child.Hash())
		if !ok || entry.Bound != BoundExact || entry.BestMove.IsZero() {
			break
		}
		if child.MakeMove(entry.BestMove) != nil {
			break
		}
		pv = append(pv, entry.BestMove)
	}
	return pv
}

// moveToFront moves the given move to the head of the list, keeping the
// relative order of the rest. The next iteration then searches last
// depth's best move first.
func moveToFront(moves []chess.Move, move chess.Move) {
	for i, candidate := range moves {
		if candidate == move {
			copy(moves[1:i+1], moves[:i])
			moves[0] = move
			return
		}
	}
}
