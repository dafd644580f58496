package search

import (
	"sort"

	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/eval"
	"github.com/ThenerzZ/chess-engine-go/internal/worker"
)

// preOrderRoot scores every root move concurrently and sorts the list
// best-first, so the sequential deep search starts from the most
// promising candidates. Each worker clones the board, so nothing is
// shared; the fan-out has no ordering dependency between workers and the
// result is deterministic (ties keep generation order).
func preOrderRoot(g chess.Game, moves []chess.Move, workers int) {
	if len(moves) < 2 {
		return
	}

	pool := worker.NewPool(func(item worker.WorkItem) worker.ScoreResult {
		child := item.Game.Clone()
		if err := child.MakeMove(item.Move); err != nil {
			return worker.ScoreResult{Index: item.Index, Move: item.Move, Err: err}
		}
		// The child evaluation is from the opponent's perspective.
		return worker.ScoreResult{
			Index: item.Index,
			Move:  item.Move,
			Score: -eval.EvaluatePosition(child),
		}
	}, worker.WithWorkers(workers), worker.WithBufferSize(len(moves)))

	pool.Start()
	go func() {
		for i, move := range moves {
			pool.Submit(worker.WorkItem{Game: g, Move: move, Index: i})
		}
		pool.Close()
	}()

	scores := make([]int, len(moves))
	for result := range pool.Results() {
		if result.Err != nil {
			scores[result.Index] = -eval.Infinity
			continue
		}
		scores[result.Index] = result.Score
	}

	indices := make([]int, len(moves))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	ordered := make([]chess.Move, len(moves))
	for i, idx := range indices {
		ordered[i] = moves[idx]
	}
	copy(moves, ordered)
}
