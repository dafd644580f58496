// chess-engine searches a chess position for the best move and prints the
// result, one line per completed iteration.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ThenerzZ/chess-engine-go/internal/board"
	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/config"
	"github.com/ThenerzZ/chess-engine-go/internal/eval"
	"github.com/ThenerzZ/chess-engine-go/internal/search"
)

const programVersion = "0.1.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("chess-engine version %s\n", programVersion)
		os.Exit(0)
	}

	logger := newLogger(*verbose)

	g, err := loadPosition(*fenFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid position")
	}

	if *evalOnly {
		printEvaluation(g)
		return
	}

	cfg := buildConfig()
	engine, err := search.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	engine.OnIteration = printIteration

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, ok := engine.BestMove(ctx, g, *timeFlag, *movesToGoFlag)
	if !ok {
		fmt.Println("no legal moves: the game is over")
		return
	}
	printResult(result)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func loadPosition(fen string) (*board.Board, error) {
	if fen == "" {
		return board.NewInitial(), nil
	}
	return board.FromFEN(fen)
}

func buildConfig() config.Config {
	cfg := config.Default()
	if *depthFlag > 0 {
		cfg.MaxDepth = *depthFlag
	}
	cfg.ParallelRoot = *parallel
	cfg.UseOpeningBook = !*noBook
	return cfg
}

func printEvaluation(g *board.Board) {
	fmt.Printf("position: %s\n", g.FEN())
	fmt.Printf("score: %s\n", formatScore(eval.EvaluatePosition(g)))
}

func printIteration(it search.Iteration) {
	fmt.Printf("depth %2d  score %-12s move %-6s nodes %9d  %v\n",
		it.Depth, formatScore(it.Score), it.Move, it.Nodes, it.Elapsed.Round(time.Millisecond))
}

func printResult(result search.Result) {
	switch {
	case result.FromBook:
		fmt.Printf("bestmove %s (book)\n", result.Move)
	case result.Obvious:
		fmt.Printf("bestmove %s (obvious capture)\n", result.Move)
	default:
		fmt.Printf("bestmove %s  score %s  depth %d  nodes %d  elapsed %v\n",
			result.Move, formatScore(result.Score), result.Depth, result.Nodes,
			result.Elapsed.Round(time.Millisecond))
		if len(result.PV) > 0 {
			fmt.Printf("pv %s\n", joinMoves(result.PV))
		}
	}
}

// formatScore renders centipawns, or a mate distance in moves when the
// score encodes a forced mate.
func formatScore(score int) string {
	if eval.IsMateScore(score) {
		plies := eval.MateIn(score)
		if plies >= 0 {
			return fmt.Sprintf("mate %d", (plies+1)/2)
		}
		return fmt.Sprintf("mate %d", -(-plies+1)/2)
	}
	return fmt.Sprintf("%+.2f", float64(score)/100)
}

func joinMoves(moves []chess.Move) string {
	parts := make([]string, len(moves))
	for i, move := range moves {
		parts[i] = move.String()
	}
	return strings.Join(parts, " ")
}
