// Package config provides engine configuration with validated defaults.
package config

import (
	"runtime"
	"time"

	"github.com/ThenerzZ/chess-engine-go/internal/errors"
)

// Config holds every tunable of the search engine. Zero values are not
// usable; start from Default() and override.
type Config struct {
	// MaxDepth is the hard ceiling for iterative deepening.
	MaxDepth int

	// Time management. The per-move allocation is total/MovesToGo clamped
	// to [MinTimePerMove, MaxTimePerMove]; TimeBuffer is subtracted as a
	// safety margin before each continuation check.
	MinTimePerMove time.Duration
	MaxTimePerMove time.Duration
	TimeBuffer     time.Duration
	MovesToGo      int

	// AspirationWindow is the initial half-width of the window searched
	// around the previous iteration's score.
	AspirationWindow int

	// TableMaxEntries caps the position cache; the cache is cleared
	// wholesale before a search once it exceeds this.
	TableMaxEntries int

	// Pruning and ordering toggles. Each heuristic can be switched off
	// independently to measure or debug its effect.
	UseNullMove   bool
	UseLMR        bool
	UseFutility   bool
	UseAspiration bool

	// UseOpeningBook consults the weighted book before searching.
	UseOpeningBook bool

	// ParallelRoot pre-orders root moves by scoring them concurrently on
	// Workers goroutines before the sequential deep search.
	ParallelRoot bool
	Workers      int
}

// Default returns the standard engine configuration.
func Default() Config {
	return Config{
		MaxDepth:         15,
		MinTimePerMove:   100 * time.Millisecond,
		MaxTimePerMove:   15 * time.Second,
		TimeBuffer:       50 * time.Millisecond,
		MovesToGo:        40,
		AspirationWindow: 50,
		TableMaxEntries:  1_000_000,
		UseNullMove:      true,
		UseLMR:           true,
		UseFutility:      true,
		UseAspiration:    true,
		UseOpeningBook:   true,
		ParallelRoot:     false,
		Workers:          runtime.NumCPU(),
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "MaxDepth %d, must be at least 1", c.MaxDepth)
	}
	if c.MinTimePerMove <= 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "MinTimePerMove must be positive")
	}
	if c.MaxTimePerMove < c.MinTimePerMove {
		return errors.Wrap(errors.ErrInvalidConfig, "MaxTimePerMove below MinTimePerMove")
	}
	if c.TimeBuffer < 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "TimeBuffer must not be negative")
	}
	if c.MovesToGo < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "MovesToGo %d, must be at least 1", c.MovesToGo)
	}
	if c.AspirationWindow < 1 {
		return errors.Wrap(errors.ErrInvalidConfig, "AspirationWindow must be positive")
	}
	if c.TableMaxEntries < 1 {
		return errors.Wrap(errors.ErrInvalidConfig, "TableMaxEntries must be positive")
	}
	if c.ParallelRoot && c.Workers < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "Workers %d, must be at least 1 for parallel root ordering", c.Workers)
	}
	return nil
}
