package config

import (
	"testing"

	"github.com/ThenerzZ/chess-engine-go/internal/errors"
	"github.com/ThenerzZ/chess-engine-go/internal/testutil"
)

func TestDefaultIsValid(t *testing.T) {
	testutil.AssertNoError(t, Default().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }},
		{"zero min time", func(c *Config) { c.MinTimePerMove = 0 }},
		{"max below min", func(c *Config) { c.MaxTimePerMove = c.MinTimePerMove / 2 }},
		{"negative buffer", func(c *Config) { c.TimeBuffer = -1 }},
		{"zero moves to go", func(c *Config) { c.MovesToGo = 0 }},
		{"zero aspiration window", func(c *Config) { c.AspirationWindow = 0 }},
		{"zero table cap", func(c *Config) { c.TableMaxEntries = 0 }},
		{"parallel without workers", func(c *Config) { c.ParallelRoot = true; c.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
