// flags.go - Command-line flag definitions
package main

import (
	"flag"
	"time"
)

var (
	// Position and budget
	fenFlag       = flag.String("fen", "", "Position to analyse in FEN (default: initial position)")
	timeFlag      = flag.Duration("time", 10*time.Second, "Remaining time on the clock")
	movesToGoFlag = flag.Int("moves-to-go", 0, "Moves until the next time control (0 = engine default)")
	depthFlag     = flag.Int("depth", 0, "Maximum search depth (0 = engine default)")

	// Behaviour
	evalOnly = flag.Bool("eval", false, "Print the static evaluation and exit without searching")
	parallel = flag.Bool("parallel", false, "Pre-order root moves across worker goroutines")
	noBook   = flag.Bool("no-book", false, "Disable the opening book")

	// Diagnostics
	verbose = flag.Bool("verbose", false, "Enable debug logging")
	version = flag.Bool("version", false, "Print version and exit")
)
