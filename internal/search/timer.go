package search

import "time"

// TimeManager allocates a slice of the total remaining clock to one move
// and answers whether the search may keep going. It never pre-empts; the
// search polls ShouldContinue cooperatively.
type TimeManager struct {
	start     time.Time
	allocated time.Duration
	buffer    time.Duration
}

// NewTimeManager divides the total remaining time by the estimated number
// of moves left and clamps the result to [min, max]. movesToGo <= 0 means
// unknown and falls back to the given default.
func NewTimeManager(total time.Duration, movesToGo, defaultMovesToGo int, min, max, buffer time.Duration) *TimeManager {
	if movesToGo <= 0 {
		movesToGo = defaultMovesToGo
	}
	allocated := total / time.Duration(movesToGo)
	if allocated > max {
		allocated = max
	}
	if allocated < min {
		allocated = min
	}
	return &TimeManager{
		start:     time.Now(),
		allocated: allocated,
		buffer:    buffer,
	}
}

// Allocated returns the time slice granted to this move.
func (tm *TimeManager) Allocated() time.Duration {
	return tm.allocated
}

// Elapsed returns how long the search has been running.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.start)
}

// ShouldContinue reports whether there is still time to keep searching,
// leaving the safety buffer unspent.
func (tm *TimeManager) ShouldContinue() bool {
	return tm.Elapsed()+tm.buffer < tm.allocated
}
