package scanner

import (
	"math"

	"hotcold/pkg/model"
)

// Tracker keeps symbols highlighted for a few passes after they crossed the
// change threshold, so short-lived movers do not flicker out of the display
// the moment their move cools off.
type Tracker struct {
	threshold float64
	duration  int
	remaining map[string]int
}

// NewTracker creates a tracker. duration is the number of passes a symbol
// stays highlighted after last crossing threshold.
func NewTracker(threshold float64, duration int) *Tracker {
	if duration < 1 {
		duration = 1
	}
	return &Tracker{
		threshold: threshold,
		duration:  duration,
		remaining: make(map[string]int),
	}
}

// Update folds one pass's selection into the tracker and returns the set of
// symbols to highlight this pass.
func (t *Tracker) Update(selected []model.Classification) map[string]bool {
	next := make(map[string]int)
	for _, r := range selected {
		if math.Abs(r.ChangePct) >= t.threshold {
			next[r.Symbol] = t.duration
		}
	}
	for symbol, left := range t.remaining {
		if _, ok := next[symbol]; !ok && left > 1 {
			next[symbol] = left - 1
		}
	}
	t.remaining = next

	highlighted := make(map[string]bool, len(next))
	for symbol := range next {
		highlighted[symbol] = true
	}
	return highlighted
}
