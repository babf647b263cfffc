package scanner

import (
	"testing"

	"hotcold/pkg/model"
)

func TestTrackerCountdown(t *testing.T) {
	tracker := NewTracker(5, 2)

	hot := []model.Classification{
		{Symbol: "AAAUSDT", ChangePct: 8},
		{Symbol: "BBBUSDT", ChangePct: -6},
		{Symbol: "CCCUSDT", ChangePct: 1},
	}

	highlighted := tracker.Update(hot)
	if !highlighted["AAAUSDT"] || !highlighted["BBBUSDT"] {
		t.Errorf("threshold crossers should be highlighted: %v", highlighted)
	}
	if highlighted["CCCUSDT"] {
		t.Error("CCCUSDT never crossed the threshold")
	}

	// The movers cool off; they stay highlighted for one more pass.
	highlighted = tracker.Update(nil)
	if !highlighted["AAAUSDT"] || !highlighted["BBBUSDT"] {
		t.Errorf("cooled movers should persist one pass: %v", highlighted)
	}

	highlighted = tracker.Update(nil)
	if len(highlighted) != 0 {
		t.Errorf("highlights should expire after the duration: %v", highlighted)
	}
}

func TestTrackerRefreshesOnNewCross(t *testing.T) {
	tracker := NewTracker(5, 2)

	tracker.Update([]model.Classification{{Symbol: "AAAUSDT", ChangePct: 10}})
	tracker.Update(nil) // 1 pass left

	// Crossing again resets the countdown.
	tracker.Update([]model.Classification{{Symbol: "AAAUSDT", ChangePct: 7}})
	highlighted := tracker.Update(nil)
	if !highlighted["AAAUSDT"] {
		t.Errorf("re-crossing should refresh the countdown: %v", highlighted)
	}
}
