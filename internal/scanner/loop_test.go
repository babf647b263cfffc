package scanner

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"hotcold/internal/classifier"
	"hotcold/internal/interval"
	"hotcold/pkg/model"
)

func loopScanner(p *seriesProvider) *Scanner {
	return NewScanner(classifier.New(testConfig(), p), 4, 5*time.Second, 5)
}

func TestLoopSinglePass(t *testing.T) {
	p := &seriesProvider{
		bySymbol: map[string]map[interval.Resolution][]model.Candle{
			"AAAUSDT": boosterSeries(),
		},
	}

	var rendered int
	loop := NewLoop(loopScanner(p), p.ListSymbols, func(result *model.ScanResult) {
		rendered++
		if result.TotalScanned != 1 {
			t.Errorf("TotalScanned = %d, want 1", result.TotalScanned)
		}
	}, nil, false, time.Millisecond)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rendered != 1 {
		t.Errorf("rendered %d times, want 1", rendered)
	}
}

func TestLoopEmptyUniverse(t *testing.T) {
	p := &seriesProvider{bySymbol: map[string]map[interval.Resolution][]model.Candle{}}

	var emptied int
	loop := NewLoop(loopScanner(p), p.ListSymbols, func(result *model.ScanResult) {
		t.Error("renderer should not run for an empty universe")
	}, func() { emptied++ }, false, time.Millisecond)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("empty universe should not be fatal: %v", err)
	}
	if emptied != 1 {
		t.Errorf("empty handler ran %d times, want 1", emptied)
	}
}

func TestLoopWatchRepeatsUntilCancelled(t *testing.T) {
	p := &seriesProvider{
		bySymbol: map[string]map[interval.Resolution][]model.Candle{
			"AAAUSDT": neutralSeries(),
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	var passes int64
	loop := NewLoop(loopScanner(p), p.ListSymbols, func(result *model.ScanResult) {
		if atomic.AddInt64(&passes, 1) >= 3 {
			cancel()
		}
	}, nil, true, time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop after cancellation")
	}

	if got := atomic.LoadInt64(&passes); got < 3 {
		t.Errorf("completed %d passes, want >= 3", got)
	}
}

func TestLoopWatchSurvivesEmptyUniverse(t *testing.T) {
	p := &seriesProvider{bySymbol: map[string]map[interval.Resolution][]model.Candle{}}

	ctx, cancel := context.WithCancel(context.Background())
	var emptied int64
	loop := NewLoop(loopScanner(p), p.ListSymbols, func(result *model.ScanResult) {}, func() {
		if atomic.AddInt64(&emptied, 1) >= 2 {
			cancel()
		}
	}, true, time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop stopped retrying after an empty universe")
	}
}
