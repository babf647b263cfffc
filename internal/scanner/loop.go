package scanner

import (
	"context"
	"errors"
	"time"

	"hotcold/pkg/model"
)

// ErrEmptyUniverse signals that the universe listing returned no symbols.
// In single-pass mode it is terminal for the run; in watch mode the loop
// reports it and retries on the next tick.
var ErrEmptyUniverse = errors.New("no symbols to scan")

// UniverseFunc returns the current symbol universe for a pass.
type UniverseFunc func(ctx context.Context) ([]string, error)

// Renderer receives one fully materialized result set per completed pass.
type Renderer func(result *model.ScanResult)

// EmptyHandler is invoked instead of the renderer when a pass had no
// universe to scan.
type EmptyHandler func()

// Loop runs scan passes, optionally repeating on a fixed cadence.
type Loop struct {
	scanner  *Scanner
	universe UniverseFunc
	render   Renderer
	onEmpty  EmptyHandler
	watch    bool
	refresh  time.Duration
}

// NewLoop wires a scanner to its universe source and renderer.
func NewLoop(s *Scanner, universe UniverseFunc, render Renderer, onEmpty EmptyHandler, watch bool, refresh time.Duration) *Loop {
	return &Loop{
		scanner:  s,
		universe: universe,
		render:   render,
		onEmpty:  onEmpty,
		watch:    watch,
		refresh:  refresh,
	}
}

// Run executes passes until the context is cancelled or, in single-pass
// mode, after the first pass completes.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.pass(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			// An empty universe is "nothing to show", not a failure: the
			// handler has already reported it, and watch mode retries on
			// the next tick.
			if !errors.Is(err, ErrEmptyUniverse) {
				return err
			}
		}

		if !l.watch {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.refresh):
		}
	}
}

func (l *Loop) pass(ctx context.Context) error {
	symbols, err := l.universe(ctx)
	if err != nil {
		return err
	}
	if len(symbols) == 0 {
		if l.onEmpty != nil {
			l.onEmpty()
		}
		return ErrEmptyUniverse
	}

	result, err := l.scanner.Scan(ctx, symbols)
	if err != nil {
		return err
	}

	l.render(result)
	return nil
}
