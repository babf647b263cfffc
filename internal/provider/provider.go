package provider

import (
	"context"
	"errors"

	"hotcold/internal/interval"
	"hotcold/pkg/model"
)

// ErrUnavailable marks a fetch that failed for a recoverable reason
// (network error, timeout, non-success status, empty payload). Callers treat
// it as "skip this symbol this pass", never as reason to abort the scan.
var ErrUnavailable = errors.New("data unavailable")

// Provider defines the interface for market data providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// ListSymbols returns the current tradable symbol universe.
	// An empty list is a valid "nothing to scan" answer, not an error.
	ListSymbols(ctx context.Context) ([]string, error)

	// GetCandles fetches up to count most recent candles for a symbol at the
	// given resolution, ordered oldest first.
	GetCandles(ctx context.Context, symbol string, res interval.Resolution, count int) ([]model.Candle, error)

	// RateLimit returns the rate limit per minute
	RateLimit() int
}

// ProviderError represents a provider-specific error
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func unavailable(name string, err error, retryable bool) error {
	return &ProviderError{
		Provider:  name,
		Err:       errors.Join(ErrUnavailable, err),
		Retryable: retryable,
	}
}
