package provider

import (
	"context"
	"sync"
	"time"

	"hotcold/internal/interval"
	"hotcold/pkg/model"
)

// CachingProvider wraps a Provider with an in-memory cache for ListSymbols.
// Designed for watch mode, where every pass needs the universe but the
// exchange listing changes rarely.
type CachingProvider struct {
	inner     Provider
	mu        sync.Mutex
	universe  []string
	fetchedAt time.Time
	ttl       time.Duration
}

// NewCachingProvider creates a caching wrapper. ttl bounds how stale the
// cached universe may get before it is refreshed.
func NewCachingProvider(inner Provider, ttl time.Duration) *CachingProvider {
	return &CachingProvider{
		inner: inner,
		ttl:   ttl,
	}
}

func (p *CachingProvider) Name() string   { return p.inner.Name() }
func (p *CachingProvider) RateLimit() int { return p.inner.RateLimit() }

func (p *CachingProvider) GetCandles(ctx context.Context, symbol string, res interval.Resolution, count int) ([]model.Candle, error) {
	return p.inner.GetCandles(ctx, symbol, res, count)
}

func (p *CachingProvider) ListSymbols(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	if p.universe != nil && time.Since(p.fetchedAt) < p.ttl {
		cached := p.universe
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	symbols, err := p.inner.ListSymbols(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.universe = symbols
	p.fetchedAt = time.Now()
	p.mu.Unlock()

	return symbols, nil
}
