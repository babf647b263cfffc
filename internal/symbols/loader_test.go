package symbols

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"hotcold/internal/interval"
	"hotcold/pkg/model"
)

type listProvider struct {
	symbols []string
	err     error
}

func (p *listProvider) Name() string   { return "list" }
func (p *listProvider) RateLimit() int { return 0 }

func (p *listProvider) ListSymbols(ctx context.Context) ([]string, error) {
	return p.symbols, p.err
}

func (p *listProvider) GetCandles(ctx context.Context, symbol string, res interval.Resolution, count int) ([]model.Candle, error) {
	return nil, nil
}

func TestLoadExplicitList(t *testing.T) {
	loader := NewLoader(&listProvider{err: fmt.Errorf("should not be called")})

	got, err := loader.Load(context.Background(), []string{" btcusdt", "ETHUSDT ", ""})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"BTCUSDT", "ETHUSDT"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %v, want %v", got, want)
	}
}

func TestLoadFromExchange(t *testing.T) {
	loader := NewLoader(&listProvider{symbols: []string{"BTCUSDT", "ETHUSDT"}})

	got, err := loader.Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Load = %v, want 2 symbols", got)
	}
}

func TestLoadFallsBackOnListingFailure(t *testing.T) {
	loader := NewLoader(&listProvider{err: fmt.Errorf("listing down")})

	got, err := loader.Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, DefaultSymbols) {
		t.Errorf("expected default universe fallback, got %v", got)
	}
}

func TestLoadEmptyListingStaysEmpty(t *testing.T) {
	loader := NewLoader(&listProvider{symbols: []string{}})

	got, err := loader.Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty listing should stay empty, got %v", got)
	}
}
