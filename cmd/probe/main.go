package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"hotcold/internal/classifier"
	"hotcold/internal/config"
	"hotcold/internal/interval"
	"hotcold/internal/provider"
)

// probe is a quick connectivity and classification check for a single
// symbol: it fetches each resolved window and prints what the scanner
// would decide. Usage: probe [SYMBOL]
func main() {
	symbol := "BTCUSDT"
	if len(os.Args) > 1 {
		symbol = os.Args[1]
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	prov := provider.NewBinanceProvider(cfg.API.BaseURL, cfg.API.RateLimit)
	ctx := context.Background()

	fmt.Printf("=== hotcold probe: %s ===\n", symbol)

	fmt.Println("\n[1] Universe listing")
	start := time.Now()
	universe, err := prov.ListSymbols(ctx)
	if err != nil {
		fmt.Printf("    ERROR: %v\n", err)
	} else {
		fmt.Printf("    OK: %d USDT pairs in %s\n", len(universe), time.Since(start).Round(time.Millisecond))
	}

	fmt.Println("\n[2] Window fetches")
	windows := map[string]string{
		"current": cfg.Intervals.Current,
		"short":   cfg.Intervals.Short,
		"big":     cfg.Intervals.Big,
	}
	for name, duration := range windows {
		w, err := interval.Resolve(duration)
		if err != nil {
			fmt.Printf("    %-7s %s: ERROR - %v\n", name, duration, err)
			continue
		}
		start := time.Now()
		candles, err := prov.GetCandles(ctx, symbol, w.Resolution, w.Count)
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			fmt.Printf("    %-7s %s (%s x%d): ERROR - %v (%s)\n",
				name, duration, w.Resolution, w.Count, err, elapsed)
			continue
		}
		last := candles[len(candles)-1]
		fmt.Printf("    %-7s %s (%s x%d): %d candles, last H=%.4f L=%.4f C=%.4f (%s)\n",
			name, duration, w.Resolution, w.Count, len(candles),
			last.High, last.Low, last.Close, elapsed)
	}

	fmt.Println("\n[3] Classification")
	current, _ := interval.Resolve(cfg.Intervals.Current)
	short, _ := interval.Resolve(cfg.Intervals.Short)
	big, _ := interval.Resolve(cfg.Intervals.Big)
	c := classifier.New(classifier.Config{
		Current:           current,
		Short:             short,
		Big:               big,
		TrimRatio:         cfg.Filter.TrimRatio,
		SpikeFilter:       cfg.Filter.SpikeFilter,
		SpikeThresholdPct: cfg.Filter.SpikeThreshold,
	}, prov)

	result, err := c.Classify(ctx, symbol)
	switch {
	case err != nil:
		fmt.Printf("    dropped: %v\n", err)
	case result == nil:
		fmt.Println("    skipped: spike rejection")
	default:
		fmt.Printf("    %s: %.2f%% (vs big %.2f%%), ref %.4f, marks %v\n",
			result.Category, result.ChangePct, result.BigChangePct, result.RefPrice, result.Marks)
	}
}
