package classifier

import (
	"context"
	"errors"
	"math"

	"hotcold/internal/interval"
	"hotcold/internal/provider"
	"hotcold/internal/stats"
	"hotcold/pkg/model"
)

// ErrDegenerate marks a symbol whose series produced a zero reference value
// or too few candles to classify. Treated the same as an unavailable fetch:
// the symbol is dropped from the current pass.
var ErrDegenerate = errors.New("degenerate series")

// Config holds classification settings for one run.
type Config struct {
	// Simple selects single-window mode; only SimpleWindow is used then.
	Simple       bool
	SimpleWindow interval.Window

	// Dual-window mode windows.
	Current interval.Window
	Short   interval.Window
	Big     interval.Window

	// TrimRatio is the top/bottom fraction used for the short and big
	// window aggregates.
	TrimRatio float64

	// SpikeFilter drops symbols whose short-window mean deviates from the
	// big-window trimmed median by more than SpikeThresholdPct percent.
	SpikeFilter       bool
	SpikeThresholdPct float64
}

// spikeMedianTrimPct is the per-tail trim applied to big-window closes
// before taking their median for spike rejection.
const spikeMedianTrimPct = 10

// Classifier decides booster/loser/neutral for a single symbol.
type Classifier struct {
	cfg      Config
	provider provider.Provider
}

// New creates a classifier backed by the given data provider.
func New(cfg Config, p provider.Provider) *Classifier {
	return &Classifier{cfg: cfg, provider: p}
}

// Classify fetches the configured windows for symbol and classifies it.
// A nil result with nil error means the symbol was filtered out (spike
// rejection); any error means the symbol is dropped from this pass.
func (c *Classifier) Classify(ctx context.Context, symbol string) (*model.Classification, error) {
	if c.cfg.Simple {
		return c.classifySimple(ctx, symbol)
	}
	return c.classifyDual(ctx, symbol)
}

// classifySimple compares the last close against the trimmed extrema of all
// prior candles in a single window.
func (c *Classifier) classifySimple(ctx context.Context, symbol string) (*model.Classification, error) {
	candles, err := c.provider.GetCandles(ctx, symbol, c.cfg.SimpleWindow.Resolution, c.cfg.SimpleWindow.Count)
	if err != nil {
		return nil, err
	}
	if len(candles) < 2 {
		return nil, ErrDegenerate
	}

	current := candles[len(candles)-1].Close
	reference := candles[:len(candles)-1]

	refMax := stats.AvgTopFraction(reference, c.cfg.TrimRatio)
	refMin := stats.AvgBottomFraction(reference, c.cfg.TrimRatio)
	if refMax == 0 || refMin == 0 {
		return nil, ErrDegenerate
	}

	result := &model.Classification{Symbol: symbol}
	switch {
	case current > refMax:
		result.Category = model.CategoryBooster
		result.ChangePct = pctChange(current, refMax)
		result.RefPrice = refMax
	case current < refMin:
		result.Category = model.CategoryLoser
		result.ChangePct = pctChange(current, refMin)
		result.RefPrice = refMin
	default:
		// Upward-bias convention: neutral magnitude is measured against
		// the smoothed high.
		result.Category = model.CategoryNeutral
		result.ChangePct = pctChange(current, refMax)
		result.RefPrice = refMax
	}
	return result, nil
}

// classifyDual requires agreement between the short and big comparison
// windows before calling a move a booster or a loser.
func (c *Classifier) classifyDual(ctx context.Context, symbol string) (*model.Classification, error) {
	currentCandles, err := c.provider.GetCandles(ctx, symbol, c.cfg.Current.Resolution, c.cfg.Current.Count)
	if err != nil {
		return nil, err
	}
	shortCandles, err := c.provider.GetCandles(ctx, symbol, c.cfg.Short.Resolution, c.cfg.Short.Count)
	if err != nil {
		return nil, err
	}
	bigCandles, err := c.provider.GetCandles(ctx, symbol, c.cfg.Big.Resolution, c.cfg.Big.Count)
	if err != nil {
		return nil, err
	}
	if len(currentCandles) == 0 || len(shortCandles) == 0 || len(bigCandles) == 0 {
		return nil, ErrDegenerate
	}

	// The current window keeps its true extremes untrimmed; it is meant to
	// capture the most recent spike itself.
	currentMax, currentMin := extrema(currentCandles)

	shortMaxAvg := stats.AvgTopFraction(shortCandles, c.cfg.TrimRatio)
	shortMinAvg := stats.AvgBottomFraction(shortCandles, c.cfg.TrimRatio)
	bigMaxAvg := stats.AvgTopFraction(bigCandles, c.cfg.TrimRatio)
	bigMinAvg := stats.AvgBottomFraction(bigCandles, c.cfg.TrimRatio)
	if shortMaxAvg == 0 || shortMinAvg == 0 || bigMaxAvg == 0 || bigMinAvg == 0 {
		return nil, ErrDegenerate
	}

	if c.cfg.SpikeFilter {
		median := stats.TrimmedMedian(stats.Closes(bigCandles), spikeMedianTrimPct)
		if median == 0 {
			return nil, ErrDegenerate
		}
		mean := stats.Mean(stats.Closes(shortCandles))
		deviation := math.Abs(mean-median) / median * 100
		if deviation > c.cfg.SpikeThresholdPct {
			return nil, nil
		}
	}

	result := &model.Classification{Symbol: symbol}

	if currentMax > shortMaxAvg || currentMin < shortMinAvg {
		result.Marks = append(result.Marks, model.MarkShortSignal)
	}
	if currentMax > bigMaxAvg || currentMin < bigMinAvg {
		result.Marks = append(result.Marks, model.MarkBigSignal)
	}

	switch {
	case currentMax > shortMaxAvg && currentMax > bigMaxAvg:
		result.Category = model.CategoryBooster
		result.ChangePct = pctChange(currentMax, shortMaxAvg)
		result.BigChangePct = pctChange(currentMax, bigMaxAvg)
		result.RefPrice = currentMax
	case currentMin < shortMinAvg && currentMin < bigMinAvg:
		result.Category = model.CategoryLoser
		result.ChangePct = pctChange(currentMin, shortMinAvg)
		result.BigChangePct = pctChange(currentMin, bigMinAvg)
		result.RefPrice = currentMin
	default:
		result.Category = model.CategoryNeutral
		up := pctChange(currentMax, shortMaxAvg)
		down := pctChange(currentMin, shortMinAvg)
		if math.Abs(up) >= math.Abs(down) {
			result.ChangePct = up
			result.BigChangePct = pctChange(currentMax, bigMaxAvg)
			result.RefPrice = currentMax
		} else {
			result.ChangePct = down
			result.BigChangePct = pctChange(currentMin, bigMinAvg)
			result.RefPrice = currentMin
		}
	}
	return result, nil
}

func pctChange(value, reference float64) float64 {
	return (value - reference) / reference * 100
}

func extrema(candles []model.Candle) (max, min float64) {
	max = candles[0].High
	min = candles[0].Low
	for _, c := range candles[1:] {
		if c.High > max {
			max = c.High
		}
		if c.Low < min {
			min = c.Low
		}
	}
	return max, min
}
