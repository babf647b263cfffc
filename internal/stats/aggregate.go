package stats

import (
	"sort"

	"hotcold/pkg/model"
)

// minTrimSamples is the smallest series for which a trimmed fraction is
// meaningful; below it the aggregates fall back to plain max/min.
const minTrimSamples = 10

// AvgTopFraction returns the mean of the top fraction of candle highs.
// It smooths the reference level against a single outlier candle while
// staying sensitive to a cluster of genuinely elevated ones.
func AvgTopFraction(candles []model.Candle, fraction float64) float64 {
	if len(candles) == 0 {
		return 0
	}

	highs := make([]float64, len(candles))
	for i, c := range candles {
		highs[i] = c.High
	}

	if len(highs) < minTrimSamples {
		max := highs[0]
		for _, h := range highs[1:] {
			if h > max {
				max = h
			}
		}
		return max
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(highs)))
	return meanOf(highs[:fractionCount(len(highs), fraction)])
}

// AvgBottomFraction is the symmetric counterpart of AvgTopFraction over
// candle lows, ascending.
func AvgBottomFraction(candles []model.Candle, fraction float64) float64 {
	if len(candles) == 0 {
		return 0
	}

	lows := make([]float64, len(candles))
	for i, c := range candles {
		lows[i] = c.Low
	}

	if len(lows) < minTrimSamples {
		min := lows[0]
		for _, l := range lows[1:] {
			if l < min {
				min = l
			}
		}
		return min
	}

	sort.Float64s(lows)
	return meanOf(lows[:fractionCount(len(lows), fraction)])
}

// TrimmedMedian drops trimPct percent of samples from each tail of the
// sorted sequence and returns the median of the remainder.
func TrimmedMedian(values []float64, trimPct float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	drop := int(float64(len(sorted)) * trimPct / 100)
	if 2*drop >= len(sorted) {
		drop = 0
	}
	trimmed := sorted[drop : len(sorted)-drop]

	mid := len(trimmed) / 2
	if len(trimmed)%2 == 0 {
		return (trimmed[mid-1] + trimmed[mid]) / 2
	}
	return trimmed[mid]
}

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return meanOf(values)
}

// Closes extracts the close prices of a candle series.
func Closes(candles []model.Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

func fractionCount(n int, fraction float64) int {
	count := int(float64(n) * fraction)
	if count < 1 {
		count = 1
	}
	if count > n {
		count = n
	}
	return count
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
