package model

import "time"

// Candle represents a single candlestick (OHLCV data)
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Category is the volatility classification of a symbol for one pass.
type Category string

const (
	CategoryBooster Category = "booster"
	CategoryLoser   Category = "loser"
	CategoryNeutral Category = "neutral"
)

// Signal marks attached to a classification. They record which comparison
// window would have qualified on its own and do not affect the category.
const (
	MarkShortSignal = "short-signal"
	MarkBigSignal   = "big-signal"
)

// Classification is the per-symbol outcome of one scan pass.
type Classification struct {
	Symbol       string   `json:"symbol"`
	Category     Category `json:"category"`
	ChangePct    float64  `json:"change_pct"`
	BigChangePct float64  `json:"big_change_pct,omitempty"`
	RefPrice     float64  `json:"ref_price"`
	Marks        []string `json:"marks,omitempty"`
}

// HasMark reports whether the classification carries the given signal mark.
func (c Classification) HasMark(mark string) bool {
	for _, m := range c.Marks {
		if m == mark {
			return true
		}
	}
	return false
}

// ScanResult represents the final output of one scan pass.
type ScanResult struct {
	PassID       string           `json:"pass_id"`
	StartedAt    time.Time        `json:"started_at"`
	TotalScanned int              `json:"total_scanned"`
	Classified   int              `json:"classified"`
	Selected     []Classification `json:"selected"`
	ScanTime     time.Duration    `json:"scan_time"`
}
