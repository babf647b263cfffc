package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hotcold/internal/interval"
	"hotcold/internal/ratelimit"
	"hotcold/pkg/model"
)

const defaultBaseURL = "https://fapi.binance.com/fapi/v1"

// BinanceProvider implements the Provider interface for Binance USDT-margined
// futures (unauthenticated market data endpoints).
type BinanceProvider struct {
	baseURL   string
	client    *http.Client
	limiter   *ratelimit.Limiter
	rateLimit int
}

// NewBinanceProvider creates a new Binance futures provider. An empty baseURL
// selects the production endpoint.
func NewBinanceProvider(baseURL string, ratePerMinute int) *BinanceProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if ratePerMinute <= 0 {
		ratePerMinute = 1200
	}
	return &BinanceProvider{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   ratelimit.NewLimiter("binance", ratePerMinute),
		rateLimit: ratePerMinute,
	}
}

// Name returns the provider name
func (p *BinanceProvider) Name() string {
	return "binance"
}

// RateLimit returns the rate limit per minute
func (p *BinanceProvider) RateLimit() int {
	return p.rateLimit
}

// exchangeInfoResponse is the /exchangeInfo payload, reduced to the fields
// needed for universe filtering.
type exchangeInfoResponse struct {
	Symbols []struct {
		Symbol     string `json:"symbol"`
		QuoteAsset string `json:"quoteAsset"`
		Status     string `json:"status"`
	} `json:"symbols"`
}

// ListSymbols returns all USDT-quoted symbols currently trading.
func (p *BinanceProvider) ListSymbols(ctx context.Context) ([]string, error) {
	var info exchangeInfoResponse
	if err := p.getJSON(ctx, "/exchangeInfo", nil, &info); err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(info.Symbols))
	for _, s := range info.Symbols {
		if s.QuoteAsset == "USDT" && s.Status == "TRADING" {
			symbols = append(symbols, s.Symbol)
		}
	}
	return symbols, nil
}

// GetCandles fetches klines for a symbol. The API returns rows of mixed
// types (Binance style); decoding as json.Number avoids float surprises on
// the string-encoded price fields.
func (p *BinanceProvider) GetCandles(ctx context.Context, symbol string, res interval.Resolution, count int) ([]model.Candle, error) {
	if count < 1 {
		count = 1
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", string(res))
	params.Set("limit", strconv.Itoa(count))

	var raw [][]json.Number
	if err := p.getJSON(ctx, "/klines", params, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, unavailable(p.Name(), fmt.Errorf("no kline data for %s", symbol), false)
	}

	candles := make([]model.Candle, 0, len(raw))
	for _, row := range raw {
		// [0] openTime, [1] open, [2] high, [3] low, [4] close, [5] volume
		if len(row) < 6 {
			continue
		}
		ms, _ := row[0].Int64()
		o, _ := row[1].Float64()
		h, _ := row[2].Float64()
		l, _ := row[3].Float64()
		c, _ := row[4].Float64()
		v, _ := row[5].Float64()

		candles = append(candles, model.Candle{
			Time:   time.UnixMilli(ms).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}

	if len(candles) == 0 {
		return nil, unavailable(p.Name(), fmt.Errorf("empty kline rows for %s", symbol), false)
	}
	return candles, nil
}

func (p *BinanceProvider) getJSON(ctx context.Context, endpoint string, params url.Values, target interface{}) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	u := p.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return unavailable(p.Name(), err, true)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		p.limiter.SignalRateLimited()
		return unavailable(p.Name(), fmt.Errorf("rate limited"), true)
	}
	if resp.StatusCode != http.StatusOK {
		return unavailable(p.Name(), fmt.Errorf("status %d", resp.StatusCode), false)
	}

	p.limiter.ResetBackoff()

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return unavailable(p.Name(), fmt.Errorf("decoding response: %w", err), false)
	}
	return nil
}
