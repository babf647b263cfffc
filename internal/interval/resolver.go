package interval

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidDuration is returned for duration strings outside the accepted
// grammar (a positive integer followed by m, h or d).
var ErrInvalidDuration = errors.New("invalid duration")

var durationRe = regexp.MustCompile(`^(\d+)([mhd])$`)

// Resolution is a candle resolution understood by the exchange klines API.
type Resolution string

const (
	Res1m  Resolution = "1m"
	Res15m Resolution = "15m"
	Res1h  Resolution = "1h"
	Res4h  Resolution = "4h"
)

// Minutes returns the resolution length in minutes.
func (r Resolution) Minutes() int {
	switch r {
	case Res1m:
		return 1
	case Res15m:
		return 15
	case Res1h:
		return 60
	case Res4h:
		return 240
	}
	return 0
}

// Window is a resolved fetch specification: which resolution to request and
// how many candles are needed to cover the original duration.
type Window struct {
	Duration   string
	Resolution Resolution
	Count      int
}

// Resolve maps a human duration ("30m", "4h", "2d") to a base candle
// resolution and the candle count covering it. Resolution coarsens as the
// duration grows so the request size stays bounded.
func Resolve(duration string) (Window, error) {
	m := durationRe.FindStringSubmatch(duration)
	if m == nil {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidDuration, duration)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidDuration, duration)
	}

	minutes := n
	switch m[2] {
	case "h":
		minutes = n * 60
	case "d":
		minutes = n * 1440
	}

	var res Resolution
	switch {
	case minutes <= 60:
		res = Res1m
	case minutes <= 240:
		res = Res15m
	case minutes <= 1440:
		res = Res1h
	default:
		res = Res4h
	}

	// The +1 guarantees at least the requested coverage despite truncation.
	count := minutes/res.Minutes() + 1
	if count < 1 {
		count = 1
	}

	return Window{Duration: duration, Resolution: res, Count: count}, nil
}
