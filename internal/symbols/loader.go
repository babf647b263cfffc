package symbols

import (
	"context"
	"strings"

	"hotcold/internal/provider"
)

// Loader resolves the symbol universe for a scan.
type Loader struct {
	provider provider.Provider
}

// NewLoader creates a new symbol loader
func NewLoader(p provider.Provider) *Loader {
	return &Loader{provider: p}
}

// Load returns the universe for a pass. An explicit list wins over the
// exchange listing; a failed listing falls back to the default major pairs.
// An empty result from a successful listing is returned as-is so the caller
// can report "nothing to scan".
func (l *Loader) Load(ctx context.Context, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return Normalize(explicit), nil
	}

	symbols, err := l.provider.ListSymbols(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return DefaultSymbols, nil
	}
	return symbols, nil
}

// Normalize uppercases and trims user-supplied symbols, dropping empties.
func Normalize(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
