package symbols

// DefaultSymbols is the fallback universe used when the exchange listing is
// unreachable: the highest-volume USDT perpetuals.
var DefaultSymbols = []string{
	"BTCUSDT", "ETHUSDT", "BNBUSDT", "SOLUSDT", "XRPUSDT",
	"DOGEUSDT", "ADAUSDT", "AVAXUSDT", "LINKUSDT", "DOTUSDT",
	"TONUSDT", "TRXUSDT", "NEARUSDT", "LTCUSDT", "BCHUSDT",
	"UNIUSDT", "APTUSDT", "ICPUSDT", "FILUSDT", "ATOMUSDT",
	"ARBUSDT", "OPUSDT", "SUIUSDT", "INJUSDT", "ETCUSDT",
	"AAVEUSDT", "STXUSDT", "TIAUSDT", "SEIUSDT", "WLDUSDT",
}
