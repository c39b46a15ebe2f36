package models

// Symbol is one of the securities accepted by the trade feed.
type Symbol string

const (
	SymbolAAPL  Symbol = "AAPL"
	SymbolMSFT  Symbol = "MSFT"
	SymbolGOOGL Symbol = "GOOGL"
	SymbolAMZN  Symbol = "AMZN"
	SymbolMETA  Symbol = "META"
)

// Symbols lists every accepted symbol in feed order.
var Symbols = []Symbol{SymbolAAPL, SymbolMSFT, SymbolGOOGL, SymbolAMZN, SymbolMETA}

// Valid reports whether s belongs to the accepted symbol set.
func (s Symbol) Valid() bool {
	for _, v := range Symbols {
		if s == v {
			return true
		}
	}
	return false
}

// Trade represents a single validated trade record.
//
// Fields:
//   - ID: identifier assigned by the trade feed.
//   - Timestamp: date-time string as delivered by the feed (RFC3339 in practice).
//   - Size: number of shares traded (non-negative).
//   - Price: unit price in currency, 2-decimal granularity.
//   - Symbol: traded security.
//
// Timestamp stays a string so that the aggregation layer can decide what to do
// with values it cannot parse.
type Trade struct {
	ID        int64   `json:"id" example:"1"`
	Timestamp string  `json:"timestamp" example:"2024-04-02T14:30:00Z"`
	Size      int64   `json:"tradeSize" example:"100"`
	Price     float64 `json:"price" example:"172.35"`
	Symbol    Symbol  `json:"symbol" example:"AAPL"`
}
