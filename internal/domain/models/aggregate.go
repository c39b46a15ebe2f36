package models

// AggregatedRecord is one synthetic record per (period, symbol) pair.
//
// Fields:
//   - ID: PeriodKey + "-" + Symbol, stable across runs on identical input.
//   - PeriodKey: bucket identifier (e.g. "2024-04-02", "2024-04", "2024-Q2").
//   - Size: sum of the constituent trade sizes.
//   - Price: size-weighted average price rounded to 2 decimals.
//   - Symbol: traded security.
//
// swagger:model AggregatedRecord
type AggregatedRecord struct {
	ID        string  `json:"id" example:"2024-Q2-AAPL"`
	PeriodKey string  `json:"timeStamp" example:"2024-Q2"`
	Size      int64   `json:"tradeSize" example:"1500"`
	Price     float64 `json:"price" example:"171.42"`
	Symbol    Symbol  `json:"symbol" example:"AAPL"`
}

// SymbolTotal is the per-symbol traded size and value used by tree-map views.
type SymbolTotal struct {
	Symbol Symbol `json:"name" example:"AAPL"`
	Size   int64  `json:"size" example:"1500"`
	Value  int64  `json:"value" example:"257130"`
}
