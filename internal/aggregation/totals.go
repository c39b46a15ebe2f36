package aggregation

import (
	"cmp"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/guttosm/tradechart/internal/domain/models"
)

// SymbolTotals sums size and traded value (price × size, rounded to a whole
// currency unit) per symbol, in first-seen order. Records with a non-finite
// price are ignored.
func SymbolTotals(records []models.Trade) []models.SymbolTotal {
	symbols, bySymbol := groupOrdered(records, func(t models.Trade) string { return string(t.Symbol) })
	out := make([]models.SymbolTotal, 0, len(symbols))
	for _, sym := range symbols {
		var size int64
		value := decimal.Zero
		for _, t := range bySymbol[sym] {
			if math.IsNaN(t.Price) || math.IsInf(t.Price, 0) {
				continue
			}
			size += t.Size
			value = value.Add(decimal.NewFromFloat(t.Price).Mul(decimal.NewFromInt(t.Size)))
		}
		out = append(out, models.SymbolTotal{
			Symbol: models.Symbol(sym),
			Size:   size,
			Value:  value.Round(0).IntPart(),
		})
	}
	return out
}

// SortChronological returns a copy of records ordered by period key. Records
// sharing a period keep their relative order. Period keys of one granularity
// sort lexically in time order.
func SortChronological(records []models.AggregatedRecord) []models.AggregatedRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b models.AggregatedRecord) int {
		return cmp.Compare(a.PeriodKey, b.PeriodKey)
	})
	return out
}
