// Package aggregation buckets trade records into volume-weighted
// (period, symbol) records.
package aggregation

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/tradechart/internal/domain/models"
)

const dateLayout = "2006-01-02"

// timestampLayouts are tried in order. Layouts without a zone are read in the
// aggregator's location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	dateLayout,
}

// Aggregator groups trades by calendar period in a fixed location.
// It holds no mutable state and is safe for concurrent use.
type Aggregator struct {
	loc *time.Location
}

// Stats describes how the input of one aggregation run was consumed.
type Stats struct {
	Input       int // records received
	Excluded    int // records with an unparseable timestamp or a non-finite price
	EmptyGroups int // (period, symbol) groups dropped because their total size was zero
	Output      int // aggregated records emitted
}

// New returns an Aggregator that derives calendar fields in loc (UTC when nil).
func New(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{loc: loc}
}

var utcAggregator = New(time.UTC)

// Aggregate runs a UTC Aggregator over records.
func Aggregate(records []models.Trade, period models.Granularity) []models.AggregatedRecord {
	return utcAggregator.Aggregate(records, period)
}

// Location returns the location calendar fields are derived in.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// Aggregate returns one record per (period, symbol) pair found in records.
// See AggregateWithStats.
func (a *Aggregator) Aggregate(records []models.Trade, period models.Granularity) []models.AggregatedRecord {
	out, _ := a.AggregateWithStats(records, period)
	return out
}

// AggregateWithStats sorts records by timestamp (stable), buckets them by period
// and then by symbol, and emits a size-weighted average price per bucket.
//
// Behavior:
//   - Records whose timestamp cannot be parsed, or whose price is NaN/Inf, are excluded.
//   - Groups whose sizes sum to zero are dropped.
//   - Output follows first-seen order: periods in time order of their first trade,
//     symbols in order of their first trade inside the period.
//
// It never fails; anomalies only reduce the number of emitted records.
func (a *Aggregator) AggregateWithStats(records []models.Trade, period models.Granularity) ([]models.AggregatedRecord, Stats) {
	stats := Stats{Input: len(records)}
	out := []models.AggregatedRecord{}
	if len(records) == 0 {
		return out, stats
	}

	dated := make([]datedTrade, 0, len(records))
	for _, r := range records {
		at, ok := a.parse(r.Timestamp)
		if !ok || math.IsNaN(r.Price) || math.IsInf(r.Price, 0) {
			stats.Excluded++
			continue
		}
		dated = append(dated, datedTrade{trade: r, at: at})
	}
	slices.SortStableFunc(dated, func(x, y datedTrade) int { return x.at.Compare(y.at) })

	periodKeys, byPeriod := groupOrdered(dated, func(d datedTrade) string { return PeriodKey(d.at, period) })
	for _, pk := range periodKeys {
		symbols, bySymbol := groupOrdered(byPeriod[pk], func(d datedTrade) string { return string(d.trade.Symbol) })
		for _, sym := range symbols {
			size, price, ok := weightedAverage(bySymbol[sym])
			if !ok {
				stats.EmptyGroups++
				continue
			}
			out = append(out, models.AggregatedRecord{
				ID:        pk + "-" + sym,
				PeriodKey: pk,
				Size:      size,
				Price:     price,
				Symbol:    models.Symbol(sym),
			})
		}
	}
	stats.Output = len(out)
	return out, stats
}

// PeriodKey parses timestamp and derives its period key in the aggregator's location.
// The boolean is false when the timestamp cannot be parsed.
func (a *Aggregator) PeriodKey(timestamp string, period models.Granularity) (string, bool) {
	at, ok := a.parse(timestamp)
	if !ok {
		return "", false
	}
	return PeriodKey(at, period), true
}

// PeriodKey derives the bucket identifier of t, using t's own location:
//   - Daily:     "2006-01-02"
//   - Weekly:    date of the preceding (or same) Sunday, "2006-01-02"
//   - Monthly:   "2006-01"
//   - Quarterly: "2006-Q1" .. "2006-Q4"
//
// Unknown granularities fall back to the Daily key.
func PeriodKey(t time.Time, period models.Granularity) string {
	switch period {
	case models.Daily:
		return t.Format(dateLayout)
	case models.Weekly:
		return t.AddDate(0, 0, -int(t.Weekday())).Format(dateLayout)
	case models.Monthly:
		return t.Format("2006-01")
	case models.Quarterly:
		return fmt.Sprintf("%04d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	default:
		return t.Format(dateLayout)
	}
}

func (a *Aggregator) parse(ts string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, ts, a.loc); err == nil {
			return t.In(a.loc), true
		}
	}
	return time.Time{}, false
}

type datedTrade struct {
	trade models.Trade
	at    time.Time
}

// groupOrdered buckets items by key and returns the keys in first-seen order.
func groupOrdered[T any](items []T, key func(T) string) ([]string, map[string][]T) {
	var keys []string
	groups := make(map[string][]T)
	for _, it := range items {
		k := key(it)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], it)
	}
	return keys, groups
}

// weightedAverage returns the total size and the size-weighted average price
// rounded to cents. ok is false when the total size is zero.
func weightedAverage(trades []datedTrade) (size int64, price float64, ok bool) {
	notional := decimal.Zero
	for _, d := range trades {
		size += d.trade.Size
		notional = notional.Add(decimal.NewFromFloat(d.trade.Price).Mul(decimal.NewFromInt(d.trade.Size)))
	}
	if size == 0 {
		return 0, 0, false
	}
	return size, notional.Div(decimal.NewFromInt(size)).Round(2).InexactFloat64(), true
}
