package aggregation

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/guttosm/tradechart/internal/domain/models"
)

func trade(id int64, ts string, size int64, price float64, sym models.Symbol) models.Trade {
	return models.Trade{ID: id, Timestamp: ts, Size: size, Price: price, Symbol: sym}
}

func TestAggregate_Empty(t *testing.T) {
	out := Aggregate(nil, models.Daily)
	if out == nil || len(out) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", out)
	}
}

func TestAggregate_SameDayScenario(t *testing.T) {
	in := []models.Trade{
		trade(1, "2024-04-02T10:00:00Z", 5, 100.00, models.SymbolAAPL),
		trade(2, "2024-04-02T11:00:00Z", 5, 102.00, models.SymbolAAPL),
		trade(3, "2024-04-02T12:00:00Z", 10, 101.00, models.SymbolAAPL),
	}
	out := Aggregate(in, models.Daily)
	want := []models.AggregatedRecord{{ID: "2024-04-02-AAPL", PeriodKey: "2024-04-02", Size: 20, Price: 101.00, Symbol: models.SymbolAAPL}}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("got %+v, want %+v", out, want)
	}
}

func TestAggregate_WeightedAverage(t *testing.T) {
	cases := []struct {
		name  string
		sizes []int64
		price []float64
		want  float64
		size  int64
	}{
		{name: "10@10 + 20@13", sizes: []int64{10, 20}, price: []float64{10.00, 13.00}, want: 12.00, size: 30},
		{name: "half rounds up", sizes: []int64{1, 1}, price: []float64{1.00, 1.01}, want: 1.01, size: 2},
		{name: "thirds", sizes: []int64{1, 2}, price: []float64{10.00, 10.01}, want: 10.01, size: 3},
		{name: "zero-size member", sizes: []int64{0, 4}, price: []float64{99.99, 50.00}, want: 50.00, size: 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var in []models.Trade
			for i := range tc.sizes {
				in = append(in, trade(int64(i+1), "2024-01-15T09:00:00Z", tc.sizes[i], tc.price[i], models.SymbolMSFT))
			}
			out := Aggregate(in, models.Monthly)
			if len(out) != 1 {
				t.Fatalf("want 1 record, got %d", len(out))
			}
			if out[0].Price != tc.want || out[0].Size != tc.size {
				t.Fatalf("got price=%v size=%d, want price=%v size=%d", out[0].Price, out[0].Size, tc.want, tc.size)
			}
			if out[0].ID != "2024-01-MSFT" {
				t.Fatalf("unexpected id %q", out[0].ID)
			}
		})
	}
}

func TestPeriodKey(t *testing.T) {
	// 2024-04-03 is a Wednesday; the week starts on Sunday 2024-03-31.
	wed := time.Date(2024, time.April, 3, 15, 0, 0, 0, time.UTC)
	sun := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)

	cases := []struct {
		at   time.Time
		g    models.Granularity
		want string
	}{
		{wed, models.Daily, "2024-04-03"},
		{wed, models.Weekly, "2024-03-31"},
		{sun, models.Weekly, "2024-03-31"},
		{jan, models.Weekly, "2024-12-29"},
		{wed, models.Monthly, "2024-04"},
		{wed, models.Quarterly, "2024-Q2"},
		{jan, models.Quarterly, "2025-Q1"},
		{dec, models.Quarterly, "2024-Q4"},
		{wed, models.Granularity(99), "2024-04-03"},
	}
	for _, c := range cases {
		got := PeriodKey(c.at, c.g)
		if got != c.want {
			t.Fatalf("PeriodKey(%v, %v)=%q, want %q", c.at, c.g, got, c.want)
		}
		if again := PeriodKey(c.at, c.g); again != got {
			t.Fatalf("PeriodKey not stable: %q then %q", got, again)
		}
	}
}

func TestAggregator_Location(t *testing.T) {
	// 02:00 UTC on April 1 is still March 31 in New York.
	ny := time.FixedZone("EDT", -4*3600)
	a := New(ny)
	key, ok := a.PeriodKey("2024-04-01T02:00:00Z", models.Monthly)
	if !ok || key != "2024-03" {
		t.Fatalf("got %q ok=%v, want 2024-03", key, ok)
	}
	key, ok = New(nil).PeriodKey("2024-04-01T02:00:00Z", models.Monthly)
	if !ok || key != "2024-04" {
		t.Fatalf("got %q ok=%v, want 2024-04", key, ok)
	}
	if _, ok := a.PeriodKey("not a date", models.Daily); ok {
		t.Fatalf("expected parse failure")
	}
	// zone-less timestamps are read in the aggregator's location
	key, _ = a.PeriodKey("2024-06-30 23:30:00", models.Quarterly)
	if key != "2024-Q2" {
		t.Fatalf("got %q, want 2024-Q2", key)
	}
}

func TestAggregate_ExcludesUnaggregatable(t *testing.T) {
	in := []models.Trade{
		trade(1, "yesterday", 10, 10.00, models.SymbolAAPL),
		trade(2, "2024-04-02T10:00:00Z", 10, math.NaN(), models.SymbolAAPL),
		trade(3, "2024-04-02T10:00:00Z", 10, math.Inf(1), models.SymbolAAPL),
		trade(4, "2024-04-02T10:00:00Z", 0, 10.00, models.SymbolMETA),
		trade(5, "2024-04-02T10:00:00Z", 7, 10.00, models.SymbolGOOGL),
	}
	out, stats := New(time.UTC).AggregateWithStats(in, models.Daily)
	if len(out) != 1 || out[0].Symbol != models.SymbolGOOGL || out[0].Size != 7 {
		t.Fatalf("unexpected output %+v", out)
	}
	want := Stats{Input: 5, Excluded: 3, EmptyGroups: 1, Output: 1}
	if stats != want {
		t.Fatalf("stats=%+v, want %+v", stats, want)
	}
}

func TestAggregate_OrderAndCompleteness(t *testing.T) {
	in := []models.Trade{
		trade(1, "2024-05-10T10:00:00Z", 3, 20.00, models.SymbolMSFT),
		trade(2, "2024-01-05T10:00:00Z", 4, 30.00, models.SymbolAAPL),
		trade(3, "2024-04-01T10:00:00Z", 6, 31.00, models.SymbolAAPL),
		trade(4, "2024-02-20T10:00:00Z", 2, 21.00, models.SymbolMSFT),
		trade(5, "2024-01-06T10:00:00Z", 1, 22.00, models.SymbolMSFT),
	}
	out := Aggregate(in, models.Quarterly)
	ids := make([]string, len(out))
	for i, r := range out {
		ids[i] = r.ID
	}
	wantIDs := []string{"2024-Q1-AAPL", "2024-Q1-MSFT", "2024-Q2-AAPL", "2024-Q2-MSFT"}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Fatalf("ids=%v, want %v", ids, wantIDs)
	}

	inSize := map[models.Symbol]int64{}
	for _, r := range in {
		inSize[r.Symbol] += r.Size
	}
	outSize := map[models.Symbol]int64{}
	for _, r := range out {
		outSize[r.Symbol] += r.Size
	}
	if !reflect.DeepEqual(inSize, outSize) {
		t.Fatalf("size totals differ: in=%v out=%v", inSize, outSize)
	}

	// identical input yields identical output
	if again := Aggregate(in, models.Quarterly); !reflect.DeepEqual(out, again) {
		t.Fatalf("aggregation not deterministic")
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	in := []models.Trade{
		trade(2, "2024-02-01T00:00:00Z", 1, 1.00, models.SymbolAMZN),
		trade(1, "2024-01-01T00:00:00Z", 1, 1.00, models.SymbolAMZN),
	}
	snapshot := append([]models.Trade(nil), in...)
	_ = Aggregate(in, models.Daily)
	if !reflect.DeepEqual(in, snapshot) {
		t.Fatalf("input mutated")
	}
}
