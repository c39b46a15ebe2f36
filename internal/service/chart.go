package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/tradechart/internal/aggregation"
	"github.com/guttosm/tradechart/internal/domain/models"
	"github.com/guttosm/tradechart/internal/logger"
	"github.com/guttosm/tradechart/internal/storage"
	"github.com/guttosm/tradechart/internal/window"
)

// ErrUnknownPreset is returned when a chart request names a zoom preset that
// is not in the configured table.
var ErrUnknownPreset = errors.New("unknown zoom preset")

// TradeQuery is the data-table filter shared by every read endpoint.
type TradeQuery struct {
	Since   *time.Time
	MinSize int64
	Symbol  models.Symbol // empty means all symbols
}

// RangeRequest selects the visible part of a chart. Precedence: explicit
// indices, then Preset, then From/To percentages; with none set the whole
// series is visible.
type RangeRequest struct {
	StartIndex *int
	EndIndex   *int
	Preset     string
	From       *float64
	To         *float64
}

// ChartQuery is a TradeQuery plus how to bucket and window the result.
type ChartQuery struct {
	TradeQuery
	Granularity models.Granularity
	Range       RangeRequest
	MaxPoints   int // <= 0 uses the service default
}

// ChartService defines business logic behind the chart screens.
type ChartService interface {
	Trades(ctx context.Context, q TradeQuery) ([]models.Trade, error)
	Chart(ctx context.Context, q ChartQuery) (*models.Chart, error)
	Treemap(ctx context.Context, q TradeQuery) ([]models.SymbolTotal, error)
	Presets() []models.ZoomPreset
}

// Options tunes a ChartService. Zero values select the defaults.
type Options struct {
	Aggregator *aggregation.Aggregator // UTC aggregator when nil
	Presets    []models.ZoomPreset     // window.DefaultPresets() when empty
	MaxPoints  int                     // window.DefaultMaxPoints when <= 0
}

type chartService struct {
	repo      storage.TradesRepository
	agg       *aggregation.Aggregator
	presets   []models.ZoomPreset
	maxPoints int
}

func NewChartService(repo storage.TradesRepository, opts Options) ChartService {
	s := &chartService{
		repo:      repo,
		agg:       opts.Aggregator,
		presets:   opts.Presets,
		maxPoints: opts.MaxPoints,
	}
	if s.agg == nil {
		s.agg = aggregation.New(time.UTC)
	}
	if len(s.presets) == 0 {
		s.presets = window.DefaultPresets()
	}
	if s.maxPoints <= 0 {
		s.maxPoints = window.DefaultMaxPoints
	}
	return s
}

func (s *chartService) Trades(ctx context.Context, q TradeQuery) ([]models.Trade, error) {
	return s.repo.ListTrades(ctx, toFilter(q))
}

// Chart loads the filtered trades, aggregates them by q.Granularity, orders
// the series by period and cuts the requested window out of it.
func (s *chartService) Chart(ctx context.Context, q ChartQuery) (*models.Chart, error) {
	trades, err := s.repo.ListTrades(ctx, toFilter(q.TradeQuery))
	if err != nil {
		return nil, err
	}

	records, stats := s.agg.AggregateWithStats(trades, q.Granularity)
	if stats.Excluded > 0 || stats.EmptyGroups > 0 {
		logger.L().Debug().
			Str("aggregation", q.Granularity.String()).
			Int("input", stats.Input).
			Int("excluded", stats.Excluded).
			Int("empty_groups", stats.EmptyGroups).
			Int("output", stats.Output).
			Msg("aggregation dropped records")
	}
	series := aggregation.SortChronological(records)

	r, err := s.resolveRange(len(series), q.Range)
	if err != nil {
		return nil, err
	}
	maxPoints := q.MaxPoints
	if maxPoints <= 0 {
		maxPoints = s.maxPoints
	}

	visible := window.CurrentWindow(series, r, maxPoints)
	points := make([]models.ChartPoint, 0, len(visible))
	for _, rec := range visible {
		points = append(points, models.ChartPoint{
			AggregatedRecord: rec,
			Label:            models.PeriodLabel(rec.PeriodKey, q.Granularity),
		})
	}

	// echo the end index clamped to the series; -1 for an empty series
	r.EndIndex = min(r.EndIndex, len(series)-1)

	return &models.Chart{
		Aggregation: q.Granularity.String(),
		Total:       len(series),
		Range:       r,
		MaxPoints:   maxPoints,
		Points:      points,
	}, nil
}

func (s *chartService) Treemap(ctx context.Context, q TradeQuery) ([]models.SymbolTotal, error) {
	trades, err := s.repo.ListTrades(ctx, toFilter(q))
	if err != nil {
		return nil, err
	}
	return aggregation.SymbolTotals(trades), nil
}

func (s *chartService) Presets() []models.ZoomPreset {
	return append([]models.ZoomPreset(nil), s.presets...)
}

func (s *chartService) resolveRange(length int, rr RangeRequest) (models.VisibleRange, error) {
	switch {
	case rr.StartIndex != nil || rr.EndIndex != nil:
		r := models.FullRange()
		if rr.StartIndex != nil {
			r.StartIndex = *rr.StartIndex
		}
		if rr.EndIndex != nil {
			r.EndIndex = *rr.EndIndex
		}
		return r, nil
	case rr.Preset != "":
		p, ok := window.PresetByLabel(s.presets, rr.Preset)
		if !ok {
			return models.VisibleRange{}, fmt.Errorf("%w: %q", ErrUnknownPreset, rr.Preset)
		}
		return window.Zoom(length, p.Start, p.End), nil
	case rr.From != nil || rr.To != nil:
		from, to := 0.0, 1.0
		if rr.From != nil {
			from = *rr.From
		}
		if rr.To != nil {
			to = *rr.To
		}
		return window.Zoom(length, from, to), nil
	default:
		return models.FullRange(), nil
	}
}

func toFilter(q TradeQuery) storage.TradeFilter {
	f := storage.TradeFilter{Since: q.Since, MinSize: q.MinSize}
	if q.Symbol != "" {
		f.Symbols = []models.Symbol{q.Symbol}
	}
	return f
}
