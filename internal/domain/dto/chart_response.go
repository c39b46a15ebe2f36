package dto

import "github.com/guttosm/tradechart/internal/domain/models"

// TradeItem is one row of the data table.
type TradeItem struct {
	ID        int64   `json:"id" example:"1"`
	Timestamp string  `json:"timeStamp" example:"2024-04-02T15:04:05Z"`
	TradeSize int64   `json:"tradeSize" example:"40"`
	Price     float64 `json:"price" example:"170.50"`
	Symbol    string  `json:"symbol" example:"AAPL"`
}

// TradesResponse represents the JSON structure returned by GET /api/v1/trades.
type TradesResponse struct {
	Count  int         `json:"count" example:"1"`
	Trades []TradeItem `json:"trades"`
}

// ChartPoint is one aggregated point of a chart window.
type ChartPoint struct {
	ID        string  `json:"id" example:"2024-Q2-AAPL"`
	Period    string  `json:"timeStamp" example:"2024-Q2"`
	Label     string  `json:"label" example:"Q2 2024"`
	TradeSize int64   `json:"tradeSize" example:"1500"`
	Price     float64 `json:"price" example:"171.42"`
	Symbol    string  `json:"symbol" example:"AAPL"`
}

// RangeResponse echoes the inclusive index bounds the window was cut from.
type RangeResponse struct {
	StartIndex int `json:"startIndex" example:"0"`
	EndIndex   int `json:"endIndex" example:"49"`
}

// ChartResponse represents the JSON structure returned by GET /api/v1/chart.
//
// Total is the length of the whole aggregated series; clients page through it
// by sending Range back as start_index/end_index.
type ChartResponse struct {
	Aggregation string        `json:"aggregation" example:"Daily"`
	Total       int           `json:"total" example:"240"`
	MaxPoints   int           `json:"maxPoints" example:"50"`
	Range       RangeResponse `json:"range"`
	Points      []ChartPoint  `json:"points"`
}

// TreemapNode is one symbol tile.
type TreemapNode struct {
	Name  string `json:"name" example:"AAPL"`
	Size  int64  `json:"size" example:"1500"`
	Value int64  `json:"value" example:"257130"`
}

// TreemapResponse represents the JSON structure returned by GET /api/v1/treemap.
type TreemapResponse struct {
	Nodes []TreemapNode `json:"nodes"`
}

// PresetItem is a named zoom shortcut.
type PresetItem struct {
	Label string  `json:"label" example:"First Half"`
	Start float64 `json:"start" example:"0"`
	End   float64 `json:"end" example:"0.5"`
}

// PresetsResponse represents the JSON structure returned by GET /api/v1/presets.
type PresetsResponse struct {
	Presets []PresetItem `json:"presets"`
}

func NewTradesResponse(trades []models.Trade) TradesResponse {
	items := make([]TradeItem, 0, len(trades))
	for _, t := range trades {
		items = append(items, TradeItem{
			ID:        t.ID,
			Timestamp: t.Timestamp,
			TradeSize: t.Size,
			Price:     t.Price,
			Symbol:    string(t.Symbol),
		})
	}
	return TradesResponse{Count: len(items), Trades: items}
}

func NewChartResponse(c *models.Chart) ChartResponse {
	points := make([]ChartPoint, 0, len(c.Points))
	for _, p := range c.Points {
		points = append(points, ChartPoint{
			ID:        p.ID,
			Period:    p.PeriodKey,
			Label:     p.Label,
			TradeSize: p.Size,
			Price:     p.Price,
			Symbol:    string(p.Symbol),
		})
	}
	return ChartResponse{
		Aggregation: c.Aggregation,
		Total:       c.Total,
		MaxPoints:   c.MaxPoints,
		Range:       RangeResponse{StartIndex: c.Range.StartIndex, EndIndex: c.Range.EndIndex},
		Points:      points,
	}
}

func NewTreemapResponse(totals []models.SymbolTotal) TreemapResponse {
	nodes := make([]TreemapNode, 0, len(totals))
	for _, t := range totals {
		nodes = append(nodes, TreemapNode{Name: string(t.Symbol), Size: t.Size, Value: t.Value})
	}
	return TreemapResponse{Nodes: nodes}
}

func NewPresetsResponse(presets []models.ZoomPreset) PresetsResponse {
	items := make([]PresetItem, 0, len(presets))
	for _, p := range presets {
		items = append(items, PresetItem{Label: p.Label, Start: p.Start, End: p.End})
	}
	return PresetsResponse{Presets: items}
}
