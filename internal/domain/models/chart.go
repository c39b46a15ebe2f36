package models

// ChartPoint is an aggregated record ready for display.
type ChartPoint struct {
	AggregatedRecord
	Label string `json:"label" example:"Q2 2024"`
}

// Chart is one rendered window over an aggregated series.
//
// Fields:
//   - Aggregation: granularity name the series was bucketed with.
//   - Total: length of the full aggregated series before windowing.
//   - Range: the visible range the window was cut from; callers send it back
//     to keep the same zoom on the next request.
//   - MaxPoints: display cap applied.
//   - Points: the windowed, possibly decimated, series.
type Chart struct {
	Aggregation string       `json:"aggregation" example:"Daily"`
	Total       int          `json:"total" example:"240"`
	Range       VisibleRange `json:"range"`
	MaxPoints   int          `json:"maxPoints" example:"50"`
	Points      []ChartPoint `json:"points"`
}
