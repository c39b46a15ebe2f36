package models

import "math"

// VisibleRange holds inclusive index bounds over a chart series.
// EndIndex may exceed the series length; consumers clamp it.
type VisibleRange struct {
	StartIndex int `json:"startIndex" example:"0"`
	EndIndex   int `json:"endIndex" example:"49"`
}

// FullRange is the range a chart session starts with: everything visible.
func FullRange() VisibleRange {
	return VisibleRange{StartIndex: 0, EndIndex: math.MaxInt}
}

// ZoomPreset is a named percentage range shortcut (Start/End in [0,1]).
type ZoomPreset struct {
	Label string  `json:"label" yaml:"label" example:"First Half"`
	Start float64 `json:"start" yaml:"start" example:"0"`
	End   float64 `json:"end" yaml:"end" example:"0.5"`
}
