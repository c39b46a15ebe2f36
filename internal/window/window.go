// Package window bounds a chart series for rendering and maps percentage
// zoom requests onto index ranges.
//
// The package keeps no state: ZoomToRange returns the new VisibleRange and the
// caller (one chart session) stores it and passes it back to CurrentWindow.
package window

import (
	"math"

	"github.com/guttosm/tradechart/internal/domain/models"
)

// DefaultMaxPoints caps the number of points handed to the renderer.
const DefaultMaxPoints = 50

// CurrentWindow returns the part of series that should be rendered.
//
// Behavior:
//   - len(series) <= maxPoints: series is returned as is, whatever the range.
//   - Otherwise the inclusive slice [r.StartIndex, min(r.EndIndex, len-1)] is taken.
//     An inverted or out-of-bounds range yields an empty window.
//   - A slice longer than maxPoints is decimated to every k-th element,
//     k = ceil(len(slice)/maxPoints), starting at the first element of the slice.
//
// maxPoints < 1 falls back to DefaultMaxPoints. The result never holds more than
// maxPoints elements and may share backing storage with series.
func CurrentWindow[T any](series []T, r models.VisibleRange, maxPoints int) []T {
	if maxPoints < 1 {
		maxPoints = DefaultMaxPoints
	}
	if len(series) <= maxPoints {
		return series
	}

	end := min(r.EndIndex, len(series)-1)
	if r.StartIndex < 0 || r.StartIndex > end {
		return []T{}
	}
	visible := series[r.StartIndex : end+1]
	if len(visible) <= maxPoints {
		return visible
	}

	k := (len(visible) + maxPoints - 1) / maxPoints
	out := make([]T, 0, (len(visible)+k-1)/k)
	for i := 0; i < len(visible); i += k {
		out = append(out, visible[i])
	}
	return out
}

// ZoomToRange converts a percentage range over series into index bounds:
// start = floor(len×startPct), end = ceil(len×endPct). Percentages are not
// clamped; CurrentWindow clamps the end index and treats anything else that
// falls outside the series as an empty window.
func ZoomToRange[T any](series []T, startPct, endPct float64) models.VisibleRange {
	return Zoom(len(series), startPct, endPct)
}

// Zoom is ZoomToRange for a series of the given length.
func Zoom(length int, startPct, endPct float64) models.VisibleRange {
	n := float64(length)
	return models.VisibleRange{
		StartIndex: toIndex(math.Floor(n * startPct)),
		EndIndex:   toIndex(math.Ceil(n * endPct)),
	}
}

// toIndex converts a float index, saturating at the int limits. NaN maps to -1
// so that the resulting range is rendered empty.
func toIndex(f float64) int {
	switch {
	case math.IsNaN(f):
		return -1
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	default:
		return int(f)
	}
}
