package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PeriodLabel renders a period key for display on a chart axis.
//
// Examples:
//   - Daily "2024-04-02"     → "Apr 2"
//   - Weekly "2024-03-31"    → "Week of Mar 31"
//   - Monthly "2024-04"      → "Apr 2024"
//   - Quarterly "2024-Q2"    → "Q2 2024"
//
// Keys that do not match the granularity's format are returned unchanged.
func PeriodLabel(periodKey string, g Granularity) string {
	switch g {
	case Daily, Weekly:
		d, err := time.Parse("2006-01-02", periodKey)
		if err != nil {
			return periodKey
		}
		if g == Weekly {
			return "Week of " + d.Format("Jan 2")
		}
		return d.Format("Jan 2")
	case Monthly:
		d, err := time.Parse("2006-01", periodKey)
		if err != nil {
			return periodKey
		}
		return d.Format("Jan 2006")
	case Quarterly:
		year, q, ok := strings.Cut(periodKey, "-Q")
		if !ok {
			return periodKey
		}
		if _, err := strconv.Atoi(year); err != nil {
			return periodKey
		}
		if n, err := strconv.Atoi(q); err != nil || n < 1 || n > 4 {
			return periodKey
		}
		return fmt.Sprintf("Q%s %s", q, year)
	default:
		return periodKey
	}
}
