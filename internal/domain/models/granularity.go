package models

import "strings"

// Granularity is the time-bucket width used to group trades.
type Granularity int

const (
	Daily Granularity = iota
	Weekly
	Monthly
	Quarterly
)

// Granularities lists every supported granularity.
var Granularities = []Granularity{Daily, Weekly, Monthly, Quarterly}

func (g Granularity) String() string {
	switch g {
	case Daily:
		return "Daily"
	case Weekly:
		return "Weekly"
	case Monthly:
		return "Monthly"
	case Quarterly:
		return "Quarterly"
	default:
		return "Unknown"
	}
}

// ParseGranularity maps a case-insensitive name ("daily", "Weekly", ...) to a
// Granularity. The boolean is false for unknown names, in which case Daily is returned.
func ParseGranularity(s string) (Granularity, bool) {
	for _, g := range Granularities {
		if strings.EqualFold(strings.TrimSpace(s), g.String()) {
			return g, true
		}
	}
	return Daily, false
}
