package model

// UsageLevel classifies a usage percentage for highlighting in reports.
type UsageLevel int

const (
	// UsageNormal is below 75%.
	UsageNormal UsageLevel = iota
	// UsageElevated is 75% up to 89%.
	UsageElevated
	// UsageCritical is 90% or more.
	UsageCritical
)

// Thresholds for LevelFor.
const (
	ElevatedThreshold = 75
	CriticalThreshold = 90
)

// LevelFor returns the UsageLevel of a percentage.
func LevelFor(percent uint64) UsageLevel {
	switch {
	case percent >= CriticalThreshold:
		return UsageCritical
	case percent >= ElevatedThreshold:
		return UsageElevated
	default:
		return UsageNormal
	}
}

// String returns the lower-case level name.
func (l UsageLevel) String() string {
	switch l {
	case UsageNormal:
		return "normal"
	case UsageElevated:
		return "elevated"
	case UsageCritical:
		return "critical"
	default:
		return "unknown"
	}
}
