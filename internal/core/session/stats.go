package session

import (
	"time"

	"movereminder/internal/core/phasetimer"
)

// Stats accumulates completed minutes per phase for one calendar day.
type Stats struct {
	Day          time.Time
	SitMinutes   int
	StandMinutes int
	WalkMinutes  int
}

// NewStats returns empty stats for the day containing now.
func NewStats(now time.Time) Stats {
	return Stats{Day: startOfDay(now)}
}

// Add credits minutes to phase. Idle is ignored.
func (stats Stats) Add(phase phasetimer.Phase, minutes int) Stats {
	switch phase {
	case phasetimer.PhaseSitting:
		stats.SitMinutes += minutes
	case phasetimer.PhaseStanding:
		stats.StandMinutes += minutes
	case phasetimer.PhaseWalking:
		stats.WalkMinutes += minutes
	}
	return stats
}

// Total returns all credited minutes.
func (stats Stats) Total() int {
	return stats.SitMinutes + stats.StandMinutes + stats.WalkMinutes
}

// Shares returns the sitting, standing and walking fractions of Total.
func (stats Stats) Shares() (sit, stand, walk float64) {
	total := stats.Total()
	if total == 0 {
		return 0, 0, 0
	}
	return float64(stats.SitMinutes) / float64(total),
		float64(stats.StandMinutes) / float64(total),
		float64(stats.WalkMinutes) / float64(total)
}

// Rolled returns stats reset to zero when now falls on a later day.
func (stats Stats) Rolled(now time.Time) Stats {
	day := startOfDay(now)
	if stats.Day.Equal(day) {
		return stats
	}
	return Stats{Day: day}
}

func startOfDay(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}
