package phasetimer

import (
	"fmt"
	"time"

	"movereminder/internal/core/model"
)

// Phase is one segment of the movement cycle.
type Phase string

const (
	PhaseIdle     Phase = "Idle"
	PhaseSitting  Phase = "Sitting"
	PhaseStanding Phase = "Standing"
	PhaseWalking  Phase = "Walking"
)

// NextPhase returns the phase that follows current and its duration in minutes.
// It reports false for Idle, which never advances.
func NextPhase(current Phase, cycle model.CycleConfig) (Phase, int, bool) {
	cycle = cycle.Normalized()
	switch current {
	case PhaseSitting:
		if cycle.IncludeStanding {
			return PhaseStanding, cycle.StandMinutes, true
		}
		if cycle.IncludeWalking {
			return PhaseWalking, cycle.WalkMinutes, true
		}
		return PhaseSitting, cycle.SitMinutes, true
	case PhaseStanding:
		if cycle.IncludeWalking {
			return PhaseWalking, cycle.WalkMinutes, true
		}
		return PhaseSitting, cycle.SitMinutes, true
	case PhaseWalking:
		return PhaseSitting, cycle.SitMinutes, true
	default:
		return PhaseIdle, 0, false
	}
}

// MinutesFor returns the configured minutes of phase, or 0 for Idle.
func MinutesFor(phase Phase, cycle model.CycleConfig) int {
	cycle = cycle.Normalized()
	switch phase {
	case PhaseSitting:
		return cycle.SitMinutes
	case PhaseStanding:
		return cycle.StandMinutes
	case PhaseWalking:
		return cycle.WalkMinutes
	default:
		return 0
	}
}

// FormatRemaining renders remaining as MM:SS. Minutes are not capped at 59.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int64(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Progress returns the completed fraction of a phase of length total.
func Progress(remaining, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	if remaining < 0 {
		remaining = 0
	}
	progress := 1 - float64(remaining)/float64(total)
	if progress < 0 {
		return 0
	}
	return progress
}
