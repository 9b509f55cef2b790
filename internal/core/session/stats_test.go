package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"movereminder/internal/core/phasetimer"
)

func TestStatsAddAndShares(t *testing.T) {
	stats := NewStats(time.Date(2026, time.March, 2, 15, 4, 0, 0, time.UTC)).
		Add(phasetimer.PhaseSitting, 45).
		Add(phasetimer.PhaseStanding, 10).
		Add(phasetimer.PhaseWalking, 5).
		Add(phasetimer.PhaseIdle, 99)

	assert.Equal(t, 60, stats.Total())
	sit, stand, walk := stats.Shares()
	assert.InDelta(t, 0.75, sit, 1e-9)
	assert.InDelta(t, 10.0/60, stand, 1e-9)
	assert.InDelta(t, 5.0/60, walk, 1e-9)
}

func TestStatsSharesWhenEmpty(t *testing.T) {
	sit, stand, walk := Stats{}.Shares()
	assert.Zero(t, sit)
	assert.Zero(t, stand)
	assert.Zero(t, walk)
}

func TestStatsRolledResetsOnNewDay(t *testing.T) {
	morning := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	stats := NewStats(morning).Add(phasetimer.PhaseSitting, 30)

	assert.Equal(t, 30, stats.Rolled(morning.Add(10*time.Hour)).SitMinutes)

	next := stats.Rolled(morning.Add(24 * time.Hour))
	assert.Zero(t, next.Total())
	assert.Equal(t, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), next.Day)
}
