package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrayIconIsCached(t *testing.T) {
	first := TrayIcon(TrayAlert)
	second := TrayIcon(TrayAlert)

	assert.Same(t, first, second)
	assert.Equal(t, "logo/alert.svg", first.Name())
	assert.Contains(t, string(first.Content()), "<svg")
}

func TestTrayIconFallsBackToPaused(t *testing.T) {
	assert.Same(t, TrayIcon(TrayPaused), TrayIcon(TrayState(42)))
	assert.Same(t, TrayIcon(TrayActive), AppIcon())
}

func TestMissingIcon(t *testing.T) {
	_, err := Icon("absent.svg")
	assert.Error(t, err)
	assert.Panics(t, func() { MustIcon("absent.svg") })

	resource, err := Icon("walking.svg")
	require.NoError(t, err)
	assert.Equal(t, "icons/walking.svg", resource.Name())
}

func TestPhaseFrames(t *testing.T) {
	assert.Len(t, PhaseFrames("standing"), 2)
	assert.Len(t, PhaseFrames("sitting"), 1)
	assert.Empty(t, PhaseFrames("Idle"))
}
