package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	menu *fyne.Menu
	sets int
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menu = menu
	host.sets++
}

func itemLabels(menu *fyne.Menu) []string {
	labels := []string{}
	for _, item := range menu.Items {
		if item.IsSeparator {
			continue
		}
		labels = append(labels, item.Label)
	}
	return labels
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

func TestNewInstallsMenu(t *testing.T) {
	host := &fakeHost{}
	New(host, Callbacks{})

	require.NotNil(t, host.menu)
	assert.Equal(t, []string{"Status: not started", "Show dashboard", "Pause", "Walk now", "Preferences", "Quit"}, itemLabels(host.menu))
	assert.True(t, findItem(t, host.menu, "Pause").Disabled)
}

func TestSetStateTogglesPauseLabel(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, Callbacks{})

	manager.SetStatus("Sitting 44:59")
	manager.SetState(true, true, false)

	assert.Equal(t, "Status: Sitting 44:59 (paused)", host.menu.Items[0].Label)
	resume := findItem(t, host.menu, "Resume")
	assert.False(t, resume.Disabled)

	manager.SetState(true, false, false)
	assert.False(t, findItem(t, host.menu, "Pause").Disabled)
	assert.False(t, findItem(t, host.menu, "Walk now").Disabled)
}

func TestPauseToggleDisabledWhileWalking(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, Callbacks{})

	manager.SetState(true, true, true)

	assert.True(t, findItem(t, host.menu, "Resume").Disabled)
	assert.True(t, findItem(t, host.menu, "Walk now").Disabled)

	manager.SetState(true, false, false)
	assert.False(t, findItem(t, host.menu, "Pause").Disabled)
}

func TestMenuActionsInvokeCallbacks(t *testing.T) {
	host := &fakeHost{}
	var toggled, walked, quit int
	New(host, Callbacks{
		OnTogglePause: func() { toggled++ },
		OnWalkNow:     func() { walked++ },
		OnQuit:        func() { quit++ },
	})

	findItem(t, host.menu, "Pause").Action()
	findItem(t, host.menu, "Walk now").Action()
	findItem(t, host.menu, "Quit").Action()
	findItem(t, host.menu, "Show dashboard").Action()

	assert.Equal(t, 1, toggled)
	assert.Equal(t, 1, walked)
	assert.Equal(t, 1, quit)
}
