package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis("15320\n")
	require.NoError(t, err)
	assert.Equal(t, 15320*time.Millisecond, idle)

	_, err = parseIdleMillis("not a number")
	assert.Error(t, err)
}

func TestDesktopEntryQuotesPathsWithSpaces(t *testing.T) {
	entry := desktopEntry("MoveReminder", "/opt/Move Reminder/movereminder")

	assert.Contains(t, entry, "[Desktop Entry]\n")
	assert.Contains(t, entry, "Name=MoveReminder\n")
	assert.Contains(t, entry, `Exec="/opt/Move Reminder/movereminder"`)
}

func TestAutostartRoundTrip(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	login := NewAutostart("Move Reminder")

	enabled, err := login.Enabled()
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, login.Enable("/usr/bin/movereminder"))
	content, err := os.ReadFile(filepath.Join(configDir, "autostart", "move-reminder.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Exec=/usr/bin/movereminder\n")

	enabled, err = login.Enabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, SyncAutostart(login, false))
	enabled, err = login.Enabled()
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.NoError(t, login.Disable(), "disabling twice is fine")
}
