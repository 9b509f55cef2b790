package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movereminder/internal/core/session"
)

func TestParseHIDIdleTime(t *testing.T) {
	output := []byte(`    | |   "HIDIdleTime" = 2500000000
    | |   "HIDParameters" = {}`)

	idle, err := parseHIDIdleTime(output)
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, idle)

	_, err = parseHIDIdleTime([]byte("nothing here"))
	assert.True(t, errors.Is(err, session.ErrIdleUnsupported))
}

func TestLaunchAgentPlistEscapesPath(t *testing.T) {
	plist := launchAgentPlist("com.movereminder.app", "/Applications/A&B.app")

	assert.Contains(t, plist, "<string>com.movereminder.app</string>")
	assert.Contains(t, plist, "/Applications/A&amp;B.app")
	assert.Contains(t, plist, "<key>RunAtLoad</key>")
}
