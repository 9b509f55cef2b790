package prompt

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"movereminder/internal/core/phasetimer"
	"movereminder/internal/core/session"
)

func TestShowRendersPromptMessage(t *testing.T) {
	app := test.NewTempApp(t)
	prompt := New(app, Callbacks{})

	prompt.Show(session.Prompt{Next: phasetimer.PhaseStanding, Previous: phasetimer.PhaseSitting, NextMinutes: 10}, true)

	assert.True(t, prompt.Visible())
	assert.Equal(t, "Time to stand up!", prompt.titleLabel.Text)
	assert.Equal(t, "Stand for 10 minute(s).", prompt.bodyLabel.Text)
	assert.False(t, prompt.lockButton.Visible(), "lock is offered for walks only")
	assert.NotNil(t, prompt.image.Resource)

	prompt.Hide()
	assert.False(t, prompt.Visible())
}

func TestLockOfferedForWalksWhenSupported(t *testing.T) {
	app := test.NewTempApp(t)
	prompt := New(app, Callbacks{})
	walk := session.Prompt{Next: phasetimer.PhaseWalking, Previous: phasetimer.PhaseStanding, NextMinutes: 5}

	prompt.Show(walk, true)
	assert.True(t, prompt.lockButton.Visible())

	prompt.Show(walk, false)
	assert.False(t, prompt.lockButton.Visible())
}

func TestButtonsInvokeCallbacks(t *testing.T) {
	app := test.NewTempApp(t)
	var accepted, skipped, locked int
	prompt := New(app, Callbacks{
		OnAccept: func() { accepted++ },
		OnSkip:   func() { skipped++ },
		OnLock:   func() { locked++ },
	})

	test.Tap(prompt.okButton)
	test.Tap(prompt.skipButton)
	test.Tap(prompt.lockButton)

	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, locked)
}

func TestWalkWindowCountsDown(t *testing.T) {
	app := test.NewTempApp(t)
	cancelled := 0
	walk := NewWalk(app, WalkCallbacks{OnCancel: func() { cancelled++ }})

	walk.Show(3, false)
	assert.Equal(t, "03:00", walk.timeLabel.Text)
	assert.False(t, walk.lockButton.Visible())

	walk.SetTick(session.WalkTick{Time: "01:30", Progress: 0.5})
	assert.Equal(t, "01:30", walk.timeLabel.Text)
	assert.InDelta(t, 0.5, walk.progress.Value, 1e-9)

	test.Tap(walk.cancel)
	assert.Equal(t, 1, cancelled)
}
