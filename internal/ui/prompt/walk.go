package prompt

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"movereminder/internal/core/session"
	"movereminder/resources"
)

var walkTitleColor = color.NRGBA{R: 217, G: 119, B: 6, A: 255}

// WalkCallbacks defines walk window button handlers.
type WalkCallbacks struct {
	OnCancel func()
	OnLock   func()
}

// WalkWindow shows the countdown of an on-demand walk.
type WalkWindow struct {
	window     fyne.Window
	timeLabel  *canvas.Text
	progress   *widget.ProgressBar
	cancel     *widget.Button
	lockButton *widget.Button
}

// NewWalk creates a hidden walk window.
func NewWalk(app fyne.App, callbacks WalkCallbacks) *WalkWindow {
	window := app.NewWindow("Walk Timer")
	window.SetFixedSize(true)

	icon := canvas.NewImageFromResource(resources.MustIcon("walking.svg"))
	icon.FillMode = canvas.ImageFillContain
	icon.SetMinSize(fyne.NewSize(72, 72))

	title := canvas.NewText("Walk Time!", walkTitleColor)
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 22

	timeLabel := canvas.NewText("00:00", titleColor)
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeLabel.TextSize = 48

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	cancel := widget.NewButton("Cancel", callbacks.OnCancel)
	cancel.Importance = widget.DangerImportance
	lockButton := widget.NewButton("Lock & Walk", callbacks.OnLock)

	content := container.NewVBox(
		container.NewCenter(icon),
		title,
		timeLabel,
		progress,
		container.NewCenter(container.NewHBox(cancel, lockButton)),
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(450, 320))
	window.SetCloseIntercept(func() {
		if callbacks.OnCancel != nil {
			callbacks.OnCancel()
		}
	})

	return &WalkWindow{
		window:     window,
		timeLabel:  timeLabel,
		progress:   progress,
		cancel:     cancel,
		lockButton: lockButton,
	}
}

// Show opens the window for a walk of minutes.
func (walk *WalkWindow) Show(minutes int, canLock bool) {
	walk.timeLabel.Text = fmt.Sprintf("%02d:00", minutes)
	walk.timeLabel.Refresh()
	walk.progress.SetValue(0)
	if canLock {
		walk.lockButton.Show()
		walk.lockButton.Enable()
	} else {
		walk.lockButton.Hide()
	}

	walk.window.CenterOnScreen()
	walk.window.Show()
	walk.window.RequestFocus()
	keepOnTop(walk.window)
}

// SetTick shows the remaining walk time.
func (walk *WalkWindow) SetTick(tick session.WalkTick) {
	walk.timeLabel.Text = tick.Time
	walk.timeLabel.Refresh()
	walk.progress.SetValue(tick.Progress)
}

// LockRequested disables the lock button after it has been used once.
func (walk *WalkWindow) LockRequested() {
	walk.lockButton.Disable()
}

// Hide closes the window.
func (walk *WalkWindow) Hide() {
	walk.window.Hide()
}
