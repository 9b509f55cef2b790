// Package prompt shows the phase-change acknowledgment window and the
// walk-now countdown window.
package prompt

import (
	"context"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"movereminder/internal/core/phasetimer"
	"movereminder/internal/core/session"
	"movereminder/internal/ui/animation"
	"movereminder/resources"
)

var (
	titleColor = color.NRGBA{R: 30, G: 58, B: 138, A: 255}
	bodyColor  = color.NRGBA{R: 107, G: 114, B: 128, A: 255}
)

// Callbacks defines prompt button handlers.
type Callbacks struct {
	OnAccept func()
	OnSkip   func()
	OnLock   func()
}

// Window is the acknowledgment popup raised at every phase boundary.
type Window struct {
	window     fyne.Window
	image      *canvas.Image
	titleLabel *canvas.Text
	bodyLabel  *canvas.Text
	okButton   *widget.Button
	skipButton *widget.Button
	lockButton *widget.Button
	engine     *animation.Engine
	cancelCtx  context.CancelFunc
	visible    bool
}

// New creates a hidden prompt window.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("MoveReminder")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetFixedSize(true)

	image := canvas.NewImageFromResource(nil)
	image.FillMode = canvas.ImageFillContain
	image.SetMinSize(fyne.NewSize(96, 96))

	titleLabel := canvas.NewText("", titleColor)
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 22

	bodyLabel := canvas.NewText("", bodyColor)
	bodyLabel.Alignment = fyne.TextAlignCenter
	bodyLabel.TextSize = 14

	okButton := widget.NewButton("OK", callbacks.OnAccept)
	okButton.Importance = widget.HighImportance
	skipButton := widget.NewButton("Skip", callbacks.OnSkip)
	lockButton := widget.NewButton("Lock Screen", callbacks.OnLock)

	content := container.NewVBox(
		container.NewCenter(image),
		titleLabel,
		bodyLabel,
		container.NewCenter(container.NewHBox(okButton, skipButton, lockButton)),
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(520, 360))
	window.SetCloseIntercept(func() {
		if callbacks.OnSkip != nil {
			callbacks.OnSkip()
		}
	})

	return &Window{
		window:     window,
		image:      image,
		titleLabel: titleLabel,
		bodyLabel:  bodyLabel,
		okButton:   okButton,
		skipButton: skipButton,
		lockButton: lockButton,
	}
}

// SetEngine attaches the icon animation engine.
func (prompt *Window) SetEngine(engine *animation.Engine) {
	prompt.engine = engine
}

// Show presents prompt. The lock button is offered for walks when the
// screen can be locked.
func (prompt *Window) Show(pending session.Prompt, canLock bool) {
	title, body := pending.Message()
	prompt.titleLabel.Text = title
	prompt.titleLabel.Refresh()
	prompt.bodyLabel.Text = body
	prompt.bodyLabel.Refresh()

	if canLock && pending.Next == phasetimer.PhaseWalking {
		prompt.lockButton.Show()
	} else {
		prompt.lockButton.Hide()
	}

	frames := phaseFrames(pending.Next)
	if len(frames) > 0 {
		prompt.image.Resource = frames[0]
		prompt.image.Refresh()
	}
	prompt.startEngine(frames)

	prompt.visible = true
	prompt.window.CenterOnScreen()
	prompt.window.Show()
	prompt.window.RequestFocus()
	keepOnTop(prompt.window)
}

// Hide closes the prompt and stops the icon animation.
func (prompt *Window) Hide() {
	prompt.stopEngine()
	prompt.visible = false
	prompt.window.Hide()
}

// Visible reports whether the prompt is showing.
func (prompt *Window) Visible() bool {
	return prompt.visible
}

// SetFrame updates the icon image. It is the animation engine's frame sink.
func (prompt *Window) SetFrame(resource fyne.Resource) {
	fyne.Do(func() {
		prompt.image.Resource = resource
		prompt.image.Refresh()
	})
}

func (prompt *Window) startEngine(frames []fyne.Resource) {
	prompt.stopEngine()
	if prompt.engine == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	prompt.cancelCtx = cancel
	prompt.engine.Pulse(ctx, frames)
}

func (prompt *Window) stopEngine() {
	if prompt.cancelCtx != nil {
		prompt.cancelCtx()
		prompt.cancelCtx = nil
	}
}

// The prompt shows the standing figure for walks too.
func phaseFrames(phase phasetimer.Phase) []fyne.Resource {
	if phase == phasetimer.PhaseWalking {
		phase = phasetimer.PhaseStanding
	}
	return resources.PhaseFrames(strings.ToLower(string(phase)))
}
