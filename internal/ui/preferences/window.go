package preferences

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"movereminder/internal/core/model"
)

// Window edits the settings that live outside the dashboard: idle reset and
// launch at login.
type Window struct {
	window        fyne.Window
	settings      model.Settings
	onSave        func(model.Settings)
	idleCheck     *widget.Check
	idleMinutes   *widget.Entry
	launchAtLogin *widget.Check
	saveButton    *widget.Button
	cancelButton  *widget.Button
}

// New creates a preferences window.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow("MoveReminder Preferences")

	idleCheck := widget.NewCheck("Restart sitting after time away from the keyboard", nil)
	idleMinutes := widget.NewEntry()
	launchAtLogin := widget.NewCheck("Launch at login", nil)

	idleCheck.OnChanged = func(enabled bool) {
		if enabled {
			idleMinutes.Enable()
		} else {
			idleMinutes.Disable()
		}
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Idle reset", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		idleCheck,
		container.NewHBox(widget.NewLabel("Away for at least"), idleMinutes, widget.NewLabel("min")),
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		launchAtLogin,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 240))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		idleCheck:     idleCheck,
		idleMinutes:   idleMinutes,
		launchAtLogin: launchAtLogin,
		saveButton:    saveButton,
		cancelButton:  cancelButton,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.idleMinutes.SetText(strconv.Itoa(settings.IdleResetMinutes))
	prefs.idleCheck.SetChecked(settings.IdleResetEnabled)
	prefs.idleCheck.OnChanged(settings.IdleResetEnabled)
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := ParsePositiveInt(prefs.idleMinutes.Text); ok {
		settings.IdleResetMinutes = minutes
	}
	settings.IdleResetEnabled = prefs.idleCheck.Checked
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// ParsePositiveInt parses a whole number of at least one.
func ParsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
