// Package dashboard is the main window: cycle settings, the live countdown,
// the control buttons and today's activity.
package dashboard

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"movereminder/internal/core/model"
	"movereminder/internal/core/phasetimer"
	"movereminder/internal/core/session"
	"movereminder/internal/ui/preferences"
)

const readyText = "Ready to start"

// Callbacks defines dashboard action handlers.
type Callbacks struct {
	// OnStart receives the settings as edited in the form.
	OnStart       func(model.Settings)
	OnPause       func()
	OnResume      func()
	OnReset       func()
	OnWalk        func(minutes int)
	OnPreferences func()
}

// Window is the dashboard. Its methods must run on the UI goroutine.
type Window struct {
	window    fyne.Window
	settings  model.Settings
	callbacks Callbacks

	sitEntry     *widget.Entry
	standEntry   *widget.Entry
	walkEntry    *widget.Entry
	includeStand *widget.Check
	includeWalk  *widget.Check

	phaseLabel *widget.Label
	timeLabel  *widget.Label
	progress   *widget.ProgressBar

	startButton  *widget.Button
	pauseButton  *widget.Button
	resumeButton *widget.Button
	resetButton  *widget.Button
	walkButton   *widget.Button

	sitStat   *widget.Label
	standStat *widget.Label
	walkStat  *widget.Label
	stats     session.Stats
	chart     *Chart
}

// New creates the dashboard window.
func New(app fyne.App, settings model.Settings, callbacks Callbacks) *Window {
	window := app.NewWindow("Movement Reminder")

	dash := &Window{
		window:       window,
		callbacks:    callbacks,
		sitEntry:     widget.NewEntry(),
		standEntry:   widget.NewEntry(),
		walkEntry:    widget.NewEntry(),
		includeStand: widget.NewCheck("Include", nil),
		includeWalk:  widget.NewCheck("Include", nil),
		phaseLabel:   widget.NewLabelWithStyle(readyText, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		timeLabel:    widget.NewLabelWithStyle(phasetimer.FormatRemaining(0), fyne.TextAlignCenter, fyne.TextStyle{Bold: true, Monospace: true}),
		progress:     widget.NewProgressBar(),
		sitStat:      widget.NewLabel("0 min"),
		standStat:    widget.NewLabel("0 min"),
		walkStat:     widget.NewLabel("0 min"),
		chart:        NewChart(),
	}
	dash.progress.TextFormatter = func() string { return "" }

	dash.startButton = widget.NewButton("Start", dash.handleStart)
	dash.startButton.Importance = widget.HighImportance
	dash.pauseButton = widget.NewButton("Pause", invoke(callbacks.OnPause))
	dash.resumeButton = widget.NewButton("Resume", invoke(callbacks.OnResume))
	dash.resetButton = widget.NewButton("Reset", invoke(callbacks.OnReset))
	dash.walkButton = widget.NewButton("Walk", dash.handleWalk)

	configuration := container.NewVBox(
		widget.NewLabelWithStyle("Configuration", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		durationRow("Sit", dash.sitEntry, nil),
		durationRow("Stand", dash.standEntry, dash.includeStand),
		durationRow("Walk", dash.walkEntry, dash.includeWalk),
	)

	timer := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		dash.phaseLabel,
		dash.timeLabel,
		dash.progress,
		container.NewGridWithColumns(5, dash.startButton, dash.pauseButton, dash.resumeButton, dash.resetButton, dash.walkButton),
	)

	activity := container.NewVBox(
		widget.NewLabelWithStyle("Today's Activity", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.New(layout.NewFormLayout(),
			widget.NewLabel("Sitting"), dash.sitStat,
			widget.NewLabel("Standing"), dash.standStat,
			widget.NewLabel("Walking"), dash.walkStat,
		),
		widget.NewButton("View Activity Chart", dash.ShowChart),
		widget.NewButton("Preferences", invoke(callbacks.OnPreferences)),
	)

	window.SetContent(container.NewPadded(container.NewGridWithColumns(3, configuration, timer, activity)))
	window.Resize(fyne.NewSize(900, 360))

	dash.UpdateSettings(settings)
	dash.SetStatus(session.Status{Phase: phasetimer.PhaseIdle})
	return dash
}

// Window exposes the underlying fyne window.
func (dash *Window) Window() fyne.Window {
	return dash.window
}

// Show displays the dashboard.
func (dash *Window) Show() {
	dash.window.Show()
	dash.window.RequestFocus()
}

// UpdateSettings replaces the form values.
func (dash *Window) UpdateSettings(settings model.Settings) {
	dash.settings = settings
	dash.sitEntry.SetText(strconv.Itoa(settings.SitMinutes))
	dash.standEntry.SetText(strconv.Itoa(settings.StandMinutes))
	dash.walkEntry.SetText(strconv.Itoa(settings.WalkMinutes))
	dash.includeStand.SetChecked(settings.IncludeStanding)
	dash.includeWalk.SetChecked(settings.IncludeWalking)
}

// Settings returns the form values applied over the last known settings.
// Entries that do not hold a positive number keep their previous value.
func (dash *Window) Settings() model.Settings {
	settings := dash.settings
	if minutes, ok := preferences.ParsePositiveInt(dash.sitEntry.Text); ok {
		settings.SitMinutes = minutes
	}
	if minutes, ok := preferences.ParsePositiveInt(dash.standEntry.Text); ok {
		settings.StandMinutes = minutes
	}
	if minutes, ok := preferences.ParsePositiveInt(dash.walkEntry.Text); ok {
		settings.WalkMinutes = minutes
	}
	settings.IncludeStanding = dash.includeStand.Checked
	settings.IncludeWalking = dash.includeWalk.Checked
	return settings
}

// SetTick shows a countdown report.
func (dash *Window) SetTick(tick session.Tick) {
	if tick.Phase == phasetimer.PhaseIdle {
		dash.phaseLabel.SetText(readyText)
	} else {
		dash.phaseLabel.SetText(string(tick.Phase))
	}
	dash.timeLabel.SetText(tick.Time)
	dash.progress.SetValue(tick.Progress)
}

// SetStatus enables the buttons that apply to status.
func (dash *Window) SetStatus(status session.Status) {
	switch {
	case !status.Running:
		setEnabled(dash.startButton, true)
		setEnabled(dash.pauseButton, false)
		setEnabled(dash.resumeButton, false)
		setEnabled(dash.resetButton, false)
	case status.Paused:
		setEnabled(dash.startButton, false)
		setEnabled(dash.pauseButton, false)
		setEnabled(dash.resumeButton, !status.Waiting && !status.Walking)
		setEnabled(dash.resetButton, true)
	default:
		setEnabled(dash.startButton, false)
		setEnabled(dash.pauseButton, true)
		setEnabled(dash.resumeButton, false)
		setEnabled(dash.resetButton, true)
	}
	setEnabled(dash.walkButton, !status.Walking)
}

// SetStats shows today's totals.
func (dash *Window) SetStats(stats session.Stats) {
	dash.stats = stats
	dash.sitStat.SetText(fmt.Sprintf("%d min", stats.SitMinutes))
	dash.standStat.SetText(fmt.Sprintf("%d min", stats.StandMinutes))
	dash.walkStat.SetText(fmt.Sprintf("%d min", stats.WalkMinutes))
	dash.chart.SetStats(stats)
}

// ShowChart opens today's activity chart in a dialog.
func (dash *Window) ShowChart() {
	dash.chart.Show(dash.window)
}

func (dash *Window) handleStart() {
	settings := dash.Settings()
	dash.UpdateSettings(settings)
	if dash.callbacks.OnStart != nil {
		dash.callbacks.OnStart(settings)
	}
}

func (dash *Window) handleWalk() {
	if dash.callbacks.OnWalk != nil {
		dash.callbacks.OnWalk(dash.Settings().WalkMinutes)
	}
}

func durationRow(label string, entry *widget.Entry, include *widget.Check) fyne.CanvasObject {
	row := container.NewHBox(widget.NewLabel(label), entry, widget.NewLabel("min"))
	if include != nil {
		row.Add(include)
	}
	return row
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
	} else {
		button.Disable()
	}
}

func invoke(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}
