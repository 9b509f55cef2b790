package main

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"movereminder/internal/core/model"
	"movereminder/internal/core/phasetimer"
	"movereminder/internal/core/session"
	"movereminder/internal/platform"
	"movereminder/internal/storage"
	"movereminder/internal/ui/dashboard"
	"movereminder/internal/ui/preferences"
	"movereminder/internal/ui/prompt"
	"movereminder/internal/ui/tray"
	"movereminder/resources"
)

// reminderApp glues the session to the fyne windows. Listener methods arrive
// on session goroutines and hop onto the UI goroutine with fyne.Do; every
// other method runs on the UI goroutine.
type reminderApp struct {
	app     fyne.App
	ctx     context.Context
	logger  *log.Logger
	verbose bool
	path    string
	locker  session.ScreenLocker

	session     *session.Session
	settings    model.Settings
	dashboard   *dashboard.Window
	preferences *preferences.Window
	prompt      *prompt.Window
	walk        *prompt.WalkWindow
	tray        *tray.Manager
	trayApp     desktop.App
	trayIcon    resources.TrayState
}

func (reminder *reminderApp) TimerTicked(tick session.Tick) {
	fyne.Do(func() {
		reminder.dashboard.SetTick(tick)
		if reminder.tray != nil {
			if tick.Phase == phasetimer.PhaseIdle {
				reminder.tray.SetStatus("not started")
			} else {
				reminder.tray.SetStatus(fmt.Sprintf("%s %s", tick.Phase, tick.Time))
			}
		}
		reminder.refresh()
	})
}

func (reminder *reminderApp) PromptRaised(pending session.Prompt) {
	if reminder.verbose {
		reminder.logger.Printf("%s finished, %s next for %d min", pending.Previous, pending.Next, pending.NextMinutes)
	}
	fyne.Do(func() {
		reminder.prompt.Show(pending, true)
		reminder.refresh()
	})
}

func (reminder *reminderApp) PromptCleared() {
	fyne.Do(func() {
		reminder.prompt.Hide()
		reminder.refresh()
	})
}

func (reminder *reminderApp) StatsChanged(stats session.Stats) {
	fyne.Do(func() {
		reminder.dashboard.SetStats(stats)
	})
}

func (reminder *reminderApp) WalkTicked(tick session.WalkTick) {
	fyne.Do(func() {
		reminder.walk.SetTick(tick)
	})
}

func (reminder *reminderApp) WalkFinished(completed bool) {
	fyne.Do(func() {
		reminder.walk.Hide()
		if completed {
			dialog.ShowInformation("Walk Complete", "Great job! Walk complete.", reminder.dashboard.Window())
		}
		reminder.refresh()
	})
}

func (reminder *reminderApp) start(settings model.Settings) {
	reminder.saveSettings(settings)
	reminder.session.Start(settings.CycleConfig())
	reminder.refresh()
}

func (reminder *reminderApp) pause() {
	reminder.session.Pause()
	reminder.refresh()
}

func (reminder *reminderApp) resume() {
	reminder.session.Resume()
	reminder.refresh()
}

func (reminder *reminderApp) reset() {
	reminder.session.Reset()
	reminder.refresh()
}

func (reminder *reminderApp) togglePause() {
	if reminder.session.Status().Paused {
		reminder.resume()
		return
	}
	reminder.pause()
}

func (reminder *reminderApp) walkNow(minutes int) {
	if !reminder.session.WalkNow(reminder.ctx, minutes) {
		return
	}
	reminder.walk.Show(minutes, true)
	reminder.refresh()
}

func (reminder *reminderApp) applyPreferences(updated model.Settings, autostart platform.Autostart) {
	reminder.saveSettings(updated)
	reminder.session.SetIdleResetAfter(updated.IdleResetAfter())
	if err := platform.SyncAutostart(autostart, updated.LaunchAtLogin); err != nil {
		reminder.logger.Printf("autostart: %v", err)
	}
}

// saveSettings merges updated into the current settings. The dashboard owns
// the cycle fields and the preferences window owns the rest.
func (reminder *reminderApp) saveSettings(updated model.Settings) {
	merged := reminder.settings.WithCycle(updated.CycleConfig())
	merged.IdleResetEnabled = updated.IdleResetEnabled
	merged.IdleResetMinutes = updated.IdleResetMinutes
	merged.LaunchAtLogin = updated.LaunchAtLogin
	reminder.settings = merged

	reminder.dashboard.UpdateSettings(merged)
	reminder.preferences.UpdateSettings(merged)
	if err := storage.SaveSettings(reminder.path, merged); err != nil {
		reminder.logger.Printf("save settings: %v", err)
		return
	}
	if reminder.verbose {
		reminder.logger.Printf("settings saved to %s", reminder.path)
	}
}

func (reminder *reminderApp) refresh() {
	status := reminder.session.Status()
	reminder.dashboard.SetStatus(status)
	if reminder.tray == nil {
		return
	}
	reminder.tray.SetState(status.Running, status.Paused, status.Walking)

	icon := resources.TrayActive
	switch {
	case status.Waiting:
		icon = resources.TrayAlert
	case !status.Running || status.Paused:
		icon = resources.TrayPaused
	}
	if icon != reminder.trayIcon {
		reminder.trayIcon = icon
		reminder.trayApp.SetSystemTrayIcon(resources.TrayIcon(icon))
	}
}
