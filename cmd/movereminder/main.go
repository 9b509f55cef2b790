package main

import (
	"context"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/pflag"

	"movereminder/internal/core/model"
	"movereminder/internal/core/phasetimer"
	"movereminder/internal/core/session"
	"movereminder/internal/platform"
	"movereminder/internal/storage"
	"movereminder/internal/ui/animation"
	"movereminder/internal/ui/dashboard"
	"movereminder/internal/ui/preferences"
	"movereminder/internal/ui/prompt"
	"movereminder/internal/ui/tray"
	"movereminder/resources"
)

const (
	appName           = "MoveReminder"
	idleCheckInterval = 5 * time.Second
	walkLockDelay     = 500 * time.Millisecond
)

func main() {
	var (
		settingsPath = pflag.StringP("settings", "s", "", "Path to the settings file (.yaml or .toml)")
		tick         = pflag.Duration("tick", 250*time.Millisecond, "Countdown refresh interval")
		verbose      = pflag.BoolP("verbose", "v", false, "Log phase changes and settings updates")
	)
	pflag.Parse()

	logger := log.New(os.Stderr, "movereminder ", log.LstdFlags)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	path := *settingsPath
	if path == "" {
		path, err = storage.DefaultPath(appName)
		if err != nil {
			logger.Fatalf("settings path: %v", err)
		}
	}
	settings, err := storage.LoadSettings(path)
	if err != nil {
		logger.Printf("load settings: %v", err)
	}
	if *verbose {
		logger.Printf("settings: %s", path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fyneApp := app.NewWithID("com.movereminder.app")
	fyneApp.SetIcon(resources.AppIcon())

	locker := platform.NewScreenLocker()
	autostart := platform.NewAutostart(appName)

	reminder := &reminderApp{
		app:      fyneApp,
		logger:   logger,
		verbose:  *verbose,
		path:     path,
		settings: settings,
		locker:   locker,
		ctx:      ctx,
	}

	reminder.session = session.New(reminder, session.Options{
		Timer: phasetimer.Config{
			TickInterval: *tick,
			Logger:       logger,
		},
		Locker:         locker,
		ShareDetector:  platform.NewScreenShareDetector(),
		IdleResetAfter: settings.IdleResetAfter(),
	})
	defer reminder.session.Close()

	reminder.dashboard = dashboard.New(fyneApp, settings, dashboard.Callbacks{
		OnStart:       reminder.start,
		OnPause:       reminder.pause,
		OnResume:      reminder.resume,
		OnReset:       reminder.reset,
		OnWalk:        reminder.walkNow,
		OnPreferences: func() { reminder.preferences.Show() },
	})

	reminder.preferences = preferences.New(fyneApp, settings, func(updated model.Settings) {
		reminder.applyPreferences(updated, autostart)
	})

	reminder.prompt = prompt.New(fyneApp, prompt.Callbacks{
		OnAccept: func() { reminder.session.Accept() },
		OnSkip:   func() { reminder.session.Skip() },
		OnLock:   func() { reminder.session.LockAndAccept() },
	})
	reminder.prompt.SetEngine(animation.New(animation.DefaultConfig(), reminder.prompt.SetFrame))

	reminder.walk = prompt.NewWalk(fyneApp, prompt.WalkCallbacks{
		OnCancel: func() { reminder.session.CancelWalk() },
		OnLock:   reminder.lockDuringWalk,
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		reminder.trayApp = desktopApp
		reminder.tray = tray.New(desktopApp, tray.Callbacks{
			OnShowDashboard: reminder.dashboard.Show,
			OnTogglePause:   reminder.togglePause,
			OnWalkNow:       func() { reminder.walkNow(reminder.settings.WalkMinutes) },
			OnPreferences:   func() { reminder.preferences.Show() },
			OnQuit:          reminder.quit,
		})
		desktopApp.SetSystemTrayIcon(resources.TrayIcon(resources.TrayPaused))
		reminder.dashboard.Window().SetCloseIntercept(reminder.dashboard.Window().Hide)
	} else {
		logger.Printf("system tray unsupported on this platform")
		reminder.dashboard.Window().SetMaster()
	}

	if err := platform.SyncAutostart(autostart, settings.LaunchAtLogin); err != nil {
		logger.Printf("autostart: %v", err)
	}

	go reminder.session.WatchIdle(ctx, platform.NewIdleProvider(), idleCheckInterval)

	reminder.dashboard.Show()
	fyneApp.Run()
}

func (reminder *reminderApp) quit() {
	reminder.session.Close()
	reminder.app.Quit()
}

func (reminder *reminderApp) lockDuringWalk() {
	reminder.walk.LockRequested()
	time.AfterFunc(walkLockDelay, func() {
		if err := reminder.locker.LockScreen(); err != nil {
			reminder.logger.Printf("lock screen: %v", err)
		}
	})
}
