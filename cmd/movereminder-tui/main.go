package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"movereminder/internal/core/model"
	"movereminder/internal/core/phasetimer"
	"movereminder/internal/core/session"
	"movereminder/internal/platform"
	"movereminder/internal/storage"
	"movereminder/internal/tui"
)

const appName = "MoveReminder"

func main() {
	var (
		settingsPath = pflag.StringP("settings", "s", "", "Path to the settings file (.yaml or .toml)")
		tick         = pflag.Duration("tick", 250*time.Millisecond, "Countdown refresh interval")
		verbose      = pflag.BoolP("verbose", "v", false, "Write a log file next to the settings file")
	)
	pflag.Parse()

	if err := run(*settingsPath, *tick, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "movereminder-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(settingsPath string, tick time.Duration, verbose bool) error {
	path := settingsPath
	if path == "" {
		var err error
		path, err = storage.DefaultPath(appName)
		if err != nil {
			return fmt.Errorf("settings path: %w", err)
		}
	}
	settings, err := storage.LoadSettings(path)
	if err != nil {
		return err
	}

	// The terminal belongs to bubbletea, so logs go to a file or nowhere.
	logger := log.New(io.Discard, "movereminder-tui ", log.LstdFlags)
	if verbose {
		logFile, err := tea.LogToFile(path+".log", "movereminder-tui ")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
		logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := tui.NewListener(256)
	reminder := session.New(listener, session.Options{
		Timer: phasetimer.Config{
			TickInterval: tick,
			Logger:       logger,
		},
		Locker:         platform.NewScreenLocker(),
		ShareDetector:  platform.NewScreenShareDetector(),
		IdleResetAfter: settings.IdleResetAfter(),
	})
	defer reminder.Close()

	go reminder.WatchIdle(ctx, platform.NewIdleProvider(), 5*time.Second)

	terminal := tea.NewProgram(tui.New(reminder, tui.Options{
		Cycle:   settings.CycleConfig(),
		CanLock: true,
		OnStart: func(cycle model.CycleConfig) {
			if err := storage.SaveSettings(path, settings.WithCycle(cycle)); err != nil {
				logger.Printf("save settings: %v", err)
			}
		},
	}), tea.WithAltScreen())

	go listener.Forward(ctx, terminal)

	if _, err := terminal.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
