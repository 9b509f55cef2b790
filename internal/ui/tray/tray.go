package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

const menuTitle = "MoveReminder"

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowDashboard func()
	OnTogglePause   func()
	OnWalkNow       func()
	OnPreferences   func()
	OnQuit          func()
}

// Manager handles system tray state. Its methods must run on the UI goroutine.
type Manager struct {
	host        MenuHost
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	walkItem    *fyne.MenuItem
	running     bool
	paused      bool
	walking     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:        host,
		callbacks:   callbacks,
		statusLabel: "not started",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(manager.callbacks.OnTogglePause))
	manager.walkItem = fyne.NewMenuItem("Walk now", invoke(manager.callbacks.OnWalkNow))

	manager.refreshStatus()
	manager.refreshItems()
	return manager
}

// SetStatus updates the status line, e.g. "Sitting 12:34".
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetState updates pause handling for the cycle state.
func (manager *Manager) SetState(running, paused, walking bool) {
	manager.running = running
	manager.paused = paused
	manager.walking = walking
	manager.walkItem.Disabled = walking
	manager.refreshStatus()
	manager.refreshItems()
}

// Menu returns the menu currently installed in the tray.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show dashboard", invoke(manager.callbacks.OnShowDashboard)),
		manager.pauseItem,
		manager.walkItem,
		fyne.NewMenuItem("Preferences", invoke(manager.callbacks.OnPreferences)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", invoke(manager.callbacks.OnQuit)),
	)
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshItems() {
	manager.pauseItem.Disabled = !manager.running || manager.walking
	if manager.paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil && manager.pauseItem != nil && manager.walkItem != nil {
		manager.host.SetSystemTrayMenu(manager.Menu())
	}
}

func invoke(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}
