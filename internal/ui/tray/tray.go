package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowTimer   func()
	OnPreferences func()
	OnTogglePause func()
	OnSkipBreak   func()
	OnBreakNow    func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	skipItem    *fyne.MenuItem
	breakItem   *fyne.MenuItem
	callbacks   Callbacks
	paused      bool
	inBreak     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	manager.skipItem = fyne.NewMenuItem("Skip break", func() {
		if manager.callbacks.OnSkipBreak != nil {
			manager.callbacks.OnSkipBreak()
		}
	})
	manager.skipItem.Disabled = true

	manager.breakItem = fyne.NewMenuItem("Take a break now", func() {
		if manager.callbacks.OnBreakNow != nil {
			manager.callbacks.OnBreakNow()
		}
	})

	app.SetSystemTrayMenu(manager.buildMenu())
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshStatus()
}

// SetInBreak toggles break-related menu items.
func (manager *Manager) SetInBreak(inBreak bool) {
	manager.inBreak = inBreak
	manager.skipItem.Disabled = !inBreak
	manager.breakItem.Disabled = inBreak
	manager.refreshMenu()
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.buildMenu())
	}
}

func (manager *Manager) buildMenu() *fyne.Menu {
	return fyne.NewMenu("FocusFlow",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShowTimer != nil {
				manager.callbacks.OnShowTimer()
			}
		}),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		manager.breakItem,
		manager.pauseItem,
		manager.skipItem,
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
}
