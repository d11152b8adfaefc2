package main

import (
	"fmt"
	"log"
	"time"

	"focusflow/internal/core/session"
	"focusflow/internal/core/timer"
	"focusflow/internal/platform"
	"focusflow/internal/storage"
	"focusflow/internal/ui/preferences"
	"focusflow/internal/ui/timerview"
	"focusflow/internal/ui/tray"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "FocusFlow"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.focusflow.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v (using defaults)", err)
	}

	var history *storage.History
	if settings.KeepHistory {
		historyPath, pathErr := storage.DefaultHistoryPath(appName)
		if pathErr != nil {
			log.Printf("resolve history path: %v", pathErr)
		} else if history, err = storage.OpenHistory(historyPath); err != nil {
			log.Printf("open history: %v (history disabled)", err)
			history = nil
		}
	}

	focusSession := session.New(settings.CycleConfig(), session.Options{})

	timerWindow := timerview.New(fyneApp, timerview.Callbacks{
		OnTogglePause: focusSession.TogglePause,
		OnSkipBreak:   focusSession.SkipBreak,
		OnBreakNow:    focusSession.StartBreakNow,
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if saveErr := storage.SaveSettings(appName, settings); saveErr != nil {
			log.Printf("save settings: %v", saveErr)
		}
		focusSession.UpdateConfig(settings.CycleConfig())
		timerWindow.SetCyclePreview(cycleDurations(settings))
	})

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnShowTimer:   timerWindow.Show,
		OnPreferences: prefsWindow.Show,
		OnTogglePause: focusSession.TogglePause,
		OnSkipBreak:   focusSession.SkipBreak,
		OnBreakNow:    focusSession.StartBreakNow,
		OnQuit: func() {
			focusSession.Stop()
			if history != nil {
				if closeErr := history.Close(); closeErr != nil {
					log.Printf("close history: %v", closeErr)
				}
			}
			fyneApp.Quit()
		},
	})

	events := focusSession.Subscribe(10)
	go func() {
		var phaseStart time.Time
		phaseLength := 0
		for event := range events {
			switch event.Type {
			case session.EventStateChange:
				timerWindow.SetSnapshot(event.Snapshot)
				timerWindow.SetPaused(event.Paused)
				trayManager.SetPaused(event.Paused)
				trayManager.SetInBreak(event.Snapshot.Phase != timer.PhaseFocus)
				if !event.Paused {
					phaseStart = event.At
					phaseLength = event.Snapshot.Remaining
				}
			case session.EventProgress:
				timerWindow.SetSnapshot(event.Snapshot)
				trayManager.SetStatus(fmt.Sprintf("%s %s remaining",
					event.Snapshot.Phase, event.Snapshot.FormattedTime))
			case session.EventPhaseComplete:
				recordPhase(history, event, phaseStart, phaseLength)
			}
		}
	}()

	timerWindow.SetCyclePreview(cycleDurations(settings))
	timerWindow.Show()

	focusSession.Start()
	if !settings.AutoStartCycle {
		focusSession.Pause()
	}

	fyneApp.Run()
}

func recordPhase(history *storage.History, event session.Event, phaseStart time.Time, phaseLength int) {
	if history == nil {
		return
	}
	err := history.Record(storage.SessionRecord{
		Phase:     event.Snapshot.Phase,
		StartedAt: phaseStart,
		EndedAt:   event.At,
		Duration:  phaseLength,
		Completed: true,
	})
	if err != nil {
		log.Printf("record session: %v", err)
		return
	}
	if err := history.Prune(); err != nil {
		log.Printf("prune history: %v", err)
	}
}

func cycleDurations(settings preferences.Settings) []int {
	durations := []int{
		int(settings.FocusDuration / time.Second),
		int(settings.BreakDuration / time.Second),
	}
	if settings.MicroBreakEnabled {
		durations = append(durations, int(settings.MicroBreakDuration/time.Second))
	}
	return durations
}
