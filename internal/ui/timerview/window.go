package timerview

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"focusflow/internal/core/timer"
)

// Callbacks defines timer window action handlers.
type Callbacks struct {
	OnTogglePause func()
	OnSkipBreak   func()
	OnBreakNow    func()
}

// Window is the main countdown display.
type Window struct {
	window      fyne.Window
	timeText    *canvas.Text
	phaseLabel  *widget.Label
	progressBar *widget.ProgressBar
	previewText *widget.Label
	pauseButton *widget.Button
	skipButton  *widget.Button
	breakButton *widget.Button
	callbacks   Callbacks
}

// New creates the countdown window.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("FocusFlow")

	timeText := canvas.NewText("25:00", color.White)
	timeText.TextSize = 64
	timeText.Alignment = fyne.TextAlignCenter
	timeText.TextStyle = fyne.TextStyle{Monospace: true}

	phaseLabel := widget.NewLabelWithStyle("focus", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	progressBar := widget.NewProgressBar()
	previewText := widget.NewLabel("")
	previewText.Alignment = fyne.TextAlignCenter

	view := &Window{
		window:      window,
		timeText:    timeText,
		phaseLabel:  phaseLabel,
		progressBar: progressBar,
		previewText: previewText,
		callbacks:   callbacks,
	}

	view.pauseButton = widget.NewButton("Pause", func() {
		if view.callbacks.OnTogglePause != nil {
			view.callbacks.OnTogglePause()
		}
	})
	view.skipButton = widget.NewButton("Skip break", func() {
		if view.callbacks.OnSkipBreak != nil {
			view.callbacks.OnSkipBreak()
		}
	})
	view.skipButton.Disable()
	view.breakButton = widget.NewButton("Break now", func() {
		if view.callbacks.OnBreakNow != nil {
			view.callbacks.OnBreakNow()
		}
	})

	buttons := container.NewHBox(view.pauseButton, view.breakButton, view.skipButton)
	window.SetContent(container.NewVBox(
		phaseLabel,
		timeText,
		progressBar,
		previewText,
		container.NewCenter(buttons),
	))
	window.Resize(fyne.NewSize(320, 280))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return view
}

// Show displays the countdown window.
func (view *Window) Show() {
	view.window.Show()
}

// SetSnapshot applies a countdown snapshot to the display.
func (view *Window) SetSnapshot(snapshot timer.Snapshot) {
	fyne.Do(func() {
		view.timeText.Text = snapshot.FormattedTime
		view.timeText.Refresh()
		view.phaseLabel.SetText(snapshot.Phase.String())

		progress := snapshot.Progress / 100
		if progress > 1 {
			progress = 1
		}
		view.progressBar.SetValue(progress)

		inBreak := snapshot.Phase == timer.PhaseBreak || snapshot.Phase == timer.PhaseMicroBreak
		if inBreak {
			view.skipButton.Enable()
			view.breakButton.Disable()
		} else {
			view.skipButton.Disable()
			view.breakButton.Enable()
		}
	})
}

// SetPaused flips the pause button label.
func (view *Window) SetPaused(paused bool) {
	fyne.Do(func() {
		if paused {
			view.pauseButton.SetText("Resume")
		} else {
			view.pauseButton.SetText("Pause")
		}
	})
}

// SetCyclePreview renders upcoming phase lengths as a staggered batch
// preview, e.g. "25:00 / 05:00 / 00:20".
func (view *Window) SetCyclePreview(durations []int) {
	snapshots := timer.ComputeMultipleTimers(durations)
	parts := make([]string, len(snapshots))
	for i, snapshot := range snapshots {
		parts[i] = snapshot.FormattedTime
	}
	preview := strings.Join(parts, " / ")
	fyne.Do(func() {
		view.previewText.SetText(preview)
	})
}
