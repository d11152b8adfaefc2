package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	focusDur    *widget.Entry
	breakDur    *widget.Entry
	microDur    *widget.Entry
	microEvery  *widget.Entry
	microCheck  *widget.Check
	autoStart   *widget.Check
	keepHistory *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("FocusFlow Settings")

	focusDur := widget.NewEntry()
	breakDur := widget.NewEntry()
	microDur := widget.NewEntry()
	microEvery := widget.NewEntry()

	focusDur.SetText(fmt.Sprintf("%d", int(settings.FocusDuration.Minutes())))
	breakDur.SetText(fmt.Sprintf("%d", int(settings.BreakDuration.Minutes())))
	microDur.SetText(fmt.Sprintf("%d", int(settings.MicroBreakDuration.Seconds())))
	microEvery.SetText(fmt.Sprintf("%d", int(settings.MicroBreakEvery.Minutes())))

	microCheck := widget.NewCheck("Enable micro-breaks", nil)
	microCheck.SetChecked(settings.MicroBreakEnabled)

	autoStart := widget.NewCheck("Start focus cycle on launch", nil)
	autoStart.SetChecked(settings.AutoStartCycle)

	keepHistory := widget.NewCheck("Keep session history", nil)
	keepHistory.SetChecked(settings.KeepHistory)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Cycle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus length"), focusDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break length"), breakDur, widget.NewLabel("min")),
		microCheck,
		container.NewHBox(widget.NewLabel("Micro-break length"), microDur, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Micro-break every"), microEvery, widget.NewLabel("min")),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		autoStart,
		keepHistory,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	prefs := &Window{
		window:      window,
		settings:    settings,
		onSave:      onSave,
		focusDur:    focusDur,
		breakDur:    breakDur,
		microDur:    microDur,
		microEvery:  microEvery,
		microCheck:  microCheck,
		autoStart:   autoStart,
		keepHistory: keepHistory,
	}

	saveButton.OnTapped = func() {
		prefs.applyEntries()
		if prefs.onSave != nil {
			prefs.onSave(prefs.settings)
		}
		window.Hide()
	}
	cancelButton.OnTapped = func() {
		window.Hide()
	}

	window.SetContent(container.NewVBox(form, buttons))
	window.SetCloseIntercept(func() {
		window.Hide()
	})
	window.Resize(fyne.NewSize(360, 320))

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

func (prefs *Window) applyEntries() {
	if minutes, err := strconv.Atoi(prefs.focusDur.Text); err == nil && minutes > 0 {
		prefs.settings.FocusDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, err := strconv.Atoi(prefs.breakDur.Text); err == nil && minutes > 0 {
		prefs.settings.BreakDuration = time.Duration(minutes) * time.Minute
	}
	if seconds, err := strconv.Atoi(prefs.microDur.Text); err == nil && seconds > 0 {
		prefs.settings.MicroBreakDuration = time.Duration(seconds) * time.Second
	}
	if minutes, err := strconv.Atoi(prefs.microEvery.Text); err == nil && minutes > 0 {
		prefs.settings.MicroBreakEvery = time.Duration(minutes) * time.Minute
	}
	prefs.settings.MicroBreakEnabled = prefs.microCheck.Checked
	prefs.settings.AutoStartCycle = prefs.autoStart.Checked
	prefs.settings.KeepHistory = prefs.keepHistory.Checked
}
