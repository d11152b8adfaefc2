package preferences

import (
	"time"

	"focusflow/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	FocusDuration      time.Duration
	BreakDuration      time.Duration
	MicroBreakDuration time.Duration
	MicroBreakEvery    time.Duration
	MicroBreakEnabled  bool

	AutoStartCycle bool
	KeepHistory    bool
}

// DefaultSettings returns default settings for FocusFlow.
func DefaultSettings() Settings {
	return Settings{
		FocusDuration:      25 * time.Minute,
		BreakDuration:      5 * time.Minute,
		MicroBreakDuration: 20 * time.Second,
		MicroBreakEvery:    10 * time.Minute,
		MicroBreakEnabled:  false,
		AutoStartCycle:     true,
		KeepHistory:        true,
	}
}

// CycleConfig converts settings to the session's cycle configuration.
func (settings Settings) CycleConfig() model.CycleConfig {
	return model.CycleConfig{
		Focus: model.PhaseConfig{
			Duration: settings.FocusDuration,
			Enabled:  true,
		},
		Break: model.PhaseConfig{
			Duration: settings.BreakDuration,
			Enabled:  true,
		},
		MicroBreak: model.PhaseConfig{
			Duration: settings.MicroBreakDuration,
			Enabled:  settings.MicroBreakEnabled,
		},
		MicroBreakEvery: settings.MicroBreakEvery,
	}
}
