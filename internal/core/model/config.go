package model

import "time"

// PhaseConfig defines the length of one countdown phase.
type PhaseConfig struct {
	Duration time.Duration
	Enabled  bool
}

// CycleConfig contains runtime settings for the focus/break cycle.
// MicroBreakEvery is how much focus time passes between micro-breaks;
// a full focus stretch still ends in a regular break.
type CycleConfig struct {
	Focus      PhaseConfig
	Break      PhaseConfig
	MicroBreak PhaseConfig

	MicroBreakEvery time.Duration
}

// Seconds converts the phase duration to the whole seconds the timer
// engine works in.
func (config PhaseConfig) Seconds() int {
	return int(config.Duration / time.Second)
}
