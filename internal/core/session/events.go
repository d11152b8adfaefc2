package session

import (
	"time"

	"focusflow/internal/core/timer"
)

// EventType defines the type of session event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventProgress      EventType = "progress"
	EventPhaseComplete EventType = "phase_complete"
)

// Event represents a session update for observers.
type Event struct {
	Type     EventType
	Snapshot timer.Snapshot
	Paused   bool
	At       time.Time
}
