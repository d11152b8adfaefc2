package timer

// Phase represents the current mode of the countdown cycle.
type Phase int

const (
	PhaseFocus Phase = iota
	PhaseBreak
	PhaseMicroBreak
)

// String returns a stable lowercase name for the phase.
func (phase Phase) String() string {
	switch phase {
	case PhaseFocus:
		return "focus"
	case PhaseBreak:
		return "break"
	case PhaseMicroBreak:
		return "micro_break"
	}
	return "unknown"
}

// NextPhase applies the cycle transition rule: a completed focus stretch
// leads into a break, and any completed break leads back to focus. When
// completed is false the phase is unchanged.
func NextPhase(current Phase, completed bool) Phase {
	if !completed {
		return current
	}
	switch current {
	case PhaseFocus:
		return PhaseBreak
	case PhaseBreak:
		return PhaseFocus
	case PhaseMicroBreak:
		return PhaseFocus
	}
	return current
}
