package timer

import "time"

// Snapshot is the immutable result of one Update call.
type Snapshot struct {
	Remaining     int
	FormattedTime string
	Progress      float64
	Phase         Phase
}

// Engine owns the countdown state for a single visible timer. It has
// exactly one logical owner and does no locking of its own; callers
// that share an Engine across goroutines must serialize access.
//
// Durations are whole seconds and must be non-negative; negative input
// is a caller bug to be rejected before it reaches the engine.
type Engine struct {
	clock     Clock
	anchor    time.Time
	duration  int
	remaining int
	phase     Phase
}

// New creates an engine anchored at the current instant. A zero
// duration is legal and yields an immediately expired countdown.
func New(duration int, phase Phase) *Engine {
	return NewWithClock(duration, phase, systemClock{})
}

// NewWithClock creates an engine reading time from the provided clock.
func NewWithClock(duration int, phase Phase, clock Clock) *Engine {
	return &Engine{
		clock:     clock,
		anchor:    clock.Now(),
		duration:  duration,
		remaining: duration,
		phase:     phase,
	}
}

// Update recomputes remaining time from the anchor and returns a fresh
// snapshot. Remaining saturates at zero once elapsed time exceeds the
// configured duration. Progress is elapsed/duration and is not clamped
// above 100; callers that poll past expiry see values over 100 while
// Remaining stays at zero. Update never changes the phase.
func (engine *Engine) Update() Snapshot {
	elapsed := engine.elapsedSeconds()
	engine.remaining = saturatingSub(engine.duration, elapsed)

	return Snapshot{
		Remaining:     engine.remaining,
		FormattedTime: FormatDuration(engine.remaining),
		Progress:      Progress(elapsed, engine.duration),
		Phase:         engine.phase,
	}
}

// Reset re-anchors the countdown with a new duration and phase.
func (engine *Engine) Reset(duration int, phase Phase) {
	engine.anchor = engine.clock.Now()
	engine.duration = duration
	engine.remaining = duration
	engine.phase = phase
}

// Pause returns the last cached remaining value without reading the
// clock, freezing the display at the last Update result. The anchor is
// untouched; a caller that wants a real pause follows up with Resume.
func (engine *Engine) Pause() int {
	return engine.remaining
}

// Resume starts a fresh countdown of the given length from now,
// keeping the current phase.
func (engine *Engine) Resume(remaining int) {
	engine.anchor = engine.clock.Now()
	engine.duration = remaining
	engine.remaining = remaining
}

// Phase returns the current phase.
func (engine *Engine) Phase() Phase {
	return engine.phase
}

// Duration returns the configured length of the current phase.
func (engine *Engine) Duration() int {
	return engine.duration
}

// NextUpdateInterval advises how often the owner should poll Update.
// Refresh only needs to be fine-grained as the countdown nears zero.
func (engine *Engine) NextUpdateInterval() time.Duration {
	switch {
	case engine.remaining <= 60:
		return 100 * time.Millisecond
	case engine.remaining <= 300:
		return 500 * time.Millisecond
	case engine.remaining <= 1800:
		return time.Second
	default:
		return 2 * time.Second
	}
}

// ShouldRepaint reports whether the whole-second elapsed value has
// moved past the caller's last observed value, letting a redraw loop
// skip frames where the displayed time cannot have changed.
func (engine *Engine) ShouldRepaint(lastElapsed int) bool {
	return engine.elapsedSeconds() != lastElapsed
}

// BatchProgress maps Progress over the given times against the current
// configured duration, preserving order and length.
func (engine *Engine) BatchProgress(times []int) []float64 {
	results := make([]float64, len(times))
	for i, t := range times {
		results[i] = Progress(t, engine.duration)
	}
	return results
}

func (engine *Engine) elapsedSeconds() int {
	return int(engine.clock.Now().Sub(engine.anchor) / time.Second)
}

func saturatingSub(total, elapsed int) int {
	if elapsed >= total {
		return 0
	}
	return total - elapsed
}
