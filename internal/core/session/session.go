package session

import (
	"sync"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/core/timer"
)

// Options contains runtime options for Session.
type Options struct {
	// Clock overrides the time source for the countdown engine.
	// Nil means the system clock.
	Clock timer.Clock
}

// Session is a state machine that owns one countdown engine and runs
// the focus/break cycle over it. It polls the engine on the engine's
// own advised cadence and fans events out to subscribers.
type Session struct {
	mu          sync.Mutex
	config      model.CycleConfig
	clock       timer.Clock
	engine      *timer.Engine
	events      []chan Event
	stopCh      chan struct{}
	running     bool
	paused      bool
	frozen      int
	focusCarry  int
	lastElapsed int
}

// New creates a Session with the provided cycle configuration.
func New(config model.CycleConfig, options Options) *Session {
	clock := options.Clock
	if clock == nil {
		clock = timer.SystemClock()
	}
	return &Session{
		config: config,
		clock:  clock,
		engine: timer.NewWithClock(config.Focus.Seconds(), timer.PhaseFocus, clock),
		stopCh: make(chan struct{}),
	}
}

// Subscribe registers a new observer channel.
func (session *Session) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	session.mu.Lock()
	session.events = append(session.events, ch)
	session.mu.Unlock()
	return ch
}

// Start begins a fresh focus stretch and launches the polling loop.
func (session *Session) Start() {
	session.mu.Lock()
	if session.running {
		session.mu.Unlock()
		return
	}
	session.running = true
	session.paused = false
	session.stopCh = make(chan struct{})
	stopCh := session.stopCh
	session.focusCarry = 0
	session.lastElapsed = 0
	session.engine.Reset(session.config.Focus.Seconds(), timer.PhaseFocus)
	snapshot := session.engine.Update()
	session.emitLocked(Event{
		Type:     EventStateChange,
		Snapshot: snapshot,
		At:       session.clock.Now(),
	})
	session.mu.Unlock()

	go session.run(stopCh)
}

// Stop terminates the polling loop and closes observer channels.
func (session *Session) Stop() {
	session.mu.Lock()
	if !session.running {
		session.mu.Unlock()
		return
	}
	close(session.stopCh)
	session.running = false
	events := session.events
	session.events = nil
	session.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Pause freezes the countdown at its last computed value.
func (session *Session) Pause() {
	session.mu.Lock()
	if session.paused || !session.running {
		session.mu.Unlock()
		return
	}
	session.engine.Update()
	session.frozen = session.engine.Pause()
	session.paused = true
	duration := session.engine.Duration()
	snapshot := timer.Snapshot{
		Remaining:     session.frozen,
		FormattedTime: timer.FormatDuration(session.frozen),
		Progress:      timer.Progress(duration-session.frozen, duration),
		Phase:         session.engine.Phase(),
	}
	session.emitLocked(Event{
		Type:     EventStateChange,
		Snapshot: snapshot,
		Paused:   true,
		At:       session.clock.Now(),
	})
	session.mu.Unlock()
}

// Resume restarts the countdown from the frozen remainder.
func (session *Session) Resume() {
	session.mu.Lock()
	if !session.paused {
		session.mu.Unlock()
		return
	}
	session.paused = false
	session.engine.Resume(session.frozen)
	session.lastElapsed = 0
	snapshot := session.engine.Update()
	session.emitLocked(Event{
		Type:     EventStateChange,
		Snapshot: snapshot,
		At:       session.clock.Now(),
	})
	session.mu.Unlock()
}

// TogglePause pauses a running countdown or resumes a paused one, so
// UI callbacks need not track pause state themselves.
func (session *Session) TogglePause() {
	session.mu.Lock()
	paused := session.paused
	session.mu.Unlock()

	if paused {
		session.Resume()
	} else {
		session.Pause()
	}
}

// SkipBreak ends the current break and returns to focus.
func (session *Session) SkipBreak() {
	session.mu.Lock()
	phase := session.engine.Phase()
	if phase != timer.PhaseBreak && phase != timer.PhaseMicroBreak {
		session.mu.Unlock()
		return
	}
	session.enterFocusLocked()
	session.mu.Unlock()
}

// StartBreakNow interrupts the focus stretch with an immediate break.
// The next focus stretch starts over in full.
func (session *Session) StartBreakNow() {
	session.mu.Lock()
	if !session.running || session.paused || session.engine.Phase() != timer.PhaseFocus {
		session.mu.Unlock()
		return
	}
	session.focusCarry = 0
	session.enterPhaseLocked(timer.PhaseBreak, session.config.Break.Seconds())
	session.mu.Unlock()
}

// UpdateConfig replaces the cycle configuration. A running focus
// stretch restarts with the new duration.
func (session *Session) UpdateConfig(config model.CycleConfig) {
	session.mu.Lock()
	session.config = config
	if session.running && !session.paused && session.engine.Phase() == timer.PhaseFocus {
		session.focusCarry = 0
		session.enterFocusLocked()
	}
	session.mu.Unlock()
}

// run polls until stopCh closes. The channel is captured by Start so
// a restarted session never shares a loop with a stale goroutine.
func (session *Session) run(stopCh <-chan struct{}) {
	interval := session.advisedInterval()
	pollTimer := time.NewTimer(interval)
	defer pollTimer.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-pollTimer.C:
			session.tick()
			pollTimer.Reset(session.advisedInterval())
		}
	}
}

func (session *Session) advisedInterval() time.Duration {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.engine.NextUpdateInterval()
}

func (session *Session) tick() {
	session.mu.Lock()
	defer session.mu.Unlock()
	if !session.running || session.paused {
		return
	}

	snapshot := session.engine.Update()

	if snapshot.Remaining == 0 {
		session.completePhaseLocked(snapshot)
		return
	}

	if snapshot.Phase == timer.PhaseFocus && session.microBreakDueLocked(snapshot) {
		session.focusCarry = snapshot.Remaining
		session.enterPhaseLocked(timer.PhaseMicroBreak, session.config.MicroBreak.Seconds())
		return
	}

	if session.engine.ShouldRepaint(session.lastElapsed) {
		session.lastElapsed = session.engine.Duration() - snapshot.Remaining
		session.emitLocked(Event{
			Type:     EventProgress,
			Snapshot: snapshot,
			At:       session.clock.Now(),
		})
	}
}

func (session *Session) completePhaseLocked(snapshot timer.Snapshot) {
	session.emitLocked(Event{
		Type:     EventPhaseComplete,
		Snapshot: snapshot,
		At:       session.clock.Now(),
	})

	switch timer.NextPhase(snapshot.Phase, true) {
	case timer.PhaseFocus:
		session.enterFocusLocked()
	case timer.PhaseBreak:
		session.enterPhaseLocked(timer.PhaseBreak, session.config.Break.Seconds())
	case timer.PhaseMicroBreak:
		session.enterPhaseLocked(timer.PhaseMicroBreak, session.config.MicroBreak.Seconds())
	}
}

// enterFocusLocked resumes an interrupted focus stretch if one was cut
// short by a micro-break, otherwise starts a full one.
func (session *Session) enterFocusLocked() {
	duration := session.config.Focus.Seconds()
	if session.focusCarry > 0 {
		duration = session.focusCarry
		session.focusCarry = 0
	}
	session.enterPhaseLocked(timer.PhaseFocus, duration)
}

func (session *Session) enterPhaseLocked(phase timer.Phase, duration int) {
	session.engine.Reset(duration, phase)
	session.lastElapsed = 0
	snapshot := session.engine.Update()
	session.emitLocked(Event{
		Type:     EventStateChange,
		Snapshot: snapshot,
		At:       session.clock.Now(),
	})
}

func (session *Session) microBreakDueLocked(snapshot timer.Snapshot) bool {
	if !session.config.MicroBreak.Enabled || session.config.MicroBreakEvery <= 0 {
		return false
	}
	elapsed := session.engine.Duration() - snapshot.Remaining
	return elapsed >= int(session.config.MicroBreakEvery/time.Second)
}

func (session *Session) emitLocked(event Event) {
	events := append([]chan Event(nil), session.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
