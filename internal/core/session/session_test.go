package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/core/model"
	"focusflow/internal/core/timer"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(d)
	clock.mu.Unlock()
}

func testConfig() model.CycleConfig {
	return model.CycleConfig{
		Focus:      model.PhaseConfig{Duration: 25 * time.Minute, Enabled: true},
		Break:      model.PhaseConfig{Duration: 5 * time.Minute, Enabled: true},
		MicroBreak: model.PhaseConfig{Duration: 30 * time.Second},
	}
}

// newTestSession returns a session in running state without the
// background polling goroutine, so ticks are driven explicitly.
func newTestSession(config model.CycleConfig, clock *fakeClock) *Session {
	s := New(config, Options{Clock: clock})
	s.running = true
	return s
}

func drainEvents(ch <-chan Event) []Event {
	var events []Event
	for {
		select {
		case event := <-ch:
			events = append(events, event)
		default:
			return events
		}
	}
}

func TestStartEmitsFocusStateChange(t *testing.T) {
	clock := newFakeClock()
	s := New(testConfig(), Options{Clock: clock})
	events := s.Subscribe(5)

	s.Start()
	defer s.Stop()

	event := <-events
	assert.Equal(t, EventStateChange, event.Type)
	assert.Equal(t, timer.PhaseFocus, event.Snapshot.Phase)
	assert.Equal(t, 1500, event.Snapshot.Remaining)
	assert.Equal(t, "25:00", event.Snapshot.FormattedTime)
}

func TestTickEmitsProgressOncePerSecond(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(testConfig(), clock)
	events := s.Subscribe(10)

	// Two ticks within the same whole second produce one event.
	clock.Advance(1100 * time.Millisecond)
	s.tick()
	s.tick()

	got := drainEvents(events)
	require.Len(t, got, 1)
	assert.Equal(t, EventProgress, got[0].Type)
	assert.Equal(t, 1499, got[0].Snapshot.Remaining)
}

func TestFocusCompletionEntersBreak(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(testConfig(), clock)
	events := s.Subscribe(10)

	clock.Advance(25 * time.Minute)
	s.tick()

	got := drainEvents(events)
	require.Len(t, got, 2)
	assert.Equal(t, EventPhaseComplete, got[0].Type)
	assert.Equal(t, timer.PhaseFocus, got[0].Snapshot.Phase)
	assert.Equal(t, 0, got[0].Snapshot.Remaining)

	assert.Equal(t, EventStateChange, got[1].Type)
	assert.Equal(t, timer.PhaseBreak, got[1].Snapshot.Phase)
	assert.Equal(t, 300, got[1].Snapshot.Remaining)
}

func TestBreakCompletionReturnsToFocus(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(testConfig(), clock)

	clock.Advance(25 * time.Minute)
	s.tick()
	events := s.Subscribe(10)

	clock.Advance(5 * time.Minute)
	s.tick()

	got := drainEvents(events)
	require.Len(t, got, 2)
	assert.Equal(t, EventPhaseComplete, got[0].Type)
	assert.Equal(t, timer.PhaseBreak, got[0].Snapshot.Phase)
	assert.Equal(t, timer.PhaseFocus, got[1].Snapshot.Phase)
	assert.Equal(t, 1500, got[1].Snapshot.Remaining)
}

func TestMicroBreakInterruptsAndResumesFocus(t *testing.T) {
	clock := newFakeClock()
	config := testConfig()
	config.MicroBreak.Enabled = true
	config.MicroBreakEvery = 10 * time.Minute
	s := newTestSession(config, clock)
	events := s.Subscribe(10)

	clock.Advance(10 * time.Minute)
	s.tick()

	got := drainEvents(events)
	require.Len(t, got, 1)
	assert.Equal(t, EventStateChange, got[0].Type)
	assert.Equal(t, timer.PhaseMicroBreak, got[0].Snapshot.Phase)
	assert.Equal(t, 30, got[0].Snapshot.Remaining)

	// Micro-break runs out; focus resumes with the interrupted remainder.
	clock.Advance(30 * time.Second)
	s.tick()

	got = drainEvents(events)
	require.Len(t, got, 2)
	assert.Equal(t, EventPhaseComplete, got[0].Type)
	assert.Equal(t, timer.PhaseMicroBreak, got[0].Snapshot.Phase)
	assert.Equal(t, timer.PhaseFocus, got[1].Snapshot.Phase)
	assert.Equal(t, 900, got[1].Snapshot.Remaining)
}

func TestMicroBreakDisabledNeverFires(t *testing.T) {
	clock := newFakeClock()
	config := testConfig()
	config.MicroBreakEvery = 10 * time.Minute // enabled flag off
	s := newTestSession(config, clock)

	clock.Advance(20 * time.Minute)
	s.tick()
	assert.Equal(t, timer.PhaseFocus, s.engine.Phase())
}

func TestPauseFreezesAndResumeContinues(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(testConfig(), clock)
	events := s.Subscribe(10)

	clock.Advance(5 * time.Minute)
	s.tick()
	drainEvents(events)

	s.Pause()
	got := drainEvents(events)
	require.Len(t, got, 1)
	assert.True(t, got[0].Paused)
	assert.Equal(t, 1200, got[0].Snapshot.Remaining)
	assert.InDelta(t, 20.0, got[0].Snapshot.Progress, 1e-9)

	// Paused ticks are silent even as time passes.
	clock.Advance(time.Hour)
	s.tick()
	assert.Empty(t, drainEvents(events))

	s.Resume()
	got = drainEvents(events)
	require.Len(t, got, 1)
	assert.False(t, got[0].Paused)
	assert.Equal(t, 1200, got[0].Snapshot.Remaining)

	clock.Advance(10 * time.Minute)
	s.tick()
	got = drainEvents(events)
	require.Len(t, got, 1)
	assert.Equal(t, 600, got[0].Snapshot.Remaining)
}

func TestPauseIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(testConfig(), clock)
	events := s.Subscribe(10)

	s.Pause()
	s.Pause()
	assert.Len(t, drainEvents(events), 1)
}

func TestSkipBreakReturnsToFocus(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(testConfig(), clock)

	clock.Advance(25 * time.Minute)
	s.tick()
	require.Equal(t, timer.PhaseBreak, s.engine.Phase())

	events := s.Subscribe(10)
	s.SkipBreak()

	got := drainEvents(events)
	require.Len(t, got, 1)
	assert.Equal(t, timer.PhaseFocus, got[0].Snapshot.Phase)
	assert.Equal(t, 1500, got[0].Snapshot.Remaining)

	// Skipping while already focused is a no-op.
	s.SkipBreak()
	assert.Empty(t, drainEvents(events))
}

func TestStartBreakNow(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(testConfig(), clock)
	events := s.Subscribe(10)

	clock.Advance(3 * time.Minute)
	s.tick()
	drainEvents(events)

	s.StartBreakNow()
	got := drainEvents(events)
	require.Len(t, got, 1)
	assert.Equal(t, timer.PhaseBreak, got[0].Snapshot.Phase)
	assert.Equal(t, 300, got[0].Snapshot.Remaining)

	// The interrupted stretch is not carried over.
	clock.Advance(5 * time.Minute)
	s.tick()
	got = drainEvents(events)
	require.Len(t, got, 2)
	assert.Equal(t, timer.PhaseFocus, got[1].Snapshot.Phase)
	assert.Equal(t, 1500, got[1].Snapshot.Remaining)
}

func TestUpdateConfigRestartsFocus(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(testConfig(), clock)
	events := s.Subscribe(10)

	config := testConfig()
	config.Focus.Duration = 50 * time.Minute
	s.UpdateConfig(config)

	got := drainEvents(events)
	require.Len(t, got, 1)
	assert.Equal(t, timer.PhaseFocus, got[0].Snapshot.Phase)
	assert.Equal(t, 3000, got[0].Snapshot.Remaining)
}

func TestTogglePause(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(testConfig(), clock)
	events := s.Subscribe(10)

	s.TogglePause()
	got := drainEvents(events)
	require.Len(t, got, 1)
	assert.True(t, got[0].Paused)

	s.TogglePause()
	got = drainEvents(events)
	require.Len(t, got, 1)
	assert.False(t, got[0].Paused)
}

func TestRestartAfterStop(t *testing.T) {
	clock := newFakeClock()
	s := New(testConfig(), Options{Clock: clock})

	s.Start()
	s.Stop()

	// A stopped session starts over cleanly with a fresh polling loop.
	events := s.Subscribe(5)
	s.Start()
	defer s.Stop()

	event := <-events
	assert.Equal(t, EventStateChange, event.Type)
	assert.Equal(t, timer.PhaseFocus, event.Snapshot.Phase)
	assert.Equal(t, 1500, event.Snapshot.Remaining)

	clock.Advance(25 * time.Minute)
	s.tick()
	event = <-events
	assert.Equal(t, EventPhaseComplete, event.Type)
}

func TestStopClosesSubscribers(t *testing.T) {
	clock := newFakeClock()
	s := New(testConfig(), Options{Clock: clock})
	events := s.Subscribe(5)

	s.Start()
	s.Stop()

	for range events {
		// drain until closed
	}
	_, open := <-events
	assert.False(t, open)
}
