package session

import (
	"bytes"
	"context"
	"log"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movereminder/internal/core/model"
	"movereminder/internal/core/phasetimer"
	"movereminder/internal/testutil"
)

const waitTimeout = 2 * time.Second

type recordingListener struct {
	ticks     chan Tick
	prompts   chan Prompt
	cleared   chan struct{}
	stats     chan Stats
	walkTicks chan WalkTick
	walkDone  chan bool
}

func newRecordingListener() *recordingListener {
	return &recordingListener{
		ticks:     make(chan Tick, 256),
		prompts:   make(chan Prompt, 16),
		cleared:   make(chan struct{}, 16),
		stats:     make(chan Stats, 16),
		walkTicks: make(chan WalkTick, 256),
		walkDone:  make(chan bool, 4),
	}
}

func (listener *recordingListener) TimerTicked(tick Tick) {
	select {
	case listener.ticks <- tick:
	default:
	}
}

func (listener *recordingListener) PromptRaised(prompt Prompt) { listener.prompts <- prompt }
func (listener *recordingListener) PromptCleared()             { listener.cleared <- struct{}{} }
func (listener *recordingListener) StatsChanged(stats Stats)   { listener.stats <- stats }
func (listener *recordingListener) WalkFinished(completed bool) {
	listener.walkDone <- completed
}

func (listener *recordingListener) WalkTicked(tick WalkTick) {
	select {
	case listener.walkTicks <- tick:
	default:
	}
}

func receive[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case value := <-ch:
		return value
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for %s", what)
	}
	var zero T
	return zero
}

type fakeLocker struct {
	locked atomic.Int32
}

func (locker *fakeLocker) LockScreen() error {
	locker.locked.Add(1)
	return nil
}

type fakeShareDetector bool

func (detector fakeShareDetector) ScreenSharing() bool { return bool(detector) }

type unsupportedIdle struct{}

func (unsupportedIdle) IdleDuration() (time.Duration, error) { return 0, ErrIdleUnsupported }

var standingCycle = model.CycleConfig{SitMinutes: 25, StandMinutes: 5, WalkMinutes: 3, IncludeStanding: true}

func testTimerConfig(clock *testutil.ManualClock) phasetimer.Config {
	return phasetimer.Config{
		TickInterval: time.Second,
		StopTimeout:  200 * time.Millisecond,
		Clock:        clock,
		Logger:       log.New(&bytes.Buffer{}, "", 0),
	}
}

func newTestSession(t *testing.T, options Options) (*Session, *recordingListener, *testutil.ManualClock) {
	t.Helper()
	clock := testutil.NewManualClock()
	listener := newRecordingListener()
	options.Timer = testTimerConfig(clock)
	session := New(listener, options)
	t.Cleanup(session.Close)
	return session, listener, clock
}

// expiryGate holds the worker on the 00:00 sitting tick, before the phase
// completion is delivered.
type expiryGate struct {
	*recordingListener
	reached chan struct{}
	release chan struct{}
	once    sync.Once
}

func newExpiryGate() *expiryGate {
	return &expiryGate{
		recordingListener: newRecordingListener(),
		reached:           make(chan struct{}),
		release:           make(chan struct{}),
	}
}

func (gate *expiryGate) TimerTicked(tick Tick) {
	if tick.Phase == phasetimer.PhaseSitting && tick.Time == "00:00" {
		gate.once.Do(func() {
			close(gate.reached)
			<-gate.release
		})
	}
	gate.recordingListener.TimerTicked(tick)
}

func newGatedSession(t *testing.T, options Options) (*Session, *expiryGate) {
	t.Helper()
	clock := testutil.NewManualClock()
	gate := newExpiryGate()
	options.Timer = testTimerConfig(clock)
	session := New(gate, options)
	t.Cleanup(session.Close)

	session.Start(standingCycle)
	receive(t, gate.ticks, "first tick")
	clock.Advance(25 * time.Minute)
	receive(t, gate.reached, "expiry tick")
	return session, gate
}

func startAndExpire(t *testing.T, session *Session, listener *recordingListener, clock *testutil.ManualClock) Prompt {
	t.Helper()
	session.Start(standingCycle)
	receive(t, listener.ticks, "first tick")
	clock.Advance(25 * time.Minute)
	return receive(t, listener.prompts, "prompt")
}

func TestPhaseCompletionRaisesPromptAndPauses(t *testing.T) {
	session, listener, clock := newTestSession(t, Options{})

	prompt := startAndExpire(t, session, listener, clock)

	assert.Equal(t, Prompt{Next: phasetimer.PhaseStanding, Previous: phasetimer.PhaseSitting, NextMinutes: 5}, prompt)
	status := session.Status()
	assert.True(t, status.Running)
	assert.True(t, status.Paused)
	assert.True(t, status.Waiting)
	assert.Equal(t, 25, receive(t, listener.stats, "stats").SitMinutes)
	assert.Equal(t, 25, session.Stats().SitMinutes)
}

func TestAcceptAppliesNextPhase(t *testing.T) {
	session, listener, clock := newTestSession(t, Options{})
	startAndExpire(t, session, listener, clock)

	require.True(t, session.Accept())
	receive(t, listener.cleared, "prompt cleared")

	state := session.Snapshot()
	assert.Equal(t, phasetimer.PhaseStanding, state.Phase)
	assert.Equal(t, 5*time.Minute, state.Remaining)
	assert.False(t, state.Paused)
	assert.False(t, session.Accept(), "nothing left to accept")
}

func TestSkipRepeatsPreviousPhase(t *testing.T) {
	session, listener, clock := newTestSession(t, Options{})
	startAndExpire(t, session, listener, clock)

	require.True(t, session.Skip())

	state := session.Snapshot()
	assert.Equal(t, phasetimer.PhaseSitting, state.Phase)
	assert.Equal(t, 25*time.Minute, state.Remaining)
	assert.False(t, state.Paused)
	assert.False(t, session.Status().Waiting)
}

func TestResumeIgnoredWhilePromptPending(t *testing.T) {
	session, listener, clock := newTestSession(t, Options{})
	startAndExpire(t, session, listener, clock)

	session.Resume()

	assert.True(t, session.Status().Paused)
	_, ok := session.Pending()
	assert.True(t, ok)
}

func TestScreenSharingAutoAccepts(t *testing.T) {
	session, listener, clock := newTestSession(t, Options{ShareDetector: fakeShareDetector(true)})
	session.Start(standingCycle)
	receive(t, listener.ticks, "first tick")

	clock.Advance(25 * time.Minute)

	require.Eventually(t, func() bool {
		return session.Snapshot().Phase == phasetimer.PhaseStanding
	}, waitTimeout, time.Millisecond)
	assert.Empty(t, listener.prompts)
	assert.False(t, session.Status().Paused)
}

func TestLockAndAcceptLocksScreen(t *testing.T) {
	locker := &fakeLocker{}
	session, listener, clock := newTestSession(t, Options{Locker: locker, LockDelay: time.Millisecond})
	startAndExpire(t, session, listener, clock)

	require.True(t, session.LockAndAccept())

	require.Eventually(t, func() bool { return locker.locked.Load() == 1 }, waitTimeout, time.Millisecond)
	assert.Equal(t, phasetimer.PhaseStanding, session.Snapshot().Phase)
}

func TestResetClearsPrompt(t *testing.T) {
	session, listener, clock := newTestSession(t, Options{})
	startAndExpire(t, session, listener, clock)

	session.Reset()

	receive(t, listener.cleared, "prompt cleared")
	status := session.Status()
	assert.False(t, status.Running)
	assert.False(t, status.Waiting)
	assert.Equal(t, phasetimer.PhaseIdle, status.Phase)
}

func TestWalkNowPausesAndResumesCycle(t *testing.T) {
	session, listener, clock := newTestSession(t, Options{})
	session.Start(standingCycle)
	receive(t, listener.ticks, "first tick")

	require.True(t, session.WalkNow(context.Background(), 3))
	assert.Equal(t, "03:00", receive(t, listener.walkTicks, "walk tick").Time)
	status := session.Status()
	assert.True(t, status.Walking)
	assert.True(t, status.Paused)
	assert.False(t, session.WalkNow(context.Background(), 3), "one walk at a time")

	clock.Advance(3 * time.Minute)

	assert.True(t, receive(t, listener.walkDone, "walk finished"))
	assert.Equal(t, 3, session.Stats().WalkMinutes)
	status = session.Status()
	assert.False(t, status.Walking)
	assert.False(t, status.Paused)
	assert.Equal(t, 25*time.Minute, session.Snapshot().Remaining)
}

func TestCancelWalkDoesNotCredit(t *testing.T) {
	session, listener, _ := newTestSession(t, Options{})

	require.True(t, session.WalkNow(context.Background(), 3))
	receive(t, listener.walkTicks, "walk tick")

	require.True(t, session.CancelWalk())
	assert.False(t, receive(t, listener.walkDone, "walk finished"))
	assert.Zero(t, session.Stats().WalkMinutes)
	assert.False(t, session.Status().Walking)
	assert.False(t, session.Status().Running, "an idle cycle stays idle")
	assert.False(t, session.CancelWalk())
}

func TestNoteIdleRestartsSittingOncePerAbsence(t *testing.T) {
	session, listener, clock := newTestSession(t, Options{IdleResetAfter: 5 * time.Minute})
	session.Start(standingCycle)
	receive(t, listener.ticks, "first tick")
	clock.Advance(20 * time.Minute)

	assert.False(t, session.NoteIdle(time.Minute))
	assert.Equal(t, 5*time.Minute, session.Snapshot().Remaining)

	assert.True(t, session.NoteIdle(6*time.Minute))
	assert.Equal(t, 25*time.Minute, session.Snapshot().Remaining)

	clock.Advance(time.Minute)
	assert.False(t, session.NoteIdle(7*time.Minute), "same absence")
	assert.False(t, session.NoteIdle(time.Second))
	assert.True(t, session.NoteIdle(6*time.Minute), "new absence")
}

func TestNoteIdleIgnoredOutsideSitting(t *testing.T) {
	session, listener, clock := newTestSession(t, Options{IdleResetAfter: 5 * time.Minute})
	startAndExpire(t, session, listener, clock)

	assert.False(t, session.NoteIdle(time.Hour), "prompt pending")

	session.Accept()
	assert.False(t, session.NoteIdle(time.Hour), "standing")
}

func TestWatchIdleReturnsWhenUnsupported(t *testing.T) {
	session, _, clock := newTestSession(t, Options{IdleResetAfter: time.Minute})

	done := make(chan struct{})
	go func() {
		session.WatchIdle(context.Background(), unsupportedIdle{}, time.Second)
		close(done)
	}()

	require.Eventually(t, func() bool {
		clock.Advance(time.Second)
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, waitTimeout, 5*time.Millisecond)
}

func TestPromptMessage(t *testing.T) {
	title, body := Prompt{Next: phasetimer.PhaseStanding, NextMinutes: 10}.Message()
	assert.Equal(t, "Time to stand up!", title)
	assert.Equal(t, "Stand for 10 minute(s).", body)

	title, body = Prompt{Next: phasetimer.PhaseSitting, NextMinutes: 45}.Message()
	assert.Equal(t, "You can sit again", title)
	assert.Equal(t, "Next sit: 45 minute(s).", body)

	title, _ = Prompt{Next: phasetimer.PhaseWalking, NextMinutes: 5}.Message()
	assert.Equal(t, "Quick walk", title)
}

func TestSetIdleResetAfterTogglesIdleReset(t *testing.T) {
	session, listener, clock := newTestSession(t, Options{})
	session.Start(standingCycle)
	receive(t, listener.ticks, "first tick")
	clock.Advance(10 * time.Minute)

	assert.False(t, session.NoteIdle(time.Hour), "idle reset is off")

	session.SetIdleResetAfter(5 * time.Minute)
	assert.True(t, session.NoteIdle(time.Hour))
	assert.Equal(t, 25*time.Minute, session.Snapshot().Remaining)

	session.SetIdleResetAfter(0)
	clock.Advance(time.Minute)
	assert.False(t, session.NoteIdle(2*time.Hour))
}

func TestResetDuringExpiryLeavesNoPrompt(t *testing.T) {
	session, gate := newGatedSession(t, Options{})

	done := make(chan struct{})
	go func() {
		session.Reset()
		close(done)
	}()
	require.Eventually(t, func() bool { return !session.Snapshot().Running }, waitTimeout, time.Millisecond)
	close(gate.release)
	receive(t, done, "reset")

	_, pending := session.Pending()
	assert.False(t, pending)
	status := session.Status()
	assert.False(t, status.Running)
	assert.False(t, status.Waiting)
	assert.Zero(t, session.Stats().SitMinutes)
	assert.Empty(t, gate.prompts)

	assert.False(t, session.Accept())
	state := session.Snapshot()
	assert.Equal(t, phasetimer.PhaseIdle, state.Phase)
	assert.False(t, state.Running)
}

func TestRestartDuringExpiryStartsClean(t *testing.T) {
	session, gate := newGatedSession(t, Options{})

	done := make(chan struct{})
	go func() {
		session.Start(standingCycle)
		close(done)
	}()
	require.Eventually(t, func() bool {
		state := session.Snapshot()
		return !state.Running || state.Remaining == 25*time.Minute
	}, waitTimeout, time.Millisecond)
	close(gate.release)
	receive(t, done, "restart")

	_, pending := session.Pending()
	assert.False(t, pending)
	state := session.Snapshot()
	assert.Equal(t, phasetimer.PhaseSitting, state.Phase)
	assert.True(t, state.Running)
	assert.False(t, state.Paused)
	assert.Equal(t, 25*time.Minute, state.Remaining)
}

func TestNoteIdleLeavesExpiredSittingAlone(t *testing.T) {
	session, gate := newGatedSession(t, Options{IdleResetAfter: 5 * time.Minute})

	assert.False(t, session.NoteIdle(time.Hour))
	close(gate.release)

	prompt := receive(t, gate.prompts, "prompt")
	assert.Equal(t, phasetimer.PhaseStanding, prompt.Next)
	_, pending := session.Pending()
	assert.True(t, pending)
	assert.Equal(t, phasetimer.PhaseSitting, session.Snapshot().Phase)
	assert.Zero(t, session.Snapshot().Remaining)
}

func TestResumeIgnoredDuringWalk(t *testing.T) {
	session, listener, clock := newTestSession(t, Options{})
	session.Start(standingCycle)
	receive(t, listener.ticks, "first tick")
	clock.Advance(5 * time.Minute)

	require.True(t, session.WalkNow(context.Background(), 3))
	receive(t, listener.walkTicks, "walk tick")

	session.Resume()

	assert.True(t, session.Status().Paused)
	clock.Advance(time.Minute)
	assert.Equal(t, 20*time.Minute, session.Snapshot().Remaining, "cycle frozen while walking")

	clock.Advance(2 * time.Minute)
	assert.True(t, receive(t, listener.walkDone, "walk finished"))
	assert.False(t, session.Status().Paused)
}
