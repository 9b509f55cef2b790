// Package session drives the phase timer the way the reminder front-ends need:
// every phase boundary pauses the countdown and waits for the user to accept
// or skip the transition before the timer continues.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"movereminder/internal/core/model"
	"movereminder/internal/core/phasetimer"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// Tick is one countdown report of the phase timer.
type Tick struct {
	Phase    phasetimer.Phase
	Time     string
	Progress float64
}

// Prompt is a phase transition waiting for acknowledgment.
type Prompt struct {
	Next        phasetimer.Phase
	Previous    phasetimer.Phase
	NextMinutes int
}

// Message returns the headline and detail shown to the user for the prompt.
func (prompt Prompt) Message() (title, body string) {
	switch prompt.Next {
	case phasetimer.PhaseStanding:
		return "Time to stand up!", fmt.Sprintf("Stand for %d minute(s).", prompt.NextMinutes)
	case phasetimer.PhaseWalking:
		return "Quick walk", fmt.Sprintf("Walk for %d minute(s).", prompt.NextMinutes)
	case phasetimer.PhaseSitting:
		return "You can sit again", fmt.Sprintf("Next sit: %d minute(s).", prompt.NextMinutes)
	default:
		return "Phase change", ""
	}
}

// Status summarizes what the controls should allow.
type Status struct {
	Phase   phasetimer.Phase
	Running bool
	Paused  bool
	Waiting bool
	Walking bool
}

// Listener receives session updates. Methods are called from background
// goroutines; implementations marshal onto their own UI context.
type Listener interface {
	TimerTicked(Tick)
	PromptRaised(Prompt)
	PromptCleared()
	StatsChanged(Stats)
	WalkTicked(WalkTick)
	WalkFinished(completed bool)
}

// ScreenLocker locks the user's session.
type ScreenLocker interface {
	LockScreen() error
}

// ScreenShareDetector reports whether the screen is currently being shared.
type ScreenShareDetector interface {
	ScreenSharing() bool
}

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Options configures a Session.
type Options struct {
	Timer          phasetimer.Config
	Locker         ScreenLocker
	ShareDetector  ScreenShareDetector
	IdleResetAfter time.Duration
	LockDelay      time.Duration
}

// Session owns a phase timer and the acknowledgment round-trip around it.
type Session struct {
	mu       sync.Mutex
	timer    *phasetimer.Timer
	listener Listener
	options  Options
	clock    phasetimer.Clock
	logger   *log.Logger
	cycle    model.CycleConfig
	pending  *Prompt
	stats    Stats
	walk     *walkRun
	idleHeld bool
}

// New creates a session. A nil listener discards updates.
func New(listener Listener, options Options) *Session {
	if listener == nil {
		listener = nopListener{}
	}
	if options.Timer.Clock == nil {
		options.Timer.Clock = phasetimer.SystemClock
	}
	if options.Timer.Logger == nil {
		options.Timer.Logger = log.Default()
	}
	if options.Timer.TickInterval <= 0 {
		options.Timer.TickInterval = 250 * time.Millisecond
	}
	if options.LockDelay <= 0 {
		options.LockDelay = 500 * time.Millisecond
	}

	session := &Session{
		listener: listener,
		options:  options,
		clock:    options.Timer.Clock,
		logger:   options.Timer.Logger,
		cycle:    model.DefaultCycleConfig(),
		stats:    NewStats(options.Timer.Clock.Now()),
	}
	session.timer = phasetimer.New(phasetimer.Callbacks{
		OnTick:          session.handleTick,
		OnPhaseComplete: session.handlePhaseComplete,
	}, options.Timer)
	return session
}

// Start configures the cycle and begins sitting, dropping any pending prompt.
func (session *Session) Start(cycle model.CycleConfig) {
	session.cancelWalk(false)

	session.mu.Lock()
	session.cycle = cycle.Normalized()
	session.idleHeld = false
	session.mu.Unlock()

	session.timer.Configure(cycle)
	session.timer.Start()
	session.dropPending()
}

// Pause freezes the countdown.
func (session *Session) Pause() {
	session.timer.Pause()
}

// Resume continues the countdown. It does nothing while a prompt is pending,
// since the expired phase must be accepted or skipped first, or while a walk
// is under way; the walk resumes the cycle when it ends.
func (session *Session) Resume() {
	session.mu.Lock()
	blocked := session.pending != nil || session.walk != nil
	session.mu.Unlock()
	if blocked {
		return
	}
	session.timer.Resume()
}

// Reset stops the timer and returns to Idle.
func (session *Session) Reset() {
	session.cancelWalk(false)

	if err := session.timer.Stop(); err != nil {
		session.logger.Printf("reset: %v", err)
	}
	session.dropPending()
}

// dropPending clears the prompt once the timer has been stopped or restarted.
// A completion racing with the stop either landed before this point or is
// rejected by handlePhaseComplete.
func (session *Session) dropPending() {
	session.mu.Lock()
	hadPrompt := session.pending != nil
	session.pending = nil
	session.mu.Unlock()

	if hadPrompt {
		session.listener.PromptCleared()
	}
}

// Accept applies the pending transition and resumes the countdown.
// It reports false when nothing is pending.
func (session *Session) Accept() bool {
	session.mu.Lock()
	if session.pending == nil {
		session.mu.Unlock()
		return false
	}
	prompt := *session.pending
	session.pending = nil
	session.mu.Unlock()

	session.timer.SetPhase(prompt.Next, prompt.NextMinutes)
	session.timer.Resume()
	session.listener.PromptCleared()
	return true
}

// Skip repeats the phase that just expired and resumes the countdown.
// It reports false when nothing is pending.
func (session *Session) Skip() bool {
	session.mu.Lock()
	if session.pending == nil {
		session.mu.Unlock()
		return false
	}
	prompt := *session.pending
	session.pending = nil
	minutes := phasetimer.MinutesFor(prompt.Previous, session.cycle)
	session.mu.Unlock()

	previous := prompt.Previous
	if previous == phasetimer.PhaseIdle {
		previous = phasetimer.PhaseSitting
		minutes = session.cycle.SitMinutes
	}
	session.timer.SetPhase(previous, minutes)
	session.timer.Resume()
	session.listener.PromptCleared()
	return true
}

// LockAndAccept accepts the pending transition and locks the screen shortly after.
func (session *Session) LockAndAccept() bool {
	if !session.Accept() {
		return false
	}
	if session.options.Locker == nil {
		return true
	}
	time.AfterFunc(session.options.LockDelay, func() {
		if err := session.options.Locker.LockScreen(); err != nil {
			session.logger.Printf("lock screen: %v", err)
		}
	})
	return true
}

// Pending returns the prompt awaiting acknowledgment, if any.
func (session *Session) Pending() (Prompt, bool) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.pending == nil {
		return Prompt{}, false
	}
	return *session.pending, true
}

// Status reports the control state.
func (session *Session) Status() Status {
	state := session.timer.Snapshot()
	session.mu.Lock()
	defer session.mu.Unlock()
	return Status{
		Phase:   state.Phase,
		Running: state.Running,
		Paused:  state.Paused,
		Waiting: session.pending != nil,
		Walking: session.walk != nil,
	}
}

// Snapshot exposes the timer state.
func (session *Session) Snapshot() phasetimer.State {
	return session.timer.Snapshot()
}

// Cycle returns the cycle of the current run.
func (session *Session) Cycle() model.CycleConfig {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.cycle
}

// Stats returns today's totals.
func (session *Session) Stats() Stats {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.stats = session.stats.Rolled(session.clock.Now())
	return session.stats
}

// Close stops everything the session started.
func (session *Session) Close() {
	session.Reset()
}

// SetIdleResetAfter changes the inactivity threshold. Zero turns idle reset off.
func (session *Session) SetIdleResetAfter(threshold time.Duration) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.options.IdleResetAfter = threshold
	session.idleHeld = false
}

// WatchIdle polls checker until ctx is done and feeds the result to NoteIdle.
// It returns early when idle detection is unsupported. Polling continues while
// idle reset is off so a later SetIdleResetAfter takes effect.
func (session *Session) WatchIdle(ctx context.Context, checker IdleChecker, interval time.Duration) {
	if checker == nil {
		return
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := session.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}

		idle, err := checker.IdleDuration()
		if err != nil {
			session.logger.Printf("idle check: %v", err)
			if errors.Is(err, ErrIdleUnsupported) {
				return
			}
			continue
		}
		session.NoteIdle(idle)
	}
}

// NoteIdle restarts the sitting phase once the user has been away from the
// keyboard for at least Options.IdleResetAfter. It reports whether a reset
// happened. The sitting phase is restarted once per away period.
// An expired sitting phase is left alone: its prompt is on the way.
func (session *Session) NoteIdle(idle time.Duration) bool {
	session.mu.Lock()
	defer session.mu.Unlock()

	threshold := session.options.IdleResetAfter
	if threshold <= 0 {
		return false
	}
	if idle < threshold {
		session.idleHeld = false
		return false
	}
	if session.idleHeld || session.pending != nil {
		return false
	}

	state := session.timer.Snapshot()
	if !state.Running || state.Paused || state.Phase != phasetimer.PhaseSitting || state.Remaining == 0 {
		return false
	}

	session.idleHeld = true
	session.timer.SetPhase(phasetimer.PhaseSitting, session.cycle.SitMinutes)
	session.logger.Printf("idle for %s, sitting phase restarted", idle.Round(time.Second))
	return true
}

func (session *Session) handleTick(phase phasetimer.Phase, timeString string, progress float64) {
	session.listener.TimerTicked(Tick{Phase: phase, Time: timeString, Progress: progress})
}

func (session *Session) handlePhaseComplete(next, previous phasetimer.Phase, nextMinutes int) {
	session.mu.Lock()
	if session.pending != nil || !session.expiredLocked(previous) {
		session.mu.Unlock()
		return
	}
	session.timer.Pause()
	session.stats = session.stats.Rolled(session.clock.Now()).
		Add(previous, phasetimer.MinutesFor(previous, session.cycle))
	stats := session.stats
	prompt := Prompt{Next: next, Previous: previous, NextMinutes: nextMinutes}
	session.pending = &prompt
	session.mu.Unlock()

	session.listener.StatsChanged(stats)

	if session.options.ShareDetector != nil && session.options.ShareDetector.ScreenSharing() {
		session.Accept()
		return
	}
	session.listener.PromptRaised(prompt)
}

// expiredLocked reports whether the timer still sits at the end of previous.
// A completion delivered after Stop, after a restart, or after an idle reset
// of the same phase finds the timer elsewhere and is dropped.
func (session *Session) expiredLocked(previous phasetimer.Phase) bool {
	state := session.timer.Snapshot()
	return state.Running && state.Phase == previous && state.Remaining == 0
}

type nopListener struct{}

func (nopListener) TimerTicked(Tick)    {}
func (nopListener) PromptRaised(Prompt) {}
func (nopListener) PromptCleared()      {}
func (nopListener) StatsChanged(Stats)  {}
func (nopListener) WalkTicked(WalkTick) {}
func (nopListener) WalkFinished(bool)   {}
