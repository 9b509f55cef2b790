package phasetimer

import (
	"errors"
	"log"
	"sync"
	"time"

	"movereminder/internal/core/model"
)

// ErrStopTimeout indicates the ticking loop did not exit within Config.StopTimeout.
// The timer state is reset regardless.
var ErrStopTimeout = errors.New("phase timer: stop timed out waiting for ticking loop")

// Callbacks are invoked from the timer's ticking goroutine, one at a time and in
// chronological order. Callers must marshal onto their own context before
// touching caller-owned state.
type Callbacks struct {
	OnTick          func(phase Phase, timeString string, progress float64)
	OnPhaseComplete func(next, previous Phase, nextMinutes int)
}

// Config contains runtime options for Timer.
type Config struct {
	TickInterval time.Duration
	StopTimeout  time.Duration
	Clock        Clock
	Logger       *log.Logger
}

// State is a read-only view of the timer.
type State struct {
	Phase     Phase
	Remaining time.Duration
	Total     time.Duration
	Progress  float64
	Running   bool
	Paused    bool
}

// Timer cycles through sitting, standing and walking phases. The end of the
// current phase is kept as an absolute instant, so irregular scheduling of the
// ticking loop never accumulates drift.
type Timer struct {
	control sync.Mutex

	mu         sync.Mutex
	callbacks  Callbacks
	options    Config
	cycle      model.CycleConfig
	phase      Phase
	phaseEnd   time.Time
	remaining  time.Duration
	total      time.Duration
	running    bool
	paused     bool
	notified   bool
	generation uint64
	stopCh     chan struct{}
	wakeCh     chan struct{}
	doneCh     chan struct{}
}

// New creates an idle Timer with the default cycle.
func New(callbacks Callbacks, options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = 250 * time.Millisecond
	}
	if options.StopTimeout <= 0 {
		options.StopTimeout = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}

	return &Timer{
		callbacks: callbacks,
		options:   options,
		cycle:     model.DefaultCycleConfig(),
		phase:     PhaseIdle,
	}
}

// Configure sets phase durations and which phases take part in the cycle.
// Durations apply from the next phase that starts.
func (timer *Timer) Configure(cycle model.CycleConfig) {
	timer.mu.Lock()
	timer.cycle = cycle.Normalized()
	timer.mu.Unlock()
}

// Start begins a new cycle in the sitting phase, restarting if already running.
func (timer *Timer) Start() {
	timer.control.Lock()
	defer timer.control.Unlock()

	timer.mu.Lock()
	running := timer.running
	timer.mu.Unlock()
	if running {
		if err := timer.stopLocked(); err != nil {
			timer.options.Logger.Printf("restart: %v", err)
		}
	}

	stopCh := make(chan struct{})
	wakeCh := make(chan struct{}, 1)
	doneCh := make(chan struct{})

	timer.mu.Lock()
	timer.generation++
	generation := timer.generation
	timer.running = true
	timer.paused = false
	timer.stopCh = stopCh
	timer.wakeCh = wakeCh
	timer.doneCh = doneCh
	timer.setPhaseLocked(PhaseSitting, timer.cycle.SitMinutes)
	timer.mu.Unlock()

	go timer.run(generation, stopCh, wakeCh, doneCh)
}

// Pause freezes the countdown. It is a no-op when not running or already paused.
func (timer *Timer) Pause() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.running || timer.paused {
		return
	}
	timer.remaining = timer.remainingAtLocked(timer.options.Clock.Now())
	timer.paused = true
}

// Resume continues a paused countdown from the time that was left at pause.
func (timer *Timer) Resume() {
	timer.mu.Lock()
	if !timer.running || !timer.paused {
		timer.mu.Unlock()
		return
	}
	timer.phaseEnd = timer.options.Clock.Now().Add(timer.remaining)
	timer.paused = false
	wakeCh := timer.wakeCh
	timer.mu.Unlock()

	select {
	case wakeCh <- struct{}{}:
	default:
	}
}

// Stop halts the ticking loop, resets to Idle and reports a final idle tick.
// It waits at most Config.StopTimeout for the loop to exit; ErrStopTimeout is
// returned when that wait expires. Calling Stop from inside a callback always
// waits out the full timeout.
func (timer *Timer) Stop() error {
	timer.control.Lock()
	defer timer.control.Unlock()
	return timer.stopLocked()
}

// SetPhase switches to phase with a fresh countdown of minutes. It is used to
// apply an acknowledged transition or to repeat the current phase. It does
// nothing unless the timer is running, and Idle is ignored; use Stop instead.
func (timer *Timer) SetPhase(phase Phase, minutes int) {
	if phase == PhaseIdle {
		return
	}
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.running {
		return
	}
	timer.setPhaseLocked(phase, minutes)
}

// Snapshot returns the current state, recomputing the remaining time while running.
func (timer *Timer) Snapshot() State {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	state := State{
		Phase:     timer.phase,
		Remaining: timer.remaining,
		Total:     timer.total,
		Running:   timer.running,
		Paused:    timer.paused,
	}
	if timer.running && !timer.paused {
		state.Remaining = timer.remainingAtLocked(timer.options.Clock.Now())
	}
	if state.Phase == PhaseIdle {
		state.Progress = 1
		return state
	}
	state.Progress = Progress(state.Remaining, state.Total)
	return state
}

func (timer *Timer) stopLocked() error {
	timer.mu.Lock()
	wasRunning := timer.running
	stopCh := timer.stopCh
	doneCh := timer.doneCh
	timer.running = false
	timer.paused = false
	timer.generation++
	timer.stopCh = nil
	timer.wakeCh = nil
	timer.doneCh = nil
	timer.mu.Unlock()

	var err error
	if wasRunning && stopCh != nil {
		close(stopCh)
		wait := time.NewTimer(timer.options.StopTimeout)
		select {
		case <-doneCh:
		case <-wait.C:
			err = ErrStopTimeout
			timer.options.Logger.Printf("phase timer: %v", err)
		}
		wait.Stop()
	}

	timer.mu.Lock()
	timer.phase = PhaseIdle
	timer.remaining = 0
	timer.total = 0
	timer.phaseEnd = time.Time{}
	timer.notified = false
	timer.mu.Unlock()

	timer.deliverTick(PhaseIdle, FormatRemaining(0), 1)
	return err
}

func (timer *Timer) run(generation uint64, stopCh <-chan struct{}, wakeCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := timer.options.Clock.NewTicker(timer.options.TickInterval)
	defer ticker.Stop()

	for {
		if timer.isPaused() {
			select {
			case <-stopCh:
				return
			case <-wakeCh:
				continue
			}
		}

		timer.tick(generation)

		select {
		case <-stopCh:
			return
		case <-wakeCh:
		case <-ticker.C():
		}
	}
}

type completion struct {
	next     Phase
	previous Phase
	minutes  int
}

func (timer *Timer) tick(generation uint64) {
	timer.mu.Lock()
	if generation != timer.generation || !timer.running || timer.paused {
		timer.mu.Unlock()
		return
	}

	timer.remaining = timer.remainingAtLocked(timer.options.Clock.Now())
	phase := timer.phase
	timeString := FormatRemaining(timer.remaining)
	progress := Progress(timer.remaining, timer.total)

	var done *completion
	if timer.remaining == 0 && !timer.notified {
		if next, minutes, ok := NextPhase(phase, timer.cycle); ok {
			timer.notified = true
			done = &completion{next: next, previous: phase, minutes: minutes}
		}
	}
	timer.mu.Unlock()

	timer.deliverTick(phase, timeString, progress)
	if done != nil {
		timer.deliverPhaseComplete(*done)
	}
}

func (timer *Timer) isPaused() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.paused
}

func (timer *Timer) setPhaseLocked(phase Phase, minutes int) {
	total := time.Duration(model.ClampMinutes(minutes)) * time.Minute
	timer.phase = phase
	timer.total = total
	timer.remaining = total
	timer.phaseEnd = timer.options.Clock.Now().Add(total)
	timer.notified = false
}

func (timer *Timer) remainingAtLocked(now time.Time) time.Duration {
	remaining := timer.phaseEnd.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (timer *Timer) deliverTick(phase Phase, timeString string, progress float64) {
	if timer.callbacks.OnTick == nil {
		return
	}
	defer timer.recoverCallback("tick")
	timer.callbacks.OnTick(phase, timeString, progress)
}

func (timer *Timer) deliverPhaseComplete(done completion) {
	if timer.callbacks.OnPhaseComplete == nil {
		return
	}
	defer timer.recoverCallback("phase complete")
	timer.callbacks.OnPhaseComplete(done.next, done.previous, done.minutes)
}

func (timer *Timer) recoverCallback(name string) {
	if recovered := recover(); recovered != nil {
		timer.options.Logger.Printf("phase timer: %s callback panicked: %v", name, recovered)
	}
}
