package session

import (
	"context"
	"time"

	"movereminder/internal/core/model"
	"movereminder/internal/core/phasetimer"
)

// WalkTick is one countdown report of an on-demand walk.
type WalkTick struct {
	Time     string
	Progress float64
}

type walkRun struct {
	minutes    int
	wasRunning bool
	cancel     context.CancelFunc
}

// WalkNow starts an immediate walk countdown of minutes, pausing a running
// cycle until the walk finishes. It reports false when a walk is already
// under way.
func (session *Session) WalkNow(ctx context.Context, minutes int) bool {
	minutes = model.ClampMinutes(minutes)

	session.mu.Lock()
	if session.walk != nil {
		session.mu.Unlock()
		return false
	}
	state := session.timer.Snapshot()
	run := &walkRun{
		minutes:    minutes,
		wasRunning: state.Running && !state.Paused,
	}
	walkCtx, cancel := context.WithCancel(ctx)
	run.cancel = cancel
	session.walk = run
	session.mu.Unlock()

	if run.wasRunning {
		session.timer.Pause()
	}

	go session.runWalk(walkCtx, run)
	return true
}

// CancelWalk abandons the walk without crediting it. It reports false when
// no walk is running.
func (session *Session) CancelWalk() bool {
	return session.cancelWalk(true)
}

func (session *Session) cancelWalk(notify bool) bool {
	session.mu.Lock()
	run := session.walk
	session.mu.Unlock()
	if run == nil {
		return false
	}
	run.cancel()
	session.finishWalk(run, false, notify)
	return true
}

func (session *Session) runWalk(ctx context.Context, run *walkRun) {
	total := time.Duration(run.minutes) * time.Minute
	end := session.clock.Now().Add(total)

	ticker := session.clock.NewTicker(session.options.Timer.TickInterval)
	defer ticker.Stop()

	for {
		remaining := end.Sub(session.clock.Now())
		if remaining < 0 {
			remaining = 0
		}
		if ctx.Err() != nil {
			return
		}
		session.listener.WalkTicked(WalkTick{
			Time:     phasetimer.FormatRemaining(remaining),
			Progress: phasetimer.Progress(remaining, total),
		})
		if remaining == 0 {
			session.finishWalk(run, true, true)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}
	}
}

func (session *Session) finishWalk(run *walkRun, completed, notify bool) {
	session.mu.Lock()
	if session.walk != run {
		session.mu.Unlock()
		return
	}
	session.walk = nil
	if completed {
		session.stats = session.stats.Rolled(session.clock.Now()).Add(phasetimer.PhaseWalking, run.minutes)
	}
	stats := session.stats
	resume := run.wasRunning && session.pending == nil
	session.mu.Unlock()

	run.cancel()
	if resume {
		session.timer.Resume()
	}
	if completed {
		session.listener.StatsChanged(stats)
	}
	if notify {
		session.listener.WalkFinished(completed)
	}
}
