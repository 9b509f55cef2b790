package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"movereminder/internal/core/session"
)

type (
	tickMsg          session.Tick
	promptMsg        session.Prompt
	promptClearedMsg struct{}
	statsMsg         session.Stats
	walkTickMsg      session.WalkTick
	walkDoneMsg      bool
)

// Sender is the part of tea.Program the listener needs.
type Sender interface {
	Send(tea.Msg)
}

// Listener turns session updates into bubbletea messages. Updates are queued
// so the timer goroutine never waits on the render loop; countdown ticks are
// dropped when the queue is full.
type Listener struct {
	events chan tea.Msg
	done   chan struct{}
}

// NewListener creates a listener queueing up to buffer messages.
func NewListener(buffer int) *Listener {
	if buffer < 1 {
		buffer = 64
	}
	return &Listener{
		events: make(chan tea.Msg, buffer),
		done:   make(chan struct{}),
	}
}

// Forward delivers queued messages to sender until ctx is done.
func (listener *Listener) Forward(ctx context.Context, sender Sender) {
	defer close(listener.done)
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-listener.events:
			sender.Send(msg)
		}
	}
}

func (listener *Listener) TimerTicked(tick session.Tick)      { listener.offer(tickMsg(tick)) }
func (listener *Listener) WalkTicked(tick session.WalkTick)   { listener.offer(walkTickMsg(tick)) }
func (listener *Listener) PromptRaised(prompt session.Prompt) { listener.push(promptMsg(prompt)) }
func (listener *Listener) PromptCleared()                     { listener.push(promptClearedMsg{}) }
func (listener *Listener) StatsChanged(stats session.Stats)   { listener.push(statsMsg(stats)) }
func (listener *Listener) WalkFinished(completed bool)        { listener.push(walkDoneMsg(completed)) }

func (listener *Listener) offer(msg tea.Msg) {
	select {
	case listener.events <- msg:
	default:
	}
}

func (listener *Listener) push(msg tea.Msg) {
	select {
	case listener.events <- msg:
	case <-listener.done:
	}
}
