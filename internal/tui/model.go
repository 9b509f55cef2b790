// Package tui is the terminal front-end: the same session as the desktop
// dashboard, driven from the keyboard and rendered with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"movereminder/internal/core/model"
	"movereminder/internal/core/phasetimer"
	"movereminder/internal/core/session"
)

// Controller is the part of session.Session the model drives.
type Controller interface {
	Start(cycle model.CycleConfig)
	Pause()
	Resume()
	Reset()
	Accept() bool
	Skip() bool
	LockAndAccept() bool
	WalkNow(ctx context.Context, minutes int) bool
	CancelWalk() bool
	Status() session.Status
}

// Options configures a Model.
type Options struct {
	Cycle   model.CycleConfig
	OnStart func(model.CycleConfig)
	CanLock bool
}

// Model is the bubbletea model of the reminder.
type Model struct {
	controller Controller
	options    Options
	keys       keyMap
	help       help.Model
	styles     styles
	progress   progress.Model
	walkBar    progress.Model

	status  session.Status
	tick    session.Tick
	prompt  *session.Prompt
	stats   session.Stats
	walk    *session.WalkTick
	message string
	width   int
}

// New creates the model.
func New(controller Controller, options Options) Model {
	options.Cycle = options.Cycle.Normalized()
	m := Model{
		controller: controller,
		options:    options,
		keys:       defaultKeyMap(),
		help:       help.New(),
		styles:     defaultStyles(),
		progress:   progress.New(progress.WithDefaultGradient()),
		walkBar:    progress.New(progress.WithSolidFill("214")),
		tick:       session.Tick{Phase: phasetimer.PhaseIdle, Time: phasetimer.FormatRemaining(0), Progress: 1},
	}
	m.progress.Width = 40
	m.walkBar.Width = 40
	m.refreshStatus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		target := msg.Width - 8
		if target > 60 {
			target = 60
		}
		if target < 10 {
			target = 10
		}
		m.progress.Width = target
		m.walkBar.Width = target
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.tick = session.Tick(msg)
	case promptMsg:
		prompt := session.Prompt(msg)
		m.prompt = &prompt
		m.message = ""
	case promptClearedMsg:
		m.prompt = nil
	case statsMsg:
		m.stats = session.Stats(msg)
	case walkTickMsg:
		tick := session.WalkTick(msg)
		m.walk = &tick
	case walkDoneMsg:
		m.walk = nil
		if bool(msg) {
			m.message = "Great job! Walk complete."
		} else {
			m.message = "Walk cancelled."
		}
	}
	m.refreshStatus()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.controller.Reset()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		if m.options.OnStart != nil {
			m.options.OnStart(m.options.Cycle)
		}
		m.controller.Start(m.options.Cycle)
		m.message = ""
	case key.Matches(msg, m.keys.Pause):
		m.controller.Pause()
	case key.Matches(msg, m.keys.Resume):
		m.controller.Resume()
	case key.Matches(msg, m.keys.Reset):
		m.controller.Reset()
		m.prompt = nil
	case key.Matches(msg, m.keys.Walk):
		if m.controller.WalkNow(context.Background(), m.options.Cycle.WalkMinutes) {
			m.message = ""
		}
	case key.Matches(msg, m.keys.Accept):
		if m.controller.Accept() {
			m.prompt = nil
		}
	case key.Matches(msg, m.keys.Skip):
		if m.controller.Skip() {
			m.prompt = nil
		}
	case key.Matches(msg, m.keys.Lock):
		if m.controller.LockAndAccept() {
			m.prompt = nil
		}
	case key.Matches(msg, m.keys.CancelWalk):
		m.controller.CancelWalk()
	}
	m.refreshStatus()
	return m, nil
}

func (m *Model) refreshStatus() {
	m.status = m.controller.Status()
	m.keys.applyStatus(m.status.Running, m.status.Paused, m.status.Waiting, m.status.Walking)
	lockable := m.options.CanLock && m.prompt != nil && m.prompt.Next == phasetimer.PhaseWalking
	m.keys.Lock.SetEnabled(m.status.Waiting && lockable)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Movement Reminder"))
	b.WriteString("\n\n")

	phase := "Ready to start"
	if m.tick.Phase != phasetimer.PhaseIdle {
		phase = string(m.tick.Phase)
	}
	if m.status.Paused {
		phase += m.styles.Dim.Render(" (paused)")
	}
	b.WriteString(m.styles.Phase.Render(phase))
	b.WriteString("  ")
	b.WriteString(m.styles.Time.Render(m.tick.Time))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.tick.Progress))
	b.WriteString("\n\n")

	if m.prompt != nil {
		title, body := m.prompt.Message()
		b.WriteString(m.styles.Prompt.Render(title + "\n" + body))
		b.WriteString("\n\n")
	}

	if m.walk != nil {
		b.WriteString(m.styles.Walk.Render("Walk Time! " + m.walk.Time))
		b.WriteString("\n")
		b.WriteString(m.walkBar.ViewAs(m.walk.Progress))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Dim.Render(fmt.Sprintf("Today: sitting %d min, standing %d min, walking %d min",
		m.stats.SitMinutes, m.stats.StandMinutes, m.stats.WalkMinutes)))
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString(m.styles.Message.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return m.styles.Base.Render(b.String())
}
