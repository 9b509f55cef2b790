package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start      key.Binding
	Pause      key.Binding
	Resume     key.Binding
	Reset      key.Binding
	Walk       key.Binding
	Accept     key.Binding
	Skip       key.Binding
	Lock       key.Binding
	CancelWalk key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Pause:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Resume:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		Reset:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
		Walk:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "walk now")),
		Accept:     key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "ok")),
		Skip:       key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "skip")),
		Lock:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lock & ok")),
		CancelWalk: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel walk")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap. Disabled bindings are not rendered.
func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		keys.Accept, keys.Skip, keys.Lock, keys.CancelWalk,
		keys.Start, keys.Pause, keys.Resume, keys.Reset, keys.Walk, keys.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Start, keys.Pause, keys.Resume, keys.Reset, keys.Walk, keys.Quit},
		{keys.Accept, keys.Skip, keys.Lock, keys.CancelWalk},
	}
}

// applyStatus enables the bindings that make sense for the session state, so
// help only lists what can be pressed.
func (keys *keyMap) applyStatus(running, paused, waiting, walking bool) {
	keys.Start.SetEnabled(!running)
	keys.Pause.SetEnabled(running && !paused)
	keys.Resume.SetEnabled(running && paused && !waiting && !walking)
	keys.Reset.SetEnabled(running)
	keys.Walk.SetEnabled(!walking && !waiting)
	keys.Accept.SetEnabled(waiting)
	keys.Skip.SetEnabled(waiting)
	keys.Lock.SetEnabled(waiting)
	keys.CancelWalk.SetEnabled(walking)
}
