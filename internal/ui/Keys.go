package ui

import (
	"github.com/Mshel/urkusteps/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type gameKeyMap struct {
	Left  key.Binding
	Right key.Binding
	Jump  key.Binding
	Quit  key.Binding
}

var gameKeys = gameKeyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "a"),
		key.WithHelp("←/a", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "d"),
		key.WithHelp("→/d", "right"),
	),
	Jump: key.NewBinding(
		key.WithKeys("up", "w", " "),
		key.WithHelp("↑/w/space", "jump"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k gameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Quit}
}

func (k gameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// actionFor maps a key press to a simulation action, other keys are ignored.
func actionFor(msg tea.KeyMsg) (game.Action, bool) {
	switch {
	case key.Matches(msg, gameKeys.Left):
		return game.MoveLeft, true
	case key.Matches(msg, gameKeys.Right):
		return game.MoveRight, true
	case key.Matches(msg, gameKeys.Jump):
		return game.Jump, true
	}
	return 0, false
}
