package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var introButtons = []string{"Start Journey", "Leaderboard", "Watch Demo"}

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int // index into introButtons, matches IntroSubmitMsg
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: 0, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.selected = (m.selected - 1 + len(introButtons)) % len(introButtons)
		case "right", "l", "tab":
			m.selected = (m.selected + 1) % len(introButtons)
		case "enter":
			selected := IntroSubmitMsg(m.selected)
			return m, func() tea.Msg { return selected }
		}
	}
	return m, nil
}

var urkuAscii = `
 _   _ ____  _  ___   _   ____ _____ _____ ____  ____
| | | |  _ \| |/ / | | | / ___|_   _| ____|  _ \/ ___|
| | | | |_) | ' /| | | | \___ \ | | |  _| | |_) \___ \
| |_| |  _ <| . \| |_| |  ___) || | | |___|  __/ ___) |
 \___/|_| \_\_|\_\\___/  |____/ |_| |_____|_|   |____/
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("179"))

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true)

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("179")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(urkuAscii))
	sb.WriteString("\n")
	sb.WriteString(taglineStyle.Render("Every journey begins with a step"))

	buttons := make([]string, len(introButtons))
	for i, label := range introButtons {
		if i == m.selected {
			buttons[i] = introSelectedButtonStyle.Render(label)
		} else {
			buttons[i] = introButtonStyle.Render(label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	// Center the entire view within the terminal
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
