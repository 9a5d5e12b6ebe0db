package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/urkusteps/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const leaderboardSize = 10

// GoalState holds the data for the goal reached message.
type GoalState struct {
	PlayerName   string
	Frames       int
	Demo         bool
	ScreenWidth  int
	ScreenHeight int
}

// Styles for the goal message and the leaderboard
var (
	selectedButtonStyle = lipgloss.NewStyle().
				Padding(0, 3).
				Margin(1, 1).
				Bold(true).
				Background(lipgloss.Color("179")).
				Foreground(lipgloss.Color("0"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// RenderGoalScreen draws the congratulation message and its single button.
func (g GoalState) RenderGoalScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10")).
		Padding(1, 5).
		Align(lipgloss.Center)

	title := messageStyle.Render("Congratulations! You've overcome the obstacles!")

	seconds := float64(g.Frames) * game.FrameDuration.Seconds()
	stats := fmt.Sprintf("%s reached the goal in %d frames (%.1fs)\n", g.PlayerName, g.Frames, seconds)

	label := "Start a New Journey"
	if g.Demo {
		label = "Back to the Start"
	}
	button := selectedButtonStyle.Render(label + " (Enter)")

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, button)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

type leaderboardLoadedMsg struct {
	journeys []game.Journey
	total    int
	err      error
}

// LeaderboardModel shows the fastest completed journeys.
type LeaderboardModel struct {
	ctx      context.Context
	service  *game.JourneyService
	journeys []game.Journey
	total    int
	loaded   bool
	err      error
	width    int
	height   int
}

func NewLeaderboardModel(ctx context.Context, service *game.JourneyService, w, h int) LeaderboardModel {
	return LeaderboardModel{ctx: ctx, service: service, width: w, height: h}
}

func (m LeaderboardModel) Init() tea.Cmd {
	service, ctx := m.service, m.ctx
	return func() tea.Msg {
		if service == nil {
			return leaderboardLoadedMsg{}
		}
		journeys, err := service.GetFastestJourneys(ctx, leaderboardSize, 0)
		if err != nil {
			return leaderboardLoadedMsg{err: err}
		}
		total, err := service.GetTotalJourneyCount(ctx)
		return leaderboardLoadedMsg{journeys: journeys, total: total, err: err}
	}
}

func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case leaderboardLoadedMsg:
		m.loaded = true
		m.journeys = msg.journeys
		m.total = msg.total
		m.err = msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter":
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
	}
	return m, nil
}

// View draws the leaderboard table.
func (m LeaderboardModel) View() string {
	var tableContent strings.Builder

	// Define column widths for alignment
	nameWidth := 20
	careerWidth := 13
	numberWidth := 10

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(4).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Traveller"),
		leaderboardHeaderStyle.Width(careerWidth).Render("Career"),
		leaderboardHeaderStyle.Width(numberWidth).Render("Urkus"),
		leaderboardHeaderStyle.Width(numberWidth).Render("Frames"),
	)
	tableContent.WriteString(header + "\n")

	switch {
	case !m.loaded:
		tableContent.WriteString("Loading...\n")
	case m.err != nil:
		tableContent.WriteString(errorStyle.Render("Could not load journeys: "+m.err.Error()) + "\n")
	case len(m.journeys) == 0:
		tableContent.WriteString(helpStyle.Render("No journeys completed yet.") + "\n")
	}

	for i, journey := range m.journeys {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(4).Render(strconv.Itoa(i+1)),
			leaderboardRowStyle.Width(nameWidth).Render(journey.PlayerName),
			leaderboardRowStyle.Width(careerWidth).Render(journey.Career),
			leaderboardRowStyle.Width(numberWidth).Render(fmt.Sprintf("%.2f", journey.UrkuSteps)),
			leaderboardRowStyle.Width(numberWidth).Render(strconv.Itoa(journey.Frames)),
		)
		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("FASTEST JOURNEYS")
	footer := helpStyle.Render(fmt.Sprintf("%d journeys completed", m.total))
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC or ENTER to return.")

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		footer,
		instruction,
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
