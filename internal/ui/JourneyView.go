package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/urkusteps/internal/journey"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	journeyPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 3)

	urkuCountStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("179"))
	resourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// JourneyModel summarises the planned journey before the game starts.
type JourneyModel struct {
	plan   journey.Plan
	width  int
	height int
}

func NewJourneyModel(plan journey.Plan, w, h int) JourneyModel {
	return JourneyModel{plan: plan, width: w, height: h}
}

func (m JourneyModel) Init() tea.Cmd { return nil }

func (m JourneyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, func() tea.Msg { return FaceUrkusMsg{} }
		case "esc":
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
	}
	return m, nil
}

func (m JourneyModel) View() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Chances are you will need"))
	sb.WriteString("\n")
	sb.WriteString(urkuCountStyle.Render(fmt.Sprintf("%.2f", m.plan.Resources.UrkuSteps)))
	sb.WriteString(" Urku Steps to arrive!\n\n")

	sb.WriteString(fmt.Sprintf("Traveller:       %s\n", m.plan.PlayerName))
	sb.WriteString(fmt.Sprintf("Career:          %s\n", m.plan.Career.Title()))
	sb.WriteString(fmt.Sprintf("Starting from:   %s\n", m.plan.CountryName))
	sb.WriteString(fmt.Sprintf("Coordinates:     %s\n", m.plan.Location))
	sb.WriteString(fmt.Sprintf("Disparity score: %.2f\n", m.plan.Resources.DisparityScore))
	if a := m.plan.Assessment; a != nil {
		sb.WriteString(fmt.Sprintf("Career gap:      %.2f (resources %.2f urkus away)\n", a.DisparityScore, a.UrkuSteps))
	} else {
		sb.WriteString("Career gap:      no resource data for this career\n")
	}
	sb.WriteString("\n")

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Resource locations") + "\n")
	for i, location := range m.plan.ResourceLocations {
		sb.WriteString(fmt.Sprintf("%s %d. %s  (%.2f urkus away)\n",
			resourceStyle.Render("●"), i+1, location, journey.DistanceInUrkus(m.plan.Location, location)))
	}

	button := submitButtonStyle.Render("Face your Urkus")
	hint := helpStyle.Render("enter to start, esc to go back")

	content := lipgloss.JoinVertical(lipgloss.Center, journeyPanelStyle.Render(sb.String()), button, hint)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
