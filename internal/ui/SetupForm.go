package ui

import (
	"math/rand"
	"strings"

	"github.com/Mshel/urkusteps/internal/journey"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Define styles
var (
	focusedColor = lipgloss.Color("179")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

const (
	focusName = iota
	focusLocation
	focusCareer
	focusSubmit
	focusCount
)

type locationOption struct {
	label        string
	countryCode  string
	locationType journey.LocationType
}

// SetupModel is the form where a player names themselves, picks a place and a career.
type SetupModel struct {
	nameInput      textinput.Model
	locations      []locationOption
	locationIndex  int
	careers        []journey.Career
	careerIndex    int
	focusIndex     int
	errMsg         string
	width          int
	height         int
	rng            *rand.Rand
	deviceLocation *journey.LatLng
}

func NewInitialSetupModel(rng *rand.Rand, deviceLocation *journey.LatLng, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your traveller name"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	var locations []locationOption
	if deviceLocation != nil {
		locations = append(locations, locationOption{
			label:        "Device location (" + deviceLocation.String() + ")",
			locationType: journey.DeviceLocation,
		})
	}
	for _, country := range journey.Countries() {
		locations = append(locations, locationOption{
			label:        country.Name,
			countryCode:  country.Code,
			locationType: journey.RandomLocation,
		})
	}

	return SetupModel{
		nameInput:      ti,
		locations:      locations,
		careers:        journey.Careers(),
		width:          w,
		height:         h,
		rng:            rng,
		deviceLocation: deviceLocation,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		switch s {
		case "tab", "shift+tab":
			if s == "tab" {
				m.setFocus((m.focusIndex + 1) % focusCount)
			} else {
				m.setFocus((m.focusIndex - 1 + focusCount) % focusCount)
			}
			return m, nil

		case "enter":
			if m.focusIndex != focusSubmit {
				m.setFocus(m.focusIndex + 1)
				return m, nil
			}
			return m.submit()

		case "left", "right":
			step := 1
			if s == "left" {
				step = -1
			}
			switch m.focusIndex {
			case focusLocation:
				m.locationIndex = (m.locationIndex + step + len(m.locations)) % len(m.locations)
				return m, nil
			case focusCareer:
				m.careerIndex = (m.careerIndex + step + len(m.careers)) % len(m.careers)
				return m, nil
			}
		}

		if m.focusIndex == focusName {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			m.errMsg = ""
			return m, cmd
		}
	}

	return m, nil
}

func (m *SetupModel) setFocus(index int) {
	m.focusIndex = index
	if index == focusName {
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
	}
}

func (m SetupModel) submit() (tea.Model, tea.Cmd) {
	option := m.locations[m.locationIndex]

	var location journey.LatLng
	if option.locationType == journey.DeviceLocation {
		location = *m.deviceLocation
	} else {
		var err error
		location, err = journey.RandomCoordinates(m.rng, option.countryCode)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
	}

	plan, err := journey.NewPlan(m.rng, m.nameInput.Value(), m.careers[m.careerIndex], option.locationType, location)
	if err != nil {
		m.errMsg = err.Error()
		m.setFocus(focusName)
		return m, nil
	}
	plan.CountryName = option.label

	m.errMsg = ""
	return m, func() tea.Msg { return SetupSubmitMsg{Plan: plan} }
}

func (m SetupModel) View() string {
	// Helper to center content within the terminal width
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}
	picker := func(label, value string, focused bool) string {
		style := blurredStyle
		if focused {
			style = focusedStyle
		}
		return style.Render(label+":  ◀ ") + value + style.Render(" ▶")
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Bold(true).Render("READY?")))
	b.WriteString("\n\n")
	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")
	b.WriteString(center(picker("Location", m.locations[m.locationIndex].label, m.focusIndex == focusLocation)))
	b.WriteString("\n\n")
	b.WriteString(center(picker("Where do you wanna go?", m.careers[m.careerIndex].Title(), m.focusIndex == focusCareer)))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(center(errorStyle.Render(m.errMsg)))
		b.WriteString("\n")
	}

	submitText := "Take me there"
	var submitButton string
	if m.focusIndex == focusSubmit {
		submitButton = submitButtonStyle.Render(submitText)
	} else {
		submitButton = blurredButtonStyle.Render(submitText)
	}
	b.WriteString(center(submitButton))
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(arrows to choose, tab/shift+tab to navigate, enter to confirm, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
