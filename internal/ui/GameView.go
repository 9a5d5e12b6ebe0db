package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mshel/urkusteps/internal/game"
	"github.com/Mshel/urkusteps/internal/journey"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// --- Internal Game States for GameViewModel ---

type GameState int

const (
	StatePlaying GameState = iota
	StateGoalReached
	StateAssetsFailed
)

var (
	voidColor    = "233"
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	mottoStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("179"))
)

const (
	mapViewPercentage  = 0.70
	statusPanelPadding = 4
	borderSize         = 2
)

type loopStoppedMsg struct {
	err error
}

type keyReleaseMsg struct {
	action game.Action
	seq    int
}

// --- GameViewModel Definition ---

type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int

	gameManager *game.GameManager
	assets      *game.AssetStore
	plan        *journey.Plan
	pilot       *game.LuaPilot
	ctx         context.Context
	cancel      context.CancelFunc

	snapshot  *game.Snapshot
	gameState GameState
	goalState GoalState
	assetsErr error
	pressSeq  map[game.Action]int
	help      help.Model
}

// NewGameModel builds a fresh session for one run. A non-nil pilot plays instead of
// the keyboard; plan is nil for demo runs.
func NewGameModel(parent context.Context, services Services, plan *journey.Plan, pilot *game.LuaPilot, screenWidth int, screenHeight int) GameViewModel {
	gm := game.NewGameManager(services.Level, services.Assets)
	if pilot != nil {
		gm.WithPilot(pilot)
	}
	ctx, cancel := context.WithCancel(parent)

	playerName := "Demo pilot"
	if plan != nil {
		playerName = plan.PlayerName
	}

	return GameViewModel{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		gameManager:  gm,
		assets:       services.Assets,
		plan:         plan,
		pilot:        pilot,
		ctx:          ctx,
		cancel:       cancel,
		gameState:    StatePlaying,
		goalState: GoalState{
			PlayerName:   playerName,
			Demo:         pilot != nil,
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
		pressSeq: make(map[game.Action]int),
		help:     help.New(),
	}
}

// --- Init/Update/View Methods ---

func (m GameViewModel) Init() tea.Cmd {
	return tea.Batch(m.runLoop(), m.listenForGameUpdates())
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.goalState.ScreenWidth = msg.Width
		m.goalState.ScreenHeight = msg.Height
		return m, nil

	case loopStoppedMsg:
		if errors.Is(msg.err, game.ErrAssetsNotLoaded) {
			log.Error("Game loop refused to start", "error", msg.err, "asset_error", m.assets.Err())
			m.gameState = StateAssetsFailed
			m.assetsErr = m.assets.Err()
			m.cancel()
		}
		return m, nil

	case game.FrameMsg:
		snap := msg.Snapshot
		m.snapshot = &snap
		if snap.GoalReached && m.gameState == StatePlaying {
			m.gameState = StateGoalReached
			m.goalState.Frames = snap.Frame
		}
		return m, m.listenForGameUpdates()

	case keyReleaseMsg:
		if m.pressSeq[msg.action] == msg.seq {
			m.gameManager.Input().Release(msg.action)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.gameState {
		case StateAssetsFailed:
			if msg.String() == "enter" || msg.String() == "esc" {
				return m, func() tea.Msg { return QuitGameMsg{} }
			}
			return m, nil

		case StateGoalReached:
			if msg.String() == "enter" {
				return m, m.acknowledgeGoal()
			}
			return m, nil
		}

		if msg.String() == "esc" {
			m.cancel()
			return m, func() tea.Msg { return QuitGameMsg{} }
		}

		action, ok := actionFor(msg)
		if !ok || m.pilot != nil {
			return m, nil
		}
		m.gameManager.Input().Press(action)
		m.pressSeq[action]++
		seq := m.pressSeq[action]
		return m, tea.Tick(game.KeyHoldWindow, func(time.Time) tea.Msg {
			return keyReleaseMsg{action: action, seq: seq}
		})
	}

	return m, nil
}

// acknowledgeGoal resets the session, tears the loop down and hands control back.
func (m GameViewModel) acknowledgeGoal() tea.Cmd {
	m.gameManager.Reset()
	m.cancel()
	complete := JourneyCompleteMsg{Frames: m.goalState.Frames, Demo: m.pilot != nil}
	return func() tea.Msg { return complete }
}

func (m GameViewModel) View() string {
	switch m.gameState {
	case StateAssetsFailed:
		return m.renderAssetsFailed()
	case StateGoalReached:
		return m.goalState.RenderGoalScreen()
	}

	if m.snapshot == nil {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Game Loading...")
	}

	mapWidth := int(float64(m.ScreenWidth) * mapViewPercentage)
	statusPanelWidth := m.ScreenWidth - mapWidth - statusPanelPadding
	canvasHeight := max(m.ScreenHeight-borderSize, 1)

	mapContent := m.renderMap(mapWidth-borderSize, canvasHeight)
	statusContent := m.renderStatusPanel()

	return lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Width(mapWidth-borderSize).Height(canvasHeight).Render(mapContent),
		statusPanelStyle.Width(statusPanelWidth).Height(canvasHeight-borderSize).Render(statusContent),
	)
}

func (m GameViewModel) renderMap(width int, height int) string {
	snap := m.snapshot
	canvas := NewCanvas(width, height, snap.SurfaceWidth, snap.SurfaceHeight)
	snap.Draw(canvas, m.assets)
	return canvas.Render()
}

// renderStatusPanel draws the run stats and the controls.
func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder
	snap := m.snapshot

	statusContent.WriteString(mottoStyle.Render("The only mountains that stop you are the ones you don't climb") + "\n\n")

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Journey ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Traveller: %s\n", m.goalState.PlayerName))
	if m.plan != nil {
		statusContent.WriteString(fmt.Sprintf("Career: %s\n", m.plan.Career.Title()))
		statusContent.WriteString(fmt.Sprintf("Urku steps: %.2f\n", m.plan.Resources.UrkuSteps))
	}
	statusContent.WriteString(fmt.Sprintf("Level: %s\n", m.gameManager.Level.Name))

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Avatar ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Frame: %d\n", snap.Frame))
	statusContent.WriteString(fmt.Sprintf("Position: %.0f, %.0f\n", snap.Avatar.X, snap.Avatar.Y))
	statusContent.WriteString(fmt.Sprintf("Velocity: %.1f\n", snap.Avatar.Dy))
	statusContent.WriteString(fmt.Sprintf("On ground: %t\n", snap.Avatar.OnGround))

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	if m.pilot != nil {
		statusContent.WriteString("The pilot is playing.\n")
	} else {
		statusContent.WriteString(m.help.View(gameKeys) + "\n")
	}
	statusContent.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("Press ESC to leave"))

	return statusContent.String()
}

func (m GameViewModel) renderAssetsFailed() string {
	message := "Assets failed to load."
	if m.assetsErr != nil {
		message += "\n" + m.assetsErr.Error()
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		errorStyle.Bold(true).Render(message),
		helpStyle.Render("Press ENTER to return."),
	)
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(1, 3).Render(content))
}

func (m GameViewModel) runLoop() tea.Cmd {
	gm, ctx, pilot := m.gameManager, m.ctx, m.pilot
	return func() tea.Msg {
		err := gm.StartGameLoop(ctx)
		if pilot != nil {
			pilot.Close()
		}
		return loopStoppedMsg{err: err}
	}
}

func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	gm, ctx := m.gameManager, m.ctx
	return func() tea.Msg {
		select {
		case msg := <-gm.UpdateChannel:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}
