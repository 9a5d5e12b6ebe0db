package ui

import (
	"context"
	"math/rand"

	"github.com/Mshel/urkusteps/internal/game"
	"github.com/Mshel/urkusteps/internal/journey"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	JourneyScreen
	GameScreen
	LeaderboardScreen
)

// Messages for state transitions
type IntroSubmitMsg int

const (
	IntroStartJourney IntroSubmitMsg = iota
	IntroLeaderboard
	IntroDemo
)

type SetupSubmitMsg struct {
	Plan journey.Plan
}

type FaceUrkusMsg struct{}

// JourneyCompleteMsg is sent once the player acknowledges reaching the goal.
type JourneyCompleteMsg struct {
	Frames int
	Demo   bool
}

// QuitGameMsg sends the controller back to the IntroScreen.
type QuitGameMsg struct{}

type journeySavedMsg struct {
	err error
}

// Services are shared by every screen of one session.
type Services struct {
	Level    game.Level
	Assets   *game.AssetStore
	Journeys *game.JourneyService
	Rng      *rand.Rand
}

type ControllerModel struct {
	CurrentScreen Screen
	Services      Services

	IntroModel       tea.Model
	SetupModel       tea.Model
	JourneyModel     tea.Model
	GameModel        tea.Model
	LeaderboardModel tea.Model

	ctx          context.Context
	plan         *journey.Plan
	ScreenWidth  int
	ScreenHeight int
}

// NewControllerModel builds the screens for one session. deviceLocation is nil
// unless the client sent one.
func NewControllerModel(ctx context.Context, services Services, deviceLocation *journey.LatLng, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Services:      services,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(services.Rng, deviceLocation, screenWidth, screenHeight),

		ctx:          ctx,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case JourneyScreen:
		if m.JourneyModel != nil {
			return m.JourneyModel.View()
		}
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	case LeaderboardScreen:
		if m.LeaderboardModel != nil {
			return m.LeaderboardModel.View()
		}
	}
	return "Unknown Screen"
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// --- 1. Global keys; plain "q" is left alone while a name is being typed ---
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" || (msg.String() == "q" && m.CurrentScreen != SetupScreen) {
			return m, tea.Quit
		}
	}

	// --- 2. State Transition Message Handling ---
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		return m.broadcast(msg)

	case IntroSubmitMsg:
		switch msg {
		case IntroStartJourney:
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		case IntroLeaderboard:
			m.CurrentScreen = LeaderboardScreen
			m.LeaderboardModel = NewLeaderboardModel(m.ctx, m.Services.Journeys, m.ScreenWidth, m.ScreenHeight)
			return m, m.LeaderboardModel.Init()
		case IntroDemo:
			pilot, err := game.NewDefaultPilot()
			if err != nil {
				log.Error("Failed to load demo pilot", "error", err)
				return m, nil
			}
			m.CurrentScreen = GameScreen
			m.GameModel = NewGameModel(m.ctx, m.Services, nil, pilot, m.ScreenWidth, m.ScreenHeight)
			return m, m.GameModel.Init()
		}

	case SetupSubmitMsg:
		plan := msg.Plan
		m.plan = &plan
		m.CurrentScreen = JourneyScreen
		m.JourneyModel = NewJourneyModel(plan, m.ScreenWidth, m.ScreenHeight)
		log.Info("Journey planned", "player", plan.PlayerName, "career", plan.Career, "urku_steps", plan.Resources.UrkuSteps)
		return m, m.JourneyModel.Init()

	case FaceUrkusMsg:
		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(m.ctx, m.Services, m.plan, nil, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	case JourneyCompleteMsg:
		m.GameModel = nil
		if msg.Demo || m.plan == nil {
			m.CurrentScreen = IntroScreen
			return m, m.IntroModel.Init()
		}
		plan := *m.plan
		m.plan = nil
		m.CurrentScreen = SetupScreen
		return m, tea.Batch(m.SetupModel.Init(), m.saveJourney(plan, msg.Frames))

	case journeySavedMsg:
		if msg.err != nil {
			log.Error("Journey persist err", "error", msg.err)
		}
		return m, nil

	case QuitGameMsg:
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()
	}

	// --- 3. Message Delegation (Pass to the active model for all other messages) ---
	var cmd tea.Cmd
	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case JourneyScreen:
		if m.JourneyModel != nil {
			m.JourneyModel, cmd = m.JourneyModel.Update(msg)
		}
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	case LeaderboardScreen:
		if m.LeaderboardModel != nil {
			m.LeaderboardModel, cmd = m.LeaderboardModel.Update(msg)
		}
	}

	return m, cmd
}

// broadcast hands a message to every screen that exists, not only the active one.
func (m ControllerModel) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.IntroModel, cmd = m.IntroModel.Update(msg)
	cmds = append(cmds, cmd)
	m.SetupModel, cmd = m.SetupModel.Update(msg)
	cmds = append(cmds, cmd)
	if m.JourneyModel != nil {
		m.JourneyModel, cmd = m.JourneyModel.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.GameModel != nil {
		m.GameModel, cmd = m.GameModel.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.LeaderboardModel != nil {
		m.LeaderboardModel, cmd = m.LeaderboardModel.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m ControllerModel) saveJourney(plan journey.Plan, frames int) tea.Cmd {
	journeys := m.Services.Journeys
	ctx := m.ctx
	return func() tea.Msg {
		if journeys == nil {
			return journeySavedMsg{}
		}
		err := journeys.SaveJourney(ctx, game.Journey{
			PlayerName:   plan.PlayerName,
			Career:       string(plan.Career),
			LocationType: string(plan.LocationType),
			UrkuSteps:    plan.Resources.UrkuSteps,
			Disparity:    plan.Resources.DisparityScore,
			Frames:       frames,
		})
		return journeySavedMsg{err: err}
	}
}
