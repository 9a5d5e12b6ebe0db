package ui

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Mshel/urkusteps/internal/game"
	"github.com/Mshel/urkusteps/internal/journey"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestServices(t *testing.T) Services {
	t.Helper()
	level, err := game.DefaultLevel()
	if err != nil {
		t.Fatalf("DefaultLevel: %v", err)
	}
	journeys, err := game.NewJourneyService(":memory:")
	if err != nil {
		t.Fatalf("NewJourneyService: %v", err)
	}
	t.Cleanup(func() { journeys.Close() })

	return Services{
		Level:    level,
		Assets:   game.LoadEmbeddedAssets(),
		Journeys: journeys,
		Rng:      rand.New(rand.NewSource(1)),
	}
}

func update(t *testing.T, m ControllerModel, msg tea.Msg) (ControllerModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	controller, ok := next.(ControllerModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return controller, cmd
}

// runBatch executes cmd and every command a batch expands into.
func runBatch(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, runBatch(c)...)
	}
	return msgs
}

func testPlan(t *testing.T, rng *rand.Rand) journey.Plan {
	t.Helper()
	plan, err := journey.NewPlan(rng, "Amaru", journey.Healthcare, journey.RandomLocation, journey.LatLng{Lat: -12, Lng: -77})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	return plan
}

func TestControllerJourneyFlow(t *testing.T) {
	services := newTestServices(t)
	m := NewControllerModel(context.Background(), services, nil, 120, 40)
	if m.CurrentScreen != IntroScreen {
		t.Fatalf("starts on %v", m.CurrentScreen)
	}

	m, _ = update(t, m, IntroStartJourney)
	if m.CurrentScreen != SetupScreen {
		t.Fatalf("after start: %v", m.CurrentScreen)
	}

	plan := testPlan(t, services.Rng)
	m, _ = update(t, m, SetupSubmitMsg{Plan: plan})
	if m.CurrentScreen != JourneyScreen || m.JourneyModel == nil {
		t.Fatalf("after setup: %v", m.CurrentScreen)
	}

	m, _ = update(t, m, FaceUrkusMsg{})
	if m.CurrentScreen != GameScreen || m.GameModel == nil {
		t.Fatalf("after facing urkus: %v", m.CurrentScreen)
	}
	m.GameModel.(GameViewModel).cancel()

	m, cmd := update(t, m, JourneyCompleteMsg{Frames: 171})
	if m.CurrentScreen != SetupScreen || m.GameModel != nil {
		t.Fatalf("after completion: %v", m.CurrentScreen)
	}

	saved := false
	for _, msg := range runBatch(cmd) {
		if s, ok := msg.(journeySavedMsg); ok {
			if s.err != nil {
				t.Fatalf("save failed: %v", s.err)
			}
			saved = true
		}
	}
	if !saved {
		t.Fatal("journey was not saved")
	}

	fastest, err := services.Journeys.GetFastestJourneys(context.Background(), 10, 0)
	if err != nil || len(fastest) != 1 {
		t.Fatalf("stored journeys = %v, %v", fastest, err)
	}
	if fastest[0].PlayerName != "Amaru" || fastest[0].Frames != 171 || fastest[0].Career != "healthcare" {
		t.Fatalf("stored %+v", fastest[0])
	}
}

func TestControllerDemoCompletionIsNotSaved(t *testing.T) {
	services := newTestServices(t)
	m := NewControllerModel(context.Background(), services, nil, 120, 40)

	m, cmd := update(t, m, JourneyCompleteMsg{Frames: 50, Demo: true})
	if m.CurrentScreen != IntroScreen {
		t.Fatalf("demo completion went to %v", m.CurrentScreen)
	}
	for _, msg := range runBatch(cmd) {
		if _, ok := msg.(journeySavedMsg); ok {
			t.Fatal("demo run was saved")
		}
	}
}

func TestControllerQuitKeys(t *testing.T) {
	services := newTestServices(t)
	m := NewControllerModel(context.Background(), services, nil, 120, 40)

	_, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q on the intro screen did nothing")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q on the intro screen did not quit")
	}

	m, _ = update(t, m, IntroStartJourney)
	m, _ = update(t, m, runeKey('q'))
	if got := m.SetupModel.(SetupModel).nameInput.Value(); got != "q" {
		t.Fatalf("q was not typed into the name field, got %q", got)
	}

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c did nothing")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c did not quit")
	}
}

func TestControllerLeaderboardAndBack(t *testing.T) {
	services := newTestServices(t)
	m := NewControllerModel(context.Background(), services, nil, 120, 40)

	m, cmd := update(t, m, IntroLeaderboard)
	if m.CurrentScreen != LeaderboardScreen {
		t.Fatalf("went to %v", m.CurrentScreen)
	}
	m, _ = update(t, m, cmd())
	if !m.LeaderboardModel.(LeaderboardModel).loaded {
		t.Fatal("leaderboard did not load")
	}

	m, _ = update(t, m, QuitGameMsg{})
	if m.CurrentScreen != IntroScreen {
		t.Fatalf("back went to %v", m.CurrentScreen)
	}
}

func TestControllerBroadcastsWindowSize(t *testing.T) {
	services := newTestServices(t)
	m := NewControllerModel(context.Background(), services, nil, 80, 24)
	m, _ = update(t, m, SetupSubmitMsg{Plan: testPlan(t, services.Rng)})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 60})
	if m.ScreenWidth != 200 || m.ScreenHeight != 60 {
		t.Fatalf("controller size %dx%d", m.ScreenWidth, m.ScreenHeight)
	}
	if intro := m.IntroModel.(IntroModel); intro.width != 200 {
		t.Errorf("intro width %d", intro.width)
	}
	if journeyView := m.JourneyModel.(JourneyModel); journeyView.width != 200 {
		t.Errorf("journey width %d", journeyView.width)
	}
}
