package game

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// FrameMsg carries the state after one frame to the UI.
type FrameMsg struct {
	Snapshot Snapshot
}

// GameManager runs one session's simulation. Sessions never share one.
type GameManager struct {
	UpdateChannel chan FrameMsg
	ResetChannel  chan struct{}
	Assets        *AssetStore
	Level         Level

	simulation *Simulation
	input      *InputState
	pilot      Pilot
	running    atomic.Bool
	frameEvery time.Duration
}

func NewGameManager(level Level, assets *AssetStore) *GameManager {
	return &GameManager{
		UpdateChannel: make(chan FrameMsg, updateChannelSize),
		ResetChannel:  make(chan struct{}, resetChannelSize),
		Assets:        assets,
		Level:         level,
		simulation:    NewSimulation(level),
		input:         NewInputState(),
		frameEvery:    FrameDuration,
	}
}

// WithPilot hands the controls to p, keyboard input is then overwritten every frame.
func (gm *GameManager) WithPilot(p Pilot) *GameManager {
	gm.pilot = p
	return gm
}

func (gm *GameManager) Input() *InputState {
	return gm.input
}

func (gm *GameManager) IsRunning() bool {
	return gm.running.Load()
}

// StartGameLoop blocks, stepping once per frame until ctx is done. It refuses to
// start without loaded assets and is a no-op if the loop already runs.
func (gm *GameManager) StartGameLoop(ctx context.Context) error {
	if state := gm.Assets.State(); state != AssetsLoaded {
		return fmt.Errorf("%w: state is %s", ErrAssetsNotLoaded, state)
	}
	if !gm.running.CompareAndSwap(false, true) {
		return nil
	}
	defer gm.running.Store(false)

	log.Debug("Game loop started.", "level", gm.Level.Name)
	ticker := time.NewTicker(gm.frameEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// a reset requested right before teardown still applies
			select {
			case <-gm.ResetChannel:
				gm.simulation.Reset()
			default:
			}
			gm.input.Clear()
			log.Debug("Game loop stopped.", "frame", gm.simulation.Frame())
			return nil
		case <-gm.ResetChannel:
			gm.simulation.Reset()
			gm.publish(gm.simulation.Snapshot())
		case <-ticker.C:
			gm.processFrame()
		}
	}
}

// Reset asks the loop to put the session back to its start. Requests made while
// one is already pending collapse into it.
func (gm *GameManager) Reset() {
	select {
	case gm.ResetChannel <- struct{}{}:
	default:
	}
}

func (gm *GameManager) processFrame() {
	if gm.pilot != nil {
		gm.input.Apply(gm.pilot.Next(gm.simulation.Snapshot()))
	}

	wasReached := gm.simulation.GoalReached()
	gm.simulation.Step(gm.input)
	snap := gm.simulation.Snapshot()

	if snap.GoalReached && !wasReached {
		log.Info("Goal reached", "level", gm.Level.Name, "frame", snap.Frame)
	}
	gm.publish(snap)
}

// publish keeps only the newest frame, a slow view skips frames but never stalls physics.
func (gm *GameManager) publish(snap Snapshot) {
	select {
	case <-gm.UpdateChannel:
	default:
	}
	select {
	case gm.UpdateChannel <- FrameMsg{Snapshot: snap}:
	default:
	}
}
