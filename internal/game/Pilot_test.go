package game

import (
	"errors"
	"testing"
)

func TestNewLuaPilotRejectsBadScripts(t *testing.T) {
	for _, src := range []string{`function nextInput(`, `nextInput = 3`, `x = 1`} {
		if _, err := NewLuaPilot(src); !errors.Is(err, ErrInvalidPilot) {
			t.Errorf("%q: got %v, want ErrInvalidPilot", src, err)
		}
	}
}

func TestLuaPilotNext(t *testing.T) {
	pilot, err := NewLuaPilot(`
function nextInput(state)
  return { right = state.avatar.x < state.goal.x, jump = state.avatar.on_ground, left = state.frame > 100 }
end`)
	if err != nil {
		t.Fatalf("NewLuaPilot: %v", err)
	}
	defer pilot.Close()

	snap := Snapshot{Avatar: NewAvatar(0, 0, 10, 10, DefaultPhysics()), Goal: Rect{X: 50, Width: 1, Height: 1}}
	snap.Avatar.OnGround = true

	got := pilot.Next(snap)
	if got != (Controls{Right: true, Jump: true}) {
		t.Fatalf("got %+v", got)
	}

	snap.Avatar.X = 60
	snap.Avatar.OnGround = false
	snap.Frame = 101
	got = pilot.Next(snap)
	if got != (Controls{Left: true}) {
		t.Fatalf("got %+v", got)
	}
}

func TestLuaPilotFailuresReleaseKeys(t *testing.T) {
	tests := map[string]string{
		"runtime error": `function nextInput(state) error("boom") end`,
		"returns nil":   `function nextInput(state) return nil end`,
		"returns text":  `function nextInput(state) return "right" end`,
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			pilot, err := NewLuaPilot(src)
			if err != nil {
				t.Fatalf("NewLuaPilot: %v", err)
			}
			defer pilot.Close()

			if got := pilot.Next(Snapshot{}); got != (Controls{}) {
				t.Fatalf("got %+v, want no keys held", got)
			}
			// the stack stays usable after a failure
			if got := pilot.Next(Snapshot{}); got != (Controls{}) {
				t.Fatalf("second call got %+v", got)
			}
		})
	}
}

func TestDefaultPilotHeadsForGoal(t *testing.T) {
	pilot, err := NewDefaultPilot()
	if err != nil {
		t.Fatalf("NewDefaultPilot: %v", err)
	}
	defer pilot.Close()

	snap := Snapshot{Avatar: NewAvatar(0, 650, 150, 150, DefaultPhysics()), Goal: Rect{X: 1000, Y: 200, Width: 150, Height: 150}}
	snap.Avatar.OnGround = true
	if got := pilot.Next(snap); !got.Right || got.Left || !got.Jump {
		t.Fatalf("left of goal: got %+v", got)
	}

	snap.Avatar.X = 1300
	snap.Avatar.OnGround = true
	if got := pilot.Next(snap); got.Right || !got.Left || got.Jump {
		t.Fatalf("right of goal: got %+v", got)
	}
}
