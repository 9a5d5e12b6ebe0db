package game

import "sync"

type Action int

const (
	MoveLeft Action = iota
	MoveRight
	Jump
)

func (a Action) String() string {
	switch a {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case Jump:
		return "jump"
	default:
		return "unknown"
	}
}

// InputReader is the read side the simulation sees once per frame.
type InputReader interface {
	Held(action Action) bool
}

// InputState is owned by one session. Key handlers write it from the UI goroutine
// while the loop goroutine reads it, so every access takes the lock.
type InputState struct {
	mu   sync.Mutex
	held map[Action]bool
}

func NewInputState() *InputState {
	return &InputState{held: make(map[Action]bool)}
}

func (in *InputState) Press(action Action) {
	in.set(action, true)
}

func (in *InputState) Release(action Action) {
	in.set(action, false)
}

func (in *InputState) Held(action Action) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.held[action]
}

// Apply replaces all held flags at once, used by pilots.
func (in *InputState) Apply(c Controls) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.held[MoveLeft] = c.Left
	in.held[MoveRight] = c.Right
	in.held[Jump] = c.Jump
}

// Clear drops every held key, called when the view goes away.
func (in *InputState) Clear() {
	in.mu.Lock()
	defer in.mu.Unlock()
	clear(in.held)
}

func (in *InputState) set(action Action, held bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.held[action] = held
}

// Controls is a full frame of input, as produced by a Pilot.
type Controls struct {
	Left  bool
	Right bool
	Jump  bool
}

func (c Controls) Held(action Action) bool {
	switch action {
	case MoveLeft:
		return c.Left
	case MoveRight:
		return c.Right
	case Jump:
		return c.Jump
	}
	return false
}
