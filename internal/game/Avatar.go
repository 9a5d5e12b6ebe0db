package game

// Physics holds the per-frame constants of a session. Gravity and Dx are in pixels
// per frame, not per second, so the feel is tied to the frame rate.
type Physics struct {
	Gravity   float64
	JumpPower float64
	Dx        float64
	// LegacyGroundOrder lets the floor test clear an obstacle landing from the same frame.
	LegacyGroundOrder bool
	// LegacyLanding snaps the avatar onto any obstacle whose top is above its own top,
	// so walking into the side of an obstacle lifts the avatar onto it.
	LegacyLanding bool
}

func DefaultPhysics() Physics {
	return Physics{
		Gravity:   DefaultGravity,
		JumpPower: DefaultJumpPower,
		Dx:        DefaultDx,
	}
}

type Avatar struct {
	X        float64
	Y        float64
	Dy       float64
	OnGround bool

	width     float64
	height    float64
	dx        float64
	gravity   float64
	jumpPower float64
}

func NewAvatar(x, y, width, height float64, physics Physics) Avatar {
	return Avatar{
		X:         x,
		Y:         y,
		width:     width,
		height:    height,
		dx:        physics.Dx,
		gravity:   physics.Gravity,
		jumpPower: physics.JumpPower,
	}
}

func (a Avatar) Width() float64     { return a.width }
func (a Avatar) Height() float64    { return a.height }
func (a Avatar) Dx() float64        { return a.dx }
func (a Avatar) Gravity() float64   { return a.gravity }
func (a Avatar) JumpPower() float64 { return a.jumpPower }

func (a Avatar) Bounds() Rect {
	return Rect{X: a.X, Y: a.Y, Width: a.width, Height: a.height}
}
