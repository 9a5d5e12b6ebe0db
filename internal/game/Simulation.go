package game

// Simulation is the state of one platformer session. It is not safe for concurrent
// use, the session loop is its only writer.
type Simulation struct {
	Avatar    Avatar
	Obstacles []Obstacle
	Goal      Rect

	surfaceWidth  float64
	surfaceHeight float64
	spawnX        float64
	spawnY        float64
	legacyGround  bool
	legacyLanding bool
	goalReached   bool
	frame         int
}

func NewSimulation(level Level) *Simulation {
	obstacles := make([]Obstacle, len(level.Obstacles))
	copy(obstacles, level.Obstacles)

	return &Simulation{
		Avatar:        NewAvatar(level.SpawnX, level.SpawnY, level.AvatarWidth, level.AvatarHeight, level.Physics),
		Obstacles:     obstacles,
		Goal:          level.Goal,
		surfaceWidth:  level.SurfaceWidth,
		surfaceHeight: level.SurfaceHeight,
		spawnX:        level.SpawnX,
		spawnY:        level.SpawnY,
		legacyGround:  level.Physics.LegacyGroundOrder,
		legacyLanding: level.Physics.LegacyLanding,
	}
}

// Step advances the session by exactly one frame.
func (s *Simulation) Step(input InputReader) {
	a := &s.Avatar
	previousBottom := a.Y + a.height

	a.Dy += a.gravity
	a.Y += a.Dy

	landed := false
	for _, obstacle := range s.Obstacles {
		if s.landsOn(obstacle.Rect, previousBottom) {
			a.Y = obstacle.Y - a.height
			a.Dy = 0
			a.OnGround = true
			landed = true
		}
	}

	if a.Y+a.height >= s.surfaceHeight {
		a.Y = s.surfaceHeight - a.height
		a.Dy = 0
		a.OnGround = true
	} else if s.legacyGround || !landed {
		a.OnGround = false
	}

	if a.Bounds().Overlaps(s.Goal) {
		s.goalReached = true
	}

	if input.Held(MoveRight) {
		a.X += a.dx
	}
	if input.Held(MoveLeft) {
		a.X -= a.dx
	}
	if input.Held(Jump) && a.OnGround {
		a.Dy = a.jumpPower
	}

	s.frame++
}

// landsOn needs the boxes to overlap and the avatar's bottom edge to have been at or
// above the obstacle top before this frame's move. A body fast enough to clear a thin
// obstacle in one frame passes through it.
//
// With legacy landing the test ignores the obstacle's bottom edge and where the avatar
// came from: horizontal overlap, a bottom edge below the obstacle top and y+dy at or
// below that top are enough.
func (s *Simulation) landsOn(obstacle Rect, previousBottom float64) bool {
	a := s.Avatar
	if s.legacyLanding {
		return a.X < obstacle.Right() &&
			a.X+a.width > obstacle.X &&
			a.Y+a.height > obstacle.Y &&
			a.Y+a.Dy >= obstacle.Y
	}
	return a.Bounds().Overlaps(obstacle) && previousBottom <= obstacle.Y
}

// Reset puts the avatar back on its spawn point and clears the outcome. Obstacles,
// input and OnGround are left alone, the next Step recomputes OnGround.
func (s *Simulation) Reset() {
	s.Avatar.X = s.spawnX
	s.Avatar.Y = s.spawnY
	s.Avatar.Dy = 0
	s.goalReached = false
	s.frame = 0
}

func (s *Simulation) GoalReached() bool {
	return s.goalReached
}

func (s *Simulation) Frame() int {
	return s.frame
}

func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Avatar:        s.Avatar,
		Obstacles:     s.Obstacles,
		Goal:          s.Goal,
		GoalReached:   s.goalReached,
		Frame:         s.frame,
		SurfaceWidth:  s.surfaceWidth,
		SurfaceHeight: s.surfaceHeight,
	}
}

// Snapshot is a copy of the state after a frame. Obstacles are shared with the
// simulation and must not be modified.
type Snapshot struct {
	Avatar        Avatar
	Obstacles     []Obstacle
	Goal          Rect
	GoalReached   bool
	Frame         int
	SurfaceWidth  float64
	SurfaceHeight float64
}

// Surface is anything that can draw a sprite stretched over a rectangle.
type Surface interface {
	Clear()
	DrawImage(asset *Asset, dst Rect)
}

func (snap Snapshot) Draw(surface Surface, assets *AssetStore) {
	surface.Clear()
	for _, obstacle := range snap.Obstacles {
		surface.DrawImage(assets.Get(obstacle.Asset), obstacle.Rect)
	}
	surface.DrawImage(assets.Get(GoalAsset), snap.Goal)
	surface.DrawImage(assets.Get(AvatarAsset), snap.Avatar.Bounds())
}
