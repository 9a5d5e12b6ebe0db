package game

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

//go:embed levels/default.lua
var defaultLevelScript string

var ErrInvalidLevel = errors.New("invalid level")

// Level is everything a Simulation is built from.
type Level struct {
	Name          string
	SurfaceWidth  float64
	SurfaceHeight float64
	SpawnX        float64
	SpawnY        float64
	AvatarWidth   float64
	AvatarHeight  float64
	Physics       Physics
	Goal          Rect
	Obstacles     []Obstacle
}

func DefaultLevel() (Level, error) {
	return LoadLevelScript("default", defaultLevelScript)
}

// LoadLevel loads the level script at path, or the embedded one when path is empty.
func LoadLevel(path string) (Level, error) {
	if path == "" {
		return DefaultLevel()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("failed to read level %s: %w", path, err)
	}
	return LoadLevelScript(path, string(src))
}

// LoadLevelScript runs src and reads the global "level" table it defines.
// Missing numeric fields fall back to the defaults in Config.go.
func LoadLevelScript(name, src string) (Level, error) {
	luaState := lua.NewState()
	defer luaState.Close()

	if err := luaState.DoString(src); err != nil {
		return Level{}, fmt.Errorf("%w: %s: %v", ErrInvalidLevel, name, err)
	}

	levelTable, ok := luaState.GetGlobal("level").(*lua.LTable)
	if !ok {
		return Level{}, fmt.Errorf("%w: %s: global 'level' is not a table", ErrInvalidLevel, name)
	}

	level := Level{
		Name:          luaString(levelTable, "name", name),
		SurfaceWidth:  SurfaceWidth,
		SurfaceHeight: SurfaceHeight,
		AvatarWidth:   DefaultAvatarW,
		AvatarHeight:  DefaultAvatarH,
		Physics:       DefaultPhysics(),
	}

	if surface, ok := levelTable.RawGetString("surface").(*lua.LTable); ok {
		level.SurfaceWidth = luaNumber(surface, "width", level.SurfaceWidth)
		level.SurfaceHeight = luaNumber(surface, "height", level.SurfaceHeight)
	}
	if spawn, ok := levelTable.RawGetString("spawn").(*lua.LTable); ok {
		level.SpawnX = luaNumber(spawn, "x", 0)
		level.SpawnY = luaNumber(spawn, "y", 0)
	}
	if avatar, ok := levelTable.RawGetString("avatar").(*lua.LTable); ok {
		level.AvatarWidth = luaNumber(avatar, "width", level.AvatarWidth)
		level.AvatarHeight = luaNumber(avatar, "height", level.AvatarHeight)
		level.Physics.Dx = luaNumber(avatar, "dx", level.Physics.Dx)
		level.Physics.Gravity = luaNumber(avatar, "gravity", level.Physics.Gravity)
		level.Physics.JumpPower = luaNumber(avatar, "jump", level.Physics.JumpPower)
		level.Physics.LegacyGroundOrder = lua.LVAsBool(avatar.RawGetString("legacy_ground"))
		level.Physics.LegacyLanding = lua.LVAsBool(avatar.RawGetString("legacy_landing"))
	}

	goal, ok := levelTable.RawGetString("goal").(*lua.LTable)
	if !ok {
		return Level{}, fmt.Errorf("%w: %s: missing goal", ErrInvalidLevel, name)
	}
	level.Goal = luaRect(goal)

	if obstacles, ok := levelTable.RawGetString("obstacles").(*lua.LTable); ok {
		var convErr error
		obstacles.ForEach(func(_, value lua.LValue) {
			entry, ok := value.(*lua.LTable)
			if !ok {
				convErr = fmt.Errorf("%w: %s: obstacle entry is %s, expected table", ErrInvalidLevel, name, value.Type())
				return
			}
			level.Obstacles = append(level.Obstacles, Obstacle{
				Rect:  luaRect(entry),
				Asset: AssetName(luaString(entry, "asset", string(MountainAsset))),
			})
		})
		if convErr != nil {
			return Level{}, convErr
		}
	}

	if err := level.Validate(); err != nil {
		return Level{}, fmt.Errorf("%s: %w", name, err)
	}

	log.Debug("Level loaded", "name", level.Name, "obstacles", len(level.Obstacles))
	return level, nil
}

func (l Level) Validate() error {
	if !finite(l.SurfaceWidth, l.SurfaceHeight, l.SpawnX, l.SpawnY, l.AvatarWidth, l.AvatarHeight) {
		return fmt.Errorf("%w: surface, spawn and avatar size must be finite", ErrInvalidLevel)
	}
	if !finite(l.Physics.Gravity, l.Physics.JumpPower, l.Physics.Dx) {
		return fmt.Errorf("%w: physics must be finite", ErrInvalidLevel)
	}
	if !(l.SurfaceWidth > 0 && l.SurfaceHeight > 0) {
		return fmt.Errorf("%w: surface must have a positive size", ErrInvalidLevel)
	}
	if !(l.AvatarWidth > 0 && l.AvatarHeight > 0) {
		return fmt.Errorf("%w: avatar must have a positive size", ErrInvalidLevel)
	}
	if !(l.Physics.Gravity > 0) {
		return fmt.Errorf("%w: gravity must be positive", ErrInvalidLevel)
	}
	if !(l.Physics.JumpPower < 0) {
		return fmt.Errorf("%w: jump power must be negative", ErrInvalidLevel)
	}
	if !l.Goal.valid() {
		return fmt.Errorf("%w: goal must be finite with a positive size", ErrInvalidLevel)
	}
	for i, obstacle := range l.Obstacles {
		if !obstacle.valid() {
			return fmt.Errorf("%w: obstacle %d must be finite with a positive size", ErrInvalidLevel, i+1)
		}
		if !slices.Contains(RequiredAssets, obstacle.Asset) {
			return fmt.Errorf("%w: obstacle %d uses unknown asset %q", ErrInvalidLevel, i+1, obstacle.Asset)
		}
	}
	return nil
}

func (r Rect) valid() bool {
	return finite(r.X, r.Y, r.Width, r.Height) && r.Width > 0 && r.Height > 0
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func luaRect(tbl *lua.LTable) Rect {
	return Rect{
		X:      luaNumber(tbl, "x", 0),
		Y:      luaNumber(tbl, "y", 0),
		Width:  luaNumber(tbl, "width", 0),
		Height: luaNumber(tbl, "height", 0),
	}
}

func luaNumber(tbl *lua.LTable, key string, fallback float64) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return fallback
}

func luaString(tbl *lua.LTable, key string, fallback string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return fallback
}
