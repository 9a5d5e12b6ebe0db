package game

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

//go:embed pilots/default.lua
var defaultPilotScript string

var ErrInvalidPilot = errors.New("invalid pilot script")

// Pilot drives a session instead of a keyboard.
type Pilot interface {
	Next(snap Snapshot) Controls
}

// LuaPilot asks a script's nextInput(state) for each frame's controls. A Lua state
// is single threaded, so a LuaPilot belongs to one session loop.
type LuaPilot struct {
	luaState *lua.LState
	fn       lua.LValue
}

func NewDefaultPilot() (*LuaPilot, error) {
	return NewLuaPilot(defaultPilotScript)
}

func NewLuaPilot(src string) (*LuaPilot, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(src); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("%w: %v", ErrInvalidPilot, err)
	}

	fn := luaState.GetGlobal("nextInput")
	if fn.Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("%w: nextInput is %s, expected function", ErrInvalidPilot, fn.Type())
	}

	return &LuaPilot{luaState: luaState, fn: fn}, nil
}

// Next never fails the frame, a broken script just lets go of every key.
func (p *LuaPilot) Next(snap Snapshot) Controls {
	err := p.luaState.CallByParam(lua.P{
		Fn:      p.fn,
		NRet:    1,
		Protect: true,
	}, p.stateTable(snap))
	if err != nil {
		log.Warn("Pilot script failed", "error", err)
		return Controls{}
	}

	ret := p.luaState.Get(-1)
	p.luaState.Pop(1)

	luaTable, ok := ret.(*lua.LTable)
	if !ok {
		log.Warn("Pilot returned a non-table value", "type", ret.Type().String())
		return Controls{}
	}

	return Controls{
		Left:  lua.LVAsBool(luaTable.RawGetString("left")),
		Right: lua.LVAsBool(luaTable.RawGetString("right")),
		Jump:  lua.LVAsBool(luaTable.RawGetString("jump")),
	}
}

func (p *LuaPilot) Close() {
	p.luaState.Close()
}

func (p *LuaPilot) stateTable(snap Snapshot) *lua.LTable {
	L := p.luaState

	avatar := L.NewTable()
	avatar.RawSetString("x", lua.LNumber(snap.Avatar.X))
	avatar.RawSetString("y", lua.LNumber(snap.Avatar.Y))
	avatar.RawSetString("dy", lua.LNumber(snap.Avatar.Dy))
	avatar.RawSetString("width", lua.LNumber(snap.Avatar.Width()))
	avatar.RawSetString("height", lua.LNumber(snap.Avatar.Height()))
	avatar.RawSetString("on_ground", lua.LBool(snap.Avatar.OnGround))

	goal := L.NewTable()
	goal.RawSetString("x", lua.LNumber(snap.Goal.X))
	goal.RawSetString("y", lua.LNumber(snap.Goal.Y))
	goal.RawSetString("width", lua.LNumber(snap.Goal.Width))
	goal.RawSetString("height", lua.LNumber(snap.Goal.Height))

	state := L.NewTable()
	state.RawSetString("avatar", avatar)
	state.RawSetString("goal", goal)
	state.RawSetString("frame", lua.LNumber(snap.Frame))
	return state
}
