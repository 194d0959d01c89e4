package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/clock"
	"github.com/genie-sim/genie/internal/core/script"
	"github.com/genie-sim/genie/internal/traits"
)

// Action runs a global Lua function as an action. The function receives one
// context table:
//
//	ctx.step, ctx.sim_time   -- seconds
//	ctx.frame, ctx.actor_count
//	ctx.bodies               -- array of {x, y, vx, vy, label}; numeric edits are written
//	                            back, nil keeps the old value, anything else is a fault
//	ctx.stop()               -- end direction after this frame
//	ctx.remove_self()        -- remove this action at the frame boundary
//	ctx.remove_actor(i)      -- remove the actor owning ctx.bodies[i]
//
// A Lua error is an action fault and panics.
type Action struct {
	script.Base
	engine *Engine
	fn     string
}

// Action returns a scripted action calling the global function fn.
func (e *Engine) Action(category script.Category, priority int, fn string) (*Action, error) {
	if !e.HasFunction(fn) {
		return nil, fmt.Errorf("lua function %q not found", fn)
	}
	return &Action{Base: script.NewBase(category, priority), engine: e, fn: fn}, nil
}

type bodyRef struct {
	actor *cast.Actor
	body  *traits.Body
}

func (a *Action) Execute(actors *cast.Actors, actions *script.Actions, clk *clock.Clock, cb script.Callback) {
	vm := a.engine.vm

	var refs []bodyRef
	bodies := vm.NewTable()
	cast.Each1(actors, func(actor *cast.Actor, b *traits.Body) {
		t := vm.NewTable()
		t.RawSetString("x", lua.LNumber(b.X))
		t.RawSetString("y", lua.LNumber(b.Y))
		t.RawSetString("vx", lua.LNumber(b.VX))
		t.RawSetString("vy", lua.LNumber(b.VY))
		if l, ok := cast.Get[*traits.Label](actor); ok {
			t.RawSetString("label", lua.LString(l.Text))
		}
		bodies.Append(t)
		refs = append(refs, bodyRef{actor: actor, body: b})
	})

	ctx := vm.NewTable()
	ctx.RawSetString("step", lua.LNumber(clk.Step().Seconds()))
	ctx.RawSetString("sim_time", lua.LNumber(clk.SimTime().Seconds()))
	ctx.RawSetString("frame", lua.LNumber(float64(clk.Frames())))
	ctx.RawSetString("actor_count", lua.LNumber(actors.Len()))
	ctx.RawSetString("bodies", bodies)
	ctx.RawSetString("stop", vm.NewFunction(func(*lua.LState) int {
		cb.OnStop()
		return 0
	}))
	ctx.RawSetString("remove_self", vm.NewFunction(func(*lua.LState) int {
		actions.Remove(a)
		return 0
	}))
	ctx.RawSetString("remove_actor", vm.NewFunction(func(L *lua.LState) int {
		i := L.CheckInt(1)
		if i < 1 || i > len(refs) {
			L.ArgError(1, "body index out of range")
			return 0
		}
		actors.Remove(refs[i-1].actor)
		return 0
	}))

	if err := vm.CallByParam(lua.P{
		Fn:      vm.GetGlobal(a.fn),
		NRet:    0,
		Protect: true,
	}, ctx); err != nil {
		a.fault(err)
	}

	a.writeBack(ctx, refs)
}

// writeBack copies the numeric fields of ctx.bodies back onto the bodies.
// Entries or fields the script set to nil leave the body unchanged; any other
// non-number is a fault.
func (a *Action) writeBack(ctx *lua.LTable, refs []bodyRef) {
	bodies, ok := ctx.RawGetString("bodies").(*lua.LTable)
	if !ok {
		a.fault(fmt.Errorf("ctx.bodies is %s, want table", ctx.RawGetString("bodies").Type()))
	}
	for i, r := range refs {
		var t *lua.LTable
		switch v := bodies.RawGetInt(i + 1).(type) {
		case *lua.LTable:
			t = v
		case *lua.LNilType:
			continue
		default:
			a.fault(fmt.Errorf("ctx.bodies[%d] is %s, want table", i+1, v.Type()))
		}
		for _, f := range []struct {
			key string
			dst *float64
		}{
			{"x", &r.body.X}, {"y", &r.body.Y}, {"vx", &r.body.VX}, {"vy", &r.body.VY},
		} {
			switch v := t.RawGetString(f.key).(type) {
			case lua.LNumber:
				*f.dst = float64(v)
			case *lua.LNilType:
			default:
				a.fault(fmt.Errorf("ctx.bodies[%d].%s is %s, want number", i+1, f.key, v.Type()))
			}
		}
	}
}

func (a *Action) fault(err error) {
	a.engine.log.Error("lua action error", zap.String("func", a.fn), zap.Error(err))
	panic(fmt.Errorf("lua action %s: %w", a.fn, err))
}

// Function returns the name of the Lua function the action calls.
func (a *Action) Function() string { return a.fn }
