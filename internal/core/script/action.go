package script

import (
	"fmt"

	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/clock"
)

// Category decides which phase of a frame runs an action.
type Category int

const (
	Input  Category = iota // once per frame, after the clock tick
	Update                 // once per caught-up simulation step
	Output                 // once per frame, before removals are applied
)

// Categories lists every category in phase order.
var Categories = [...]Category{Input, Update, Output}

func (c Category) String() string {
	switch c {
	case Input:
		return "input"
	case Update:
		return "update"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown action category %q", s)
}

// Callback is the director surface that actions use to steer the loop.
type Callback interface {
	// OnStop ends direction once the current frame has finished.
	OnStop()
	// OnNext swaps in the actors and actions of the next scene.
	OnNext(actors *cast.Actors, actions *Actions)
}

// Action is one unit of per-frame work. Its category is fixed for its
// lifetime; its priority orders it within the category, lowest first.
//
// Actions are stored in a set, so implementations must be comparable;
// pointer receivers are the norm.
type Action interface {
	Category() Category
	Priority() int
	Execute(actors *cast.Actors, actions *Actions, clk *clock.Clock, cb Callback)
}

// Base carries the category and priority of an action. Embed it by value.
type Base struct {
	category Category
	priority int
}

func NewBase(category Category, priority int) Base {
	return Base{category: category, priority: priority}
}

func (b *Base) Category() Category { return b.category }
func (b *Base) Priority() int      { return b.priority }
func (b *Base) SetPriority(p int)  { b.priority = p }

// FuncAction adapts a plain function into an Action.
type FuncAction struct {
	Base
	fn func(actors *cast.Actors, actions *Actions, clk *clock.Clock, cb Callback)
}

// Func returns an action running fn.
func Func(category Category, priority int, fn func(*cast.Actors, *Actions, *clock.Clock, Callback)) *FuncAction {
	return &FuncAction{Base: NewBase(category, priority), fn: fn}
}

func (f *FuncAction) Execute(actors *cast.Actors, actions *Actions, clk *clock.Clock, cb Callback) {
	f.fn(actors, actions, clk, cb)
}
