package actions

import (
	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/clock"
	"github.com/genie-sim/genie/internal/core/script"
	"github.com/genie-sim/genie/internal/traits"
)

// MoveBodies integrates every Body by one clock step. Update category.
type MoveBodies struct {
	script.Base
}

func NewMoveBodies(priority int) *MoveBodies {
	return &MoveBodies{Base: script.NewBase(script.Update, priority)}
}

func (m *MoveBodies) Execute(actors *cast.Actors, _ *script.Actions, clk *clock.Clock, _ script.Callback) {
	dt := clk.Step()
	cast.Each1(actors, func(_ *cast.Actor, b *traits.Body) {
		b.Move(dt)
	})
}

// Stage is the rectangle bodies are kept inside.
type Stage struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// ConfineBodies keeps bodies inside the stage, reflecting their velocity off
// the edge they crossed. Update category; run it after MoveBodies.
type ConfineBodies struct {
	script.Base
	stage Stage
}

func NewConfineBodies(priority int, stage Stage) *ConfineBodies {
	return &ConfineBodies{Base: script.NewBase(script.Update, priority), stage: stage}
}

func (c *ConfineBodies) Execute(actors *cast.Actors, _ *script.Actions, _ *clock.Clock, _ script.Callback) {
	cast.Each1(actors, func(_ *cast.Actor, b *traits.Body) {
		b.X, b.VX = bounce(b.X, b.VX, c.stage.Width-b.Width)
		b.Y, b.VY = bounce(b.Y, b.VY, c.stage.Height-b.Height)
	})
}

// bounce folds pos back into [0, limit] and turns v inward when pos was out
// of range.
func bounce(pos, v, limit float64) (float64, float64) {
	if limit < 0 {
		limit = 0
	}
	switch {
	case pos < 0:
		pos = min(-pos, limit)
		if v < 0 {
			v = -v
		}
	case pos > limit:
		pos = max(limit-(pos-limit), 0)
		if v > 0 {
			v = -v
		}
	}
	return pos, v
}
