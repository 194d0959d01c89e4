package actions

import (
	"go.uber.org/zap"

	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/clock"
	"github.com/genie-sim/genie/internal/core/script"
	"github.com/genie-sim/genie/internal/traits"
)

// ExpireActors counts down every Lifetime by one step and removes actors whose
// lifetime ran out. Removal is deferred to the end of the frame. Update category.
type ExpireActors struct {
	script.Base
	log *zap.Logger
}

func NewExpireActors(priority int, log *zap.Logger) *ExpireActors {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExpireActors{Base: script.NewBase(script.Update, priority), log: log}
}

func (e *ExpireActors) Execute(actors *cast.Actors, _ *script.Actions, clk *clock.Clock, _ script.Callback) {
	dt := clk.Step()
	cast.Each1(actors, func(a *cast.Actor, l *traits.Lifetime) {
		if actors.Marked(a) {
			return
		}
		if l.Tick(dt) {
			actors.Remove(a)
			e.log.Debug("actor expired", zap.String("actor", labelOf(a)))
		}
	})
}

func labelOf(a *cast.Actor) string {
	if l, ok := cast.Get[*traits.Label](a); ok {
		return l.Text
	}
	return "?"
}
