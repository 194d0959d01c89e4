package actions

import (
	"os"

	"go.uber.org/zap"

	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/clock"
	"github.com/genie-sim/genie/internal/core/script"
)

// StopAfter stops direction in the frame where it has run the given number of
// times. Input category.
type StopAfter struct {
	script.Base
	frames int
	seen   int
}

func NewStopAfter(priority, frames int) *StopAfter {
	return &StopAfter{Base: script.NewBase(script.Input, priority), frames: frames}
}

func (s *StopAfter) Execute(_ *cast.Actors, _ *script.Actions, _ *clock.Clock, cb script.Callback) {
	s.seen++
	if s.seen >= s.frames {
		cb.OnStop()
	}
}

// StopOnSignal drains a signal channel without blocking and stops direction
// when a signal has arrived. Input category.
type StopOnSignal struct {
	script.Base
	signals <-chan os.Signal
	log     *zap.Logger
}

func NewStopOnSignal(priority int, signals <-chan os.Signal, log *zap.Logger) *StopOnSignal {
	if log == nil {
		log = zap.NewNop()
	}
	return &StopOnSignal{Base: script.NewBase(script.Input, priority), signals: signals, log: log}
}

func (s *StopOnSignal) Execute(_ *cast.Actors, _ *script.Actions, _ *clock.Clock, cb script.Callback) {
	for {
		select {
		case sig, ok := <-s.signals:
			if !ok {
				s.signals = nil
				cb.OnStop()
				return
			}
			s.log.Info("stop signal received", zap.String("signal", sig.String()))
			cb.OnStop()
		default:
			return
		}
	}
}
