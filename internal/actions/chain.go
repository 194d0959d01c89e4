package actions

import (
	"go.uber.org/zap"

	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/clock"
	"github.com/genie-sim/genie/internal/core/script"
)

// SceneLoader builds the actors and actions of a scene.
type SceneLoader func() (*cast.Actors, *script.Actions, error)

// SceneChain moves on to the next scene once it has run for the given number
// of frames. A scene that fails to load stops direction instead. Output
// category.
type SceneChain struct {
	script.Base
	after  int
	frames int
	load   SceneLoader
	log    *zap.Logger
}

func NewSceneChain(priority, afterFrames int, load SceneLoader, log *zap.Logger) *SceneChain {
	if log == nil {
		log = zap.NewNop()
	}
	return &SceneChain{
		Base:  script.NewBase(script.Output, priority),
		after: afterFrames,
		load:  load,
		log:   log,
	}
}

func (s *SceneChain) Execute(_ *cast.Actors, actions *script.Actions, _ *clock.Clock, cb script.Callback) {
	s.frames++
	if s.frames < s.after {
		return
	}
	actions.Remove(s)

	actors, next, err := s.load()
	if err != nil {
		s.log.Error("load next scene", zap.Error(err))
		cb.OnStop()
		return
	}
	cb.OnNext(actors, next)
}
