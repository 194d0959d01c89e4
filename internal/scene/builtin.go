package scene

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/genie-sim/genie/internal/actions"
	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/script"
	"github.com/genie-sim/genie/internal/scripting"
	"github.com/genie-sim/genie/internal/traits"
)

// Deps are the collaborators built-in kinds need.
type Deps struct {
	Log    *zap.Logger
	Output io.Writer         // render_console target
	Color  bool              // render_console colour
	Every  int               // default render_console interval in frames
	Stage  actions.Stage     // default bounds for confine_bodies
	Lua    *scripting.Engine // nil disables the lua kind
}

// DefaultRegistry returns a registry holding every built-in trait and action
// kind. Scenes loaded by scene_chain resolve against the same registry.
func DefaultRegistry(deps Deps) *Registry {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Output == nil {
		deps.Output = io.Discard
	}

	r := NewRegistry()
	r.RegisterTrait("body", TraitOf[traits.Body]())
	r.RegisterTrait("image", TraitOf[traits.Image]())
	r.RegisterTrait("label", TraitOf[traits.Label]())
	r.RegisterTrait("lifetime", TraitOf[traits.Lifetime]())

	r.RegisterAction("move_bodies", func(e ActionEntry) (script.Action, error) {
		if err := noParams(e); err != nil {
			return nil, err
		}
		return actions.NewMoveBodies(e.Priority), nil
	})
	r.RegisterAction("confine_bodies", func(e ActionEntry) (script.Action, error) {
		stage := deps.Stage
		if err := Decode(e.Params, &stage); err != nil {
			return nil, err
		}
		return actions.NewConfineBodies(e.Priority, stage), nil
	})
	r.RegisterAction("expire_actors", func(e ActionEntry) (script.Action, error) {
		if err := noParams(e); err != nil {
			return nil, err
		}
		return actions.NewExpireActors(e.Priority, deps.Log), nil
	})
	r.RegisterAction("stop_after", func(e ActionEntry) (script.Action, error) {
		var p struct {
			Frames int `mapstructure:"frames"`
		}
		if err := Decode(e.Params, &p); err != nil {
			return nil, err
		}
		if p.Frames <= 0 {
			return nil, errors.New("frames must be positive")
		}
		return actions.NewStopAfter(e.Priority, p.Frames), nil
	})
	r.RegisterAction("render_console", func(e ActionEntry) (script.Action, error) {
		p := struct {
			Every int `mapstructure:"every"`
		}{Every: max(deps.Every, 1)}
		if err := Decode(e.Params, &p); err != nil {
			return nil, err
		}
		if p.Every <= 0 {
			return nil, errors.New("every must be positive")
		}
		return actions.NewRenderConsole(e.Priority, deps.Output, p.Every, deps.Color), nil
	})
	r.RegisterAction("scene_chain", func(e ActionEntry) (script.Action, error) {
		var p struct {
			Path        string `mapstructure:"path"`
			AfterFrames int    `mapstructure:"after_frames"`
		}
		if err := Decode(e.Params, &p); err != nil {
			return nil, err
		}
		if p.Path == "" {
			return nil, errors.New("path is required")
		}
		path := p.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(e.Dir, path)
		}
		// Loaded when the chain fires so scenes may chain back to each other.
		load := func() (*cast.Actors, *script.Actions, error) {
			return NewLoader(r).Load(path)
		}
		return actions.NewSceneChain(e.Priority, p.AfterFrames, load, deps.Log), nil
	})
	r.RegisterAction("lua", func(e ActionEntry) (script.Action, error) {
		if deps.Lua == nil {
			return nil, errors.New("scripting is disabled")
		}
		var p struct {
			Function string `mapstructure:"function"`
		}
		if err := Decode(e.Params, &p); err != nil {
			return nil, err
		}
		if e.Category == "" {
			return nil, errors.New("lua actions need a category")
		}
		c, err := script.ParseCategory(e.Category)
		if err != nil {
			return nil, err
		}
		a, err := deps.Lua.Action(c, e.Priority, p.Function)
		if err != nil {
			return nil, fmt.Errorf("lua: %w", err)
		}
		return a, nil
	})
	return r
}

func noParams(e ActionEntry) error {
	return Decode(e.Params, &struct{}{})
}
