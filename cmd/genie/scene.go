package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/genie-sim/genie/internal/actions"
	"github.com/genie-sim/genie/internal/config"
	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/script"
	"github.com/genie-sim/genie/internal/scene"
	"github.com/genie-sim/genie/internal/scripting"
)

// loadScene builds the registry for cfg and loads path with it. The returned
// close func releases the Lua engine, if one was started.
func loadScene(cfg *config.Config, path string, log *zap.Logger) (*cast.Actors, *script.Actions, func(), error) {
	var engine *scripting.Engine
	closeFn := func() {}
	if cfg.Scripting.Dir != "" {
		var err error
		engine, err = scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("scripting: %w", err)
		}
		closeFn = engine.Close
	}

	var out io.Writer = os.Stdout
	if cfg.Render.EveryFrames == 0 {
		out = io.Discard
	}
	reg := scene.DefaultRegistry(scene.Deps{
		Log:    log,
		Output: out,
		Color:  cfg.Render.Color,
		Every:  cfg.Render.EveryFrames,
		Stage:  actions.Stage{Width: cfg.Render.Width, Height: cfg.Render.Height},
		Lua:    engine,
	})

	actors, acts, err := scene.NewLoader(reg).Load(path)
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return actors, acts, closeFn, nil
}

func printScene(actors *cast.Actors, acts *script.Actions) {
	printStat("actors", actors.Len())
	counts := acts.Count()
	for _, c := range script.Categories {
		printStat(c.String()+" actions", counts[c])
	}
}
