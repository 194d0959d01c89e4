package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/script"
)

// File is the YAML layout of a scene.
type File struct {
	Actors  []ActorEntry  `yaml:"actors"`
	Actions []ActionEntry `yaml:"actions"`
}

type ActorEntry struct {
	Traits []TraitEntry `yaml:"traits"`
}

type TraitEntry struct {
	Kind   string         `yaml:"kind"`
	Params map[string]any `yaml:"params"`
}

// ActionEntry is one action of a scene. Category may be left empty for
// built-in kinds, which have a fixed category; when given it must match.
type ActionEntry struct {
	Kind     string         `yaml:"kind"`
	Category string         `yaml:"category"`
	Priority int            `yaml:"priority"`
	Params   map[string]any `yaml:"params"`

	// Dir is the directory of the scene file, for resolving relative paths.
	Dir string `yaml:"-"`
}

// Loader builds cast and action sets from scene files.
type Loader struct {
	reg *Registry
}

func NewLoader(reg *Registry) *Loader {
	return &Loader{reg: reg}
}

// Load reads the scene at path.
func (l *Loader) Load(path string) (*cast.Actors, *script.Actions, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scene: %w", err)
	}
	actors, actions, err := l.Parse(raw, filepath.Dir(path))
	if err != nil {
		return nil, nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return actors, actions, nil
}

// Parse builds a scene from YAML. dir is used to resolve relative paths in
// action params.
func (l *Loader) Parse(raw []byte, dir string) (*cast.Actors, *script.Actions, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, nil, fmt.Errorf("parse scene: %w", err)
	}

	actors := cast.NewActors()
	for i, ae := range f.Actors {
		a := cast.NewActor()
		for j, te := range ae.Traits {
			t, err := l.reg.trait(te.Kind, te.Params)
			if err != nil {
				return nil, nil, fmt.Errorf("actor %d trait %d: %w", i, j, err)
			}
			a.AddTrait(t)
		}
		actors.Add(a)
	}

	actions := script.NewActions()
	for i, e := range f.Actions {
		e.Dir = dir
		a, err := l.reg.action(e)
		if err != nil {
			return nil, nil, fmt.Errorf("action %d (%s): %w", i, e.Kind, err)
		}
		if e.Category != "" {
			c, err := script.ParseCategory(e.Category)
			if err != nil {
				return nil, nil, fmt.Errorf("action %d (%s): %w", i, e.Kind, err)
			}
			if c != a.Category() {
				return nil, nil, fmt.Errorf("action %d (%s): category %s, kind runs in %s", i, e.Kind, c, a.Category())
			}
		}
		actions.Add(a)
	}
	return actors, actions, nil
}
