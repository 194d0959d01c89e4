package scene

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/script"
)

// TraitFunc builds a trait from the params map of a scene entry.
type TraitFunc func(params map[string]any) (cast.Trait, error)

// ActionFunc builds an action from a scene entry.
type ActionFunc func(e ActionEntry) (script.Action, error)

// Registry maps the kind names used in scene files to constructors.
type Registry struct {
	traits  map[string]TraitFunc
	actions map[string]ActionFunc
}

func NewRegistry() *Registry {
	return &Registry{
		traits:  make(map[string]TraitFunc),
		actions: make(map[string]ActionFunc),
	}
}

// RegisterTrait binds kind to fn, replacing any earlier binding.
func (r *Registry) RegisterTrait(kind string, fn TraitFunc) {
	r.traits[kind] = fn
}

// RegisterAction binds kind to fn, replacing any earlier binding.
func (r *Registry) RegisterAction(kind string, fn ActionFunc) {
	r.actions[kind] = fn
}

// TraitKinds returns the registered trait kinds in name order.
func (r *Registry) TraitKinds() []string { return sortedKeys(r.traits) }

// ActionKinds returns the registered action kinds in name order.
func (r *Registry) ActionKinds() []string { return sortedKeys(r.actions) }

func (r *Registry) trait(kind string, params map[string]any) (cast.Trait, error) {
	fn, ok := r.traits[kind]
	if !ok {
		return nil, fmt.Errorf("unknown trait kind %q", kind)
	}
	return fn(params)
}

func (r *Registry) action(e ActionEntry) (script.Action, error) {
	fn, ok := r.actions[e.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown action kind %q", e.Kind)
	}
	return fn(e)
}

// TraitOf returns a TraitFunc that decodes params into a new *T.
func TraitOf[T any]() TraitFunc {
	return func(params map[string]any) (cast.Trait, error) {
		t := new(T)
		if err := Decode(params, t); err != nil {
			return nil, err
		}
		return t, nil
	}
}

// Decode copies params into out. Unknown keys are an error and duration
// fields accept strings such as "1.5s".
func Decode(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("decode params: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
