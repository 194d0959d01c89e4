package script

import (
	"sort"

	"github.com/genie-sim/genie/internal/core/deferred"
)

// Actions is the deferred set of actions in a scene.
type Actions struct {
	*deferred.Set[Action]
}

func NewActions(actions ...Action) *Actions {
	return &Actions{Set: deferred.Of(actions...)}
}

// Select returns the active actions of the given category sorted by ascending
// priority. Actions of equal priority come back in no guaranteed order.
func (s *Actions) Select(category Category) []Action {
	out := s.Query(func(a Action) bool { return a.Category() == category })
	sort.Slice(out, func(i, j int) bool {
		return out[i].Priority() < out[j].Priority()
	})
	return out
}

// Count returns the number of active actions per category.
func (s *Actions) Count() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	s.Each(func(a Action) { counts[a.Category()]++ })
	return counts
}
