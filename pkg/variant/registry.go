package variant

import (
	"sort"
	"strings"

	"github.com/hollowmoor/haunt-engine/pkg/game"
)

var registry = map[string]*StoryTemplate{
	castleTemplate.Name: castleTemplate,
	manorTemplate.Name:  manorTemplate,
}

// Get returns the template registered under name. Lookup is
// case-insensitive and has no side effects.
func Get(name string) (*StoryTemplate, error) {
	t, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &game.UnknownVariantError{Variant: name}
	}
	return t, nil
}

// Names returns the registered variant names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
