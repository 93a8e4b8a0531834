package shutters

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/wheelibin/shutters/internal/rule"
)

// Registry resolves shutter ids to display names. It is built from the
// command service config and handed to whatever needs names, nothing reads a
// package level copy.
type Registry struct {
	names map[string]string
}

func NewRegistry(names map[string]string) *Registry {
	copied := make(map[string]string, len(names))
	for id, name := range names {
		copied[id] = name
	}
	return &Registry{names: copied}
}

func (r *Registry) ShutterName(id string) (string, bool) {
	if r == nil {
		return "", false
	}
	name, ok := r.names[id]
	return name, ok
}

// Refs lists the shutters ordered by name, case insensitively.
func (r *Registry) Refs() []rule.ShutterRef {
	refs := lo.MapToSlice(r.names, func(id string, name string) rule.ShutterRef {
		return rule.ShutterRef{ID: id, DisplayName: name}
	})
	sort.Slice(refs, func(i, j int) bool {
		a, b := strings.ToLower(refs[i].DisplayName), strings.ToLower(refs[j].DisplayName)
		if a == b {
			return refs[i].ID < refs[j].ID
		}
		return a < b
	})
	return refs
}

// Unknown returns the ids that the registry cannot resolve.
func (r *Registry) Unknown(ids []string) []string {
	return lo.Filter(ids, func(id string, _ int) bool {
		_, ok := r.ShutterName(id)
		return !ok
	})
}

// IDForName finds a shutter by display name.
func (r *Registry) IDForName(name string) (string, bool) {
	ref, found := lo.Find(r.Refs(), func(ref rule.ShutterRef) bool {
		return strings.EqualFold(ref.DisplayName, name)
	})
	return ref.ID, found
}
