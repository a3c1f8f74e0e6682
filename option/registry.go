package option

import (
	"slices"
	"strings"
)

// settablePrefix marks the constants that configure a transfer.
const settablePrefix = "CURLOPT_"

// diagnostic constants that are settable despite not carrying the prefix.
var allowList = []string{
	"CURLINFO_HEADER_OUT",
}

// Registry maps option identifiers to their canonical names. It is
// immutable once built and may be shared freely between goroutines.
type Registry struct {
	version string
	names   map[ID]string
	ids     map[string]ID
}

// NewRegistry builds a Registry from the constants an engine exposes,
// keeping only settable options. When two constants share a value the
// one enumerated last provides the canonical name.
func NewRegistry(version string, consts []Constant) *Registry {
	r := Registry{
		version: version,
		names:   make(map[ID]string),
		ids:     make(map[string]ID),
	}

	for _, c := range consts {
		if !settable(c.Name) {
			continue
		}
		r.names[c.Value] = c.Name
		r.ids[c.Name] = c.Value
	}

	return &r
}

func settable(name string) bool {
	return strings.HasPrefix(name, settablePrefix) || slices.Contains(allowList, name)
}

// Name returns the canonical name for id.
func (r *Registry) Name(id ID) (string, bool) {
	name, ok := r.names[id]
	return name, ok
}

// Lookup resolves a constant name, aliases included, to its identifier.
func (r *Registry) Lookup(name string) (ID, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// Has reports whether id is a known settable option.
func (r *Registry) Has(id ID) bool {
	_, ok := r.names[id]
	return ok
}

// Len returns the number of distinct option identifiers.
func (r *Registry) Len() int {
	return len(r.names)
}

// IDs returns every known identifier in ascending order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.names))
	for id := range r.names {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// Version is the version string of the engine the registry was built from.
func (r *Registry) Version() string {
	return r.version
}
