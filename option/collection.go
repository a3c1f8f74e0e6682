// Package option validates and merges numbered transfer options.
//
// A [Registry] is built once from the constants an engine exposes and
// injected into every [Collection]. A Collection holds the effective
// identifier to value map along with a name keyed mirror used for
// diagnostics:
//
//	reg := option.NewRegistry(eng.Version(), eng.Constants())
//	coll, err := option.NewCollection(reg)
//	err = coll.Update(option.Values{option.MaxRedirs: 5})
package option

import (
	"fmt"
	"maps"
	"slices"
)

// Values maps option identifiers to values. A value is a bool, an integer,
// a float64, a string, a []string, a map[string]string of form fields or
// an io.Writer sink.
type Values map[ID]any

// Entry is one option in insertion order.
type Entry struct {
	ID    ID
	Name  string
	Value any
}

// Defaults returns the documented default option set.
func Defaults() Values {
	return Values{
		// follow any Location header the server sends
		FollowLocation: true,
		// return the body to the caller instead of writing it out
		ReturnTransfer: true,
		// empty asks for every encoding the engine can decode
		AcceptEncoding: "",
		// record the outgoing request headers in the transfer info
		HeaderOut: true,
	}
}

// Collection is a validated set of options. It is not safe for concurrent
// mutation.
type Collection struct {
	registry *Registry
	options  Values
	debug    map[string]any
	order    []ID
}

// NewCollection returns a Collection seeded with [Defaults].
func NewCollection(reg *Registry) (*Collection, error) {
	return NewCollectionWith(reg, Defaults())
}

// NewCollectionWith returns a Collection seeded with opts instead of the
// defaults. opts is validated like [Collection.Update].
func NewCollectionWith(reg *Registry, opts Values) (*Collection, error) {
	c := Collection{registry: reg}
	if err := c.Set(opts); err != nil {
		return nil, err
	}

	return &c, nil
}

// Set discards the current options and applies opts, or the defaults when
// opts is nil.
func (c *Collection) Set(opts Values) error {
	c.options = make(Values)
	c.debug = make(map[string]any)
	c.order = nil

	if opts == nil {
		opts = Defaults()
	}

	return c.Update(opts)
}

// Update merges opts into the collection, last write wins per identifier.
// Identifiers unknown to the registry are collected and reported together
// as an [*OptionsError]. Known identifiers from the same call are applied
// regardless, so a failed Update may still have changed the collection.
func (c *Collection) Update(opts Values) error {
	if len(opts) == 0 {
		return nil
	}

	invalid := make(Values)
	for _, id := range slices.Sorted(maps.Keys(opts)) {
		name, ok := c.registry.Name(id)
		if !ok {
			invalid[id] = opts[id]
			continue
		}

		if _, exists := c.options[id]; !exists {
			c.order = append(c.order, id)
		}
		c.options[id] = opts[id]
		c.debug[name] = opts[id]
	}

	if len(invalid) > 0 {
		return &OptionsError{
			Rejected: invalid,
			Version:  c.registry.Version(),
			Err:      ErrInvalidOptions,
		}
	}

	return nil
}

// UpdateRaw is Update for loosely typed input such as decoded
// configuration. Every key must be an integer; a name or any other key type
// fails with [ErrInvalidOption] before anything is applied.
func (c *Collection) UpdateRaw(opts map[any]any) error {
	typed := make(Values, len(opts))
	for key, val := range opts {
		id, ok := toID(key)
		if !ok {
			return fmt.Errorf("%w: key %v (%T) is not an option identifier", ErrInvalidOption, key, key)
		}
		typed[id] = val
	}

	return c.Update(typed)
}

func toID(key any) (ID, bool) {
	switch k := key.(type) {
	case ID:
		return k, true
	case int:
		return ID(k), true
	case int8:
		return ID(k), true
	case int16:
		return ID(k), true
	case int32:
		return ID(k), true
	case int64:
		return ID(k), true
	case uint:
		return ID(k), true
	case uint8:
		return ID(k), true
	case uint16:
		return ID(k), true
	case uint32:
		return ID(k), true
	case uint64:
		return ID(k), true
	default:
		return 0, false
	}
}

// Get returns a copy of the effective options.
func (c *Collection) Get() Values {
	return maps.Clone(c.options)
}

// Option returns the value set for id.
func (c *Collection) Option(id ID) (any, bool) {
	v, ok := c.options[id]
	return v, ok
}

// Debug returns a copy of the options keyed by canonical name.
func (c *Collection) Debug() map[string]any {
	return maps.Clone(c.debug)
}

// DebugOrdered returns the options in the order they were first set.
func (c *Collection) DebugOrdered() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		name, _ := c.registry.Name(id)
		entries = append(entries, Entry{ID: id, Name: name, Value: c.options[id]})
	}

	return entries
}

// Len returns the number of options set.
func (c *Collection) Len() int {
	return len(c.options)
}

// Registry returns the registry the collection validates against.
func (c *Collection) Registry() *Registry {
	return c.registry
}

// Clone returns an independent copy. Slice and map values are shared.
func (c *Collection) Clone() *Collection {
	return &Collection{
		registry: c.registry,
		options:  maps.Clone(c.options),
		debug:    maps.Clone(c.debug),
		order:    slices.Clone(c.order),
	}
}
