package client

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/adamwoolhether/xfer/engine"
	"github.com/adamwoolhether/xfer/option"
)

// Handle is an engine handle with its options applied. The options are
// frozen at construction.
type Handle struct {
	id      uuid.UUID
	url     string
	raw     engine.Handle
	options *option.Collection
	logger  *slog.Logger
}

// NewHandle opens a handle for rawURL on eng and applies every option in
// coll to it. Options the engine rejects are reported together with the
// engine version as an [*option.OptionsError].
func NewHandle(eng engine.Engine, rawURL string, coll *option.Collection, logger *slog.Logger) (*Handle, error) {
	if logger == nil {
		logger = slog.Default()
	}

	raw, err := eng.Open(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrHandleInit, rawURL, err)
	}

	if rejected := raw.Apply(coll.Get()); len(rejected) > 0 {
		names := make(map[option.ID]string, len(rejected))
		for id := range rejected {
			if name, ok := coll.Registry().Name(id); ok {
				names[id] = name
			}
		}

		return nil, &option.OptionsError{
			Rejected: rejected,
			Names:    names,
			Version:  eng.Version(),
			Err:      option.ErrInvalidOptions,
		}
	}

	h := Handle{
		id:      uuid.New(),
		url:     rawURL,
		raw:     raw,
		options: coll,
		logger:  logger,
	}

	logger.Debug("handle created", "handle", h.id, "url", rawURL, "options", coll.Len())

	return &h, nil
}

// ID identifies the handle in logs and traces.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

func (h *Handle) URL() string {
	return h.url
}

// Raw exposes the engine handle.
func (h *Handle) Raw() engine.Handle {
	return h.raw
}

// Options returns the collection the handle was built from. Changing it
// has no effect on the handle.
func (h *Handle) Options() *option.Collection {
	return h.options
}
