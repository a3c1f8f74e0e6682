// Package fake provides an in-memory [engine.Engine] that serves a
// programmed outcome, for testing code built on top of handles without
// touching the network.
package fake

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/adamwoolhether/xfer/engine"
	"github.com/adamwoolhether/xfer/option"
)

// Version is reported by Engine when Ver is empty.
const Version = "xfer-fake/1.0.0"

// Engine serves Outcome for every handle it opens.
type Engine struct {
	// Outcome is returned, copied, by every Run.
	Outcome engine.Outcome
	// Unsupported ids are rejected at apply, as an older engine would.
	Unsupported []option.ID
	// OpenErr, when set, fails every Open.
	OpenErr error
	// Ver overrides Version.
	Ver string

	mu      sync.Mutex
	handles []*Handle
}

// OK returns an engine answering 200 with body.
func OK(body string) *Engine {
	return &Engine{
		Outcome: engine.Outcome{
			Body:    body,
			HasBody: true,
			Info:    engine.Info{engine.InfoHTTPCode: 200},
		},
	}
}

// Open records and returns a new handle for rawURL.
func (e *Engine) Open(rawURL string) (engine.Handle, error) {
	if e.OpenErr != nil {
		return nil, e.OpenErr
	}

	h := &Handle{engine: e, URL: rawURL}

	e.mu.Lock()
	e.handles = append(e.handles, h)
	e.mu.Unlock()

	return h, nil
}

func (e *Engine) Version() string {
	if e.Ver != "" {
		return e.Ver
	}
	return Version
}

func (e *Engine) Constants() []option.Constant {
	return option.CurlConstants()
}

// Handles returns the handles opened so far.
func (e *Engine) Handles() []*Handle {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]*Handle(nil), e.handles...)
}

// Handle is a recorded fake transfer.
type Handle struct {
	engine *Engine

	URL string

	mu      sync.Mutex
	applied option.Values
	runs    int
}

// Apply records opts, rejecting the engine's Unsupported ids.
func (h *Handle) Apply(opts option.Values) option.Values {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.applied == nil {
		h.applied = make(option.Values)
	}

	var rejected option.Values
	for id, v := range opts {
		if slices.Contains(h.engine.Unsupported, id) {
			if rejected == nil {
				rejected = make(option.Values)
			}
			rejected[id] = v
			continue
		}
		h.applied[id] = v
	}

	return rejected
}

// Run returns a copy of the engine's outcome. The url info key is filled
// with the handle's URL when the outcome does not carry one.
func (h *Handle) Run(_ context.Context) engine.Outcome {
	h.mu.Lock()
	h.runs++
	h.mu.Unlock()

	out := h.engine.Outcome
	out.Info = maps.Clone(out.Info)
	if out.Info == nil {
		out.Info = engine.Info{}
	}
	if _, ok := out.Info[engine.InfoURL]; !ok {
		out.Info[engine.InfoURL] = h.URL
	}

	return out
}

// Applied returns a copy of the options accepted so far.
func (h *Handle) Applied() option.Values {
	h.mu.Lock()
	defer h.mu.Unlock()

	return maps.Clone(h.applied)
}

// Runs reports how many times Run was called.
func (h *Handle) Runs() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.runs
}
