// Package engine defines the transfer engine a handle runs on, along with
// the live implementation built on [net/http].
//
// An [Engine] opens one [Handle] per URL. Options are applied to the
// handle once, after which it is run exactly once:
//
//	eng, err := engine.New(engine.WithThrottle(10, 5))
//	h, err := eng.Open("https://example.com")
//	rejected := h.Apply(option.Values{option.FollowLocation: true})
//	out := h.Run(ctx)
//
// The fake engine in [github.com/adamwoolhether/xfer/engine/fake] serves
// pre-programmed outcomes for tests.
package engine

import (
	"context"

	"github.com/adamwoolhether/xfer/option"
)

// Engine opens transfer handles and describes the options it exposes.
type Engine interface {
	// Open creates a handle bound to rawURL.
	Open(rawURL string) (Handle, error)
	// Version identifies the engine build for diagnostics.
	Version() string
	// Constants enumerates every named constant the engine defines.
	Constants() []option.Constant
}

// Handle is the engine side state for a single transfer.
type Handle interface {
	// Apply configures the handle, returning the options it does not
	// recognise or cannot accept. Accepted options take effect even when
	// others are rejected.
	Apply(opts option.Values) option.Values
	// Run performs the transfer. It blocks until the transfer completes or
	// fails.
	Run(ctx context.Context) Outcome
}

// Outcome is what a finished transfer reports.
type Outcome struct {
	// Body holds the response when HasBody is set.
	Body    string
	HasBody bool
	// Info is the transfer metadata.
	Info Info
	// Err is the transport error, empty when there was none.
	Err string
	// Failed is set when the transfer did not complete.
	Failed bool
}

// Info is the post transfer metadata. Not every key is always present.
type Info map[string]any

// Common Info keys.
const (
	InfoURL         = "url"
	InfoContentType = "content_type"
	InfoHTTPCode    = "http_code"
)

// HTTPCode returns the response status code, or 0 when absent.
func (i Info) HTTPCode() int {
	switch v := i[InfoHTTPCode].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// URL returns the effective URL, or "" when absent.
func (i Info) URL() string {
	s, _ := i[InfoURL].(string)
	return s
}

// ContentType returns the response content type and whether one was sent.
func (i Info) ContentType() (string, bool) {
	s, ok := i[InfoContentType].(string)
	return s, ok
}
