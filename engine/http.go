package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/xfer/engine/throttle"
	"github.com/adamwoolhether/xfer/option"
)

// Version of the live engine.
const Version = "xfer-nethttp/1.0.0"

const tracerName = "github.com/adamwoolhether/xfer/engine"

// HTTP is the live engine. Every handle gets its own connection state, so
// handles never share pooled connections.
type HTTP struct {
	base     http.RoundTripper
	throttle *throttle.Throttle
	tracer   trace.Tracer
	logger   *slog.Logger
}

// New builds the live engine. If not specified, [http.DefaultTransport]
// and the global tracer provider are used.
func New(optFns ...Option) (*HTTP, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying engine option: %w", err)
		}
	}

	e := HTTP{
		base:   http.DefaultTransport,
		logger: slog.Default(),
	}

	if opts.rt != nil {
		e.base = opts.rt
	}

	if opts.logger != nil {
		e.logger = opts.logger
	}

	tp := opts.tp
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	e.tracer = tp.Tracer(tracerName)

	if opts.throttle != nil {
		t, err := throttle.New(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return e.logger })
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		e.throttle = t
	}

	return &e, nil
}

// Version reports the engine and Go runtime versions.
func (e *HTTP) Version() string {
	return fmt.Sprintf("%s (%s)", Version, runtime.Version())
}

// Constants returns the libcurl constant table.
func (e *HTTP) Constants() []option.Constant {
	return option.CurlConstants()
}

// ErrMalformedURL is returned by Open for URLs that cannot be parsed.
var ErrMalformedURL = errors.New("malformed url")

// Open binds a new handle to rawURL. A URL without a scheme is treated as
// http, the way libcurl guesses it.
func (e *HTTP) Open(rawURL string) (Handle, error) {
	target := rawURL
	if !strings.Contains(target, "://") {
		target = "http://" + target
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrMalformedURL, rawURL)
	}

	return &httpHandle{
		engine: e,
		rawURL: target,
		url:    u,
		s:      defaultSettings(),
	}, nil
}
