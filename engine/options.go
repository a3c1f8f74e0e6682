package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/xfer/engine/throttle"
)

// Option is a functional option for configuring the live engine via [New].
type Option func(*options) error
type options struct {
	rt       http.RoundTripper
	throttle *throttle.Config
	tp       trace.TracerProvider
	logger   *slog.Logger
}

// WithTransport replaces the base [http.RoundTripper]. Transport level
// options (TLS verification, proxy, connect timeout) are only honoured
// when rt is an [*http.Transport].
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithThrottle rate limits every transfer the engine runs with the given
// requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		o.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// WithTracerProvider sets the provider transfer spans are started from.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) error {
		if tp == nil {
			return errors.New("tracer provider must not be nil")
		}
		o.tp = tp
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
