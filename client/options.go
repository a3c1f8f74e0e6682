package client

import (
	"errors"
	"io"
	"log/slog"

	"github.com/adamwoolhether/xfer/engine"
	"github.com/adamwoolhether/xfer/option"
)

// Option is a functional option for configuring a [Factory] via [NewFactory].
type Option func(*options) error
type options struct {
	engine     engine.Engine
	registry   *option.Registry
	collection *option.Collection
	logger     *slog.Logger
	presets    []func(*Factory) error
}

var errNilLogWriter = errors.New("log writer must not be nil")

// WithEngine replaces the live engine.
func WithEngine(eng engine.Engine) Option {
	return func(o *options) error {
		if eng == nil {
			return errors.New("engine must not be nil")
		}
		o.engine = eng
		return nil
	}
}

// WithRegistry injects a prebuilt registry instead of building one from
// the engine's constants.
func WithRegistry(reg *option.Registry) Option {
	return func(o *options) error {
		if reg == nil {
			return errors.New("registry must not be nil")
		}
		o.registry = reg
		return nil
	}
}

// WithCollection seeds the factory with an existing collection. It takes
// precedence over WithRegistry.
func WithCollection(coll *option.Collection) Option {
	return func(o *options) error {
		if coll == nil {
			return errors.New("collection must not be nil")
		}
		o.collection = coll
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the factory and the
// handles it creates.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithInsecure applies [Factory.Insecure] at build time.
func WithInsecure() Option {
	return preset(func(f *Factory) error { return f.Insecure() })
}

// WithOptions applies [Factory.SetOptions] at build time.
func WithOptions(opts option.Values) Option {
	return preset(func(f *Factory) error { return f.SetOptions(opts) })
}

// WithHeaders applies [Factory.SetHeaders] at build time.
func WithHeaders(headers []string) Option {
	return preset(func(f *Factory) error { return f.SetHeaders(headers) })
}

// WithLogWriter applies [Factory.LogToWriter] at build time.
func WithLogWriter(w io.Writer) Option {
	return func(o *options) error {
		if w == nil {
			return errNilLogWriter
		}
		o.presets = append(o.presets, func(f *Factory) error { return f.LogToWriter(w) })
		return nil
	}
}

// WithLogFile applies [Factory.LogToFile] at build time.
func WithLogFile(path string) Option {
	return preset(func(f *Factory) error { return f.LogToFile(path) })
}

// preset defers fn until the factory exists, preserving option order.
func preset(fn func(*Factory) error) Option {
	return func(o *options) error {
		o.presets = append(o.presets, fn)
		return nil
	}
}
