package client

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/adamwoolhether/xfer/engine"
	"github.com/adamwoolhether/xfer/option"
)

// Factory owns an option collection and creates handles bound to
// snapshots of it. A Factory is not safe for concurrent use; the handles
// it returns are independent of each other.
type Factory struct {
	engine   engine.Engine
	registry *option.Registry
	options  *option.Collection
	logger   *slog.Logger

	mu      sync.Mutex
	closers []io.Closer
}

// NewFactory builds a Factory. If not specified, the live engine, a
// registry built from its constants and the default option set are used.
func NewFactory(optFns ...Option) (*Factory, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying factory option: %w", err)
		}
	}

	f := Factory{
		logger: slog.Default(),
	}

	if opts.logger != nil {
		f.logger = opts.logger
	}

	f.engine = opts.engine
	if f.engine == nil {
		eng, err := engine.New(engine.WithLogger(f.logger))
		if err != nil {
			return nil, fmt.Errorf("building engine: %w", err)
		}
		f.engine = eng
	}

	switch {
	case opts.collection != nil:
		f.options = opts.collection
		f.registry = opts.collection.Registry()
	default:
		f.registry = opts.registry
		if f.registry == nil {
			f.registry = option.NewRegistry(f.engine.Version(), f.engine.Constants())
		}
		coll, err := option.NewCollection(f.registry)
		if err != nil {
			return nil, fmt.Errorf("seeding options: %w", err)
		}
		f.options = coll
	}

	for _, fn := range opts.presets {
		if err := fn(&f); err != nil {
			if cerr := f.Close(); cerr != nil {
				f.logger.Error("closing factory", "error", cerr)
			}
			return nil, fmt.Errorf("applying factory preset: %w", err)
		}
	}

	return &f, nil
}

// Insecure disables TLS peer verification, and status and host
// verification where the registry knows them.
func (f *Factory) Insecure() error {
	opts := option.Values{option.SSLVerifyPeer: false}

	if f.registry.Has(option.SSLVerifyStatus) {
		opts[option.SSLVerifyStatus] = false
	}
	if f.registry.Has(option.SSLVerifyHost) {
		opts[option.SSLVerifyHost] = 0
	}

	return f.options.Update(opts)
}

// SetOptions merges opts into the factory's collection.
func (f *Factory) SetOptions(opts option.Values) error {
	return f.options.Update(opts)
}

// SetHeaders merges "Name: value" lines into the request headers. A line
// replaces earlier lines for the same header name.
func (f *Factory) SetHeaders(headers []string) error {
	current, _ := f.options.Option(option.HTTPHeader)
	existing, _ := current.([]string)

	merged := make([]string, 0, len(existing)+len(headers))
	for _, line := range existing {
		if !containsHeader(headers, headerName(line)) {
			merged = append(merged, line)
		}
	}
	merged = append(merged, headers...)

	return f.options.Update(option.Values{option.HTTPHeader: merged})
}

func headerName(line string) string {
	name, _, _ := strings.Cut(line, ":")
	name = strings.TrimSuffix(strings.TrimSpace(name), ";")

	return http.CanonicalHeaderKey(name)
}

func containsHeader(lines []string, name string) bool {
	for _, line := range lines {
		if headerName(line) == name {
			return true
		}
	}
	return false
}

// LogToWriter turns on verbose transfer logging into w. Request header
// capture is turned off; the engine cannot do both.
func (f *Factory) LogToWriter(w io.Writer) error {
	if w == nil {
		return errNilLogWriter
	}

	return f.options.Update(option.Values{
		option.Verbose:   true,
		option.HeaderOut: false,
		option.Stderr:    w,
	})
}

// LogToFile appends verbose transfer logs to the file at path, creating it
// and its parent directories as needed. An empty path does nothing. The
// file stays open until [Factory.Close].
func (f *Factory) LogToFile(path string) error {
	if path == "" {
		return nil
	}

	sink, err := openLogFile(path)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.closers = append(f.closers, sink)
	f.mu.Unlock()

	f.logger.Debug("logging transfers to file", "path", path)

	return f.LogToWriter(sink)
}

// CreateHandle merges opts into the factory, persistently, and returns a
// handle for rawURL bound to a snapshot of the result.
func (f *Factory) CreateHandle(rawURL string, opts option.Values) (*Handle, error) {
	if opts != nil {
		if err := f.options.Update(opts); err != nil {
			return nil, err
		}
	}

	return NewHandle(f.engine, rawURL, f.options.Clone(), f.logger)
}

// CreatePostHandle is CreateHandle for a POST of fields. The method and
// fields are set on the handle's snapshot only.
func (f *Factory) CreatePostHandle(rawURL string, fields map[string]string, opts option.Values) (*Handle, error) {
	if opts != nil {
		if err := f.options.Update(opts); err != nil {
			return nil, err
		}
	}

	if fields == nil {
		fields = map[string]string{}
	}

	snap := f.options.Clone()
	if err := snap.Update(option.Values{
		option.Post:       1,
		option.PostFields: fields,
	}); err != nil {
		return nil, err
	}

	return NewHandle(f.engine, rawURL, snap, f.logger)
}

// Options returns the factory's live collection.
func (f *Factory) Options() *option.Collection {
	return f.options
}

func (f *Factory) Registry() *option.Registry {
	return f.registry
}

func (f *Factory) Engine() engine.Engine {
	return f.engine
}

// Close releases the log files opened by LogToFile.
func (f *Factory) Close() error {
	f.mu.Lock()
	closers := f.closers
	f.closers = nil
	f.mu.Unlock()

	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
