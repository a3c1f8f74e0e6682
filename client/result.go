package client

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adamwoolhether/xfer/engine"
	"github.com/adamwoolhether/xfer/option"
)

// ExecOption is a functional option for [Try] and [Exec].
type ExecOption func(*execOpts) error
type execOpts struct {
	responseDir string
}

// WithResponseDir saves the response body into dir, which must exist.
func WithResponseDir(dir string) ExecOption {
	return func(o *execOpts) error {
		o.responseDir = dir
		return nil
	}
}

// Result is the outcome of one transfer.
type Result struct {
	handle  *Handle
	body    string
	info    engine.Info
	err     string
	success bool
}

// Try runs h once. Only a completed transfer answered with 200 is a
// success; a failed or non-200 transfer is still returned without error.
// When logging or saving the response fails, the error is returned
// together with the captured result.
func Try(ctx context.Context, h *Handle, optFns ...ExecOption) (*Result, error) {
	var opts execOpts
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying exec option: %w", err)
		}
	}

	out := h.raw.Run(ctx)

	r := Result{
		handle: h,
		info:   out.Info,
		err:    out.Err,
	}
	if out.HasBody {
		r.body = out.Body
	}
	if r.info == nil {
		r.info = engine.Info{}
	}
	r.success = !out.Failed && r.info.HTTPCode() == http.StatusOK

	h.logger.Debug("transfer ran",
		"handle", h.id,
		"url", h.url,
		"http_code", r.info.HTTPCode(),
		"success", r.success,
	)

	if err := r.writeLog(); err != nil {
		return &r, err
	}

	if opts.responseDir != "" {
		if err := r.saveResponse(opts.responseDir); err != nil {
			return &r, err
		}
	}

	return &r, nil
}

// Exec is Try that fails with a [*RequestError] unless the transfer
// succeeded.
func Exec(ctx context.Context, h *Handle, optFns ...ExecOption) (*Result, error) {
	r, err := Try(ctx, h, optFns...)
	if err != nil {
		return r, err
	}

	if !r.success {
		return r, &RequestError{
			URL:    h.url,
			Reason: r.err,
			Info:   r.InfoString(),
			Err:    ErrFailedRequest,
		}
	}

	return r, nil
}

func (r *Result) writeLog() error {
	v, ok := r.handle.options.Option(option.Stderr)
	if !ok {
		return nil
	}
	w, ok := v.(io.Writer)
	if !ok || w == nil {
		return nil
	}

	if _, err := io.WriteString(w, "\nTransfer Info:\n"+r.InfoString()+"\n\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedWritingLog, err)
	}

	if r.err != "" {
		if _, err := io.WriteString(w, "\nTransfer Error:\n"+r.err+"\n\n"); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedWritingLog, err)
		}
	}

	return nil
}

func (r *Result) saveResponse(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return &PathError{Path: dir, Err: ErrResponseLogDirNotExist, Cause: err}
	}
	if !fi.IsDir() {
		return &PathError{Path: dir, Err: ErrResponseLogDirNotExist}
	}

	ct, _ := r.info.ContentType()
	dest := filepath.Join(dir, responseFileName(r.info.URL(), ct))

	if err := writeAtomic(dest, []byte(r.body), r.handle.logger); err != nil {
		return fmt.Errorf("saving response %s: %w", dest, err)
	}

	r.handle.logger.Debug("response saved", "handle", r.handle.id, "path", dest)

	return nil
}

// Success reports whether the transfer completed with a 200.
func (r *Result) Success() bool {
	return r.success
}

// Response is the body, empty when the engine returned none.
func (r *Result) Response() string {
	return r.body
}

// Info returns a copy of the transfer information.
func (r *Result) Info() engine.Info {
	return maps.Clone(r.info)
}

// Error is the transport error, empty when there was none.
func (r *Result) Error() string {
	return r.err
}

func (r *Result) Handle() *Handle {
	return r.handle
}

// infoOrder lists the info keys in the order they are dumped. Any other
// key follows, sorted.
var infoOrder = []string{
	"url", "content_type", "http_code", "header_size", "request_size",
	"redirect_count", "total_time", "namelookup_time", "connect_time",
	"pretransfer_time", "starttransfer_time", "redirect_time",
	"size_upload", "size_download", "speed_download", "speed_upload",
	"download_content_length", "upload_content_length", "redirect_url",
	"primary_ip", "primary_port", "local_ip", "local_port",
	"http_version", "scheme", "effective_method", "request_header", "certinfo",
}

// InfoString renders the transfer information and the handle's options
// for diagnostics.
func (r *Result) InfoString() string {
	var b strings.Builder

	b.WriteString("Info:\n")
	for _, k := range orderedInfoKeys(r.info) {
		fmt.Fprintf(&b, "  %s: %s\n", k, option.FormatValue(r.info[k]))
	}

	b.WriteString("\nHandle Options:\n")
	for _, e := range r.handle.options.DebugOrdered() {
		fmt.Fprintf(&b, "  %s: %s\n", e.Name, option.FormatValue(e.Value))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func orderedInfoKeys(info engine.Info) []string {
	keys := make([]string, 0, len(info))
	for _, k := range infoOrder {
		if _, ok := info[k]; ok {
			keys = append(keys, k)
		}
	}

	var rest []string
	for k := range info {
		if !slices.Contains(infoOrder, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)

	return append(keys, rest...)
}
