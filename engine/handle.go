package engine

import (
	"context"
	"maps"
	"net/url"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/xfer/option"
)

// httpHandle is the live engine's [Handle].
type httpHandle struct {
	engine *HTTP
	rawURL string
	url    *url.URL
	s      settings
}

// Apply decodes opts into the handle. Identifiers the engine does not
// implement, and values of the wrong type, are returned.
func (h *httpHandle) Apply(opts option.Values) option.Values {
	var rejected option.Values
	for _, id := range slices.Sorted(maps.Keys(opts)) {
		apply, ok := appliers[id]
		if ok && apply(&h.s, opts[id]) {
			continue
		}
		if rejected == nil {
			rejected = make(option.Values)
		}
		rejected[id] = opts[id]
	}

	return rejected
}

// Run performs the transfer inside a client span.
func (h *httpHandle) Run(ctx context.Context) Outcome {
	ctx, span := h.engine.tracer.Start(ctx, "xfer.transfer",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("url.full", h.rawURL),
			attribute.String("server.address", h.url.Hostname()),
		),
	)
	defer span.End()

	s := h.s
	t := newTransfer(h.engine, h.rawURL, &s)
	out := t.run(ctx)

	span.SetAttributes(
		attribute.Int("http.response.status_code", out.Info.HTTPCode()),
		attribute.String("http.request.method", t.method),
	)
	if out.Failed {
		span.SetStatus(codes.Error, out.Err)
	}

	h.engine.logger.Debug("transfer finished",
		"url", h.rawURL,
		"http_code", out.Info.HTTPCode(),
		"failed", out.Failed,
		"error", out.Err,
	)

	return out
}
