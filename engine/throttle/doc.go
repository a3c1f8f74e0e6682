// Package throttle rate limits outbound transfers with a token bucket from
// [golang.org/x/time/rate].
//
// A [Throttle] owns one limiter. Every [http.RoundTripper] produced by
// [Throttle.Wrap] draws from it, so per-transfer transports built by the
// engine still share one budget:
//
//	th, err := throttle.New(
//		10, // requests per second
//		5,  // burst capacity
//		func() *slog.Logger { return slog.Default() },
//	)
//	httpClient := &http.Client{Transport: th.Wrap(http.DefaultTransport)}
//
// When the bucket is empty, requests block until a token becomes
// available or the request context ends. Redirect hops each take a token.
package throttle
