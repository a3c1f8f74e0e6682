package throttle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		rps    int
		burst  int
		expErr error
	}{
		{
			name:   "Invalid RPS (zero)",
			rps:    0,
			burst:  10,
			expErr: ErrMustNotBeZero,
		},
		{
			name:   "Invalid RPS (negative)",
			rps:    -5,
			burst:  10,
			expErr: ErrMustNotBeZero,
		},
		{
			name:   "Invalid Burst (zero)",
			rps:    10,
			burst:  0,
			expErr: ErrMustNotBeZero,
		},
		{
			name:   "Invalid Burst (negative)",
			rps:    10,
			burst:  -5,
			expErr: ErrMustNotBeZero,
		},
		{
			name:  "Valid input",
			rps:   10,
			burst: 20,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			th, err := New(tc.rps, tc.burst, nil)

			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got: %v", tc.expErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("exp nil err, got: %v", err)
			}
			if got := th.Config(); got != (Config{RPS: tc.rps, Burst: tc.burst}) {
				t.Errorf("exp config %+v; got %+v", Config{RPS: tc.rps, Burst: tc.burst}, got)
			}
		})
	}
}

func TestRoundTripper_Behavior(t *testing.T) {
	testCases := []struct {
		name          string
		rps           int
		burst         int
		numRequests   int
		reqTimeout    time.Duration
		preCancel     bool
		expectReqErrs int
		expErr        error
		minDuration   time.Duration
		maxDuration   time.Duration
	}{
		{
			name:        "High Limits - Concurrent Load",
			rps:         10000,
			burst:       100,
			numRequests: 50,
			maxDuration: 500 * time.Millisecond,
		},
		{
			name:          "Low Limit - Exceed Burst & Timeout Waiting",
			rps:           5,
			burst:         2,
			numRequests:   5, // 2 use burst, the rest would wait past their deadline
			reqTimeout:    50 * time.Millisecond,
			expectReqErrs: 3,
			expErr:        ErrWaitingFailed,
		},
		{
			name:        "Low Limit - Exceed Burst - Succeed Waiting",
			rps:         10,
			burst:       5,
			numRequests: 8, // (8-5) calls / 10 RPS = 0.3 seconds
			reqTimeout:  time.Second,
			minDuration: 250 * time.Millisecond,
		},
		{
			name:          "Pre-Cancelled Context Fails Early",
			rps:           20,
			burst:         10,
			numRequests:   1,
			preCancel:     true,
			expectReqErrs: 1,
			expErr:        ErrContextEnded,
			maxDuration:   100 * time.Millisecond,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var callCount int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&callCount, 1)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			rt, err := NewRoundTripper(tc.rps, tc.burst, nil, http.DefaultTransport)
			if err != nil {
				t.Fatal(err)
			}
			client := &http.Client{Transport: rt}

			var wg sync.WaitGroup
			errs := make([]error, tc.numRequests)
			start := time.Now()

			for i := range tc.numRequests {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()

					var ctx context.Context
					var cancel context.CancelFunc
					if tc.reqTimeout > 0 {
						ctx, cancel = context.WithTimeout(t.Context(), tc.reqTimeout)
					} else {
						ctx, cancel = context.WithCancel(t.Context())
					}
					defer cancel()
					if tc.preCancel {
						cancel()
					}

					req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
					if reqErr != nil {
						errs[idx] = fmt.Errorf("failed create req %d: %w", idx, reqErr)
						return
					}

					resp, doErr := client.Do(req)
					if doErr != nil {
						errs[idx] = doErr
						return
					}
					resp.Body.Close()
				}(i)
			}

			wg.Wait()
			duration := time.Since(start)

			failed := 0
			for i, err := range errs {
				if err == nil {
					continue
				}
				failed++
				t.Logf("Request %d failed with: %v", i, err)
				if tc.expErr != nil && !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got %v", tc.expErr, err)
				}
			}

			if failed != tc.expectReqErrs {
				t.Errorf("expected %d failed requests; got %d", tc.expectReqErrs, failed)
			}

			if got := atomic.LoadInt32(&callCount); got != int32(tc.numRequests-failed) {
				t.Errorf("exp %d calls to reach the server, got %d", tc.numRequests-failed, got)
			}

			if tc.minDuration > 0 && duration < tc.minDuration {
				t.Errorf("should be slowed down by throttle (>= %v), but took %v", tc.minDuration, duration)
			}
			if tc.maxDuration > 0 && duration > tc.maxDuration {
				t.Errorf("should be fast (< %v); but took %v", tc.maxDuration, duration)
			}
		})
	}
}

func TestWrap_SharesBucket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	th, err := New(1, 1, nil)
	if err != nil {
		t.Fatal(err)
	}

	a := &http.Client{Transport: th.Wrap(http.DefaultTransport)}
	b := &http.Client{Transport: th.Wrap(http.DefaultTransport)}

	do := func(c *http.Client) error {
		ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
		if err != nil {
			return err
		}
		resp, err := c.Do(req)
		if err != nil {
			return err
		}
		return resp.Body.Close()
	}

	if err := do(a); err != nil {
		t.Fatalf("first request: %v", err)
	}

	// The bucket is empty and refills after a second, beyond the deadline.
	if err := do(b); !errors.Is(err, ErrWaitingFailed) {
		t.Errorf("exp ErrWaitingFailed from the second transport, got %v", err)
	}
}
