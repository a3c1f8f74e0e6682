package throttle_test

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adamwoolhether/xfer/engine/throttle"
)

func ExampleNewRoundTripper() {
	rt, err := throttle.NewRoundTripper(
		10, // requests per second
		5,  // burst capacity
		func() *slog.Logger { return slog.Default() },
		http.DefaultTransport,
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_ = &http.Client{Transport: rt}

	fmt.Println("throttled transport created")
	// Output: throttled transport created
}

func ExampleThrottle_Wrap() {
	th, err := throttle.New(10, 5, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	a := &http.Client{Transport: th.Wrap(http.DefaultTransport)}
	b := &http.Client{Transport: th.Wrap(http.DefaultTransport)}
	_, _ = a, b

	fmt.Printf("%+v\n", th.Config())
	// Output: {RPS:10 Burst:5}
}
