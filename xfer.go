// Package xfer exposes the handle factory builder.
package xfer

import (
	"github.com/adamwoolhether/xfer/client"
)

// NewFactory instantiates a new *client.Factory with the provided options.
// If not specified, the live net/http engine and the default option set
// are used.
func NewFactory(opts ...client.Option) (*client.Factory, error) {
	return client.NewFactory(opts...)
}
