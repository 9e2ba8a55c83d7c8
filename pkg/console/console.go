package console

import (
	core "github.com/goliatone/go-supplychain/components/console"
)

// Controller exposes the underlying components/console.Controller type.
type Controller = core.Controller

// Options re-export for convenience.
type Options = core.Options

// NewController proxies to the internal constructor.
func NewController(opts Options) (*Controller, error) {
	return core.NewController(opts)
}
