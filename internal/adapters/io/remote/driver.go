// Package remote implements the Remote IO Driver boundary (§4.4): a
// Transport-backed IODriver for a non-interactive caller on the other end
// of a wire. The concrete gRPC transport is explicitly out of scope (§1);
// this package provides the Go interface the core depends on plus an
// in-process loopback Transport for tests, not a production server.
package remote

import (
	"context"

	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

var _ usecases.IODriver = (*Driver)(nil)

// Transport carries one CommandRequest/CommandResponse round trip across
// whatever wire a concrete deployment chooses (gRPC, in this repo's
// Non-goals; a loopback channel for tests and local development here).
type Transport interface {
	Send(ctx context.Context, req entities.CommandRequest) (entities.CommandResponse, error)
}

// Driver implements usecases.IODriver by forwarding every request through
// a Transport.
type Driver struct {
	transport Transport
}

// New creates a Remote IO Driver over the given Transport.
func New(transport Transport) *Driver {
	return &Driver{transport: transport}
}

func (d *Driver) Request(ctx context.Context, req entities.CommandRequest) (entities.CommandResponse, error) {
	return d.transport.Send(ctx, req)
}

// LoopbackTransport answers every request in-process via a Handler
// function, standing in for a real wire transport in tests and local
// development.
type LoopbackTransport struct {
	Handler func(ctx context.Context, req entities.CommandRequest) (entities.CommandResponse, error)
}

func (l LoopbackTransport) Send(ctx context.Context, req entities.CommandRequest) (entities.CommandResponse, error) {
	if l.Handler == nil {
		return entities.NewNoneResponse(), nil
	}
	return l.Handler(ctx, req)
}
