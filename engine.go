// Package valkit is a typed command facade over an opaque execution engine.
// The engine owns connections, routing, and pipelining; this package owns
// the translation between the typed public API and the dynamically-shaped
// values the engine produces: argument marshaling on the way out, coercion
// and per-command canonicalization on the way back.
package valkit

import (
	"context"

	"github.com/cosmez/valkit-go/resp"
)

// Engine dispatches one command and yields its raw result. Implementations
// own everything below the value boundary: transport, retries, cluster
// topology, pub/sub. Engine failures pass through this package unchanged.
type Engine interface {
	Execute(ctx context.Context, name string, args [][]byte) (resp.Value, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, name string, args [][]byte) (resp.Value, error)

func (f EngineFunc) Execute(ctx context.Context, name string, args [][]byte) (resp.Value, error) {
	return f(ctx, name, args)
}
