package shell

import "context"

// Engine is the interactive execution engine wrapped by a [Session].
//
// Implementations own the live user namespace. The session only requires
// the minimal surface below; everything else about execution is the
// engine's business.
type Engine interface {
	// Push binds vars into the live user namespace, overwriting any
	// existing binding under the same name.
	Push(vars map[string]any)

	// Remove deletes name from the user namespace. Removing a name that
	// is absent (already deleted or shadowed by the user) is a no-op.
	Remove(name string)

	// Execute runs one unit of submitted work and returns its result.
	Execute(ctx context.Context, code string) (any, error)

	// Shutdown releases the engine. The restart flag tells the engine
	// whether the launcher intends to start a fresh session afterwards.
	Shutdown(restart bool) error
}
