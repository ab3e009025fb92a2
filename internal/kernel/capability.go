package kernel

import "context"

// Capability is the enumerated set of operations the registry may invoke on
// the kernel over the serve stream. It is deliberately an explicit
// interface rather than a naming convention; new remotely callable
// operations are added here.
type Capability interface {
	// Ping is a liveness probe. It returns a short acknowledgement string.
	Ping(ctx context.Context) (string, error)
}

// defaultCapability is the capability surface used when none is injected.
type defaultCapability struct{}

func (defaultCapability) Ping(context.Context) (string, error) {
	return "pong", nil
}
