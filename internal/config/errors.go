package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when the merged
// configuration is incomplete or invalid.
var (
	// ErrInvalidRegistryConfigs indicates invalid registry location settings
	// (for example, a port outside the valid TCP range).
	ErrInvalidRegistryConfigs = errors.New("invalid registry configuration")
	// ErrInvalidSessionConfigs indicates invalid session settings
	// (for example, a negative sync request timeout).
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
)
