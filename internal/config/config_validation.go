// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// kernel invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Registry.Host == "" || cfg.Registry.NamespacePort < 1 || cfg.Registry.NamespacePort > 65535 {
		return ErrInvalidRegistryConfigs
	}

	if cfg.Session.SyncRequestTimeout <= 0 {
		return ErrInvalidSessionConfigs
	}

	return nil
}
