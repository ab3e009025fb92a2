// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package config

import (
	"time"
)

// Default values applied to fields left unset by every configuration source.
const (
	// DefaultRegistryHost is the host used when no registry host is
	// configured. The registry normally runs on the same machine as the
	// shell it serves.
	DefaultRegistryHost = "localhost"

	// DefaultNamespacePort is the registry's namespace server port used
	// when no port is configured.
	DefaultNamespacePort = 18861

	// DefaultSyncRequestTimeout bounds a single synchronous remote call.
	// It is deliberately long so that slow remote operations do not fail
	// with spurious timeouts.
	DefaultSyncRequestTimeout = time.Hour
)

// StructuredConfig is the top-level configuration container for the kernel.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Registry holds the location of the remote module registry.
	Registry Registry `envPrefix:"REGISTRY_"`

	// Session holds settings of the interactive shell session.
	Session Session `envPrefix:"SESSION_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running kernel
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Registry holds the network location of the remote module registry.
type Registry struct {
	// Host is the registry host name or IP address.
	// Env: REGISTRY_HOST
	Host string `env:"HOST"`

	// NamespacePort is the TCP port of the registry's namespace server.
	// Env: REGISTRY_NAMESPACE_SERVER_PORT
	NamespacePort int `env:"NAMESPACE_SERVER_PORT"`
}

// Session holds settings of the interactive shell session wrapped by the
// kernel.
type Session struct {
	// SyncRequestTimeout is the maximum duration of one synchronous remote
	// call (e.g. the namespace snapshot query). Zero selects
	// [DefaultSyncRequestTimeout].
	// Env: SESSION_SYNC_REQUEST_TIMEOUT
	SyncRequestTimeout time.Duration `env:"SYNC_REQUEST_TIMEOUT"`

	// ConnectionFile is the launcher-provided connection file path. It is
	// populated from the -f flag the launcher passes on startup and is
	// recorded for diagnostics only.
	// Env: SESSION_CONNECTION_FILE
	ConnectionFile string `env:"CONNECTION_FILE"`
}

// GetStructuredConfig loads, merges, and validates the kernel configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// applyDefaults fills the fields left at their zero value by every source.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Registry.Host == "" {
		cfg.Registry.Host = DefaultRegistryHost
	}
	if cfg.Registry.NamespacePort == 0 {
		cfg.Registry.NamespacePort = DefaultNamespacePort
	}
	if cfg.Session.SyncRequestTimeout == 0 {
		cfg.Session.SyncRequestTimeout = DefaultSyncRequestTimeout
	}
}
