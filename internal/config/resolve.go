// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// appDirName is the per-user configuration directory of the kernel.
	appDirName = "ns-kernel"

	// savedConfigMarker is the file recording the path of the most recently
	// used configuration file. It is written by the configuration editor,
	// never by the kernel: resolving an endpoint must not change which
	// configuration is considered active.
	savedConfigMarker = "saved_config"

	// defaultConfigName is the configuration file used when no saved
	// configuration is recorded.
	defaultConfigName = "config.json"
)

// Endpoint is the resolved network location of the remote module registry.
// It is immutable for the life of a connection.
type Endpoint struct {
	Host string
	Port int
}

// Addr returns the endpoint in "host:port" form suitable for dialing.
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// EndpointResolver resolves the registry endpoint at connect time. It is
// injected into the sync client so that endpoint discovery carries no
// hidden global state.
type EndpointResolver func() (Endpoint, error)

// Resolver locates and loads the configuration file that names the registry
// endpoint. The zero base directory selects the per-user config directory.
type Resolver struct {
	baseDir string
}

// NewResolver returns a Resolver rooted at baseDir. An empty baseDir selects
// the user's configuration directory (e.g. ~/.config/ns-kernel).
func NewResolver(baseDir string) *Resolver {
	return &Resolver{baseDir: baseDir}
}

// dir returns the directory holding the marker and default config files.
func (r *Resolver) dir() (string, error) {
	if r.baseDir != "" {
		return r.baseDir, nil
	}

	userDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(userDir, appDirName), nil
}

// SavedConfigPath returns the configuration file path recorded by the saved
// config marker, and whether such a recording exists and still points at an
// existing file.
func (r *Resolver) SavedConfigPath() (string, bool) {
	dir, err := r.dir()
	if err != nil {
		return "", false
	}

	raw, err := os.ReadFile(filepath.Join(dir, savedConfigMarker))
	if err != nil {
		return "", false
	}

	path := strings.TrimSpace(string(raw))
	if path == "" {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}

	return path, true
}

// DefaultConfigPath returns the path of the default configuration file. The
// file itself may not exist yet.
func (r *Resolver) DefaultConfigPath() (string, error) {
	dir, err := r.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultConfigName), nil
}

// Resolve determines the registry endpoint: the saved configuration file if
// one is recorded, otherwise the default configuration file. A missing
// configuration file yields the built-in default endpoint; an unreadable or
// invalid file is an error. Resolve never writes the saved config marker.
func (r *Resolver) Resolve() (Endpoint, error) {
	path, ok := r.SavedConfigPath()
	if !ok {
		var err error
		path, err = r.DefaultConfigPath()
		if err != nil {
			return Endpoint{}, err
		}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Endpoint{Host: DefaultRegistryHost, Port: DefaultNamespacePort}, nil
		}
		return Endpoint{}, fmt.Errorf("stat config file %s: %w", path, err)
	}

	cfg, err := Load(path)
	if err != nil {
		return Endpoint{}, err
	}

	return Endpoint{Host: cfg.Registry.Host, Port: cfg.Registry.NamespacePort}, nil
}

// Load reads and validates the configuration file at path. Loading has no
// side effects on any persisted state.
func Load(path string) (*StructuredConfig, error) {
	cfg, err := parseJSON(path)
	if err != nil {
		return nil, fmt.Errorf("load config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config file %s: %w", path, err)
	}

	return cfg, nil
}

// ResolveEndpoint resolves the registry endpoint from the per-user
// configuration directory. It is the default [EndpointResolver] wired into
// the sync client.
func ResolveEndpoint() (Endpoint, error) {
	return NewResolver("").Resolve()
}
