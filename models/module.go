// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package models

// ModuleRef is a reference to a named module exposed by the remote module
// registry. It carries enough information for the shell to identify and
// address the module; the live object itself stays inside the registry
// process.
type ModuleRef struct {
	// Name is the unique identifier under which the module is exposed.
	Name string `json:"name"`

	// Base is the module category reported by the registry
	// (e.g. "hardware", "logic", "gui").
	Base string `json:"base,omitempty"`

	// Class is the implementation type of the module inside the registry.
	Class string `json:"class,omitempty"`

	// State is the lifecycle state the module reported at snapshot time.
	State string `json:"state,omitempty"`
}

// Snapshot is one point-in-time mapping of exposed module names to their
// references, as returned by a registry query. An empty snapshot is a valid
// result and means the registry is empty or unreachable. Snapshots are
// produced fresh on every query and never cached.
type Snapshot map[string]ModuleRef

// Names returns the key set of the snapshot.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}
