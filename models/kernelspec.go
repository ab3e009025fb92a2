// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package models

// KernelSpec is the launcher-discoverable descriptor written by the
// installer. The field names follow the kernel.json contract expected by
// the launcher.
type KernelSpec struct {
	// Argv is the command line used to start the kernel. The launcher
	// substitutes the "{connection_file}" placeholder before invocation.
	Argv []string `json:"argv"`

	// DisplayName is the human-readable kernel name shown by the launcher.
	DisplayName string `json:"display_name"`

	// Language is the interpreter language tag declared to the launcher.
	Language string `json:"language"`
}
