// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package models

// NamespaceDictRequest is the (empty) request body of the registry's
// namespace snapshot query.
type NamespaceDictRequest struct{}

// NamespaceDictResponse carries the snapshot returned by the registry.
type NamespaceDictResponse struct {
	Modules Snapshot `json:"modules"`
}

// ServeCall is a registry-initiated call delivered to the kernel over the
// serve stream. The background receiver drains these and dispatches them
// onto the kernel's capability surface.
type ServeCall struct {
	// ID correlates the call with its reply.
	ID string `json:"id"`

	// Method is the capability operation to invoke.
	Method string `json:"method"`

	// Args holds the call arguments keyed by parameter name.
	Args map[string]any `json:"args,omitempty"`
}

// ServeReply is the kernel's answer to a [ServeCall].
type ServeReply struct {
	// ID matches the ID of the call being answered.
	ID string `json:"id"`

	// Result is the operation result when Error is empty.
	Result any `json:"result,omitempty"`

	// Error carries the failure message when the call could not be served.
	Error string `json:"error,omitempty"`
}
