// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

// Package shell wraps an interactive execution engine in a session that
// keeps the engine's user namespace mirrored against the remote module
// registry.
//
// Before every unit of submitted work, [Session] pulls the latest namespace
// snapshot from the sync client and reconciles it against the set of names
// it previously injected: names gone from the registry are removed, names
// present are pushed unconditionally. User-created names are never touched.
// All of this runs on the single foreground goroutine that drives the
// session, so reconciliation passes never overlap.
package shell
