// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

// Package kernel implements the kernel's side of the registry link.
//
// [ModuleService] is the local identity presented to the registry: it owns
// the background receiver that keeps the connection's incoming-call channel
// drained so registry-initiated calls are serviced without blocking the
// foreground session thread.
//
// [Client] owns the single connection to the registry and provides the
// synchronization primitive used by the shell session: a best-effort
// namespace snapshot query that never surfaces connectivity errors on the
// execution hot path.
package kernel
