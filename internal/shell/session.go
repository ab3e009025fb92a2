// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package shell

import (
	"context"
	"fmt"
	"sort"

	"github.com/ayurchenko/go-ns-kernel/internal/logger"
	"github.com/ayurchenko/go-ns-kernel/models"
)

// SyncClient is the namespace synchronization client used by the session.
// It is satisfied by kernel.Client.
type SyncClient interface {
	// Connect establishes the registry link. Failure is fatal for session
	// construction.
	Connect(ctx context.Context) error

	// ActiveModules returns the registry's current namespace snapshot.
	// Connectivity failures yield an empty snapshot, never an error.
	ActiveModules(ctx context.Context) (models.Snapshot, error)

	// Disconnect releases the registry link. Always succeeds.
	Disconnect()
}

// Session wraps an interactive execution engine and keeps its user
// namespace synchronized with the remote module registry.
//
// The tracked name set records which names this session injected; it is
// the only state the reconciliation step mutates besides the engine's
// namespace, and after each pass it exactly equals the key set of the most
// recent snapshot. All methods must be called from the single foreground
// goroutine driving the session.
type Session struct {
	engine Engine
	client SyncClient
	log    *logger.Logger

	tracked map[string]struct{}
}

// NewSession constructs a Session over engine, connects the sync client,
// and runs one reconciliation pass so the session starts with the
// registry's current contents already present. A connection failure aborts
// construction: the session is unusable without the initial link.
func NewSession(ctx context.Context, engine Engine, client SyncClient, log *logger.Logger) (*Session, error) {
	s := &Session{
		engine:  engine,
		client:  client,
		log:     log.GetChildLogger(),
		tracked: make(map[string]struct{}),
	}

	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect namespace sync client: %w", err)
	}

	if err := s.UpdateModuleNamespace(ctx); err != nil {
		client.Disconnect()
		return nil, fmt.Errorf("initial namespace sync: %w", err)
	}

	return s, nil
}

// UpdateModuleNamespace reconciles the engine's user namespace against the
// latest registry snapshot:
//
//  1. names tracked from the previous pass but absent from the snapshot
//     are removed from the namespace (if still present);
//  2. every snapshot entry is pushed unconditionally, so registry values
//     take precedence over any local binding under the same name;
//  3. the tracked set becomes the snapshot's key set.
//
// Running it twice against an unchanged snapshot is a no-op on the second
// pass, and an empty snapshot clears every tracked name while leaving all
// user-created variables untouched.
func (s *Session) UpdateModuleNamespace(ctx context.Context) error {
	snapshot, err := s.client.ActiveModules(ctx)
	if err != nil {
		return fmt.Errorf("fetch active modules: %w", err)
	}

	for name := range s.tracked {
		if _, ok := snapshot[name]; !ok {
			s.engine.Remove(name)
		}
	}

	if len(snapshot) > 0 {
		push := make(map[string]any, len(snapshot))
		for name, ref := range snapshot {
			push[name] = ref
		}
		s.engine.Push(push)
	}

	tracked := make(map[string]struct{}, len(snapshot))
	for name := range snapshot {
		tracked[name] = struct{}{}
	}
	s.tracked = tracked

	return nil
}

// Execute reconciles the namespace and then hands code to the engine. The
// engine does not run until reconciliation has completed; a reconciliation
// failure (a protocol error, never mere link loss) aborts the unit of work.
func (s *Session) Execute(ctx context.Context, code string) (any, error) {
	if err := s.UpdateModuleNamespace(ctx); err != nil {
		return nil, err
	}
	return s.engine.Execute(ctx, code)
}

// Shutdown disconnects the sync client unconditionally, whether the
// shutdown is a restart or a full stop, and then shuts the engine down.
func (s *Session) Shutdown(restart bool) error {
	s.client.Disconnect()
	s.log.Info().Bool("restart", restart).Msg("session shut down")
	return s.engine.Shutdown(restart)
}

// TrackedNames returns the sorted set of names currently owned by the
// synchronization mechanism. Intended for diagnostics.
func (s *Session) TrackedNames() []string {
	names := make([]string, 0, len(s.tracked))
	for name := range s.tracked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
