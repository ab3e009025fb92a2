// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package kernel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ayurchenko/go-ns-kernel/internal/logger"
	"github.com/ayurchenko/go-ns-kernel/internal/remote"
	"github.com/ayurchenko/go-ns-kernel/models"
)

// ModuleService is the connection-lifecycle endpoint presented to the
// registry. It exposes no business operations of its own; its job is to
// start one background receiver per connection on connect and to stop it on
// disconnect.
type ModuleService struct {
	capability Capability
	log        *logger.Logger

	mu       sync.Mutex
	receiver *receiver
}

// NewModuleService constructs a ModuleService dispatching incoming registry
// calls onto capability. A nil capability selects the built-in surface.
func NewModuleService(capability Capability, log *logger.Logger) *ModuleService {
	if capability == nil {
		capability = defaultCapability{}
	}
	return &ModuleService{
		capability: capability,
		log:        log.GetChildLogger(),
	}
}

// OnConnect starts exactly one background receiver bound to conn. The
// caller must not invoke OnConnect again before the previous receiver has
// been stopped via OnDisconnect.
func (s *ModuleService) OnConnect(conn remote.Conn) {
	rcv := newReceiver(conn, s.capability, s.log)

	s.mu.Lock()
	s.receiver = rcv
	s.mu.Unlock()

	rcv.start()

	s.log.Info().Str("conn_id", conn.ID()).Msg("kernel connected to module registry")
}

// OnDisconnect stops the background receiver if one is running and drops
// the reference to it. Stopping never fails: disconnect must be
// unconditionally successful from the caller's point of view.
func (s *ModuleService) OnDisconnect(conn remote.Conn) {
	s.mu.Lock()
	rcv := s.receiver
	s.receiver = nil
	s.mu.Unlock()

	if rcv != nil {
		rcv.stop()
	}

	s.log.Info().Str("conn_id", conn.ID()).Msg("kernel disconnected from module registry")
}

// receiver drains one connection's incoming-call channel on a dedicated
// goroutine and dispatches each call onto the capability surface. It
// performs no namespace mutation and holds no contested state.
type receiver struct {
	conn       remote.Conn
	capability Capability
	log        *logger.Logger
	wg         sync.WaitGroup
}

func newReceiver(conn remote.Conn, capability Capability, log *logger.Logger) *receiver {
	return &receiver{
		conn:       conn,
		capability: capability,
		log:        log,
	}
}

func (r *receiver) start() {
	r.wg.Add(1)
	go r.loop()
}

func (r *receiver) loop() {
	defer r.wg.Done()

	for {
		call, err := r.conn.Recv()
		if err != nil {
			if errors.Is(err, remote.ErrConnection) || errors.Is(err, remote.ErrEndOfStream) {
				r.log.Debug().Err(err).Msg("receiver stopped: registry link closed")
			} else {
				r.log.Warn().Err(err).Msg("receiver stopped on unexpected error")
			}
			return
		}

		reply := r.dispatch(context.Background(), call)
		if err := r.conn.Reply(reply); err != nil {
			r.log.Warn().Err(err).Str("call_id", call.ID).Msg("receiver failed to send reply")
			return
		}
	}
}

func (r *receiver) dispatch(ctx context.Context, call models.ServeCall) models.ServeReply {
	switch call.Method {
	case "ping":
		result, err := r.capability.Ping(ctx)
		if err != nil {
			return models.ServeReply{ID: call.ID, Error: err.Error()}
		}
		return models.ServeReply{ID: call.ID, Result: result}
	default:
		return models.ServeReply{ID: call.ID, Error: fmt.Sprintf("unknown method %q", call.Method)}
	}
}

// stop closes the connection to unblock a pending Recv and waits for the
// receiver goroutine to exit. Close errors are ignored: the receiver may
// already be dead, and that must not fail the disconnect.
func (r *receiver) stop() {
	_ = r.conn.Close()
	r.wg.Wait()
}
