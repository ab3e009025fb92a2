// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc"

	"github.com/ayurchenko/go-ns-kernel/internal/logger"
	"github.com/ayurchenko/go-ns-kernel/models"
)

// ErrNoKernel is returned by [Registry.Call] when no kernel holds an open
// serve stream.
var ErrNoKernel = errors.New("no kernel connected")

// Registry is an in-process implementation of the registry service. The
// authoritative registry lives in a separate process; this one serves the
// same wire contract over any net.Listener and backs the package tests and
// local development setups.
//
// The module table is mutable at runtime so tests can drive snapshot
// changes between reconciliation passes.
type Registry struct {
	log    *logger.Logger
	server *grpc.Server

	mu      sync.Mutex
	modules models.Snapshot
	stream  RegistryServeStream
	pending map[string]chan models.ServeReply
}

// NewRegistry constructs a Registry with an empty module table.
func NewRegistry(log *logger.Logger) *Registry {
	r := &Registry{
		log:     log.GetChildLogger(),
		modules: models.Snapshot{},
		pending: make(map[string]chan models.ServeReply),
	}
	r.server = grpc.NewServer()
	r.server.RegisterService(&registryServiceDesc, r)
	return r
}

// RunServer serves the registry on lis and blocks until Shutdown.
func (r *Registry) RunServer(lis net.Listener) error {
	r.log.Info().Str("addr", lis.Addr().String()).Msg("registry server listening")
	if err := r.server.Serve(lis); err != nil {
		return fmt.Errorf("registry serve: %w", err)
	}
	return nil
}

// Shutdown stops the server, closing all kernel links.
func (r *Registry) Shutdown() {
	r.log.Info().Msg("registry server shutdown")
	r.server.Stop()
}

// SetModules replaces the exposed module table.
func (r *Registry) SetModules(snapshot models.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules = models.Snapshot{}
	for name, ref := range snapshot {
		r.modules[name] = ref
	}
}

// ExposeModule adds or replaces one module in the exposed table.
func (r *Registry) ExposeModule(ref models.ModuleRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[ref.Name] = ref
}

// RemoveModule withdraws a module from the exposed table. Removing an
// unknown name is a no-op.
func (r *Registry) RemoveModule(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.modules, name)
}

// NamespaceDict implements [RegistryService]. Every call returns a fresh
// copy of the module table.
func (r *Registry) NamespaceDict(_ context.Context, _ *models.NamespaceDictRequest) (*models.NamespaceDictResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := models.Snapshot{}
	for name, ref := range r.modules {
		snapshot[name] = ref
	}
	return &models.NamespaceDictResponse{Modules: snapshot}, nil
}

// Serve implements [RegistryService]. It records the kernel's serve stream
// for [Call] and pumps replies back to their pending callers until the
// stream ends.
func (r *Registry) Serve(stream RegistryServeStream) error {
	r.mu.Lock()
	r.stream = stream
	r.mu.Unlock()

	r.log.Debug().Msg("kernel serve stream attached")

	defer func() {
		r.mu.Lock()
		if r.stream == stream {
			r.stream = nil
		}
		r.mu.Unlock()
		r.log.Debug().Msg("kernel serve stream detached")
	}()

	for {
		reply, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		r.mu.Lock()
		ch, ok := r.pending[reply.ID]
		if ok {
			delete(r.pending, reply.ID)
		}
		r.mu.Unlock()

		if ok {
			ch <- *reply
		}
	}
}

// Call invokes a capability operation on the connected kernel and waits for
// its reply. Returns [ErrNoKernel] when no serve stream is attached.
func (r *Registry) Call(ctx context.Context, method string, args map[string]any) (any, error) {
	r.mu.Lock()
	stream := r.stream
	if stream == nil {
		r.mu.Unlock()
		return nil, ErrNoKernel
	}

	id := uuid.NewString()
	ch := make(chan models.ServeReply, 1)
	r.pending[id] = ch
	r.mu.Unlock()

	forget := func() {
		r.mu.Lock()
		delete(r.pending, id)
		r.mu.Unlock()
	}

	if err := stream.Send(&models.ServeCall{ID: id, Method: method, Args: args}); err != nil {
		forget()
		return nil, fmt.Errorf("send call %s to kernel: %w", method, err)
	}

	select {
	case reply := <-ch:
		if reply.Error != "" {
			return nil, fmt.Errorf("kernel call %s: %s", method, reply.Error)
		}
		return reply.Result, nil
	case <-ctx.Done():
		forget()
		return nil, ctx.Err()
	}
}
