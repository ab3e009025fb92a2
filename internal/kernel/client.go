// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package kernel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ayurchenko/go-ns-kernel/internal/config"
	"github.com/ayurchenko/go-ns-kernel/internal/logger"
	"github.com/ayurchenko/go-ns-kernel/internal/remote"
	"github.com/ayurchenko/go-ns-kernel/models"
)

// Dialer establishes a connection to the registry at ep. It exists as a
// seam so tests can route connections over an in-memory listener.
type Dialer func(ctx context.Context, ep config.Endpoint, opts remote.Options) (remote.Conn, error)

// Client owns the single connection to the remote module registry.
//
// At most one live connection exists per Client. The connection is created
// by [Client.Connect], destroyed by [Client.Disconnect], and dropped
// automatically when a snapshot query detects link loss. All methods are
// safe for use from the single foreground session goroutine; internal
// locking only guards against the rare overlap with the background
// receiver's teardown.
type Client struct {
	service *ModuleService
	resolve config.EndpointResolver
	opts    remote.Options
	dial    Dialer
	log     *logger.Logger

	mu   sync.Mutex
	conn remote.Conn
}

// NewClient constructs a Client that resolves the registry endpoint with
// resolve and presents service as the local callee.
func NewClient(service *ModuleService, resolve config.EndpointResolver, opts remote.Options, log *logger.Logger) *Client {
	c := &Client{
		service: service,
		resolve: resolve,
		opts:    opts.WithDefaults(),
		log:     log.GetChildLogger(),
	}
	c.dial = func(ctx context.Context, ep config.Endpoint, opts remote.Options) (remote.Conn, error) {
		return remote.Dial(ctx, ep, opts, log)
	}
	return c
}

// Connect resolves the registry endpoint and establishes the connection,
// starting the background receiver via the module service. An unreachable
// registry is a fatal condition for the caller: the failure propagates
// unwrapped in meaning, and no connection is retained.
func (c *Client) Connect(ctx context.Context) error {
	ep, err := c.resolve()
	if err != nil {
		return fmt.Errorf("resolve registry endpoint: %w", err)
	}

	conn, err := c.dial(ctx, ep, c.opts)
	if err != nil {
		return fmt.Errorf("connect to registry at %s: %w", ep.Addr(), err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.service.OnConnect(conn)
	return nil
}

// ActiveModules returns the registry's current namespace snapshot.
//
// It is best-effort by design: with no connection, a closed connection, or
// a link lost mid-query it returns an empty snapshot and no error, so the
// execution hot path never has to handle connectivity failures. A lost
// link additionally releases the connection; reconnection is not automatic.
// Any other query failure indicates a protocol violation and propagates.
func (c *Client) ActiveModules(ctx context.Context) (models.Snapshot, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil || conn.Closed() {
		return models.Snapshot{}, nil
	}

	snapshot, err := conn.Root().NamespaceDict(ctx)
	if err != nil {
		if errors.Is(err, remote.ErrConnection) ||
			errors.Is(err, remote.ErrEndOfStream) ||
			errors.Is(err, remote.ErrConnClosed) {
			c.log.Warn().Err(err).Msg("registry link lost during snapshot query")
			c.Disconnect()
			return models.Snapshot{}, nil
		}
		return nil, fmt.Errorf("query namespace dict: %w", err)
	}

	if snapshot == nil {
		snapshot = models.Snapshot{}
	}
	return snapshot, nil
}

// Disconnect stops the background receiver and closes the connection if one
// exists. Closing errors are swallowed; afterwards the client holds no
// connection. Safe to call repeatedly and when never connected.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return
	}

	c.service.OnDisconnect(conn)
	_ = conn.Close()
}
