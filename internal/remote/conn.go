// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package remote

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/ayurchenko/go-ns-kernel/internal/config"
	"github.com/ayurchenko/go-ns-kernel/internal/logger"
	"github.com/ayurchenko/go-ns-kernel/models"
)

// Options is the configuration bag handed to the registry when a connection
// is established. The access flags are transmitted as call metadata so the
// registry can enforce them; the timeout bounds every synchronous call made
// through [Root].
type Options struct {
	// AllowAttributeAccess permits full attribute access and mutation on
	// remote object references handed out by the registry.
	AllowAttributeAccess bool

	// AllowSerialization permits object-graph serialization for call
	// arguments and results.
	AllowSerialization bool

	// SyncRequestTimeout is the maximum duration of one synchronous remote
	// call. Zero selects [config.DefaultSyncRequestTimeout].
	SyncRequestTimeout time.Duration
}

// DefaultOptions returns the options the kernel uses for its registry link:
// full attribute access, object-graph serialization, and a long synchronous
// call timeout so slow remote operations do not fail spuriously.
func DefaultOptions() Options {
	return Options{
		AllowAttributeAccess: true,
		AllowSerialization:   true,
		SyncRequestTimeout:   config.DefaultSyncRequestTimeout,
	}
}

// WithDefaults returns a copy of o with unset fields replaced by their
// defaults.
func (o Options) WithDefaults() Options {
	if o.SyncRequestTimeout <= 0 {
		o.SyncRequestTimeout = config.DefaultSyncRequestTimeout
	}
	return o
}

// metadataContext attaches the option flags to an outgoing call context.
func (o Options) metadataContext(ctx context.Context) context.Context {
	return metadata.AppendToOutgoingContext(ctx,
		"allow-attribute-access", strconv.FormatBool(o.AllowAttributeAccess),
		"allow-serialization", strconv.FormatBool(o.AllowSerialization),
	)
}

// Root is the accessor for synchronous calls on the registry's root object.
type Root interface {
	// NamespaceDict queries the registry's current namespace snapshot.
	NamespaceDict(ctx context.Context) (models.Snapshot, error)
}

// Conn is a single logical link to the remote module registry.
//
// A Conn is created by [Dial] and owned exclusively by one sync client; no
// other component may mutate its state. Recv and Reply operate on the serve
// stream and are intended for the background receiver only. Close is
// idempotent.
type Conn interface {
	// ID returns the connection identifier used for log correlation.
	ID() string

	// Root returns the root-object accessor for synchronous calls.
	Root() Root

	// Recv blocks until the registry initiates a call over the serve
	// stream, the stream ends ([ErrEndOfStream]), or the link breaks
	// ([ErrConnection]).
	Recv() (models.ServeCall, error)

	// Reply sends the answer to a previously received call.
	Reply(reply models.ServeReply) error

	// Closed reports whether the connection has been closed locally.
	Closed() bool

	// Close tears the connection down. Safe to call more than once.
	Close() error
}

// Dial establishes a connection to the registry at ep, presenting opts as
// the connection's configuration bag. The serve stream is opened eagerly so
// that an unreachable registry surfaces as a dial error. Extra dial options
// are appended to the defaults; tests use this to route the connection over
// an in-memory listener.
func Dial(ctx context.Context, ep config.Endpoint, opts Options, log *logger.Logger, extra ...grpc.DialOption) (Conn, error) {
	opts = opts.WithDefaults()

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}, extra...)

	cc, err := grpc.NewClient(ep.Addr(), dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("dial registry %s: %w", ep.Addr(), err)
	}

	// The serve stream lives for the whole connection; its context is
	// cancelled by Close to unblock a pending Recv.
	streamCtx, cancel := context.WithCancel(opts.metadataContext(context.Background()))

	stream, err := cc.NewStream(streamCtx, &registryServiceDesc.Streams[0], serveMethod)
	if err != nil {
		cancel()
		_ = cc.Close()
		return nil, fmt.Errorf("open serve stream to %s: %w", ep.Addr(), mapError(err))
	}

	conn := &grpcConn{
		id:     uuid.NewString(),
		opts:   opts,
		cc:     cc,
		stream: stream,
		cancel: cancel,
		log:    log.GetChildLogger(),
	}

	conn.log.Debug().
		Str("conn_id", conn.id).
		Str("endpoint", ep.Addr()).
		Msg("registry connection established")

	return conn, nil
}

type grpcConn struct {
	id     string
	opts   Options
	cc     *grpc.ClientConn
	stream grpc.ClientStream
	cancel context.CancelFunc
	log    *logger.Logger

	mu     sync.Mutex
	closed bool
}

func (c *grpcConn) ID() string {
	return c.id
}

func (c *grpcConn) Root() Root {
	return &grpcRoot{conn: c}
}

func (c *grpcConn) Recv() (models.ServeCall, error) {
	var call models.ServeCall
	if err := c.stream.RecvMsg(&call); err != nil {
		return models.ServeCall{}, mapError(err)
	}
	return call, nil
}

func (c *grpcConn) Reply(reply models.ServeReply) error {
	if err := c.stream.SendMsg(&reply); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *grpcConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *grpcConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	err := c.cc.Close()

	c.log.Debug().Str("conn_id", c.id).Msg("registry connection closed")
	return err
}

type grpcRoot struct {
	conn *grpcConn
}

func (r *grpcRoot) NamespaceDict(ctx context.Context) (models.Snapshot, error) {
	if r.conn.Closed() {
		return nil, ErrConnClosed
	}

	callCtx, cancel := context.WithTimeout(r.conn.opts.metadataContext(ctx), r.conn.opts.SyncRequestTimeout)
	defer cancel()

	in := new(models.NamespaceDictRequest)
	out := new(models.NamespaceDictResponse)
	if err := r.conn.cc.Invoke(callCtx, namespaceDictMethod, in, out); err != nil {
		return nil, mapError(err)
	}

	if out.Modules == nil {
		return models.Snapshot{}, nil
	}
	return out.Modules, nil
}
