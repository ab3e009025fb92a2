package kernel

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ayurchenko/go-ns-kernel/internal/remote"
	"github.com/ayurchenko/go-ns-kernel/models"
)

// fakeRoot serves scripted snapshot query results and counts invocations.
type fakeRoot struct {
	snapshot models.Snapshot
	err      error
	calls    atomic.Int64
}

func (r *fakeRoot) NamespaceDict(context.Context) (models.Snapshot, error) {
	r.calls.Add(1)
	return r.snapshot, r.err
}

// fakeConn is an in-memory remote.Conn. Recv blocks until a call is queued
// via push or the connection is closed.
type fakeConn struct {
	root *fakeRoot

	recvCh  chan models.ServeCall
	replyCh chan models.ServeReply
	done    chan struct{}

	once sync.Once

	mu         sync.Mutex
	closed     bool
	closeCalls int
}

func newFakeConn(root *fakeRoot) *fakeConn {
	return &fakeConn{
		root:    root,
		recvCh:  make(chan models.ServeCall, 8),
		replyCh: make(chan models.ServeReply, 8),
		done:    make(chan struct{}),
	}
}

func (c *fakeConn) push(call models.ServeCall) {
	c.recvCh <- call
}

func (c *fakeConn) ID() string { return "fake-conn" }

func (c *fakeConn) Root() remote.Root { return c.root }

func (c *fakeConn) Recv() (models.ServeCall, error) {
	select {
	case call := <-c.recvCh:
		return call, nil
	case <-c.done:
		return models.ServeCall{}, remote.ErrEndOfStream
	}
}

func (c *fakeConn) Reply(reply models.ServeReply) error {
	c.replyCh <- reply
	return nil
}

func (c *fakeConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.closeCalls++
	c.mu.Unlock()

	c.once.Do(func() { close(c.done) })
	return nil
}
