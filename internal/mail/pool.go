package mail

import (
	"context"
)

// pooledConn is one slot of the connection pool. A slot without a live
// transport is dialed on first use; a transport past its message budget is
// replaced on the next acquire.
type pooledConn struct {
	transport transport
	sent      int
}

// pool is a bounded transport pool held for the process lifetime to
// amortize TLS and connection setup across sends. Exhaustion blocks on the
// channel rather than failing.
type pool struct {
	slots       chan *pooledConn
	factory     func() (transport, error)
	maxMessages int
}

func newPool(size, maxMessages int, factory func() (transport, error)) *pool {
	p := &pool{
		slots:       make(chan *pooledConn, size),
		factory:     factory,
		maxMessages: maxMessages,
	}

	for i := 0; i < size; i++ {
		p.slots <- &pooledConn{}
	}

	return p
}

// acquire blocks until a slot is free, then ensures it carries a usable
// transport.
func (p *pool) acquire(ctx context.Context) (*pooledConn, error) {
	var conn *pooledConn

	select {
	case conn = <-p.slots:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if conn.transport == nil || conn.sent >= p.maxMessages {
		t, err := p.factory()
		if err != nil {
			// return the slot so the pool does not shrink
			conn.transport = nil
			p.slots <- conn

			return nil, err
		}

		conn.transport = t
		conn.sent = 0
	}

	return conn, nil
}

// release returns a slot to the pool. failed drops the underlying transport
// so the next acquire dials a fresh connection.
func (p *pool) release(conn *pooledConn, failed bool) {
	if failed {
		conn.transport = nil
		conn.sent = 0
	} else {
		conn.sent++
	}

	p.slots <- conn
}
