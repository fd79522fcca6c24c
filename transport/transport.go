package transport

import (
	"context"
	"io"
	"net"
	"strconv"
)

// Conn is a byte source the client sends requests over and reads responses from. Write
// must either write the whole slice or fail. Read returns io.EOF when the peer closes the
// stream. Close releases the underlying resources and must be safe to call more than once.
type Conn interface {
	io.Reader
	io.Writer
	io.Closer
}

// Address identifies a peer.
type Address struct {
	Host string
	Port uint16
	// TLS tells whether the connection must be encrypted.
	TLS bool
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(int(a.Port)))
}

// Dialer establishes connections. Dial may block until the connection (including any
// handshakes) is established or ctx is done.
type Dialer interface {
	Dial(ctx context.Context, addr Address) (Conn, error)
}

// DialerFunc adapts an ordinary function into a Dialer.
type DialerFunc func(ctx context.Context, addr Address) (Conn, error)

func (d DialerFunc) Dial(ctx context.Context, addr Address) (Conn, error) {
	return d(ctx, addr)
}
