package transport

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"sync"
	"time"

	"github.com/indigo-web/tinyreq/config"
	"github.com/indigo-web/tinyreq/errors"
)

var _ Dialer = new(TCP)

// TCP dials plain TCP connections, optionally wrapping them into TLS.
type TCP struct {
	dialer net.Dialer
	// TLSConfig is used as a template for TLS connections. ServerName is set automatically
	// unless already present.
	TLSConfig *tls.Config
}

func NewTCP(cfg config.NET) *TCP {
	return &TCP{
		dialer: net.Dialer{Timeout: cfg.DialTimeout},
	}
}

func (t *TCP) Dial(ctx context.Context, addr Address) (Conn, error) {
	raw, err := t.dialer.DialContext(ctx, "tcp", addr.String())
	if err != nil {
		return nil, errors.NewTransportError("dial", err)
	}

	if addr.TLS {
		tlsConn := tls.Client(raw, t.tlsConfig(addr.Host))
		if err = tlsConn.HandshakeContext(ctx); err != nil {
			_ = raw.Close()
			return nil, errors.NewTransportError("handshake", err)
		}

		raw = tlsConn
	}

	return newConn(ctx, raw), nil
}

func (t *TCP) tlsConfig(host string) *tls.Config {
	var cfg *tls.Config
	if t.TLSConfig != nil {
		cfg = t.TLSConfig.Clone()
	} else {
		cfg = new(tls.Config)
	}

	if len(cfg.ServerName) == 0 {
		cfg.ServerName = host
	}

	return cfg
}

// conn binds the lifetime of a net.Conn to a context: once the context is done, all
// pending and future I/O operations fail.
type conn struct {
	net.Conn
	stop      func() bool
	closeOnce sync.Once
	closeErr  error
}

func newConn(ctx context.Context, c net.Conn) *conn {
	return &conn{
		Conn: c,
		stop: context.AfterFunc(ctx, func() {
			_ = c.SetDeadline(time.Unix(1, 0))
		}),
	}
}

func (c *conn) Read(b []byte) (int, error) {
	n, err := c.Conn.Read(b)
	if err != nil && err != io.EOF {
		err = errors.NewTransportError("read", err)
	}

	return n, err
}

func (c *conn) Write(b []byte) (int, error) {
	n, err := c.Conn.Write(b)
	if err != nil {
		err = errors.NewTransportError("write", err)
	}

	return n, err
}

func (c *conn) Close() error {
	c.closeOnce.Do(func() {
		c.stop()
		if err := c.Conn.Close(); err != nil {
			c.closeErr = errors.NewTransportError("close", err)
		}
	})

	return c.closeErr
}
