package dummy

import (
	"context"
	"errors"

	"github.com/indigo-web/tinyreq/transport"
)

var ErrNoMoreConns = errors.New("dummy dialer: no more connections")

var _ transport.Dialer = new(Dialer)

// Dialer hands out pre-made connections in order and remembers every address dialed.
type Dialer struct {
	conns  []*Conn
	dialed []transport.Address
}

func NewDialer(conns ...*Conn) *Dialer {
	return &Dialer{conns: conns}
}

func (d *Dialer) Dial(ctx context.Context, addr transport.Address) (transport.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.dialed = append(d.dialed, addr)
	if len(d.conns) == 0 {
		return nil, ErrNoMoreConns
	}

	conn := d.conns[0]
	d.conns = d.conns[1:]

	return conn, nil
}

// Dialed returns addresses of all the dial attempts.
func (d *Dialer) Dialed() []transport.Address {
	return d.dialed
}
