package dummy

import (
	"io"

	"github.com/indigo-web/tinyreq/transport"
)

var _ transport.Conn = new(Conn)

// Conn returns the pieces it was initialised with, one per read, and io.EOF afterward
// (unless another error is set via Fail). Everything written is journaled.
type Conn struct {
	data    [][]byte
	pointer int
	tmp     []byte
	written []byte
	err     error
	reads   int
	closed  bool
}

func NewConn(data ...[]byte) *Conn {
	return &Conn{
		data: data,
		err:  io.EOF,
	}
}

// NewConnString is a shortcut for NewConn with string pieces.
func NewConnString(data ...string) *Conn {
	pieces := make([][]byte, len(data))
	for i, piece := range data {
		pieces[i] = []byte(piece)
	}

	return NewConn(pieces...)
}

// Fail sets the error returned after all the pieces are consumed.
func (c *Conn) Fail(err error) *Conn {
	c.err = err
	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	c.reads++

	if c.closed {
		return 0, io.ErrClosedPipe
	}

	if len(c.tmp) == 0 {
		if c.pointer >= len(c.data) {
			return 0, c.err
		}

		c.tmp = c.data[c.pointer]
		c.pointer++
	}

	n = copy(b, c.tmp)
	c.tmp = c.tmp[n:]

	return n, nil
}

func (c *Conn) Write(b []byte) (int, error) {
	if c.closed {
		return 0, io.ErrClosedPipe
	}

	c.written = append(c.written, b...)
	return len(b), nil
}

func (c *Conn) Close() error {
	c.closed = true
	return nil
}

// Written returns all the data written so far.
func (c *Conn) Written() string {
	return string(c.written)
}

// Reads returns the number of read calls made.
func (c *Conn) Reads() int {
	return c.reads
}

func (c *Conn) Closed() bool {
	return c.closed
}
