package transport

import (
	"context"
	"io"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/indigo-web/tinyreq/config"
	"github.com/indigo-web/tinyreq/errors"
	"github.com/stretchr/testify/require"
)

func listen(t *testing.T) (net.Listener, Address) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = l.Close()
	})

	_, rawPort, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(rawPort)
	require.NoError(t, err)

	return l, Address{Host: "127.0.0.1", Port: uint16(port)}
}

func TestTCP(t *testing.T) {
	t.Run("echo", func(t *testing.T) {
		l, addr := listen(t)
		go func() {
			conn, err := l.Accept()
			if err != nil {
				return
			}

			defer conn.Close()
			_, _ = io.Copy(conn, io.LimitReader(conn, 5))
		}()

		conn, err := NewTCP(config.Default().NET).Dial(context.Background(), addr)
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Write([]byte("hello"))
		require.NoError(t, err)

		data, err := io.ReadAll(conn)
		require.NoError(t, err)
		require.Equal(t, "hello", string(data))
	})

	t.Run("refused", func(t *testing.T) {
		l, addr := listen(t)
		require.NoError(t, l.Close())

		_, err := NewTCP(config.Default().NET).Dial(context.Background(), addr)
		var terr *errors.TransportError
		require.ErrorAs(t, err, &terr)
		require.Equal(t, "dial", terr.Op)
	})

	t.Run("context cancellation interrupts reads", func(t *testing.T) {
		l, addr := listen(t)
		accepted := make(chan net.Conn, 1)
		go func() {
			conn, err := l.Accept()
			if err == nil {
				accepted <- conn
			}
		}()

		ctx, cancel := context.WithCancel(context.Background())
		conn, err := NewTCP(config.Default().NET).Dial(ctx, addr)
		require.NoError(t, err)
		defer conn.Close()

		peer := <-accepted
		defer peer.Close()

		time.AfterFunc(20*time.Millisecond, cancel)
		_, err = conn.Read(make([]byte, 16))
		var terr *errors.TransportError
		require.ErrorAs(t, err, &terr)
		require.Equal(t, "read", terr.Op)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		l, addr := listen(t)
		go func() {
			if conn, err := l.Accept(); err == nil {
				_ = conn.Close()
			}
		}()

		conn, err := NewTCP(config.Default().NET).Dial(context.Background(), addr)
		require.NoError(t, err)
		require.NoError(t, conn.Close())
		require.NoError(t, conn.Close())
	})
}

func TestAddress(t *testing.T) {
	require.Equal(t, "example.com:80", Address{Host: "example.com", Port: 80}.String())
	require.Equal(t, "[::1]:443", Address{Host: "::1", Port: 443, TLS: true}.String())
}
