package bufreader

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/tinyreq/transport/dummy"
	"github.com/stretchr/testify/require"
)

// endless is a source which fills any buffer completely and counts reads.
type endless struct {
	reads int
}

func (e *endless) Read(b []byte) (int, error) {
	e.reads++
	for i := range b {
		b[i] = 'a'
	}

	return len(b), nil
}

// stalling never returns neither data nor an error.
type stalling struct{}

func (stalling) Read([]byte) (int, error) {
	return 0, nil
}

// eager returns data together with an error.
type eager struct {
	data string
	err  error
	done bool
}

func (e *eager) Read(b []byte) (int, error) {
	if e.done {
		return 0, e.err
	}

	e.done = true
	return copy(b, e.data), e.err
}

func TestReader(t *testing.T) {
	t.Run("read count is bounded", func(t *testing.T) {
		for _, capacity := range []int{1, 3, 7, 16, 64} {
			for _, size := range []int{1, 2, 5, 16, 100} {
				for _, step := range []int{1, 2, 3, 50} {
					src := new(endless)
					r := New(src, capacity)
					dst := make([]byte, step)

					for read := 0; read < size; {
						n, err := r.Read(dst[:min(step, size-read)])
						require.NoError(t, err)
						read += n
					}

					ceil := (size + capacity - 1) / capacity
					require.LessOrEqual(t, src.reads, ceil, "capacity=%d size=%d step=%d", capacity, size, step)
				}
			}
		}
	})

	t.Run("byte by byte", func(t *testing.T) {
		sample := uniuri.NewLen(100)
		conn := dummy.NewConn(scatter([]byte(sample), 7)...)
		r := New(conn, 16)

		var out []byte
		for {
			c, err := r.ReadByte()
			if err == io.EOF {
				break
			}

			require.NoError(t, err)
			out = append(out, c)
		}

		require.Equal(t, sample, string(out))
		// 15 pieces of at most 7 bytes each plus the final EOF
		require.Equal(t, 16, conn.Reads())
	})

	t.Run("fill does not read when buffered", func(t *testing.T) {
		conn := dummy.NewConnString("Hello, world!")
		r := New(conn, 64)

		data, err := r.Fill()
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(data))

		r.Consume(7)
		data, err = r.Fill()
		require.NoError(t, err)
		require.Equal(t, "world!", string(data))
		require.Equal(t, "world!", string(r.Buffered()))
		require.Equal(t, 1, conn.Reads())
	})

	t.Run("consume is clamped", func(t *testing.T) {
		r := New(dummy.NewConnString("Hello"), 64)
		_, err := r.Fill()
		require.NoError(t, err)

		r.Consume(100)
		require.Empty(t, r.Buffered())
		_, err = r.Fill()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("large destination bypasses buffer", func(t *testing.T) {
		sample := strings.Repeat("x", 32)
		conn := dummy.NewConnString(sample)
		r := New(conn, 8)
		dst := make([]byte, 32)

		n, err := r.Read(dst)
		require.NoError(t, err)
		require.Equal(t, 32, n)
		require.Equal(t, sample, string(dst))
		require.Empty(t, r.Buffered())
	})

	t.Run("small destination is served from the buffer", func(t *testing.T) {
		conn := dummy.NewConnString("Hello, world!")
		r := New(conn, 64)
		dst := make([]byte, 5)

		n, err := r.Read(dst)
		require.NoError(t, err)
		require.Equal(t, "Hello", string(dst[:n]))

		n, err = r.Read(dst)
		require.NoError(t, err)
		require.Equal(t, ", wor", string(dst[:n]))
		require.Equal(t, 1, conn.Reads())
	})

	t.Run("error together with data", func(t *testing.T) {
		boom := errors.New("boom")
		r := New(&eager{data: "ab", err: boom}, 16)

		c, err := r.ReadByte()
		require.NoError(t, err)
		require.Equal(t, byte('a'), c)

		c, err = r.ReadByte()
		require.NoError(t, err)
		require.Equal(t, byte('b'), c)

		_, err = r.ReadByte()
		require.ErrorIs(t, err, boom)
	})

	t.Run("no progress", func(t *testing.T) {
		r := New(stalling{}, 16)
		_, err := r.ReadByte()
		require.ErrorIs(t, err, io.ErrNoProgress)
	})
}

func scatter(b []byte, step int) (pieces [][]byte) {
	for i := 0; i < len(b); i += step {
		pieces = append(pieces, b[i:min(i+step, len(b))])
	}

	return pieces
}
