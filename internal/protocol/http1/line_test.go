package http1

import (
	"io"
	"math"
	"testing"

	"github.com/indigo-web/tinyreq/errors"
	"github.com/stretchr/testify/require"
)

var errOverflow = errors.ErrHeadersOverflow

func TestReadLine(t *testing.T) {
	t.Run("CRLF and LF", func(t *testing.T) {
		r := newReader("first\r\nsecond\nthird\r\n")
		for _, want := range []string{"first", "second", "third"} {
			line, err := readLine(r, math.MaxInt, errOverflow)
			require.NoError(t, err)
			require.Equal(t, want, line)
		}

		_, err := readLine(r, math.MaxInt, errOverflow)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("only one CR is stripped", func(t *testing.T) {
		line, err := readLine(newReader("text\r\r\n"), math.MaxInt, errOverflow)
		require.NoError(t, err)
		require.Equal(t, "text\r", line)
	})

	t.Run("empty line", func(t *testing.T) {
		line, err := readLine(newReader("\r\n"), math.MaxInt, errOverflow)
		require.NoError(t, err)
		require.Empty(t, line)
	})

	t.Run("unterminated line at EOF", func(t *testing.T) {
		line, err := readLine(newReader("partial"), math.MaxInt, errOverflow)
		require.NoError(t, err)
		require.Equal(t, "partial", line)
	})

	t.Run("scattered", func(t *testing.T) {
		line, err := readLine(newReader(scatter("Hello, world!\r\n", 1)...), math.MaxInt, errOverflow)
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", line)
	})

	t.Run("limit", func(t *testing.T) {
		line, err := readLine(newReader("12345\n"), 5, errOverflow)
		require.NoError(t, err)
		require.Equal(t, "12345", line)

		_, err = readLine(newReader("123456\n"), 5, errOverflow)
		require.ErrorIs(t, err, errOverflow)

		// CR counts, too
		_, err = readLine(newReader("12345\r\n"), 5, errOverflow)
		require.ErrorIs(t, err, errOverflow)
	})

	t.Run("distinct overflow errors", func(t *testing.T) {
		_, err := readLine(newReader("too long\n"), 2, errors.ErrStatusLineOverflow)
		require.ErrorIs(t, err, errors.ErrStatusLineOverflow)

		_, err = readLine(newReader("too long\n"), 2, errors.ErrMalformedChunkEnd)
		require.ErrorIs(t, err, errors.ErrMalformedChunkEnd)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		_, err := readLine(newReader("\xff\xfe\r\n"), math.MaxInt, errOverflow)
		require.ErrorIs(t, err, errors.ErrInvalidUTF8InResponse)
	})
}
