package logging

import (
	"bytes"
	"testing"

	"github.com/indigo-web/tinyreq/config"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		out := new(bytes.Buffer)
		logger := NewWithOutput(config.Log{Level: "disabled", Format: "json"}, out)
		logger.Error().Msg("hello")
		require.Empty(t, out.String())
	})

	t.Run("json", func(t *testing.T) {
		out := new(bytes.Buffer)
		logger := NewWithOutput(config.Log{Level: "debug", Format: "json"}, out)
		logger.Trace().Msg("filtered")
		logger.Debug().Str("url", "http://example.com/").Msg("redirecting")

		require.NotContains(t, out.String(), "filtered")
		require.Contains(t, out.String(), `"message":"redirecting"`)
		require.Contains(t, out.String(), `"url":"http://example.com/"`)
		require.Contains(t, out.String(), `"component":"tinyreq"`)
	})

	t.Run("console", func(t *testing.T) {
		out := new(bytes.Buffer)
		logger := NewWithOutput(config.Log{Level: "info", Format: "console"}, out)
		logger.Info().Msg("hello")
		require.Contains(t, out.String(), "hello")
		require.NotContains(t, out.String(), "{")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		out := new(bytes.Buffer)
		logger := NewWithOutput(config.Log{Level: "verbose", Format: "json"}, out)
		logger.Debug().Msg("debug")
		logger.Info().Msg("info")
		require.NotContains(t, out.String(), `"message":"debug"`)
		require.Contains(t, out.String(), `"message":"info"`)
	})
}
