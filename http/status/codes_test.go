package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsRedirect(t *testing.T) {
	for _, code := range []Code{MovedPermanently, Found, SeeOther, TemporaryRedirect} {
		require.True(t, IsRedirect(code), code)
	}

	for _, code := range []Code{OK, MultipleChoices, NotModified, UseProxy, PermanentRedirect, NotFound} {
		require.False(t, IsRedirect(code), code)
	}
}

func TestBodyless(t *testing.T) {
	require.True(t, Bodyless(NoContent))
	require.True(t, Bodyless(NotModified))
	require.False(t, Bodyless(OK))
	require.False(t, Bodyless(ResetContent))
}
