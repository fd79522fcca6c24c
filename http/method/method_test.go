package method

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func BenchmarkMethod(b *testing.B) {
	var parsed Method

	for i := Unknown; i <= Count; i++ {
		b.Run(i.String(), func(b *testing.B) {
			m := i.String()
			b.SetBytes(int64(len(m)))
			b.ResetTimer()

			for range b.N {
				parsed = Parse(m)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}

func TestMethod(t *testing.T) {
	for _, method := range List {
		require.Equal(t, method, Parse(method.String()))
	}

	require.Equal(t, Unknown, Parse("BREW"))
	require.Equal(t, Unknown, Parse("get"))
	require.Equal(t, "UNKNOWN", Method(200).String())
}
