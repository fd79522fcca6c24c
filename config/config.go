package config

import (
	"math"
	"time"
)

type (
	Headers struct {
		// MaxSize limits the whole headers section of a response, including line
		// terminators. Zero disables the limit.
		MaxSize int
		// MaxTrailersSize limits the trailer section of a chunked body. Zero means that
		// trailers are limited by whatever is left of MaxSize after the headers section.
		MaxTrailersSize int `test:"nullable"`
	}

	StatusLine struct {
		// MaxLength limits the response status line. Zero disables the limit.
		MaxLength int
	}

	Redirects struct {
		// Follow enables following 301, 302, 303 and 307 responses.
		Follow bool
		// MaxHops is the maximal number of redirections followed for a single request.
		// Zero disables the limit, which is discouraged.
		MaxHops int
	}

	NET struct {
		// ReadBufferSize is the capacity of the buffer, which batches reads from the
		// transport. The buffer is allocated once per hop.
		ReadBufferSize int
		// DialTimeout bounds connection establishment, including the TLS handshake.
		DialTimeout time.Duration
	}

	Hostname struct {
		// Punycode enables converting non-ASCII hosts into their ASCII form. Otherwise
		// such hosts are rejected.
		Punycode bool
	}

	Log struct {
		// Level is a zerolog level name. "disabled" silences the client completely.
		Level string
		// Format is either "json" or "console".
		Format string
	}
)

// Config holds limits and tunables of the client. Always start from Default() and modify
// the fields needed.
type Config struct {
	Headers    Headers
	StatusLine StatusLine
	Redirects  Redirects
	NET        NET
	Hostname   Hostname
	Log        Log
}

// Default returns the default config. Limits are fairly tolerant, but still keep hostile
// servers from making the client buffer unbounded metadata.
func Default() *Config {
	return &Config{
		Headers: Headers{
			MaxSize:         64 * 1024,
			MaxTrailersSize: 0,
		},
		StatusLine: StatusLine{
			MaxLength: 8 * 1024,
		},
		Redirects: Redirects{
			Follow:  true,
			MaxHops: 100,
		},
		NET: NET{
			ReadBufferSize: 16 * 1024,
			DialTimeout:    30 * time.Second,
		},
		Hostname: Hostname{
			Punycode: true,
		},
		Log: Log{
			Level:  "disabled",
			Format: "json",
		},
	}
}

// Limit converts a size cap into a length bound, where 0 (unbounded) becomes math.MaxInt.
func Limit(size int) int {
	if size <= 0 {
		return math.MaxInt
	}

	return size
}
