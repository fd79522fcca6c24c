package http1

import (
	"strconv"
	"strings"

	"github.com/indigo-web/tinyreq/errors"
	"github.com/indigo-web/tinyreq/kv"
	"github.com/indigo-web/utils/strcomp"
)

// Framing defines where the body ends. It's chosen once, right after the headers are parsed,
// and never changes its kind afterward. Only the counters of the active variant mutate.
type Framing interface {
	framing()
}

// EndOnClose means the body lasts until the server closes the connection.
type EndOnClose struct{}

// ContentLength means the body has exactly Remaining bytes left.
type ContentLength struct {
	Remaining uint64
}

// Chunked means the body is transferred using chunked transfer encoding.
type Chunked struct {
	// ExpectingMore is unset once the last (zero-length) chunk was received.
	ExpectingMore bool
	// ChunkRemaining is the number of bytes left in the current chunk.
	ChunkRemaining uint64
	// Delivered is the total length of all the chunks seen so far. It becomes the
	// Content-Length once the body is over.
	Delivered uint64
}

func (*EndOnClose) framing()    {}
func (*ContentLength) framing() {}
func (*Chunked) framing()       {}

// selectFraming chooses the framing by the headers. Chunked transfer encoding takes
// precedence over Content-Length, however the latter must always be valid if presented.
func selectFraming(headers *kv.Storage) (Framing, error) {
	var (
		chunked       bool
		length        uint64
		lengthPresent bool
	)

	if te, found := headers.Get("transfer-encoding"); found {
		chunked = strcomp.EqualFold(strings.TrimSpace(te), "chunked")
	}

	if cl, found := headers.Get("content-length"); found {
		value, err := strconv.ParseUint(strings.TrimSpace(cl), 10, 64)
		if err != nil {
			return nil, errors.ErrMalformedContentLength
		}

		length, lengthPresent = value, true
	}

	switch {
	case chunked:
		return &Chunked{ExpectingMore: true}, nil
	case lengthPresent:
		return &ContentLength{Remaining: length}, nil
	default:
		return new(EndOnClose), nil
	}
}
