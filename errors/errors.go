package errors

import (
	"errors"
	"fmt"
)

var (
	ErrStatusLineOverflow     = errors.New("status line is too long")
	ErrHeadersOverflow        = errors.New("headers section is too large")
	ErrTrailersOverflow       = errors.New("trailer section is too large")
	ErrMalformedContentLength = errors.New("malformed Content-Length value")
	ErrMalformedChunkLength   = errors.New("malformed chunk length")
	ErrMalformedChunkEnd      = errors.New("chunk is not terminated by CRLF")
	ErrInvalidUTF8InResponse  = errors.New("response metadata is not valid UTF-8")
	ErrInvalidUTF8InBody      = errors.New("response body is not valid UTF-8")

	ErrRedirectLocationMissing = errors.New("redirect response has no Location header")
	ErrTooManyRedirections     = errors.New("too many redirections")
	ErrInfiniteRedirectionLoop = errors.New("redirection loop detected")

	ErrInvalidURL               = errors.New("invalid URL")
	ErrUnsupportedScheme        = errors.New("URL scheme is not supported")
	ErrInvalidHeader            = errors.New("invalid request header")
	ErrPunycodeDisabled         = errors.New("non-ASCII host requires punycode support to be enabled")
	ErrPunycodeConversionFailed = errors.New("failed to convert host to punycode")
)

// TransportError wraps a failure coming from the underlying byte source. It's never
// retried by the client.
type TransportError struct {
	// Op names the operation that failed: dial, write, read or close.
	Op  string
	Err error
}

func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

func (t *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", t.Op, t.Err)
}

func (t *TransportError) Unwrap() error {
	return t.Err
}
