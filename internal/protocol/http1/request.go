package http1

import (
	"strconv"

	"github.com/indigo-web/tinyreq/errors"
	"github.com/indigo-web/tinyreq/http/method"
	"github.com/indigo-web/tinyreq/http/uri"
	"github.com/indigo-web/tinyreq/kv"
	"golang.org/x/net/http/httpguts"
)

const protocol = " HTTP/1.1\r\n"

// Request is what SerializeRequest needs to know about a request.
type Request struct {
	Method  method.Method
	Target  uri.URI
	Headers *kv.Storage
	// Body is nil when the request has none. A non-nil empty body is still announced via
	// Content-Length: 0.
	Body []byte
}

// SerializeRequest appends the request to buff, so it can be written at once. Host and
// Connection headers are set implicitly unless presented, Content-Length is set whenever
// there's a body.
func SerializeRequest(buff []byte, request Request) ([]byte, error) {
	buff = append(buff, request.Method.String()...)
	buff = append(buff, ' ')
	buff = append(buff, request.Target.Resource...)
	buff = append(buff, protocol...)

	if !request.Headers.Has("host") {
		buff = appendHeader(buff, "Host", request.Target.Authority())
	}

	for key, value := range request.Headers.Pairs() {
		if !httpguts.ValidHeaderFieldName(key) || !httpguts.ValidHeaderFieldValue(value) {
			return nil, errors.ErrInvalidHeader
		}

		buff = appendHeader(buff, key, value)
	}

	if request.Body != nil && !request.Headers.Has("content-length") {
		buff = appendHeader(buff, "Content-Length", strconv.Itoa(len(request.Body)))
	}

	if !request.Headers.Has("connection") {
		buff = appendHeader(buff, "Connection", "close")
	}

	buff = append(buff, "\r\n"...)

	return append(buff, request.Body...), nil
}

func appendHeader(buff []byte, key, value string) []byte {
	buff = append(buff, key...)
	buff = append(buff, ": "...)
	buff = append(buff, value...)
	return append(buff, "\r\n"...)
}

// RequestSize estimates the serialized size, so the buffer can be allocated once.
func RequestSize(request Request) (size int) {
	size = len(request.Method.String()) + 1 + len(request.Target.Resource) + len(protocol)
	size += len("Host: \r\n") + len(request.Target.Authority())
	size += len("Content-Length: \r\n") + len(strconv.Itoa(len(request.Body)))
	size += len("Connection: close\r\n\r\n")

	for key, value := range request.Headers.Pairs() {
		size += len(key) + len(": \r\n") + len(value)
	}

	return size + len(request.Body)
}

