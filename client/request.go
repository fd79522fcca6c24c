package client

import (
	"context"

	"github.com/indigo-web/tinyreq/config"
	"github.com/indigo-web/tinyreq/http/method"
	"github.com/indigo-web/tinyreq/kv"
	json "github.com/json-iterator/go"
)

const preallocRequestHeaders = 4

// Request is a builder of a single request. Limits are copied from the client's config, so
// overriding them affects only this request.
type Request struct {
	client  *Client
	method  method.Method
	url     string
	headers *kv.Storage
	body    []byte
	cfg     config.Config
	// err is a deferred error of the builder itself, returned on sending.
	err error
}

func newRequest(client *Client, m method.Method, url string) *Request {
	return &Request{
		client:  client,
		method:  m,
		url:     url,
		headers: kv.NewPrealloc(preallocRequestHeaders),
		cfg:     *client.cfg,
	}
}

// WithHeader sets a header, overriding the previous value of the same key. Host, Connection
// and Content-Length are set implicitly, unless overridden here.
func (r *Request) WithHeader(key, value string) *Request {
	r.headers.Set(key, value)
	return r
}

// WithBody sets the request body. Content-Length is set automatically.
func (r *Request) WithBody(body []byte) *Request {
	r.body = body
	return r
}

// WithString is the same as WithBody, but for strings.
func (r *Request) WithString(body string) *Request {
	return r.WithBody([]byte(body))
}

// WithJSON serializes the model into the body and sets Content-Type to application/json.
// A serialization error is reported by Send or SendLazy.
func (r *Request) WithJSON(model any) *Request {
	stream := json.ConfigDefault.BorrowStream(nil)
	stream.WriteVal(model)
	if stream.Error != nil {
		r.err = stream.Error
	} else {
		// the stream's buffer is reused once returned
		r.body = append([]byte(nil), stream.Buffer()...)
	}

	json.ConfigDefault.ReturnStream(stream)

	return r.WithHeader("Content-Type", "application/json")
}

// WithMaxHeadersSize limits the response headers section. Zero disables the limit.
func (r *Request) WithMaxHeadersSize(size int) *Request {
	r.cfg.Headers.MaxSize = size
	return r
}

// WithMaxStatusLineLength limits the response status line. Zero disables the limit.
func (r *Request) WithMaxStatusLineLength(length int) *Request {
	r.cfg.StatusLine.MaxLength = length
	return r
}

// WithMaxTrailersSize limits the trailer section of a chunked response body. Zero means the
// trailers share the budget of the headers section.
func (r *Request) WithMaxTrailersSize(size int) *Request {
	r.cfg.Headers.MaxTrailersSize = size
	return r
}

// WithMaxRedirects limits the number of redirections followed. Zero disables the limit,
// however loops are still detected.
func (r *Request) WithMaxRedirects(hops int) *Request {
	r.cfg.Redirects.MaxHops = hops
	return r
}

// WithFollowRedirects controls whether redirect responses are followed or returned as is.
func (r *Request) WithFollowRedirects(follow bool) *Request {
	r.cfg.Redirects.Follow = follow
	return r
}

// Send sends the request and reads the whole response body into memory. The body isn't read
// for HEAD requests, neither for 204 and 304 responses.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	lazy, err := r.SendLazy(ctx)
	if err != nil {
		return nil, err
	}

	return materialize(lazy, lazy.method == method.HEAD)
}

// SendLazy sends the request and returns as soon as the response headers are read. The body
// is read on demand, so the returned response must be closed.
func (r *Request) SendLazy(ctx context.Context) (*LazyResponse, error) {
	if r.err != nil {
		return nil, r.err
	}

	return r.client.send(ctx, r)
}
