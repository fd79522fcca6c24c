package client

import (
	"context"

	"github.com/indigo-web/tinyreq/errors"
	"github.com/indigo-web/tinyreq/http/method"
	"github.com/indigo-web/tinyreq/http/status"
	"github.com/indigo-web/tinyreq/http/uri"
	"github.com/indigo-web/tinyreq/internal/bufreader"
	"github.com/indigo-web/tinyreq/internal/hostname"
	"github.com/indigo-web/tinyreq/internal/protocol/http1"
	"github.com/indigo-web/tinyreq/transport"
)

// hop is what changes between redirections.
type hop struct {
	method method.Method
	target uri.URI
	body   []byte
}

func (h hop) String() string {
	return h.method.String() + " " + h.target.String()
}

// send follows redirections until a response, which isn't one, is received. Every hop is sent
// over its own connection, which is closed as soon as the redirection is processed.
func (c *Client) send(ctx context.Context, request *Request) (*LazyResponse, error) {
	target, err := uri.Parse(request.url)
	if err != nil {
		return nil, err
	}

	var (
		current   = hop{method: request.method, target: target, body: request.body}
		visited   = make(map[string]struct{})
		redirects int
	)

	for {
		current.target.Host, err = hostname.ToASCII(current.target.Host, request.cfg.Hostname.Punycode)
		if err != nil {
			return nil, err
		}

		key := current.String()
		if _, seen := visited[key]; seen {
			return nil, errors.ErrInfiniteRedirectionLoop
		}

		visited[key] = struct{}{}

		response, err := c.roundTrip(ctx, request, current)
		if err != nil {
			return nil, err
		}

		if !request.cfg.Redirects.Follow || !status.IsRedirect(response.StatusCode) {
			response.URL = current.target.String()
			return response, nil
		}

		next, err := c.redirect(request, current, response)
		_ = response.Close()
		if err != nil {
			return nil, err
		}

		if redirects++; request.cfg.Redirects.MaxHops > 0 && redirects > request.cfg.Redirects.MaxHops {
			return nil, errors.ErrTooManyRedirections
		}

		current = next
	}
}

// redirect computes the next hop out of a redirect response.
func (c *Client) redirect(request *Request, current hop, response *LazyResponse) (hop, error) {
	location, found := response.Headers.Get("location")
	if !found {
		return hop{}, errors.ErrRedirectLocationMissing
	}

	target, err := current.target.Resolve(location)
	if err != nil {
		return hop{}, err
	}

	c.log.Debug().
		Int("code", int(response.StatusCode)).
		Str("location", location).
		Msg("redirecting")

	next := hop{method: current.method, target: target, body: current.body}
	if response.StatusCode == status.SeeOther {
		switch current.method {
		case method.POST, method.PUT, method.DELETE:
			next.method, next.body = method.GET, nil
		}
	}

	return next, nil
}

// roundTrip sends a single hop and reads the response metadata. On success, the connection
// is owned by the returned response.
func (c *Client) roundTrip(ctx context.Context, request *Request, current hop) (*LazyResponse, error) {
	req := http1.Request{
		Method:  current.method,
		Target:  current.target,
		Headers: request.headers,
		Body:    current.body,
	}

	data, err := http1.SerializeRequest(make([]byte, 0, http1.RequestSize(req)), req)
	if err != nil {
		return nil, err
	}

	addr := transport.Address{
		Host: current.target.Host,
		Port: current.target.Port,
		TLS:  current.target.HTTPS,
	}

	c.log.Trace().Str("addr", addr.String()).Msg("establishing connection")
	conn, err := c.dialer.Dial(ctx, addr)
	if err != nil {
		return nil, err
	}

	c.log.Trace().Int("size", len(data)).Msg("writing request")
	if _, err = conn.Write(data); err != nil {
		_ = conn.Close()
		return nil, err
	}

	c.log.Trace().Msg("reading response")
	reader := bufreader.New(conn, request.cfg.NET.ReadBufferSize)
	meta, err := http1.ReadMetadata(reader, &request.cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return newLazyResponse(conn, reader, meta, current.method), nil
}
