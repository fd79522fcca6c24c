package client

import (
	"github.com/indigo-web/tinyreq/config"
	"github.com/indigo-web/tinyreq/http/method"
	"github.com/indigo-web/tinyreq/internal/logging"
	"github.com/indigo-web/tinyreq/transport"
	"github.com/rs/zerolog"
)

// Client sends requests over connections produced by its dialer. Connections are never
// reused: every request (and every redirect hop) gets a fresh one.
type Client struct {
	dialer transport.Dialer
	cfg    *config.Config
	log    zerolog.Logger
}

// New returns a client. If dialer is nil, plain TCP (and TLS for https) is used. If cfg is
// nil, config.Default() is used.
func New(dialer transport.Dialer, cfg *config.Config) *Client {
	if cfg == nil {
		cfg = config.Default()
	}

	if dialer == nil {
		dialer = transport.NewTCP(cfg.NET)
	}

	return &Client{
		dialer: dialer,
		cfg:    cfg,
		log:    logging.New(cfg.Log),
	}
}

// WithLogger replaces the logger built out of config.Log.
func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	c.log = logger
	return c
}

// Request returns a builder of a request with an arbitrary method. The url is validated only
// when the request is sent.
func (c *Client) Request(m method.Method, url string) *Request {
	return newRequest(c, m, url)
}

func (c *Client) Get(url string) *Request {
	return c.Request(method.GET, url)
}

func (c *Client) Head(url string) *Request {
	return c.Request(method.HEAD, url)
}

func (c *Client) Post(url string) *Request {
	return c.Request(method.POST, url)
}

func (c *Client) Put(url string) *Request {
	return c.Request(method.PUT, url)
}

func (c *Client) Delete(url string) *Request {
	return c.Request(method.DELETE, url)
}

func (c *Client) Patch(url string) *Request {
	return c.Request(method.PATCH, url)
}

func (c *Client) Options(url string) *Request {
	return c.Request(method.OPTIONS, url)
}

func (c *Client) Trace(url string) *Request {
	return c.Request(method.TRACE, url)
}

func (c *Client) Connect(url string) *Request {
	return c.Request(method.CONNECT, url)
}
