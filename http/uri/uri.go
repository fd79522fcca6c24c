package uri

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/indigo-web/tinyreq/errors"
)

const (
	defaultHTTPPort  = 80
	defaultHTTPSPort = 443
)

// URI is a request target split into the parts the client actually needs.
type URI struct {
	HTTPS bool
	// Host holds neither a port nor IPv6 brackets.
	Host string
	Port uint16
	// Resource is an escaped path followed by an optional query. Always starts with a slash.
	Resource string
	Fragment string
}

// Parse parses an absolute http or https URL.
func Parse(raw string) (URI, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return URI{}, errors.ErrInvalidURL
	}

	return fromURL(u)
}

func fromURL(u *url.URL) (URI, error) {
	var uri URI

	switch strings.ToLower(u.Scheme) {
	case "http":
		uri.Port = defaultHTTPPort
	case "https":
		uri.HTTPS, uri.Port = true, defaultHTTPSPort
	case "":
		return URI{}, errors.ErrInvalidURL
	default:
		return URI{}, errors.ErrUnsupportedScheme
	}

	uri.Host = u.Hostname()
	if len(uri.Host) == 0 {
		return URI{}, errors.ErrInvalidURL
	}

	if rawPort := u.Port(); len(rawPort) > 0 {
		port, err := strconv.ParseUint(rawPort, 10, 16)
		if err != nil || port == 0 {
			return URI{}, errors.ErrInvalidURL
		}

		uri.Port = uint16(port)
	}

	uri.Resource = u.EscapedPath()
	if len(uri.Resource) == 0 || uri.Resource[0] != '/' {
		uri.Resource = "/" + uri.Resource
	}

	if len(u.RawQuery) > 0 || u.ForceQuery {
		uri.Resource += "?" + u.RawQuery
	}

	uri.Fragment = u.EscapedFragment()

	return uri, nil
}

// Resolve returns the target a redirect with the passed Location leads to. Relative
// references are resolved against the current URI. If the location carries no fragment,
// the current one is kept.
func (u URI) Resolve(location string) (URI, error) {
	base, err := url.Parse(u.String())
	if err != nil {
		return URI{}, errors.ErrInvalidURL
	}

	ref, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return URI{}, errors.ErrInvalidURL
	}

	next, err := fromURL(base.ResolveReference(ref))
	if err != nil {
		return URI{}, err
	}

	if len(next.Fragment) == 0 && !strings.Contains(location, "#") {
		next.Fragment = u.Fragment
	}

	return next, nil
}

// Authority returns the host with the port included only when it isn't the default one for
// the scheme. This is what goes into the Host header.
func (u URI) Authority() string {
	host := u.Host
	if strings.IndexByte(host, ':') != -1 {
		host = "[" + host + "]"
	}

	if u.Port == u.defaultPort() {
		return host
	}

	return net.JoinHostPort(u.Host, strconv.Itoa(int(u.Port)))
}

func (u URI) Scheme() string {
	if u.HTTPS {
		return "https"
	}

	return "http"
}

func (u URI) String() string {
	var b strings.Builder
	b.Grow(len(u.Host) + len(u.Resource) + len(u.Fragment) + len("https://:65535#"))
	b.WriteString(u.Scheme())
	b.WriteString("://")
	b.WriteString(u.Authority())
	b.WriteString(u.Resource)
	if len(u.Fragment) > 0 {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}

	return b.String()
}

func (u URI) defaultPort() uint16 {
	if u.HTTPS {
		return defaultHTTPSPort
	}

	return defaultHTTPPort
}
