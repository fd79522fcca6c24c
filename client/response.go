package client

import (
	"io"
	"slices"
	"unicode/utf8"

	"github.com/indigo-web/tinyreq/errors"
	"github.com/indigo-web/tinyreq/http/method"
	"github.com/indigo-web/tinyreq/http/status"
	"github.com/indigo-web/tinyreq/internal/bufreader"
	"github.com/indigo-web/tinyreq/internal/protocol/http1"
	"github.com/indigo-web/tinyreq/kv"
	"github.com/indigo-web/tinyreq/transport"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

var _ io.ReadCloser = new(LazyResponse)

// LazyResponse is a response whose body is read on demand. It owns the connection, so it
// must be closed once not needed anymore.
type LazyResponse struct {
	StatusCode   status.Code
	ReasonPhrase string
	// Headers have lower-cased keys. Once a chunked body is over, its trailers are merged
	// in, Content-Length is set to the body length and Transfer-Encoding is removed.
	Headers *kv.Storage
	// URL is where the response actually came from, which differs from the requested URL
	// if redirections were followed.
	URL string

	method  method.Method
	conn    transport.Conn
	reader  *bufreader.Reader
	decoder *http1.Decoder
}

func newLazyResponse(
	conn transport.Conn, reader *bufreader.Reader, meta http1.Metadata, m method.Method,
) *LazyResponse {
	return &LazyResponse{
		StatusCode:   meta.Code,
		ReasonPhrase: meta.Reason,
		Headers:      meta.Headers,
		method:       m,
		conn:         conn,
		reader:       reader,
		decoder:      http1.NewDecoder(reader, meta),
	}
}

// Next returns the next byte of the body and the estimated number of bytes left, including
// the returned one. The estimate never exceeds 16KiB. io.EOF is returned when the body is
// over. Errors are sticky.
func (l *LazyResponse) Next() (char byte, estimate int, err error) {
	return l.decoder.Next()
}

// Read fills b with the body. It blocks only until at least one byte is available.
func (l *LazyResponse) Read(b []byte) (n int, err error) {
	for n < len(b) {
		char, _, err := l.decoder.Next()
		if err != nil {
			if n > 0 {
				// the error is sticky, so it'll be returned by the next call
				return n, nil
			}

			return 0, err
		}

		b[n] = char
		n++

		if len(l.reader.Buffered()) == 0 {
			break
		}
	}

	return n, nil
}

// Close releases the connection. Bytes not read by then are lost.
func (l *LazyResponse) Close() error {
	return l.conn.Close()
}

// Response is a response with the whole body read into memory.
type Response struct {
	StatusCode   status.Code
	ReasonPhrase string
	Headers      *kv.Storage
	URL          string
	body         []byte
}

// materialize drains the lazy response and closes it.
func materialize(lazy *LazyResponse, head bool) (*Response, error) {
	defer func() {
		_ = lazy.Close()
	}()

	var body []byte

	if !head && !status.Bodyless(lazy.StatusCode) {
		for {
			char, estimate, err := lazy.Next()
			if err == io.EOF {
				break
			}

			if err != nil {
				return nil, err
			}

			body = slices.Grow(body, estimate)
			body = append(body, char)
		}
	}

	return &Response{
		StatusCode:   lazy.StatusCode,
		ReasonPhrase: lazy.ReasonPhrase,
		Headers:      lazy.Headers,
		URL:          lazy.URL,
		body:         body,
	}, nil
}

// Bytes returns the body. The slice must not be modified.
func (r *Response) Bytes() []byte {
	return r.body
}

// String returns the body as a string, failing if it isn't valid UTF-8.
func (r *Response) String() (string, error) {
	if !utf8.Valid(r.body) {
		return "", errors.ErrInvalidUTF8InBody
	}

	return uf.B2S(r.body), nil
}

// JSON unmarshalls the body into the model.
func (r *Response) JSON(model any) error {
	if !utf8.Valid(r.body) {
		return errors.ErrInvalidUTF8InBody
	}

	iterator := json.ConfigDefault.BorrowIterator(r.body)
	iterator.ReadVal(model)
	err := iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	return err
}
