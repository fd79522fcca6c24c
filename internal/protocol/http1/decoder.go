package http1

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/indigo-web/tinyreq/errors"
	"github.com/indigo-web/tinyreq/internal/bufreader"
	"github.com/indigo-web/tinyreq/internal/hexconv"
	"github.com/indigo-web/tinyreq/kv"
)

const (
	// MaxEstimate caps the advisory remaining length, so a hostile Content-Length or chunk
	// length can't make the caller reserve too much memory.
	MaxEstimate = 16 * 1024
	// maxChunkLengthLine is long enough to tolerate some chunk extensions (which are
	// ignored anyway).
	maxChunkLengthLine = 1024
	// maxChunkLengthDigits sets the limit of a single chunk length to the uint64 range.
	maxChunkLengthDigits = 16
	// chunkEndLength is enough for CRLF and nothing else.
	chunkEndLength = 2
)

// Decoder produces body bytes one by one according to the framing. Once the body is over,
// io.EOF is returned. Any error, io.EOF included, is sticky.
type Decoder struct {
	r        *bufreader.Reader
	headers  *kv.Storage
	framing  Framing
	trailers int
	err      error
}

func NewDecoder(r *bufreader.Reader, meta Metadata) *Decoder {
	return &Decoder{
		r:        r,
		headers:  meta.Headers,
		framing:  meta.Framing,
		trailers: meta.TrailersBudget,
	}
}

// Next returns the next byte of the body alongside the estimated number of bytes left,
// including the returned one. The estimate is advisory only and is capped at MaxEstimate.
func (d *Decoder) Next() (char byte, estimate int, err error) {
	if d.err != nil {
		return 0, 0, d.err
	}

	switch f := d.framing.(type) {
	case *EndOnClose:
		char, estimate, err = d.untilClosed()
	case *ContentLength:
		char, estimate, err = d.contentLength(f)
	case *Chunked:
		char, estimate, err = d.chunked(f)
	default:
		panic("BUG: body decoder: unknown framing")
	}

	if err != nil {
		d.err = err
	}

	return char, estimate, err
}

// Framing exposes the current framing state.
func (d *Decoder) Framing() Framing {
	return d.framing
}

func (d *Decoder) untilClosed() (byte, int, error) {
	char, err := d.r.ReadByte()
	if err != nil {
		return 0, 0, err
	}

	return char, 1, nil
}

func (d *Decoder) contentLength(f *ContentLength) (byte, int, error) {
	if f.Remaining == 0 {
		return 0, 0, io.EOF
	}

	char, err := d.r.ReadByte()
	if err != nil {
		return 0, 0, unexpectedEOF(err)
	}

	estimate := estimateOf(f.Remaining)
	f.Remaining--

	return char, estimate, nil
}

func (d *Decoder) chunked(f *Chunked) (byte, int, error) {
	if !f.ExpectingMore && f.ChunkRemaining == 0 {
		return 0, 0, io.EOF
	}

	if f.ChunkRemaining == 0 {
		length, err := d.readChunkLength()
		if err != nil {
			return 0, 0, err
		}

		if length == 0 {
			if err = d.readTrailers(); err != nil {
				return 0, 0, err
			}

			f.ExpectingMore = false
			d.headers.Set("content-length", strconv.FormatUint(f.Delivered, 10))
			d.headers.Delete("transfer-encoding")

			return 0, 0, io.EOF
		}

		if f.Delivered > math.MaxUint64-length {
			return 0, 0, errors.ErrMalformedChunkLength
		}

		f.ChunkRemaining = length
		f.Delivered += length
	}

	char, err := d.r.ReadByte()
	if err != nil {
		return 0, 0, unexpectedEOF(err)
	}

	estimate := estimateOf(f.ChunkRemaining)
	if f.ChunkRemaining--; f.ChunkRemaining == 0 {
		if err = d.readChunkEnd(); err != nil {
			return 0, 0, err
		}
	}

	return char, estimate, nil
}

func (d *Decoder) readChunkLength() (uint64, error) {
	line, err := readLine(d.r, maxChunkLengthLine, errors.ErrMalformedChunkLength)
	switch err {
	case nil:
	case io.EOF:
		return 0, errors.ErrMalformedChunkLength
	default:
		return 0, err
	}

	// strictly speaking, empty lines aren't allowed here. But some servers still do that
	if len(line) == 0 {
		return 0, nil
	}

	if semicolon := strings.IndexByte(line, ';'); semicolon != -1 {
		line = line[:semicolon]
	}

	return parseHex(strings.TrimSpace(line))
}

func (d *Decoder) readChunkEnd() error {
	line, err := readLine(d.r, chunkEndLength, errors.ErrMalformedChunkEnd)
	switch err {
	case nil:
	case io.EOF:
		return errors.ErrMalformedChunkEnd
	default:
		return err
	}

	if len(line) != 0 {
		return errors.ErrMalformedChunkEnd
	}

	return nil
}

// readTrailers merges the trailer fields into the headers. Trailers end with an empty line,
// any other line without a colon, or when the stream ends.
func (d *Decoder) readTrailers() error {
	for {
		line, err := readLine(d.r, d.trailers, errors.ErrTrailersOverflow)
		switch err {
		case nil:
		case io.EOF:
			return nil
		default:
			return err
		}

		d.trailers = shrink(d.trailers, len(line)+len("\r\n"))
		key, value, ok := parseHeader(line)
		if !ok {
			return nil
		}

		d.headers.Set(key, value)
	}
}

func parseHex(str string) (n uint64, err error) {
	if len(str) == 0 || len(str) > maxChunkLengthDigits {
		return 0, errors.ErrMalformedChunkLength
	}

	for i := 0; i < len(str); i++ {
		value, ok := hexconv.Parse(str[i])
		if !ok {
			return 0, errors.ErrMalformedChunkLength
		}

		n = (n << 4) | uint64(value)
	}

	return n, nil
}

func estimateOf(remaining uint64) int {
	return int(min(remaining, MaxEstimate))
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}

	return err
}
