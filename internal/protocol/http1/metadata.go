package http1

import (
	"io"

	"github.com/indigo-web/tinyreq/config"
	"github.com/indigo-web/tinyreq/errors"
	"github.com/indigo-web/tinyreq/http/status"
	"github.com/indigo-web/tinyreq/internal/bufreader"
	"github.com/indigo-web/tinyreq/kv"
)

// Metadata is everything preceding the body.
type Metadata struct {
	Code    status.Code
	Reason  string
	Headers *kv.Storage
	Framing Framing
	// TrailersBudget is how many bytes the trailer section of a chunked body may take.
	TrailersBudget int
}

// ReadMetadata reads the status line and the headers section, and selects the body framing.
func ReadMetadata(r *bufreader.Reader, cfg *config.Config) (meta Metadata, err error) {
	line, err := readLine(r, config.Limit(cfg.StatusLine.MaxLength), errors.ErrStatusLineOverflow)
	switch err {
	case nil, io.EOF:
	default:
		return meta, err
	}

	meta.Code, meta.Reason = parseStatusLine(line)
	meta.Headers = kv.New()
	budget := config.Limit(cfg.Headers.MaxSize)

	for {
		line, err = readLine(r, budget, errors.ErrHeadersOverflow)
		if err == io.EOF || (err == nil && len(line) == 0) {
			break
		}

		if err != nil {
			return meta, err
		}

		budget = shrink(budget, len(line)+len("\r\n"))
		if key, value, ok := parseHeader(line); ok {
			meta.Headers.Set(key, value)
		}
	}

	meta.Framing, err = selectFraming(meta.Headers)
	if err != nil {
		return meta, err
	}

	meta.TrailersBudget = budget
	if cfg.Headers.MaxTrailersSize > 0 {
		meta.TrailersBudget = cfg.Headers.MaxTrailersSize
	}

	return meta, nil
}

func shrink(budget, n int) int {
	return max(budget-n, 0)
}
