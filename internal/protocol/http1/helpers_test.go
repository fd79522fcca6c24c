package http1

import (
	"github.com/indigo-web/tinyreq/config"
	"github.com/indigo-web/tinyreq/internal/bufreader"
	"github.com/indigo-web/tinyreq/transport/dummy"
)

func newReader(data ...string) *bufreader.Reader {
	return bufreader.New(dummy.NewConnString(data...), 16*1024)
}

// scatter splits the data into pieces of step bytes each (the last one may be shorter).
func scatter(data string, step int) (pieces []string) {
	for i := 0; i < len(data); i += step {
		pieces = append(pieces, data[i:min(i+step, len(data))])
	}

	return pieces
}

func unlimited() *config.Config {
	cfg := config.Default()
	cfg.Headers.MaxSize = 0
	cfg.StatusLine.MaxLength = 0

	return cfg
}
