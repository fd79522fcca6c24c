package http1

import (
	"strconv"
	"strings"

	"github.com/indigo-web/tinyreq/http/status"
)

const (
	fallbackCode   = status.ServiceUnavailable
	fallbackReason = "Server did not provide a status line"
)

// parseHeader splits a header field line. The key is lower-cased. Exactly one space after the
// colon is removed, if presented, everything else is left intact. A line without colon is
// not a header.
func parseHeader(line string) (key, value string, ok bool) {
	colon := strings.IndexByte(line, ':')
	if colon == -1 {
		return "", "", false
	}

	key, value = strings.ToLower(line[:colon]), line[colon+1:]
	if len(value) > 0 && value[0] == ' ' {
		value = value[1:]
	}

	return key, value, true
}

// parseStatusLine extracts a status code and a reason from a line like `HTTP/1.1 200 OK`.
// If no valid code is found, 503 with a placeholder reason is returned instead of failing.
func parseStatusLine(line string) (status.Code, string) {
	_, rest, found := strings.Cut(line, " ")
	if !found {
		return fallbackCode, fallbackReason
	}

	rawCode, reason, _ := strings.Cut(rest, " ")
	code, err := strconv.ParseUint(rawCode, 10, 16)
	if err != nil {
		return fallbackCode, fallbackReason
	}

	return status.Code(code), reason
}
