package http1

import (
	"io"
	"unicode/utf8"

	"github.com/indigo-web/tinyreq/errors"
	"github.com/indigo-web/tinyreq/internal/bufreader"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/uf"
)

// lineBuffPrealloc is the initial capacity of a line buffer. Most of the lines are fairly
// short, so there's no sense in reserving more.
const lineBuffPrealloc = 32

// readLine reads bytes until LF, stripping the trailing CR, if any. At most maxLen bytes (CR
// included) may precede the LF, otherwise overflow is returned. If the stream ends before the
// first byte of the line, io.EOF is returned. If it ends in the middle, the line is returned
// as is.
func readLine(r *bufreader.Reader, maxLen int, overflow error) (string, error) {
	line := buffer.NewBuffer[byte](min(lineBuffPrealloc, maxLen), maxLen)

	for {
		char, err := r.ReadByte()
		if err == io.EOF {
			if line.SegmentLength() == 0 {
				return "", io.EOF
			}

			break
		}

		if err != nil {
			return "", err
		}

		if char == '\n' {
			break
		}

		if !line.Append(char) {
			return "", overflow
		}
	}

	data := line.Finish()
	if len(data) > 0 && data[len(data)-1] == '\r' {
		data = data[:len(data)-1]
	}

	if !utf8.Valid(data) {
		return "", errors.ErrInvalidUTF8InResponse
	}

	// the buffer isn't reused, so it's safe to refer to its memory
	return uf.B2S(data), nil
}
