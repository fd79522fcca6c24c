package hostname

import (
	"github.com/indigo-web/tinyreq/errors"
	"golang.org/x/net/idna"
)

// ToASCII returns the host untouched if it's already ASCII. Otherwise, non-ASCII labels are
// converted into their punycode form, but only if punycode is enabled.
func ToASCII(host string, punycode bool) (string, error) {
	if isASCII(host) {
		return host, nil
	}

	if !punycode {
		return "", errors.ErrPunycodeDisabled
	}

	ascii, err := idna.Punycode.ToASCII(host)
	if err != nil || !isASCII(ascii) {
		return "", errors.ErrPunycodeConversionFailed
	}

	return ascii, nil
}

func isASCII(str string) bool {
	for i := 0; i < len(str); i++ {
		if str[i] >= 0x80 {
			return false
		}
	}

	return true
}
