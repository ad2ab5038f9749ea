package sandbox

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// decodeOutput converts captured process output to a string, replacing
// invalid UTF-8 with U+FFFD.
func decodeOutput(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
