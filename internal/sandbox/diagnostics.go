package sandbox

import (
	"fmt"
	"regexp"
)

var errorCodeRe = regexp.MustCompile(`E[0-9]{4}`)

// ErrorCodes returns the distinct rustc error codes (E0382 and the like) found
// in compiler output, in order of first appearance.
func ErrorCodes(stderr string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, code := range errorCodeRe.FindAllString(stderr, -1) {
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// DocURL returns the rustc error index page for code.
func DocURL(code string) string {
	return fmt.Sprintf("https://doc.rust-lang.org/error_codes/%s.html", code)
}
