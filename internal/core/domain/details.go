package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// lineBreaks matches CRLF, an escaped literal "\r\n", CR and LF.
var lineBreaks = regexp.MustCompile(`\r\n|\\r\\n|\r|\n`)

// SplitDetails breaks details text into display lines.
// Every line break variant counts as one break, so "a\r\nb" and "a\\r\\nb"
// both yield ["a", "b"]. Control characters are removed from each line so the
// text cannot drive the terminal.
func SplitDetails(details string) []string {
	if details == "" {
		return nil
	}
	parts := lineBreaks.Split(details, -1)
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = stripControl(p)
	}
	return lines
}

// stripControl drops control characters, keeping tabs.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
