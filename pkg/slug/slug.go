// Package slug builds URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Make lowercases the name, strips accents, and collapses every run of
// non-alphanumeric characters into a single hyphen.
func Make(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	plain, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		plain = lowered
	}

	var b strings.Builder
	b.Grow(len(plain))
	lastHyphen := true // suppress leading hyphen
	for _, r := range plain {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}
