// Package slugify derives URL-safe slugs for profile usernames.
package slugify

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify lowercases the input, collapses whitespace and any non
// alphanumeric runs into single hyphens, and trims leading and trailing
// hyphens. The derivation is deterministic: equal inputs always produce
// equal slugs.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			// keep ASCII; fold everything else to its byte-safe form
			if r > unicode.MaxASCII {
				continue
			}
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// WithSuffix appends a numeric suffix used when a derived slug collides
// with an existing one. Suffix 0 returns the slug unchanged.
func WithSuffix(slug string, n int) string {
	if n == 0 {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, n)
}
