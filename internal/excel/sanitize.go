package excel

import (
	"regexp"
	"strings"
	"unicode"
)

// SanitizeName strips HTML-significant characters and control characters
// from a name cell. Ampersands and apostrophes are legitimate in business
// names ("B&R", "Tony's") and are kept.
func SanitizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '<', '>', '"':
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// looksLikeEmail reports whether a whole cell is an email address. Customer
// rows holding only an address are mailing-list noise, not stops.
func looksLikeEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

var spacesRe = regexp.MustCompile(`\s+`)

// normalizeBoilerplate lowercases and collapses a cell so boilerplate rows
// match regardless of spacing, trailing punctuation, or which dash character
// the source system emitted.
func normalizeBoilerplate(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, dash := range []string{"–", "—", "−"} {
		s = strings.ReplaceAll(s, dash, "-")
	}
	s = spacesRe.ReplaceAllString(s, " ")
	s = strings.Trim(s, " .*-")
	return s
}
