package textclean

import (
	"regexp"
	"strings"
)

// MinContentLength is the minimum cleaned-text length for a page to be
// worth storing. Shorter output usually means navigation chrome or an
// error page rather than real content. Enforcing the threshold is the
// caller's decision; Clean itself never rejects input.
const MinContentLength = 100

var (
	emailRe      = regexp.MustCompile(`\S+@\S+`)
	symbolRe     = regexp.MustCompile(`[^a-zA-Z0-9\s]+`)
	digitsRe     = regexp.MustCompile(`[0-9]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean normalizes raw scraped text into the canonical form used for
// embedding and storage. It is total and idempotent: it never fails,
// and Clean(Clean(x)) == Clean(x) for every input.
//
// The normalization steps run in a fixed order:
//
//  1. Drop runes outside the ASCII range.
//  2. Drop email-like tokens.
//  3. Drop symbols and punctuation (everything except letters, digits
//     and whitespace).
//  4. Drop digit runs.
//  5. Collapse consecutive whitespace to a single space and trim.
func Clean(raw string) string {
	text := stripNonASCII(raw)
	text = emailRe.ReplaceAllString(text, "")
	text = symbolRe.ReplaceAllString(text, "")
	text = digitsRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// stripNonASCII removes every rune outside the 7-bit ASCII range.
func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
