package title

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify normalizes a display title into a URL-safe, lowercase slug:
// accents folded, disallowed characters stripped, whitespace collapsed
// to single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(removeAccents(s))

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == ' ':
			b.WriteRune(r)
		}
	}

	fields := strings.Fields(b.String())
	return strings.Trim(strings.Join(fields, "-"), "-")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
