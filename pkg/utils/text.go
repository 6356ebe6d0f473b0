package utils

import (
	"strings"
	"unicode"
)

// NormalizeQuery lowercases and trims a search string before it is used as a key or compared
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Slugify turns a display name into its URL slug: "Widgets Inc." -> "widgets-inc"
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '\'' || r == '’':
			// apostrophes vanish: "Joe's" -> "joes"
		default:
			pendingDash = true
		}
	}
	return b.String()
}

// Terms splits text into lowercase alphanumeric words, dropping duplicates and words
// shorter than minLen. Order of first appearance is kept.
func Terms(text string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < minLen {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}
