package analysis

import (
	"strings"
	"unicode/utf8"
)

const (
	maxKeywords     = 3
	minKeywordChars = 3
	noKeywords      = "General"
)

// ExtractKeywords is a lightweight stand-in for a real keyword-extraction
// model: the first three whitespace-separated tokens longer than three
// characters, comma-joined, in their original order. "General" when no
// token qualifies.
func ExtractKeywords(text string) string {
	var kept []string
	for _, token := range strings.Fields(text) {
		if utf8.RuneCountInString(token) > minKeywordChars {
			kept = append(kept, token)
			if len(kept) == maxKeywords {
				break
			}
		}
	}

	if len(kept) == 0 {
		return noKeywords
	}
	return strings.Join(kept, ",")
}
