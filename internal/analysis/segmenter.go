package analysis

import (
	"iter"
	"strings"
	"unicode/utf8"
)

const minLineChars = 5

// SegmentLines decodes raw strictly as UTF-8 and yields one candidate per
// qualifying line: blank lines are skipped, a line containing a comma
// contributes only its first column, and candidates whose trimmed length is
// five characters or fewer are dropped. The returned sequence is lazy and
// single-pass; invalid UTF-8 fails the whole request with a decode error.
func SegmentLines(raw []byte) (iter.Seq[string], error) {
	if !utf8.Valid(raw) {
		return nil, &Error{
			Kind:    KindDecode,
			Message: "Invalid file encoding. Use UTF-8.",
		}
	}

	lines := strings.Split(string(raw), "\n")

	return func(yield func(string) bool) {
		for _, line := range lines {
			line = strings.TrimSuffix(line, "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}

			// First-column heuristic for delimiter-separated input.
			text := line
			if i := strings.Index(line, ","); i >= 0 {
				text = line[:i]
			}

			if utf8.RuneCountInString(strings.TrimSpace(text)) <= minLineChars {
				continue
			}

			if !yield(text) {
				return
			}
		}
	}, nil
}
