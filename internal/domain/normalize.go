package domain

import (
	"strings"
	"unicode"
)

// NormalizeQuery prepares user input for a dictionary lookup:
//   - trims leading/trailing whitespace
//   - compresses runs of inner whitespace into a single space
//
// Case is preserved; the searched word is echoed back as typed.
func NormalizeQuery(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
