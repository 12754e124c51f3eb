package models

import (
	"strings"
	"unicode"
)

// Slugify lowercases a name and collapses anything that is not a letter or
// digit into single hyphens, e.g. "Limpeza Espiritual" -> "limpeza-espiritual".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
