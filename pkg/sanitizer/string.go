package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims s and collapses every run of whitespace into one space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s))
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
			continue
		}
		result.WriteRune(r)
		lastWasSpace = false
	}

	return result.String()
}

// NormalizeName tidies a display name such as a space name. Case is kept.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeLabel lowercases a category-like label so "Tennis  Court" and
// "tennis court" compare equal.
func NormalizeLabel(label string) string {
	return strings.ToLower(TrimAndNormalize(label))
}
