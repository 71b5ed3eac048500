package game

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxNameLength = 40

// NormalizeName trims a user name and collapses inner whitespace.
func NormalizeName(name string) (string, error) {
	normalized := strings.Join(strings.Fields(name), " ")
	if normalized == "" || utf8.RuneCountInString(normalized) > maxNameLength {
		return "", ErrInvalidName
	}
	for _, r := range normalized {
		if unicode.IsControl(r) {
			return "", ErrInvalidName
		}
	}
	return normalized, nil
}
