package utils

import (
	"fmt"
	"strings"
)

// IsWordChar reports whether b can appear in a normalized token.
func IsWordChar(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// IsValidInput checks if a prefix can match anything in a normalized model.
// Returns false for empty strings, anything outside [a-z] and repetitive
// strings like "zzzz".
func IsValidInput(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsWordChar(s[i]) {
			return false
		}
	}
	return !IsRepetitive(s)
}

// IsRepetitive checks if a string is one character repeated 4+ times.
func IsRepetitive(s string) bool {
	if len(s) <= 3 {
		return false
	}
	return strings.Count(s, s[:1]) == len(s)
}

// FormatWithCommas formats an unsigned integer with comma separators
func FormatWithCommas(n uint32) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}
	var b strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}
