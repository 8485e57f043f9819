package utils

import (
	"strings"

	"golang.org/x/text/cases"
)

// CleanLine case-folds s and keeps only 'a'-'z' and spaces. Every other
// character is dropped, so "Don't!" becomes "dont".
func CleanLine(s string) string {
	folded := cases.Fold().String(s)

	var b strings.Builder
	b.Grow(len(folded))
	for i := 0; i < len(folded); i++ {
		c := folded[i]
		if c == ' ' || c == '\t' || (c >= 'a' && c <= 'z') {
			if c == '\t' {
				c = ' '
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Tokenize normalizes a line and splits it on whitespace.
func Tokenize(line string) []string {
	return strings.Fields(CleanLine(line))
}
