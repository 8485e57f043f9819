package predict

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Entry is a word together with the number of times it was observed.
type Entry struct {
	Word  string
	Score uint32
}

// String renders the entry as "score\tword", the layout used by the CLI.
func (e Entry) String() string {
	return fmt.Sprintf("%d\t%s", e.Score, e.Word)
}

// leadingRune returns the first code point of s, or utf8.RuneError for an empty string.
func leadingRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// validateWord reports why w cannot be stored as a record key. Keys must
// survive the line format unchanged and be valid UTF-8 so that entries
// sharing a leading rune stay contiguous once sorted.
func validateWord(w string) error {
	switch {
	case w == "":
		return errors.New("empty word")
	case !utf8.ValidString(w):
		return fmt.Errorf("word %q is not valid UTF-8", w)
	case strings.IndexFunc(w, unicode.IsSpace) >= 0:
		return fmt.Errorf("word %q contains whitespace", w)
	}
	return nil
}
