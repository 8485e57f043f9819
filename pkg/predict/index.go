package predict

import (
	"fmt"
	"sort"
	"strings"
)

// Index is the immutable, queryable form of a Trainer. Entries are kept
// in lexical order and buckets maps each leading character to the offset
// of the first entry starting with it.
type Index struct {
	entries []Entry
	buckets map[rune]int
}

// NewIndex builds an index from records in any order. Records with a word
// Train would skip, a zero score or a duplicated word are rejected with
// ErrFormat.
func NewIndex(records []Entry) (*Index, error) {
	entries := make([]Entry, len(records))
	copy(entries, records)

	for i, e := range entries {
		if err := validateWord(e.Word); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrFormat, i, err)
		}
		if e.Score == 0 {
			return nil, fmt.Errorf("%w: record %d (%q) has a zero score", ErrFormat, i, e.Word)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Word < entries[j].Word
	})
	for i := 1; i < len(entries); i++ {
		if entries[i].Word == entries[i-1].Word {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrFormat, entries[i].Word)
		}
	}

	return newSortedIndex(entries), nil
}

// newSortedIndex takes ownership of entries, which must already be sorted
// by word with no duplicates.
func newSortedIndex(entries []Entry) *Index {
	return &Index{
		entries: entries,
		buckets: buildBuckets(entries),
	}
}

// buildBuckets records, in a single forward pass, the offset at which each
// leading character first appears.
func buildBuckets(entries []Entry) map[rune]int {
	buckets := make(map[rune]int)
	var last rune
	for i, e := range entries {
		c := leadingRune(e.Word)
		if i > 0 && c == last {
			continue
		}
		if _, seen := buckets[c]; !seen {
			buckets[c] = i
		}
		last = c
	}
	return buckets
}

// Predict returns up to MaxPredictions entries starting with prefix, highest
// score first. Entries with equal scores keep their lexical order.
func (ix *Index) Predict(prefix string) ([]Entry, error) {
	if prefix == "" {
		return nil, fmt.Errorf("%w: empty prefix", ErrInvalidInput)
	}

	c := leadingRune(prefix)
	start, ok := ix.buckets[c]
	if !ok {
		return []Entry{}, nil
	}

	var matches []Entry
	for _, e := range ix.entries[start:] {
		// Entries sharing a leading character are contiguous, so the first
		// mismatch ends the bucket.
		if leadingRune(e.Word) != c {
			break
		}
		if strings.HasPrefix(e.Word, prefix) {
			matches = append(matches, e)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > MaxPredictions {
		matches = matches[:MaxPredictions]
	}
	if matches == nil {
		matches = []Entry{}
	}
	return matches, nil
}

// Records returns a copy of the entries in ascending word order, the form
// used for persistence.
func (ix *Index) Records() []Entry {
	out := make([]Entry, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// Len returns the number of distinct words in the index.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Buckets returns the number of distinct leading characters.
func (ix *Index) Buckets() int {
	return len(ix.buckets)
}

// Score looks up the score of an exact word.
func (ix *Index) Score(word string) (uint32, bool) {
	i := sort.Search(len(ix.entries), func(i int) bool {
		return ix.entries[i].Word >= word
	})
	if i < len(ix.entries) && ix.entries[i].Word == word {
		return ix.entries[i].Score, true
	}
	return 0, false
}
