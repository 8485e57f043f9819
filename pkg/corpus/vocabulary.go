package corpus

import (
	"github.com/bastiangx/wordpredict/pkg/predict"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Vocabulary is a prefix trie over the words of a finalized index.
// Predict only returns the best few completions; Vocabulary answers how
// many words share a prefix in total.
type Vocabulary struct {
	trie *patricia.Trie
	size int
}

// NewVocabulary loads every word of idx into a trie.
func NewVocabulary(idx *predict.Index) *Vocabulary {
	v := &Vocabulary{trie: patricia.NewTrie()}
	if idx == nil {
		return v
	}
	for _, e := range idx.Records() {
		if v.trie.Insert(patricia.Prefix(e.Word), e.Score) {
			v.size++
		}
	}
	return v
}

// Len returns the number of distinct words.
func (v *Vocabulary) Len() int {
	return v.size
}

// CountPrefix returns how many words start with prefix, the prefix itself
// included when it is a word.
func (v *Vocabulary) CountPrefix(prefix string) int {
	if prefix == "" {
		return v.size
	}
	n := 0
	_ = v.trie.VisitSubtree(patricia.Prefix(prefix), func(patricia.Prefix, patricia.Item) error {
		n++
		return nil
	})
	return n
}

// Score returns the stored count of word.
func (v *Vocabulary) Score(word string) (uint32, bool) {
	item := v.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	score, ok := item.(uint32)
	return score, ok
}
