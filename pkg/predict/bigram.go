package predict

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// BigramTrainer counts which words follow which. The last word of every
// Train call is kept as pending so the pair spanning two calls is counted.
//
// The very first word of the whole stream only ever acts as context; it is
// never counted as a completion.
type BigramTrainer struct {
	outer     map[string]*Trainer
	pending   string
	seeded    bool
	finalized bool
}

// BigramRecord is one persisted (context, word, score) triple.
type BigramRecord struct {
	Context string
	Word    string
	Score   uint32
}

// NewBigramTrainer creates an empty bigram trainer.
func NewBigramTrainer() *BigramTrainer {
	return &BigramTrainer{outer: make(map[string]*Trainer)}
}

// Train counts each token under the token before it. Tokens the unigram
// Trainer would skip are skipped here too and never become the context.
func (b *BigramTrainer) Train(tokens []string) {
	b.mustBeLive("Train")
	for _, tok := range tokens {
		if validateWord(tok) != nil {
			continue
		}
		if !b.seeded {
			b.pending = tok
			b.seeded = true
			continue
		}
		inner, ok := b.outer[b.pending]
		if !ok {
			inner = NewTrainer()
			b.outer[b.pending] = inner
		}
		inner.add(tok)
		b.pending = tok
	}
}

// TrainString splits input on single spaces and trains on the pieces.
func (b *BigramTrainer) TrainString(input string) {
	b.Train(strings.Split(input, " "))
}

// Pending returns the word that will act as context for the next token.
func (b *BigramTrainer) Pending() (string, bool) {
	b.mustBeLive("Pending")
	return b.pending, b.seeded
}

// Score reports how many times word followed context.
func (b *BigramTrainer) Score(context, word string) (uint32, bool) {
	b.mustBeLive("Score")
	inner, ok := b.outer[context]
	if !ok {
		return 0, false
	}
	return inner.Score(word)
}

// Len returns the number of distinct context words.
func (b *BigramTrainer) Len() int {
	b.mustBeLive("Len")
	return len(b.outer)
}

// Finalize turns every inner trainer into an Index. The trainer cannot be
// used afterwards.
func (b *BigramTrainer) Finalize() *BigramIndex {
	b.mustBeLive("Finalize")

	inner := make(map[string]*Index, len(b.outer))
	for context, t := range b.outer {
		inner[context] = t.finalize()
	}
	b.outer = nil
	b.finalized = true

	log.Debugf("Finalized bigram trainer: %d context words", len(inner))
	return &BigramIndex{inner: inner}
}

func (b *BigramTrainer) mustBeLive(op string) {
	if b.finalized {
		panic("predict: " + op + " called on a finalized BigramTrainer")
	}
}

// BigramIndex predicts the next word given the previous one.
type BigramIndex struct {
	inner map[string]*Index
}

// NewBigramIndex groups records by context and indexes each group.
func NewBigramIndex(records []BigramRecord) (*BigramIndex, error) {
	grouped := make(map[string][]Entry)
	for i, r := range records {
		if err := validateWord(r.Context); err != nil {
			return nil, fmt.Errorf("%w: record %d context: %v", ErrFormat, i, err)
		}
		grouped[r.Context] = append(grouped[r.Context], Entry{Word: r.Word, Score: r.Score})
	}

	inner := make(map[string]*Index, len(grouped))
	for context, entries := range grouped {
		ix, err := NewIndex(entries)
		if err != nil {
			return nil, fmt.Errorf("context %q: %w", context, err)
		}
		inner[context] = ix
	}
	return &BigramIndex{inner: inner}, nil
}

// Predict returns completions of prefix that followed context in training.
// An unseen context yields an empty result, not an error.
func (bi *BigramIndex) Predict(context, prefix string) ([]Entry, error) {
	if prefix == "" {
		return nil, fmt.Errorf("%w: empty prefix", ErrInvalidInput)
	}
	ix, ok := bi.inner[context]
	if !ok {
		return []Entry{}, nil
	}
	return ix.Predict(prefix)
}

// Context returns the index of words observed after context.
func (bi *BigramIndex) Context(context string) (*Index, bool) {
	ix, ok := bi.inner[context]
	return ix, ok
}

// Records returns every pair ordered by context, then word.
func (bi *BigramIndex) Records() []BigramRecord {
	contexts := make([]string, 0, len(bi.inner))
	for c := range bi.inner {
		contexts = append(contexts, c)
	}
	sort.Strings(contexts)

	var out []BigramRecord
	for _, c := range contexts {
		for _, e := range bi.inner[c].entries {
			out = append(out, BigramRecord{Context: c, Word: e.Word, Score: e.Score})
		}
	}
	return out
}

// Len returns the number of distinct context words.
func (bi *BigramIndex) Len() int {
	return len(bi.inner)
}
