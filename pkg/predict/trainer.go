package predict

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Trainer accumulates word frequencies. It is fast for looking up and
// incrementing a word, but has no order, so it must be finalized into
// an Index before it can answer prefix queries.
type Trainer struct {
	counts    map[string]uint32
	finalized bool
}

// NewTrainer creates an empty trainer.
func NewTrainer() *Trainer {
	return &Trainer{counts: make(map[string]uint32)}
}

// Train counts every token once. Tokens that are empty, not valid UTF-8 or
// contain whitespace are skipped.
func (t *Trainer) Train(tokens []string) {
	t.mustBeLive("Train")
	for _, tok := range tokens {
		t.add(tok)
	}
}

// TrainString splits input on single spaces and trains on the pieces.
// Runs of spaces produce empty tokens, which are skipped.
func (t *Trainer) TrainString(input string) {
	t.Train(strings.Split(input, " "))
}

// TrainWord counts a single word.
func (t *Trainer) TrainWord(word string) {
	t.mustBeLive("TrainWord")
	t.add(word)
}

func (t *Trainer) add(word string) {
	if validateWord(word) != nil {
		return
	}
	// saturate rather than wrap to a zero score
	if n := t.counts[word]; n < math.MaxUint32 {
		t.counts[word] = n + 1
	}
}

// Score reports the current count of word.
func (t *Trainer) Score(word string) (uint32, bool) {
	t.mustBeLive("Score")
	n, ok := t.counts[word]
	return n, ok
}

// Len returns the number of distinct words seen so far.
func (t *Trainer) Len() int {
	t.mustBeLive("Len")
	return len(t.counts)
}

// Finalize converts the trainer into an Index. The trainer gives up its
// counts and cannot be used afterwards.
func (t *Trainer) Finalize() *Index {
	ix := t.finalize()
	log.Debugf("Finalized trainer: %d words", ix.Len())
	return ix
}

func (t *Trainer) finalize() *Index {
	t.mustBeLive("Finalize")

	entries := make([]Entry, 0, len(t.counts))
	for word, score := range t.counts {
		entries = append(entries, Entry{Word: word, Score: score})
	}
	t.counts = nil
	t.finalized = true

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Word < entries[j].Word
	})

	return newSortedIndex(entries)
}

func (t *Trainer) mustBeLive(op string) {
	if t.finalized {
		panic("predict: " + op + " called on a finalized Trainer")
	}
}
