package predict

import "fmt"

// ModelTrainer feeds one token stream to a unigram and, optionally, a
// bigram trainer.
type ModelTrainer struct {
	words *Trainer
	pairs *BigramTrainer
}

// NewModelTrainer creates a trainer. withBigrams controls whether word pairs
// are counted as well.
func NewModelTrainer(withBigrams bool) *ModelTrainer {
	mt := &ModelTrainer{words: NewTrainer()}
	if withBigrams {
		mt.pairs = NewBigramTrainer()
	}
	return mt
}

// Train feeds tokens to every underlying trainer.
func (mt *ModelTrainer) Train(tokens []string) {
	mt.words.Train(tokens)
	if mt.pairs != nil {
		mt.pairs.Train(tokens)
	}
}

// Words exposes the unigram trainer.
func (mt *ModelTrainer) Words() *Trainer {
	return mt.words
}

// Pairs exposes the bigram trainer; nil when bigrams are disabled.
func (mt *ModelTrainer) Pairs() *BigramTrainer {
	return mt.pairs
}

// Finalize consumes the underlying trainers and returns the queryable model.
func (mt *ModelTrainer) Finalize() *Model {
	m := &Model{Words: mt.words.Finalize()}
	if mt.pairs != nil {
		m.Pairs = mt.pairs.Finalize()
	}
	return m
}

// Model bundles a unigram index with an optional bigram index.
type Model struct {
	Words *Index
	Pairs *BigramIndex
}

// Suggest predicts completions of prefix. When context is non-empty and the
// model has bigrams, the bigram index is consulted; otherwise the unigram index.
func (m *Model) Suggest(context, prefix string) ([]Entry, error) {
	if context != "" && m.Pairs != nil {
		return m.Pairs.Predict(context, prefix)
	}
	if m.Words == nil {
		if prefix == "" {
			return nil, fmt.Errorf("%w: empty prefix", ErrInvalidInput)
		}
		return []Entry{}, nil
	}
	return m.Words.Predict(prefix)
}

// Stats reports basic sizes of the loaded model.
func (m *Model) Stats() map[string]int {
	stats := map[string]int{
		"words":    0,
		"buckets":  0,
		"contexts": 0,
	}
	if m.Words != nil {
		stats["words"] = m.Words.Len()
		stats["buckets"] = m.Words.Buckets()
	}
	if m.Pairs != nil {
		stats["contexts"] = m.Pairs.Len()
	}
	return stats
}
