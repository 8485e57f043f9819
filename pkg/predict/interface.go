/*
Package predict is the core, providing frequency trainers and the
immutable prefix indexes they finalize into.

Training happens on a mutable Trainer (or BigramTrainer). Once all text has
been fed, Finalize converts it into an Index (or BigramIndex) that keeps its
entries in lexical order together with a bucket index from leading
character to offset. Prediction starts at that offset and scans only the
run of entries sharing the prefix's first character.

	t := predict.NewTrainer()
	t.TrainString("hello hello help")
	ix := t.Finalize()
	entries, err := ix.Predict("hel")

A finalized trainer must not be used again; doing so panics.
*/
package predict

// MaxPredictions is the upper bound of entries returned by a single Predict call.
const MaxPredictions = 10

// Predictor is implemented by anything that ranks completions for a prefix.
type Predictor interface {
	// Predict returns at most MaxPredictions entries whose word starts with prefix,
	// highest score first.
	Predict(prefix string) ([]Entry, error)

	// Len returns the number of distinct words known to the predictor.
	Len() int
}

// ContextPredictor ranks completions for a prefix given the previous word.
type ContextPredictor interface {
	Predict(context, prefix string) ([]Entry, error)
	Len() int
}

var (
	_ Predictor        = (*Index)(nil)
	_ ContextPredictor = (*BigramIndex)(nil)
)
