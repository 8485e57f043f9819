package dictionary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordpredict/pkg/predict"
	"github.com/charmbracelet/log"
)

// wrapOpenError maps a missing file to predict.ErrNotFound.
func wrapOpenError(filename string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", predict.ErrNotFound, filename)
	}
	return fmt.Errorf("failed to open %s: %w", filename, err)
}

// LoadUnigramFile reads a unigram model from disk.
func LoadUnigramFile(filename string) (*predict.Index, error) {
	if err := expectFormat(filename, FormatUnigram); err != nil {
		return nil, err
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, wrapOpenError(filename, err)
	}
	defer file.Close()

	ix, err := ReadUnigram(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	log.Debugf("Loaded %d words from %s", ix.Len(), filename)
	return ix, nil
}

// LoadBigramFile reads a bigram model from disk.
func LoadBigramFile(filename string) (*predict.BigramIndex, error) {
	if err := expectFormat(filename, FormatBigram); err != nil {
		return nil, err
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, wrapOpenError(filename, err)
	}
	defer file.Close()

	bi, err := ReadBigram(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	log.Debugf("Loaded %d context words from %s", bi.Len(), filename)
	return bi, nil
}

// SaveUnigramFile writes a unigram model, creating parent directories.
func SaveUnigramFile(filename string, ix *predict.Index) error {
	return writeFile(filename, func(file *os.File) error {
		return WriteUnigram(file, ix)
	})
}

// SaveBigramFile writes a bigram model, creating parent directories.
func SaveBigramFile(filename string, bi *predict.BigramIndex) error {
	return writeFile(filename, func(file *os.File) error {
		return WriteBigram(file, bi)
	})
}

func writeFile(filename string, encode func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filename, err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := encode(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filename, err)
	}
	log.Debugf("Saved model to %s", filename)
	return nil
}

// LoadModel loads the unigram file and, when bigramPath is non-empty, the
// bigram file.
func LoadModel(unigramPath, bigramPath string) (*predict.Model, error) {
	words, err := LoadUnigramFile(unigramPath)
	if err != nil {
		return nil, err
	}
	m := &predict.Model{Words: words}
	if bigramPath == "" {
		return m, nil
	}
	pairs, err := LoadBigramFile(bigramPath)
	if err != nil {
		return nil, err
	}
	m.Pairs = pairs
	return m, nil
}

// SaveModel writes the model's unigram and, if present, bigram records.
func SaveModel(m *predict.Model, unigramPath, bigramPath string) error {
	if err := SaveUnigramFile(unigramPath, m.Words); err != nil {
		return err
	}
	if m.Pairs == nil || bigramPath == "" {
		return nil
	}
	return SaveBigramFile(bigramPath, m.Pairs)
}

// expectFormat rejects a file whose first record is of the other kind, so a
// bigram file passed as the word list fails with a clear message.
func expectFormat(filename string, want FileFormat) error {
	got, err := DetectFileFormat(filename)
	if errors.Is(err, predict.ErrNotFound) {
		return err
	}
	if err != nil {
		// the full parse reports it with a line number
		return nil
	}
	if got != FormatUnknown && got != want {
		return fmt.Errorf("%w: %s holds %s, expected %s", predict.ErrFormat, filename, got, want)
	}
	return nil
}
