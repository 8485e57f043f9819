// Package corpus trains prediction models from plain text.
//
// Text is read line by line. Each line is case-folded, stripped down to
// lowercase ASCII letters and spaces, and split into tokens that are fed
// to a predict.ModelTrainer in reading order.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/bastiangx/wordpredict/internal/utils"
	"github.com/bastiangx/wordpredict/pkg/predict"
	"github.com/charmbracelet/log"
)

// maxLineSize bounds a single corpus line.
const maxLineSize = 1 << 20

// Stats describes one training run.
type Stats struct {
	Lines   int
	Tokens  int
	Elapsed time.Duration
}

// Train feeds every line of r to mt.
func Train(r io.Reader, mt *predict.ModelTrainer) (Stats, error) {
	start := time.Now()
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		stats.Lines++
		tokens := utils.Tokenize(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		stats.Tokens += len(tokens)
		mt.Train(tokens)
	}
	stats.Elapsed = time.Since(start)
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("line %d: %w", stats.Lines+1, err)
	}
	return stats, nil
}

// TrainFile trains mt from the text file at path.
func TrainFile(path string, mt *predict.ModelTrainer) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Stats{}, fmt.Errorf("%w: corpus %s", predict.ErrNotFound, path)
		}
		return Stats{}, fmt.Errorf("failed to open corpus %s: %w", path, err)
	}
	defer f.Close()

	stats, err := Train(f, mt)
	if err != nil {
		return stats, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	log.Debugf("Trained on %s: %s lines, %s tokens in %v", path,
		utils.FormatWithCommas(uint32(stats.Lines)), utils.FormatWithCommas(uint32(stats.Tokens)), stats.Elapsed)
	return stats, nil
}
