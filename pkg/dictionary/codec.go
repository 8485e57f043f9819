// Package dictionary reads and writes the plain-text record format used to
// persist trained models.
//
// A unigram file holds one "word,score" line per entry, a bigram file holds
// one "context word,score" line per pair. Writers always emit lines in
// ascending order so output is reproducible.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/wordpredict/pkg/predict"
	"github.com/charmbracelet/log"
)

// ParseUnigramLine parses a single "word,score" line.
func ParseUnigramLine(line string) (predict.Entry, error) {
	word, score, err := splitRecord(line)
	if err != nil {
		return predict.Entry{}, err
	}
	if strings.ContainsRune(word, ' ') {
		return predict.Entry{}, fmt.Errorf("%w: unigram word %q contains a space", predict.ErrFormat, word)
	}
	return predict.Entry{Word: word, Score: score}, nil
}

// ParseBigramLine parses a single "context word,score" line.
func ParseBigramLine(line string) (predict.BigramRecord, error) {
	key, score, err := splitRecord(line)
	if err != nil {
		return predict.BigramRecord{}, err
	}
	context, word, ok := strings.Cut(key, " ")
	if !ok {
		return predict.BigramRecord{}, fmt.Errorf("%w: bigram key %q has no space", predict.ErrFormat, key)
	}
	if context == "" || word == "" || strings.ContainsRune(word, ' ') {
		return predict.BigramRecord{}, fmt.Errorf("%w: bigram key %q must be two words", predict.ErrFormat, key)
	}
	return predict.BigramRecord{Context: context, Word: word, Score: score}, nil
}

// splitRecord splits "<key>,<score>" on its last comma.
func splitRecord(line string) (string, uint32, error) {
	i := strings.LastIndexByte(line, ',')
	if i < 0 {
		return "", 0, fmt.Errorf("%w: missing comma in %q", predict.ErrFormat, line)
	}
	key, raw := line[:i], line[i+1:]
	if key == "" {
		return "", 0, fmt.Errorf("%w: empty word in %q", predict.ErrFormat, line)
	}
	score, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("%w: bad score %q: %v", predict.ErrFormat, raw, err)
	}
	if score == 0 {
		return "", 0, fmt.Errorf("%w: zero score in %q", predict.ErrFormat, line)
	}
	return key, uint32(score), nil
}

// scanRecords calls fn for every non-blank, trimmed line of r. Errors
// returned by fn are annotated with the line number.
func scanRecords(r io.Reader, fn func(line string) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}
	return nil
}

// ReadUnigram decodes a unigram record stream into an Index.
func ReadUnigram(r io.Reader) (*predict.Index, error) {
	var records []predict.Entry
	err := scanRecords(r, func(line string) error {
		e, err := ParseUnigramLine(line)
		if err != nil {
			return err
		}
		records = append(records, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ix, err := predict.NewIndex(records)
	if err != nil {
		return nil, err
	}
	log.Debugf("Read %d unigram records", len(records))
	return ix, nil
}

// WriteUnigram encodes the index in ascending word order.
func WriteUnigram(w io.Writer, ix *predict.Index) error {
	bw := bufio.NewWriter(w)
	for _, e := range ix.Records() {
		if _, err := fmt.Fprintf(bw, "%s,%d\n", e.Word, e.Score); err != nil {
			return fmt.Errorf("failed to write record %q: %w", e.Word, err)
		}
	}
	return bw.Flush()
}

// ReadBigram decodes a bigram record stream into a BigramIndex.
func ReadBigram(r io.Reader) (*predict.BigramIndex, error) {
	var records []predict.BigramRecord
	err := scanRecords(r, func(line string) error {
		rec, err := ParseBigramLine(line)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	bi, err := predict.NewBigramIndex(records)
	if err != nil {
		return nil, err
	}
	log.Debugf("Read %d bigram records across %d context words", len(records), bi.Len())
	return bi, nil
}

// WriteBigram encodes every pair ordered by context, then word.
func WriteBigram(w io.Writer, bi *predict.BigramIndex) error {
	bw := bufio.NewWriter(w)
	for _, r := range bi.Records() {
		if _, err := fmt.Fprintf(bw, "%s %s,%d\n", r.Context, r.Word, r.Score); err != nil {
			return fmt.Errorf("failed to write record %q %q: %w", r.Context, r.Word, err)
		}
	}
	return bw.Flush()
}
