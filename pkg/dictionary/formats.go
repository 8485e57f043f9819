package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the kind of records a model file holds
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatUnigram            // word,score
	FormatBigram             // context word,score
)

// FormatInfo contains metadata about a model file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatUnigram: {
		Format:      FormatUnigram,
		Description: "Unigram Frequency Records",
		Extensions:  []string{".csv", ".txt"},
	},
	FormatBigram: {
		Format:      FormatBigram,
		Description: "Bigram Frequency Records",
		Extensions:  []string{".csv", ".txt"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// DetectFileFormat inspects the first record of a file to decide whether it
// holds unigram or bigram records. A file without records is FormatUnknown
// with a nil error.
func DetectFileFormat(filename string) (FileFormat, error) {
	file, err := os.Open(filename)
	if err != nil {
		return FormatUnknown, wrapOpenError(filename, err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(filename))
	if !hasExtension(ext) {
		log.Warnf("Unexpected extension %s for %s, inspecting contents anyway", ext, filename)
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return detectLine(line)
	}
	if err := scanner.Err(); err != nil {
		return FormatUnknown, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return FormatUnknown, nil
}

func detectLine(line string) (FileFormat, error) {
	if _, err := ParseUnigramLine(line); err == nil {
		return FormatUnigram, nil
	}
	if _, err := ParseBigramLine(line); err != nil {
		return FormatUnknown, err
	}
	return FormatBigram, nil
}

func hasExtension(ext string) bool {
	for _, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return true
			}
		}
	}
	return false
}
