// Package cli handles cmd line input and predictions for debugging a model
package cli

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordpredict/internal/logger"
	"github.com/bastiangx/wordpredict/internal/utils"
	"github.com/bastiangx/wordpredict/pkg/corpus"
	"github.com/bastiangx/wordpredict/pkg/predict"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

func newWordStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("75"))
}

// InputHandler reads lines from the user and prints the predictions for
// each one. A line of two words predicts the second word with the first
// as context, e.g. "the ri".
type InputHandler struct {
	model           *predict.Model
	vocab           *corpus.Vocabulary
	out             *log.Logger
	wordStyle       lipgloss.Style
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters.
// vocab may be nil.
func NewInputHandler(model *predict.Model, vocab *corpus.Vocabulary, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		model:           model,
		vocab:           vocab,
		out:             logger.New(""),
		wordStyle:       newWordStyle(os.Stderr),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// SetOutput redirects everything the handler prints.
func (h *InputHandler) SetOutput(w io.Writer) {
	h.out = logger.NewWithWriter(w, "")
	h.wordStyle = newWordStyle(w)
}

// Start runs the loop on stdin.
func (h *InputHandler) Start() error {
	h.out.Print("WordPredict CLI")
	h.out.Print("type a prefix, or a previous word and a prefix, then press Enter (Ctrl+C to exit):")
	return h.Run(os.Stdin)
}

// Run handles every line of r and returns nil once r is exhausted.
func (h *InputHandler) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
	return scanner.Err()
}

// parseInput splits a line into the context word and the prefix. Only the
// last two words count.
func parseInput(line string) (context, prefix string) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return "", fields[0]
	default:
		return fields[len(fields)-2], fields[len(fields)-1]
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	context, prefix := parseInput(line)

	if len(prefix) < h.minPrefixLength {
		h.out.Errorf("Prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		h.out.Errorf("Prefix too long: %s", prefix)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidInput(prefix) || (context != "" && !utils.IsValidInput(context)) {
			h.out.Warnf("No predictions for '%s' (filtered out)", line)
			return
		}
	}

	start := time.Now()
	entries, err := h.model.Suggest(context, prefix)
	elapsed := time.Since(start)
	if err != nil {
		h.out.Errorf("Predicting '%s': %v", line, err)
		return
	}
	h.out.Debugf("Took [ %v ] for prefix '%s' (context '%s')", elapsed, prefix, context)

	if len(entries) == 0 {
		h.out.Warnf("No predictions found for: '%s'", line)
		return
	}
	if len(entries) > h.suggestLimit {
		entries = entries[:h.suggestLimit]
	}

	if h.vocab != nil && context == "" {
		total := h.vocab.CountPrefix(prefix)
		h.out.Printf("Showing %d of %s words starting with '%s':", len(entries), utils.FormatWithCommas(uint32(total)), prefix)
	} else {
		h.out.Printf("Found %d predictions for '%s':", len(entries), line)
	}
	for _, e := range entries {
		h.out.Printf("%d\t%s", e.Score, h.wordStyle.Render(e.Word))
	}
}
