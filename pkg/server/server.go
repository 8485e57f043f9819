package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordpredict/internal/logger"
	"github.com/bastiangx/wordpredict/internal/utils"
	"github.com/bastiangx/wordpredict/pkg/config"
	"github.com/bastiangx/wordpredict/pkg/predict"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the msgpack IPC for word predictions
type Server struct {
	model        *predict.Model
	config       *config.Config
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	encoder      *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a prediction server using stdin/stdout for IPC
func NewServer(model *predict.Model, cfg *config.Config) *Server {
	return NewServerWithIO(model, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a prediction server reading requests from r and
// writing responses to w.
func NewServerWithIO(model *predict.Model, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		model:   model,
		config:  cfg,
		decoder: msgpack.NewDecoder(r),
		writer:  bw,
		encoder: msgpack.NewEncoder(bw),
		logger:  logger.New("server"),
	}
}

// Start processes requests until the input stream ends.
// A request that is valid msgpack but not a PredictionRequest gets an error
// response; a broken stream stops the server.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Client disconnected (EOF)")
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return fmt.Errorf("failed to read request: %w", err)
		}

		var req PredictionRequest
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.logger.Errorf("Unmarshaling request: %v", err)
			if err := s.sendError("", "invalid request", 400); err != nil {
				return err
			}
			continue
		}

		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

func (s *Server) handleRequest(req PredictionRequest) error {
	s.requestCount++

	switch req.Action {
	case "", "predict":
		return s.handlePredict(req)
	case "stats":
		stats := s.model.Stats()
		return s.send(StatsResponse{
			ID:       req.ID,
			Status:   "ok",
			Words:    stats["words"],
			Buckets:  stats["buckets"],
			Contexts: stats["contexts"],
			Requests: s.requestCount,
		})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handlePredict(req PredictionRequest) error {
	cfg := s.config.Server
	prefix := req.Prefix

	if prefix == "" {
		s.logger.Debug("Prefix is empty in request", "id", req.ID)
		return s.sendError(req.ID, "missing prefix", 400)
	}
	if len(prefix) < cfg.MinPrefix {
		return s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d characters", cfg.MinPrefix), 400)
	}
	if cfg.MaxPrefix > 0 && len(prefix) > cfg.MaxPrefix {
		return s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", cfg.MaxPrefix), 400)
	}

	limit := req.Limit
	if limit < 1 || limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	if cfg.EnableFilter && !utils.IsValidInput(prefix) {
		s.logger.Debug("Prefix filtered out", "prefix", prefix)
		return s.send(PredictionResponse{ID: req.ID, Suggestions: []PredictionSuggestion{}})
	}

	start := time.Now()
	entries, err := s.model.Suggest(req.Context, prefix)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, predict.ErrInvalidInput) {
			return s.sendError(req.ID, err.Error(), 400)
		}
		s.logger.Errorf("Predicting %q: %v", prefix, err)
		return s.sendError(req.ID, "internal server error", 500)
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}

	s.logger.Debugf("Took [ %v ] for prefix '%s' (context '%s')", elapsed, prefix, req.Context)
	return s.send(PredictionResponse{
		ID:          req.ID,
		Suggestions: rankSuggestions(entries),
		Count:       len(entries),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// rankSuggestions assigns 1-based ranks to entries that are already ordered.
func rankSuggestions(entries []predict.Entry) []PredictionSuggestion {
	out := make([]PredictionSuggestion, len(entries))
	for i, e := range entries {
		out[i] = PredictionSuggestion{
			Word:  e.Word,
			Rank:  uint16(i + 1),
			Score: e.Score,
		}
	}
	return out
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(PredictionError{ID: id, Error: message, Code: code})
}
