// Copyright 2025 The WordPredict Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the word prediction server and CLI [DBG] application.

WordPredict learns word frequencies from a text corpus, remembers which
words follow which, and predicts completions for a typed prefix. It can
operate as a MessagePack IPC server for integration with text editors, or as
a CLI application for testing and debugging.

# Usage

Train from a corpus, save the model and start the server:

	wpredict -corpus books.txt -save

Start the server from previously saved model files:

	wpredict -words data/unigram.csv -pairs data/bigram.csv

Run in CLI mode for interactive testing:

	wpredict -c -corpus books.txt -limit 5

In CLI mode a line with two words predicts the second one after the first:

	> the ri
	4	right

# Configuration

Runtime configuration is a TOML file created with defaults on first run:

	[model]
	corpus = ""
	unigram_path = "data/unigram.csv"
	bigram_path = "data/bigram.csv"
	train_bigrams = true

	[server]
	max_limit = 10
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

Flags override the file.

# IPC Protocol

See package server. Logs always go to stderr, stdout carries responses only.

	{"id": "req1", "p": "ha", "ctx": "a"}
	{"id": "req1", "s": [{"w": "happy", "r": 1, "f": 2}], "c": 1, "t": 12}

# Command Line Flags

	-version  Show current version
	-d        Enable debug logging
	-log-json Log as JSON
	-c        Run in CLI mode instead of server mode
	-config   Path to a config file
	-corpus   Train from this text file instead of loading model files
	-words    Unigram record file
	-pairs    Bigram record file ("" to skip)
	-save     Save the trained model to -words and -pairs
	-limit, -prmin, -prmax, -no-filter
	          CLI options, defaulting to the [cli] config section
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bastiangx/wordpredict/internal/cli"
	"github.com/bastiangx/wordpredict/internal/logger"
	"github.com/bastiangx/wordpredict/internal/utils"
	"github.com/bastiangx/wordpredict/pkg/config"
	"github.com/bastiangx/wordpredict/pkg/corpus"
	"github.com/bastiangx/wordpredict/pkg/dictionary"
	"github.com/bastiangx/wordpredict/pkg/predict"
	"github.com/bastiangx/wordpredict/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordpredict"
	gh      = "https://github.com/bastiangx/wordpredict"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow between config, model and the front end.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	jsonLogs := flag.Bool("log-json", false, "Write logs as JSON")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to a custom config file")
	corpusPath := flag.String("corpus", "", "Text file to train from (overrides model files)")
	wordsPath := flag.String("words", "", "Unigram record file (default from config)")
	pairsPath := flag.String("pairs", "", "Bigram record file (default from config)")
	save := flag.Bool("save", false, "Save the trained model to the record files")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of predictions to print")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length (1 <= n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	if *jsonLogs {
		log.SetDefault(logger.NewWithConfig("", log.GetLevel(), *debugMode, true, log.JSONFormatter))
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))
	applyCLIConfig(flag.CommandLine, appConfig.CLI, limit, minPrefix, maxPrefix, noFilter)

	// flags win over the config file
	if *corpusPath != "" {
		appConfig.Model.Corpus = *corpusPath
	}
	if *wordsPath != "" {
		appConfig.Model.UnigramPath = *wordsPath
	}
	if *pairsPath != "" {
		appConfig.Model.BigramPath = *pairsPath
	}

	model, err := buildModel(appConfig.Model, *save)
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}
	log.Debug("Model ready", "words", model.Words.Len(), "contexts", model.Stats()["contexts"])

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(model, corpus.NewVocabulary(model.Words), *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(model, appConfig)
	showStartupInfo(appConfig.Model, model)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// applyCLIConfig fills the CLI options the user did not pass on the
// command line from the [cli] config section.
func applyCLIConfig(fs *flag.FlagSet, cfg config.CliConfig, limit, minPrefix, maxPrefix *int, noFilter *bool) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if !set["limit"] {
		*limit = cfg.DefaultLimit
	}
	if !set["prmin"] {
		*minPrefix = cfg.DefaultMinLen
	}
	if !set["prmax"] {
		*maxPrefix = cfg.DefaultMaxLen
	}
	if !set["no-filter"] {
		*noFilter = cfg.DefaultNoFilter
	}
}

// buildModel trains from the corpus when one is configured and loads the
// record files otherwise.
func buildModel(cfg config.ModelConfig, save bool) (*predict.Model, error) {
	unigramPath := resolvePath(cfg.UnigramPath)
	bigramPath := resolvePath(cfg.BigramPath)

	if cfg.Corpus == "" {
		if bigramPath != "" && !utils.FileExists(bigramPath) {
			log.Warnf("Bigram file %s not found, predicting without context", bigramPath)
			bigramPath = ""
		}
		m, err := dictionary.LoadModel(unigramPath, bigramPath)
		if errors.Is(err, predict.ErrNotFound) {
			return nil, fmt.Errorf("%w (train one with -corpus)", err)
		}
		return m, err
	}

	mt := predict.NewModelTrainer(cfg.TrainBigrams)
	stats, err := corpus.TrainFile(resolvePath(cfg.Corpus), mt)
	if err != nil {
		return nil, err
	}
	m := mt.Finalize()
	log.Debugf("Trained %d lines, %d tokens in %v", stats.Lines, stats.Tokens, stats.Elapsed)

	if save {
		if err := dictionary.SaveModel(m, unigramPath, bigramPath); err != nil {
			return nil, fmt.Errorf("failed to save model: %w", err)
		}
		log.Infof("Saved model to %s", unigramPath)
	}
	return m, nil
}

// resolvePath falls back to the executable dir for relative paths that do
// not exist in the working dir.
func resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || utils.FileExists(path) {
		return path
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		return path
	}
	candidate := filepath.Join(execDir, path)
	if utils.FileExists(candidate) {
		return candidate
	}
	return path
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordPredict ] Predicts the next word from what you already typed")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(cfg config.ModelConfig, m *predict.Model) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("=============")
	println(" WordPredict ")
	println("=============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	if cfg.Corpus != "" {
		log.Infof("corpus: ( %s )", cfg.Corpus)
	} else {
		log.Infof("model: ( %s )", cfg.UnigramPath)
	}
	log.Infof("words: %s", utils.FormatWithCommas(uint32(m.Words.Len())))
	log.Info("status: ready")
	println("=============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
