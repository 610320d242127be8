// Copyright 2025 The Kokoa Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the kokoa word discovery trainer, IPC server and CLI.

kokoa learns Korean words from raw, unlabeled text. Every document is split
into chunks of one character class, every Hangul chunk is expanded into its
prefix candidates, and each candidate is scored by cohesion: how strongly its
syllables stick together across the corpus. The best scoring prefix of each
chunk becomes a word.

# Usage

Train on a directory of .txt, .json and .jsonl files and write the vocabulary:

	kokoa -train -out data/ corpus/

Serve the vocabulary over msgpack IPC on stdin/stdout:

	kokoa -data data/

Explore tokenization interactively:

	kokoa -c -data data/

Training writes three artifacts to the output directory: the model snapshot
(model.msgpack) holding frequencies, scores and chunks; the ranked vocabulary
as chunk files dict_0001.bin, dict_0002.bin, ...; and a words.csv export.

When the data directory holds no chunk files, serve and CLI modes read the
words.csv export instead, and without that they rebuild the vocabulary from
the model snapshot.

# Configuration

The TOML config is created with defaults if it doesn't exist:

	[train]
	workers = 0
	shards = 32
	min_frequency = 1
	min_syllables = 2
	out = "kokoa-data"

	[dict]
	chunk_size = 10000
	max_words = 0

	[server]
	max_limit = 64
	max_input = 4096

	[cli]
	show_jamo = true
	show_chunks = true

Flags given on the command line override the file.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/kokoa/internal/cli"
	"github.com/bastiangx/kokoa/internal/corpus"
	"github.com/bastiangx/kokoa/internal/logger"
	"github.com/bastiangx/kokoa/internal/utils"
	"github.com/bastiangx/kokoa/pkg/cohesion"
	"github.com/bastiangx/kokoa/pkg/config"
	"github.com/bastiangx/kokoa/pkg/dictionary"
	"github.com/bastiangx/kokoa/pkg/lexicon"
	"github.com/bastiangx/kokoa/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "kokoa"
	gh      = "https://github.com/bastiangx/kokoa"

	snapshotFile = "model.msgpack"
	textFile     = "words.csv"
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

func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	configPath := flag.String("config", "", "Path to a config.toml")
	trainMode := flag.Bool("train", false, "Train on the files and directories given as arguments")
	outDir := flag.String("out", "", "Output directory for trained artifacts (default from config)")
	modelPath := flag.String("model", "", "Model snapshot path (default <out>/model.msgpack)")
	workers := flag.Int("workers", -1, "Training workers, 0 for one per CPU (default from config)")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for exploring tokenization")
	dataDir := flag.String("data", "", "Directory holding dict_*.bin chunks (default <out>)")
	wordLimit := flag.Int("words", -1, "Maximum words to load, 0 for all (default from config)")
	limit := flag.Int("limit", 10, "Number of completions to list in CLI mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	cfg, usedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedPath))

	if *outDir != "" {
		cfg.Train.Out = *outDir
	}
	if *workers >= 0 {
		cfg.Train.Workers = *workers
	}
	if *wordLimit >= 0 {
		cfg.Dict.MaxWords = *wordLimit
	}
	if *modelPath == "" {
		*modelPath = filepath.Join(cfg.Train.Out, snapshotFile)
	}
	if *dataDir == "" {
		*dataDir = cfg.Train.Out
	}

	if *trainMode {
		if err := train(cfg, *modelPath, flag.Args()); err != nil {
			log.Fatalf("Training failed: %v", err)
		}
		return
	}

	lex, loader, err := openLexicon(cfg, *dataDir, *modelPath)
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}

	if *cliMode {
		handler := cli.NewInputHandler(lex, cfg.CLI, *limit, os.Stdin, os.Stdout)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	srv := server.NewServer(lex, cfg.Server, os.Stdin, os.Stdout)
	if loader != nil {
		srv.WithDictionary(loader)
	}
	showStartupInfo(*dataDir, lex.Len())
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// train discovers a vocabulary from paths and writes the snapshot, chunk files and text export.
func train(cfg *config.Config, modelPath string, paths []string) error {
	if len(paths) == 0 {
		return errors.New("no corpus paths given")
	}
	tl := logger.New("train")

	start := time.Now()
	docs, err := corpus.Load(paths...)
	if err != nil {
		return err
	}
	tl.Info("Corpus read", "docs", utils.FormatWithCommas(len(docs)), "took", utils.FormatDuration(time.Since(start)))

	start = time.Now()
	model := cohesion.New(cfg.Options())
	vocab, err := model.Train(context.Background(), docs)
	if err != nil {
		return err
	}
	tl.Info("Vocabulary discovered",
		"words", utils.FormatWithCommas(vocab.Len()),
		"candidates", utils.FormatWithCommas(model.Table().Len()),
		"took", utils.FormatDuration(time.Since(start)))

	if err := utils.EnsureDir(filepath.Dir(modelPath)); err != nil {
		return err
	}
	if err := cohesion.SaveSnapshot(model.Snapshot(), modelPath); err != nil {
		return err
	}

	ranked := vocab.Ranked()
	chunks, err := dictionary.WriteChunks(cfg.Train.Out, ranked, cfg.Dict.ChunkSize)
	if err != nil {
		return err
	}
	if err := dictionary.WriteText(filepath.Join(cfg.Train.Out, textFile), ranked); err != nil {
		return err
	}
	tl.Info("Artifacts written", "dir", utils.GetAbsolutePath(cfg.Train.Out), "chunks", len(chunks), "model", modelPath)
	return nil
}

// openLexicon loads the vocabulary from dataDir. It tries the chunk files
// first, then the words.csv export, then the model snapshot.
// The returned loader is nil unless the vocabulary came from chunk files.
func openLexicon(cfg *config.Config, dataDir, modelPath string) (*lexicon.Lexicon, *dictionary.Loader, error) {
	loader := dictionary.NewLoader(dataDir, cfg.Dict.MaxWords)
	err := loader.LoadAll()
	if err == nil {
		log.Debugf("Loaded %d words from %s", loader.GetStats().LoadedWords, dataDir)
		return lexicon.FromTrie(loader.Trie()), loader, nil
	}
	if !errors.Is(err, dictionary.ErrNoChunks) {
		return nil, nil, err
	}

	textPath := filepath.Join(dataDir, textFile)
	if format, _ := dictionary.DetectFileFormat(textPath); format == dictionary.FormatText {
		log.Warnf("No chunk files in %s, reading vocabulary from %s", dataDir, textPath)
		entries, err := dictionary.ReadText(textPath)
		if err != nil {
			return nil, nil, err
		}
		return lexicon.FromEntries(entries), nil, nil
	}

	log.Warnf("No chunk files or %s in %s, rebuilding vocabulary from %s", textFile, dataDir, modelPath)
	snap, err := cohesion.LoadSnapshot(modelPath)
	if err != nil {
		return nil, nil, err
	}
	model, err := cohesion.FromSnapshot(cfg.Options(), snap)
	if err != nil {
		return nil, nil, err
	}
	vocab, err := model.Select(context.Background(), model.Chunks())
	if err != nil {
		return nil, nil, err
	}
	return lexicon.FromVocabulary(vocab), nil, nil
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ kokoa ] Finds Korean words in raw text")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic server info to stderr. Stdout carries IPC frames.
func showStartupInfo(dataDir string, words int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	println("===========")
	println("   kokoa   ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("data dir: ( %s )", dataDir)
	log.Infof("words: %s", utils.FormatWithCommas(words))
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")
}
