package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/platform/tui"
	"github.com/vovakirdan/duckstorm/internal/session"
	"github.com/vovakirdan/duckstorm/internal/storage"
)

const appName = "duckstorm"

// newLogger builds the process logger at --log-level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          appName,
		Level:           level,
	}), nil
}

// interactiveLogger logs to --log-file, or nowhere. Writing to the terminal
// would tear the alternate screen.
func interactiveLogger() (*log.Logger, io.Closer, error) {
	if flagLogFile == "" {
		l, err := newLogger(io.Discard)
		return l, nopCloser{}, err
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	l, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// loadGame loads the configuration and applies --difficulty.
func loadGame() (config.Config, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, nil
}

// stores holds the persistence backends. Either may be missing; the game
// then simply does not remember.
type stores struct {
	runs    *storage.Store
	best    storage.KV
	closers []io.Closer
}

func openStores(logger *log.Logger) *stores {
	s := &stores{}

	runs, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "err", err)
	} else {
		s.runs = runs
		s.closers = append(s.closers, runs)
	}

	if strings.EqualFold(flagStore, storage.BackendSQLite) || flagStore == "" {
		if s.runs != nil {
			s.best = s.runs
		}
		return s
	}

	kv, closer, err := storage.OpenKV(flagStore, flagDBPath, appName)
	if err != nil {
		logger.Warn("could not open best score store", "backend", flagStore, "err", err)
		return s
	}
	s.best = kv
	s.closers = append(s.closers, closer)
	return s
}

// bestStore returns the best score store, or a nil interface.
func (s *stores) bestStore() session.BestScoreStore {
	if s.best == nil {
		return nil
	}
	return s.best
}

// runRecorder returns the run history, or a nil interface.
func (s *stores) runRecorder() tui.RunRecorder {
	if s.runs == nil {
		return nil
	}
	return s.runs
}

// runLister returns the run history for the scoreboard, or a nil
// interface.
func (s *stores) runLister() tui.RunLister {
	if s.runs == nil {
		return nil
	}
	return s.runs
}

// bestScore reads the stored best score, zero if unknown.
func (s *stores) bestScore() int {
	if s.best == nil {
		return 0
	}
	v, ok, err := s.best.Get(session.BestScoreKey)
	if err != nil || !ok {
		return 0
	}
	return v
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		//nolint:errcheck // Best-effort close on exit
		s.closers[i].Close()
	}
}
