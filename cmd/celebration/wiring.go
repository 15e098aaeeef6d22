package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/celebration/internal/config"
	"github.com/vovakirdan/celebration/internal/diag"
	"github.com/vovakirdan/celebration/internal/storage"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger builds the logger for a command. An alt-screen program must not
// write to the terminal, so interactive commands log to the debug file when
// --debug is set and nowhere otherwise.
func newLogger(prefix string, interactive bool) (*log.Logger, io.Closer, error) {
	level := flagLogLevel
	if flagDebug {
		level = "debug"
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if interactive {
		w = io.Discard
		if flagDebug {
			f, err := openDebugLog()
			if err != nil {
				return nil, nil, err
			}
			w, closer = f, f
		}
	}

	logger, err := diag.NewLogger(w, prefix, level)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return logger, closer, nil
}

func openDebugLog() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".celebration")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open debug log: %w", err)
	}
	return f, nil
}

// loadGameConfig loads the mini-game config honoring --config.
func loadGameConfig() (config.MinigameConfig, error) {
	cfg, err := config.LoadMinigame(flagConfigPath)
	if err != nil {
		return config.MinigameConfig{}, err
	}
	return cfg, nil
}

// openRecorder opens the journal and combines it with log output.
// A journal that cannot be opened is reported and skipped; the game works
// without it. The returned journal may be nil.
func openRecorder(logger *log.Logger) (diag.Recorder, *storage.Journal) {
	recorders := diag.Fanout{diag.NewLogRecorder(logger)}

	journal, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open session journal", "path", flagDBPath, "err", err)
		return recorders, nil
	}
	journal.SetLogger(logger)

	return append(recorders, journal), journal
}
