// Package logging sets up the structured debug logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Logger is the shared logger. It discards everything until Initialize
// enables debug output.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// MaxLogFiles bounds how many session logs are kept in the log directory.
const MaxLogFiles = 50

// Initialize points Logger at a JSON log file when debug is on. An explicit
// logFile is used as-is; otherwise a new file is created in logDir. The
// returned close func is always non-nil.
func Initialize(debug bool, logFile, logDir string) (func() error, error) {
	noop := func() error { return nil }
	if !debug && logFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return noop, nil
	}

	path := logFile
	if path == "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return noop, fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := rotateLogs(logDir, MaxLogFiles); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
		}
		path = filepath.Join(logDir, uuid.NewString()+".log")
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return noop, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return noop, fmt.Errorf("failed to create log file: %w", err)
	}
	Logger = slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Logger.Info("debug logging initialized", "log_file", path)
	return file.Close, nil
}

// rotateLogs removes the oldest .log files so a new one fits under maxFiles.
func rotateLogs(logDir string, maxFiles int) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFileInfo struct {
		path    string
		modTime time.Time
	}
	var logs []logFileInfo
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logs = append(logs, logFileInfo{path: filepath.Join(logDir, entry.Name()), modTime: info.ModTime()})
	}
	if len(logs) < maxFiles {
		return nil
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].modTime.Before(logs[j].modTime)
	})
	for i := 0; i < len(logs)-maxFiles+1; i++ {
		if err := os.Remove(logs[i].path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", logs[i].path, err)
		}
	}
	return nil
}
