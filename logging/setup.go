package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultDir is where debug logs are written relative to the working directory
	DefaultDir  = "logs"
	logFileName = "buji.log"
	maxLogSize  = 10 * 1024 * 1024
)

// Setup builds the process logger
// When debug is false every entry is discarded and the returned file is nil
// When debug is true entries go to dir/buji.log, never to stdout or stderr since the terminal
// belongs to the renderer; an oversized previous log is rotated to a timestamped name first
func Setup(debug bool, dir string) (*slog.Logger, *os.File) {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}

	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}

	logPath := filepath.Join(dir, logFileName)
	rotate(logPath)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}

	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})), f
}

// rotate renames path when it exceeds maxLogSize
func rotate(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]
	rotated := fmt.Sprintf("%s.%s%s", base, time.Now().Format("20060102-150405"), ext)
	_ = os.Rename(path, rotated)
}
