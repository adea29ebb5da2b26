package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kingrea/mediaseq/internal/config"
)

// Logger appends timestamped lines to .mediaseq/logs/mediaseq.log, or to any
// writer handed to NewWriter. A nil *Logger discards everything.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	clock  func() time.Time
}

// New creates (or reuses) the log file for the given project directory.
func New(projectDir string) (*Logger, error) {
	logDir := config.LogsDir(projectDir)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(logDir, "mediaseq.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{out: f, closer: f, clock: time.Now}, nil
}

// NewWriter logs to w. Closing the logger does not close w.
func NewWriter(w io.Writer) *Logger {
	return &Logger{out: w, clock: time.Now}
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Printf writes a single timestamped line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.out == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	line = strings.TrimRight(line, "\n")
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %s\n", l.clock().Format(time.RFC3339), line)
}
