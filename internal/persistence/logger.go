package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// maxLogBytes is the size at which app.log is truncated (spec §4.6:
// "Append-only rolling log, truncated at 2 MiB").
const maxLogBytes = 2 * 1024 * 1024

// Logger is a mutex-guarded, size-truncated append log. It never returns
// an error to its caller: a logging failure is itself logged to stderr
// and swallowed (spec §5: "the logger... must never raise").
type Logger struct {
	mu          sync.Mutex
	file        *os.File
	path        string
	currentSize int64
}

// NewLogger opens (or creates) app.log at path.
func NewLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	return &Logger{file: f, path: path, currentSize: stat.Size()}, nil
}

// Log appends one line "<timestamp> [<level>] <message>" and truncates
// the file back to empty first if it has grown past maxLogBytes.
func (l *Logger) Log(level, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}
	if l.currentSize >= maxLogBytes {
		if err := l.truncate(); err != nil {
			fmt.Fprintf(os.Stderr, "windowanchor: log truncation failed: %v\n", err)
			return
		}
	}

	line := fmt.Sprintf("%s [%s] %s\n", time.Now().UTC().Format("2006-01-02T15:04:05Z"), level, message)
	n, err := l.file.WriteString(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "windowanchor: log write failed: %v\n", err)
		return
	}
	l.currentSize += int64(n)
}

func (l *Logger) truncate() error {
	if err := l.file.Truncate(0); err != nil {
		return err
	}
	if _, err := l.file.Seek(0, 0); err != nil {
		return err
	}
	l.currentSize = 0
	return nil
}

// Close releases the underlying file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.file.Close()
	l.file = nil
	return err
}
