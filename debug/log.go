package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	logger *log.Logger
	file   *os.File
	mu     sync.Mutex
)

// DefaultPath returns ~/.config/go-phinrip/debug.log
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "go-phinrip", "debug.log")
}

// Init starts logging to path, or to stderr when path is empty or cannot be
// opened. Verbose enables debug level, which is where Log writes.
func Init(verbose bool, path string) error {
	mu.Lock()
	defer mu.Unlock()

	closeFile()

	var w io.Writer = os.Stderr
	var openErr error
	if path != "" {
		os.MkdirAll(filepath.Dir(path), 0755)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			openErr = err
		} else {
			file = f
			w = f
		}
	}

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
		Prefix:          "phinrip",
	})
	logger.Debug("=== Debug logging started ===")
	return openErr
}

// InitWriter logs to w. Used by tests and the terminal monitor.
func InitWriter(verbose bool, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	closeFile()
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger = log.NewWithOptions(w, log.Options{Level: level, Prefix: "phinrip"})
}

// Disable stops logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	closeFile()
	logger = nil
}

func closeFile() {
	if file != nil {
		file.Close()
		file = nil
	}
}

func current() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes a debug message tagged with a category
func Log(category, format string, args ...any) {
	l := current()
	if l == nil {
		return
	}
	l.Debug(fmt.Sprintf(format, args...), "cat", category)
}

func Info(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Error(msg, keyvals...)
	}
}

var counters = make(map[string]int)

// LogEvery logs only every N calls (use for per-tick events)
func LogEvery(n int, category, format string, args ...any) {
	if n <= 0 {
		n = 1
	}
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
