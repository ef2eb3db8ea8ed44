// Package logging provides leveled, optionally colored console logging
// with an optional append-mode file sink. Color is applied only when
// stdout is a terminal and the environment does not forbid it; the file
// sink always receives plain text.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	ansiRed    = "\033[1;91m"
	ansiGreen  = "\033[1;92m"
	ansiYellow = "\033[1;93m"
	ansiBlue   = "\033[1;94m"
	ansiCyan   = "\033[1;96m"
	ansiReset  = "\033[0m"
)

// Logger writes timestamped level-tagged lines. Safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	file    *os.File
	color   bool
	verbose bool
}

// New builds a Logger writing to out (errors to errOut). When logFile
// is non-empty the file is opened for append and receives every line
// uncolored; call Close when done. Color engages only when out is a
// terminal, NO_COLOR is unset, and TERM is not "dumb".
func New(out, errOut io.Writer, logFile string, verbose bool) (*Logger, error) {
	l := &Logger{out: out, errOut: errOut, verbose: verbose}
	if f, ok := out.(*os.File); ok {
		l.color = isTerminal(f) && os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb"
	}

	if logFile != "" {
		if dir := filepath.Dir(logFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, err
			}
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func levelColor(level string) string {
	switch level {
	case "INFO":
		return ansiBlue
	case "SUCCESS":
		return ansiGreen
	case "WARN":
		return ansiYellow
	case "ERROR":
		return ansiRed
	case "DEBUG":
		return ansiCyan
	}
	return ""
}

func (l *Logger) line(level, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	plain := ts + " [" + level + "] " + text + "\n"
	out := l.out
	if level == "ERROR" {
		out = l.errOut
	}
	if l.color {
		_, _ = io.WriteString(out, ts+" "+levelColor(level)+"["+level+"]"+ansiReset+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level.
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", fmt.Sprintf(format, args...))
}

// Error logs at ERROR level, routed to the error writer.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level; no-op unless the logger is verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", fmt.Sprintf(format, args...))
}
