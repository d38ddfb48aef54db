// Package logger implements ports.Logger on top of log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
)

// messager is satisfied by zerr errors, which report their own message without the chain.
type messager interface {
	Message() string
}

// metadataer is satisfied by zerr errors carrying key/value context.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain as it is printed.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a Logger writing pretty output to stderr.
func New() *Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination, keeping the current mode.
// A nil writer selects stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// rebuild must be called with mu held for writing.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(l.output, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(l.output, opts))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Output logs one line printed by an external tool.
func (l *Logger) Output(tool, line string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(line, ToolKey, tool)
}

// Error logs an error with its cause chain.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// collectErrorEntries walks the chain. zerr links contribute their own message and
// metadata; the first plain error ends the walk with its full text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var carried map[string]any

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: carried})
			break
		}

		meta := map[string]any{}
		if md, ok := current.(metadataer); ok {
			meta = md.Metadata()
		}
		for k, v := range carried {
			meta[k] = v
		}
		carried = nil

		// zerr.With on a plain error inserts an empty link; its metadata
		// belongs to the error it wraps.
		if m.Message() == "" {
			carried = meta
			current = errors.Unwrap(current)
			continue
		}

		entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: meta})
		current = errors.Unwrap(current)
	}

	return entries
}

func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		head, indent := "    → ", "      "
		if i == 0 {
			head, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
