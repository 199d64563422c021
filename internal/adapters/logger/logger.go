// Package logger implements ports.Logger on top of log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/vigil/internal/core/ports"
)

// messager is implemented by zerr errors, which can report their own
// message without the rest of the chain.
type messager interface {
	Message() string
}

// metadataer is implemented by zerr errors that carry key/value context.
type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	level    *slog.LevelVar
	jsonMode bool
	output   io.Writer
}

var _ ports.Logger = (*Logger)(nil)

// New creates a Logger writing pretty output to os.Stderr at info level.
func New() *Logger {
	l := &Logger{
		level:  &slog.LevelVar{},
		output: os.Stderr,
	}
	l.level.Set(slog.LevelInfo)
	l.rebuild()
	return l
}

// SetOutput redirects the logger. A nil writer means os.Stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetVerbose enables debug messages.
func (l *Logger) SetVerbose(enable bool) {
	if enable {
		l.level.Set(slog.LevelDebug)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// rebuild swaps the handler. Callers must hold mu.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}

	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = NewPrettyHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// Debug logs a diagnostic message, shown only in verbose mode.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
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

// Error logs err with its full cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// errorEntry is one link of an error chain.
type errorEntry struct {
	message string
	fields  []string
}

// collectErrorEntries walks the chain while it is made of zerr errors. The
// first plain error ends the walk with its full text.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error()})
			break
		}

		entry := errorEntry{message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.fields = formatFields(md.Metadata())
		}

		// zerr.With on a plain error leaves an empty message around it.
		if entry.message != "" || len(entry.fields) > 0 {
			entries = append(entries, entry)
		}
		current = errors.Unwrap(current)
	}

	// Fold a leading entry that only carries fields into its cause.
	if len(entries) > 1 && entries[0].message == "" {
		entries[1].fields = append(entries[0].fields, entries[1].fields...)
		entries = entries[1:]
	}

	return entries
}

func formatFields(md map[string]any) []string {
	if len(md) == 0 {
		return nil
	}
	fields := make([]string, 0, len(md))
	for k, v := range md {
		fields = append(fields, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(fields)
	return fields
}

// formatErrorEntries renders entries as a headline followed by a
// "Caused by" list. Multi-line messages keep their indentation.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, e := range entries {
		msgLines := strings.Split(e.message, "\n")
		head := msgLines[0]
		if len(e.fields) > 0 {
			head += " (" + strings.Join(e.fields, " ") + ")"
		}

		if i == 0 {
			lines = append(lines, "Error: "+head)
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+head)
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
	}

	return strings.Join(lines, "\n")
}
