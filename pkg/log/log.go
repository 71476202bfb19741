// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/reword/pkg/operation"
	"github.com/walteh/reword/pkg/status"
)

// 📦 BatchOperation describes one processing pass for logging
type BatchOperation struct {
	Pass   int // 1-based pass number
	Files  int // Number of queued files
	Rules  int // Number of active rules
	Output string
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	batch   *BatchOperation
	results []operation.Result
	failed  int
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 StartBatch prints the header of a processing pass
func (l *Logger) StartBatch(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.batch = &op
	l.results = nil
	l.failed = 0

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("pass %d", op.Pass),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d files, %d rules", op.Files, op.Rules))

	l.zlog.Info().
		Int("pass", op.Pass).
		Int("files", op.Files).
		Int("rules", op.Rules).
		Str("output", op.Output).
		Msg("starting batch")
}

// 📝 LogResult logs a rewritten file
func (l *Logger) LogResult(ctx context.Context, res operation.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, res)
	fmt.Fprintln(l.console, status.FormatResultLine(res))

	l.zlog.Info().
		Str("source", res.SourcePath).
		Str("output", res.OutputPath).
		Int("version", res.Version).
		Int("replacements", res.Replacements).
		Str("encoding", res.Encoding).
		Int("size", res.Size).
		Msg("file rewritten")
}

// 📝 LogFailure logs a file that could not be processed
func (l *Logger) LogFailure(ctx context.Context, fail operation.Failure) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failed++
	fmt.Fprintln(l.console, status.FormatFailureLine(fail))

	l.zlog.Warn().Err(fail.Err).Str("source", fail.SourcePath).Msg("file failed")
}

// 📝 EndBatch ends the current pass
func (l *Logger) EndBatch(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.batch == nil {
		return
	}

	total := 0
	for _, r := range l.results {
		total += r.Replacements
	}

	l.zlog.Info().
		Int("pass", l.batch.Pass).
		Int("rewritten", len(l.results)).
		Int("failed", l.failed).
		Int("replacements", total).
		Msg("batch complete")

	l.batch = nil
	l.results = nil
	l.failed = 0
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("reword")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
