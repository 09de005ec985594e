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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	kindWidth   = 10 // Width for resource kind
	statusWidth = 15 // Width for status text
)

// 🏷️ Action is what happened to a file
type Action int

const (
	ActionDetected Action = iota // reference found inside the region
	ActionCopied                 // copied to a version-tagged name
	ActionSkipped                // left untouched
	ActionWritten                // page or bundle written
	ActionDeleted                // stale bundle removed
)

// String returns a string representation of Action
func (a Action) String() string {
	switch a {
	case ActionDetected:
		return "detected"
	case ActionCopied:
		return "copied"
	case ActionSkipped:
		return "skipped"
	case ActionWritten:
		return "written"
	case ActionDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// 🎯 FileOperation represents a file operation for logging
type FileOperation struct {
	Path   string // File path as written in the page
	Kind   string // css, js, page
	Action Action // What happened
	Detail string // Optional extra text, e.g. the new name
}

// 📄 PageOperation represents the processing of one page
type PageOperation struct {
	Mode   string // minify or rename
	Input  string // page read
	Output string // page written
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *PageOperation
	operations []FileOperation
}

// 🏭 New creates a new logger writing structured logs through zlog and the
// human readable report to console
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context. Without one, a logger that
// discards everything is returned.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, zerolog.Nop())
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Action {
	case ActionDeleted:
		symbol = '✗'
		symbolColor = color.FgRed
	case ActionCopied, ActionWritten:
		symbol = '✓'
		symbolColor = color.FgGreen
	case ActionDetected:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	var kindColor color.Attribute
	switch op.Kind {
	case "css":
		kindColor = color.FgMagenta
	case "js":
		kindColor = color.FgYellow
	default:
		kindColor = color.FgBlue
	}

	status := op.Action.String()
	if op.Detail != "" {
		status += " " + op.Detail
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		fmt.Sprintf("%-*s", statusWidth, status))
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("kind", op.Kind).
		Str("action", op.Action.String()).
		Str("detail", op.Detail).
		Msg("file operation")
}

// 📝 StartPage starts a new page operation
func (l *Logger) StartPage(ctx context.Context, op PageOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	fmt.Fprintf(l.console, "[%s %s]\n",
		op.Mode,
		color.New(color.FgCyan).Sprint(op.Input))

	l.zlog.Info().
		Str("mode", op.Mode).
		Str("input", op.Input).
		Str("output", op.Output).
		Msg("starting page operation")
}

// 📝 EndPage ends the current page operation and returns the file
// operations it recorded
func (l *Logger) EndPage(ctx context.Context) []FileOperation {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return nil
	}

	ops := l.operations
	l.zlog.Info().
		Str("input", l.currentOp.Input).
		Str("output", l.currentOp.Output).
		Int("files", len(ops)).
		Msg("page operation complete")

	l.currentOp = nil
	l.operations = nil
	return ops
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("minires")
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

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
