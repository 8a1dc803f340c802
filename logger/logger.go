// Package logger prints the CLI's status lines. Output goes to a writer
// chosen by the caller (stderr for the CLI) so stdout stays reserved for
// rendered documents.
package logger

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type Logger struct {
	out     io.Writer
	verbose bool

	debug   *color.Color
	warn    *color.Color
	err     *color.Color
	success *color.Color
}

func New(out io.Writer, verbose bool) *Logger {
	return &Logger{
		out:     out,
		verbose: verbose,
		debug:   color.New(color.FgCyan),
		warn:    color.New(color.FgYellow, color.Bold),
		err:     color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen, color.Bold),
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return New(io.Discard, false)
}

func (l *Logger) Verbose() bool {
	return l.verbose
}

// Debugf is only printed in verbose mode.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.debug.Fprintf(l.out, "🔍 "+format+"\n", args...)
}

func (l *Logger) Infof(format string, args ...any) {
	fmt.Fprintf(l.out, "ℹ️  "+format+"\n", args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.warn.Fprintf(l.out, "⚠️  "+format+"\n", args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.err.Fprintf(l.out, "❌ "+format+"\n", args...)
}

func (l *Logger) Successf(format string, args ...any) {
	l.success.Fprintf(l.out, "✅ "+format+"\n", args...)
}
