// Package logging is the opt-in debug logger shared by the internal packages.
package logging

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/idlab-discover/salarypred-cli/internal/ui"
)

// Logger writes one line per message:
//
//	<ColoredPrefix> [key=value ...] <message>
//
// A Logger with no Writer discards everything. Loggers derived with With
// share the writer and prefix of the logger they came from, so SetWriter on a
// package logger also affects every derived one.
type Logger struct {
	Writer io.Writer

	PrefixText  string
	PrefixColor string

	parent *Logger
	fields []string
}

func (l *Logger) SetWriter(w io.Writer) { l.root().Writer = w }

func (l *Logger) Enabled() bool { return l != nil && l.root().Writer != nil }

// With returns a logger that adds key=value to every line. A blank value is
// written as "-".
func (l *Logger) With(key, value string) *Logger {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	}
	return &Logger{parent: l, fields: append(slices.Clone(l.fields), key+"="+v)}
}

func (l *Logger) Printf(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	r := l.root()
	prefix := r.PrefixText
	if prefix == "" {
		prefix = "Log:"
	}
	if r.PrefixColor != "" {
		prefix = ui.Color(prefix, r.PrefixColor)
	}
	var b strings.Builder
	b.WriteString(prefix)
	for _, f := range l.fields {
		b.WriteByte(' ')
		b.WriteString(f)
	}
	b.WriteByte(' ')
	fmt.Fprintf(&b, format, args...)
	b.WriteByte('\n')
	io.WriteString(r.Writer, b.String())
}

func (l *Logger) root() *Logger {
	for l.parent != nil {
		l = l.parent
	}
	return l
}
