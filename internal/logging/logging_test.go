package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idlab-discover/salarypred-cli/internal/ui"
)

func TestLogger_EnabledAndSetWriter(t *testing.T) {
	var l Logger
	if l.Enabled() {
		t.Fatalf("expected disabled when Writer is nil")
	}

	var buf bytes.Buffer
	l.SetWriter(&buf)
	if !l.Enabled() {
		t.Fatalf("expected enabled after setting Writer")
	}
}

func TestLogger_Printf(t *testing.T) {
	ui.Init(true) // disable ANSI color for stable assertions
	t.Cleanup(func() { ui.Init(false) })

	tests := []struct {
		name string
		l    func(*bytes.Buffer) *Logger
		want string
	}{
		{
			name: "prefix and message",
			l:    func(b *bytes.Buffer) *Logger { return &Logger{Writer: b, PrefixText: "X:", PrefixColor: ui.FgGreen} },
			want: "X: rows 3\n",
		},
		{
			name: "default prefix",
			l:    func(b *bytes.Buffer) *Logger { return &Logger{Writer: b} },
			want: "Log: rows 3\n",
		},
		{
			name: "field",
			l: func(b *bytes.Buffer) *Logger {
				return (&Logger{Writer: b, PrefixText: "X:"}).With("run", "  run-1  ")
			},
			want: "X: run=run-1 rows 3\n",
		},
		{
			name: "blank field value",
			l: func(b *bytes.Buffer) *Logger {
				return (&Logger{Writer: b, PrefixText: "X:"}).With("run", " ")
			},
			want: "X: run=- rows 3\n",
		},
		{
			name: "nested fields keep order",
			l: func(b *bytes.Buffer) *Logger {
				return (&Logger{Writer: b, PrefixText: "X:"}).With("run", "r").With("stage", "encode")
			},
			want: "X: run=r stage=encode rows 3\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.l(&buf).Printf("rows %d", 3)
			if got := buf.String(); got != tt.want {
				t.Fatalf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogger_WithFollowsParentWriter(t *testing.T) {
	ui.Init(true)
	t.Cleanup(func() { ui.Init(false) })

	parent := &Logger{PrefixText: "X:"}
	child := parent.With("run", "r")
	child.Printf("dropped")

	var buf bytes.Buffer
	parent.SetWriter(&buf)
	child.Printf("kept")
	if got := buf.String(); got != "X: run=r kept\n" {
		t.Fatalf("output = %q", got)
	}

	sibling := parent.With("run", "s")
	sibling.Printf("x")
	if strings.Contains(buf.String(), "run=r run=s") {
		t.Fatalf("sibling inherited fields of another child: %q", buf.String())
	}
}

func TestLogger_ColoredPrefix(t *testing.T) {
	ui.Init(false)

	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", PrefixColor: ui.FgCyan}
	l.Printf("x")

	if !strings.HasPrefix(buf.String(), ui.FgCyan+"X:"+ui.Reset) {
		t.Fatalf("expected ANSI prefix, got %q", buf.String())
	}
}

func TestLogger_NilReceiver_NoPanic(t *testing.T) {
	var l *Logger
	l.Printf("x")
}
