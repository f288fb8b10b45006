package ui

import (
	"fmt"
	"io"
	"strings"
)

// KV is one line of an info panel.
type KV struct {
	Key   string
	Value string
}

// PrintPanel prints a titled box of key/value lines.
func PrintPanel(w io.Writer, title string, lines []KV) {
	var sb strings.Builder
	sb.WriteString(Title.Render(title))
	for _, kv := range lines {
		sb.WriteString("\n")
		sb.WriteString(FormatKeyValue(kv.Key, kv.Value))
	}
	fmt.Fprintln(w, Box.Render(sb.String()))
}

// PrintVocabulary lists a field's categories with their codes, in fitted order.
func PrintVocabulary(w io.Writer, field string, classes []string) {
	fmt.Fprintf(w, "%s %s\n", SectionHeader.Render(field), Dim.Render(fmt.Sprintf("(%d)", len(classes))))
	width := len(fmt.Sprint(len(classes) - 1))
	for code, c := range classes {
		fmt.Fprintf(w, "  %s %s\n", Muted.Render(fmt.Sprintf("%*d", width, code)), c)
	}
}
