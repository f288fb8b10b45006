package ui

// Basic ANSI color codes used by the internal/logging prefixes.
// Rendered output should use the lipgloss styles from styles.go instead.
const (
	Reset     = "\033[0m"
	FgCyan    = "\033[36m"
	FgGreen   = "\033[32m"
	FgMagenta = "\033[35m"
	FgYellow  = "\033[33m"
	FgRed     = "\033[31m"
)

var noColor bool

// Init configures raw ANSI output. With disable set, Color returns s unchanged.
func Init(disable bool) { noColor = disable }

// Color wraps a string with the given ANSI code.
func Color(s string, code string) string {
	if noColor || code == "" {
		return s
	}
	return code + s + Reset
}
