package validator

import "fmt"

// PrintReport writes the findings to the package logger. Without a logger it
// prints nothing.
func PrintReport(r Result) {
	if r.Valid {
		logf("✅ %s: model card is valid", r.ModelName)
	} else {
		logf("❌ %s: model card is invalid", r.ModelName)
	}
	for _, e := range r.Errors {
		logf("  • error: %s", e)
	}
	for _, w := range r.Warnings {
		logf("  • warning: %s", w)
	}
}

// FormatSummary is a one-line summary for command output.
func FormatSummary(r Result) string {
	status := "✅ PASSED"
	if !r.Valid {
		status = "❌ FAILED"
	}
	return fmt.Sprintf("Validation: %s | Errors: %d | Warnings: %d", status, len(r.Errors), len(r.Warnings))
}
