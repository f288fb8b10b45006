package ui

import (
	"fmt"
	"io"
	"strings"
)

// ValidationReport mirrors validator.Result to avoid an import cycle.
type ValidationReport struct {
	Card      string
	ModelName string
	Valid     bool
	Errors    []string
	Warnings  []string
	// Compared is true when the card was checked against loaded artifacts.
	Compared bool
}

// ValidationUI renders the validate command.
type ValidationUI struct {
	writer io.Writer
	quiet  bool
}

func NewValidationUI(w io.Writer, quiet bool) *ValidationUI {
	return &ValidationUI{writer: w, quiet: quiet}
}

// PrintReport prints the findings in a box coloured by the outcome. Failed
// reports are printed even in quiet mode.
func (v *ValidationUI) PrintReport(r ValidationReport) {
	if v.quiet && r.Valid {
		return
	}

	var sb strings.Builder
	if r.Valid {
		sb.WriteString(Success.Bold(true).Render("✓ Model Card Valid"))
	} else {
		sb.WriteString(Error.Bold(true).Render("✗ Model Card Invalid"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(FormatKeyValue("Card", r.Card))
	if r.ModelName != "" {
		sb.WriteString("\n")
		sb.WriteString(FormatKeyValue("Model", r.ModelName))
	}
	sb.WriteString("\n")
	artifacts := Dim.Render("not compared")
	if r.Compared {
		artifacts = "compared with loaded files"
	}
	sb.WriteString(FormatKeyValue("Artifacts", artifacts))

	if len(r.Errors) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(renderFindings(fmt.Sprintf("Errors (%d)", len(r.Errors)), Error, r.Errors))
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(renderFindings(fmt.Sprintf("Warnings (%d)", len(r.Warnings)), Warning, r.Warnings))
	}

	box := SuccessBox
	if !r.Valid {
		box = ErrorBox
	}
	fmt.Fprintln(v.writer, box.Render(sb.String()))
}

func renderFindings(title string, style styleWrapper, items []string) string {
	var sb strings.Builder
	sb.WriteString(style.Bold(true).Render(title))
	for _, it := range items {
		sb.WriteString("\n  ")
		sb.WriteString(style.Render("•"))
		sb.WriteString(" ")
		sb.WriteString(it)
	}
	return sb.String()
}
