package ui

import (
	"fmt"
	"io"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/idlab-discover/salarypred-cli/internal/label"
	"github.com/idlab-discover/salarypred-cli/internal/schema"
)

// PredictUI prints the outcome of a single-record prediction.
type PredictUI struct {
	writer io.Writer
	quiet  bool
	plain  bool
}

// NewPredictUI creates a PredictUI. plain prints only the label; quiet prints
// nothing.
func NewPredictUI(w io.Writer, quiet, plain bool) *PredictUI {
	return &PredictUI{writer: w, quiet: quiet, plain: plain}
}

// PrintInputPreview shows the encoded row the model receives.
func (p *PredictUI) PrintInputPreview(enc schema.EncodedRecord) {
	if p.quiet || p.plain {
		return
	}
	fmt.Fprintln(p.writer, SectionHeader.Render("🔍 Preview of Input Data"))
	fmt.Fprintln(p.writer, EncodedTable(enc))
}

// PrintResult shows the predicted class.
func (p *PredictUI) PrintResult(l label.Label) {
	if p.quiet {
		return
	}
	if p.plain {
		fmt.Fprintln(p.writer, l.String())
		return
	}
	fmt.Fprintln(p.writer)
	fmt.Fprintln(p.writer, ResultBox(l).Render("✅ Prediction: "+l.Display()))
}

// EncodedTable renders an encoded record as a one-row table with the field
// names as headers.
func EncodedTable(enc schema.EncodedRecord) string {
	row := make([]string, len(enc.Values))
	for i, v := range enc.Values {
		row[i] = strconv.FormatInt(v, 10)
	}
	return DataTable(enc.Names, [][]string{row}, -1)
}

// DataTable renders rows under headers. The column at highlight, if any, is
// drawn in the accent color.
func DataTable(headers []string, rows [][]string, highlight int) string {
	headerStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	accent := cellStyle.Foreground(ColorHighlight).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == highlight:
				return accent
			default:
				return cellStyle
			}
		})
	return t.String()
}
