package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/idlab-discover/salarypred-cli/internal/label"
)

// BatchSummary is what PrintSummary reports about a finished run.
type BatchSummary struct {
	RunID   string
	Input   string
	Output  string
	Read    int
	Dropped int
	Counts  map[label.Label]int
}

// BatchUI renders the batch command: a workflow line per stage, then a
// summary or an error panel.
type BatchUI struct {
	writer    io.Writer
	quiet     bool
	animate   bool
	workflow  *Workflow
	startTime time.Time
}

// NewBatchUI creates a BatchUI. animate enables the spinner.
func NewBatchUI(w io.Writer, quiet, animate bool) *BatchUI {
	return &BatchUI{writer: w, quiet: quiet, animate: animate, startTime: time.Now()}
}

// StartWorkflow lists the stages and starts the display.
func (b *BatchUI) StartWorkflow(stages []string) {
	if b.quiet {
		return
	}
	b.startTime = time.Now()
	b.workflow = NewWorkflow(b.writer, b.animate)
	for _, s := range stages {
		b.workflow.AddTask(s)
	}
	b.workflow.Start()
}

func (b *BatchUI) StartStage(idx int, msg string) {
	if b.quiet || b.workflow == nil {
		return
	}
	b.workflow.StartTask(idx, msg)
}

func (b *BatchUI) CompleteStage(idx int, details string) {
	if b.quiet || b.workflow == nil {
		return
	}
	b.workflow.CompleteTask(idx, details)
}

func (b *BatchUI) FailStage(idx int, msg string) {
	if b.quiet || b.workflow == nil {
		return
	}
	b.workflow.FailTask(idx, msg)
}

// FinishWorkflow stops the spinner and prints the final stage list.
func (b *BatchUI) FinishWorkflow() {
	if b.quiet || b.workflow == nil {
		return
	}
	b.workflow.Stop()
}

// PrintSummary prints the completion panel.
func (b *BatchUI) PrintSummary(s BatchSummary) {
	if b.quiet {
		return
	}
	predicted := s.Counts[label.HighIncome] + s.Counts[label.LowIncome]

	var sb strings.Builder
	sb.WriteString(Success.Bold(true).Render("✅ Batch Prediction Completed"))
	sb.WriteString("\n\n")
	sb.WriteString(FormatKeyValue("Input", s.Input))
	sb.WriteString("\n")
	sb.WriteString(FormatKeyValue("Rows read", fmt.Sprintf("%d", s.Read)))
	sb.WriteString("\n")
	dropped := fmt.Sprintf("%d", s.Dropped)
	if s.Dropped > 0 {
		dropped = Warning.Render(dropped + " (missing values)")
	}
	sb.WriteString(FormatKeyValue("Rows dropped", dropped))
	sb.WriteString("\n")
	sb.WriteString(FormatKeyValue("Predicted", fmt.Sprintf("%d", predicted)))
	sb.WriteString("\n")
	sb.WriteString(FormatKeyValue("  "+label.HighIncome.Display(), fmt.Sprintf("%d", s.Counts[label.HighIncome])))
	sb.WriteString("\n")
	sb.WriteString(FormatKeyValue("  "+label.LowIncome.Display(), fmt.Sprintf("%d", s.Counts[label.LowIncome])))
	sb.WriteString("\n")
	sb.WriteString(FormatKeyValue("Output", s.Output))
	sb.WriteString("\n")
	sb.WriteString(FormatKeyValue("Duration", time.Since(b.startTime).Round(time.Millisecond).String()))
	if s.RunID != "" {
		sb.WriteString("\n")
		sb.WriteString(FormatKeyValue("Run", Muted.Render(s.RunID)))
	}

	fmt.Fprintln(b.writer)
	fmt.Fprintln(b.writer, SuccessBox.Render(sb.String()))
}

// PrintError prints the failure panel. Errors are shown even in quiet mode.
func (b *BatchUI) PrintError(title string, err error) {
	var sb strings.Builder
	sb.WriteString(Error.Bold(true).Render("❌ " + title))
	sb.WriteString("\n\n")
	sb.WriteString(err.Error())
	sb.WriteString("\n\n")
	sb.WriteString(Dim.Render("No output file was written."))
	fmt.Fprintln(b.writer)
	fmt.Fprintln(b.writer, ErrorBox.Render(sb.String()))
}
