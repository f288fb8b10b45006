package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/salarypred-cli/internal/apperr"
	"github.com/idlab-discover/salarypred-cli/internal/batch"
	"github.com/idlab-discover/salarypred-cli/internal/label"
	"github.com/idlab-discover/salarypred-cli/internal/predictor"
	"github.com/idlab-discover/salarypred-cli/internal/ui"
)

var (
	batchInput   string
	batchOutput  string
	batchPreview bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Predict the income class of every row in a CSV file",
	Long: `Predict the income class of every row in a CSV file.

Rows with a missing value in any column are dropped. Cells are trimmed before
encoding. A categorical value outside the fitted vocabulary aborts the whole
run and no output is written. Surviving rows are written unchanged with a
PredictedClass column appended.`,
	Example: `  salarypred batch -i adult.csv
  salarypred batch -i adult.csv -o scored.csv --preview
  salarypred batch -i adult.csv -o - > scored.csv`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchInput, "input", "i", "", "CSV file of employee records (required)")
	f.StringVarP(&batchOutput, "output", "o", "predicted_classes.csv", "Output CSV path, or - for stdout")
	f.BoolVar(&batchPreview, "preview", false, "Show the predicted rows after the run")

	viper.BindPFlag("batch.input", f.Lookup("input"))
	viper.BindPFlag("batch.output", f.Lookup("output"))
	viper.BindPFlag("batch.preview", f.Lookup("preview"))
}

// stageTitles are the workflow lines, one per predictor stage plus the write.
var stageTitles = map[predictor.Stage]string{
	predictor.StageParse:    "Read CSV",
	predictor.StageClean:    "Drop rows with missing values",
	predictor.StageEncode:   "Encode categories",
	predictor.StagePredict:  "Run model",
	predictor.StageAnnotate: "Append " + label.Column,
}

func runBatch(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel()
	if err != nil {
		return err
	}
	input := viper.GetString("batch.input")
	if input == "" {
		return apperr.User("--input is required")
	}
	output := viper.GetString("batch.output")
	if output == "" {
		output = "predicted_classes.csv"
	}
	toStdout := output == "-"

	// With -o - the CSV owns stdout, so progress goes to stderr.
	uiOut := cmd.OutOrStdout()
	if toStdout {
		uiOut = cmd.ErrOrStderr()
	}
	bui := ui.NewBatchUI(uiOut, level == "quiet", isTerminal(uiOut))

	eng, err := loadEngine()
	if err != nil {
		return err
	}
	in, err := os.Open(input)
	if err != nil {
		return apperr.Userf("cannot open input: %w", err)
	}
	defer in.Close()

	stages := predictor.Stages()
	titles := make([]string, 0, len(stages)+1)
	for _, s := range stages {
		titles = append(titles, stageTitles[s])
	}
	writeIdx := len(titles)
	titles = append(titles, "Write output")
	bui.StartWorkflow(titles)

	res, err := eng.PredictBatch(cmd.Context(), in, predictor.BatchOptions{
		OnProgress: func(ev predictor.Event) {
			idx := int(ev.Stage)
			switch {
			case ev.Err != nil:
				bui.FailStage(idx, ev.Err.Error())
			case !ev.Done:
				msg := ""
				if ev.Stage == predictor.StageParse {
					msg = filepath.Base(input)
				}
				bui.StartStage(idx, msg)
			default:
				bui.CompleteStage(idx, fmt.Sprintf("%d rows", ev.Rows))
			}
		},
	})
	if err != nil {
		bui.FinishWorkflow()
		bui.PrintError(batchErrorTitle(err), err)
		return batchError(err)
	}

	bui.StartStage(writeIdx, output)
	if err := writeBatchOutput(res, output, cmd.OutOrStdout()); err != nil {
		bui.FailStage(writeIdx, err.Error())
		bui.FinishWorkflow()
		bui.PrintError("Writing output failed", err)
		return err
	}
	bui.CompleteStage(writeIdx, fmt.Sprintf("%d rows", res.Output.Len()))
	bui.FinishWorkflow()

	shown := output
	if toStdout {
		shown = "stdout"
	}
	bui.PrintSummary(ui.BatchSummary{
		RunID:   res.RunID,
		Input:   input,
		Output:  shown,
		Read:    res.Read,
		Dropped: res.Dropped,
		Counts:  res.Counts,
	})

	if viper.GetBool("batch.preview") && level != "quiet" {
		return previewRows(uiOut, res.Output)
	}
	return nil
}

// writeBatchOutput writes through a temporary file in the target directory
// and renames it, so a failed write never leaves a partial CSV behind.
func writeBatchOutput(res *predictor.BatchResult, path string, stdout io.Writer) error {
	if path == "-" {
		_, err := res.WriteTo(stdout)
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".salarypred-*.csv")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := res.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func previewRows(w io.Writer, f *batch.Frame) error {
	if f.Len() == 0 {
		return nil
	}
	if isTerminal(w) {
		return ui.RunPreview("Predicted rows", f.Header, f.Rows)
	}
	fmt.Fprintln(w, ui.DataTable(f.Header, f.Rows, f.Column(label.Column)))
	return nil
}

func batchErrorTitle(err error) string {
	var encErr *batch.EncodingError
	var malformed *batch.MalformedBatchError
	var mapErr *label.LabelMappingError
	switch {
	case errors.As(err, &encErr):
		return "Encoding failed"
	case errors.As(err, &malformed):
		return "Invalid input file"
	case errors.As(err, &mapErr):
		return "Unexpected model output"
	case errors.Is(err, context.Canceled):
		return "Cancelled"
	default:
		return "Batch prediction failed"
	}
}

// batchError marks failures caused by the input file as user errors.
func batchError(err error) error {
	var encErr *batch.EncodingError
	var malformed *batch.MalformedBatchError
	if errors.As(err, &encErr) || errors.As(err, &malformed) {
		return apperr.Userf("%w", err)
	}
	return err
}
