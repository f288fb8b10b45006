package predictor

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/idlab-discover/salarypred-cli/internal/batch"
	"github.com/idlab-discover/salarypred-cli/internal/label"
)

// Stage identifies a step of a batch run.
type Stage int

const (
	StageParse Stage = iota
	StageClean
	StageEncode
	StagePredict
	StageAnnotate
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageClean:
		return "clean"
	case StageEncode:
		return "encode"
	case StagePredict:
		return "predict"
	case StageAnnotate:
		return "annotate"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Stages lists every stage in execution order.
func Stages() []Stage {
	return []Stage{StageParse, StageClean, StageEncode, StagePredict, StageAnnotate}
}

// Event reports a stage transition. Done is false when the stage starts.
type Event struct {
	RunID string
	Stage Stage
	Done  bool
	Rows  int
	Err   error
}

// ProgressCallback receives stage events of a batch run.
type ProgressCallback func(Event)

// BatchOptions configures PredictBatch.
type BatchOptions struct {
	// RunID tags log lines and events. A random UUID is used when empty.
	RunID      string
	OnProgress ProgressCallback
}

// BatchResult is the annotated copy of the uploaded rows.
type BatchResult struct {
	RunID   string
	Output  *batch.Frame
	Read    int
	Dropped int
	Counts  map[label.Label]int
}

// WriteTo writes the annotated rows as CSV.
func (r *BatchResult) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := r.Output.WriteCSV(cw)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// PredictBatch reads a CSV of records, drops rows with missing values, encodes
// the rest and classifies them with one model call. Any encoding, parsing or
// label failure aborts the whole run and nothing is returned.
func (e *Engine) PredictBatch(ctx context.Context, r io.Reader, opts BatchOptions) (*BatchResult, error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	runLog := logger.With("run", runID)
	progress := opts.OnProgress
	if progress == nil {
		progress = func(Event) {}
	}
	fail := func(s Stage, err error) (*BatchResult, error) {
		runLog.Printf("%s failed: %v", s, err)
		progress(Event{RunID: runID, Stage: s, Done: true, Err: err})
		return nil, err
	}
	step := func(s Stage) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		progress(Event{RunID: runID, Stage: s})
		return nil
	}

	if err := step(StageParse); err != nil {
		return fail(StageParse, err)
	}
	// ReadCSV's frame stays untouched and is the source of the output rows.
	original, err := batch.ReadCSV(r)
	if err != nil {
		return fail(StageParse, err)
	}
	runLog.Printf("read %d rows, %d columns", original.Len(), len(original.Header))
	progress(Event{RunID: runID, Stage: StageParse, Done: true, Rows: original.Len()})

	if err := step(StageClean); err != nil {
		return fail(StageClean, err)
	}
	cleaned := batch.Clean(original)
	dropped := original.Len() - cleaned.Len()
	if dropped > 0 {
		runLog.Printf("dropped %d rows with missing values", dropped)
	}
	progress(Event{RunID: runID, Stage: StageClean, Done: true, Rows: cleaned.Len()})

	if err := step(StageEncode); err != nil {
		return fail(StageEncode, err)
	}
	X, err := batch.Encode(e.reg, cleaned)
	if err != nil {
		return fail(StageEncode, err)
	}
	progress(Event{RunID: runID, Stage: StageEncode, Done: true, Rows: cleaned.Len()})

	if err := step(StagePredict); err != nil {
		return fail(StagePredict, err)
	}
	var raw []string
	if X != nil {
		raw, err = e.clf.Predict(X)
		if err != nil {
			return fail(StagePredict, fmt.Errorf("predict: %w", err))
		}
	}
	if len(raw) != cleaned.Len() {
		return fail(StagePredict, fmt.Errorf("predict: model returned %d labels for %d rows", len(raw), cleaned.Len()))
	}
	labels, err := label.MapAll(raw)
	if err != nil {
		return fail(StagePredict, err)
	}
	progress(Event{RunID: runID, Stage: StagePredict, Done: true, Rows: len(labels)})

	if err := step(StageAnnotate); err != nil {
		return fail(StageAnnotate, err)
	}
	out, err := batch.Annotate(original, cleaned.Index, labels)
	if err != nil {
		return fail(StageAnnotate, err)
	}
	counts := make(map[label.Label]int, 2)
	for _, l := range labels {
		counts[l]++
	}
	progress(Event{RunID: runID, Stage: StageAnnotate, Done: true, Rows: out.Len()})
	runLog.Printf("done: %d predicted (%d %s, %d %s)", out.Len(),
		counts[label.HighIncome], label.HighIncome, counts[label.LowIncome], label.LowIncome)

	return &BatchResult{
		RunID:   runID,
		Output:  out,
		Read:    original.Len(),
		Dropped: dropped,
		Counts:  counts,
	}, nil
}
