// Package salarypred is the library surface of salarypred-cli: load the
// classifier artifacts once, then score single records or CSV streams.
//
//	p, err := salarypred.Load("best_model.yaml", "encoders.yaml")
//	if err != nil { ... }
//	l, err := p.Predict(ctx, salarypred.Record{Age: 45, Workclass: "Private", ...})
//
// A Predictor is immutable after Load and safe for concurrent use.
package salarypred

import (
	"context"
	"io"

	"github.com/idlab-discover/salarypred-cli/internal/batch"
	"github.com/idlab-discover/salarypred-cli/internal/encoding"
	"github.com/idlab-discover/salarypred-cli/internal/label"
	"github.com/idlab-discover/salarypred-cli/internal/predictor"
	"github.com/idlab-discover/salarypred-cli/internal/schema"
)

type (
	// Record holds one subject's raw attribute values.
	Record = schema.Record
	// Label is "<=50K" or ">50K".
	Label = label.Label

	UnknownCategoryError = encoding.UnknownCategoryError
	EncodingError        = batch.EncodingError
	MalformedBatchError  = batch.MalformedBatchError
	LabelMappingError    = label.LabelMappingError
	RangeError           = schema.RangeError
)

const (
	LowIncome  = label.LowIncome
	HighIncome = label.HighIncome
)

// Predictor wraps the loaded model and encoders.
type Predictor struct {
	eng *predictor.Engine
}

// Load reads the model and encoder artifacts.
func Load(modelPath, encodersPath string) (*Predictor, error) {
	eng, err := predictor.Load(predictor.Artifacts{ModelPath: modelPath, EncodersPath: encodersPath})
	if err != nil {
		return nil, err
	}
	return &Predictor{eng: eng}, nil
}

// Predict classifies one record.
func (p *Predictor) Predict(ctx context.Context, rec Record) (Label, error) {
	res, err := p.eng.PredictRecord(ctx, rec)
	if err != nil {
		return "", err
	}
	return res.Label, nil
}

// Vocabulary returns the accepted values of a categorical field in fitted
// order, or nil for unknown or numeric fields.
func (p *Predictor) Vocabulary(field string) []string {
	return p.eng.Vocabulary(field)
}

// Summary describes a finished CSV run.
type Summary struct {
	RunID   string
	Read    int
	Dropped int
	Counts  map[Label]int
}

// PredictCSV reads records from r and writes the surviving rows with a
// PredictedClass column to w. Nothing is written when the run fails.
func (p *Predictor) PredictCSV(ctx context.Context, r io.Reader, w io.Writer) (Summary, error) {
	res, err := p.eng.PredictBatch(ctx, r, predictor.BatchOptions{})
	if err != nil {
		return Summary{}, err
	}
	if _, err := res.WriteTo(w); err != nil {
		return Summary{}, err
	}
	return Summary{RunID: res.RunID, Read: res.Read, Dropped: res.Dropped, Counts: res.Counts}, nil
}
