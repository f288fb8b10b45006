// Package predictor holds the loaded classifier and encoders and runs single
// and batch predictions against them.
package predictor

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/idlab-discover/salarypred-cli/internal/encoding"
	"github.com/idlab-discover/salarypred-cli/internal/label"
	"github.com/idlab-discover/salarypred-cli/internal/model"
	"github.com/idlab-discover/salarypred-cli/internal/schema"
	"github.com/idlab-discover/salarypred-cli/internal/transform"
)

// Artifacts names the files an Engine is loaded from.
type Artifacts struct {
	ModelPath    string
	EncodersPath string
}

// Engine is the read-only prediction context. It is safe for concurrent use
// because nothing in it changes after construction.
type Engine struct {
	reg *encoding.Registry
	clf model.Classifier

	artifacts   Artifacts
	modelSum    string
	encodersSum string
}

// Load reads both artifacts and checks them against the record schema.
func Load(a Artifacts) (*Engine, error) {
	encData, err := os.ReadFile(a.EncodersPath)
	if err != nil {
		return nil, fmt.Errorf("read encoders: %w", err)
	}
	reg, err := encoding.ParseRegistry(bytes.NewReader(encData))
	if err != nil {
		return nil, fmt.Errorf("encoders %s: %w", a.EncodersPath, err)
	}

	modelData, err := os.ReadFile(a.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	clf, err := model.Parse(bytes.NewReader(modelData), schema.Names())
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", a.ModelPath, err)
	}

	e, err := New(reg, clf)
	if err != nil {
		return nil, err
	}
	e.artifacts = a
	e.modelSum = digest(modelData)
	e.encodersSum = digest(encData)
	logf("loaded %s model %q from %s (%d encoders)", clf.Kind(), clf.Name(), filepath.Base(a.ModelPath), len(reg.Fields()))
	return e, nil
}

// New builds an Engine from already loaded parts.
func New(reg *encoding.Registry, clf model.Classifier) (*Engine, error) {
	if reg == nil || clf == nil {
		return nil, fmt.Errorf("predictor: registry and model are required")
	}
	if err := reg.Require(schema.CategoricalNames()...); err != nil {
		return nil, err
	}
	if !slices.Equal(clf.Features(), schema.Names()) {
		return nil, model.ErrFeatureMismatch
	}
	return &Engine{reg: reg, clf: clf}, nil
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func (e *Engine) Registry() *encoding.Registry { return e.reg }
func (e *Engine) Model() model.Classifier      { return e.clf }
func (e *Engine) Artifacts() Artifacts         { return e.artifacts }

// Vocabulary returns the fitted values of a categorical field.
func (e *Engine) Vocabulary(field string) []string { return e.reg.Classes(field) }

// Result is the outcome of a single-record prediction.
type Result struct {
	Encoded schema.EncodedRecord
	Raw     string
	Label   label.Label
}

// PredictRecord encodes rec and classifies it.
func (e *Engine) PredictRecord(ctx context.Context, rec schema.Record) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	enc, err := transform.Encode(e.reg, rec)
	if err != nil {
		return Result{}, err
	}
	raw, err := e.clf.Predict(mat.NewDense(1, len(enc.Values), enc.Floats()))
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}
	if len(raw) != 1 {
		return Result{}, fmt.Errorf("predict: model returned %d labels for one row", len(raw))
	}
	l, err := label.Map(raw[0])
	if err != nil {
		return Result{}, err
	}
	logf("record %v -> %s", enc.Values, l)
	return Result{Encoded: enc, Raw: raw[0], Label: l}, nil
}
