package model

import (
	"fmt"
	"math"

	"go.yaml.in/yaml/v3"
	"gonum.org/v1/gonum/mat"
)

func init() { Register("logistic", loadLogistic) }

// Logistic is a binary logistic regression over the raw encoded features.
type Logistic struct {
	base
	coef      *mat.VecDense
	intercept float64
	threshold float64
}

type logisticSpec struct {
	Coef      []float64 `yaml:"coef"`
	Intercept float64   `yaml:"intercept"`
	Threshold *float64  `yaml:"threshold"`
}

func loadLogistic(h Header, doc *yaml.Node) (Classifier, error) {
	var s logisticSpec
	if err := doc.Decode(&s); err != nil {
		return nil, err
	}
	return NewLogistic(h, s.Coef, s.Intercept, s.Threshold)
}

// NewLogistic builds a logistic model. A nil threshold means 0.5.
func NewLogistic(h Header, coef []float64, intercept float64, threshold *float64) (*Logistic, error) {
	if len(h.Classes) != 2 {
		return nil, fmt.Errorf("logistic regression is binary, got %d classes", len(h.Classes))
	}
	if len(coef) != len(h.Features) {
		return nil, fmt.Errorf("coef has %d entries, want %d", len(coef), len(h.Features))
	}
	t := 0.5
	if threshold != nil {
		t = *threshold
	}
	if t <= 0 || t >= 1 {
		return nil, fmt.Errorf("threshold %v must be in (0, 1)", t)
	}
	w := make([]float64, len(coef))
	copy(w, coef)
	return &Logistic{
		base:      base{h: h},
		coef:      mat.NewVecDense(len(w), w),
		intercept: intercept,
		threshold: t,
	}, nil
}

// Probabilities returns P(class 1) for each row.
func (m *Logistic) Probabilities(X mat.Matrix) ([]float64, error) {
	rows, err := m.checkDims(X)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, nil
	}
	var z mat.VecDense
	z.MulVec(X, m.coef)
	out := make([]float64, rows)
	for i := range out {
		out[i] = sigmoid(z.AtVec(i) + m.intercept)
	}
	return out, nil
}

func (m *Logistic) Predict(X mat.Matrix) ([]string, error) {
	p, err := m.Probabilities(X)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(p))
	for i, v := range p {
		if v >= m.threshold {
			idx[i] = 1
		}
	}
	return m.tokens(idx), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
