// Package model loads and serves the trained income classifier.
//
// A model artifact is a YAML (or JSON) document with a common header
//
//	kind: forest
//	name: adult-income-rf
//	features: [age, workclass, ...]
//	classes: ["<=50K", ">50K"]
//
// followed by kind-specific parameters. Implementations are made available
// through Register; the built-in kinds are "logistic", "tree" and "forest".
package model

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"

	"go.yaml.in/yaml/v3"
	"gonum.org/v1/gonum/mat"
)

// Classifier predicts one raw class token per row of X. Columns of X follow
// Features().
type Classifier interface {
	Kind() string
	Name() string
	Features() []string
	Classes() []string
	Predict(X mat.Matrix) ([]string, error)
}

// Header is the part of the artifact shared by every kind.
type Header struct {
	Kind     string   `yaml:"kind"`
	Name     string   `yaml:"name"`
	Features []string `yaml:"features"`
	Classes  []string `yaml:"classes"`
}

// Loader builds a classifier of one kind from the decoded document.
type Loader func(h Header, doc *yaml.Node) (Classifier, error)

var (
	loadersMu sync.RWMutex
	loaders   = map[string]Loader{}
)

// Register makes a model kind available to Parse. Registering a kind twice panics.
func Register(kind string, l Loader) {
	loadersMu.Lock()
	defer loadersMu.Unlock()
	if _, dup := loaders[kind]; dup {
		panic("model: Register called twice for kind " + kind)
	}
	loaders[kind] = l
}

// Kinds returns the registered kinds, sorted.
func Kinds() []string {
	loadersMu.RLock()
	defer loadersMu.RUnlock()
	out := make([]string, 0, len(loaders))
	for k := range loaders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ErrFeatureMismatch is returned when an artifact's feature list differs from
// the expected column layout.
var ErrFeatureMismatch = errors.New("model features do not match the record schema")

// Parse decodes a model artifact. When want is non-nil the artifact's features
// must equal it exactly, names and order.
func Parse(r io.Reader, want []string) (Classifier, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("decode model: empty document")
		}
		return nil, fmt.Errorf("decode model: %w", err)
	}
	var h Header
	if err := doc.Decode(&h); err != nil {
		return nil, fmt.Errorf("decode model header: %w", err)
	}
	if h.Kind == "" {
		return nil, fmt.Errorf("model kind is required (one of %v)", Kinds())
	}
	if len(h.Classes) < 2 {
		return nil, fmt.Errorf("model must declare at least two classes, got %d", len(h.Classes))
	}
	if len(h.Features) == 0 {
		return nil, fmt.Errorf("model must declare its features")
	}
	if want != nil && !slices.Equal(h.Features, want) {
		return nil, fmt.Errorf("%w: got %v, want %v", ErrFeatureMismatch, h.Features, want)
	}

	loadersMu.RLock()
	l, ok := loaders[h.Kind]
	loadersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown model kind %q (one of %v)", h.Kind, Kinds())
	}
	c, err := l(h, &doc)
	if err != nil {
		return nil, fmt.Errorf("%s model: %w", h.Kind, err)
	}
	logf("loaded %s model %q: %d features, classes %v", h.Kind, h.Name, len(h.Features), h.Classes)
	return c, nil
}

// DimensionError reports a matrix whose width does not match the model.
type DimensionError struct {
	Got, Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("input has %d columns, model expects %d", e.Got, e.Want)
}

// base carries the header fields and shared helpers for built-in kinds.
type base struct {
	h Header
}

func (b base) Kind() string { return b.h.Kind }
func (b base) Name() string { return b.h.Name }

func (b base) Features() []string { return slices.Clone(b.h.Features) }
func (b base) Classes() []string  { return slices.Clone(b.h.Classes) }

func (b base) checkDims(X mat.Matrix) (rows int, err error) {
	r, c := X.Dims()
	if c != len(b.h.Features) {
		return 0, &DimensionError{Got: c, Want: len(b.h.Features)}
	}
	return r, nil
}

func (b base) tokens(idx []int) []string {
	out := make([]string, len(idx))
	for i, k := range idx {
		out[i] = b.h.Classes[k]
	}
	return out
}
