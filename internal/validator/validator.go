// Package validator checks a salarypred model card for structure and, when the
// artifacts are loaded, for drift between the card and the files on disk.
package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/idlab-discover/salarypred-cli/internal/label"
	"github.com/idlab-discover/salarypred-cli/internal/modelcard"
	"github.com/idlab-discover/salarypred-cli/internal/predictor"
	"github.com/idlab-discover/salarypred-cli/internal/schema"
)

const (
	propertyPrefix = "salarypred:"
	vocabPrefix    = propertyPrefix + "vocabulary:"
)

// Options controls which checks run.
type Options struct {
	// Strict turns missing optional sections into errors.
	Strict bool
	// SpecVersion, when set, must equal the card's declared version.
	SpecVersion string
	// Loaded, when set, is compared against the card's digests, kind and
	// vocabulary sizes.
	Loaded *predictor.Description
}

// Result collects the findings. Valid is false when Errors is non-empty.
type Result struct {
	ModelName string
	Valid     bool
	Errors    []string
	Warnings  []string
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// missing records an absent section as a warning, or an error in strict mode.
func (r *Result) missing(strict bool, format string, args ...any) {
	if strict {
		r.errorf(format, args...)
		return
	}
	r.warnf(format, args...)
}

// Validate checks bom against the record schema and opts.
func Validate(bom *cdx.BOM, opts Options) (res Result) {
	defer func() { res.Valid = len(res.Errors) == 0 }()

	if bom == nil {
		res.errorf("model card is empty")
		return res
	}
	checkSpecVersion(bom, opts.SpecVersion, &res)

	if bom.Metadata == nil || bom.Metadata.Component == nil {
		res.errorf("model card has no metadata.component")
		return res
	}
	model := bom.Metadata.Component
	res.ModelName = model.Name
	if model.Name == "" {
		res.errorf("model component has no name")
	}
	if model.Type != cdx.ComponentTypeMachineLearningModel {
		res.errorf("metadata.component type is %q, want %q", model.Type, cdx.ComponentTypeMachineLearningModel)
	}
	checkModelCard(model, opts.Strict, &res)

	data := encodersComponent(bom)
	if data == nil {
		res.missing(opts.Strict, "no data component describes the encoder vocabularies")
	} else {
		for _, f := range schema.CategoricalNames() {
			if _, ok := property(data, vocabPrefix+f); !ok {
				res.missing(opts.Strict, "encoder component has no vocabulary size for %q", f)
			}
		}
	}

	if opts.Loaded != nil {
		checkLoaded(model, data, *opts.Loaded, &res)
	}
	logf("%s: %d errors, %d warnings", res.ModelName, len(res.Errors), len(res.Warnings))
	return res
}

func checkSpecVersion(bom *cdx.BOM, expected string, res *Result) {
	if expected == "" {
		return
	}
	want, ok := modelcard.ParseSpecVersion(expected)
	if !ok {
		res.errorf("unsupported CycloneDX spec version: %q", expected)
		return
	}
	if bom.SpecVersion == 0 {
		res.errorf("model card declares no specVersion")
		return
	}
	if bom.SpecVersion != want {
		res.errorf("specVersion mismatch: expected %s, got %s", want, bom.SpecVersion)
	}
}

func checkModelCard(model *cdx.Component, strict bool, res *Result) {
	if _, ok := property(model, propertyPrefix+"kind"); !ok {
		res.missing(strict, "model component has no %skind property", propertyPrefix)
	}
	if model.ModelCard == nil || model.ModelCard.ModelParameters == nil {
		res.missing(strict, "model component has no modelCard.modelParameters")
		return
	}
	params := model.ModelCard.ModelParameters
	if params.Task != "classification" {
		res.missing(strict, "model task is %q, want %q", params.Task, "classification")
	}

	if params.Inputs == nil || len(*params.Inputs) == 0 {
		res.missing(strict, "model card lists no inputs")
	} else {
		got := make([]string, len(*params.Inputs))
		for i, in := range *params.Inputs {
			got[i] = in.Format
		}
		if !slices.Equal(got, schema.Names()) {
			res.errorf("model inputs %v do not match the record schema %v", got, schema.Names())
		}
	}

	want := string(label.LowIncome) + "|" + string(label.HighIncome)
	if params.Outputs == nil || len(*params.Outputs) == 0 {
		res.missing(strict, "model card lists no outputs")
	} else if out := (*params.Outputs)[0].Format; out != want {
		res.errorf("model output is %q, want %q", out, want)
	}
}

func checkLoaded(model, data *cdx.Component, d predictor.Description, res *Result) {
	if kind, ok := property(model, propertyPrefix+"kind"); ok && kind != d.ModelKind {
		res.errorf("model kind differs: card %q, loaded %q", kind, d.ModelKind)
	}
	compareDigest("model", model, d.ModelSHA256, res)
	if data == nil {
		return
	}
	compareDigest("encoders", data, d.EncodersSHA256, res)
	for field, size := range d.Vocabulary {
		v, ok := property(data, vocabPrefix+field)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(v); err != nil || n != size {
			res.errorf("vocabulary size for %q differs: card %s, loaded %d", field, v, size)
		}
	}
}

func compareDigest(what string, c *cdx.Component, loaded string, res *Result) {
	card := sha256Of(c)
	switch {
	case card == "":
		res.warnf("%s component has no SHA-256 hash", what)
	case loaded == "":
		res.warnf("loaded %s has no digest to compare", what)
	case !strings.EqualFold(card, loaded):
		res.errorf("%s digest differs: card %s, loaded %s", what, card, loaded)
	}
}

func encodersComponent(bom *cdx.BOM) *cdx.Component {
	if bom.Components == nil {
		return nil
	}
	for i := range *bom.Components {
		c := &(*bom.Components)[i]
		if c.Type == cdx.ComponentTypeData {
			return c
		}
	}
	return nil
}

func property(c *cdx.Component, name string) (string, bool) {
	if c == nil || c.Properties == nil {
		return "", false
	}
	for _, p := range *c.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

func sha256Of(c *cdx.Component) string {
	if c.Hashes == nil {
		return ""
	}
	for _, h := range *c.Hashes {
		if h.Algorithm == cdx.HashAlgoSHA256 {
			return h.Value
		}
	}
	return ""
}

// ValidateFile reads a model card (json, xml or auto by extension) and
// validates it.
func ValidateFile(path, format string, opts Options) (*cdx.BOM, Result, error) {
	bom, err := modelcard.Read(path, format)
	if err != nil {
		return nil, Result{}, fmt.Errorf("read model card: %w", err)
	}
	return bom, Validate(bom, opts), nil
}
