package validator

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/idlab-discover/salarypred-cli/internal/modelcard"
	"github.com/idlab-discover/salarypred-cli/internal/predictor"
	"github.com/idlab-discover/salarypred-cli/internal/schema"
)

func description() predictor.Description {
	vocab := make(map[string]int)
	for i, f := range schema.CategoricalNames() {
		vocab[f] = i + 2
	}
	return predictor.Description{
		ModelKind:  "forest",
		ModelName:  "adult-income-rf",
		Features:   schema.Names(),
		Classes:    []string{"<=50K", ">50K"},
		Vocabulary: vocab,
		Artifacts: predictor.Artifacts{
			ModelPath:    "best_model.yaml",
			EncodersPath: "encoders.yaml",
		},
		ModelSHA256:    strings.Repeat("a", 64),
		EncodersSHA256: strings.Repeat("b", 64),
	}
}

func card(t *testing.T, d predictor.Description) *cdx.BOM {
	t.Helper()
	bom, err := modelcard.Build(d, modelcard.Options{ToolVersion: "test"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return bom
}

func containsSubstring(list []string, want string) bool {
	for _, s := range list {
		if strings.Contains(s, want) {
			return true
		}
	}
	return false
}

func TestValidate_GeneratedCardIsValid(t *testing.T) {
	d := description()
	for _, strict := range []bool{false, true} {
		res := Validate(card(t, d), Options{Strict: strict, Loaded: &d})
		if !res.Valid || len(res.Errors) != 0 || len(res.Warnings) != 0 {
			t.Fatalf("strict=%v: expected clean result, got %+v", strict, res)
		}
		if res.ModelName != "adult-income-rf" {
			t.Fatalf("ModelName = %q", res.ModelName)
		}
	}
}

func TestValidate_Structure(t *testing.T) {
	tests := []struct {
		name    string
		bom     *cdx.BOM
		wantErr string
	}{
		{"nil", nil, "empty"},
		{"no metadata", &cdx.BOM{}, "no metadata.component"},
		{"no component", &cdx.BOM{Metadata: &cdx.Metadata{}}, "no metadata.component"},
		{
			name: "wrong type",
			bom: &cdx.BOM{Metadata: &cdx.Metadata{Component: &cdx.Component{
				Name: "x", Type: cdx.ComponentTypeLibrary,
			}}},
			wantErr: "type is",
		},
		{
			name: "unnamed",
			bom: &cdx.BOM{Metadata: &cdx.Metadata{Component: &cdx.Component{
				Type: cdx.ComponentTypeMachineLearningModel,
			}}},
			wantErr: "no name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.bom, Options{})
			if res.Valid {
				t.Fatalf("expected invalid")
			}
			if !containsSubstring(res.Errors, tt.wantErr) {
				t.Fatalf("errors %v missing %q", res.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidate_MissingSectionsWarnUnlessStrict(t *testing.T) {
	bom := &cdx.BOM{Metadata: &cdx.Metadata{Component: &cdx.Component{
		Name: "bare", Type: cdx.ComponentTypeMachineLearningModel,
	}}}

	res := Validate(bom, Options{})
	if !res.Valid {
		t.Fatalf("non-strict should pass, errors: %v", res.Errors)
	}
	if !containsSubstring(res.Warnings, "modelCard.modelParameters") || !containsSubstring(res.Warnings, "encoder vocabularies") {
		t.Fatalf("warnings = %v", res.Warnings)
	}

	res = Validate(bom, Options{Strict: true})
	if res.Valid || !containsSubstring(res.Errors, "modelCard.modelParameters") {
		t.Fatalf("strict result = %+v", res)
	}
}

func TestValidate_InputsMustFollowSchema(t *testing.T) {
	bom := card(t, description())
	inputs := *bom.Metadata.Component.ModelCard.ModelParameters.Inputs
	inputs[0], inputs[1] = inputs[1], inputs[0]

	res := Validate(bom, Options{})
	if res.Valid || !containsSubstring(res.Errors, "do not match the record schema") {
		t.Fatalf("result = %+v", res)
	}
}

func TestValidate_DetectsDrift(t *testing.T) {
	bom := card(t, description())

	tests := []struct {
		name    string
		mutate  func(*predictor.Description)
		wantErr string
	}{
		{"model digest", func(d *predictor.Description) { d.ModelSHA256 = strings.Repeat("c", 64) }, "model digest differs"},
		{"encoders digest", func(d *predictor.Description) { d.EncodersSHA256 = strings.Repeat("c", 64) }, "encoders digest differs"},
		{"kind", func(d *predictor.Description) { d.ModelKind = "logistic" }, "model kind differs"},
		{"vocabulary", func(d *predictor.Description) { d.Vocabulary[schema.Gender] = 3 }, `vocabulary size for "gender"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := description()
			tt.mutate(&d)
			res := Validate(bom, Options{Loaded: &d})
			if res.Valid || !containsSubstring(res.Errors, tt.wantErr) {
				t.Fatalf("errors %v missing %q", res.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidate_SpecVersion(t *testing.T) {
	bom := card(t, description())
	bom.SpecVersion = cdx.SpecVersion1_5

	if res := Validate(bom, Options{SpecVersion: "1.5"}); !res.Valid {
		t.Fatalf("matching version rejected: %v", res.Errors)
	}
	if res := Validate(bom, Options{SpecVersion: "1.6"}); !containsSubstring(res.Errors, "specVersion mismatch") {
		t.Fatalf("errors = %v", res.Errors)
	}
	if res := Validate(bom, Options{SpecVersion: "2.0"}); !containsSubstring(res.Errors, "unsupported") {
		t.Fatalf("errors = %v", res.Errors)
	}
}

func TestValidateFile(t *testing.T) {
	d := description()
	path := filepath.Join(t.TempDir(), "card.xml")
	if err := modelcard.Write(card(t, d), path, "auto", ""); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_, res, err := ValidateFile(path, "auto", Options{Loaded: &d})
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !res.Valid {
		t.Fatalf("errors: %v", res.Errors)
	}

	if _, _, err := ValidateFile(filepath.Join(t.TempDir(), "missing.json"), "auto", Options{}); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"passed", Result{Valid: true, Warnings: []string{"one", "two"}}, "Validation: ✅ PASSED | Errors: 0 | Warnings: 2"},
		{"failed", Result{Errors: []string{"a", "b"}, Warnings: []string{"c"}}, "Validation: ❌ FAILED | Errors: 2 | Warnings: 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSummary(tt.res); got != tt.want {
				t.Fatalf("FormatSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintReport_UsesLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	defer SetLogger(nil)

	PrintReport(Result{ModelName: "m", Errors: []string{"bad digest"}, Warnings: []string{"no hash"}})
	out := buf.String()
	for _, w := range []string{"Validate:", "model card is invalid", "error: bad digest", "warning: no hash"} {
		if !strings.Contains(out, w) {
			t.Errorf("log missing %q:\n%s", w, out)
		}
	}
}
