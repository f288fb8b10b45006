package modelcard

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/idlab-discover/salarypred-cli/internal/predictor"
)

func sampleDescription() predictor.Description {
	return predictor.Description{
		ModelKind:  "forest",
		ModelName:  "adult-income-rf",
		Features:   []string{"age", "workclass"},
		Classes:    []string{"<=50K", ">50K"},
		Vocabulary: map[string]int{"workclass": 7, "gender": 2},
		Artifacts: predictor.Artifacts{
			ModelPath:    "artifacts/best_model.yaml",
			EncodersPath: "artifacts/encoders.yaml",
		},
		ModelSHA256:    strings.Repeat("a", 64),
		EncodersSHA256: strings.Repeat("b", 64),
	}
}

func fixedNow() time.Time { return time.Date(2026, 1, 22, 10, 41, 24, 0, time.UTC) }

func TestBuild(t *testing.T) {
	bom, err := Build(sampleDescription(), Options{ToolVersion: "v1.0.0", Now: fixedNow})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.HasPrefix(bom.SerialNumber, "urn:uuid:") {
		t.Fatalf("serial = %q", bom.SerialNumber)
	}
	if bom.Metadata.Timestamp != "2026-01-22T10:41:24Z" {
		t.Fatalf("timestamp = %q", bom.Metadata.Timestamp)
	}

	comp := bom.Metadata.Component
	if comp.Type != cdx.ComponentTypeMachineLearningModel || comp.Name != "adult-income-rf" {
		t.Fatalf("component = %+v", comp)
	}
	mp := comp.ModelCard.ModelParameters
	if mp.Task != "classification" || mp.ArchitectureFamily != "forest" {
		t.Fatalf("model parameters = %+v", mp)
	}
	if len(*mp.Inputs) != 2 || (*mp.Inputs)[1].Format != "workclass" {
		t.Fatalf("inputs = %+v", *mp.Inputs)
	}
	if (*mp.Outputs)[0].Format != "<=50K|>50K" {
		t.Fatalf("outputs = %+v", *mp.Outputs)
	}
	if comp.Hashes == nil || (*comp.Hashes)[0].Algorithm != cdx.HashAlgoSHA256 {
		t.Fatalf("model hashes = %+v", comp.Hashes)
	}

	tools := *bom.Metadata.Tools.Components
	if len(tools) != 1 || tools[0].Name != ToolName || tools[0].Version != "v1.0.0" {
		t.Fatalf("tools = %+v", tools)
	}

	comps := *bom.Components
	if len(comps) != 1 || comps[0].Type != cdx.ComponentTypeData || comps[0].Name != "encoders.yaml" {
		t.Fatalf("components = %+v", comps)
	}
	props := *comps[0].Properties
	if props[0].Name != "salarypred:vocabulary:gender" || props[0].Value != "2" {
		t.Fatalf("vocabulary properties not sorted: %+v", props)
	}

	deps := *bom.Dependencies
	if len(deps) != 2 || deps[0].Ref != comp.BOMRef || (*deps[0].Dependencies)[0] != comps[0].BOMRef {
		t.Fatalf("dependencies = %+v", deps)
	}
}

func TestBuild_NameFallsBackToFileName(t *testing.T) {
	d := sampleDescription()
	d.ModelName = ""
	d.ModelSHA256 = ""
	bom, err := Build(d, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := bom.Metadata.Component.Name; got != "best_model" {
		t.Fatalf("name = %q, want best_model", got)
	}
	if bom.Metadata.Component.Hashes != nil {
		t.Fatalf("expected no hashes without a digest")
	}
}

func TestBuild_RequiresKind(t *testing.T) {
	if _, err := Build(predictor.Description{}, Options{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseSpecVersion(t *testing.T) {
	tcs := []struct {
		in   string
		want cdx.SpecVersion
		ok   bool
	}{
		{"1.0", cdx.SpecVersion1_0, true},
		{"1.4", cdx.SpecVersion1_4, true},
		{" 1.6 ", cdx.SpecVersion1_6, true},
		{"1.7", cdx.SpecVersion1_6, false},
		{"", cdx.SpecVersion1_6, false},
	}
	for _, tc := range tcs {
		got, ok := ParseSpecVersion(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseSpecVersion(%q) = (%v,%v), want (%v,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolveFormat(t *testing.T) {
	tcs := []struct {
		path, format string
		want         cdx.BOMFileFormat
		wantErr      bool
	}{
		{"card.json", "auto", cdx.BOMFileFormatJSON, false},
		{"card.xml", "", cdx.BOMFileFormatXML, false},
		{"card", "auto", cdx.BOMFileFormatJSON, false},
		{"card.json", "XML", cdx.BOMFileFormatXML, false},
		{"card.json", "yaml", 0, true},
	}
	for _, tc := range tcs {
		got, err := ResolveFormat(tc.path, tc.format)
		if (err != nil) != tc.wantErr || (!tc.wantErr && got != tc.want) {
			t.Fatalf("ResolveFormat(%q,%q) = %v,%v", tc.path, tc.format, got, err)
		}
	}
}

func TestWriteAndRead(t *testing.T) {
	bom, err := Build(sampleDescription(), Options{ToolVersion: "v1.0.0"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	dir := t.TempDir()
	for _, name := range []string{"card.json", "nested/card.xml"} {
		p := filepath.Join(dir, name)
		if err := Write(bom, p, "auto", "1.6"); err != nil {
			t.Fatalf("Write(%s): %v", name, err)
		}
		got, err := Read(p, "auto")
		if err != nil {
			t.Fatalf("Read(%s): %v", name, err)
		}
		if got.SerialNumber != bom.SerialNumber || got.Metadata.Component.Name != "adult-income-rf" {
			t.Fatalf("round trip of %s lost data: %+v", name, got.Metadata.Component)
		}
	}
}

func TestWrite_Errors(t *testing.T) {
	bom, _ := Build(sampleDescription(), Options{})
	dir := t.TempDir()
	tcs := []struct {
		name, path, format, spec string
	}{
		{"extension mismatch", "card.json", "xml", ""},
		{"bad format", "card.json", "yaml", ""},
		{"bad spec", "card.json", "json", "9.9"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p := filepath.Join(dir, tc.path)
			if err := Write(bom, p, tc.format, tc.spec); err == nil {
				t.Fatalf("expected error")
			}
			if _, err := os.Stat(p); !os.IsNotExist(err) {
				t.Fatalf("no file should be created on error")
			}
		})
	}
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Read(filepath.Join(dir, "missing.json"), "auto"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	p := filepath.Join(dir, "bom.json")
	if err := os.WriteFile(p, []byte(`{`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(p, "json"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestEncode_PrettyJSON(t *testing.T) {
	bom, _ := Build(sampleDescription(), Options{})
	var buf bytes.Buffer
	if err := Encode(&buf, bom, cdx.BOMFileFormatJSON, ""); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"") || !strings.Contains(buf.String(), "machine-learning-model") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestVersion(t *testing.T) {
	origVersion, origRead := version, readBuildInfo
	defer func() { version, readBuildInfo = origVersion, origRead }()

	version = "v9.9.9"
	if got := Version(); got != "v9.9.9" {
		t.Fatalf("Version() = %q", got)
	}

	version = ""
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}}, true
	}
	if got := Version(); got != "v1.2.3" {
		t.Fatalf("Version() = %q", got)
	}

	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
	if got := Version(); got != "devel" {
		t.Fatalf("Version() = %q", got)
	}
}
