package cmd

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/idlab-discover/salarypred-cli/internal/apperr"
	"github.com/idlab-discover/salarypred-cli/internal/label"
	"github.com/idlab-discover/salarypred-cli/internal/modelcard"
)

const artifactsDir = "../../testdata/artifacts"

// run executes the CLI with the test artifacts and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	full := append([]string{
		"--model", filepath.Join(artifactsDir, "best_model.yaml"),
		"--encoders", filepath.Join(artifactsDir, "encoders.yaml"),
	}, args...)
	rootCmd.SetArgs(full)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBatchCommand_WritesAnnotatedCSV(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out", "scored.csv")
	if _, err := run(t, "batch", "--log-level", "quiet", "--preview=false",
		"-i", filepath.Join(artifactsDir, "adult_sample.csv"), "-o", dst); err != nil {
		t.Fatalf("batch: %v", err)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	header := records[0]
	if header[len(header)-1] != label.Column {
		t.Fatalf("last column = %q", header[len(header)-1])
	}
	var got []string
	for _, r := range records[1:] {
		got = append(got, r[len(r)-1])
	}
	want := []string{"<=50K", ">50K", ">50K", "<=50K"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	// Surviving rows keep their original cells.
	if records[4][1] != " Private " {
		t.Fatalf("row 4 workclass = %q", records[4][1])
	}
}

func TestBatchCommand_StdoutOutput(t *testing.T) {
	out, err := run(t, "batch", "--log-level", "quiet", "--preview=false",
		"-i", filepath.Join(artifactsDir, "adult_sample.csv"), "-o", "-")
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if !strings.HasPrefix(out, "age,workclass,") || strings.Count(out, "\n") != 5 {
		t.Fatalf("unexpected stdout:\n%s", out)
	}
}

func TestBatchCommand_EncodingErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	body := "age,workclass,fnlwgt,educational-num,marital-status,occupation,relationship,race,gender,capital-gain,capital-loss,hours-per-week,native-country\n" +
		"25,Mars,226802,7,Never-married,Machine-op-inspct,Own-child,Black,Male,0,0,40,United-States\n"
	if err := os.WriteFile(in, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "scored.csv")

	_, err := run(t, "batch", "--log-level", "quiet", "--preview=false", "-i", in, "-o", dst)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !apperr.IsUser(err) {
		t.Fatalf("expected user error, got %T: %v", err, err)
	}
	for _, w := range []string{"workclass", "Mars"} {
		if !strings.Contains(err.Error(), w) {
			t.Errorf("error %q missing %q", err, w)
		}
	}
	if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
		t.Fatalf("output file should not exist, stat err = %v", statErr)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("unexpected files left behind: %v", entries)
	}
}

func TestBatchCommand_MissingInput(t *testing.T) {
	_, err := run(t, "batch", "--log-level", "quiet", "-i", filepath.Join(t.TempDir(), "nope.csv"))
	if !apperr.IsUser(err) {
		t.Fatalf("expected user error, got %v", err)
	}
}

func TestPredictCommand(t *testing.T) {
	base := []string{"predict", "--log-level", "standard", "--plain",
		"--age", "30", "--workclass", "Private", "--fnlwgt", "100000", "--educational-num", "10",
		"--marital-status", "Never-married", "--occupation", "Sales", "--relationship", "Not-in-family",
		"--race", "White", "--gender", "Male", "--capital-loss", "0", "--hours-per-week", "40",
		"--native-country", "United-States"}

	tests := []struct {
		name string
		gain string
		want string
	}{
		{"low income", "0", "<=50K\n"},
		{"high income", "15000", ">50K\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append(base, "--capital-gain", tt.gain)...)
			if err != nil {
				t.Fatalf("predict: %v", err)
			}
			if out != tt.want {
				t.Fatalf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestPredictCommand_UserErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown category", []string{"--workclass", "Mars"}, "salarypred vocab workclass"},
		{"out of range", []string{"--workclass", "Private", "--age", "90"}, "age=90"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"predict", "--log-level", "quiet"}, tt.args...)...)
			if !apperr.IsUser(err) {
				t.Fatalf("expected user error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q missing %q", err, tt.want)
			}
		})
	}
}

func TestVocabCommand(t *testing.T) {
	out, err := run(t, "vocab", "gender")
	if err != nil {
		t.Fatalf("vocab: %v", err)
	}
	for _, w := range []string{"gender", "Female", "Male"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}

	if _, err := run(t, "vocab", "age"); !apperr.IsUser(err) {
		t.Fatalf("expected user error for numeric field, got %v", err)
	}
}

func TestInspectCommand_WritesModelCard(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "card.json")
	out, err := run(t, "inspect", "--log-level", "standard", "--bom", dst, "--format", "auto")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, w := range []string{"forest", "adult-income-rf", "Trees", "Model card written"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
	bom, err := modelcard.Read(dst, "json")
	if err != nil {
		t.Fatalf("read card: %v", err)
	}
	if bom.Metadata == nil || bom.Metadata.Component == nil || bom.Metadata.Component.Name != "adult-income-rf" {
		t.Fatalf("unexpected metadata: %+v", bom.Metadata)
	}

	if _, err := run(t, "inspect", "--bom", dst, "--spec", "9.9"); !apperr.IsUser(err) {
		t.Fatalf("expected user error for bad spec, got %v", err)
	}
}

func TestLoadEngine_MissingArtifacts(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetArgs([]string{"vocab", "--model", filepath.Join(t.TempDir(), "missing.yaml"),
		"--encoders", filepath.Join(artifactsDir, "encoders.yaml")})
	err := rootCmd.Execute()
	if !apperr.IsUser(err) {
		t.Fatalf("expected user error, got %v", err)
	}
	if !strings.Contains(err.Error(), "--model") {
		t.Fatalf("error %q should name the flag", err)
	}
}

func TestResolveLogLevel_Invalid(t *testing.T) {
	_, err := run(t, "vocab", "--log-level", "loud")
	if !apperr.IsUser(err) {
		t.Fatalf("expected user error, got %v", err)
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	cardPath := filepath.Join(dir, "card.json")
	if _, err := run(t, "inspect", "--log-level", "quiet", "--bom", cardPath, "--spec", ""); err != nil {
		t.Fatalf("inspect: %v", err)
	}

	out, err := run(t, "validate", "--log-level", "standard", cardPath)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "Model Card Valid") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	// Any edit to the encoders file changes its digest.
	orig, err := os.ReadFile(filepath.Join(artifactsDir, "encoders.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	edited := filepath.Join(dir, "encoders.yaml")
	if err := os.WriteFile(edited, append(orig, []byte("# retrained\n")...), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "validate", "--log-level", "standard", "--encoders", edited, cardPath)
	if err == nil || !strings.Contains(err.Error(), "FAILED") {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if !strings.Contains(out, "encoders digest differs") {
		t.Fatalf("output missing digest finding:\n%s", out)
	}

	if _, err := run(t, "validate", "--offline", filepath.Join(dir, "missing.json")); !apperr.IsUser(err) {
		t.Fatalf("expected user error for missing card, got %v", err)
	}
}
