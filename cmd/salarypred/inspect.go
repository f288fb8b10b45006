package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/salarypred-cli/internal/apperr"
	"github.com/idlab-discover/salarypred-cli/internal/modelcard"
	"github.com/idlab-discover/salarypred-cli/internal/predictor"
	"github.com/idlab-discover/salarypred-cli/internal/schema"
	"github.com/idlab-discover/salarypred-cli/internal/ui"
)

var (
	inspectBOM    string
	inspectFormat string
	inspectSpec   string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe the loaded model and encoders",
	Long: `Describe the loaded model and encoders: model kind, classes, feature
order, vocabulary sizes and artifact digests.

With --bom the same description is written as a CycloneDX model card, with the
model as metadata component and the encoder file as a data component.`,
	Example: `  salarypred inspect
  salarypred inspect --bom dist/model-card.json
  salarypred inspect --bom dist/model-card.xml --spec 1.5`,
	RunE: runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&inspectBOM, "bom", "", "Write a CycloneDX model card to this path")
	f.StringVarP(&inspectFormat, "format", "f", "auto", "Model card format: json|xml|auto")
	f.StringVar(&inspectSpec, "spec", "", "CycloneDX spec version for the model card (default: latest)")

	viper.BindPFlag("inspect.bom", f.Lookup("bom"))
	viper.BindPFlag("inspect.format", f.Lookup("format"))
	viper.BindPFlag("inspect.spec", f.Lookup("spec"))
}

func runInspect(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel()
	if err != nil {
		return err
	}
	eng, err := loadEngine()
	if err != nil {
		return err
	}
	d := eng.Describe()
	w := cmd.OutOrStdout()

	if level != "quiet" {
		ui.PrintPanel(w, "🧠 Model", describeLines(d))
	}

	path := viper.GetString("inspect.bom")
	if path == "" {
		return nil
	}
	format := viper.GetString("inspect.format")
	if _, err := modelcard.ResolveFormat(path, format); err != nil {
		return apperr.Userf("--format: %v", err)
	}
	spec := viper.GetString("inspect.spec")
	if spec != "" {
		if _, ok := modelcard.ParseSpecVersion(spec); !ok {
			return apperr.Userf("--spec: unsupported CycloneDX spec version %q (expected 1.0 to 1.6)", spec)
		}
	}

	ver := version
	if ver == "" || ver == "dev" {
		ver = modelcard.Version()
	}
	bom, err := modelcard.Build(d, modelcard.Options{ToolVersion: ver})
	if err != nil {
		return err
	}
	if err := modelcard.Write(bom, path, format, spec); err != nil {
		return fmt.Errorf("write model card: %w", err)
	}
	if level != "quiet" {
		fmt.Fprintln(w, ui.CheckMark+" "+ui.Success.Render("Model card written to ")+ui.Highlight.Render(path))
	}
	return nil
}

func describeLines(d predictor.Description) []ui.KV {
	name := d.ModelName
	if name == "" {
		name = "(unnamed)"
	}
	lines := []ui.KV{
		{Key: "Name", Value: name},
		{Key: "Kind", Value: d.ModelKind},
		{Key: "Classes", Value: strings.Join(d.Classes, ", ")},
		{Key: "Features", Value: fmt.Sprintf("%d", len(d.Features))},
	}
	if d.Trees > 0 {
		lines = append(lines, ui.KV{Key: "Trees", Value: fmt.Sprintf("%d", d.Trees)})
	}
	for _, f := range schema.CategoricalNames() {
		lines = append(lines, ui.KV{Key: "  " + f, Value: fmt.Sprintf("%d categories", d.Vocabulary[f])})
	}
	lines = append(lines,
		ui.KV{Key: "Model file", Value: d.Artifacts.ModelPath},
		ui.KV{Key: "Encoders file", Value: d.Artifacts.EncodersPath},
	)
	if d.ModelSHA256 != "" {
		lines = append(lines, ui.KV{Key: "Model SHA-256", Value: d.ModelSHA256})
	}
	if d.EncodersSHA256 != "" {
		lines = append(lines, ui.KV{Key: "Encoders SHA-256", Value: d.EncodersSHA256})
	}
	return lines
}
