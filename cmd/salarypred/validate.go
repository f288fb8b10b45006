package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/salarypred-cli/internal/apperr"
	"github.com/idlab-discover/salarypred-cli/internal/ui"
	"github.com/idlab-discover/salarypred-cli/internal/validator"
)

var (
	validateFormat  string
	validateStrict  bool
	validateSpec    string
	validateOffline bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <model-card>",
	Short: "Check a model card against the record schema and the loaded artifacts",
	Long: `Check a CycloneDX model card written by 'salarypred inspect --bom'.

The card must describe a machine-learning-model whose inputs follow the record
schema and whose output is the two income classes. Unless --offline is set,
the model and encoder files configured with --model and --encoders are loaded
and their SHA-256 digests, model kind and vocabulary sizes are compared with
the card.`,
	Example: `  salarypred validate dist/model-card.json
  salarypred validate card.xml --strict --spec 1.6
  salarypred validate card.json --offline`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVarP(&validateFormat, "format", "f", "auto", "Model card format: json|xml|auto")
	f.BoolVar(&validateStrict, "strict", false, "Treat missing sections as errors")
	f.StringVar(&validateSpec, "spec", "", "Require this CycloneDX spec version")
	f.BoolVar(&validateOffline, "offline", false, "Skip the comparison with the model and encoder files")

	viper.BindPFlag("validate.format", f.Lookup("format"))
	viper.BindPFlag("validate.strict", f.Lookup("strict"))
	viper.BindPFlag("validate.spec", f.Lookup("spec"))
	viper.BindPFlag("validate.offline", f.Lookup("offline"))
}

func runValidate(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel()
	if err != nil {
		return err
	}
	path := args[0]

	opts := validator.Options{
		Strict:      viper.GetBool("validate.strict"),
		SpecVersion: viper.GetString("validate.spec"),
	}
	if !viper.GetBool("validate.offline") {
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		d := eng.Describe()
		opts.Loaded = &d
	}

	_, res, err := validator.ValidateFile(path, viper.GetString("validate.format"), opts)
	if err != nil {
		return apperr.Userf("%w", err)
	}
	validator.PrintReport(res)

	ui.NewValidationUI(cmd.OutOrStdout(), level == "quiet").PrintReport(ui.ValidationReport{
		Card:      path,
		ModelName: res.ModelName,
		Valid:     res.Valid,
		Errors:    res.Errors,
		Warnings:  res.Warnings,
		Compared:  opts.Loaded != nil,
	})
	if !res.Valid {
		return fmt.Errorf("%s", validator.FormatSummary(res))
	}
	return nil
}
