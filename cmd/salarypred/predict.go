package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/salarypred-cli/internal/apperr"
	"github.com/idlab-discover/salarypred-cli/internal/encoding"
	"github.com/idlab-discover/salarypred-cli/internal/predictor"
	"github.com/idlab-discover/salarypred-cli/internal/schema"
	"github.com/idlab-discover/salarypred-cli/internal/ui"
)

var (
	predictInteractive bool
	predictPlain       bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the income class of one employee",
	Long: `Predict the income class of a single employee record.

Fields not given on the command line (or under "predict:" in the config file)
take the form defaults: age 30, fnlwgt 100000, educational-num 10,
hours-per-week 40, capital gain and loss 0, and the first fitted category of
each categorical field. Use --interactive to fill the record in a form.`,
	Example: `  salarypred predict --age 45 --workclass Private --occupation Exec-managerial
  salarypred predict -i
  salarypred predict --plain --capital-gain 15000`,
	RunE: runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.BoolVarP(&predictInteractive, "interactive", "i", false, "Fill the record in an interactive form")
	f.BoolVar(&predictPlain, "plain", false, "Print only the predicted label")
	viper.BindPFlag("predict.plain", f.Lookup("plain"))

	for _, fd := range schema.Fields() {
		usage := fd.Title
		if fd.HasRange {
			usage = fmt.Sprintf("%s (%d-%d)", fd.Title, fd.Min, fd.Max)
		}
		switch fd.Kind {
		case schema.Numeric:
			f.Int64(fd.Name, fd.Default, usage)
		case schema.Categorical:
			f.String(fd.Name, "", usage+" (see 'salarypred vocab "+fd.Name+"')")
		}
		viper.BindPFlag("predict."+fd.Name, f.Lookup(fd.Name))
	}
}

func runPredict(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel()
	if err != nil {
		return err
	}
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	rec, err := recordFromConfig(eng)
	if err != nil {
		return err
	}
	if predictInteractive {
		rec, err = ui.NewRecordForm(rec, eng.Vocabulary).Run(cmd.Context())
		if err != nil {
			return err
		}
	}

	res, err := eng.PredictRecord(cmd.Context(), rec)
	if err != nil {
		return predictError(err)
	}

	out := ui.NewPredictUI(cmd.OutOrStdout(), level == "quiet", viper.GetBool("predict.plain"))
	out.PrintInputPreview(res.Encoded)
	out.PrintResult(res.Label)
	return nil
}

// recordFromConfig starts from the form defaults and applies every field the
// user set through a flag, the environment or the config file.
func recordFromConfig(eng *predictor.Engine) (schema.Record, error) {
	rec := schema.DefaultRecord(eng.Vocabulary)
	for _, fd := range schema.Fields() {
		key := "predict." + fd.Name
		if !viper.IsSet(key) {
			continue
		}
		switch fd.Kind {
		case schema.Numeric:
			v, err := parseWhole(viper.GetString(key))
			if err != nil {
				return schema.Record{}, apperr.Userf("--%s: %v", fd.Name, err)
			}
			rec.SetNumeric(fd.Name, v)
		case schema.Categorical:
			rec.SetCategory(fd.Name, strings.TrimSpace(viper.GetString(key)))
		}
	}
	return rec, nil
}

func parseWhole(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return v, nil
}

// predictError turns input problems into user errors with a hint.
func predictError(err error) error {
	var unknown *encoding.UnknownCategoryError
	if errors.As(err, &unknown) {
		return apperr.Userf("%w (run 'salarypred vocab %s' to list accepted values)", err, unknown.Field)
	}
	var rangeErr *schema.RangeError
	if errors.As(err, &rangeErr) {
		return apperr.Userf("%w", err)
	}
	return err
}
