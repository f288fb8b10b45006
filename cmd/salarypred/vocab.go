package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idlab-discover/salarypred-cli/internal/apperr"
	"github.com/idlab-discover/salarypred-cli/internal/schema"
	"github.com/idlab-discover/salarypred-cli/internal/ui"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab [field...]",
	Short: "List the accepted values of the categorical fields",
	Long: `List the accepted values of categorical fields with their codes, in the
order the encoders were fitted. Without arguments every categorical field is
listed.`,
	Example: `  salarypred vocab
  salarypred vocab workclass native-country`,
	ValidArgs: schema.CategoricalNames(),
	RunE:      runVocab,
}

func runVocab(cmd *cobra.Command, args []string) error {
	fields := args
	if len(fields) == 0 {
		fields = schema.CategoricalNames()
	}
	for _, f := range fields {
		if !schema.IsCategorical(f) {
			return apperr.Userf("%q is not a categorical field (expected one of: %s)",
				f, strings.Join(schema.CategoricalNames(), ", "))
		}
	}

	eng, err := loadEngine()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for i, f := range fields {
		if i > 0 {
			fmt.Fprintln(w)
		}
		ui.PrintVocabulary(w, f, eng.Vocabulary(f))
	}
	return nil
}
