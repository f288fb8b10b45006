package predictor

import (
	"io"

	"github.com/idlab-discover/salarypred-cli/internal/logging"
	"github.com/idlab-discover/salarypred-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Predictor:", PrefixColor: ui.FgCyan}

// SetLogger sets an optional destination for prediction logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Printf(format, args...)
}
